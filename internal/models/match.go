package models

import (
	"time"
)

type MatchStatus string

const (
	StatusPending   MatchStatus = "pending"
	StatusApproved  MatchStatus = "approved"
	StatusConfirmed MatchStatus = "confirmed"
	StatusRejected  MatchStatus = "rejected"
)

// ValidMatchStatus reports whether s is one of the enumerated statuses.
// Any listed status is accepted as a next value regardless of the current
// one; the transition graph is deliberately not enforced.
func ValidMatchStatus(s string) bool {
	switch MatchStatus(s) {
	case StatusPending, StatusApproved, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

// Match is a canonical mentor/mentee pairing after synonym reconciliation
// and defaulting. Immutable once persisted except for Status, UpdatedAt and
// UpdatedBy, which change only through the status-transition operation.
type Match struct {
	ID                 string      `gorm:"type:uuid;primary_key" json:"id"`
	MenteeID           string      `gorm:"type:text;not null;index" json:"menteeId"`
	MentorID           string      `gorm:"type:text;not null;index" json:"mentorId"`
	MatchReason        string      `gorm:"type:text" json:"matchReason"`
	CompatibilityScore float64     `gorm:"type:decimal(5,2)" json:"compatibilityScore"`
	Status             MatchStatus `gorm:"not null;default:'pending'" json:"status"`
	AIGenerated        bool        `json:"aiGenerated"`
	IsMockData         bool        `json:"isMockData,omitempty"`
	CreatedAt          time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt          time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
	UpdatedBy          string      `gorm:"type:text" json:"updatedBy,omitempty"`
}

func (Match) TableName() string {
	return "mentorship_matches"
}
