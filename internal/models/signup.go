package models

import (
	"time"

	"gorm.io/datatypes"
)

// Signup stores a mentorship program application keyed by the applicant's
// user id. The form payload is kept as a raw document so the frontend can
// evolve its fields without schema migrations.
type Signup struct {
	UserID         string         `gorm:"type:text;primary_key" json:"userId"`
	Role           string         `gorm:"type:text" json:"mentorshipRole"`
	Payload        datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	ResumePath     string         `gorm:"type:text" json:"resumePath,omitempty"`
	ResumeFilename string         `gorm:"type:text" json:"resumeFilename,omitempty"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Signup) TableName() string {
	return "mentorship_signups"
}
