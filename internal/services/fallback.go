package services

import (
	"time"

	"firstgen/mentorship-api/internal/models"
)

// FallbackMatchReason is the templated reason attached to every fallback
// assignment.
const FallbackMatchReason = "Match based on compatible academic interests and mentorship expectations."

// FallbackAssigner produces a complete deterministic assignment when the
// generative path is unavailable or its output fails validation. It exists
// to guarantee total availability, not match quality.
type FallbackAssigner struct{}

func NewFallbackAssigner() *FallbackAssigner {
	return &FallbackAssigner{}
}

// AssignRoundRobin pairs mentee i with the mentor at a cursor that advances
// one step per assignment, wrapping around. Every mentee gets exactly one
// mentor and mentor loads differ by at most one. Scores follow
// 70 + (i mod 25), so they stay in [70, 94] and are reproducible.
//
// Both lists must be non-empty; the caller validates that before invoking.
func (f *FallbackAssigner) AssignRoundRobin(mentors, mentees []models.Person) []models.Match {
	matches := make([]models.Match, 0, len(mentees))
	now := time.Now()

	cursor := 0
	for i, mentee := range mentees {
		mentor := mentors[cursor]

		matches = append(matches, models.Match{
			MenteeID:           mentee.ID,
			MentorID:           mentor.ID,
			MatchReason:        FallbackMatchReason,
			CompatibilityScore: float64(70 + (i % 25)),
			Status:             models.StatusPending,
			AIGenerated:        true,
			IsMockData:         true,
			CreatedAt:          now,
		})

		cursor = (cursor + 1) % len(mentors)
	}

	return matches
}
