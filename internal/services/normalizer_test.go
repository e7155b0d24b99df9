package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstgen/mentorship-api/internal/models"
)

func TestNormalizeMatchSynonyms(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	match, err := normalizer.NormalizeMatch(map[string]any{
		"mentee": "m1",
		"mentor": "t1",
		"score":  float64(55),
	})
	require.NoError(t, err)

	assert.Equal(t, "m1", match.MenteeID)
	assert.Equal(t, "t1", match.MentorID)
	assert.Equal(t, float64(55), match.CompatibilityScore)
	assert.Equal(t, DefaultMatchReason, match.MatchReason)
	assert.Equal(t, models.StatusPending, match.Status)
	assert.True(t, match.AIGenerated)
	assert.False(t, match.IsMockData)
	assert.False(t, match.CreatedAt.IsZero())
}

func TestNormalizeMatchCanonicalWins(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	match, err := normalizer.NormalizeMatch(map[string]any{
		"menteeId":           "canonical-mentee",
		"mentee":             "synonym-mentee",
		"mentorId":           "canonical-mentor",
		"mentor":             "synonym-mentor",
		"matchReason":        "canonical reason",
		"reason":             "synonym reason",
		"compatibilityScore": float64(91),
		"score":              float64(10),
	})
	require.NoError(t, err)

	assert.Equal(t, "canonical-mentee", match.MenteeID)
	assert.Equal(t, "canonical-mentor", match.MentorID)
	assert.Equal(t, "canonical reason", match.MatchReason)
	assert.Equal(t, float64(91), match.CompatibilityScore)
}

func TestNormalizeMatchIdempotent(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	first, err := normalizer.NormalizeMatch(map[string]any{
		"menteeId":           "m1",
		"mentorId":           "t1",
		"matchReason":        "shared interests",
		"compatibilityScore": float64(88),
	})
	require.NoError(t, err)

	second, err := normalizer.NormalizeMatch(map[string]any{
		"menteeId":           first.MenteeID,
		"mentorId":           first.MentorID,
		"matchReason":        first.MatchReason,
		"compatibilityScore": first.CompatibilityScore,
	})
	require.NoError(t, err)

	// Identical modulo timestamp.
	second.CreatedAt = first.CreatedAt
	assert.Equal(t, first, second)
}

func TestNormalizeMatchScoreRepair(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	tests := []struct {
		name  string
		score any
		want  float64
	}{
		{"non-numeric string", "N/A", 80},
		{"numeric string", "72.5", 72.5},
		{"above range", float64(150), 80},
		{"below range", float64(-3), 80},
		{"missing", nil, 80},
		{"zero is valid", float64(0), 0},
		{"hundred is valid", float64(100), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"menteeId": "m1", "mentorId": "t1"}
			if tt.score != nil {
				raw["score"] = tt.score
			}

			match, err := normalizer.NormalizeMatch(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, match.CompatibilityScore)
		})
	}
}

func TestNormalizeMatchMissingIDs(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"no ids at all", map[string]any{"reason": "great match", "score": float64(90)}},
		{"missing mentor", map[string]any{"menteeId": "m1"}},
		{"missing mentee", map[string]any{"mentorId": "t1"}},
		{"empty strings", map[string]any{"menteeId": "", "mentorId": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizer.NormalizeMatch(tt.raw)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Reasons)
		})
	}
}

func TestNormalizeMatchIgnoresUnknownKeys(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	match, err := normalizer.NormalizeMatch(map[string]any{
		"menteeId":   "m1",
		"mentorId":   "t1",
		"confidence": "high",
		"notes":      []any{"extra"},
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", match.MenteeID)
}

func TestNormalizeContentFillsMissingFields(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	content := normalizer.NormalizeContent(map[string]any{
		"careerGoals": "Become a software engineer.",
	}, models.MenteeContentFields)

	require.Len(t, content, len(models.MenteeContentFields))
	assert.Equal(t, "Become a software engineer.", content["careerGoals"])
	for _, field := range []string{"experienceSummary", "challenges", "expectations", "additionalInfo"} {
		value, ok := content[field]
		assert.True(t, ok, "field %s must be present", field)
		assert.Equal(t, "", value)
	}
}

func TestNormalizeContentEmptyInput(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	content := normalizer.NormalizeContent(map[string]any{}, models.MentorContentFields)

	require.Len(t, content, len(models.MentorContentFields))
	for _, field := range models.MentorContentFields {
		assert.Equal(t, "", content[field])
	}
}
