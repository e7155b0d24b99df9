package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"firstgen/mentorship-api/internal/models"
)

const (
	// DefaultMatchReason is used when the model omits a reason.
	DefaultMatchReason = "AI-generated match"
	// DefaultCompatibilityScore replaces missing, non-numeric or
	// out-of-range scores. Scores are advisory, so a bad one never drops
	// the record.
	DefaultCompatibilityScore = 80
)

// ValidationError lists the reasons a single candidate record was rejected.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid match record: " + strings.Join(e.Reasons, "; ")
}

// SchemaNormalizer reconciles the model's inconsistent field naming into the
// canonical match record shape. First synonym present wins.
//
//	menteeId           <- menteeId, mentee
//	mentorId           <- mentorId, mentor
//	matchReason        <- matchReason, reason
//	compatibilityScore <- compatibilityScore, score
type SchemaNormalizer struct{}

func NewSchemaNormalizer() *SchemaNormalizer {
	return &SchemaNormalizer{}
}

// NormalizeMatch validates and repairs one raw candidate record. A record
// missing either participant id is rejected; everything else is defaulted.
// Unknown keys are ignored.
func (n *SchemaNormalizer) NormalizeMatch(raw map[string]any) (*models.Match, error) {
	menteeID := firstString(raw, "menteeId", "mentee")
	mentorID := firstString(raw, "mentorId", "mentor")

	var reasons []string
	if menteeID == "" {
		reasons = append(reasons, "missing menteeId")
	}
	if mentorID == "" {
		reasons = append(reasons, "missing mentorId")
	}
	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	reason := firstString(raw, "matchReason", "reason")
	if reason == "" {
		reason = DefaultMatchReason
	}

	score := float64(DefaultCompatibilityScore)
	if value, ok := firstValue(raw, "compatibilityScore", "score"); ok {
		if parsed, ok := coerceScore(value); ok && parsed >= 0 && parsed <= 100 {
			score = parsed
		}
	}

	return &models.Match{
		MenteeID:           menteeID,
		MentorID:           mentorID,
		MatchReason:        reason,
		CompatibilityScore: score,
		Status:             models.StatusPending,
		AIGenerated:        true,
		CreatedAt:          time.Now(),
	}, nil
}

// NormalizeContent guarantees the full required field set: every required
// field absent from raw comes back as an empty string. It never fails, the
// application form depends on a complete field set unconditionally.
func (n *SchemaNormalizer) NormalizeContent(raw map[string]any, requiredFields []string) map[string]string {
	content := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		content[field] = asString(raw[field])
	}
	return content
}

func firstValue(raw map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := raw[key]; ok {
			return value, true
		}
	}
	return nil, false
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key]; ok {
			if s := asString(value); s != "" {
				return s
			}
		}
	}
	return ""
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func coerceScore(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
