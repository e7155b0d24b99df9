package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstgen/mentorship-api/internal/config"
	"firstgen/mentorship-api/internal/models"
)

func TestGenerateRoleContentAIPath(t *testing.T) {
	gemini := &stubGemini{response: "```json\n" +
		`{"careerGoals": "Work in data science.", "experienceSummary": "Sophomore in statistics.", "challenges": "First-gen navigation.", "expectations": "Monthly guidance.", "additionalInfo": "None."}` +
		"\n```"}
	pipeline := NewContentPipeline(gemini, aiCaps(), 3)

	result := pipeline.GenerateRoleContent(context.Background(), "resume text long enough", models.RoleMentee)

	assert.Equal(t, models.SourceAIGenerated, result["source"])
	assert.Equal(t, "Work in data science.", result["careerGoals"])
	for _, field := range models.MenteeContentFields {
		_, ok := result[field]
		assert.True(t, ok, "field %s must be present", field)
	}
}

func TestGenerateRoleContentMockOnFailure(t *testing.T) {
	gemini := &stubGemini{err: errors.New("quota exceeded")}
	pipeline := NewContentPipeline(gemini, aiCaps(), 3)

	for _, role := range []string{models.RoleMentor, models.RoleMentee} {
		t.Run(role, func(t *testing.T) {
			result := pipeline.GenerateRoleContent(context.Background(), "resume text", role)

			assert.Equal(t, models.SourceMockData, result["source"])
			for _, field := range models.ContentFieldsForRole(role) {
				value, ok := result[field]
				require.True(t, ok, "field %s must be present", field)
				assert.NotEqual(t, "", value, "mock content fills every field")
			}
		})
	}
}

func TestGenerateRoleContentAIUnavailable(t *testing.T) {
	pipeline := NewContentPipeline(nil, config.Capabilities{AIAvailable: false}, 3)

	result := pipeline.GenerateRoleContent(context.Background(), "resume text", models.RoleMentor)
	assert.Equal(t, models.SourceMockData, result["source"])
}

func TestGenerateRoleContentUnparsableResponse(t *testing.T) {
	gemini := &stubGemini{response: "Sorry, I cannot help with that."}
	pipeline := NewContentPipeline(gemini, aiCaps(), 3)

	result := pipeline.GenerateRoleContent(context.Background(), "resume text", models.RoleMentee)

	// Unparsable output still yields the complete field set, just empty.
	assert.Equal(t, models.SourceAIGenerated, result["source"])
	for _, field := range models.MenteeContentFields {
		value, ok := result[field]
		require.True(t, ok)
		assert.Equal(t, "", value)
	}
}

func TestGenerateRoleContentPartialFields(t *testing.T) {
	gemini := &stubGemini{response: `{"careerGoals": "Be a nurse.", "unknownField": "ignored"}`}
	pipeline := NewContentPipeline(gemini, aiCaps(), 3)

	result := pipeline.GenerateRoleContent(context.Background(), "resume text", models.RoleMentee)

	assert.Equal(t, "Be a nurse.", result["careerGoals"])
	assert.Equal(t, "", result["challenges"])
	_, hasUnknown := result["unknownField"]
	assert.False(t, hasUnknown, "fields outside the required set are not forwarded")
}

func TestErrorContentCarriesFullFieldSet(t *testing.T) {
	pipeline := NewContentPipeline(nil, config.Capabilities{}, 3)

	result := pipeline.ErrorContent(models.RoleMentor, "insufficient_text", "not enough text")

	assert.Equal(t, false, result["success"])
	assert.Equal(t, true, result["error"])
	assert.Equal(t, "insufficient_text", result["errorType"])
	assert.Equal(t, models.SourceServerError, result["source"])
	for _, field := range models.MentorContentFields {
		value, ok := result[field]
		require.True(t, ok, "field %s must be present", field)
		assert.Equal(t, "", value)
	}
}

func TestMockRoleContentFieldSets(t *testing.T) {
	pipeline := NewContentPipeline(nil, config.Capabilities{}, 3)

	mentor := pipeline.MockRoleContent(models.RoleMentor)
	for _, field := range models.MentorContentFields {
		assert.Contains(t, mentor, field)
	}

	mentee := pipeline.MockRoleContent(models.RoleMentee)
	for _, field := range models.MenteeContentFields {
		assert.Contains(t, mentee, field)
	}
}
