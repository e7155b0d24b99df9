package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstgen/mentorship-api/internal/config"
	"firstgen/mentorship-api/internal/models"
	"firstgen/mentorship-api/internal/repositories"
	"firstgen/mentorship-api/internal/services"
)

// failingGemini simulates an unreachable generation service.
type failingGemini struct{}

func (failingGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return "", errors.New("service unavailable")
}

func (failingGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return "", errors.New("service unavailable")
}

// cannedGemini always answers with a fixed response.
type cannedGemini struct {
	response string
}

func (g cannedGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return g.response, nil
}

func (g cannedGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return g.response, nil
}

func newTestApp(t *testing.T, gemini services.GeminiService) (*fiber.App, repositories.MatchRepository) {
	t.Helper()

	repo, err := repositories.NewFileMatchRepository(t.TempDir())
	require.NoError(t, err)

	caps := config.Capabilities{AIAvailable: gemini != nil, ExtractionAvailable: true}
	pipeline := services.NewMatchPipeline(gemini, repo, caps, 1)

	handler := NewMatchHandler(pipeline, repo)
	signupHandler := NewSignupHandler(nil, repo)

	app := fiber.New()
	app.Post("/generate-matches", handler.HandleGenerateMatches)
	app.Post("/mock-matches", handler.HandleMockMatches)
	app.Post("/update-match-status", handler.HandleUpdateMatchStatus)
	app.Post("/delete-match", handler.HandleDeleteMatch)
	app.Post("/check-signup-status", signupHandler.HandleCheckSignupStatus)

	return app, repo
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp, decoded
}

func TestGenerateMatchesRejectsMissingParticipants(t *testing.T) {
	app, _ := newTestApp(t, failingGemini{})

	tests := []struct {
		name string
		body map[string]any
	}{
		{"no mentors", map[string]any{"mentees": []map[string]string{{"id": "m1"}}}},
		{"no mentees", map[string]any{"mentors": []map[string]string{{"id": "t1"}}}},
		{"empty body", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, "/generate-matches", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGenerateMatchesFallbackEndToEnd(t *testing.T) {
	app, _ := newTestApp(t, failingGemini{})

	resp, body := postJSON(t, app, "/generate-matches", map[string]any{
		"mentors": []map[string]string{{"id": "t1"}, {"id": "t2"}},
		"mentees": []map[string]string{{"id": "m1"}, {"id": "m2"}, {"id": "m3"}, {"id": "m4"}, {"id": "m5"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, true, body["is_mock_data"])
	assert.Equal(t, true, body["saved_to_database"])

	matches := body["matches"].([]any)
	require.Len(t, matches, 5)

	storedIDs := body["stored_match_ids"].([]any)
	require.Len(t, storedIDs, 5)
	assert.Equal(t, "mock-match-1", storedIDs[0])

	wantMentors := []string{"t1", "t2", "t1", "t2", "t1"}
	wantScores := []float64{70, 71, 72, 73, 74}
	for i, raw := range matches {
		match := raw.(map[string]any)
		assert.Equal(t, wantMentors[i], match["mentorId"])
		assert.Equal(t, wantScores[i], match["compatibilityScore"])
		assert.Equal(t, "pending", match["status"])
	}
}

func TestGenerateMatchesAIPathEndToEnd(t *testing.T) {
	gemini := cannedGemini{response: "Here you go:\n```json\n" +
		`[{"mentee": "m1", "mentor": "t1", "reason": "both study biology", "score": 93}]` +
		"\n```"}
	app, _ := newTestApp(t, gemini)

	resp, body := postJSON(t, app, "/generate-matches", map[string]any{
		"mentors": []map[string]string{{"id": "t1"}},
		"mentees": []map[string]string{{"id": "m1"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Nil(t, body["is_mock_data"])
	matches := body["matches"].([]any)
	require.Len(t, matches, 1)

	match := matches[0].(map[string]any)
	assert.Equal(t, "m1", match["menteeId"])
	assert.Equal(t, "t1", match["mentorId"])
	assert.Equal(t, "both study biology", match["matchReason"])
	assert.Equal(t, float64(93), match["compatibilityScore"])
}

func TestGenerateMatchesSkipsPersistenceOnRequest(t *testing.T) {
	app, _ := newTestApp(t, failingGemini{})

	resp, body := postJSON(t, app, "/generate-matches", map[string]any{
		"mentors":        []map[string]string{{"id": "t1"}},
		"mentees":        []map[string]string{{"id": "m1"}},
		"saveToDatabase": false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, false, body["saved_to_database"])
	assert.Empty(t, body["stored_match_ids"])

	match := body["matches"].([]any)[0].(map[string]any)
	assert.Equal(t, "mock-match-1", match["id"])
}

func TestMockMatchesForcesFallback(t *testing.T) {
	// A healthy model must still be bypassed on the mock endpoint.
	gemini := cannedGemini{response: `[{"menteeId": "m1", "mentorId": "t1", "score": 99}]`}
	app, _ := newTestApp(t, gemini)

	resp, body := postJSON(t, app, "/mock-matches", map[string]any{
		"mentors": []map[string]string{{"id": "t1"}},
		"mentees": []map[string]string{{"id": "m1"}, {"id": "m2"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, true, body["is_mock_data"])
	matches := body["matches"].([]any)
	require.Len(t, matches, 2)
	assert.Equal(t, float64(70), matches[0].(map[string]any)["compatibilityScore"])
}

func TestUpdateMatchStatus(t *testing.T) {
	app, repo := newTestApp(t, failingGemini{})

	id, err := repo.Create(&models.Match{
		MenteeID: "m1",
		MentorID: "t1",
		Status:   models.StatusPending,
	})
	require.NoError(t, err)

	t.Run("missing fields", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/update-match-status", map[string]any{"matchId": id})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid status", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/update-match-status", map[string]any{
			"matchId": id, "status": "archived", "userId": "m1",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/update-match-status", map[string]any{
			"matchId": "missing", "status": "approved", "userId": "m1",
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("unauthorized caller leaves record unchanged", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/update-match-status", map[string]any{
			"matchId": id, "status": "approved", "userId": "intruder",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		match, err := repo.FindByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, match.Status)
	})

	t.Run("mentee may update", func(t *testing.T) {
		resp, body := postJSON(t, app, "/update-match-status", map[string]any{
			"matchId": id, "status": "approved", "userId": "m1",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])

		match, err := repo.FindByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, match.Status)
		assert.Equal(t, "m1", match.UpdatedBy)
	})

	t.Run("mentor may update", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/update-match-status", map[string]any{
			"matchId": id, "status": "confirmed", "userId": "t1",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		match, err := repo.FindByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, match.Status)
	})
}

func TestDeleteMatch(t *testing.T) {
	app, repo := newTestApp(t, failingGemini{})

	id, err := repo.Create(&models.Match{MenteeID: "m1", MentorID: "t1"})
	require.NoError(t, err)

	t.Run("missing id", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/delete-match", map[string]any{})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("deletes record", func(t *testing.T) {
		resp, body := postJSON(t, app, "/delete-match", map[string]any{"matchId": id})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "success", body["status"])

		_, err := repo.FindByID(id)
		assert.ErrorIs(t, err, repositories.ErrMatchNotFound)
	})

	t.Run("absent id still succeeds", func(t *testing.T) {
		resp, body := postJSON(t, app, "/delete-match", map[string]any{"matchId": "never-existed"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "success", body["status"])
	})
}

func TestCheckSignupStatusWithoutDatabase(t *testing.T) {
	app, _ := newTestApp(t, failingGemini{})

	t.Run("missing user id", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/check-signup-status", map[string]any{})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("mock response", func(t *testing.T) {
		resp, body := postJSON(t, app, "/check-signup-status", map[string]any{"userId": "u1"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["exists"])
		assert.Equal(t, true, body["mock"])
	})
}
