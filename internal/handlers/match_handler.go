package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"firstgen/mentorship-api/internal/models"
	"firstgen/mentorship-api/internal/repositories"
	"firstgen/mentorship-api/internal/services"
)

type MatchHandler struct {
	pipeline  services.MatchPipeline
	matchRepo repositories.MatchRepository
}

func NewMatchHandler(pipeline services.MatchPipeline, matchRepo repositories.MatchRepository) *MatchHandler {
	return &MatchHandler{
		pipeline:  pipeline,
		matchRepo: matchRepo,
	}
}

// HandleGenerateMatches handles POST /generate-matches.
func (h *MatchHandler) HandleGenerateMatches(c *fiber.Ctx) error {
	req, err := parseMatchRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	persist := req.SaveToDatabase == nil || *req.SaveToDatabase

	result, err := h.pipeline.GenerateMatches(c.Context(), req.Mentors, req.Mentees, req.MaxMenteesPerMentor, persist)
	if err != nil {
		var invalid *services.InvalidInputError
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":       invalid.Message,
				"invalid_ids": invalid.InvalidIDs,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(matchResponse(result, persist))
}

// HandleMockMatches handles POST /mock-matches. Same contract, but it forces
// the deterministic fallback assignment.
func (h *MatchHandler) HandleMockMatches(c *fiber.Ctx) error {
	req, err := parseMatchRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	persist := req.SaveToDatabase == nil || *req.SaveToDatabase

	result, err := h.pipeline.GenerateFallbackMatches(c.Context(), req.Mentors, req.Mentees, persist)
	if err != nil {
		var invalid *services.InvalidInputError
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":       invalid.Message,
				"invalid_ids": invalid.InvalidIDs,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(matchResponse(result, persist))
}

// HandleUpdateMatchStatus handles POST /update-match-status. Only the match's
// mentor or mentee may change its status.
func (h *MatchHandler) HandleUpdateMatchStatus(c *fiber.Ctx) error {
	var req models.UpdateMatchStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.MatchID == "" || req.Status == "" || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: matchId, status, and userId are required",
		})
	}

	if !models.ValidMatchStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status. Must be one of: pending, approved, confirmed, rejected",
		})
	}

	match, err := h.matchRepo.FindByID(req.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("Match with ID %s not found", req.MatchID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if match.MentorID != req.UserID && match.MenteeID != req.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized. User is not associated with this match.",
		})
	}

	if err := h.matchRepo.UpdateStatus(req.MatchID, models.MatchStatus(req.Status), req.UserID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("Match with ID %s not found", req.MatchID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   fmt.Sprintf("Match status updated to %s", req.Status),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HandleDeleteMatch handles POST /delete-match. Deleting an absent match
// still succeeds.
func (h *MatchHandler) HandleDeleteMatch(c *fiber.Ctx) error {
	var req models.DeleteMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.MatchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No match ID provided",
		})
	}

	if err := h.matchRepo.Delete(req.MatchID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":    "error",
			"message":   fmt.Sprintf("Error deleting match: %v", err),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"status":    "success",
		"message":   "Match successfully deleted",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func parseMatchRequest(c *fiber.Ctx) (*models.GenerateMatchesRequest, error) {
	var req models.GenerateMatchesRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("Invalid request payload")
	}

	if len(req.Mentors) == 0 {
		return nil, errors.New("No mentors provided")
	}
	if len(req.Mentees) == 0 {
		return nil, errors.New("No mentees provided")
	}

	return &req, nil
}

func matchResponse(result *services.MatchResult, persist bool) *models.GenerateMatchesResponse {
	message := fmt.Sprintf("Successfully generated %d matches", len(result.Matches))
	if result.UsedFallback {
		message = "Generated mock matches (AI matching unavailable)"
	}

	return &models.GenerateMatchesResponse{
		Message:         message,
		Matches:         result.Matches,
		StoredMatchIDs:  result.StoredIDs,
		SavedToDatabase: persist && len(result.StoredIDs) > 0,
		IsMockData:      result.UsedFallback,
	}
}
