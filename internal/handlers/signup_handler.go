package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"firstgen/mentorship-api/internal/models"
	"firstgen/mentorship-api/internal/repositories"
)

type SignupHandler struct {
	signupRepo repositories.SignupRepository
	matchRepo  repositories.MatchRepository
}

func NewSignupHandler(signupRepo repositories.SignupRepository, matchRepo repositories.MatchRepository) *SignupHandler {
	return &SignupHandler{
		signupRepo: signupRepo,
		matchRepo:  matchRepo,
	}
}

// HandleSignup handles POST /signup: persist the mentorship application
// document keyed by the user id. The payload is stored as-is so form fields
// can change without a schema migration.
func (h *SignupHandler) HandleSignup(c *fiber.Ctx) error {
	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil || payload == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No data provided",
		})
	}

	userID, _ := payload["userId"].(string)
	role, _ := payload["mentorshipRole"].(string)
	forceSignup, _ := payload["forceSignup"].(bool)

	log.Printf("Received signup for user %s", userID)

	if userID != "" && h.signupRepo != nil {
		if !forceSignup {
			if _, err := h.signupRepo.FindByUserID(userID); err == nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"status":    "error",
					"message":   "You have already signed up for the mentorship program.",
					"timestamp": time.Now().Format(time.RFC3339),
				})
			} else if !errors.Is(err, repositories.ErrSignupNotFound) {
				// The check is best-effort; a lookup failure never blocks a signup.
				log.Printf("⚠️  Error checking signup status: %v", err)
			}
		}

		raw, err := json.Marshal(payload)
		if err == nil {
			err = h.signupRepo.Upsert(&models.Signup{
				UserID:  userID,
				Role:    role,
				Payload: raw,
			})
		}
		if err != nil {
			log.Printf("⚠️  Error saving signup: %v", err)
		} else {
			log.Printf("Saved signup data for user %s", userID)
		}
	} else if h.signupRepo == nil {
		log.Println("Database not available, skipping signup storage")
	}

	return c.JSON(fiber.Map{
		"matchResult": "Your application has been received successfully! We'll notify you when you've been matched with a mentor/mentee.",
		"status":      "success",
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

// HandleCheckSignupStatus handles POST /check-signup-status: reports whether
// the user already signed up or already appears in a match.
func (h *SignupHandler) HandleCheckSignupStatus(c *fiber.Ctx) error {
	var req models.SignupStatusRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID is required",
		})
	}

	if h.signupRepo == nil {
		return c.JSON(models.SignupStatusResponse{
			Exists: false,
			Role:   nil,
			Mock:   true,
		})
	}

	var role *string
	exists := false

	signup, err := h.signupRepo.FindByUserID(req.UserID)
	if err == nil {
		exists = true
		if signup.Role != "" {
			role = &signup.Role
		}
	} else if !errors.Is(err, repositories.ErrSignupNotFound) {
		log.Printf("⚠️  Error checking signup: %v", err)
	}

	if !exists {
		matches, err := h.matchRepo.FindByParticipant(req.UserID)
		if err != nil {
			log.Printf("⚠️  Error checking matches: %v", err)
		}
		exists = len(matches) > 0
	}

	return c.JSON(models.SignupStatusResponse{
		Exists: exists,
		Role:   role,
	})
}
