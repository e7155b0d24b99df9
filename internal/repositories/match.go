package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"firstgen/mentorship-api/internal/models"
)

// ErrMatchNotFound is returned when no match record exists for the given id.
var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// Create persists the match and returns the assigned record id.
	Create(match *models.Match) (string, error)
	FindByID(id string) (*models.Match, error)
	// FindByParticipant returns every match where userID is the mentor or mentee.
	FindByParticipant(userID string) ([]models.Match, error)
	UpdateStatus(id string, status models.MatchStatus, updatedBy string) error
	// Delete removes the record. Deleting an absent id is not an error.
	Delete(id string) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// Create implements MatchRepository.
func (r *matchRepository) Create(match *models.Match) (string, error) {
	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	if err := r.db.Create(match).Error; err != nil {
		return "", fmt.Errorf("failed to create match: %w", err)
	}
	return match.ID, nil
}

// FindByID implements MatchRepository.
func (r *matchRepository) FindByID(id string) (*models.Match, error) {
	var match models.Match
	if err := r.db.Where("id = ?", id).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	return &match, nil
}

// FindByParticipant implements MatchRepository.
func (r *matchRepository) FindByParticipant(userID string) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.
		Where("mentor_id = ? OR mentee_id = ?", userID, userID).
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find matches: %w", err)
	}
	return matches, nil
}

// UpdateStatus implements MatchRepository.
func (r *matchRepository) UpdateStatus(id string, status models.MatchStatus, updatedBy string) error {
	result := r.db.Model(&models.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
			"updated_by": updatedBy,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update match status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrMatchNotFound
	}

	return nil
}

// Delete implements MatchRepository.
func (r *matchRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&models.Match{}).Error; err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return nil
}
