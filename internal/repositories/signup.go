package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"firstgen/mentorship-api/internal/models"
)

var ErrSignupNotFound = errors.New("signup not found")

type SignupRepository interface {
	// Upsert writes the signup document keyed by the user id.
	Upsert(signup *models.Signup) error
	FindByUserID(userID string) (*models.Signup, error)
	// SaveResumePath records where the user's uploaded resume lives.
	SaveResumePath(userID, path, originalFilename string) error
}

type signupRepository struct {
	db *gorm.DB
}

func NewSignupRepository(db *gorm.DB) SignupRepository {
	return &signupRepository{db: db}
}

// Upsert implements SignupRepository.
func (r *signupRepository) Upsert(signup *models.Signup) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(signup).Error
	if err != nil {
		return fmt.Errorf("failed to save signup: %w", err)
	}
	return nil
}

// SaveResumePath implements SignupRepository.
func (r *signupRepository) SaveResumePath(userID, path, originalFilename string) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"resume_path", "resume_filename", "updated_at",
		}),
	}).Create(&models.Signup{
		UserID:         userID,
		ResumePath:     path,
		ResumeFilename: originalFilename,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to record resume path: %w", err)
	}
	return nil
}

// FindByUserID implements SignupRepository.
func (r *signupRepository) FindByUserID(userID string) (*models.Signup, error) {
	var signup models.Signup
	if err := r.db.Where("user_id = ?", userID).First(&signup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, fmt.Errorf("failed to find signup: %w", err)
	}
	return &signup, nil
}
