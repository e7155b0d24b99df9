package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"firstgen/mentorship-api/internal/models"
)

// FileMatchRepository keeps match records in a local JSON file. It stands in
// for the real database during development and in mock mode. Records get ids
// of the form "mock-match-<n>", 1-indexed over the life of the file.
//
// A mutex serializes access within this process; the file itself is a
// single-writer development aid, not a production resource.
type FileMatchRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileMatchRepository(dataDir string) (*FileMatchRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create mock data directory: %w", err)
	}
	return &FileMatchRepository{
		path: filepath.Join(dataDir, "mentorship_matches.json"),
	}, nil
}

func (r *FileMatchRepository) load() ([]models.Match, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read match store: %w", err)
	}

	var matches []models.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse match store: %w", err)
	}
	return matches, nil
}

func (r *FileMatchRepository) save(matches []models.Match) error {
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode match store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write match store: %w", err)
	}
	return nil
}

// Create implements MatchRepository.
func (r *FileMatchRepository) Create(match *models.Match) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.load()
	if err != nil {
		return "", err
	}

	if match.ID == "" {
		match.ID = fmt.Sprintf("mock-match-%d", len(matches)+1)
	}

	matches = append(matches, *match)
	if err := r.save(matches); err != nil {
		return "", err
	}
	return match.ID, nil
}

// FindByID implements MatchRepository.
func (r *FileMatchRepository) FindByID(id string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range matches {
		if matches[i].ID == id {
			match := matches[i]
			return &match, nil
		}
	}
	return nil, ErrMatchNotFound
}

// FindByParticipant implements MatchRepository.
func (r *FileMatchRepository) FindByParticipant(userID string) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.load()
	if err != nil {
		return nil, err
	}

	var found []models.Match
	for _, match := range matches {
		if match.MentorID == userID || match.MenteeID == userID {
			found = append(found, match)
		}
	}
	return found, nil
}

// UpdateStatus implements MatchRepository.
func (r *FileMatchRepository) UpdateStatus(id string, status models.MatchStatus, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.load()
	if err != nil {
		return err
	}

	for i := range matches {
		if matches[i].ID == id {
			matches[i].Status = status
			matches[i].UpdatedAt = time.Now()
			matches[i].UpdatedBy = updatedBy
			return r.save(matches)
		}
	}
	return ErrMatchNotFound
}

// Delete implements MatchRepository.
func (r *FileMatchRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.load()
	if err != nil {
		return err
	}

	for i := range matches {
		if matches[i].ID == id {
			matches = append(matches[:i], matches[i+1:]...)
			return r.save(matches)
		}
	}
	// Absent records delete as a no-op.
	return nil
}
