package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidUserID reports whether the supplied user identifier is safe to use in
// storage paths and document keys.
func ValidUserID(userID string) bool {
	return userIDPattern.MatchString(userID)
}

type StorageService interface {
	// SaveTemp writes the upload to a temp file for processing. The caller
	// removes it when done.
	SaveTemp(file *multipart.FileHeader) (string, error)
	// SaveResume stores the upload under the user's directory and returns
	// the final path.
	SaveResume(file *multipart.FileHeader, userID string) (string, error)
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveTemp implements StorageService.
func (s *storageService) SaveTemp(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload_%s%s", uuid.New().String(), ext))

	if err := copyUpload(file, tempPath); err != nil {
		return "", err
	}

	return tempPath, nil
}

// SaveResume implements StorageService.
func (s *storageService) SaveResume(file *multipart.FileHeader, userID string) (string, error) {
	if !ValidUserID(userID) {
		return "", fmt.Errorf("invalid user ID")
	}

	userDir := filepath.Join(s.uploadPath, userID)

	// Keep the destination inside the upload folder
	absUpload, err := filepath.Abs(s.uploadPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	absUserDir, err := filepath.Abs(userDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user directory: %w", err)
	}
	if !strings.HasPrefix(absUserDir, absUpload) {
		return "", fmt.Errorf("invalid user directory path")
	}

	if err := os.MkdirAll(absUserDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create user directory: %w", err)
	}

	filename := filepath.Base(file.Filename)
	filePath := filepath.Join(absUserDir, filename)

	if err := copyUpload(file, filePath); err != nil {
		return "", err
	}

	return filePath, nil
}

func copyUpload(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}
