package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"firstgen/mentorship-api/internal/models"
	"firstgen/mentorship-api/internal/repositories"
	"firstgen/mentorship-api/internal/services"
)

type FileHandler struct {
	content     services.ContentPipeline
	extractor   services.TextExtractorService
	storage     services.StorageService
	signupRepo  repositories.SignupRepository
	maxFileSize int64
}

func NewFileHandler(
	content services.ContentPipeline,
	extractor services.TextExtractorService,
	storage services.StorageService,
	signupRepo repositories.SignupRepository,
	maxFileSize int64,
) *FileHandler {
	return &FileHandler{
		content:     content,
		extractor:   extractor,
		storage:     storage,
		signupRepo:  signupRepo,
		maxFileSize: maxFileSize,
	}
}

// HandleProcessFile handles POST /process-file: extract text from the upload
// and generate role-specific application content from it. Processing
// failures come back as a 200 with the structured empty-field payload so the
// form can render.
func (h *FileHandler) HandleProcessFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	userID := c.FormValue("userId", "anonymous")
	role := c.FormValue("role", models.RoleMentee)

	if userID != "anonymous" && !services.ValidUserID(userID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID format",
		})
	}

	if err := h.validateUpload(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("Processing file: %s for user: %s, role: %s", file.Filename, userID, role)

	tempPath, err := h.storage.SaveTemp(file)
	if err != nil {
		log.Printf("❌ Failed to save upload: %v", err)
		return c.JSON(h.content.ErrorContent(role, "file_processing_error", err.Error()))
	}
	defer os.Remove(tempPath)

	extractedText, err := h.extractor.ExtractText(tempPath)
	if err != nil {
		log.Printf("❌ Failed to extract text: %v", err)
		return c.JSON(h.content.ErrorContent(role, "file_processing_error", err.Error()))
	}

	log.Printf("Extracted text length: %d", len(extractedText))

	if len(extractedText) < services.MinExtractedTextLength {
		return c.JSON(h.content.ErrorContent(role, "insufficient_text",
			"Could not extract enough text from the document. Please enter answers manually."))
	}

	result := h.content.GenerateRoleContent(c.Context(), extractedText, role)
	result["source"] = models.SourceFileProcessing

	return c.JSON(result)
}

// HandleSaveResume handles POST /save-resume: store the upload under the
// user's directory and record its location.
func (h *FileHandler) HandleSaveResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	userID := c.FormValue("userId", "anonymous")
	if !services.ValidUserID(userID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID format",
		})
	}

	if err := h.validateUpload(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	path, err := h.storage.SaveResume(file, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to save file: %v", err),
		})
	}

	if h.signupRepo != nil {
		if err := h.signupRepo.SaveResumePath(userID, path, file.Filename); err != nil {
			// The file itself was saved, so the upload still succeeds.
			log.Printf("⚠️  Failed to record resume path: %v", err)
		}
	} else {
		log.Println("Database not available, skipping resume record")
	}

	return c.JSON(fiber.Map{
		"message": "File saved successfully",
		"path":    path,
	})
}

func (h *FileHandler) validateUpload(file *multipart.FileHeader) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if !h.extractor.SupportedExtension(ext) {
		return fmt.Errorf("Invalid file type. Allowed types: pdf, docx, doc")
	}

	if file.Size > h.maxFileSize {
		return fmt.Errorf("File too large. Maximum size: 5MB")
	}

	return nil
}
