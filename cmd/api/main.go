package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"firstgen/mentorship-api/internal/config"
	"firstgen/mentorship-api/internal/handlers"
	"firstgen/mentorship-api/internal/repositories"
	"firstgen/mentorship-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	caps := cfg.Capabilities()
	log.Println("✅ Config loaded successfully")

	// Persistence: real database when configured, local JSON file store
	// otherwise. The file store is a single-writer development aid.
	var matchRepo repositories.MatchRepository
	var signupRepo repositories.SignupRepository

	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		matchRepo = repositories.NewMatchRepository(db)
		signupRepo = repositories.NewSignupRepository(db)
		log.Println("✅ Repositories initialized successfully")
	} else {
		log.Println("⚠️  No database configured, using local JSON match store")
		fileRepo, err := repositories.NewFileMatchRepository(cfg.Storage.MockDataPath)
		if err != nil {
			log.Fatalf("❌ Failed to initialize local match store: %v", err)
		}
		matchRepo = fileRepo
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	textExtractor := services.NewTextExtractorService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. Without an API key the pipelines run in
	// fallback/mock mode instead of failing.
	var geminiService services.GeminiService
	if caps.AIAvailable {
		var err error
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Gemini AI, continuing in mock mode: %v", err)
			caps.AIAvailable = false
		} else {
			log.Println("✅ Gemini AI initialized successfully")
		}
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, matching will use fallback assignment")
	}

	matchPipeline := services.NewMatchPipeline(geminiService, matchRepo, caps, cfg.Gemini.RetryMaxAttempts)
	contentPipeline := services.NewContentPipeline(geminiService, caps, cfg.Gemini.RetryMaxAttempts)
	log.Println("✅ Pipelines initialized")

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(matchPipeline, matchRepo)
	fileHandler := handlers.NewFileHandler(contentPipeline, textExtractor, storageService, signupRepo, cfg.Storage.MaxFileSize)
	signupHandler := handlers.NewSignupHandler(signupRepo, matchRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Mentorship Matching API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	app.Post("/generate-matches", matchHandler.HandleGenerateMatches)
	app.Post("/mock-matches", matchHandler.HandleMockMatches)
	app.Post("/update-match-status", matchHandler.HandleUpdateMatchStatus)
	app.Post("/delete-match", matchHandler.HandleDeleteMatch)
	app.Post("/process-file", fileHandler.HandleProcessFile)
	app.Post("/save-resume", fileHandler.HandleSaveResume)
	app.Post("/signup", signupHandler.HandleSignup)
	app.Post("/check-signup-status", signupHandler.HandleCheckSignupStatus)

	// Health check with collaborator capability flags
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":               "ok",
			"service":              "Mentorship Matching API",
			"timestamp":            time.Now().Format(time.RFC3339),
			"ai_available":         caps.AIAvailable,
			"database_available":   caps.StorageAvailable,
			"extraction_available": caps.ExtractionAvailable,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
