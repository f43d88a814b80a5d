package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"nikhilsahni/resume-radar/internal/config"
	"nikhilsahni/resume-radar/internal/handlers"
	"nikhilsahni/resume-radar/internal/repositories"
	"nikhilsahni/resume-radar/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize core pipeline services
	extractorService := services.NewExtractorService()
	analyzerService, err := services.NewAnalyzerService(geminiService)
	if err != nil {
		log.Fatalf("❌ Failed to initialize analyzer: %v", err)
	}
	screeningService := services.NewScreeningService(extractorService, analyzerService)
	chatService := services.NewChatService(geminiService, jobRepo, candidateRepo, cfg.Dashboard.BaseURL)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(screeningService, cfg.Upload.MaxFileSize)
	jobHandler := handlers.NewJobHandler(
		jobRepo,
		candidateRepo,
		screeningService,
		geminiService,
		qdrantService,
		cfg.Upload.MaxFileSize,
	)
	chatHandler := handlers.NewChatHandler(chatService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Radar API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize) * 2,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Ad-hoc analysis and chat
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/chat", chatHandler.HandleChat)

	// Recruitment platform
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Delete("/jobs/:id", jobHandler.HandleDeleteJob)
	api.Post("/jobs/:id/apply", jobHandler.HandleApply)
	api.Get("/jobs/:id/candidates", jobHandler.HandleListCandidates)
	api.Get("/jobs/:id/candidates/similar", jobHandler.HandleSimilarCandidates)
	api.Get("/candidates/:id", jobHandler.HandleGetCandidate)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Radar API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"POST /api/v1/chat",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"POST /api/v1/jobs/:id/apply",
				"GET /api/v1/jobs/:id/candidates",
				"GET /api/v1/candidates/:id",
			},
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
