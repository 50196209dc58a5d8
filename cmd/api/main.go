package main

import (
	"context"
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

	"hireflow/ats-matching/internal/config"
	"hireflow/ats-matching/internal/handlers"
	"hireflow/ats-matching/internal/repositories"
	"hireflow/ats-matching/internal/services"
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
	candidateRepo := repositories.NewCandidateRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant vector store
	vectorStore, err := services.NewQdrantVectorStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize core services
	embedder := services.NewEmbeddingService(geminiService)
	blobStore := services.NewHTTPBlobStore(cfg.Storage.GatewayBase)
	extractor := services.NewPDFExtractor()
	parser := services.NewResumeParser(geminiService, cfg.Worker.RetryMaxAttempts)
	scorer := services.NewJobScorer(geminiService, cfg.Worker.RetryMaxAttempts)
	summarizer := services.NewSummarizer(geminiService, cfg.Worker.RetryMaxAttempts)

	matchService := services.NewMatchService(candidateRepo, jobRepo, appRepo, vectorStore)
	policyService := services.NewPolicyService(appRepo, candidateRepo, jobRepo, companyRepo)

	pipeline := services.NewEnrichmentPipeline(
		appRepo,
		candidateRepo,
		jobRepo,
		companyRepo,
		blobStore,
		extractor,
		parser,
		embedder,
		scorer,
		summarizer,
		vectorStore,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize and start worker
	worker := services.NewWorker(appRepo, pipeline, cfg.Worker.Concurrency)
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	appHandler := handlers.NewApplicationHandler(appRepo, candidateRepo, jobRepo, worker)
	jobHandler := handlers.NewJobHandler(jobRepo, embedder, vectorStore)
	searchHandler := handlers.NewSearchHandler(matchService, vectorStore)
	settingsHandler := handlers.NewSettingsHandler(companyRepo, policyService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Matching API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
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

	// API endpoints
	api.Post("/applications", appHandler.HandleCreate)
	api.Post("/applications/:id/process", appHandler.HandleProcess)
	api.Get("/applications/:id", appHandler.HandleGet)
	api.Post("/jobs", jobHandler.HandleCreate)
	api.Get("/jobs/:id/similar-candidates", searchHandler.HandleSimilarCandidates)
	api.Get("/candidates/:id/similar-jobs", searchHandler.HandleSimilarJobs)
	api.Put("/companies/:id/settings/pipeline", settingsHandler.HandleUpdate)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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
