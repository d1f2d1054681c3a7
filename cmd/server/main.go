package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/kovaldeepai/server/internal/config"
	"github.com/kovaldeepai/server/internal/database"
	"github.com/kovaldeepai/server/internal/handler"
	"github.com/kovaldeepai/server/internal/middleware"
	"github.com/kovaldeepai/server/internal/repository"
	"github.com/kovaldeepai/server/internal/service"
	"github.com/kovaldeepai/server/internal/wix"
)

// main is the single entry-point for the coaching REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - Database: %s", cfg.DBName)
	log.Printf("  - Embed model: %s", cfg.EmbedModel)
	log.Printf("  - Chat model: %s", cfg.ChatModel)

	// Connect to MongoDB
	client, ctx, cancel, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancel()
	defer client.Disconnect(ctx)
	log.Printf("Connected to MongoDB")

	db := client.Database(cfg.DBName)

	// Optional Wix mirror for dive logs
	var mirror repository.DiveMirror
	if cfg.WixAPIKey != "" && cfg.WixSiteID != "" {
		mirror = wix.NewClient(cfg.WixAPIKey, cfg.WixSiteID)
		log.Printf("Wix dive log mirror enabled")
	}

	// Initialize repositories
	memoryRepo := repository.NewMemoryRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)
	diveRepo := repository.NewDiveRepository(db, mirror)

	// Initialize AI clients. Without a GCP project the server runs on the
	// static stubs so the API stays reachable in development.
	var (
		embedder service.Embedder
		llm      service.LLM
		aiMode   = "vertex"
	)
	if cfg.ProjectID == "" {
		log.Printf("Warning: GCP_PROJECT_ID not set; using static AI stubs")
		embedder = service.NewStaticEmbedder(0)
		llm = service.NewStaticLLM("")
		aiMode = "static"
	} else {
		vertexEmbedder, err := service.NewVertexEmbedder(context.Background(), service.VertexEmbedderConfig{
			ProjectID:       cfg.ProjectID,
			Location:        cfg.Location,
			Model:           cfg.EmbedModel,
			TaskType:        service.TaskRetrievalQuery,
			CredentialsFile: cfg.CredentialsFile,
		})
		if err != nil {
			log.Fatalf("Failed to initialize embedder: %v", err)
		}
		defer vertexEmbedder.Close()

		vertexLLM, err := service.NewVertexLLM(context.Background(), service.VertexLLMConfig{
			ProjectID:       cfg.ProjectID,
			Location:        cfg.Location,
			Model:           cfg.ChatModel,
			CredentialsFile: cfg.CredentialsFile,
		})
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
		defer vertexLLM.Close()

		embedder = vertexEmbedder
		llm = vertexLLM
	}

	// Initialize services
	retriever := service.NewRetriever(knowledgeRepo, cfg.KnowledgeApprover, service.DefaultTopK)
	chatSvc := service.NewChatService(embedder, retriever, llm, memoryRepo, diveRepo, cfg.SaveTimeout)
	analysisSvc := service.NewAnalysisService(diveRepo, llm)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(middleware.Logging())

	// Register routes
	handler.RegisterRoutes(app, chatSvc, analysisSvc, diveRepo, memoryRepo)
	handler.NewHealthHandler(client, aiMode).Register(app)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
