package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/cv-warehouse/internal/config"
	"alfredoptarigan/cv-warehouse/internal/handlers"
	"alfredoptarigan/cv-warehouse/internal/repositories"
	"alfredoptarigan/cv-warehouse/internal/services"
	"alfredoptarigan/cv-warehouse/pkg/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	base := log.InitLog(log.ParseLevel(cfg.Server.LogLevel))
	defer func() { _ = base.Sync() }()
	undo := zap.ReplaceGlobals(base)
	defer undo()

	sugar := zap.S().Named("api")
	sugar.Infow("config loaded", "env", cfg.Server.Env, "db_driver", cfg.Database.Driver)

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	cvRepo := repositories.NewCVRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		sugar.Fatalw("failed to create upload directory", "error", err)
	}

	pdfParser := services.NewPDFParserService()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		sugar.Fatalw("failed to initialize gemini", "error", err)
	}
	sugar.Infow("gemini initialized", "model", cfg.Gemini.Model)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Qdrant is optional; without it smart search ranks the whole warehouse.
	var (
		profileIndex services.ProfileIndex
		indexWorker  services.IndexWorker
	)
	if cfg.Qdrant.Enabled() {
		profileIndex, err = services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			sugar.Fatalw("failed to initialize qdrant", "error", err)
		}
		if err := profileIndex.InitCollection(ctx); err != nil {
			sugar.Fatalw("failed to initialize qdrant collection", "error", err)
		}

		indexWorker = services.NewIndexWorker(cvRepo, geminiService, profileIndex, cfg.Search.IndexWorkers)
		indexWorker.Start(ctx)
		sugar.Infow("profile index enabled", "collection", cfg.Qdrant.Collection)
	}

	analyzer := services.NewAnalyzerService(cvRepo, geminiService, pdfParser, storageService, indexWorker)
	warehouse := services.NewWarehouseService(cvRepo, profileIndex)
	smartSearch := services.NewSmartSearchService(cvRepo, geminiService, profileIndex, cfg.Search.CandidateLimit)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Warehouse API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
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

	handlers.Register(
		app,
		handlers.NewAnalyzeHandler(analyzer, cfg.Storage.MaxFileSize),
		handlers.NewWarehouseHandler(warehouse),
		handlers.NewSearchHandler(smartSearch),
	)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		sugar.Info("shutting down server")
		if indexWorker != nil {
			indexWorker.Stop()
		}
		if err := app.Shutdown(); err != nil {
			sugar.Errorw("server forced to shutdown", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	sugar.Infow("server starting", "addr", addr)

	if err := app.Listen(addr); err != nil {
		sugar.Fatalw("failed to start server", "error", err)
	}
}
