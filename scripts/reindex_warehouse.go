package main

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/cv-warehouse/internal/config"
	"alfredoptarigan/cv-warehouse/internal/repositories"
	"alfredoptarigan/cv-warehouse/internal/services"
	"alfredoptarigan/cv-warehouse/pkg/log"
)

// Rebuilds the profile index from every stored profile. Run after changing
// the embedding model or pointing QDRANT_URL at an empty collection.
func main() {
	cfg := config.Load()

	base := log.InitLog(log.ParseLevel(cfg.Server.LogLevel))
	defer func() { _ = base.Sync() }()
	undo := zap.ReplaceGlobals(base)
	defer undo()

	sugar := zap.S().Named("reindex")

	if !cfg.Qdrant.Enabled() {
		sugar.Fatal("QDRANT_URL is not set, nothing to index")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	repo := repositories.NewCVRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		sugar.Fatalw("failed to initialize gemini", "error", err)
	}

	index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		sugar.Fatalw("failed to initialize qdrant", "error", err)
	}

	ctx := context.Background()
	if err := index.InitCollection(ctx); err != nil {
		sugar.Fatalw("failed to initialize collection", "error", err)
	}

	records, err := repo.FindAll()
	if err != nil {
		sugar.Fatalw("failed to load profiles", "error", err)
	}
	sugar.Infow("reindexing warehouse", "profiles", len(records))

	var indexed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Search.IndexWorkers, 1))
	for _, record := range records {
		entry := record.Entry()
		g.Go(func() error {
			if err := services.IndexProfile(gctx, geminiService, index, entry); err != nil {
				sugar.Errorw("failed to index profile", "cv_id", entry.ID, "error", err)
				failed.Add(1)
				return nil
			}
			indexed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	sugar.Infow("reindex complete", "indexed", indexed.Load(), "failed", failed.Load())
}
