package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/repositories"
)

// IndexWorker embeds freshly stored profiles into the profile index in the
// background so analysis responses do not wait on the vector store.
type IndexWorker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(cvID string)
}

type indexWorker struct {
	repo        repositories.CVRepository
	gemini      GeminiService
	index       ProfileIndex
	jobQueue    chan string
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	log         *zap.SugaredLogger
}

func NewIndexWorker(
	repo repositories.CVRepository,
	gemini GeminiService,
	index ProfileIndex,
	concurrency int,
) IndexWorker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &indexWorker{
		repo:        repo,
		gemini:      gemini,
		index:       index,
		jobQueue:    make(chan string, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		log:         zap.S().Named("index-worker"),
	}
}

// Start implements IndexWorker.
func (w *indexWorker) Start(ctx context.Context) {
	w.log.Infow("starting index worker", "concurrency", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements IndexWorker.
func (w *indexWorker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("stopping index worker")
		close(w.stopChan)
	})
	w.wg.Wait()
}

// Enqueue implements IndexWorker.
func (w *indexWorker) Enqueue(cvID string) {
	select {
	case w.jobQueue <- cvID:
		w.log.Debugw("index job enqueued", "cv_id", cvID)
	case <-w.stopChan:
		w.log.Warnw("worker stopped, cannot enqueue index job", "cv_id", cvID)
	}
}

func (w *indexWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.log.Debugw("worker stopped", "worker", workerID)
			return
		case <-ctx.Done():
			return
		case cvID := <-w.jobQueue:
			record, err := w.repo.FindByID(cvID)
			if err != nil {
				w.log.Errorw("failed to load cv for indexing", "worker", workerID, "cv_id", cvID, "error", err)
				continue
			}
			if err := IndexProfile(ctx, w.gemini, w.index, record.Entry()); err != nil {
				w.log.Errorw("failed to index cv", "worker", workerID, "cv_id", cvID, "error", err)
				continue
			}
			w.log.Infow("cv indexed", "worker", workerID, "cv_id", cvID)
		}
	}
}

// IndexProfile embeds one warehouse entry and writes it to the index.
func IndexProfile(ctx context.Context, gemini GeminiService, index ProfileIndex, entry models.WarehouseEntry) error {
	text := ProfileDocument(entry.Profile)
	embedding, err := gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed cv %s: %w", entry.ID, err)
	}
	if err := index.Upsert(ctx, entry.ID, text, embedding); err != nil {
		return fmt.Errorf("failed to index cv %s: %w", entry.ID, err)
	}
	return nil
}
