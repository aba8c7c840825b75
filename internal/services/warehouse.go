package services

import (
	"context"

	"go.uber.org/zap"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/repositories"
)

// WarehouseService exposes stored profiles to the warehouse routes.
type WarehouseService interface {
	List(query string) ([]models.WarehouseEntry, error)
	Get(id string) (*models.WarehouseEntry, error)
	Delete(ctx context.Context, id string) error
}

type warehouseService struct {
	repo  repositories.CVRepository
	index ProfileIndex
	log   *zap.SugaredLogger
}

// NewWarehouseService builds the service. index may be nil.
func NewWarehouseService(repo repositories.CVRepository, index ProfileIndex) WarehouseService {
	return &warehouseService{
		repo:  repo,
		index: index,
		log:   zap.S().Named("warehouse"),
	}
}

// List implements WarehouseService. Entries carry summary fields only.
func (w *warehouseService) List(query string) ([]models.WarehouseEntry, error) {
	records, err := w.repo.List(query)
	if err != nil {
		return nil, err
	}
	entries := make([]models.WarehouseEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.SummaryEntry())
	}
	return entries, nil
}

// Get implements WarehouseService.
func (w *warehouseService) Get(id string) (*models.WarehouseEntry, error) {
	record, err := w.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	entry := record.Entry()
	return &entry, nil
}

// Delete implements WarehouseService. The stored row is authoritative; a
// stale vector left behind is only logged.
func (w *warehouseService) Delete(ctx context.Context, id string) error {
	if err := w.repo.Delete(id); err != nil {
		return err
	}
	w.log.Infow("cv deleted", "cv_id", id)

	if w.index != nil {
		if err := w.index.Delete(ctx, id); err != nil {
			w.log.Warnw("failed to remove cv from profile index", "cv_id", id, "error", err)
		}
	}
	return nil
}
