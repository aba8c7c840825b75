package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/cv-warehouse/internal/models"
)

var ErrCVNotFound = errors.New("cv not found")

type CVRepository interface {
	Create(record *models.CVRecord) error
	List(query string) ([]models.CVRecord, error)
	FindAll() ([]models.CVRecord, error)
	FindByID(id string) (*models.CVRecord, error)
	FindByIDs(ids []string) ([]models.CVRecord, error)
	Delete(id string) error
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// Create implements CVRepository.
func (r *cvRepository) Create(record *models.CVRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}
	return nil
}

// List returns the newest records first. A non-empty query keeps records whose
// names, filename, summary or skills contain it, ignoring case.
func (r *cvRepository) List(query string) ([]models.CVRecord, error) {
	tx := r.db.Select("id", "filename", "ingestion_timestamp", "first_name", "last_name", "summary")

	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(filename) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(skills) LIKE ?",
			like, like, like, like, like,
		)
	}

	var records []models.CVRecord
	if err := tx.Order("ingestion_timestamp DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}
	return records, nil
}

// FindAll implements CVRepository.
func (r *cvRepository) FindAll() ([]models.CVRecord, error) {
	var records []models.CVRecord
	if err := r.db.Order("ingestion_timestamp DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find cvs: %w", err)
	}
	return records, nil
}

// FindByID implements CVRepository.
func (r *cvRepository) FindByID(id string) (*models.CVRecord, error) {
	cvID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrCVNotFound
	}

	var record models.CVRecord
	if err := r.db.Where("id = ?", cvID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCVNotFound
		}
		return nil, fmt.Errorf("failed to find cv: %w", err)
	}
	return &record, nil
}

// FindByIDs keeps the order of ids and skips unknown or malformed ones.
func (r *cvRepository) FindByIDs(ids []string) ([]models.CVRecord, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if cvID, err := uuid.Parse(id); err == nil {
			parsed = append(parsed, cvID)
		}
	}
	if len(parsed) == 0 {
		return nil, nil
	}

	var records []models.CVRecord
	if err := r.db.Where("id IN ?", parsed).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find cvs: %w", err)
	}

	byID := make(map[uuid.UUID]models.CVRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	ordered := make([]models.CVRecord, 0, len(records))
	for _, id := range parsed {
		if rec, ok := byID[id]; ok {
			ordered = append(ordered, rec)
		}
	}
	return ordered, nil
}

// Delete implements CVRepository.
func (r *cvRepository) Delete(id string) error {
	cvID, err := uuid.Parse(id)
	if err != nil {
		return ErrCVNotFound
	}

	result := r.db.Where("id = ?", cvID).Delete(&models.CVRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cv: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCVNotFound
	}
	return nil
}
