package models

import (
	"time"

	"github.com/google/uuid"
)

// CVRecord is the persisted form of an analyzed CV.
type CVRecord struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Filename           string       `gorm:"type:text;not null" json:"filename"`
	IngestionTimestamp time.Time    `gorm:"not null;index" json:"ingestion_timestamp"`
	FirstName          string       `gorm:"type:text;not null" json:"first_name"`
	LastName           string       `gorm:"type:text;not null" json:"last_name"`
	Email              *string      `gorm:"type:text" json:"email"`
	Phone              *string      `gorm:"type:text" json:"phone"`
	Summary            string       `gorm:"type:text" json:"summary"`
	Skills             []string     `gorm:"type:text;serializer:json" json:"skills"`
	WorkExperience     []Experience `gorm:"type:text;serializer:json" json:"work_experience"`
	Education          []Education  `gorm:"type:text;serializer:json" json:"education"`
}

func (CVRecord) TableName() string {
	return "cv_analysis"
}

// NewCVRecord builds a record for a freshly analyzed profile.
func NewCVRecord(profile Profile, filename string) *CVRecord {
	profile.Normalize()
	return &CVRecord{
		ID:                 uuid.New(),
		Filename:           filename,
		IngestionTimestamp: time.Now(),
		FirstName:          profile.FirstName,
		LastName:           profile.LastName,
		Email:              profile.Email,
		Phone:              profile.Phone,
		Summary:            profile.Summary,
		Skills:             profile.Skills,
		WorkExperience:     profile.WorkExperience,
		Education:          profile.Education,
	}
}

func (r CVRecord) Profile() Profile {
	p := Profile{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Summary:        r.Summary,
		Skills:         r.Skills,
		WorkExperience: r.WorkExperience,
		Education:      r.Education,
	}
	p.Normalize()
	return p
}

// Entry is the full warehouse view of the record.
func (r CVRecord) Entry() WarehouseEntry {
	return WarehouseEntry{ID: r.ID.String(), Filename: r.Filename, Profile: r.Profile()}
}

// SummaryEntry is the lightweight list view of the record.
func (r CVRecord) SummaryEntry() WarehouseEntry {
	return WarehouseEntry{
		ID:       r.ID.String(),
		Filename: r.Filename,
		Profile: Profile{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Summary:   r.Summary,
		},
	}
}
