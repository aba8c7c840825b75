package views

import (
	"unicode/utf8"

	"alfredoptarigan/cv-warehouse/internal/models"
)

const summaryLimit = 100

// ListItem is one row of the warehouse list. Match is set only for rows
// produced by the AI-assisted search.
type ListItem struct {
	ID       string
	Name     string
	Filename string
	Summary  string
	Match    *MatchBadge
}

type MatchBadge struct {
	Score  int
	Reason string
	Band   Band
}

// TruncateSummary cuts summaries longer than 100 characters and marks the cut
// with an ellipsis.
func TruncateSummary(s string) string {
	if utf8.RuneCountInString(s) <= summaryLimit {
		return s
	}
	return string([]rune(s)[:summaryLimit]) + "..."
}

func NewListItems(entries []models.WarehouseEntry) []ListItem {
	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ListItem{
			ID:       e.ID,
			Name:     orNA(e.DisplayName()),
			Filename: orNA(e.Filename),
			Summary:  orNA(TruncateSummary(e.Summary)),
		})
	}
	return items
}

func NewMatchItems(matches []models.MatchResult) []ListItem {
	items := make([]ListItem, 0, len(matches))
	for _, m := range matches {
		entry := models.WarehouseEntry{ID: m.ID, Filename: m.Filename, Profile: m.CV}
		items = append(items, ListItem{
			ID:       m.ID,
			Name:     orNA(entry.DisplayName()),
			Filename: orNA(m.Filename),
			Summary:  orNA(TruncateSummary(m.CV.Summary)),
			Match: &MatchBadge{
				Score:  m.MatchScore,
				Reason: orNA(m.MatchReason),
				Band:   Severity(m.MatchScore),
			},
		})
	}
	return items
}
