package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/repositories"
)

// SmartSearchService ranks stored profiles against a natural-language query.
type SmartSearchService interface {
	Search(ctx context.Context, query string) ([]models.MatchResult, error)
}

type smartSearchService struct {
	repo           repositories.CVRepository
	gemini         GeminiService
	index          ProfileIndex
	candidateLimit int
	promptBuilder  *PromptBuilder
	log            *zap.SugaredLogger
}

// NewSmartSearchService wires the ranker. With a non-nil index and a positive
// candidateLimit only the nearest profiles are sent to the model.
func NewSmartSearchService(
	repo repositories.CVRepository,
	gemini GeminiService,
	index ProfileIndex,
	candidateLimit int,
) SmartSearchService {
	return &smartSearchService{
		repo:           repo,
		gemini:         gemini,
		index:          index,
		candidateLimit: candidateLimit,
		promptBuilder:  NewPromptBuilder(),
		log:            zap.S().Named("smart-search"),
	}
}

type rankingOutput struct {
	Results []struct {
		CVID        string  `json:"cv_id"`
		MatchReason string  `json:"match_reason"`
		MatchScore  float64 `json:"match_score"`
	} `json:"results"`
}

func (s *smartSearchService) Search(ctx context.Context, query string) ([]models.MatchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.MatchResult{}, nil
	}

	candidates, err := s.candidates(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []models.MatchResult{}, nil
	}

	prompt, err := s.promptBuilder.BuildSmartSearchPrompt(query, candidates)
	if err != nil {
		return nil, err
	}

	raw, err := s.gemini.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates: %w", err)
	}

	var out rankingOutput
	if err := parseJSONResponse(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse ranking: %w", err)
	}

	byID := make(map[string]models.WarehouseEntry, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	results := make([]models.MatchResult, 0, len(out.Results))
	seen := make(map[string]bool, len(out.Results))
	for _, r := range out.Results {
		entry, ok := byID[r.CVID]
		if !ok || seen[r.CVID] {
			s.log.Debugw("dropping ranked id", "cv_id", r.CVID, "known", ok)
			continue
		}
		seen[r.CVID] = true
		results = append(results, models.MatchResult{
			ID:          entry.ID,
			Filename:    entry.Filename,
			CV:          entry.Profile,
			MatchReason: r.MatchReason,
			MatchScore:  models.ClampScore(int(math.Round(r.MatchScore))),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	s.log.Infow("smart search ranked", "query", query, "candidates", len(candidates), "matches", len(results))
	return results, nil
}

// candidates returns the profiles handed to the model. A failing index falls
// back to the whole warehouse.
func (s *smartSearchService) candidates(ctx context.Context, query string) ([]models.WarehouseEntry, error) {
	if s.index != nil && s.candidateLimit > 0 {
		entries, err := s.nearest(ctx, query)
		if err == nil {
			return entries, nil
		}
		s.log.Warnw("profile index unavailable, ranking whole warehouse", "error", err)
	}

	records, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	entries := make([]models.WarehouseEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.Entry())
	}
	return entries, nil
}

func (s *smartSearchService) nearest(ctx context.Context, query string) ([]models.WarehouseEntry, error) {
	embedding, err := s.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}
	hits, err := s.index.Search(ctx, embedding, s.candidateLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	records, err := s.repo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	entries := make([]models.WarehouseEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.Entry())
	}
	return entries, nil
}
