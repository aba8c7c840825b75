package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/services"
)

type SearchHandler struct {
	search   services.SmartSearchService
	validate *validator.Validate
	log      *zap.SugaredLogger
}

func NewSearchHandler(search services.SmartSearchService) *SearchHandler {
	return &SearchHandler{
		search:   search,
		validate: validator.New(),
		log:      zap.S().Named("search-handler"),
	}
}

// HandleSmartSearch handles POST /search/smart. Ranking failures answer with
// an empty result list.
func (h *SearchHandler) HandleSmartSearch(c *fiber.Ctx) error {
	var req models.SmartSearchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Detail: "Invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
			Detail: "query is required",
		})
	}

	results, err := h.search.Search(c.UserContext(), req.Query)
	if err != nil {
		h.log.Errorw("smart search failed", "query", req.Query, "error", err)
		results = []models.MatchResult{}
	}

	return c.JSON(models.SmartSearchResponse{Results: results})
}
