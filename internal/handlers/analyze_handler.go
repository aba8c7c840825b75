package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/services"
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
	log         *zap.SugaredLogger
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
		log:         zap.S().Named("analyze-handler"),
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Detail: "No file uploaded. Please send the document as 'file'.",
		})
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Detail: fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Detail: fmt.Sprintf("failed to read upload: %v", err),
		})
	}
	defer src.Close()

	resp, err := h.analyzer.Analyze(c.UserContext(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		h.log.Errorw("analysis failed", "file", file.Filename, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Detail: err.Error(),
		})
	}

	return c.JSON(resp)
}
