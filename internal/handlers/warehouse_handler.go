package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/repositories"
	"alfredoptarigan/cv-warehouse/internal/services"
)

type WarehouseHandler struct {
	warehouse services.WarehouseService
	log       *zap.SugaredLogger
}

func NewWarehouseHandler(warehouse services.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{
		warehouse: warehouse,
		log:       zap.S().Named("warehouse-handler"),
	}
}

// HandleList handles GET /cvs
func (h *WarehouseHandler) HandleList(c *fiber.Ctx) error {
	entries, err := h.warehouse.List(c.Query("q"))
	if err != nil {
		h.log.Errorw("failed to list cvs", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Detail: "Failed to list CVs",
		})
	}

	// Summary rows only: drop the empty profile collections from the payload.
	rows := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, fiber.Map{
			"id":         e.ID,
			"filename":   e.Filename,
			"first_name": e.FirstName,
			"last_name":  e.LastName,
			"summary":    e.Summary,
		})
	}
	return c.JSON(rows)
}

// HandleGet handles GET /cvs/:id
func (h *WarehouseHandler) HandleGet(c *fiber.Ctx) error {
	entry, err := h.warehouse.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrCVNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
				Detail: "CV not found",
			})
		}
		h.log.Errorw("failed to load cv", "cv_id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Detail: "Failed to load CV",
		})
	}

	return c.JSON(entry)
}

// HandleDelete handles DELETE /cvs/:id
func (h *WarehouseHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.warehouse.Delete(c.UserContext(), id); err != nil {
		h.log.Errorw("failed to delete cv", "cv_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Detail: "Failed to delete CV",
		})
	}

	return c.JSON(models.DeleteResponse{
		Status:  "success",
		Message: fmt.Sprintf("CV %s deleted", id),
	})
}
