package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the collaborator routes on app.
func Register(app *fiber.App, analyze *AnalyzeHandler, warehouse *WarehouseHandler, search *SearchHandler) {
	app.Post("/analyze", analyze.HandleAnalyze)
	app.Get("/cvs", warehouse.HandleList)
	app.Get("/cvs/:id", warehouse.HandleGet)
	app.Delete("/cvs/:id", warehouse.HandleDelete)
	app.Post("/search/smart", search.HandleSmartSearch)

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Warehouse API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /analyze",
				"GET /cvs",
				"GET /cvs/:id",
				"DELETE /cvs/:id",
				"POST /search/smart",
			},
		})
	})
}

// ErrorHandler renders unhandled errors in the {detail} shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
	})
}
