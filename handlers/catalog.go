// handlers/catalog.go
package handlers

import (
	"ecotrack/catalog"

	"github.com/gofiber/fiber/v2"
)

type CalculateRequest struct {
	ActivityID string  `json:"activity_id"`
	Quantity   float64 `json:"quantity"`
}

// GetCatalog returns every catalog entry.
// GET /api/catalog
func (h *Handler) GetCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"activities": h.svc.Tables.Catalog.All(),
		"categories": catalog.Categories,
	})
}

// GET /api/catalog/:category
func (h *Handler) GetCatalogCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	if !catalog.IsCategory(category) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Unknown category"})
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"category":   category,
		"activities": h.svc.Tables.Catalog.ByCategory(catalog.Category(category)),
	})
}

// Calculate previews an activity's impact without logging it.
// POST /api/calculator
func (h *Handler) Calculate(c *fiber.Ctx) error {
	var req CalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	preview, err := h.svc.Activities.Calculate(req.ActivityID, req.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "result": preview})
}
