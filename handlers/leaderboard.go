// handlers/leaderboard.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the top users by ecoScore.
// GET /api/leaderboard
func (h *Handler) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := h.svc.Community.Leaderboard(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "leaderboard": entries})
}

// GetCommunity lists public profiles.
// GET /api/community/users?search=&page=1&limit=20
func (h *Handler) GetCommunity(c *fiber.Ctx) error {
	page := max(parseIntDefault(c.Query("page"), 1), 1)
	limit := clampInt(parseIntDefault(c.Query("limit"), 20), 1, 100)

	result, err := h.svc.Community.Community(c.UserContext(), c.Query("search"), page, limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"users":       result.Users,
		"total":       result.Total,
		"page":        result.Page,
		"total_pages": result.TotalPages,
		"limit":       limit,
	})
}
