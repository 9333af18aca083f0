// handlers/activities.go
package handlers

import (
	"ecotrack/services"

	"github.com/gofiber/fiber/v2"
)

// LogActivity records an activity and returns the updated stats.
// POST /api/activities
func (h *Handler) LogActivity(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req services.LogActivityInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.svc.Activities.LogActivity(c.UserContext(), uid, req)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":              true,
		"activity":             res.Activity,
		"user":                 res.User,
		"streak":               res.Streak,
		"completed_challenges": res.CompletedChallenges,
		"level_up":             res.LevelUp,
		"equivalences":         res.Equivalences,
		"message":              res.Message,
	})
}

// GET /api/activities
func (h *Handler) GetRecentActivities(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	acts, err := h.svc.Activities.Recent(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "activities": acts})
}

// GET /api/activities/today
func (h *Handler) GetTodayActivities(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	acts, err := h.svc.Activities.Today(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "activities": acts})
}

// GET /api/activities/history
func (h *Handler) GetActivityHistory(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	acts, err := h.svc.Activities.History(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "activities": acts})
}

// GetWeeklyStats returns seven days of carbon per tracked category.
// GET /api/activities/stats
func (h *Handler) GetWeeklyStats(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	days, err := h.svc.Activities.WeeklyStats(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "days": days})
}

// GET /api/activities/:id
func (h *Handler) GetActivity(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	act, err := h.svc.Activities.Get(c.UserContext(), uid, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "activity": act})
}

// GET /api/analytics
func (h *Handler) GetAnalytics(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	a, err := h.svc.Activities.Analytics(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "analytics": a})
}
