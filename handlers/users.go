// handlers/users.go
package handlers

import (
	"ecotrack/middleware"
	"ecotrack/services"

	"github.com/gofiber/fiber/v2"
)

// StartSession creates the user row for a verified token on first sign-in.
// POST /api/session
func (h *Handler) StartSession(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return h.fail(c, fiber.NewError(fiber.StatusUnauthorized, "User not authenticated"))
	}

	user, created, err := h.svc.Stats.Provision(c.UserContext(), claims.UserID, claims.Name, claims.Email)
	if err != nil {
		return h.fail(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "user": user, "created": created})
}

// GET /api/users/me
func (h *Handler) GetCurrentUser(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	user, err := h.svc.Stats.Get(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// PUT /api/users/me
func (h *Handler) UpdateCurrentUser(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req services.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.svc.Stats.UpdateProfile(c.UserContext(), uid, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// GetProgress returns level status and badges.
// GET /api/users/me/progress
func (h *Handler) GetProgress(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	report, err := h.svc.Stats.Progress(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "progress": report})
}

// ResetStats wipes the caller's activities and aggregate.
// POST /api/users/me/reset
func (h *Handler) ResetStats(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	user, err := h.svc.Stats.Reset(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// GET /api/users/:id/profile
func (h *Handler) GetUserProfile(c *fiber.Ctx) error {
	profile, err := h.svc.Community.Profile(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "profile": profile})
}
