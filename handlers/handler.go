// handlers/handler.go - Shared handler state and error mapping
package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"ecotrack/middleware"
	"ecotrack/services"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "An error occurred. Please try again later."

// Handler adapts services to JSON endpoints.
type Handler struct {
	svc    *services.Services
	logger *slog.Logger
}

func New(svc *services.Services, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// fail writes the JSON error for a service error. Storage failures are logged
// and reported with a generic message.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var (
		fe   *fiber.Error
		verr *services.ValidationError
	)
	switch {
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Error(),
			"field":   verr.Field,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	h.logger.Error("request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": internalErrorMessage})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
}

// userID returns the session user or a 401 error for fail.
func userID(c *fiber.Ctx) (string, error) {
	return middleware.GetUserID(c)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
