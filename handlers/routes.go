// handlers/routes.go - Route table
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the API. auth guards every per-user route.
func (h *Handler) Register(app *fiber.App, auth fiber.Handler) {
	app.Get("/health", Health)

	api := app.Group("/api")

	// Public routes
	api.Get("/catalog", h.GetCatalog)
	api.Get("/catalog/:category", h.GetCatalogCategory)
	api.Post("/calculator", h.Calculate)
	api.Get("/leaderboard", h.GetLeaderboard)
	api.Get("/community/users", h.GetCommunity)
	api.Get("/challenges", h.GetChallenges)
	api.Get("/users/:id/profile", h.GetUserProfile)

	api.Post("/session", auth, h.StartSession)

	// Activity routes
	activities := api.Group("/activities", auth)
	activities.Get("/", h.GetRecentActivities)
	activities.Post("/", h.LogActivity)
	activities.Get("/today", h.GetTodayActivities)
	activities.Get("/history", h.GetActivityHistory)
	activities.Get("/stats", h.GetWeeklyStats)
	activities.Get("/:id", h.GetActivity)

	api.Get("/analytics", auth, h.GetAnalytics)

	// User routes
	me := api.Group("/users/me", auth)
	me.Get("/", h.GetCurrentUser)
	me.Put("/", h.UpdateCurrentUser)
	me.Get("/progress", h.GetProgress)
	me.Post("/reset", h.ResetStats)

	// Challenge routes
	challenges := api.Group("/challenges", auth)
	challenges.Get("/mine", h.GetMyChallenges)
	challenges.Post("/join", h.JoinChallenge)
	challenges.Post("/claim", h.ClaimChallenge)

	// Quest routes
	quests := api.Group("/quests", auth)
	quests.Get("/today", h.GetTodayQuests)
	quests.Post("/claim", h.ClaimQuest)
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   "1.0.0",
	})
}

// ErrorHandler renders errors that escape handlers. 500 details are hidden
// in production.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if production && code == fiber.StatusInternalServerError {
			message = internalErrorMessage
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}
