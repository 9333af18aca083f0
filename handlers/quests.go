// handlers/quests.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type QuestClaimRequest struct {
	QuestID string `json:"quest_id"`
}

// GET /api/quests/today
func (h *Handler) GetTodayQuests(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	daily, err := h.svc.Quests.Today(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "daily": daily})
}

// POST /api/quests/claim
func (h *Handler) ClaimQuest(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req QuestClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	claim, err := h.svc.Quests.Claim(c.UserContext(), uid, req.QuestID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "claim": claim, "reward": claim.Reward})
}
