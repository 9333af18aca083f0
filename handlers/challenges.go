// handlers/challenges.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type ChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
}

// GET /api/challenges
func (h *Handler) GetChallenges(c *fiber.Ctx) error {
	challenges, err := h.svc.Challenges.ListActive(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "challenges": challenges})
}

// GET /api/challenges/mine
func (h *Handler) GetMyChallenges(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	parts, err := h.svc.Challenges.Mine(c.UserContext(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "participations": parts})
}

// POST /api/challenges/join
func (h *Handler) JoinChallenge(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	part, err := h.svc.Challenges.Join(c.UserContext(), uid, req.ChallengeID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "participation": part})
}

// ClaimChallenge pays the reward of a completed challenge.
// POST /api/challenges/claim
func (h *Handler) ClaimChallenge(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.svc.Challenges.Claim(c.UserContext(), uid, req.ChallengeID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "challenge_id": res.ChallengeID, "reward": res.Reward})
}
