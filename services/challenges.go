// services/challenges.go - Challenge participation, progress and rewards
package services

import (
	"context"
	"errors"
	"log/slog"

	"ecotrack/logging"
	"ecotrack/models"
	"ecotrack/scoring"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeService struct {
	db     *gorm.DB
	stats  *UserStatsService
	clock  Clock
	logger *slog.Logger
}

func NewChallengeService(db *gorm.DB, stats *UserStatsService, clock Clock, logger *slog.Logger) *ChallengeService {
	return &ChallengeService{db: db, stats: stats, clock: clock, logger: logger}
}

// ClaimResult is returned by a successful claim.
type ClaimResult struct {
	ChallengeID string `json:"challenge_id"`
	Reward      int    `json:"reward"`
}

// ListActive returns active challenges, newest first.
func (s *ChallengeService) ListActive(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&challenges).Error
	if err != nil {
		return nil, storageErr("list challenges", err)
	}
	return challenges, nil
}

// Mine returns the user's participations with their challenges.
func (s *ChallengeService) Mine(ctx context.Context, userID string) ([]models.ChallengeParticipant, error) {
	var parts []models.ChallengeParticipant
	err := s.db.WithContext(ctx).
		Preload("Challenge").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&parts).Error
	if err != nil {
		return nil, storageErr("list participations", err)
	}
	return parts, nil
}

// Join enrolls the user with progress 0.
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID string) (*models.ChallengeParticipant, error) {
	if challengeID == "" {
		return nil, invalid("challenge_id", "challenge ID required")
	}

	part := &models.ChallengeParticipant{
		UserID:      userID,
		ChallengeID: challengeID,
		JoinedAt:    s.clock.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&users).Error; err != nil {
			return storageErr("check user", err)
		}
		if users == 0 {
			return notFound("user", userID)
		}

		var challenge models.Challenge
		err := tx.Where("id = ? AND is_active = ?", challengeID, true).First(&challenge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("challenge", challengeID)
		}
		if err != nil {
			return storageErr("load challenge", err)
		}

		var existing int64
		if err := tx.Model(&models.ChallengeParticipant{}).
			Where("user_id = ? AND challenge_id = ?", userID, challengeID).
			Count(&existing).Error; err != nil {
			return storageErr("check participation", err)
		}
		if existing > 0 {
			return conflict("already joined this challenge")
		}

		if err := tx.Create(part).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("already joined this challenge")
			}
			return storageErr("join challenge", err)
		}
		part.Challenge = &challenge
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("challenge joined", slog.String("user_id", userID), slog.String("challenge_id", challengeID))
	return part, nil
}

// Claim pays a completed challenge's reward through the same grant used by
// auto-completion, so a reward is paid at most once whichever path runs first.
func (s *ChallengeService) Claim(ctx context.Context, userID, challengeID string) (*ClaimResult, error) {
	if challengeID == "" {
		return nil, invalid("challenge_id", "challenge ID required")
	}

	unlock := s.stats.lockUser(userID)
	defer unlock()

	var result *ClaimResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		part, err := loadParticipation(tx, userID, challengeID)
		if err != nil {
			return err
		}
		if part.Rewarded {
			return conflict("reward already claimed")
		}
		if part.Progress < scoring.ChallengeComplete {
			return conflict("challenge not completed yet")
		}
		if !part.Completed {
			now := s.clock.Now()
			if err := tx.Model(&models.ChallengeParticipant{}).
				Where("user_id = ? AND challenge_id = ?", userID, challengeID).
				Updates(map[string]any{"completed": true, "completed_at": now}).Error; err != nil {
				return storageErr("complete challenge", err)
			}
		}

		granted, err := s.grantOnce(tx, part)
		if err != nil {
			return err
		}
		if !granted {
			return conflict("reward already claimed")
		}
		result = &ClaimResult{ChallengeID: challengeID, Reward: part.Challenge.Reward}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("challenge reward claimed",
		slog.String("user_id", userID),
		slog.String("challenge_id", challengeID),
		slog.Int("reward", result.Reward))
	return result, nil
}

func loadParticipation(tx *gorm.DB, userID, challengeID string) (*models.ChallengeParticipant, error) {
	var part models.ChallengeParticipant
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&part).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("participation in challenge", challengeID)
	}
	if err != nil {
		return nil, storageErr("load participation", err)
	}

	var challenge models.Challenge
	err = tx.Where("id = ?", challengeID).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("challenge", challengeID)
	}
	if err != nil {
		return nil, storageErr("load challenge", err)
	}
	part.Challenge = &challenge
	return &part, nil
}

// grantOnce flips rewarded false→true and, only if this call flipped it,
// credits the reward. It reports whether points were granted.
func (s *ChallengeService) grantOnce(tx *gorm.DB, part *models.ChallengeParticipant) (bool, error) {
	res := tx.Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND challenge_id = ? AND rewarded = ?", part.UserID, part.ChallengeID, false).
		Updates(map[string]any{"rewarded": true, "rewarded_at": s.clock.Now()})
	if res.Error != nil {
		return false, storageErr("mark reward", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if err := s.stats.grantPoints(tx, part.UserID, part.Challenge.Reward); err != nil {
		return false, err
	}
	return true, nil
}

// advance moves every open participation the activity matches. It is best
// effort: failures are logged and skipped. Returns ids that completed.
// The caller holds the user lock.
func (s *ChallengeService) advance(ctx context.Context, act *models.Activity) []string {
	log := logging.WithUser(s.logger, act.UserID).With(slog.String("activity_id", act.ID))

	var open []models.ChallengeParticipant
	err := s.db.WithContext(ctx).
		Preload("Challenge").
		Where("user_id = ? AND completed = ?", act.UserID, false).
		Find(&open).Error
	if err != nil {
		log.Warn("challenge progress skipped", slog.Any("error", err))
		return nil
	}

	completed := []string{}
	for i := range open {
		part := &open[i]
		if part.Challenge == nil {
			continue
		}
		target := part.Challenge.Target.Data()
		if !scoring.ChallengeMatches(part.Challenge.Category, target.Action, act.Type, act.Action) {
			continue
		}

		done, err := s.advanceOne(ctx, part.ChallengeID, act.UserID)
		if err != nil {
			log.Warn("challenge progress failed",
				slog.String("challenge_id", part.ChallengeID),
				slog.Any("error", err))
			continue
		}
		if done {
			completed = append(completed, part.ChallengeID)
		}
	}
	return completed
}

// advanceOne applies one progress step to a participation under a row lock and
// grants the reward on the transition to completed.
func (s *ChallengeService) advanceOne(ctx context.Context, challengeID, userID string) (bool, error) {
	justCompleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		part, err := loadParticipation(tx, userID, challengeID)
		if err != nil {
			return err
		}
		if part.Completed {
			return nil
		}

		progress, done := scoring.AdvanceChallenge(part.Progress)
		updates := map[string]any{"progress": progress}
		if done {
			updates["completed"] = true
			updates["completed_at"] = s.clock.Now()
		}
		if err := tx.Model(&models.ChallengeParticipant{}).
			Where("user_id = ? AND challenge_id = ?", userID, challengeID).
			Updates(updates).Error; err != nil {
			return storageErr("update challenge progress", err)
		}
		if !done {
			return nil
		}

		justCompleted = true
		_, err = s.grantOnce(tx, part)
		return err
	})
	return justCompleted, err
}
