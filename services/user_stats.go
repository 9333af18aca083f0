// services/user_stats.go - Per-user aggregate root
package services

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"ecotrack/models"
	"ecotrack/progression"
	"ecotrack/scoring"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserStatsService is the only writer of the stats columns on users. Every
// mutation for one user runs under that user's lock and a row lock.
type UserStatsService struct {
	db     *gorm.DB
	locks  *userLocks
	levels progression.Levels
	badges progression.Badges
	logger *slog.Logger
}

func NewUserStatsService(db *gorm.DB, levels progression.Levels, badges progression.Badges, logger *slog.Logger) *UserStatsService {
	return &UserStatsService{
		db:     db,
		locks:  newUserLocks(),
		levels: levels,
		badges: badges,
		logger: logger,
	}
}

// ProgressReport is the gamification view of a user.
type ProgressReport struct {
	User       *models.User                `json:"user"`
	Stats      progression.Stats           `json:"stats"`
	Level      progression.LevelStatus     `json:"level"`
	Badges     []progression.Badge         `json:"badges"`
	NextBadges []progression.BadgeProgress `json:"next_badges"`
}

func (s *UserStatsService) lockUser(userID string) func() {
	return s.locks.lock(userID)
}

// loadForUpdate reads the user row and holds its lock until tx ends.
func loadForUpdate(tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user", userID)
	}
	if err != nil {
		return nil, storageErr("load user", err)
	}
	return &user, nil
}

// applyActivity folds a persisted activity into the aggregate. Additive
// columns are incremented in SQL; streak columns are set from values computed
// under the row lock.
func (s *UserStatsService) applyActivity(tx *gorm.DB, userID string, act *models.Activity, streak scoring.Streak) error {
	magnitude := math.Abs(act.CarbonImpact)
	updates := map[string]any{
		"eco_score":      gorm.Expr("eco_score + ?", act.Points),
		"total_saved":    gorm.Expr("total_saved + ?", act.CarbonImpact),
		"streak_current": streak.Current,
		"streak_longest": streak.Longest,
		"last_activity":  act.Date,
	}
	if act.IsEmission {
		updates["carbon_emitted"] = gorm.Expr("carbon_emitted + ?", magnitude)
	}
	if act.IsAvoided {
		updates["carbon_avoided"] = gorm.Expr("carbon_avoided + ?", magnitude)
	}

	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return storageErr("update user aggregate", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("user", userID)
	}
	return nil
}

// grantPoints adds reward points. Callers guarantee idempotency.
func (s *UserStatsService) grantPoints(tx *gorm.DB, userID string, points int) error {
	res := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("eco_score", gorm.Expr("eco_score + ?", points))
	if res.Error != nil {
		return storageErr("grant points", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("user", userID)
	}
	return nil
}

func (s *UserStatsService) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user", userID)
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return &user, nil
}

// Provision creates the user row for a verified session on first sight and
// returns the existing row afterwards. created reports a new row.
func (s *UserStatsService) Provision(ctx context.Context, userID, name, email string) (*models.User, bool, error) {
	if userID == "" {
		return nil, false, invalid("user_id", "user ID required")
	}
	if name == "" {
		name = "Eco User"
	}

	user := &models.User{ID: userID, Name: name, Email: email}
	if user.Email == "" {
		user.Email = userID + "@users.ecotrack.local"
	}
	if err := validate.Var(user.Email, "email"); err != nil {
		return nil, false, invalid("email", "invalid email address")
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(user)
	if res.Error != nil {
		return nil, false, storageErr("provision user", res.Error)
	}

	existing, err := s.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if res.RowsAffected > 0 {
		s.logger.Info("user provisioned", slog.String("user_id", userID))
	}
	return existing, res.RowsAffected > 0, nil
}

// ProfileUpdate holds the user-editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	Avatar        *string `json:"avatar" validate:"omitempty,max=500"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	Country       *string `json:"country" validate:"omitempty,max=100"`
	PublicProfile *bool   `json:"public_profile"`
}

// UpdateProfile edits profile fields. Stats columns are not reachable here.
func (s *UserStatsService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Avatar != nil {
		updates["avatar"] = *in.Avatar
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.Country != nil {
		updates["country"] = *in.Country
	}
	if in.PublicProfile != nil {
		updates["public_profile"] = *in.PublicProfile
	}
	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if res.Error != nil {
			return nil, storageErr("update profile", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, notFound("user", userID)
		}
	}
	return s.Get(ctx, userID)
}

func (s *UserStatsService) statsFor(ctx context.Context, user *models.User) (progression.Stats, error) {
	var activities, completed int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Activity{}).Where("user_id = ?", user.ID).Count(&activities).Error; err != nil {
		return progression.Stats{}, storageErr("count activities", err)
	}
	if err := db.Model(&models.ChallengeParticipant{}).Where("user_id = ? AND completed = ?", user.ID, true).Count(&completed).Error; err != nil {
		return progression.Stats{}, storageErr("count completed challenges", err)
	}
	return progression.Stats{
		EcoScore:            user.EcoScore,
		CarbonAvoided:       user.CarbonAvoided,
		StreakCurrent:       user.StreakCurrent,
		StreakLongest:       user.StreakLongest,
		CompletedChallenges: int(completed),
		Activities:          int(activities),
	}, nil
}

// Progress reports level, unlocked badges and the next three badges.
func (s *UserStatsService) Progress(ctx context.Context, userID string) (*ProgressReport, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.statsFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return &ProgressReport{
		User:       user,
		Stats:      stats,
		Level:      s.levels.Status(user.EcoScore),
		Badges:     s.badges.Unlocked(stats),
		NextBadges: s.badges.Next(stats, 3),
	}, nil
}

// Reset deletes the user's activities and quest claims and zeroes the
// aggregate. StreakLongest is kept as the historical best.
func (s *UserStatsService) Reset(ctx context.Context, userID string) (*models.User, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadForUpdate(tx, userID); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Activity{}).Error; err != nil {
			return storageErr("delete activities", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.QuestClaim{}).Error; err != nil {
			return storageErr("delete quest claims", err)
		}
		err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"eco_score":      0,
			"total_saved":    0,
			"carbon_emitted": 0,
			"carbon_avoided": 0,
			"streak_current": 0,
			"last_activity":  nil,
		}).Error
		return storageErr("reset user aggregate", err)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user stats reset", slog.String("user_id", userID))
	return s.Get(ctx, userID)
}
