package services

import (
	"context"
	"errors"
	"log/slog"

	"ecotrack/models"
	"ecotrack/quests"
	"ecotrack/scoring"

	"gorm.io/gorm"
)

type QuestService struct {
	db         *gorm.DB
	pool       *quests.Pool
	stats      *UserStatsService
	activities *ActivityService
	clock      Clock
	logger     *slog.Logger
}

func NewQuestService(db *gorm.DB, pool *quests.Pool, stats *UserStatsService, activities *ActivityService, clock Clock, logger *slog.Logger) *QuestService {
	return &QuestService{db: db, pool: pool, stats: stats, activities: activities, clock: clock, logger: logger}
}

type QuestStatus struct {
	Quest    quests.Quest    `json:"quest"`
	Progress quests.Progress `json:"progress"`
	Claimed  bool            `json:"claimed"`
}

type DailyQuests struct {
	Day          string        `json:"day"`
	Quests       []QuestStatus `json:"quests"`
	Completed    int           `json:"completed"`
	EarnedReward int           `json:"earned_reward"`
}

func activityRefs(acts []models.Activity) []quests.ActivityRef {
	refs := make([]quests.ActivityRef, len(acts))
	for i, a := range acts {
		refs[i] = quests.ActivityRef{Type: a.Type, Action: a.Action}
	}
	return refs
}

// Today evaluates the day's quests against the user's activities of the day.
func (s *QuestService) Today(ctx context.Context, userID string) (*DailyQuests, error) {
	now := s.clock.Now()
	day := scoring.DayKey(now, s.clock.Loc())

	acts, err := s.activities.onDay(ctx, s.db, userID, now)
	if err != nil {
		return nil, err
	}
	refs := activityRefs(acts)

	var claims []models.QuestClaim
	if err := s.db.WithContext(ctx).Where("user_id = ? AND day = ?", userID, day).Find(&claims).Error; err != nil {
		return nil, storageErr("load quest claims", err)
	}
	claimed := make(map[string]bool, len(claims))
	for _, c := range claims {
		claimed[c.QuestID] = true
	}

	out := &DailyQuests{Day: day, Quests: []QuestStatus{}}
	for _, q := range s.pool.ForDay(now, s.clock.Loc()) {
		st := QuestStatus{Quest: q, Progress: quests.CheckProgress(q, refs), Claimed: claimed[q.ID]}
		if st.Progress.Completed {
			out.Completed++
		}
		if st.Claimed {
			out.EarnedReward += q.Reward
		}
		out.Quests = append(out.Quests, st)
	}
	return out, nil
}

// Claim pays a completed quest of the current day once per user.
func (s *QuestService) Claim(ctx context.Context, userID, questID string) (*models.QuestClaim, error) {
	if questID == "" {
		return nil, invalid("quest_id", "quest ID required")
	}

	unlock := s.stats.lockUser(userID)
	defer unlock()

	now := s.clock.Now()
	loc := s.clock.Loc()
	quest, ok := s.pool.Contains(now, loc, questID)
	if !ok {
		return nil, notFound("quest of the day", questID)
	}

	claim := &models.QuestClaim{
		UserID:    userID,
		QuestID:   questID,
		Day:       scoring.DayKey(now, loc),
		Reward:    quest.Reward,
		ClaimedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadForUpdate(tx, userID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.QuestClaim{}).
			Where("user_id = ? AND quest_id = ? AND day = ?", userID, questID, claim.Day).
			Count(&existing).Error; err != nil {
			return storageErr("check quest claim", err)
		}
		if existing > 0 {
			return conflict("quest reward already claimed")
		}

		acts, err := s.activities.onDay(ctx, tx, userID, now)
		if err != nil {
			return err
		}
		if !quests.CheckProgress(quest, activityRefs(acts)).Completed {
			return conflict("quest not completed yet")
		}

		if err := tx.Create(claim).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("quest reward already claimed")
			}
			return storageErr("create quest claim", err)
		}
		return s.stats.grantPoints(tx, userID, quest.Reward)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quest reward claimed",
		slog.String("user_id", userID),
		slog.String("quest_id", questID),
		slog.Int("reward", quest.Reward))
	return claim, nil
}
