// services/activities.go - Activity logging orchestrator and activity queries
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ecotrack/catalog"
	"ecotrack/models"
	"ecotrack/progression"
	"ecotrack/scoring"

	"gorm.io/gorm"
)

const (
	recentActivityLimit = 10
	historyDays         = 90
	weeklyStatsDays     = 7
)

type ActivityService struct {
	db         *gorm.DB
	catalog    *catalog.Catalog
	stats      *UserStatsService
	challenges *ChallengeService
	clock      Clock
	logger     *slog.Logger
}

func NewActivityService(db *gorm.DB, cat *catalog.Catalog, stats *UserStatsService, challenges *ChallengeService, clock Clock, logger *slog.Logger) *ActivityService {
	return &ActivityService{
		db:         db,
		catalog:    cat,
		stats:      stats,
		challenges: challenges,
		clock:      clock,
		logger:     logger,
	}
}

// LogActivityInput accepts either a raw signed carbon impact with type and
// action, or a catalog activity id with a quantity.
type LogActivityInput struct {
	Type         string   `json:"type" validate:"max=50"`
	Action       string   `json:"action" validate:"max=100"`
	CarbonImpact *float64 `json:"carbon_impact"`
	Description  string   `json:"description" validate:"max=500"`
	ActivityID   string   `json:"activity_id" validate:"max=100"`
	Quantity     *float64 `json:"quantity"`
}

// LogResult is what a successful log returns.
type LogResult struct {
	Activity            *models.Activity      `json:"activity"`
	User                *models.User          `json:"user"`
	Streak              scoring.Streak        `json:"streak"`
	CompletedChallenges []string              `json:"completed_challenges"`
	LevelUp             *progression.Level    `json:"level_up,omitempty"`
	Equivalences        []scoring.Equivalence `json:"equivalences"`
	Message             string                `json:"message"`
}

type resolvedActivity struct {
	typ, action, description string
	carbon                   float64
	catalogID                *string
	quantity                 *float64
}

func (s *ActivityService) resolve(in LogActivityInput) (*resolvedActivity, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if id := strings.TrimSpace(in.ActivityID); id != "" {
		entry, ok := s.catalog.Lookup(id)
		if !ok {
			return nil, invalid("activity_id", fmt.Sprintf("unknown activity %q", id))
		}
		if in.Quantity == nil {
			return nil, invalid("quantity", "quantity is required")
		}
		q := *in.Quantity
		if err := scoring.CheckFinite("quantity", q); err != nil {
			return nil, invalid("quantity", err.Error())
		}
		if q < 0 {
			return nil, invalid("quantity", "quantity must not be negative")
		}
		impact := scoring.CalculateImpact(q, entry.CarbonPerUnit)
		if err := scoring.CheckCarbon("quantity", impact.Carbon); err != nil {
			return nil, invalid("quantity", err.Error())
		}
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			desc = fmt.Sprintf("%s (%g %s)", entry.Name, q, entry.Unit)
		}
		return &resolvedActivity{
			typ:         string(entry.Category),
			action:      entry.ID,
			description: desc,
			carbon:      impact.Carbon,
			catalogID:   &entry.ID,
			quantity:    &q,
		}, nil
	}

	typ := strings.TrimSpace(in.Type)
	action := strings.TrimSpace(in.Action)
	switch {
	case typ == "":
		return nil, invalid("type", "type is required")
	case action == "":
		return nil, invalid("action", "action is required")
	case in.CarbonImpact == nil:
		return nil, invalid("carbon_impact", "carbon impact is required")
	}
	if err := scoring.CheckCarbon("carbon_impact", *in.CarbonImpact); err != nil {
		return nil, invalid("carbon_impact", err.Error())
	}
	return &resolvedActivity{
		typ:         strings.ToLower(typ),
		action:      action,
		description: strings.TrimSpace(in.Description),
		carbon:      *in.CarbonImpact,
	}, nil
}

// LogActivity validates, records the activity and updates the aggregate in
// one transaction, then advances challenges best effort.
func (s *ActivityService) LogActivity(ctx context.Context, userID string, in LogActivityInput) (*LogResult, error) {
	r, err := s.resolve(in)
	if err != nil {
		return nil, err
	}

	unlock := s.stats.lockUser(userID)
	defer unlock()

	now := s.clock.Now()
	class := scoring.Classify(r.typ, r.action)
	act := &models.Activity{
		UserID:       userID,
		Type:         r.typ,
		Action:       r.action,
		Description:  r.description,
		CatalogID:    r.catalogID,
		Quantity:     r.quantity,
		CarbonImpact: r.carbon,
		Points:       scoring.PointsForCarbon(r.carbon),
		IsEmission:   class.IsEmission,
		IsAvoided:    class.IsAvoided,
		Date:         now,
	}

	var (
		before, committed *models.User
		streak            scoring.Streak
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadForUpdate(tx, userID)
		if err != nil {
			return err
		}
		before = user
		streak = scoring.UpdateStreak(user.LastActivity, user.StreakCurrent, user.StreakLongest, now, s.clock.Loc())

		if err := tx.Create(act).Error; err != nil {
			return storageErr("create activity", err)
		}
		if err := s.stats.applyActivity(tx, userID, act, streak); err != nil {
			return err
		}
		committed = &models.User{}
		if err := tx.First(committed, "id = ?", userID).Error; err != nil {
			return storageErr("reload user", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStorage) {
			s.logger.Error("activity log failed", slog.String("user_id", userID), slog.Any("error", err))
		}
		return nil, err
	}

	completed := s.challenges.advance(ctx, act)

	// The activity is committed; a failed re-read must not be reported as a
	// failed log, so fall back to the in-transaction state.
	after := committed
	if fresh, err := s.stats.Get(ctx, userID); err != nil {
		s.logger.Warn("user reload after activity failed", slog.String("user_id", userID), slog.Any("error", err))
	} else {
		after = fresh
	}

	result := &LogResult{
		Activity:            act,
		User:                after,
		Streak:              streak,
		CompletedChallenges: completed,
		Equivalences:        scoring.Equivalences(act.CarbonImpact),
		Message:             scoring.ImpactMessage(act.CarbonImpact),
	}
	if lvl := s.stats.levels.Current(after.EcoScore); lvl.Level > s.stats.levels.Current(before.EcoScore).Level {
		result.LevelUp = &lvl
	}

	s.logger.Info("activity logged",
		slog.String("user_id", userID),
		slog.String("type", act.Type),
		slog.String("action", act.Action),
		slog.Float64("carbon", act.CarbonImpact),
		slog.Int("points", act.Points),
		slog.Int("streak", streak.Current))
	return result, nil
}

// Get returns one of the user's activities.
func (s *ActivityService) Get(ctx context.Context, userID, activityID string) (*models.Activity, error) {
	var act models.Activity
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", activityID, userID).First(&act).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("activity", activityID)
	}
	if err != nil {
		return nil, storageErr("get activity", err)
	}
	return &act, nil
}

// Recent returns the latest activities, newest first.
func (s *ActivityService) Recent(ctx context.Context, userID string) ([]models.Activity, error) {
	return s.find(ctx, "recent activities", func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID).Limit(recentActivityLimit)
	})
}

// Today returns the activities of the current calendar day in the reference location.
func (s *ActivityService) Today(ctx context.Context, userID string) ([]models.Activity, error) {
	return s.onDay(ctx, s.db, userID, s.clock.Now())
}

func (s *ActivityService) onDay(ctx context.Context, db *gorm.DB, userID string, t time.Time) ([]models.Activity, error) {
	start, end := scoring.DayBounds(t, s.clock.Loc())
	var acts []models.Activity
	err := db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start.UTC(), end.UTC()).
		Order("date DESC").
		Find(&acts).Error
	if err != nil {
		return nil, storageErr("activities of day", err)
	}
	return acts, nil
}

// History returns the last 90 days of activities, newest first.
func (s *ActivityService) History(ctx context.Context, userID string) ([]models.Activity, error) {
	since := s.clock.Now().AddDate(0, 0, -historyDays)
	return s.find(ctx, "activity history", func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ? AND date >= ?", userID, since)
	})
}

func (s *ActivityService) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]models.Activity, error) {
	var acts []models.Activity
	if err := scope(s.db.WithContext(ctx)).Order("date DESC").Find(&acts).Error; err != nil {
		return nil, storageErr(op, err)
	}
	return acts, nil
}

// DayStat is one day of carbon per tracked category.
type DayStat struct {
	Date      string  `json:"date"`
	Day       string  `json:"day"`
	Transport float64 `json:"transport"`
	Food      float64 `json:"food"`
	Energy    float64 `json:"energy"`
}

// WeeklyStats returns seven calendar days ending today, oldest first.
func (s *ActivityService) WeeklyStats(ctx context.Context, userID string) ([]DayStat, error) {
	loc := s.clock.Loc()
	now := s.clock.Now()
	first, _ := scoring.DayBounds(now.AddDate(0, 0, -(weeklyStatsDays - 1)), loc)

	var acts []models.Activity
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, first.UTC()).
		Find(&acts).Error
	if err != nil {
		return nil, storageErr("weekly stats", err)
	}

	days := make([]DayStat, weeklyStatsDays)
	index := make(map[string]int, weeklyStatsDays)
	for i := range days {
		d := first.AddDate(0, 0, i)
		key := scoring.DayKey(d, loc)
		days[i] = DayStat{Date: key, Day: d.Format("Mon")}
		index[key] = i
	}

	for _, a := range acts {
		i, ok := index[scoring.DayKey(a.Date, loc)]
		if !ok {
			continue
		}
		switch catalog.Category(a.Type) {
		case catalog.CategoryTransport:
			days[i].Transport += a.CarbonImpact
		case catalog.CategoryFood:
			days[i].Food += a.CarbonImpact
		case catalog.CategoryEnergy:
			days[i].Energy += a.CarbonImpact
		}
	}
	return days, nil
}

// Preview is a calculator result that is not persisted.
type Preview struct {
	Entry          catalog.Entry          `json:"entry"`
	Quantity       float64                `json:"quantity"`
	Impact         scoring.Impact         `json:"impact"`
	Classification scoring.Classification `json:"classification"`
	Equivalences   []scoring.Equivalence  `json:"equivalences"`
	Message        string                 `json:"message"`
}

// Calculate previews the impact of a catalog activity.
func (s *ActivityService) Calculate(activityID string, quantity float64) (*Preview, error) {
	entry, ok := s.catalog.Lookup(activityID)
	if !ok {
		return nil, invalid("activity_id", fmt.Sprintf("unknown activity %q", activityID))
	}
	if err := scoring.CheckFinite("quantity", quantity); err != nil {
		return nil, invalid("quantity", err.Error())
	}
	if quantity < 0 {
		return nil, invalid("quantity", "quantity must not be negative")
	}
	impact := scoring.CalculateImpact(quantity, entry.CarbonPerUnit)
	if err := scoring.CheckCarbon("quantity", impact.Carbon); err != nil {
		return nil, invalid("quantity", err.Error())
	}
	return &Preview{
		Entry:          entry,
		Quantity:       quantity,
		Impact:         impact,
		Classification: scoring.Classify(string(entry.Category), entry.ID),
		Equivalences:   scoring.Equivalences(impact.Carbon),
		Message:        scoring.ImpactMessage(impact.Carbon),
	}, nil
}
