package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"ecotrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLogActivityFromCatalog(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{})

	res, err := env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{
		ActivityID: "vegetarian_meal",
		Quantity:   ptr(1.0),
	})
	require.NoError(t, err)

	assert.InDelta(t, -2.0, res.Activity.CarbonImpact, 1e-9)
	assert.Equal(t, 4, res.Activity.Points)
	assert.True(t, res.Activity.IsAvoided)
	assert.False(t, res.Activity.IsEmission)
	assert.Equal(t, "food", res.Activity.Type)
	assert.Equal(t, "vegetarian_meal", res.Activity.Action)
	assert.Equal(t, env.now, res.Activity.Date)
	assert.NotEmpty(t, res.Message)

	got := env.reload(t, user.ID)
	assert.Equal(t, 4, got.EcoScore)
	assert.InDelta(t, 2.0, got.CarbonAvoided, 1e-9)
	assert.InDelta(t, 0.0, got.CarbonEmitted, 1e-9)
	assert.InDelta(t, -2.0, got.TotalSaved, 1e-9)
	assert.Equal(t, 1, got.StreakCurrent)
	assert.Equal(t, 1, got.StreakLongest)
	require.NotNil(t, got.LastActivity)
}

func TestLogActivityRawEmission(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{EcoScore: 500})

	res, err := env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{
		Type:         "Transport",
		Action:       "car",
		CarbonImpact: ptr(120.0),
		Description:  "road trip",
	})
	require.NoError(t, err)
	assert.Equal(t, -240, res.Activity.Points)
	assert.Equal(t, "transport", res.Activity.Type)
	assert.True(t, res.Activity.IsEmission)

	got := env.reload(t, user.ID)
	assert.Equal(t, 260, got.EcoScore)
	assert.InDelta(t, 120.0, got.CarbonEmitted, 1e-9)
	assert.InDelta(t, 0.0, got.CarbonAvoided, 1e-9)
}

func TestLogActivityNeutralTouchesNeitherCarbonTotal(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{})

	_, err := env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{
		ActivityID: "gaming",
		Quantity:   ptr(2.0),
	})
	require.NoError(t, err)

	got := env.reload(t, user.ID)
	assert.Equal(t, -1, got.EcoScore)
	assert.InDelta(t, 0.0, got.CarbonEmitted, 1e-9)
	assert.InDelta(t, 0.0, got.CarbonAvoided, 1e-9)
	assert.InDelta(t, 0.5, got.TotalSaved, 1e-9)
}

func TestLogActivityValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{})

	tests := []struct {
		name  string
		in    LogActivityInput
		field string
	}{
		{"missing type", LogActivityInput{Action: "car", CarbonImpact: ptr(1.0)}, "type"},
		{"missing action", LogActivityInput{Type: "transport", CarbonImpact: ptr(1.0)}, "action"},
		{"missing carbon", LogActivityInput{Type: "transport", Action: "car"}, "carbon_impact"},
		{"nan carbon", LogActivityInput{Type: "transport", Action: "car", CarbonImpact: ptr(math.NaN())}, "carbon_impact"},
		{"infinite carbon", LogActivityInput{Type: "transport", Action: "car", CarbonImpact: ptr(math.Inf(1))}, "carbon_impact"},
		{"unknown catalog id", LogActivityInput{ActivityID: "teleport", Quantity: ptr(1.0)}, "activity_id"},
		{"missing quantity", LogActivityInput{ActivityID: "car"}, "quantity"},
		{"negative quantity", LogActivityInput{ActivityID: "car", Quantity: ptr(-3.0)}, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Activities.LogActivity(env.ctx, user.ID, tt.in)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.Zero(t, env.countActivities(t, user.ID))
	assert.Zero(t, env.reload(t, user.ID).EcoScore)
}

func TestLogActivityUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Activities.LogActivity(env.ctx, "missing-user", LogActivityInput{
		Type: "transport", Action: "walk", CarbonImpact: ptr(-1.0),
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, env.countActivities(t, "missing-user"))
}

func TestLogActivityRollsBackWhenAggregateUpdateFails(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{EcoScore: 10})

	require.NoError(t, env.db.Callback().Update().Before("gorm:update").Register("test:fail_users", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{
		Type: "transport", Action: "walk", CarbonImpact: ptr(-1.0),
	})
	require.ErrorIs(t, err, ErrStorage)

	require.NoError(t, env.db.Callback().Update().Remove("test:fail_users"))
	assert.Zero(t, env.countActivities(t, user.ID))
	assert.Equal(t, 10, env.reload(t, user.ID).EcoScore)
}

func TestLogActivitySucceedsWhenReloadAfterCommitFails(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{EcoScore: 10})

	// Only reads outside a transaction fail, which leaves the logging
	// transaction intact and breaks the re-read after commit.
	require.NoError(t, env.db.Callback().Query().Before("gorm:query").Register("test:fail_user_reads", func(tx *gorm.DB) {
		if _, inTx := tx.Statement.ConnPool.(gorm.TxCommitter); !inTx && tx.Statement.Table == "users" {
			tx.AddError(errors.New("connection reset"))
		}
	}))

	res, err := env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{
		Type: "transport", Action: "walk", CarbonImpact: ptr(-2.0),
	})
	require.NoError(t, env.db.Callback().Query().Remove("test:fail_user_reads"))
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, 14, res.User.EcoScore)
	assert.Equal(t, int64(1), env.countActivities(t, user.ID))
	assert.Equal(t, 14, env.reload(t, user.ID).EcoScore)
}

func TestLogActivityRejectsOversizedCarbon(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{EcoScore: 10})

	tests := []struct {
		name  string
		in    LogActivityInput
		field string
	}{
		{"huge avoided carbon", LogActivityInput{Type: "transport", Action: "walk", CarbonImpact: ptr(-1e300)}, "carbon_impact"},
		{"huge emitted carbon", LogActivityInput{Type: "transport", Action: "car", CarbonImpact: ptr(5e18)}, "carbon_impact"},
		{"just over the bound", LogActivityInput{Type: "transport", Action: "car", CarbonImpact: ptr(1e6 + 1)}, "carbon_impact"},
		{"huge quantity", LogActivityInput{ActivityID: "car", Quantity: ptr(1e20)}, "quantity"},
		{"overflowing quantity", LogActivityInput{ActivityID: "car", Quantity: ptr(math.MaxFloat64)}, "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Activities.LogActivity(env.ctx, user.ID, tt.in)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Zero(t, env.countActivities(t, user.ID))
	assert.Equal(t, 10, env.reload(t, user.ID).EcoScore)

	res, err := env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{
		Type: "transport", Action: "walk", CarbonImpact: ptr(-1e6),
	})
	require.NoError(t, err)
	assert.Equal(t, 2_000_000, res.Activity.Points)
	assert.Equal(t, 2_000_010, res.User.EcoScore)

	_, err = env.svc.Activities.Calculate("car", 1e20)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogActivityStreak(t *testing.T) {
	env := newTestEnv(t)
	yesterday := env.now.Add(-26 * time.Hour)
	user := env.createUser(t, models.User{StreakCurrent: 4, StreakLongest: 4, LastActivity: &yesterday})

	in := LogActivityInput{Type: "transport", Action: "walk", CarbonImpact: ptr(-1.0)}

	res, err := env.svc.Activities.LogActivity(env.ctx, user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Streak.Current)
	assert.Equal(t, 5, res.Streak.Longest)

	env.now = env.now.Add(3 * time.Hour)
	res, err = env.svc.Activities.LogActivity(env.ctx, user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Streak.Current)

	env.now = env.now.Add(72 * time.Hour)
	res, err = env.svc.Activities.LogActivity(env.ctx, user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak.Current)
	assert.Equal(t, 5, res.Streak.Longest)

	got := env.reload(t, user.ID)
	assert.Equal(t, 1, got.StreakCurrent)
	assert.Equal(t, 5, got.StreakLongest)
}

func TestLogActivityReportsLevelUp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{EcoScore: 95})

	res, err := env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{
		ActivityID: "vegan_meal", Quantity: ptr(1.0),
	})
	require.NoError(t, err)
	require.NotNil(t, res.LevelUp)
	assert.Equal(t, "Sprout", res.LevelUp.Title)

	res, err = env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{
		ActivityID: "vegan_meal", Quantity: ptr(1.0),
	})
	require.NoError(t, err)
	assert.Nil(t, res.LevelUp)
}

func TestActivityQueries(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{})

	insert := func(typ string, carbon float64, at time.Time) {
		require.NoError(t, env.db.Create(&models.Activity{
			UserID: user.ID, Type: typ, Action: "x", CarbonImpact: carbon, Date: at,
		}).Error)
	}
	insert("transport", 3, env.now.Add(-time.Hour))
	insert("food", -2, env.now.Add(-30*time.Hour))
	insert("energy", 1, env.now.AddDate(0, 0, -10))
	insert("transport", 5, env.now.AddDate(0, 0, -100))

	today, err := env.svc.Activities.Today(env.ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "transport", today[0].Type)

	history, err := env.svc.Activities.History(env.ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	recent, err := env.svc.Activities.Recent(env.ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, recent, 4)
	assert.True(t, recent[0].Date.After(recent[1].Date))

	one, err := env.svc.Activities.Get(env.ctx, user.ID, today[0].ID)
	require.NoError(t, err)
	assert.Equal(t, today[0].ID, one.ID)

	other := env.createUser(t, models.User{Name: "Other"})
	_, err = env.svc.Activities.Get(env.ctx, other.ID, today[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeeklyStats(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{})

	for _, a := range []models.Activity{
		{Type: "transport", CarbonImpact: 2.5, Date: env.now},
		{Type: "transport", CarbonImpact: -1, Date: env.now.Add(-time.Hour)},
		{Type: "food", CarbonImpact: 4, Date: env.now.AddDate(0, 0, -6)},
		{Type: "device", CarbonImpact: 9, Date: env.now},
		{Type: "energy", CarbonImpact: 7, Date: env.now.AddDate(0, 0, -7)},
	} {
		a.UserID = user.ID
		a.Action = "x"
		require.NoError(t, env.db.Create(&a).Error)
	}

	days, err := env.svc.Activities.WeeklyStats(env.ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, "2024-03-04", days[0].Date)
	assert.Equal(t, "Mon", days[0].Day)
	assert.InDelta(t, 4.0, days[0].Food, 1e-9)

	assert.Equal(t, "2024-03-10", days[6].Date)
	assert.InDelta(t, 1.5, days[6].Transport, 1e-9)

	var energy float64
	for _, d := range days {
		energy += d.Energy
	}
	assert.Zero(t, energy)
}

func TestCalculatePreview(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.svc.Activities.Calculate("car", 500)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, p.Impact.Carbon, 1e-9)
	assert.Equal(t, -240, p.Impact.Points)
	assert.True(t, p.Classification.IsEmission)
	assert.NotEmpty(t, p.Equivalences)

	p, err = env.svc.Activities.Calculate("walk", 25)
	require.NoError(t, err)
	assert.InDelta(t, -6.0, p.Impact.Carbon, 1e-9)
	assert.Equal(t, 12, p.Impact.Points)

	_, err = env.svc.Activities.Calculate("hoverboard", 1)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svc.Activities.Calculate("car", math.NaN())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnalyticsSumsStoredPoints(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.User{})

	_, err := env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{Type: "transport", Action: "car", CarbonImpact: ptr(10.0)})
	require.NoError(t, err)
	_, err = env.svc.Activities.LogActivity(env.ctx, user.ID, LogActivityInput{ActivityID: "vegetarian_meal", Quantity: ptr(1.0)})
	require.NoError(t, err)

	a, err := env.svc.Activities.Analytics(env.ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, a.TotalActivities)
	assert.Equal(t, -16, a.TotalPoints)
	assert.InDelta(t, 8.0, a.TotalCarbon, 1e-9)
	assert.Equal(t, -20, a.PointsByCategory["transport"])
	assert.Equal(t, 4, a.PointsByCategory["food"])
	assert.Equal(t, 0, a.ActivityCounts["green"])
	assert.Equal(t, a.TotalPoints, a.EcoScore)

	require.Len(t, a.TopActivities, 2)
	assert.InDelta(t, 10.0, a.TopActivities[0].Carbon, 1e-9)
	assert.Equal(t, "car", a.TopActivities[0].Description)
}
