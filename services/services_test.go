package services

import (
	"context"
	"testing"
	"time"

	"ecotrack/database"
	"ecotrack/logging"
	"ecotrack/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type testEnv struct {
	db  *gorm.DB
	svc *Services
	now time.Time
	ctx context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{
		db:  db,
		now: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		ctx: context.Background(),
	}
	clock := Clock{Location: time.UTC, NowFunc: func() time.Time { return env.now }}
	env.svc = New(db, DefaultTables(), clock, logging.Discard())
	return env
}

func (e *testEnv) createUser(t *testing.T, u models.User) *models.User {
	t.Helper()
	if u.Name == "" {
		u.Name = "Test User"
	}
	if u.Email == "" {
		u.Email = uuid.NewString() + "@example.com"
	}
	require.NoError(t, e.db.Create(&u).Error)
	return &u
}

func (e *testEnv) createChallenge(t *testing.T, category, action string, reward int) *models.Challenge {
	t.Helper()
	c := models.Challenge{
		Title:     "Challenge " + action,
		Type:      models.ChallengeWeekly,
		Target:    datatypes.NewJSONType(models.ChallengeTarget{Action: action, Count: 5, Unit: "times"}),
		Reward:    reward,
		StartDate: e.now,
		EndDate:   e.now.Add(7 * 24 * time.Hour),
		IsActive:  true,
	}
	if category != "" {
		c.Category = &category
	}
	require.NoError(t, e.db.Create(&c).Error)
	return &c
}

func (e *testEnv) setProgress(t *testing.T, userID, challengeID string, progress int) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Update("progress", progress).Error)
}

func (e *testEnv) participation(t *testing.T, userID, challengeID string) models.ChallengeParticipant {
	t.Helper()
	var p models.ChallengeParticipant
	require.NoError(t, e.db.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&p).Error)
	return p
}

func (e *testEnv) reload(t *testing.T, userID string) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, e.db.Where("id = ?", userID).First(&u).Error)
	return u
}

func (e *testEnv) countActivities(t *testing.T, userID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Activity{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }
