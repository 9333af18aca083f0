package database

import (
	"strings"
	"testing"
	"time"

	"ecotrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemoryMigrates(t *testing.T) {
	conn, err := OpenMemory()
	require.NoError(t, err)

	for _, table := range []string{"users", "activities", "challenges", "challenge_participants", "quest_claims"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
	assert.True(t, conn.Migrator().HasIndex(&models.QuestClaim{}, "idx_quest_claims_once"))

	// Running twice is a no-op.
	require.NoError(t, RunMigrations(conn))
}

func TestSeedChallenges(t *testing.T) {
	conn, err := OpenMemory()
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, SeedChallenges(conn, DefaultChallenges(now), false))

	var stored []models.Challenge
	require.NoError(t, conn.Order("reward ASC").Find(&stored).Error)
	require.Len(t, stored, 6)
	assert.Equal(t, "Zero Car Day", stored[0].Title)
	assert.Equal(t, "no_car", stored[0].Target.Data().Action)
	require.NotNil(t, stored[0].Category)
	assert.Equal(t, "transport", *stored[0].Category)

	user := models.User{Name: "Seed", Email: "seed@example.com"}
	require.NoError(t, conn.Create(&user).Error)
	require.NoError(t, conn.Create(&models.ChallengeParticipant{UserID: user.ID, ChallengeID: stored[0].ID, JoinedAt: now}).Error)

	require.NoError(t, SeedChallenges(conn, DefaultChallenges(now), true))

	var challenges, participants int64
	require.NoError(t, conn.Model(&models.Challenge{}).Count(&challenges).Error)
	require.NoError(t, conn.Model(&models.ChallengeParticipant{}).Count(&participants).Error)
	assert.Equal(t, int64(6), challenges)
	assert.Zero(t, participants)
}

func TestLoadChallenges(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	input := `[
		{"title": "Solar Week", "type": "weekly", "category": "energy",
		 "target": {"action": "solar_power", "count": 7, "unit": "days"}, "reward": 350, "days": 7},
		{"title": "Library Month", "type": "monthly",
		 "target": {"action": "library_book", "count": 4, "unit": "books"}, "reward": 200, "days": 30}
	]`

	got, err := LoadChallenges(strings.NewReader(input), now)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, now.AddDate(0, 0, 7), got[0].EndDate)
	require.NotNil(t, got[0].Category)
	assert.Equal(t, "energy", *got[0].Category)
	assert.Equal(t, 7, got[0].Target.Data().Count)
	assert.Nil(t, got[1].Category)
	assert.True(t, got[1].IsActive)

	bad := []string{
		`{"title": "not an array"}`,
		`[{"title": "", "type": "daily", "reward": 1, "days": 1}]`,
		`[{"title": "x", "type": "yearly", "reward": 1, "days": 1}]`,
		`[{"title": "x", "type": "daily", "reward": -1, "days": 1}]`,
		`[{"title": "x", "type": "daily", "reward": 1, "days": 0}]`,
	}
	for _, in := range bad {
		_, err := LoadChallenges(strings.NewReader(in), now)
		assert.Error(t, err, in)
	}
}
