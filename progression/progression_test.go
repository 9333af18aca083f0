package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesAreValid(t *testing.T) {
	_, err := NewLevels(DefaultLevels())
	require.NoError(t, err)
	_, err = NewBadges(DefaultBadges())
	require.NoError(t, err)
}

func TestCurrentLevel(t *testing.T) {
	levels := DefaultLevels()

	tests := []struct {
		score int
		level int
	}{
		{-500, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{499, 2},
		{500, 3},
		{2500, 5},
		{24999, 7},
		{25000, 8},
		{1_000_000, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, levels.Current(tt.score).Level, "score %d", tt.score)
	}
}

func TestLevelMonotonic(t *testing.T) {
	levels := DefaultLevels()
	prev := levels.Current(-1000).Level
	for score := -1000; score <= 30000; score += 37 {
		lvl := levels.Current(score).Level
		assert.GreaterOrEqual(t, lvl, prev, "score %d", score)
		prev = lvl
	}
}

func TestNextLevelAndPointsToNext(t *testing.T) {
	levels := DefaultLevels()

	next, ok := levels.Next(150)
	require.True(t, ok)
	assert.Equal(t, 3, next.Level)
	assert.Equal(t, 350, levels.PointsToNext(150))

	_, ok = levels.Next(30000)
	assert.False(t, ok)
	assert.Equal(t, 0, levels.PointsToNext(30000))

	assert.Equal(t, 110, levels.PointsToNext(-10))
}

func TestLevelProgressBounds(t *testing.T) {
	levels := DefaultLevels()

	assert.InDelta(t, 0, levels.Progress(0), 1e-9)
	assert.InDelta(t, 50, levels.Progress(300), 1e-9)
	assert.InDelta(t, 100, levels.Progress(25000), 1e-9)
	assert.InDelta(t, 100, levels.Progress(99999), 1e-9)
	assert.InDelta(t, 0, levels.Progress(-40), 1e-9)

	for score := -5000; score <= 40000; score += 101 {
		p := levels.Progress(score)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 100.0)
	}
}

func TestLevelStatus(t *testing.T) {
	st := DefaultLevels().Status(1200)
	assert.Equal(t, "Eco Champion", st.Current.Title)
	require.NotNil(t, st.Next)
	assert.Equal(t, "Planet Guardian", st.Next.Title)
	assert.Equal(t, 1300, st.PointsToNext)
	assert.InDelta(t, 200.0/15, st.Progress, 1e-9)

	top := DefaultLevels().Status(25000)
	assert.Nil(t, top.Next)
	assert.Equal(t, 100.0, top.Progress)
}

func TestNewLevelsRejectsGaps(t *testing.T) {
	_, err := NewLevels([]Level{
		{Level: 1, MinPoints: 0, MaxPoints: intPtr(10)},
		{Level: 2, MinPoints: 20},
	})
	assert.Error(t, err)

	_, err = NewLevels([]Level{
		{Level: 1, MinPoints: 0},
		{Level: 2, MinPoints: 20},
	})
	assert.Error(t, err)

	_, err = NewLevels(nil)
	assert.Error(t, err)
}

func TestSubstituteLevelTable(t *testing.T) {
	levels, err := NewLevels([]Level{
		{Level: 1, Title: "Low", MinPoints: 0, MaxPoints: intPtr(9)},
		{Level: 2, Title: "High", MinPoints: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, "High", levels.Current(10).Title)
	assert.InDelta(t, 50, levels.Progress(5), 1e-9)
}

func badgeIDs(bs []Badge) []string {
	ids := make([]string, len(bs))
	for i, b := range bs {
		ids[i] = b.ID
	}
	return ids
}

func TestUnlockedBadges(t *testing.T) {
	badges := DefaultBadges()

	assert.Empty(t, badges.Unlocked(Stats{}))

	got := badgeIDs(badges.Unlocked(Stats{EcoScore: 150, CarbonAvoided: 12, StreakCurrent: 1, StreakLongest: 8, CompletedChallenges: 1}))
	assert.Equal(t, []string{"first_leaf", "green_starter", "carbon_saver", "consistent", "week_warrior", "challenger"}, got)
}

func TestStreakBadgesUseBestStreak(t *testing.T) {
	badges := DefaultBadges()

	fromCurrent := badgeIDs(badges.Unlocked(Stats{StreakCurrent: 3}))
	fromLongest := badgeIDs(badges.Unlocked(Stats{StreakLongest: 3}))
	assert.Contains(t, fromCurrent, "consistent")
	assert.Contains(t, fromLongest, "consistent")
}

func TestBadgeUnlockMonotonicInScore(t *testing.T) {
	badges := DefaultBadges()
	prev := map[string]bool{}
	for score := 0; score <= 6000; score += 50 {
		now := map[string]bool{}
		for _, b := range badges.Unlocked(Stats{EcoScore: score}) {
			now[b.ID] = true
		}
		for id := range prev {
			assert.True(t, now[id], "badge %s lost at score %d", id, score)
		}
		prev = now
	}
}

func TestNextBadges(t *testing.T) {
	badges := DefaultBadges()

	next := badges.Next(Stats{EcoScore: 50}, 3)
	require.Len(t, next, 3)
	assert.Equal(t, "green_starter", next[0].Badge.ID)
	assert.InDelta(t, 50, next[0].Progress, 1e-9)
	assert.Equal(t, "eco_warrior", next[1].Badge.ID)
	assert.InDelta(t, 10, next[1].Progress, 1e-9)
	assert.Equal(t, "planet_champion", next[2].Badge.ID)

	negative := badges.Next(Stats{EcoScore: -40}, 1)
	require.Len(t, negative, 1)
	assert.Equal(t, 0.0, negative[0].Progress)

	assert.Empty(t, badges.Next(Stats{}, 0))
}

func TestActivitiesRequirement(t *testing.T) {
	badges, err := NewBadges([]Badge{
		{ID: "busy", Requirement: Requirement{RequireActivities, 10}},
	})
	require.NoError(t, err)

	assert.Empty(t, badges.Unlocked(Stats{Activities: 9}))
	assert.Len(t, badges.Unlocked(Stats{Activities: 10}), 1)
}

func TestNewBadgesValidation(t *testing.T) {
	_, err := NewBadges([]Badge{{ID: "a", Requirement: Requirement{RequireEcoScore, 1}}, {ID: "a", Requirement: Requirement{RequireEcoScore, 2}}})
	assert.Error(t, err)

	_, err = NewBadges([]Badge{{ID: "b", Requirement: Requirement{"karma", 1}}})
	assert.Error(t, err)

	_, err = NewBadges([]Badge{{ID: "c", Requirement: Requirement{RequireEcoScore, 0}}})
	assert.Error(t, err)
}
