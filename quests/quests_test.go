package quests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(qs []Quest) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestForDayOfYearKnownDay(t *testing.T) {
	got := Default.ForDayOfYear(1)
	assert.Equal(t, []string{"log_one", "green_action", "five_activities"}, ids(got))
}

func TestForDayIsDeterministic(t *testing.T) {
	morning := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 1, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, ids(Default.ForDay(morning, time.UTC)), ids(Default.ForDay(evening, time.UTC)))
	assert.Equal(t, ids(Default.ForDay(morning, nil)), ids(Default.ForDay(morning, time.UTC)))
}

func TestEveryDayHasEasyAndMedium(t *testing.T) {
	for d := 1; d <= 366; d++ {
		qs := Default.ForDayOfYear(d)
		require.Len(t, qs, DailyCount, "day %d", d)
		assert.Equal(t, Easy, qs[0].Difficulty, "day %d", d)
		assert.Equal(t, Medium, qs[1].Difficulty, "day %d", d)

		seen := map[string]bool{}
		for _, q := range qs {
			assert.False(t, seen[q.ID], "duplicate %s on day %d", q.ID, d)
			seen[q.ID] = true
		}
	}
}

func TestSmallPoolReturnsFewer(t *testing.T) {
	pool, err := NewPool([]Quest{
		{ID: "only", Type: TypeCount, Requirement: Requirement{Target: 1}, Difficulty: Hard},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, ids(pool.ForDayOfYear(42)))

	empty, err := NewPool(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.ForDayOfYear(42))
}

func TestContains(t *testing.T) {
	day := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	q, ok := Default.Contains(day, time.UTC, "log_one")
	require.True(t, ok)
	assert.Equal(t, 5, q.Reward)

	_, ok = Default.Contains(day, time.UTC, "walk_today")
	assert.False(t, ok)
}

func TestCheckProgressCount(t *testing.T) {
	q, _ := Default.Lookup("log_three")

	p := CheckProgress(q, []ActivityRef{{"transport", "car"}, {"food", "beef_burger"}})
	assert.False(t, p.Completed)
	assert.InDelta(t, 200.0/3, p.Progress, 1e-9)

	p = CheckProgress(q, []ActivityRef{{"a", "b"}, {"c", "d"}, {"e", "f"}, {"g", "h"}})
	assert.True(t, p.Completed)
	assert.Equal(t, 100.0, p.Progress)
	assert.Equal(t, 4, p.Matching)
}

func TestCheckProgressCategory(t *testing.T) {
	q, _ := Default.Lookup("veggie_meal")

	p := CheckProgress(q, []ActivityRef{{"food", "beef_burger"}, {"transport", "veggie_bus"}})
	assert.False(t, p.Completed)
	assert.Equal(t, 0.0, p.Progress)

	p = CheckProgress(q, []ActivityRef{{"FOOD", "Vegan_Meal"}})
	assert.True(t, p.Completed)
	assert.Equal(t, 100.0, p.Progress)

	green, _ := Default.Lookup("green_action")
	assert.True(t, CheckProgress(green, []ActivityRef{{"green", "plant_tree"}}).Completed)
}

func TestCheckProgressActionOnly(t *testing.T) {
	q := Quest{ID: "x", Type: TypeCategory, Requirement: Requirement{Target: 2, Action: "bus"}}
	p := CheckProgress(q, []ActivityRef{{"transport", "bus"}, {"custom", "school_bus"}, {"transport", "car"}})
	assert.True(t, p.Completed)
	assert.Equal(t, 2, p.Matching)
}

func TestCheckProgressZeroTarget(t *testing.T) {
	q := Quest{ID: "free", Type: TypeAny}
	p := CheckProgress(q, nil)
	assert.True(t, p.Completed)
	assert.Equal(t, 100.0, p.Progress)
}

func TestNewPoolValidation(t *testing.T) {
	_, err := NewPool([]Quest{{ID: "a", Type: TypeCount}, {ID: "a", Type: TypeCount}})
	assert.Error(t, err)

	_, err = NewPool([]Quest{{ID: "b", Type: "streak"}})
	assert.Error(t, err)

	_, err = NewPool([]Quest{{Type: TypeCount}})
	assert.Error(t, err)
}

func TestRotationHashUsesFirstCodeUnit(t *testing.T) {
	assert.Equal(t, int((10*31+'l')%100), rotationHash(10, "log_one"))
	// 'é' is one UTF-16 unit (0xE9) but two UTF-8 bytes.
	assert.Equal(t, (10*31+0xE9)%100, rotationHash(10, "éco"))
	// Outside the BMP the high surrogate is used.
	assert.Equal(t, (10*31+0xD83C)%100, rotationHash(10, "🌱quest"))
}
