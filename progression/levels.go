// progression/levels.go - Level titles unlocked by cumulative EcoPoints
package progression

import (
	"errors"
	"fmt"
)

// Level is one tier of the ladder. MaxPoints is nil for the top tier.
type Level struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	MinPoints   int    `json:"min_points"`
	MaxPoints   *int   `json:"max_points"`
	Description string `json:"description"`
}

// Levels is a ladder ordered by MinPoints ascending.
type Levels []Level

// LevelStatus bundles everything a profile shows about a score's tier.
type LevelStatus struct {
	Current      Level   `json:"current"`
	Next         *Level  `json:"next"`
	Progress     float64 `json:"progress"`
	PointsToNext int     `json:"points_to_next"`
}

// NewLevels validates that tiers are non-empty, ascending, contiguous and that
// only the last tier is unbounded.
func NewLevels(tiers []Level) (Levels, error) {
	if len(tiers) == 0 {
		return nil, errors.New("level table is empty")
	}
	for i, l := range tiers {
		last := i == len(tiers)-1
		if last {
			if l.MaxPoints != nil && *l.MaxPoints < l.MinPoints {
				return nil, fmt.Errorf("level %d: max below min", l.Level)
			}
			continue
		}
		if l.MaxPoints == nil {
			return nil, fmt.Errorf("level %d: only the top tier may be unbounded", l.Level)
		}
		if *l.MaxPoints < l.MinPoints {
			return nil, fmt.Errorf("level %d: max below min", l.Level)
		}
		if tiers[i+1].MinPoints != *l.MaxPoints+1 {
			return nil, fmt.Errorf("level %d: gap or overlap before level %d", l.Level, tiers[i+1].Level)
		}
	}
	out := make(Levels, len(tiers))
	copy(out, tiers)
	return out, nil
}

func (t Levels) currentIndex(score int) int {
	for i := len(t) - 1; i >= 0; i-- {
		if score >= t[i].MinPoints {
			return i
		}
	}
	return 0
}

// Current returns the highest tier whose MinPoints ≤ score, or the lowest tier
// for scores below every threshold (including negative scores).
func (t Levels) Current(score int) Level {
	return t[t.currentIndex(score)]
}

// Next returns the tier above the current one; false at the top tier.
func (t Levels) Next(score int) (Level, bool) {
	i := t.currentIndex(score) + 1
	if i >= len(t) {
		return Level{}, false
	}
	return t[i], true
}

// Progress is the percentage of the way from the current tier to the next,
// clamped to [0, 100]. It is 100 at the top tier.
func (t Levels) Progress(score int) float64 {
	next, ok := t.Next(score)
	if !ok {
		return 100
	}
	current := t.Current(score)
	span := next.MinPoints - current.MinPoints
	if span <= 0 {
		return 100
	}
	pct := 100 * float64(score-current.MinPoints) / float64(span)
	return clamp(pct, 0, 100)
}

// PointsToNext is next.MinPoints - score, or 0 at the top tier.
func (t Levels) PointsToNext(score int) int {
	next, ok := t.Next(score)
	if !ok {
		return 0
	}
	return next.MinPoints - score
}

// Status computes all level figures for score.
func (t Levels) Status(score int) LevelStatus {
	st := LevelStatus{
		Current:      t.Current(score),
		Progress:     t.Progress(score),
		PointsToNext: t.PointsToNext(score),
	}
	if next, ok := t.Next(score); ok {
		st.Next = &next
	}
	return st
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intPtr(v int) *int { return &v }

// DefaultLevels is the built-in ladder.
func DefaultLevels() Levels {
	return Levels{
		{Level: 1, Title: "Seedling", Icon: "🌱", MinPoints: 0, MaxPoints: intPtr(99), Description: "Just starting your eco journey!"},
		{Level: 2, Title: "Sprout", Icon: "🌿", MinPoints: 100, MaxPoints: intPtr(499), Description: "Growing into sustainability"},
		{Level: 3, Title: "Green Warrior", Icon: "⚔️", MinPoints: 500, MaxPoints: intPtr(999), Description: "Fighting for the planet!"},
		{Level: 4, Title: "Eco Champion", Icon: "🏆", MinPoints: 1000, MaxPoints: intPtr(2499), Description: "A true environmental champion"},
		{Level: 5, Title: "Planet Guardian", Icon: "🌍", MinPoints: 2500, MaxPoints: intPtr(4999), Description: "Guardian of Earth"},
		{Level: 6, Title: "Eco Master", Icon: "🧙", MinPoints: 5000, MaxPoints: intPtr(9999), Description: "Master of sustainability"},
		{Level: 7, Title: "Climate Hero", Icon: "🦸", MinPoints: 10000, MaxPoints: intPtr(24999), Description: "Superhero of climate action"},
		{Level: 8, Title: "Eco Legend", Icon: "👑", MinPoints: 25000, MaxPoints: nil, Description: "Legendary environmental impact!"},
	}
}
