package progression

import (
	"errors"
	"fmt"
)

// RequirementType names the stat a badge threshold applies to.
type RequirementType string

const (
	RequireEcoScore      RequirementType = "ecoScore"
	RequireCarbonAvoided RequirementType = "carbonAvoided"
	RequireStreak        RequirementType = "streak"
	RequireActivities    RequirementType = "activities"
	RequireChallenges    RequirementType = "challenges"
)

// Tier is the rarity of a badge.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Requirement is a "stat ≥ value" threshold.
type Requirement struct {
	Type  RequirementType `json:"type"`
	Value float64         `json:"value"`
}

// Badge is an achievement derived from a stats snapshot. Badges are never stored.
type Badge struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Description string      `json:"description"`
	Requirement Requirement `json:"requirement"`
	Tier        Tier        `json:"tier"`
	Category    string      `json:"category"`
}

// Stats is the snapshot of a user that badges are evaluated against.
type Stats struct {
	EcoScore            int     `json:"eco_score"`
	CarbonAvoided       float64 `json:"carbon_avoided"`
	StreakCurrent       int     `json:"streak_current"`
	StreakLongest       int     `json:"streak_longest"`
	CompletedChallenges int     `json:"completed_challenges"`
	Activities          int     `json:"activities"`
}

// Value returns the stat a requirement type compares against. Streak badges
// use the better of the current and longest streak.
func (s Stats) Value(t RequirementType) float64 {
	switch t {
	case RequireEcoScore:
		return float64(s.EcoScore)
	case RequireCarbonAvoided:
		return s.CarbonAvoided
	case RequireStreak:
		return float64(max(s.StreakCurrent, s.StreakLongest))
	case RequireActivities:
		return float64(s.Activities)
	case RequireChallenges:
		return float64(s.CompletedChallenges)
	}
	return 0
}

// BadgeProgress is a locked badge with how close the user is to it.
type BadgeProgress struct {
	Badge    Badge   `json:"badge"`
	Progress float64 `json:"progress"`
}

// Badges is an ordered badge table.
type Badges []Badge

// NewBadges validates ids and thresholds.
func NewBadges(table []Badge) (Badges, error) {
	seen := make(map[string]bool, len(table))
	for _, b := range table {
		if b.ID == "" {
			return nil, errors.New("badge with empty id")
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate badge id %q", b.ID)
		}
		seen[b.ID] = true
		if b.Requirement.Value <= 0 {
			return nil, fmt.Errorf("badge %q: requirement must be positive", b.ID)
		}
		switch b.Requirement.Type {
		case RequireEcoScore, RequireCarbonAvoided, RequireStreak, RequireActivities, RequireChallenges:
		default:
			return nil, fmt.Errorf("badge %q: unknown requirement %q", b.ID, b.Requirement.Type)
		}
	}
	out := make(Badges, len(table))
	copy(out, table)
	return out, nil
}

func (b Badge) unlocked(s Stats) bool {
	return s.Value(b.Requirement.Type) >= b.Requirement.Value
}

// Unlocked returns every badge whose threshold the stats meet, in table order.
func (t Badges) Unlocked(s Stats) []Badge {
	out := []Badge{}
	for _, b := range t {
		if b.unlocked(s) {
			out = append(out, b)
		}
	}
	return out
}

// Next returns up to limit locked badges in table order with their progress
// percentage, clamped to [0, 100].
func (t Badges) Next(s Stats, limit int) []BadgeProgress {
	out := []BadgeProgress{}
	for _, b := range t {
		if len(out) >= limit {
			break
		}
		if b.unlocked(s) {
			continue
		}
		pct := 100 * s.Value(b.Requirement.Type) / b.Requirement.Value
		out = append(out, BadgeProgress{Badge: b, Progress: clamp(pct, 0, 100)})
	}
	return out
}

// DefaultBadges is the built-in badge table.
func DefaultBadges() Badges {
	return Badges{
		{ID: "first_leaf", Name: "First Leaf", Icon: "🌱", Description: "Log your first eco activity", Requirement: Requirement{RequireEcoScore, 1}, Tier: TierBronze, Category: "milestone"},
		{ID: "green_starter", Name: "Green Starter", Icon: "🌿", Description: "Reach 100 EcoPoints", Requirement: Requirement{RequireEcoScore, 100}, Tier: TierBronze, Category: "milestone"},
		{ID: "eco_warrior", Name: "Eco Warrior", Icon: "⚔️", Description: "Reach 500 EcoPoints", Requirement: Requirement{RequireEcoScore, 500}, Tier: TierSilver, Category: "milestone"},
		{ID: "planet_champion", Name: "Planet Champion", Icon: "🏆", Description: "Reach 1000 EcoPoints", Requirement: Requirement{RequireEcoScore, 1000}, Tier: TierGold, Category: "milestone"},
		{ID: "eco_legend", Name: "Eco Legend", Icon: "👑", Description: "Reach 5000 EcoPoints", Requirement: Requirement{RequireEcoScore, 5000}, Tier: TierPlatinum, Category: "milestone"},

		{ID: "carbon_saver", Name: "Carbon Saver", Icon: "💨", Description: "Avoid 10kg of CO₂ emissions", Requirement: Requirement{RequireCarbonAvoided, 10}, Tier: TierBronze, Category: "impact"},
		{ID: "tree_hugger", Name: "Tree Hugger", Icon: "🌳", Description: "Avoid 50kg of CO₂ (like 2+ trees!)", Requirement: Requirement{RequireCarbonAvoided, 50}, Tier: TierSilver, Category: "impact"},
		{ID: "forest_guardian", Name: "Forest Guardian", Icon: "🌲", Description: "Avoid 100kg of CO₂", Requirement: Requirement{RequireCarbonAvoided, 100}, Tier: TierGold, Category: "impact"},
		{ID: "planet_protector", Name: "Planet Protector", Icon: "🌍", Description: "Avoid 500kg of CO₂", Requirement: Requirement{RequireCarbonAvoided, 500}, Tier: TierPlatinum, Category: "impact"},

		{ID: "consistent", Name: "Consistent", Icon: "🔥", Description: "Maintain a 3-day streak", Requirement: Requirement{RequireStreak, 3}, Tier: TierBronze, Category: "streak"},
		{ID: "week_warrior", Name: "Week Warrior", Icon: "📅", Description: "Maintain a 7-day streak", Requirement: Requirement{RequireStreak, 7}, Tier: TierSilver, Category: "streak"},
		{ID: "month_master", Name: "Month Master", Icon: "🌙", Description: "Maintain a 30-day streak", Requirement: Requirement{RequireStreak, 30}, Tier: TierGold, Category: "streak"},
		{ID: "streak_legend", Name: "Streak Legend", Icon: "⭐", Description: "Maintain a 100-day streak", Requirement: Requirement{RequireStreak, 100}, Tier: TierPlatinum, Category: "streak"},

		{ID: "challenger", Name: "Challenger", Icon: "🎯", Description: "Complete your first challenge", Requirement: Requirement{RequireChallenges, 1}, Tier: TierBronze, Category: "social"},
		{ID: "challenge_hunter", Name: "Challenge Hunter", Icon: "🏹", Description: "Complete 5 challenges", Requirement: Requirement{RequireChallenges, 5}, Tier: TierSilver, Category: "social"},
		{ID: "challenge_master", Name: "Challenge Master", Icon: "🎖️", Description: "Complete 10 challenges", Requirement: Requirement{RequireChallenges, 10}, Tier: TierGold, Category: "social"},
	}
}
