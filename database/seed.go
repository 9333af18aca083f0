package database

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"ecotrack/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// DefaultChallenges returns the stock challenge set, starting at now.
func DefaultChallenges(now time.Time) []models.Challenge {
	day := 24 * time.Hour
	mk := func(title, desc string, period models.ChallengePeriod, category string, target models.ChallengeTarget, reward int, length time.Duration) models.Challenge {
		return models.Challenge{
			Title:       title,
			Description: desc,
			Type:        period,
			Category:    strPtr(category),
			Target:      datatypes.NewJSONType(target),
			Reward:      reward,
			StartDate:   now,
			EndDate:     now.Add(length),
			IsActive:    true,
		}
	}

	return []models.Challenge{
		mk("Bike to Work Week", "Commute by bicycle for 5 days this week", models.ChallengeWeekly, "transport",
			models.ChallengeTarget{Action: "bike_commute", Count: 5, Unit: "days"}, 500, 7*day),
		mk("Meatless Monday Challenge", "Go vegetarian or vegan for every Monday this month", models.ChallengeMonthly, "food",
			models.ChallengeTarget{Action: "vegetarian_meal", Count: 4, Unit: "meals"}, 300, 30*day),
		mk("Zero Car Day", "Go one full day without using a car", models.ChallengeDaily, "transport",
			models.ChallengeTarget{Action: "no_car", Count: 1, Unit: "day"}, 100, day),
		mk("Energy Saver Sprint", "Reduce your daily energy consumption by 20% for a week", models.ChallengeWeekly, "energy",
			models.ChallengeTarget{Action: "reduce_energy", Count: 20, Unit: "percent"}, 400, 7*day),
		mk("Vegan Victory", "Eat only plant-based meals for 3 consecutive days", models.ChallengeDaily, "food",
			models.ChallengeTarget{Action: "vegan_meal", Count: 9, Unit: "meals"}, 250, 3*day),
		mk("Public Transit Champion", "Use only public transport for your commute for 2 weeks", models.ChallengeWeekly, "transport",
			models.ChallengeTarget{Action: "public_transit", Count: 10, Unit: "trips"}, 600, 14*day),
	}
}

// SeedChallenges inserts challenges. With replace set, existing challenges
// (and their participations) are removed first.
func SeedChallenges(conn *gorm.DB, challenges []models.Challenge, replace bool) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		if replace {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ChallengeParticipant{}).Error; err != nil {
				return fmt.Errorf("clear participants: %w", err)
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Challenge{}).Error; err != nil {
				return fmt.Errorf("clear challenges: %w", err)
			}
		}
		for i := range challenges {
			if err := tx.Create(&challenges[i]).Error; err != nil {
				return fmt.Errorf("create %q: %w", challenges[i].Title, err)
			}
		}
		return nil
	})
}

// ChallengeSeed is the file format accepted by LoadChallenges.
type ChallengeSeed struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Type        models.ChallengePeriod `json:"type"`
	Category    string                 `json:"category"`
	Target      models.ChallengeTarget `json:"target"`
	Reward      int                    `json:"reward"`
	Days        int                    `json:"days"`
}

// LoadChallenges decodes a JSON array of ChallengeSeed. Each challenge starts
// at now and runs for its Days.
func LoadChallenges(r io.Reader, now time.Time) ([]models.Challenge, error) {
	var seeds []ChallengeSeed
	if err := json.NewDecoder(r).Decode(&seeds); err != nil {
		return nil, fmt.Errorf("decode challenges: %w", err)
	}

	out := make([]models.Challenge, 0, len(seeds))
	for i, s := range seeds {
		switch {
		case s.Title == "":
			return nil, fmt.Errorf("challenge %d: title is required", i)
		case s.Reward < 0:
			return nil, fmt.Errorf("challenge %q: reward must not be negative", s.Title)
		case s.Days <= 0:
			return nil, fmt.Errorf("challenge %q: days must be positive", s.Title)
		}
		switch s.Type {
		case models.ChallengeDaily, models.ChallengeWeekly, models.ChallengeMonthly:
		default:
			return nil, fmt.Errorf("challenge %q: unknown type %q", s.Title, s.Type)
		}

		c := models.Challenge{
			Title:       s.Title,
			Description: s.Description,
			Type:        s.Type,
			Target:      datatypes.NewJSONType(s.Target),
			Reward:      s.Reward,
			StartDate:   now,
			EndDate:     now.AddDate(0, 0, s.Days),
			IsActive:    true,
		}
		if s.Category != "" {
			c.Category = strPtr(s.Category)
		}
		out = append(out, c)
	}
	return out, nil
}
