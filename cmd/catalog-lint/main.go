package main

import (
	"fmt"
	"os"
	"time"

	"ecotrack/catalog"
	"ecotrack/database"
	"ecotrack/progression"
	"ecotrack/quests"
)

type check struct {
	name string
	run  func() error
}

func main() {
	checks := []check{
		{"catalog", func() error { return catalog.Validate(catalog.DefaultEntries()) }},
		{"levels", func() error { _, err := progression.NewLevels(progression.DefaultLevels()); return err }},
		{"badges", func() error { _, err := progression.NewBadges(progression.DefaultBadges()); return err }},
		{"quests", func() error { _, err := quests.NewPool(quests.DefaultTemplates()); return err }},
		{"quest rotation", checkRotation},
		{"challenge seeds", checkChallenges},
	}

	exitCode := 0
	for _, c := range checks {
		if err := c.run(); err != nil {
			fmt.Printf("%s: %v\n", c.name, err)
			exitCode = 1
			continue
		}
		fmt.Printf("%s: OK\n", c.name)
	}
	os.Exit(exitCode)
}

// checkRotation verifies every day of a leap year offers a full, distinct set
// with an easy and a medium quest.
func checkRotation() error {
	for day := 1; day <= 366; day++ {
		set := quests.Default.ForDayOfYear(day)
		if len(set) != quests.DailyCount {
			return fmt.Errorf("day %d: %d quests, want %d", day, len(set), quests.DailyCount)
		}
		seen := map[string]bool{}
		var easy, medium bool
		for _, q := range set {
			if seen[q.ID] {
				return fmt.Errorf("day %d: quest %s offered twice", day, q.ID)
			}
			seen[q.ID] = true
			easy = easy || q.Difficulty == quests.Easy
			medium = medium || q.Difficulty == quests.Medium
		}
		if !easy || !medium {
			return fmt.Errorf("day %d: missing easy or medium quest", day)
		}
	}
	return nil
}

func checkChallenges() error {
	for _, c := range database.DefaultChallenges(time.Now()) {
		if c.Category != nil && !catalog.IsCategory(*c.Category) {
			return fmt.Errorf("%q: unknown category %q", c.Title, *c.Category)
		}
		if !c.EndDate.After(c.StartDate) {
			return fmt.Errorf("%q: ends before it starts", c.Title)
		}
	}
	return nil
}
