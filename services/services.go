package services

import (
	"log/slog"

	"ecotrack/catalog"
	"ecotrack/progression"
	"ecotrack/quests"

	"gorm.io/gorm"
)

// Tables are the static lookup tables the engines run on.
type Tables struct {
	Catalog *catalog.Catalog
	Levels  progression.Levels
	Badges  progression.Badges
	Quests  *quests.Pool
}

// DefaultTables returns the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Catalog: catalog.Default,
		Levels:  progression.DefaultLevels(),
		Badges:  progression.DefaultBadges(),
		Quests:  quests.Default,
	}
}

// Services wires every service over one database.
type Services struct {
	Stats      *UserStatsService
	Activities *ActivityService
	Challenges *ChallengeService
	Quests     *QuestService
	Community  *CommunityService
	Cleanup    *CleanupService
	Tables     Tables
}

func New(db *gorm.DB, tables Tables, clock Clock, logger *slog.Logger) *Services {
	stats := NewUserStatsService(db, tables.Levels, tables.Badges, logger)
	challenges := NewChallengeService(db, stats, clock, logger)
	activities := NewActivityService(db, tables.Catalog, stats, challenges, clock, logger)
	return &Services{
		Stats:      stats,
		Activities: activities,
		Challenges: challenges,
		Quests:     NewQuestService(db, tables.Quests, stats, activities, clock, logger),
		Community:  NewCommunityService(db),
		Cleanup:    NewCleanupService(db, clock, logger),
		Tables:     tables,
	}
}
