// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"
	"log"

	"ecotrack/models"

	"gorm.io/gorm"
)

// RunMigrations creates or updates every table and index.
func RunMigrations(conn *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := conn.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Challenge{},
		&models.ChallengeParticipant{},
		&models.QuestClaim{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if err := createIndexes(conn); err != nil {
		return err
	}

	log.Println("✅ All migrations completed successfully")
	return nil
}

var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_users_eco_score_desc ON users(eco_score DESC)",
	"CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date DESC)",
	"CREATE INDEX IF NOT EXISTS idx_challenges_active_window ON challenges(is_active, end_date)",
	"CREATE INDEX IF NOT EXISTS idx_participants_open ON challenge_participants(user_id) WHERE completed = false",
}

func createIndexes(conn *gorm.DB) error {
	for _, stmt := range indexStatements {
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
