// database/db.go - Database Connection (PostgreSQL)
package database

import (
	"fmt"
	"log"
	"time"

	"ecotrack/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// GormConfig is shared by every dialect so error translation and UTC
// timestamps behave the same in tests and production.
func GormConfig(appEnv string) *gorm.Config {
	level := logger.Info
	if appEnv != "development" {
		level = logger.Warn
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Open connects to the configured PostgreSQL database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	return OpenPostgres(cfg.DatabaseURL, cfg.AppEnv)
}

// OpenPostgres connects to dsn and configures the pool.
func OpenPostgres(dsn, appEnv string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), GormConfig(appEnv))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return conn, nil
}

// InitDB initializes the process-wide connection and runs migrations.
func InitDB(cfg *config.Config) {
	var err error
	db, err = Open(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✅ PostgreSQL database connected successfully")

	if err := RunMigrations(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	if db == nil {
		log.Fatal("Database not initialized. Call InitDB() first.")
	}
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %v", err)
	}

	log.Println("Database connection closed")
	return nil
}
