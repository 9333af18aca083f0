package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ecotrack/database"
	"ecotrack/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	replace := flag.Bool("replace", false, "delete existing challenges and participations first")
	file := flag.String("file", "", "JSON file of challenges to load instead of the built-in set")
	sqlitePath := flag.String("sqlite", "", "seed a local SQLite file instead of DATABASE_URL")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	db, err := connect(*sqlitePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	now := time.Now().UTC()
	challenges := database.DefaultChallenges(now)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("Failed to read challenge file:", err)
		}
		challenges, err = database.LoadChallenges(f, now)
		f.Close()
		if err != nil {
			log.Fatal("Failed to parse challenge file:", err)
		}
	}

	fmt.Printf("Seeding %d challenges (replace=%v)\n\n", len(challenges), *replace)
	if err := database.SeedChallenges(db, challenges, *replace); err != nil {
		log.Fatal("Seeding failed:", err)
	}
	for _, c := range challenges {
		fmt.Printf("  %-28s %-8s reward %d\n", c.Title, c.Type, c.Reward)
	}

	var count int64
	db.Model(&models.Challenge{}).Where("is_active = ?", true).Count(&count)
	fmt.Printf("\n✓ Active challenges in database: %d\n", count)
}

func connect(sqlitePath string) (*gorm.DB, error) {
	if sqlitePath != "" {
		return database.OpenSQLite(sqlitePath, "development")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set (or pass -sqlite)")
	}
	db, err := database.OpenPostgres(dsn, os.Getenv("APP_ENV"))
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}
