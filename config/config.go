package config

import (
	"os"

	"github.com/fizzbuzzhq/fizzbuzz-backend/models"
	"github.com/fizzbuzzhq/fizzbuzz-backend/utils/logger"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupDatabase connects to DB and runs migrations
func SetupDatabase() *gorm.DB {
	// Load env
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, reading environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatalf("DATABASE_URL is required in .env")
	}

	// Connect to DB
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatalf("Failed to connect to DB: %v", err)
	}

	// Run migrations
	if err := Migrate(db); err != nil {
		logger.Fatalf("Migration failed: %v", err)
	}

	logger.Info("Database migration completed")
	return db
}

// Migrate creates or updates the three tables the core depends on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.GameDefinition{},
		&models.GameRule{},
		&models.GameSession{},
	)
}
