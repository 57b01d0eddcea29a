package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dealertrack/internal/models"
)

var DB *gorm.DB

func ConnectDatabase() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logger.Warn, // Log level
			Colorful:      true,
		},
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to auto-migrate database schema: %v", err)
	}
	log.Println("Database schema migration completed.")

	if err := SeedDefaults(DB); err != nil {
		log.Fatalf("Failed to seed default configuration: %v", err)
	}
}

// Migrate creates or updates the schema. It will NOT delete unneeded
// columns, to protect existing data.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ZoneDuration{},
		&models.CodeMatrixEntry{},
		&models.ExecutiveAssignment{},
		&models.ObservationChange{},
		&models.OperationStats{},
	)
}

// GetDB returns the gorm database instance
func GetDB() *gorm.DB {
	return DB
}
