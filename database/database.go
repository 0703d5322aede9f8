package database

import (
	"fmt"
	"log"

	"learnhub/config"
	"learnhub/models"
	courseModels "learnhub/models/course"
	gameModels "learnhub/models/game"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.AppConfig.DBHost,
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBName,
		config.AppConfig.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// Migrate performs database migrations. Exported so tests can run the same
// schema against their own database.
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.LessonProgress{},
		&courseModels.CourseProgress{},
		&courseModels.CourseSubscription{},
		&gameModels.MemoryGame{},
		&gameModels.MemoryGamePair{},
	)
	if err != nil {
		return err
	}

	// AutoMigrate cannot express a partial unique index: at most one
	// game-linked lesson per course.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_lesson_game_linked ON lessons (course_id) WHERE is_game_linked AND deleted_at IS NULL",
	).Error; err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}
