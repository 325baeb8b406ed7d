package utils

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rnr-capital/microblog-backend/model"
)

// GetDBConnection connects to the database specified in environment
// variables. Production always requires ssl.
func GetDBConnection() (*gorm.DB, error) {
	sslmode := "require"
	if !IsProdEnv() {
		sslmode = "prefer"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		sslmode,
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// DatabaseSetupAndMigration migrates all tables served by this backend.
// Order matters, referenced tables must exist before the tables that
// carry the foreign keys.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	)
}

func IsProdEnv() bool {
	return os.Getenv("MICROBLOG_ENV") == "prod"
}
