package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nuestraboda/rsvp-backend/internal/models"
)

// New opens the database from a connection string and runs migrations.
// GORM manages the underlying pgx connection pool, so per-request connection
// acquisition and release needs no handling at call sites.
func New(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.RSVP{},
		&models.Guest{},
		&models.Photo{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}
