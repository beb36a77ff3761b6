package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"productsvc/internal/models"
)

const (
	migrateMaxRetries = 10
	migrateRetryDelay = 5 * time.Second
)

// Connect opens a GORM handle to PostgreSQL. One handle is created per
// process and passed explicitly to whoever needs it; there is no package
// level database state.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// MigrateWithRetry ensures the products table exists, retrying on failure
// with a fixed delay. The store may still be coming up when the service
// starts, so transient connection errors are expected. If every attempt
// fails the process must not accept traffic, so the caller should treat the
// returned error as fatal.
func MigrateWithRetry(db *gorm.DB) error {
	var err error
	for attempt := 1; attempt <= migrateMaxRetries; attempt++ {
		log.Printf("Attempting to connect to PostgreSQL and create tables (attempt %d/%d)...", attempt, migrateMaxRetries)
		err = db.AutoMigrate(&models.Product{})
		if err == nil {
			log.Println("Successfully connected to PostgreSQL and ensured tables exist.")
			return nil
		}
		log.Printf("Failed to migrate database: %v", err)
		if attempt < migrateMaxRetries {
			log.Printf("Retrying in %s...", migrateRetryDelay)
			time.Sleep(migrateRetryDelay)
		}
	}
	return fmt.Errorf("failed to migrate database after %d attempts: %w", migrateMaxRetries, err)
}
