package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecommerce-analytics/internal/config"
)

// Open creates the GORM engine for the configured PostgreSQL database.
// A failure here is fatal for every entry point, so it is logged before being returned.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Printf("Error creating database engine: %v", err)
		return nil, fmt.Errorf("failed to open database %s on %s:%s: %w", cfg.DBName, cfg.DBHost, cfg.DBPort, err)
	}

	log.Println("Database engine created")
	return db, nil
}

// Close releases the pool behind a GORM handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database pool: %w", err)
	}
	return sqlDB.Close()
}
