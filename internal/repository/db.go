package repository

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hansol-kim/building-ledger/internal/common"
	"github.com/hansol-kim/building-ledger/internal/entity"
)

// Open connects to postgres and migrates the schema.
func Open(cfg common.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	log.Info("connecting to database")
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("successfully connected to database")
	return db, nil
}

// Migrate creates or updates the tables for the building aggregate.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Building{},
		&entity.LandInfo{},
		&entity.BuildingInfo{},
		&entity.PriceInfo{},
		&entity.AnalysisScore{},
		&entity.Lease{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB, log *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to access underlying connection pool", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database", "error", err)
		return
	}
	log.Info("database connections closed")
}
