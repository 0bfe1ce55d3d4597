package db

import (
	"fmt"

	"github.com/elbuensabor/storefront-backend/config"
	"github.com/elbuensabor/storefront-backend/internal/app/model"
	appLogger "github.com/elbuensabor/storefront-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the storefront's own database. It only holds cart
// snapshots and pending orders; everything else belongs to the remote API.
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to database", map[string]interface{}{
		"driver":   cfg.Driver,
		"host":     cfg.Host,
		"database": cfg.DBName,
	})

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // we use our own logger
	}

	var err error
	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	case "sqlite":
		DB, err = gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	appLogger.Info("Database connection established successfully", nil)
	return nil
}

// Migrate creates the storefront tables.
func Migrate() error {
	return DB.AutoMigrate(
		&model.CartSnapshot{},
		&model.PendingOrder{},
	)
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
