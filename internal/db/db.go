package db

import (
	"database/sql"
	"fmt"

	"foodcourt-be/internal/config"
	"foodcourt-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// DSN is the lib/pq keyword connection string for cfg.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)
}

// NewDatabase opens and pings a postgres connection.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(cfg, "postgres")
}

func newDatabaseWithDriver(cfg *config.Config, driver string) (*sql.DB, error) {
	db, err := sql.Open(driver, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("database unavailable", zap.Error(err))
	}

	logger.L().Info("Database connection established",
		zap.String("host", cfg.DBHost),
		zap.String("name", cfg.DBName),
	)
	return db
}
