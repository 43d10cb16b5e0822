package database

import (
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"os"
	"time"

	"yamdb/internal/config"
	"yamdb/internal/microservices/http-api/models"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newGormLogger reports slow queries and errors. Lookups that find nothing are
// routine (existence checks before inserts) and stay silent.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(stdlog.New(w, "\r\n", stdlog.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// OpenGorm opens the catalogue store selected by cfg.DatabaseURL.
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(os.Stdout),
	}

	if !cfg.UsesPostgres() {
		db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %q: %w", cfg.DatabaseURL, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite serialises writers anyway; one connection also keeps :memory: databases shared
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
		return db, nil
	}

	pgxCfg, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info("database migrations applied")
	return nil
}

// Connect opens the store and applies migrations.
func Connect(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := OpenGorm(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, log); err != nil {
		Close(db)
		return nil, err
	}
	log.Info("connected to the database", "postgres", cfg.UsesPostgres())
	return db, nil
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
