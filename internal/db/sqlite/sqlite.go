package sqlite

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/TheShai81/music-dashboard/internal/db"
)

// Compile-time check: DB implements db.Pinger.
var _ db.Pinger = (*DB)(nil)

// Config holds connection parameters for the SQLite store.
type Config struct {
	Path          string
	SlowThreshold time.Duration
	Logger        *zap.Logger
}

// DB wraps a GORM handle over a SQLite file.
type DB struct {
	gorm *gorm.DB
}

// Open opens (creating if needed) the SQLite database at cfg.Path.
func Open(cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := cfg.Path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
	g, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         newGormLogger(logger, cfg.SlowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
	}
	return &DB{gorm: g}, nil
}

// Gorm returns the underlying handle for repositories.
func (d *DB) Gorm() *gorm.DB {
	return d.gorm
}

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates every table.
func (d *DB) Migrate(ctx context.Context) error {
	if err := d.gorm.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}
