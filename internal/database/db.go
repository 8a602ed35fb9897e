// Package database stores almanac solar-term records in SQLite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// memoryPath opens a private in-memory almanac, used by tests.
const memoryPath = ":memory:"

var (
	// ErrNotFound is returned when no row matches a query.
	ErrNotFound = errors.New("record not found")

	// ErrNotMigrated is reported by Health before Migrate has created the
	// almanac tables.
	ErrNotMigrated = errors.New("almanac schema not migrated")
)

// IsNotFound reports whether err means a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// =============================================================================
// Almanac Store
// =============================================================================

// DB is the almanac store: solar terms keyed by year and term, plus a log
// of the imports that wrote them.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Config holds database configuration options.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a single-connection config. The store is read
// far more than written and SQLite takes one writer at a time.
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// Open connects to the almanac at cfg.Path, creating its directory when it
// is a file. The caller must Close it and should Migrate before querying.
func Open(cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := cfg.Path + "?_foreign_keys=ON&_busy_timeout=5000"
	if cfg.Path != memoryPath {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create almanac directory: %w", err)
			}
		}
		dsn += "&_journal_mode=WAL"
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open almanac %s: %w", cfg.Path, err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping almanac %s: %w", cfg.Path, err)
	}

	logger.Info("almanac store opened", slog.String("path", cfg.Path))
	return &DB{DB: sqlDB, logger: logger}, nil
}

// Close closes the store.
func (db *DB) Close() error {
	db.logger.Debug("closing almanac store")
	return db.DB.Close()
}

// Health checks that the store answers and that the solar_terms table
// exists, so an unmigrated file is reported before the first window query.
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var tables int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'solar_terms'`,
	).Scan(&tables)
	if err != nil {
		return fmt.Errorf("almanac health query: %w", err)
	}
	if tables == 0 {
		return ErrNotMigrated
	}
	return nil
}

// Migrate applies pending migrations in one transaction and returns how
// many ran. Applied versions and their names go in schema_migrations.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	count := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				applied_at TEXT NOT NULL DEFAULT (datetime('now'))
			)
		`); err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}

		var current int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`,
		).Scan(&current); err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}

		for _, m := range migrations {
			if m.version <= current {
				continue
			}
			db.logger.Info("applying migration", slog.Int("version", m.version), slog.String("name", m.name))

			if _, err := tx.ExecContext(ctx, m.sql); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name,
			); err != nil {
				return fmt.Errorf("record migration %d: %w", m.version, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if count > 0 {
		db.logger.Info("almanac schema migrated", slog.Int("applied", count), slog.Int("version", len(migrations)))
	}
	return count, nil
}

// =============================================================================
// Transactions
// =============================================================================

// Tx is a transaction carrying the same solar-term writes as DB.
type Tx struct {
	*sql.Tx
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx}, nil
}

// WithTx runs fn in a transaction and commits when it returns nil.
//
//	err := db.WithTx(ctx, func(tx *database.Tx) error {
//	    _, err := tx.InsertSolarTerms(ctx, "almanac.txt", records)
//	    return err
//	})
func (db *DB) WithTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op after Commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
