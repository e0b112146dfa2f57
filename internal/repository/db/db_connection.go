// Package db opens the sqlite store behind the dashboard repositories.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// migrations are applied in order; PRAGMA user_version holds how many ran.
// Only append to this list.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS operators (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dashboard_sections (
		content_id TEXT PRIMARY KEY,
		icon_id TEXT NOT NULL,
		expanded BOOLEAN NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dashboard_history (
		id TEXT PRIMARY KEY,
		occurred_at TIMESTAMP NOT NULL,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		meta TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dashboard_history_occurred_at ON dashboard_history (occurred_at)`,
}

// InitDB opens (creating if needed) the sqlite file at path and brings its
// schema up to date.
func InitDB(path string) (*sql.DB, error) {
	conn, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// single writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	ctx := context.Background()
	if err := setup(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func setup(ctx context.Context, conn *sql.DB) error {
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return migrate(ctx, conn)
}

// SchemaVersion reports how many migrations have been applied.
func SchemaVersion(ctx context.Context, conn *sql.DB) (int, error) {
	var v int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func migrate(ctx context.Context, conn *sql.DB) error {
	current, err := SchemaVersion(ctx, conn)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("schema version %d is newer than this build (%d)", current, len(migrations))
	}
	if current == len(migrations) {
		return nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := current; i < len(migrations); i++ {
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
