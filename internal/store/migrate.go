// ABOUTME: Versioned schema migrator backed by SQLite's PRAGMA user_version
// ABOUTME: Applies pending steps in one transaction so a failure never leaves a partial schema

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// TargetVersion is the schema version this build of coven-notes requires.
const TargetVersion = 1

// migration is a single ordered schema step.
type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, tx *sql.Tx) error
}

// migrations lists every schema step in ascending version order.
var migrations = []migration{
	{
		version: 1,
		name:    "create notes table",
		apply: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS notes (
					id    INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
					title TEXT NOT NULL,
					desc  TEXT
				)
			`)
			return err
		},
	},
}

// Migrator brings the persisted schema up to the version the application needs.
// It is run once at startup, before any note operation.
type Migrator struct {
	db     *sql.DB
	steps  []migration
	logger *slog.Logger
}

// NewMigrator creates a migrator for db using the built-in migration steps.
func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	return newMigrator(db, logger, migrations)
}

func newMigrator(db *sql.DB, logger *slog.Logger, steps []migration) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		db:     db,
		steps:  steps,
		logger: logger.With("component", "migrator"),
	}
}

// Target returns the highest version known to the migrator.
func (m *Migrator) Target() int {
	if len(m.steps) == 0 {
		return 0
	}
	return m.steps[len(m.steps)-1].version
}

// CurrentVersion reads the stored schema version. A fresh database reports 0.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	if err := m.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, storageErr("reading schema version", err)
	}
	return version, nil
}

// Migrate applies every step newer than the stored version and returns the
// resulting version. When the store is already at or above the target it is a
// no-op. All pending steps share one transaction: on any failure the
// transaction is rolled back and a *MigrationError is returned.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return 0, &MigrationError{Version: m.Target(), Err: err}
	}

	target := m.Target()
	if current >= target {
		m.logger.Debug("schema up to date", "version", current)
		return current, nil
	}

	// WAL is a persistent database setting and cannot change inside a transaction
	var mode string
	if err := m.db.QueryRowContext(ctx, "PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		return current, &MigrationError{Version: target, Err: fmt.Errorf("enabling WAL mode: %w", err)}
	}
	m.logger.Debug("journal mode set", "mode", mode)

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return current, &MigrationError{Version: target, Err: fmt.Errorf("beginning transaction: %w", err)}
	}

	for _, step := range m.steps {
		if step.version <= current {
			continue
		}
		if err := step.apply(ctx, tx); err != nil {
			m.rollback(tx, step.version)
			return current, &MigrationError{Version: step.version, Err: err}
		}
		m.logger.Info("applied migration", "version", step.version, "name", step.name)
	}

	// PRAGMA does not accept bound parameters
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		m.rollback(tx, target)
		return current, &MigrationError{Version: target, Err: fmt.Errorf("setting schema version: %w", err)}
	}

	if err := tx.Commit(); err != nil {
		return current, &MigrationError{Version: target, Err: fmt.Errorf("committing: %w", err)}
	}

	m.logger.Info("schema migrated", "from", current, "to", target)
	return target, nil
}

func (m *Migrator) rollback(tx *sql.Tx, version int) {
	if err := tx.Rollback(); err != nil {
		m.logger.Error("rolling back migration", "version", version, "error", err)
	}
}
