// ABOUTME: SQLite implementation of NoteStore using modernc.org/sqlite or mattn/go-sqlite3
// ABOUTME: Opens the database file, runs the schema migrator, and owns the connection

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
	DriverCGo     = "sqlite3" // github.com/mattn/go-sqlite3, requires cgo
)

// Ensure SQLiteStore implements NoteStore.
var _ NoteStore = (*SQLiteStore)(nil)

// SQLiteStore implements the NoteStore interface using SQLite
type SQLiteStore struct {
	db       *sql.DB
	migrator *Migrator
	logger   *slog.Logger
}

// NewSQLiteStore opens the SQLite database at the given path with the default
// driver and migrates it to TargetVersion.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	s, err := OpenSQLiteStore(DriverModernc, path)
	if err != nil {
		return nil, err
	}

	if _, err := s.Migrate(context.Background()); err != nil {
		s.db.Close()
		return nil, err
	}

	return s, nil
}

// OpenSQLiteStore opens the database without touching the schema. Callers must
// run Migrate before any note operation; until then every note operation fails
// with a *StorageError because the notes table does not exist.
func OpenSQLiteStore(driver, path string) (*SQLiteStore, error) {
	base := slog.Default()
	logger := base.With("component", "store")

	switch driver {
	case "":
		driver = DriverModernc
	case DriverModernc, DriverCGo:
	default:
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single writer; also keeps a ":memory:" database on one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageErr("connecting to database", err)
	}

	s := &SQLiteStore{
		db:       db,
		migrator: NewMigrator(db, base),
		logger:   logger,
	}

	logger.Info("SQLite store opened", "path", path, "driver", driver)
	return s, nil
}

// Migrate runs the schema migrator and returns the resulting schema version.
func (s *SQLiteStore) Migrate(ctx context.Context) (int, error) {
	return s.migrator.Migrate(ctx)
}

// SchemaVersion returns the stored schema version.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	return s.migrator.CurrentVersion(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}
