// Package store provides persistent storage for coven-notes using SQLite.
//
// # Architecture
//
// NoteStore is the durable note repository. SQLiteStore implements it on top of
// database/sql; MockStore implements it in memory for tests.
//
// # Data Model
//
// A Note has an integer ID assigned by SQLite on insert, a title and a
// description. The table layout is:
//
//	notes(id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL, title TEXT NOT NULL, desc TEXT)
//
// ListNotes returns notes newest first (id descending).
//
// # Migrations
//
// The schema version lives in PRAGMA user_version. Migrator applies all pending
// steps inside one transaction and enables WAL mode before doing so:
//
//	PRAGMA journal_mode=WAL;
//
// OpenSQLiteStore opens a database without migrating it; NewSQLiteStore opens
// and migrates. No note operation may run before Migrate has succeeded.
//
// # Drivers
//
//   - DriverModernc ("sqlite"): modernc.org/sqlite, the default
//   - DriverCGo ("sqlite3"): github.com/mattn/go-sqlite3, requires cgo
//
// # Error Handling
//
//   - *ValidationError: blank title or description (errors.Is ErrInvalidNote)
//   - ErrNotFound: update or lookup of an id that does not exist
//   - *StorageError: any database failure, never retried
//   - *MigrationError: schema setup failure; fatal at startup
//
// All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewMockStore() for unit tests; FailNext injects a storage failure into
// the next call of an operation.
//
// Use NewSQLiteStore(":memory:") for integration tests with real SQLite.
package store
