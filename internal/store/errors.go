// ABOUTME: Error taxonomy for coven-notes persistence
// ABOUTME: Not-found and invalid-note sentinels plus validation, storage and migration error types

package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a mutation or lookup targets a note id that does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalidNote is matched by every *ValidationError via errors.Is
var ErrInvalidNote = errors.New("invalid note")

// ValidationError reports a required note field that was empty after trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// Is reports whether target is ErrInvalidNote.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidNote
}

// StorageError wraps a failure of the underlying database (I/O, disk full,
// corruption, missing schema). Storage errors are never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MigrationError reports a failed schema migration. Version is the step that
// failed; the stored schema version is left where it was before the attempt.
type MigrationError struct {
	Version int
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migrating schema to version %d: %v", e.Version, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
