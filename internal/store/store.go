// ABOUTME: Store interface and Note data type for coven-notes persistence
// ABOUTME: Defines Note, NoteStore, and note input validation

package store

import (
	"context"
	"strings"
)

// Note is a single persisted note. ID is assigned by the store on creation and
// never changes afterwards.
type Note struct {
	ID          int64
	Title       string
	Description string
}

// NoteStore defines the durable note repository.
type NoteStore interface {
	CreateNote(ctx context.Context, title, description string) (int64, error)
	GetNote(ctx context.Context, id int64) (*Note, error)
	UpdateNote(ctx context.Context, id int64, title, description string) error
	DeleteNote(ctx context.Context, id int64) error
	ListNotes(ctx context.Context) ([]Note, error)
	CountNotes(ctx context.Context) (int, error)

	// Close releases any resources held by the store
	Close() error
}

// ValidateNote trims title and description and checks that both are non-empty.
// The trimmed values are returned so callers persist exactly what was validated.
func ValidateNote(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return "", "", &ValidationError{Field: "title"}
	}
	if description == "" {
		return "", "", &ValidationError{Field: "description"}
	}
	return title, description, nil
}
