// ABOUTME: Mutation coordinator between presentation and the note store
// ABOUTME: Validates input, applies the mutation, then refreshes the note list projection

package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/2389/coven-notes/internal/projection"
	"github.com/2389/coven-notes/internal/store"
)

// RefreshError is returned when a mutation succeeded but reloading the note
// list afterwards failed. The store holds the change; the cached list is stale
// until the next successful refresh.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("note saved but list refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// Service is the only write path for notes. Presentation reads the projection
// through Notes, Count and Subscribe, and mutates through CreateNote, EditNote
// and DeleteNote.
type Service struct {
	mu     sync.Mutex // serializes mutation + refresh
	store  store.NoteStore
	list   *projection.NoteList
	logger *slog.Logger
}

// NewService creates a coordinator over s. Pass nil logger for default.
func NewService(s store.NoteStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  s,
		list:   projection.New(s, logger),
		logger: logger.With("component", "notes"),
	}
}

// Load performs the initial full load of the projection. It must be called
// after the schema has been migrated.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.list.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}
	s.logger.Info("notes loaded", "count", len(notes))
	return nil
}

// Notes returns the current projection, newest first.
func (s *Service) Notes() []store.Note {
	return s.list.Notes()
}

// Count returns the number of notes in the current projection.
func (s *Service) Count() int {
	return s.list.Count()
}

// Subscribe returns a channel that receives the full note list after every
// successful refresh.
func (s *Service) Subscribe(ctx context.Context) (<-chan []store.Note, string) {
	return s.list.Subscribe(ctx)
}

// Unsubscribe ends a subscription created by Subscribe.
func (s *Service) Unsubscribe(subID string) {
	s.list.Unsubscribe(subID)
}

// CreateNote validates and stores a new note and returns its id. If the note
// was stored but the list refresh failed, the id is returned together with a
// *RefreshError.
func (s *Service) CreateNote(ctx context.Context, title, description string) (int64, error) {
	title, description, err := store.ValidateNote(title, description)
	if err != nil {
		s.logger.Warn("rejected note", "op", "create", "error", err)
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.CreateNote(ctx, title, description)
	if err != nil {
		s.logger.Error("creating note", "error", err)
		return 0, err
	}
	s.logger.Info("note created", "id", id)

	return id, s.refresh(ctx, "create", id)
}

// EditNote validates and overwrites the title and description of note id.
// Returns store.ErrNotFound if the note no longer exists.
func (s *Service) EditNote(ctx context.Context, id int64, title, description string) error {
	title, description, err := store.ValidateNote(title, description)
	if err != nil {
		s.logger.Warn("rejected note", "op", "edit", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdateNote(ctx, id, title, description); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("editing missing note", "id", id)
		} else {
			s.logger.Error("editing note", "id", id, "error", err)
		}
		return err
	}
	s.logger.Info("note edited", "id", id)

	return s.refresh(ctx, "edit", id)
}

// DeleteNote removes note id. Deleting a note that does not exist succeeds.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteNote(ctx, id); err != nil {
		s.logger.Error("deleting note", "id", id, "error", err)
		return err
	}
	s.logger.Info("note deleted", "id", id)

	return s.refresh(ctx, "delete", id)
}

// refresh reloads the projection after a successful mutation. Caller holds mu.
func (s *Service) refresh(ctx context.Context, op string, id int64) error {
	if _, err := s.list.Refresh(ctx); err != nil {
		s.logger.Error("note list is stale", "op", op, "id", id, "error", err)
		return &RefreshError{Err: err}
	}
	return nil
}

// Close ends every subscription.
func (s *Service) Close() {
	s.list.Close()
}
