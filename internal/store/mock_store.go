// ABOUTME: Mock NoteStore implementation for testing
// ABOUTME: Allows tests to run without SQLite and to inject storage failures per operation

package store

import (
	"context"
	"sort"
	"sync"
)

// Ensure MockStore implements NoteStore.
var _ NoteStore = (*MockStore)(nil)

// Operation names accepted by MockStore.FailNext.
const (
	OpCreate = "create"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
	OpList   = "list"
	OpCount  = "count"
)

// MockStore is an in-memory NoteStore implementation for testing.
type MockStore struct {
	mu     sync.RWMutex
	notes  map[int64]*Note // keyed by note ID
	nextID int64
	fail   map[string]error // keyed by operation name, consumed on use
	calls  map[string]int   // keyed by operation name
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		notes:  make(map[int64]*Note),
		nextID: 1,
		fail:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

// FailNext makes the next call of op fail with a *StorageError wrapping err.
func (m *MockStore) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = err
}

// Calls returns how many times op has been invoked.
func (m *MockStore) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

// record counts the call and returns the injected failure, if any. Caller holds mu.
func (m *MockStore) record(op string) error {
	m.calls[op]++
	if err, ok := m.fail[op]; ok {
		delete(m.fail, op)
		return &StorageError{Op: op, Err: err}
	}
	return nil
}

// CreateNote stores a new note with the next id.
func (m *MockStore) CreateNote(ctx context.Context, title, description string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(OpCreate); err != nil {
		return 0, err
	}
	title, description, err := ValidateNote(title, description)
	if err != nil {
		return 0, err
	}

	id := m.nextID
	m.nextID++
	m.notes[id] = &Note{ID: id, Title: title, Description: description}
	return id, nil
}

// GetNote retrieves a note by id.
func (m *MockStore) GetNote(ctx context.Context, id int64) (*Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(OpGet); err != nil {
		return nil, err
	}
	n, ok := m.notes[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy
	result := *n
	return &result, nil
}

// UpdateNote overwrites an existing note.
func (m *MockStore) UpdateNote(ctx context.Context, id int64, title, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(OpUpdate); err != nil {
		return err
	}
	title, description, err := ValidateNote(title, description)
	if err != nil {
		return err
	}
	n, ok := m.notes[id]
	if !ok {
		return ErrNotFound
	}
	n.Title = title
	n.Description = description
	return nil
}

// DeleteNote removes a note; missing ids are ignored.
func (m *MockStore) DeleteNote(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(OpDelete); err != nil {
		return err
	}
	delete(m.notes, id)
	return nil
}

// ListNotes returns all notes ordered by id descending.
func (m *MockStore) ListNotes(ctx context.Context) ([]Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(OpList); err != nil {
		return nil, err
	}
	notes := make([]Note, 0, len(m.notes))
	for _, n := range m.notes {
		notes = append(notes, *n)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].ID > notes[j].ID
	})
	return notes, nil
}

// CountNotes returns the number of stored notes.
func (m *MockStore) CountNotes(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(OpCount); err != nil {
		return 0, err
	}
	return len(m.notes), nil
}

// Close is a no-op for MockStore.
func (m *MockStore) Close() error {
	return nil
}
