// ABOUTME: Note List Projection: the in-memory, ordered view of every stored note
// ABOUTME: Refresh reloads the whole list from the store and swaps it atomically

package projection

import (
	"context"
	"log/slog"
	"sync"

	"github.com/2389/coven-notes/internal/store"
)

// Source is the part of the note store the projection reads from.
type Source interface {
	ListNotes(ctx context.Context) ([]store.Note, error)
}

// NoteList caches the full note list. It is only ever replaced as a whole by
// Refresh; consumers get copies and cannot write to it.
type NoteList struct {
	src    Source
	bcast  *Broadcaster
	logger *slog.Logger

	mu    sync.RWMutex
	notes []store.Note
}

// New creates an empty projection over src. Pass nil logger for default.
func New(src Source, logger *slog.Logger) *NoteList {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteList{
		src:    src,
		bcast:  NewBroadcaster(logger),
		logger: logger.With("component", "projection"),
		notes:  []store.Note{},
	}
}

// Refresh performs a full ListNotes and replaces the cached list. On failure the
// previous list is kept and the error is returned. A successful refresh is
// published to every subscriber.
func (p *NoteList) Refresh(ctx context.Context) ([]store.Note, error) {
	notes, err := p.src.ListNotes(ctx)
	if err != nil {
		p.logger.Error("refreshing note list", "error", err)
		return nil, err
	}
	if notes == nil {
		notes = []store.Note{}
	}

	p.mu.Lock()
	p.notes = notes
	p.mu.Unlock()

	p.logger.Debug("note list refreshed", "count", len(notes))
	p.bcast.Publish(notes)

	return copyNotes(notes), nil
}

// Notes returns a copy of the cached list, newest first.
func (p *NoteList) Notes() []store.Note {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copyNotes(p.notes)
}

// Count returns the length of the cached list as of the last successful refresh.
func (p *NoteList) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.notes)
}

// Subscribe returns a channel that receives the full list after every
// successful refresh, plus a subscription ID. The subscription ends when ctx is
// cancelled or Unsubscribe is called.
func (p *NoteList) Subscribe(ctx context.Context) (<-chan []store.Note, string) {
	return p.bcast.Subscribe(ctx)
}

// Unsubscribe removes a subscription and closes its channel.
func (p *NoteList) Unsubscribe(subID string) {
	p.bcast.Unsubscribe(subID)
}

// Close closes every subscriber channel.
func (p *NoteList) Close() {
	p.bcast.Close()
}

func copyNotes(notes []store.Note) []store.Note {
	out := make([]store.Note, len(notes))
	copy(out, notes)
	return out
}
