// ABOUTME: In-memory fan-out of note list snapshots to presentation subscribers
// ABOUTME: Each subscriber holds at most one pending snapshot; newer snapshots replace unread ones

package projection

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/2389/coven-notes/internal/store"
)

// Broadcaster provides in-memory pub/sub for note list snapshots. A subscriber
// only ever needs the latest list, so each channel buffers a single snapshot.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan []store.Note // subID -> ch
	closed      bool
	logger      *slog.Logger
}

// NewBroadcaster creates a broadcaster. Pass nil logger for default.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subscribers: make(map[string]chan []store.Note),
		logger:      logger.With("component", "broadcaster"),
	}
}

// Subscribe registers a subscriber. Returns a channel that receives snapshots
// and a subscription ID for later unsubscription. The subscription is
// automatically cleaned up when ctx is cancelled. Subscribing to a closed
// broadcaster returns an already-closed channel.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan []store.Note, string) {
	subID := uuid.New().String()
	ch := make(chan []store.Note, 1)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, subID
	}
	b.subscribers[subID] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", subID)

	// Auto-cleanup on context cancellation
	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Publish delivers a snapshot to every subscriber without blocking. Each
// subscriber gets its own copy of the slice.
func (b *Broadcaster) Publish(notes []store.Note) {
	// Hold the read lock while sending so Unsubscribe cannot close a channel mid-send
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		snapshot := make([]store.Note, len(notes))
		copy(snapshot, notes)
		select {
		case ch <- snapshot:
			continue
		default:
		}

		// Subscriber has not read the previous snapshot; replace it
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
			b.logger.Debug("replaced unread snapshot", "sub_id", id)
		default:
			b.logger.Warn("dropped snapshot for subscriber", "sub_id", id)
		}
	}
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, exists := b.subscribers[subID]
	if !exists {
		return
	}

	delete(b.subscribers, subID)
	close(ch)

	b.logger.Debug("subscriber removed", "sub_id", subID)
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subID, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, subID)
	}
	b.closed = true

	b.logger.Debug("broadcaster closed")
}
