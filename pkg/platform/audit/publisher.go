package audit

import (
	"context"
	"sync"
	"time"
)

// Publisher accepts events for delivery. Emit is called after the operation's
// transaction commits; implementations must not fail the business operation,
// callers log and continue on error.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Nop drops every event. Default when no trail is configured.
type Nop struct{}

func (Nop) Emit(context.Context, Event) error { return nil }

// MemorySink buffers events in memory for tests and local runs.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Emit(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (s *MemorySink) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}

// ByAction filters the captured events.
func (s *MemorySink) ByAction(action Action) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
