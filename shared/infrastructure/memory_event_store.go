package infrastructure

import (
	"context"
	"sync"

	"github.com/draftea/order-saga/shared/events"
)

var _ events.EventStore = (*MemoryEventStore)(nil)

// MemoryEventStore keeps envelopes in insertion order
type MemoryEventStore struct {
	mu     sync.RWMutex
	events []*events.Event
	seen   map[memoryEventKey]struct{}
}

type memoryEventKey struct {
	id            string
	historyLength int
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{seen: make(map[memoryEventKey]struct{})}
}

func (s *MemoryEventStore) Save(_ context.Context, event *events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryEventKey{id: event.ID.String(), historyLength: len(event.History)}
	if _, ok := s.seen[key]; ok {
		return nil
	}
	s.seen[key] = struct{}{}
	s.events = append(s.events, event.Clone())
	return nil
}

func (s *MemoryEventStore) FindLatestByOrderID(_ context.Context, orderID string) (*events.Event, error) {
	return s.findLatest(func(e *events.Event) bool { return e.GetOrderID() == orderID }), nil
}

func (s *MemoryEventStore) FindLatestByTransactionID(_ context.Context, transactionID string) (*events.Event, error) {
	return s.findLatest(func(e *events.Event) bool { return e.TransactionID == transactionID }), nil
}

// FindAll returns every stored envelope, newest first
func (s *MemoryEventStore) FindAll(_ context.Context) ([]*events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*events.Event, 0, len(s.events))
	for i := len(s.events) - 1; i >= 0; i-- {
		result = append(result, s.events[i].Clone())
	}
	return result, nil
}

// findLatest scans from the newest insert; insertion order stands in for
// created_at since envelopes are saved as they arrive
func (s *MemoryEventStore) findLatest(match func(*events.Event) bool) *events.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.events) - 1; i >= 0; i-- {
		if match(s.events[i]) {
			return s.events[i].Clone()
		}
	}
	return nil
}
