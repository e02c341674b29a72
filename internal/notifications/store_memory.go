package notifications

import (
	"context"
	"strings"
	"sync"
)

// InMemorySubscriptionStore keeps subscriptions in memory for tests/dev.
type InMemorySubscriptionStore struct {
	mu   sync.RWMutex
	rows map[string][]Subscription
}

// NewInMemorySubscriptionStore constructs an empty in-memory store.
func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{rows: make(map[string][]Subscription)}
}

// Add registers a subscription; used by tests and dev seeding.
func (s *InMemorySubscriptionStore) Add(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(sub.Address)
	sub.ID = int64(len(s.rows[key]) + 1)
	s.rows[key] = append(s.rows[key], sub)
}

func (s *InMemorySubscriptionStore) ForAddress(_ context.Context, address string) ([]Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := s.rows[strings.ToLower(address)]
	out := make([]Subscription, len(subs))
	copy(out, subs)
	return out, nil
}

// InMemoryWatermarkStore keeps the scan watermark in memory for tests/dev.
type InMemoryWatermarkStore struct {
	mu  sync.Mutex
	ts  int64
	set bool
}

// NewInMemoryWatermarkStore constructs an empty in-memory watermark store.
func NewInMemoryWatermarkStore() *InMemoryWatermarkStore {
	return &InMemoryWatermarkStore{}
}

func (s *InMemoryWatermarkStore) Last(_ context.Context) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ts, s.set, nil
}

func (s *InMemoryWatermarkStore) Override(_ context.Context, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ts = ts
	s.set = true
	return nil
}
