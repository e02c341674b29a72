// Package audit records every notification the dispatcher hands to a channel,
// successful or not. Delivery to external channels is at-least-once and fire
// and forget, so the audit trail is what operations alerts on.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one notification outcome.
type Record struct {
	ID          string    `json:"id"`
	Trigger     string    `json:"trigger"`
	LoanID      string    `json:"loanId"`
	Address     string    `json:"address"`
	Channel     string    `json:"channel"`
	Destination string    `json:"destination"`
	Delivered   bool      `json:"delivered"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Sink is where records end up. Kafka in production, memory in tests/dev.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// Publisher stamps and forwards records. Append-only.
type Publisher struct {
	sink Sink
}

// NewPublisher wraps a sink.
func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

// Emit stamps identity and time onto the record and appends it.
func (p *Publisher) Emit(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	return p.sink.Append(ctx, rec)
}

// InMemorySink keeps records in memory for tests/dev.
type InMemorySink struct {
	mu      sync.Mutex
	records []Record
}

// NewInMemorySink constructs an empty sink.
func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

func (s *InMemorySink) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Records returns a copy of everything appended so far.
func (s *InMemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
