package audit

import (
	"context"
	"fmt"
	"log/slog"
)

// Queue is a Sink that buffers records in memory so dispatch latency never
// depends on the downstream sink. Pair it with a Worker draining into the
// real sink.
type Queue struct {
	ch chan Record
}

// NewQueue builds a queue holding at most size records.
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Record, size)}
}

func (q *Queue) Append(_ context.Context, rec Record) error {
	select {
	case q.ch <- rec:
		return nil
	default:
		return fmt.Errorf("audit queue full, dropping record %s", rec.ID)
	}
}

// Inbox exposes the buffered records for a Worker to drain.
func (q *Queue) Inbox() <-chan Record {
	return q.ch
}

// Worker drains an inbox into a sink. Sink faults are logged and skipped: the
// audit trail is best effort and one broker hiccup must not end it.
type Worker struct {
	sink   Sink
	inbox  <-chan Record
	logger *slog.Logger
}

// NewWorker builds a worker. Run it on its own goroutine.
func NewWorker(sink Sink, inbox <-chan Record, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run consumes until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec := <-w.inbox:
			if err := w.sink.Append(ctx, rec); err != nil {
				w.logger.ErrorContext(ctx, "audit sink append failed",
					"record_id", rec.ID, "error", err)
			}
		}
	}
}
