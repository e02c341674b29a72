package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherStampsIdentityAndTime(t *testing.T) {
	sink := NewInMemorySink()
	pub := NewPublisher(sink)

	err := pub.Emit(context.Background(), Record{
		Trigger:     "RepaymentEvent",
		LoanID:      "65",
		Address:     "0x0dd7d78ed27632839cd2a929ee570ead346c19fc",
		Channel:     "email",
		Destination: "borrower@example.com",
		Delivered:   true,
	})
	require.NoError(t, err)

	records := sink.Records()
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.False(t, records[0].Timestamp.IsZero())
	assert.True(t, records[0].Delivered)
}

func TestPublisherKeepsCallerStamps(t *testing.T) {
	sink := NewInMemorySink()
	pub := NewPublisher(sink)

	at := time.Date(2022, 4, 15, 6, 0, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), Record{ID: "fixed-id", Timestamp: at})
	require.NoError(t, err)

	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "fixed-id", records[0].ID)
	assert.Equal(t, at, records[0].Timestamp)
}

func TestWorkerDrainsQueueIntoSink(t *testing.T) {
	queue := NewQueue(8)
	sink := NewInMemorySink()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = NewWorker(sink, queue.Inbox(), logger).Run(ctx)
	}()

	require.NoError(t, queue.Append(ctx, Record{ID: "a"}))
	require.NoError(t, queue.Append(ctx, Record{ID: "b"}))

	require.Eventually(t, func() bool {
		return len(sink.Records()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestQueueFullDropsInsteadOfBlocking(t *testing.T) {
	queue := NewQueue(1)
	ctx := context.Background()

	require.NoError(t, queue.Append(ctx, Record{ID: "a"}))
	assert.Error(t, queue.Append(ctx, Record{ID: "b"}), "no worker draining: second append must not block")
}

func TestInMemorySinkReturnsCopies(t *testing.T) {
	sink := NewInMemorySink()
	require.NoError(t, sink.Append(context.Background(), Record{ID: "a"}))

	first := sink.Records()
	first[0].ID = "tampered"

	assert.Equal(t, "a", sink.Records()[0].ID)
}
