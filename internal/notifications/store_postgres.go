package notifications

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// PostgresSubscriptionStore reads subscription opt-ins from PostgreSQL.
// Rows are written by the opt-in flow elsewhere; this service only reads.
type PostgresSubscriptionStore struct {
	db *sql.DB
}

// NewPostgresSubscriptionStore constructs a PostgreSQL-backed store.
func NewPostgresSubscriptionStore(db *sql.DB) *PostgresSubscriptionStore {
	return &PostgresSubscriptionStore{db: db}
}

func (s *PostgresSubscriptionStore) ForAddress(ctx context.Context, address string) ([]Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, channel, delivery_destination, enrolled_triggers
		FROM notification_subscriptions
		WHERE lower(address) = lower($1)`,
		address,
	)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions for %s: %w", address, err)
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var (
			sub      Subscription
			channel  string
			triggers pq.StringArray
		)
		if err := rows.Scan(&sub.ID, &sub.Address, &channel, &sub.DeliveryDestination, &triggers); err != nil {
			return nil, fmt.Errorf("scan subscription row: %w", err)
		}
		sub.Channel = ChannelKind(channel)
		for _, t := range triggers {
			sub.EnrolledTriggers = append(sub.EnrolledTriggers, TriggerKind(t))
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscription rows: %w", err)
	}
	return subs, nil
}

// PostgresWatermarkStore persists the scan watermark as a single row.
type PostgresWatermarkStore struct {
	db *sql.DB
}

// NewPostgresWatermarkStore constructs a PostgreSQL-backed watermark store.
func NewPostgresWatermarkStore(db *sql.DB) *PostgresWatermarkStore {
	return &PostgresWatermarkStore{db: db}
}

func (s *PostgresWatermarkStore) Last(ctx context.Context) (int64, bool, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_timestamp FROM scan_watermark WHERE id = 1`,
	).Scan(&ts)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read watermark: %w", err)
	}
	return ts, true, nil
}

func (s *PostgresWatermarkStore) Override(ctx context.Context, ts int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_watermark (id, last_timestamp) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_timestamp = EXCLUDED.last_timestamp`,
		ts,
	)
	if err != nil {
		return fmt.Errorf("override watermark: %w", err)
	}
	return nil
}

// Migrate creates the tables this service reads and writes. Idempotent; main
// runs it on boot when Postgres is configured.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{`
		CREATE TABLE IF NOT EXISTS notification_subscriptions (
			id BIGSERIAL PRIMARY KEY,
			address TEXT NOT NULL,
			channel TEXT NOT NULL,
			delivery_destination TEXT NOT NULL,
			enrolled_triggers TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, `
		CREATE INDEX IF NOT EXISTS notification_subscriptions_address_idx
			ON notification_subscriptions (lower(address))`, `
		CREATE TABLE IF NOT EXISTS scan_watermark (
			id INT PRIMARY KEY CHECK (id = 1),
			last_timestamp BIGINT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %s: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i > 0 {
		return s[:i]
	}
	return s
}
