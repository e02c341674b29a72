package notifications

import "context"

// Error Contract:
// All store methods follow this pattern:
// - Return wrapped sentinel.ErrNotFound when the requested entity does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures

// SubscriptionStore looks up who wants to hear about an address's loans.
type SubscriptionStore interface {
	// ForAddress returns every subscription registered for the address.
	// Address matching is case-insensitive; destinations are returned as
	// stored. An address nobody subscribed to yields an empty slice, not an
	// error.
	ForAddress(ctx context.Context, address string) ([]Subscription, error)
}

// WatermarkStore persists the single "last processed timestamp" that makes
// the liquidation scan resumable and idempotent. Owned exclusively by the
// scanner.
type WatermarkStore interface {
	// Last returns the stored timestamp, with ok=false when no scan has ever
	// completed.
	Last(ctx context.Context) (ts int64, ok bool, err error)
	// Override atomically replaces the stored timestamp.
	Override(ctx context.Context, ts int64) error
}
