// Package channels holds the delivery-channel senders. The dispatcher treats
// them polymorphically; each sender owns its own transport and timeouts.
package channels

import (
	"context"

	"nftpawn/internal/notifications"
)

// Sender delivers one rendered message to one destination.
type Sender interface {
	Kind() notifications.ChannelKind
	Send(ctx context.Context, destination string, msg notifications.Message) error
}
