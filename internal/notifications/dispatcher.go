package notifications

import (
	"context"
	"log/slog"

	"nftpawn/internal/audit"
	"nftpawn/internal/platform/metrics"
	stringsutil "nftpawn/pkg/platform/strings"
)

// BuyoutLookup answers whether a transaction also carried a buyout, and if so
// which lender was displaced. Implemented by the subgraph client.
type BuyoutLookup interface {
	BuyoutForTransaction(ctx context.Context, txHash string) (displacedLender string, found bool, err error)
}

// Sender delivers one rendered message to one destination. Declared here so
// the dispatcher depends on the capability, not the channels package.
type Sender interface {
	Kind() ChannelKind
	Send(ctx context.Context, destination string, msg Message) error
}

// Dispatcher fans one lifecycle event out to every subscribed destination of
// every involved address. It owns no state: idempotence is the caller's
// responsibility, and calling it twice for the same event merely sends twice.
type Dispatcher struct {
	subscriptions SubscriptionStore
	buyouts       BuyoutLookup
	senders       map[ChannelKind]Sender
	renderer      Renderer
	audit         *audit.Publisher
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

// NewDispatcher wires the dispatcher. auditPub may be nil to disable the
// audit trail (tests).
func NewDispatcher(
	subscriptions SubscriptionStore,
	buyouts BuyoutLookup,
	senders []Sender,
	auditPub *audit.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	byKind := make(map[ChannelKind]Sender, len(senders))
	for _, s := range senders {
		byKind[s.Kind()] = s
	}
	return &Dispatcher{
		subscriptions: subscriptions,
		buyouts:       buyouts,
		senders:       byKind,
		audit:         auditPub,
		logger:        logger,
		metrics:       m,
	}
}

// Dispatch determines the involved addresses for the event, looks up their
// subscriptions and sends one message per enrolled destination. Sends are
// isolated: one recipient's failure is logged, audited and counted, and never
// blocks the rest. Returns how many notifications went out.
func (d *Dispatcher) Dispatch(ctx context.Context, event LifecycleEvent) int {
	addresses, hasPreviousLender := d.involvedAddresses(ctx, event)
	if len(addresses) == 0 {
		return 0
	}

	msg := d.renderer.Render(event, hasPreviousLender)

	sent := 0
	for _, address := range addresses {
		subs, err := d.subscriptions.ForAddress(ctx, address)
		if err != nil {
			d.logger.ErrorContext(ctx, "subscription lookup failed",
				"address", address, "trigger", event.Kind, "error", err)
			continue
		}
		for _, sub := range subs {
			if !sub.Enrolled(event.Kind) {
				continue
			}
			sender, ok := d.senders[sub.Channel]
			if !ok {
				d.logger.WarnContext(ctx, "no sender for channel, skipping",
					"channel", sub.Channel, "address", address)
				continue
			}
			err := sender.Send(ctx, sub.DeliveryDestination, msg)
			d.record(ctx, event, sub, err)
			if err != nil {
				d.logger.ErrorContext(ctx, "notification send failed",
					"channel", sub.Channel,
					"address", address,
					"trigger", event.Kind,
					"error", err,
				)
				continue
			}
			sent++
		}
	}
	return sent
}

// involvedAddresses decides who the event concerns. A LendEvent sharing a
// transaction with a buyout displaced a prior lender, who gets told too.
func (d *Dispatcher) involvedAddresses(ctx context.Context, event LifecycleEvent) ([]string, bool) {
	var (
		addresses         []string
		hasPreviousLender bool
	)
	switch event.Kind {
	case TriggerMint:
		addresses = []string{event.BorrowTicketHolder}
	case TriggerLend:
		addresses = []string{event.BorrowTicketHolder}
		if event.TransactionHash != "" && d.buyouts != nil {
			displaced, found, err := d.buyouts.BuyoutForTransaction(ctx, event.TransactionHash)
			if err != nil {
				d.logger.ErrorContext(ctx, "buyout lookup failed, treating as first lend",
					"tx_hash", event.TransactionHash, "error", err)
			} else if found {
				hasPreviousLender = true
				addresses = append(addresses, displaced)
			}
		}
	case TriggerBuyout:
		addresses = []string{event.LendTicketHolder, event.BorrowTicketHolder}
	case TriggerRepayment, TriggerCollateralSeizure:
		addresses = []string{event.BorrowTicketHolder, event.LendTicketHolder}
	case TriggerLiquidationOccurring, TriggerLiquidationOccurred:
		if event.Loan != nil {
			addresses = append(addresses, event.Loan.Borrower.Hex())
			if event.Loan.Lender != nil {
				addresses = append(addresses, event.Loan.Lender.Hex())
			}
		}
	}
	return stringsutil.DedupeAndTrimLower(addresses), hasPreviousLender
}

func (d *Dispatcher) record(ctx context.Context, event LifecycleEvent, sub Subscription, sendErr error) {
	if d.metrics != nil {
		if sendErr != nil {
			d.metrics.NotificationsError.WithLabelValues(string(sub.Channel)).Inc()
		} else {
			d.metrics.NotificationsSent.WithLabelValues(string(sub.Channel)).Inc()
		}
	}
	if d.audit == nil {
		return
	}
	rec := audit.Record{
		Trigger:     string(event.Kind),
		Address:     sub.Address,
		Channel:     string(sub.Channel),
		Destination: sub.DeliveryDestination,
		Delivered:   sendErr == nil,
	}
	if event.Loan != nil && event.Loan.ID != nil {
		rec.LoanID = event.Loan.ID.String()
	}
	if sendErr != nil {
		rec.Error = sendErr.Error()
	}
	if err := d.audit.Emit(ctx, rec); err != nil {
		d.logger.ErrorContext(ctx, "audit emit failed", "error", err)
	}
}
