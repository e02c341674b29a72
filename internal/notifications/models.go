package notifications

import (
	"nftpawn/internal/loans"
)

// TriggerKind is the category of lifecycle event a subscription can enrol in.
type TriggerKind string

const (
	TriggerMint                 TriggerKind = "MintEvent"
	TriggerLend                 TriggerKind = "LendEvent"
	TriggerBuyout               TriggerKind = "BuyoutEvent"
	TriggerRepayment            TriggerKind = "RepaymentEvent"
	TriggerCollateralSeizure    TriggerKind = "CollateralSeizureEvent"
	TriggerLiquidationOccurring TriggerKind = "LiquidationOccurringEvent"
	TriggerLiquidationOccurred  TriggerKind = "LiquidationOccurredEvent"
)

// KnownTrigger reports whether kind names a trigger this service understands.
// Unknown kinds coming off the wire are dropped, not errored.
func KnownTrigger(kind TriggerKind) bool {
	switch kind {
	case TriggerMint, TriggerLend, TriggerBuyout, TriggerRepayment,
		TriggerCollateralSeizure, TriggerLiquidationOccurring, TriggerLiquidationOccurred:
		return true
	}
	return false
}

// LifecycleEvent is one on-chain lifecycle occurrence plus the resolved loan
// it concerns. It lives only for the duration of one ingress-to-dispatch call.
type LifecycleEvent struct {
	Kind TriggerKind
	Loan *loans.Loan

	// Ticket holders as carried by the event payload. For a buyout the
	// LendTicketHolder is the displaced lender, not the new one.
	BorrowTicketHolder string
	LendTicketHolder   string

	TransactionHash string
	OccurredAt      int64

	// MostRecentTermsEvent disambiguates presentation: on a buyout it holds
	// the previous terms so the message can show what changed.
	MostRecentTermsEvent *loans.TermsEvent
}

// ChannelKind names a delivery channel implementation.
type ChannelKind string

const (
	ChannelEmail   ChannelKind = "email"
	ChannelWebhook ChannelKind = "webhook"
)

// Subscription maps a participant address to one delivery destination
// enrolled in a set of triggers. Created by user opt-in elsewhere; read-only
// here.
type Subscription struct {
	ID                  int64
	Address             string
	Channel             ChannelKind
	DeliveryDestination string
	EnrolledTriggers    []TriggerKind
}

// Enrolled reports whether the subscription wants the given trigger. An empty
// trigger list means "everything", matching how opt-in rows are seeded.
func (s Subscription) Enrolled(kind TriggerKind) bool {
	if len(s.EnrolledTriggers) == 0 {
		return true
	}
	for _, t := range s.EnrolledTriggers {
		if t == kind {
			return true
		}
	}
	return false
}

// Message is one rendered notification ready for a channel sender.
type Message struct {
	Subject string
	Body    string
}
