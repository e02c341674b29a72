package httptransport

import (
	"encoding/json"
	"math/big"
	"net/http"

	"nftpawn/internal/loans"
	"nftpawn/internal/notifications"
	"nftpawn/pkg/requestcontext"
)

// envelope is the pub/sub delivery wrapper. A confirmationUrl marks the
// subscription-setup handshake; otherwise message holds the JSON-encoded
// lifecycle event.
type envelope struct {
	ConfirmationURL string `json:"confirmationUrl"`
	Message         string `json:"message"`
}

type eventMessage struct {
	EventKind            string            `json:"eventKind"`
	EventPayload         eventPayload      `json:"eventPayload"`
	OccurredAtTimestamp  int64             `json:"occurredAtTimestamp"`
	MostRecentTermsEvent *loans.TermsEvent `json:"mostRecentTermsEvent"`
}

type eventPayload struct {
	LoanID             string `json:"loanId"`
	BorrowTicketHolder string `json:"borrowTicketHolder"`
	LendTicketHolder   string `json:"lendTicketHolder"`
	TransactionHash    string `json:"transactionHash"`
}

// handleEventEnvelope is the pub/sub ingress: one inbound delivery, one
// synchronous dispatch. Errors surface as responses for the publisher to
// retry; nothing is retried here.
func (h *Handler) handleEventEnvelope(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		h.countIngress("malformed")
		writeError(w, http.StatusBadRequest, "malformed envelope")
		return
	}

	if env.ConfirmationURL != "" {
		// Handshake: confirm the subscription and stop. Best effort; a failed
		// probe must not block the subscription setup, so the publisher always
		// sees success.
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.ConfirmationURL, nil)
		if err == nil {
			if resp, probeErr := h.confirm.Do(req); probeErr == nil {
				resp.Body.Close()
			} else {
				h.logger.WarnContext(ctx, "subscription confirmation probe failed",
					"url", env.ConfirmationURL, "error", probeErr)
			}
		}
		h.countIngress("handshake")
		writeJSON(w, http.StatusOK, map[string]string{"status": "subscription successful"})
		return
	}

	var msg eventMessage
	if err := json.Unmarshal([]byte(env.Message), &msg); err != nil {
		h.countIngress("malformed")
		writeError(w, http.StatusBadRequest, "malformed event message")
		return
	}

	kind := notifications.TriggerKind(msg.EventKind)
	if !notifications.KnownTrigger(kind) {
		h.logger.InfoContext(ctx, "dropping unknown event kind", "event_kind", msg.EventKind)
		h.countIngress("dropped")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	loanID, ok := new(big.Int).SetString(msg.EventPayload.LoanID, 10)
	if !ok {
		h.countIngress("malformed")
		writeError(w, http.StatusBadRequest, "malformed loan id")
		return
	}

	loan, err := h.resolver.Resolve(ctx, loanID)
	if err != nil {
		// The resolver only ever reports absence. An event for a loan neither
		// source knows cannot be acted on; retrying is the publisher's call.
		h.logger.ErrorContext(ctx, "loan for event could not be resolved",
			"loan_id", msg.EventPayload.LoanID,
			"event_kind", msg.EventKind,
			"request_id", requestcontext.RequestID(ctx),
		)
		h.countIngress("failed")
		writeError(w, http.StatusInternalServerError, "loan not resolvable")
		return
	}

	sent := h.dispatcher.Dispatch(ctx, notifications.LifecycleEvent{
		Kind:                 kind,
		Loan:                 loan,
		BorrowTicketHolder:   msg.EventPayload.BorrowTicketHolder,
		LendTicketHolder:     msg.EventPayload.LendTicketHolder,
		TransactionHash:      msg.EventPayload.TransactionHash,
		OccurredAt:           msg.OccurredAtTimestamp,
		MostRecentTermsEvent: msg.MostRecentTermsEvent,
	})
	h.countIngress("dispatched")
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "notifications sent",
		"notificationsSent": sent,
	})
}

func (h *Handler) countIngress(outcome string) {
	if h.metrics != nil {
		h.metrics.IngressEnvelopes.WithLabelValues(outcome).Inc()
	}
}
