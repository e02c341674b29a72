package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"nftpawn/internal/loans"
	"nftpawn/internal/notifications"
	"nftpawn/internal/platform/metrics"
)

// LoanReader is the on-demand resolution surface the handlers need.
type LoanReader interface {
	Resolve(ctx context.Context, loanID *big.Int) (*loans.Loan, error)
}

// LoanLister serves the listing endpoints straight from the indexer; listing
// is inherently an indexer feature, there is no node fallback for it.
type LoanLister interface {
	ActiveLoans(ctx context.Context, limit int) ([]*loans.Loan, error)
	LoansForAddress(ctx context.Context, address string) ([]*loans.Loan, error)
}

// ScanRunner triggers one liquidation scan.
type ScanRunner interface {
	Run(ctx context.Context, currentTimestamp int64) (notifications.ScanResult, error)
}

// Handler is the thin HTTP layer. It delegates to the resolver, dispatcher
// and scanner without embedding business logic.
type Handler struct {
	logger     *slog.Logger
	metrics    *metrics.Metrics
	resolver   LoanReader
	lister     LoanLister
	dispatcher *notifications.Dispatcher
	scanner    ScanRunner
	scanSecret string

	// confirm issues the pub/sub subscription handshake GET.
	confirm *http.Client
}

// NewHandler wires the HTTP handler.
func NewHandler(
	logger *slog.Logger,
	m *metrics.Metrics,
	resolver LoanReader,
	lister LoanLister,
	dispatcher *notifications.Dispatcher,
	scanner ScanRunner,
	scanSecret string,
) *Handler {
	return &Handler{
		logger:     logger,
		metrics:    m,
		resolver:   resolver,
		lister:     lister,
		dispatcher: dispatcher,
		scanner:    scanner,
		scanSecret: scanSecret,
		confirm:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
