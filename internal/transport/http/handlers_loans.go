package httptransport

import (
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nftpawn/internal/loans"
	"nftpawn/pkg/requestcontext"
)

const defaultListLimit = 20

// loanView is the wire shape of a loan, with the derived status included so
// clients never compute it themselves.
type loanView struct {
	*loans.Loan
	Status loans.Status `json:"status"`
}

func viewOf(loan *loans.Loan, now time.Time) loanView {
	return loanView{Loan: loan, Status: loan.Status(now)}
}

// handleLoanByID resolves one loan on demand. Absence is an explicit 404,
// never a fault.
func (h *Handler) handleLoanByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loanID, ok := new(big.Int).SetString(chi.URLParam(r, "id"), 10)
	if !ok {
		writeError(w, http.StatusBadRequest, "loan id must be a decimal integer")
		return
	}

	loan, err := h.resolver.Resolve(ctx, loanID)
	if err != nil {
		writeError(w, http.StatusNotFound, "loan not found")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(loan, requestcontext.Now(ctx)))
}

// handleListLoans serves the indexer-backed listings: recent open loans, or
// every loan an address participates in when ?address= is given.
func (h *Handler) handleListLoans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := requestcontext.Now(ctx)

	var (
		result []*loans.Loan
		err    error
	)
	if address := r.URL.Query().Get("address"); address != "" {
		result, err = h.lister.LoansForAddress(ctx, address)
	} else {
		result, err = h.lister.ActiveLoans(ctx, defaultListLimit)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "loan listing failed", "error", err)
		writeError(w, http.StatusBadGateway, "indexer unavailable")
		return
	}

	views := make([]loanView, 0, len(result))
	for _, loan := range result {
		views = append(views, viewOf(loan, now))
	}
	writeJSON(w, http.StatusOK, map[string]any{"loans": views})
}

// handleScanTrigger lets an external cron fire a liquidation scan, guarded by
// a shared secret. The in-process schedule is the primary trigger; this
// endpoint exists for deployments that prefer external scheduling.
func (h *Handler) handleScanTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.scanSecret == "" || r.Header.Get("X-Scan-Secret") != h.scanSecret {
		writeError(w, http.StatusUnauthorized, "bad or missing scan secret")
		return
	}

	result, err := h.scanner.Run(ctx, requestcontext.Now(ctx).Unix())
	if err != nil {
		h.logger.ErrorContext(ctx, "liquidation scan failed", "error", err)
		writeError(w, http.StatusInternalServerError, "scan aborted")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"occurringSoon":     len(result.OccurringSoon),
		"occurred":          len(result.Occurred),
		"notificationsSent": result.NotificationsSent,
	})
}
