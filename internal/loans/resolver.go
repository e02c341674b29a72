package loans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"nftpawn/internal/platform/metrics"
	"nftpawn/pkg/platform/sentinel"
)

// Source is one place a loan can be resolved from. Implementations return
// sentinel.ErrNotFound (wrapped) when the loan is unknown to them; any other
// error means the source itself misbehaved.
type Source interface {
	Name() string
	LoanByID(ctx context.Context, loanID *big.Int) (*Loan, error)
}

// Resolver composes an ordered chain of sources into one canonical view.
// The chain is strict fallback, not a race: a later source is only consulted
// when every earlier one came up empty, so the latency cost of the node is
// paid only on subgraph misses.
type Resolver struct {
	sources []Source
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewResolver builds a resolver over the given sources, tried in order.
func NewResolver(logger *slog.Logger, m *metrics.Metrics, sources ...Source) (*Resolver, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one loan source is required")
	}
	return &Resolver{sources: sources, logger: logger, metrics: m}, nil
}

// Resolve returns the canonical Loan for the id, or sentinel.ErrNotFound.
// All lower-level faults are absorbed here: a source error or a structurally
// invalid record is logged and treated as a miss, never surfaced to the
// caller. The read path is pure; nothing is mutated.
func (r *Resolver) Resolve(ctx context.Context, loanID *big.Int) (*Loan, error) {
	for _, src := range r.sources {
		loan, err := src.LoanByID(ctx, loanID)
		if err != nil {
			if !errors.Is(err, sentinel.ErrNotFound) {
				r.logger.WarnContext(ctx, "loan source failed, falling through",
					"source", src.Name(),
					"loan_id", loanID.String(),
					"error", err,
				)
			}
			continue
		}
		if !loan.Valid() {
			r.logger.WarnContext(ctx, "loan source returned invalid record, treating as miss",
				"source", src.Name(),
				"loan_id", loanID.String(),
			)
			continue
		}
		if r.metrics != nil {
			r.metrics.ResolverHits.WithLabelValues(src.Name()).Inc()
		}
		return loan, nil
	}
	if r.metrics != nil {
		r.metrics.ResolverMisses.Inc()
	}
	return nil, fmt.Errorf("loan %s: %w", loanID.String(), sentinel.ErrNotFound)
}
