package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"nftpawn/internal/loans"
	"nftpawn/internal/platform/metrics"
)

// ExpiringLoanSource feeds the scanner loans whose liquidation deadline falls
// in a half-open [start, end) window. Implemented by the subgraph client.
type ExpiringLoanSource interface {
	LoansExpiringWithin(ctx context.Context, start, end int64) ([]*loans.Loan, error)
}

// advanceWarningSeconds is how far ahead of the deadline the "liquidation
// occurring soon" notice goes out.
const advanceWarningSeconds = int64(24 * 60 * 60)

// ScanResult is what one scan found and did.
type ScanResult struct {
	OccurringSoon     []*loans.Loan
	Occurred          []*loans.Loan
	NotificationsSent int
}

// Scanner is the periodic liquidation-window job. It owns the watermark: the
// single shared mutable of the whole pipeline, written exactly once per
// successful scan. Overlapping runs must be prevented by the scheduler; the
// read-modify-write here is deliberately unguarded.
type Scanner struct {
	watermarks WatermarkStore
	loans      ExpiringLoanSource
	dispatcher *Dispatcher

	scanIntervalSeconds int64
	disabled            bool

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewScanner builds the scanner. scanIntervalSeconds == 0 or disabled == true
// turns the whole job into a no-op that never touches the watermark, so
// re-enabling resumes from the true last point.
func NewScanner(
	watermarks WatermarkStore,
	source ExpiringLoanSource,
	dispatcher *Dispatcher,
	scanIntervalSeconds int64,
	disabled bool,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Scanner {
	return &Scanner{
		watermarks:          watermarks,
		loans:               source,
		dispatcher:          dispatcher,
		scanIntervalSeconds: scanIntervalSeconds,
		disabled:            disabled,
		logger:              logger,
		metrics:             m,
	}
}

// Run executes one scan for the caller-supplied current timestamp.
//
// Window arithmetic is anchored on the watermark, not the wall clock:
// runTimestamp = watermark + interval, so consecutive runs tile the timeline
// with no gap and no overlap even when the scheduler fires late. If either
// window query fails the scan aborts without writing the watermark and the
// next tick retries the same window.
func (s *Scanner) Run(ctx context.Context, currentTimestamp int64) (ScanResult, error) {
	if s.disabled || s.scanIntervalSeconds <= 0 {
		return ScanResult{}, nil
	}

	watermark, ok, err := s.watermarks.Last(ctx)
	if err != nil {
		s.fail()
		return ScanResult{}, fmt.Errorf("read watermark: %w", err)
	}
	if !ok {
		// First run: look back one interval, not to epoch.
		watermark = currentTimestamp - s.scanIntervalSeconds
	}
	runTimestamp := watermark + s.scanIntervalSeconds

	var result ScanResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		occurring, err := s.loans.LoansExpiringWithin(gctx,
			runTimestamp+advanceWarningSeconds,
			runTimestamp+advanceWarningSeconds+s.scanIntervalSeconds,
		)
		if err != nil {
			return fmt.Errorf("query occurring-soon window: %w", err)
		}
		result.OccurringSoon = occurring
		return nil
	})
	g.Go(func() error {
		occurred, err := s.loans.LoansExpiringWithin(gctx,
			runTimestamp-s.scanIntervalSeconds,
			runTimestamp,
		)
		if err != nil {
			return fmt.Errorf("query occurred window: %w", err)
		}
		result.Occurred = occurred
		return nil
	})
	if err := g.Wait(); err != nil {
		s.fail()
		return ScanResult{}, err
	}

	// currentTimestamp, not runTimestamp: a late scheduler skips ahead rather
	// than catching up window by window. See DESIGN.md on watermark drift.
	if err := s.watermarks.Override(ctx, currentTimestamp); err != nil {
		s.fail()
		return ScanResult{}, fmt.Errorf("advance watermark: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ScansRun.Inc()
	}

	for _, loan := range result.OccurringSoon {
		result.NotificationsSent += s.dispatcher.Dispatch(ctx, LifecycleEvent{
			Kind:       TriggerLiquidationOccurring,
			Loan:       loan,
			OccurredAt: currentTimestamp,
		})
	}
	for _, loan := range result.Occurred {
		result.NotificationsSent += s.dispatcher.Dispatch(ctx, LifecycleEvent{
			Kind:       TriggerLiquidationOccurred,
			Loan:       loan,
			OccurredAt: currentTimestamp,
		})
	}

	s.logger.InfoContext(ctx, "liquidation scan complete",
		"run_timestamp", runTimestamp,
		"occurring_soon", len(result.OccurringSoon),
		"occurred", len(result.Occurred),
		"notifications_sent", result.NotificationsSent,
	)
	return result, nil
}

func (s *Scanner) fail() {
	if s.metrics != nil {
		s.metrics.ScansFailed.Inc()
	}
}
