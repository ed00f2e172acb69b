// Package scheduler drives the time-based accrual lifecycle: generating
// instances from recurring templates and executing due auto-reversals.
// All due-ness decisions live in the recurrence service; this package only
// owns the ticking.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/ports/services"
)

// DailyScheduler runs the recurrence driver on a fixed interval. Runs are
// idempotent, so overlapping restarts or a manual trigger alongside the
// ticker are safe.
type DailyScheduler struct {
	recurrenceSvc services.RecurrenceSvcFacade
	interval      time.Duration
	logger        *slog.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDailyScheduler creates a scheduler that invokes the recurrence driver
// every interval.
func NewDailyScheduler(recurrenceSvc services.RecurrenceSvcFacade, interval time.Duration, logger *slog.Logger) *DailyScheduler {
	return &DailyScheduler{
		recurrenceSvc: recurrenceSvc,
		interval:      interval,
		logger:        logger,
	}
}

// Start begins the background loop. The first run happens immediately so a
// restarted service catches up without waiting a full interval. A stopped
// scheduler can be started again.
func (s *DailyScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return
	}
	// Stop closes the previous channel, so each start gets a fresh one.
	s.stop = make(chan struct{})
	s.ticker = time.NewTicker(s.interval)
	s.wg.Add(1)
	go s.loop()

	s.logger.Info("scheduler started", slog.Duration("interval", s.interval))
}

// Stop halts the loop and waits for an in-flight run to finish.
func (s *DailyScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil

	s.logger.Info("scheduler stopped")
}

func (s *DailyScheduler) loop() {
	defer s.wg.Done()

	s.runOnce()
	for {
		select {
		case <-s.ticker.C:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *DailyScheduler) runOnce() {
	ctx := context.Background()
	now := time.Now().UTC()

	report, err := s.recurrenceSvc.RunDaily(ctx, now)
	if err != nil {
		s.logger.Error("scheduled recurrence run failed", slog.Any("error", err))
		return
	}
	s.logger.Info("scheduled recurrence run completed",
		slog.Int("recurring_due", report.RecurringDue),
		slog.Int("recurring_generated", report.RecurringGenerated),
		slog.Int("auto_reversals_due", report.AutoReversalsDue),
		slog.Int("auto_reversals_done", report.AutoReversalsDone),
		slog.Int("failures", report.Failures),
	)
}
