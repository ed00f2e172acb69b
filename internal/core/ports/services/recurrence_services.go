package services

import (
	"context"
	"time"
)

// RecurrenceRunReport summarizes one daily driver run.
type RecurrenceRunReport struct {
	RecurringDue       int `json:"recurringDue"`
	RecurringGenerated int `json:"recurringGenerated"`
	AutoReversalsDue   int `json:"autoReversalsDue"`
	AutoReversalsDone  int `json:"autoReversalsDone"`
	Failures           int `json:"failures"`
}

// RecurrenceSvcFacade is the time-driven driver for recurring accrual
// generation and auto-reversals. Runs are idempotent: due-ness is decided
// from persisted state, so re-executing a run is safe.
type RecurrenceSvcFacade interface {
	// RunDaily generates due recurring accrual instances and executes due
	// auto-reversals as of the given date. Individual failures are logged
	// and skipped so one bad record does not block the batch.
	RunDaily(ctx context.Context, asOf time.Time) (*RecurrenceRunReport, error)
}
