package services

import (
	"context"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
)

// ClassificationResolver maps an accrual category to its balance-sheet
// classification. Implementations are pure lookups; the tax-rate and IFRS
// tables themselves live outside this system.
type ClassificationResolver interface {
	// Classify returns the IFRS classification for an accrual type.
	Classify(accrualType domain.AccrualType) domain.Classification

	// IsCurrent reports whether an obligation ending at periodEnd is a
	// current (within twelve months of asOf) item.
	IsCurrent(periodEnd time.Time, asOf time.Time) bool

	// IsTaxDeductible reports whether the accrual type is deductible.
	IsTaxDeductible(accrualType domain.AccrualType) bool
}

// EventPublisher delivers domain events to downstream subscribers
// (GL sync, notifications). The core never calls consumers directly.
type EventPublisher interface {
	// Publish delivers the event after the originating transaction has
	// committed. Delivery failures must not fail the lifecycle operation.
	Publish(ctx context.Context, event domain.AccrualEvent)
}
