package repositories

import (
	"context"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
)

// AnalyticsRepository provides read-only aggregation over accrual history.
// Implementations never mutate state.
type AnalyticsRepository interface {
	// GetSummary returns headline counts and outstanding totals as of asOf.
	GetSummary(ctx context.Context, tenantID string, asOf time.Time) (*domain.AccrualSummary, error)

	// GetMonthlyTrend returns the accrual-vs-reversal totals for the last
	// `months` calendar months ending at asOf, oldest first.
	GetMonthlyTrend(ctx context.Context, tenantID string, months int, asOf time.Time) ([]domain.TrendPoint, error)

	// GetTypeBreakdown returns count/total/average per accrual type.
	GetTypeBreakdown(ctx context.Context, tenantID string) ([]domain.TypeBreakdownRow, error)

	// GetAging buckets the outstanding balances of ACTIVE accruals by days
	// since accrual date.
	GetAging(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AgingRow, error)

	// GetAccuracyStats aggregates settlement accuracy over SETTLED accruals.
	GetAccuracyStats(ctx context.Context, tenantID string) (*domain.AccuracyStats, error)
}
