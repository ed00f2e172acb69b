package services

import (
	"context"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
)

// AnalyticsSvcFacade is the read-only analytics surface. It never mutates state.
type AnalyticsSvcFacade interface {
	// GetAnalytics assembles the full analytics view for a tenant: summary,
	// 12-month trend, per-type breakdown, aging buckets and accuracy stats.
	GetAnalytics(ctx context.Context, tenantID string) (*domain.AccrualAnalytics, error)
}
