package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
)

// trendMonths is the window of the accrual-vs-reversal trend series.
const trendMonths = 12

// analyticsService assembles the read-only analytics view. It never mutates
// state; all aggregation happens in the repository's SQL.
type analyticsService struct {
	BaseService
	analyticsRepo portsrepo.AnalyticsRepository
}

// NewAnalyticsService creates the analytics reader.
func NewAnalyticsService(analyticsRepo portsrepo.AnalyticsRepository) portssvc.AnalyticsSvcFacade {
	return &analyticsService{analyticsRepo: analyticsRepo}
}

var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

// GetAnalytics assembles the full analytics view for a tenant.
func (s *analyticsService) GetAnalytics(ctx context.Context, tenantID string) (*domain.AccrualAnalytics, error) {
	now := time.Now().UTC()

	summary, err := s.analyticsRepo.GetSummary(ctx, tenantID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accrual summary")
		return nil, fmt.Errorf("failed to retrieve summary: %w", err)
	}

	trend, err := s.analyticsRepo.GetMonthlyTrend(ctx, tenantID, trendMonths, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accrual trend")
		return nil, fmt.Errorf("failed to retrieve trend: %w", err)
	}

	byType, err := s.analyticsRepo.GetTypeBreakdown(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve type breakdown")
		return nil, fmt.Errorf("failed to retrieve type breakdown: %w", err)
	}

	aging, err := s.analyticsRepo.GetAging(ctx, tenantID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve aging buckets")
		return nil, fmt.Errorf("failed to retrieve aging: %w", err)
	}

	accuracy, err := s.analyticsRepo.GetAccuracyStats(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accuracy statistics")
		return nil, fmt.Errorf("failed to retrieve accuracy statistics: %w", err)
	}

	s.LogDebug(ctx, "Analytics assembled",
		slog.Int("trend_points", len(trend)),
		slog.Int("types", len(byType)),
		slog.Int("aging_rows", len(aging)))

	return &domain.AccrualAnalytics{
		Summary:  *summary,
		Trend:    trend,
		ByType:   byType,
		Aging:    aging,
		Accuracy: *accuracy,
	}, nil
}
