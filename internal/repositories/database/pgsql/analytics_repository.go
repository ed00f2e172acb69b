package pgsql

import (
	"context"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAnalyticsRepository struct {
	BaseRepository
}

// NewAnalyticsRepository creates a read-only repository for accrual analytics.
func NewAnalyticsRepository(pool *pgxpool.Pool) portsrepo.AnalyticsRepository {
	return &PgxAnalyticsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AnalyticsRepository = (*PgxAnalyticsRepository)(nil)

// GetSummary returns headline counts and outstanding totals as of asOf.
// "Active" includes PARTIALLY_REVERSED since those still carry exposure.
func (r *PgxAnalyticsRepository) GetSummary(ctx context.Context, tenantID string, asOf time.Time) (*domain.AccrualSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('ACTIVE', 'PARTIALLY_REVERSED')),
			COALESCE(SUM(outstanding_balance) FILTER (WHERE status IN ('ACTIVE', 'PARTIALLY_REVERSED')), 0),
			COUNT(*) FILTER (WHERE status = 'PENDING_APPROVAL'),
			COUNT(*) FILTER (WHERE auto_reverse AND NOT auto_reverse_done
				AND auto_reverse_date <= $2
				AND status IN ('ACTIVE', 'PARTIALLY_REVERSED')),
			COUNT(*) FILTER (WHERE expected_settlement_date < $2
				AND status IN ('ACTIVE', 'PARTIALLY_REVERSED'))
		FROM accruals
		WHERE tenant_id = $1;`

	var s domain.AccrualSummary
	err := r.Pool.QueryRow(ctx, query, tenantID, asOf).Scan(
		&s.ActiveCount, &s.ActiveOutstanding,
		&s.PendingApprovalCount, &s.PendingReversalCount, &s.OverdueSettlement,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accrual summary for tenant "+tenantID, err)
	}
	return &s, nil
}

// GetMonthlyTrend returns accrued-vs-reversed totals per calendar month for
// the trailing window ending at asOf, oldest first. Totals come from the
// posted journal history so partial reversals weigh in at their posted amount.
func (r *PgxAnalyticsRepository) GetMonthlyTrend(ctx context.Context, tenantID string, months int, asOf time.Time) ([]domain.TrendPoint, error) {
	windowStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	query := `
		SELECT period_year, period_month,
			COALESCE(SUM(debit_amount) FILTER (WHERE entry_type = 'ACCRUAL_ENTRY'), 0),
			COALESCE(SUM(debit_amount) FILTER (WHERE entry_type = 'REVERSAL_ENTRY'), 0)
		FROM journal_entries
		WHERE tenant_id = $1
		  AND status = 'POSTED'
		  AND entry_date >= $2 AND entry_date <= $3
		GROUP BY period_year, period_month
		ORDER BY period_year, period_month;`

	rows, err := r.Pool.Query(ctx, query, tenantID, windowStart, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly trend for tenant "+tenantID, err)
	}
	defer rows.Close()

	points := []domain.TrendPoint{}
	for rows.Next() {
		var p domain.TrendPoint
		if err := rows.Scan(&p.Year, &p.Month, &p.AccruedTotal, &p.ReversedTotal); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trend row", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trend rows", err)
	}
	return points, nil
}

// GetTypeBreakdown returns count/total/average per accrual type, excluding
// cancelled accruals which never carried economic weight.
func (r *PgxAnalyticsRepository) GetTypeBreakdown(ctx context.Context, tenantID string) ([]domain.TypeBreakdownRow, error) {
	query := `
		SELECT accrual_type, COUNT(*), COALESCE(SUM(amount), 0), COALESCE(AVG(amount), 0)
		FROM accruals
		WHERE tenant_id = $1 AND status != 'CANCELLED'
		GROUP BY accrual_type
		ORDER BY SUM(amount) DESC;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query type breakdown for tenant "+tenantID, err)
	}
	defer rows.Close()

	breakdown := []domain.TypeBreakdownRow{}
	for rows.Next() {
		var row domain.TypeBreakdownRow
		if err := rows.Scan(&row.Type, &row.Count, &row.Total, &row.Average); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan type breakdown row", err)
		}
		row.Average = row.Average.Round(2)
		breakdown = append(breakdown, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating type breakdown rows", err)
	}
	return breakdown, nil
}

// GetAging buckets outstanding balances of open accruals by days since the
// accrual date. Each named bucket is a 30-day window starting at its label
// (DAYS_90 spans 90-119 days); OVER_90 holds everything past that window.
// Buckets with no accruals are returned with zero values so the caller always
// sees the full scale.
func (r *PgxAnalyticsRepository) GetAging(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AgingRow, error) {
	query := `
		SELECT
			CASE
				WHEN $2::date - accrual_date::date < 30 THEN 'CURRENT'
				WHEN $2::date - accrual_date::date < 60 THEN 'DAYS_30'
				WHEN $2::date - accrual_date::date < 90 THEN 'DAYS_60'
				WHEN $2::date - accrual_date::date < 120 THEN 'DAYS_90'
				ELSE 'OVER_90'
			END AS bucket,
			COUNT(*),
			COALESCE(SUM(outstanding_balance), 0)
		FROM accruals
		WHERE tenant_id = $1 AND status IN ('ACTIVE', 'PARTIALLY_REVERSED')
		GROUP BY bucket;`

	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query aging for tenant "+tenantID, err)
	}
	defer rows.Close()

	byBucket := map[domain.AgingBucket]domain.AgingRow{}
	for rows.Next() {
		var row domain.AgingRow
		if err := rows.Scan(&row.Bucket, &row.Count, &row.Outstanding); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan aging row", err)
		}
		byBucket[row.Bucket] = row
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating aging rows", err)
	}

	buckets := []domain.AgingBucket{
		domain.AgingCurrent, domain.Aging30, domain.Aging60, domain.Aging90, domain.AgingOver90,
	}
	aging := make([]domain.AgingRow, 0, len(buckets))
	for _, b := range buckets {
		row, ok := byBucket[b]
		if !ok {
			row = domain.AgingRow{Bucket: b, Outstanding: decimal.Zero}
		}
		aging = append(aging, row)
	}
	return aging, nil
}

// GetAccuracyStats aggregates settlement accuracy over SETTLED accruals.
func (r *PgxAnalyticsRepository) GetAccuracyStats(ctx context.Context, tenantID string) (*domain.AccuracyStats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(AVG(variance), 0),
			COALESCE(AVG(accuracy_score), 0),
			COALESCE(SUM(variance), 0)
		FROM accruals
		WHERE tenant_id = $1 AND status = 'SETTLED';`

	var stats domain.AccuracyStats
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&stats.SettledCount, &stats.MeanVariance, &stats.MeanAccuracy, &stats.TotalVariance,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accuracy stats for tenant "+tenantID, err)
	}
	stats.MeanVariance = stats.MeanVariance.Round(2)
	stats.MeanAccuracy = stats.MeanAccuracy.Round(2)
	return &stats, nil
}
