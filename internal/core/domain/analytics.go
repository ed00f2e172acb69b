package domain

import "github.com/shopspring/decimal"

// AccrualSummary holds the headline counts and totals for a tenant.
type AccrualSummary struct {
	ActiveCount          int             `json:"activeCount"`
	ActiveOutstanding    decimal.Decimal `json:"activeOutstanding"`
	PendingApprovalCount int             `json:"pendingApprovalCount"`
	PendingReversalCount int             `json:"pendingReversalCount"` // auto-reversals due but not done
	OverdueSettlement    int             `json:"overdueSettlement"`    // expected settlement date passed, still open
}

// TrendPoint is one month in the accrual-vs-reversal trend series.
type TrendPoint struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	AccruedTotal  decimal.Decimal `json:"accruedTotal"`
	ReversedTotal decimal.Decimal `json:"reversedTotal"`
}

// TypeBreakdownRow aggregates accruals of one type.
type TypeBreakdownRow struct {
	Type    AccrualType     `json:"type"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// AgingBucket classifies outstanding exposure by days since accrual date.
type AgingBucket string

const (
	AgingCurrent AgingBucket = "CURRENT"
	Aging30      AgingBucket = "DAYS_30"
	Aging60      AgingBucket = "DAYS_60"
	Aging90      AgingBucket = "DAYS_90"
	AgingOver90  AgingBucket = "OVER_90"
)

// AgingRow is the outstanding balance of ACTIVE accruals in one bucket.
type AgingRow struct {
	Bucket      AgingBucket     `json:"bucket"`
	Count       int             `json:"count"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// AccuracyStats summarizes settlement accuracy over SETTLED accruals.
type AccuracyStats struct {
	SettledCount  int             `json:"settledCount"`
	MeanVariance  decimal.Decimal `json:"meanVariance"`
	MeanAccuracy  decimal.Decimal `json:"meanAccuracy"`
	TotalVariance decimal.Decimal `json:"totalVariance"`
}

// AccrualAnalytics is the full read-only analytics view for a tenant.
type AccrualAnalytics struct {
	Summary  AccrualSummary     `json:"summary"`
	Trend    []TrendPoint       `json:"trend"`
	ByType   []TypeBreakdownRow `json:"byType"`
	Aging    []AgingRow         `json:"aging"`
	Accuracy AccuracyStats      `json:"accuracy"`
}
