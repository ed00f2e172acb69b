package dto

import (
	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrendPointResponse is one month of accrual-vs-reversal totals.
type TrendPointResponse struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	AccruedTotal  decimal.Decimal `json:"accruedTotal"`
	ReversedTotal decimal.Decimal `json:"reversedTotal"`
}

// TypeBreakdownResponse aggregates accruals of one type.
type TypeBreakdownResponse struct {
	Type    domain.AccrualType `json:"type"`
	Count   int                `json:"count"`
	Total   decimal.Decimal    `json:"total"`
	Average decimal.Decimal    `json:"average"`
}

// AgingRowResponse is the exposure in one aging bucket.
type AgingRowResponse struct {
	Bucket      domain.AgingBucket `json:"bucket"`
	Count       int                `json:"count"`
	Outstanding decimal.Decimal    `json:"outstanding"`
}

// AccuracyStatsResponse summarizes settlement accuracy.
type AccuracyStatsResponse struct {
	SettledCount  int             `json:"settledCount"`
	MeanVariance  decimal.Decimal `json:"meanVariance"`
	MeanAccuracy  decimal.Decimal `json:"meanAccuracy"`
	TotalVariance decimal.Decimal `json:"totalVariance"`
}

// AnalyticsResponse is the full analytics view for a tenant.
type AnalyticsResponse struct {
	Summary  SummaryResponse         `json:"summary"`
	Trend    []TrendPointResponse    `json:"trend"`
	ByType   []TypeBreakdownResponse `json:"byType"`
	Aging    []AgingRowResponse      `json:"aging"`
	Accuracy AccuracyStatsResponse   `json:"accuracy"`
}

// ToAnalyticsResponse converts the domain analytics view to its DTO.
func ToAnalyticsResponse(a *domain.AccrualAnalytics) AnalyticsResponse {
	resp := AnalyticsResponse{
		Summary: ToSummaryResponse(&a.Summary),
		Trend:   make([]TrendPointResponse, len(a.Trend)),
		ByType:  make([]TypeBreakdownResponse, len(a.ByType)),
		Aging:   make([]AgingRowResponse, len(a.Aging)),
		Accuracy: AccuracyStatsResponse{
			SettledCount:  a.Accuracy.SettledCount,
			MeanVariance:  a.Accuracy.MeanVariance,
			MeanAccuracy:  a.Accuracy.MeanAccuracy,
			TotalVariance: a.Accuracy.TotalVariance,
		},
	}
	for i, p := range a.Trend {
		resp.Trend[i] = TrendPointResponse{Year: p.Year, Month: p.Month, AccruedTotal: p.AccruedTotal, ReversedTotal: p.ReversedTotal}
	}
	for i, b := range a.ByType {
		resp.ByType[i] = TypeBreakdownResponse{Type: b.Type, Count: b.Count, Total: b.Total, Average: b.Average}
	}
	for i, r := range a.Aging {
		resp.Aging[i] = AgingRowResponse{Bucket: r.Bucket, Count: r.Count, Outstanding: r.Outstanding}
	}
	return resp
}
