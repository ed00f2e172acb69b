package accounting

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SettlementVariance returns |accrued - settled|.
func SettlementVariance(accrued, settled decimal.Decimal) decimal.Decimal {
	return accrued.Sub(settled).Abs()
}

// VariancePercent returns the variance as a percentage of the accrued
// amount, rounded to two places. A zero accrued amount yields zero.
func VariancePercent(accrued, settled decimal.Decimal) decimal.Decimal {
	if accrued.IsZero() {
		return decimal.Zero
	}
	return SettlementVariance(accrued, settled).Div(accrued).Mul(hundred).Round(2)
}

// AccuracyScore returns max(0, 100 - variance/accrued*100), a 0-100 measure
// of how closely settlement matched the original estimate.
func AccuracyScore(accrued, settled decimal.Decimal) decimal.Decimal {
	if accrued.IsZero() {
		return decimal.Zero
	}
	score := hundred.Sub(VariancePercent(accrued, settled))
	if score.IsNegative() {
		return decimal.Zero
	}
	return score
}
