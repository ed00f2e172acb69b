package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccuracyScore(t *testing.T) {
	accrued := decimal.NewFromInt(100000)

	// Settling 60,000 against 100,000 leaves a 40% variance -> score 60.
	score := AccuracyScore(accrued, decimal.NewFromInt(60000))
	assert.True(t, score.Equal(decimal.NewFromInt(60)), "got %s", score)

	// Exact settlement scores 100.
	score = AccuracyScore(accrued, accrued)
	assert.True(t, score.Equal(decimal.NewFromInt(100)))

	// Overshooting beyond 2x accrued floors at zero.
	score = AccuracyScore(accrued, decimal.NewFromInt(250000))
	assert.True(t, score.Equal(decimal.Zero), "got %s", score)
}

func TestVariancePercent(t *testing.T) {
	pct := VariancePercent(decimal.NewFromInt(100000), decimal.NewFromInt(60000))
	assert.True(t, pct.Equal(decimal.NewFromInt(40)), "got %s", pct)

	// Zero accrued amount never divides.
	assert.True(t, VariancePercent(decimal.Zero, decimal.NewFromInt(10)).Equal(decimal.Zero))
}

func TestSettlementVariance(t *testing.T) {
	v := SettlementVariance(decimal.NewFromInt(500), decimal.NewFromInt(620))
	assert.True(t, v.Equal(decimal.NewFromInt(120)))
}
