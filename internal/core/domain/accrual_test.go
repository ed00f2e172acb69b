package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckBalanceInvariant(t *testing.T) {
	tolerance := decimal.NewFromFloat(0.01)

	a := Accrual{
		Amount:             decimal.NewFromInt(1000),
		ReversedAmount:     decimal.NewFromInt(300),
		SettledAmount:      decimal.NewFromInt(200),
		OutstandingBalance: decimal.NewFromInt(500),
	}
	assert.True(t, a.CheckBalanceInvariant(tolerance))

	// Outstanding drifted away from amount - reversed - settled.
	a.OutstandingBalance = decimal.NewFromInt(501)
	assert.False(t, a.CheckBalanceInvariant(tolerance))

	// Within tolerance counts as consistent.
	a.OutstandingBalance = decimal.NewFromFloat(500.005)
	assert.True(t, a.CheckBalanceInvariant(tolerance))

	// Consumed more than the accrued amount.
	a = Accrual{
		Amount:             decimal.NewFromInt(1000),
		ReversedAmount:     decimal.NewFromInt(800),
		SettledAmount:      decimal.NewFromInt(300),
		OutstandingBalance: decimal.Zero,
	}
	assert.False(t, a.CheckBalanceInvariant(tolerance))
}

func TestFullyResolved(t *testing.T) {
	tolerance := decimal.NewFromFloat(0.01)

	a := Accrual{OutstandingBalance: decimal.NewFromFloat(0.009)}
	assert.True(t, a.FullyResolved(tolerance))

	a.OutstandingBalance = decimal.NewFromFloat(0.02)
	assert.False(t, a.FullyResolved(tolerance))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, AccrualReversed.IsTerminal())
	assert.True(t, AccrualSettled.IsTerminal())
	assert.True(t, AccrualCancelled.IsTerminal())
	assert.False(t, AccrualPendingApproval.IsTerminal())
	assert.False(t, AccrualActive.IsTerminal())
	assert.False(t, AccrualPartiallyReversed.IsTerminal())
}

func TestFrequencyAdvance(t *testing.T) {
	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), FrequencyDaily.Advance(from))
	assert.Equal(t, time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC), FrequencyWeekly.Advance(from))
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), FrequencyMonthly.Advance(from))
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), FrequencyQuarterly.Advance(from))
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), FrequencyAnnually.Advance(from))

	// AddDate normalizes when the target month is shorter.
	endOfJan := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), FrequencyMonthly.Advance(endOfJan))

	// Unknown frequency does not advance.
	assert.Equal(t, from, AccrualFrequency("FORTNIGHTLY").Advance(from))
	assert.False(t, AccrualFrequency("FORTNIGHTLY").Valid())
	assert.True(t, FrequencyMonthly.Valid())
}

func TestPeriodKey(t *testing.T) {
	a := Accrual{AccrualDate: time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)}
	assert.Equal(t, "202501", a.PeriodKey())

	a.AccrualDate = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "202412", a.PeriodKey())
}

func TestJournalEntryBalanced(t *testing.T) {
	e := JournalEntry{DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(100)}
	assert.True(t, e.Balanced())

	e.CreditAmount = decimal.NewFromFloat(100.01)
	assert.False(t, e.Balanced())
}
