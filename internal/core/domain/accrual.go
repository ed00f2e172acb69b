package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrualStatus indicates where an accrual sits in its lifecycle.
type AccrualStatus string

const (
	AccrualPendingApproval   AccrualStatus = "PENDING_APPROVAL"
	AccrualActive            AccrualStatus = "ACTIVE"
	AccrualPartiallyReversed AccrualStatus = "PARTIALLY_REVERSED"
	AccrualReversed          AccrualStatus = "REVERSED"
	AccrualSettled           AccrualStatus = "SETTLED"
	AccrualCancelled         AccrualStatus = "CANCELLED"
)

// IsTerminal reports whether the status permits no further balance-affecting
// operations. Terminal accruals are immutable except for audit notes.
func (s AccrualStatus) IsTerminal() bool {
	switch s {
	case AccrualReversed, AccrualSettled, AccrualCancelled:
		return true
	}
	return false
}

// AccrualType categorizes the economic nature of an accrual.
type AccrualType string

const (
	AccrualExpense   AccrualType = "EXPENSE"
	AccrualRevenue   AccrualType = "REVENUE"
	AccrualInterest  AccrualType = "INTEREST"
	AccrualTax       AccrualType = "TAX"
	AccrualSalary    AccrualType = "SALARY"
	AccrualProvision AccrualType = "PROVISION"
	AccrualOther     AccrualType = "OTHER"
)

// AccrualFrequency controls how a recurring accrual advances its next due date.
type AccrualFrequency string

const (
	FrequencyDaily     AccrualFrequency = "DAILY"
	FrequencyWeekly    AccrualFrequency = "WEEKLY"
	FrequencyMonthly   AccrualFrequency = "MONTHLY"
	FrequencyQuarterly AccrualFrequency = "QUARTERLY"
	FrequencyAnnually  AccrualFrequency = "ANNUALLY"
)

// Advance returns the next occurrence date after from.
func (f AccrualFrequency) Advance(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	case FrequencyAnnually:
		return from.AddDate(1, 0, 0)
	}
	return from
}

// Valid reports whether f is a known frequency.
func (f AccrualFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	}
	return false
}

// Recurrence holds the template parameters for accruals that regenerate
// themselves on a schedule.
type Recurrence struct {
	IsRecurring          bool             `json:"isRecurring"`
	Frequency            AccrualFrequency `json:"frequency,omitempty"`
	NextAccrualDate      *time.Time       `json:"nextAccrualDate,omitempty"`
	TotalOccurrences     int              `json:"totalOccurrences,omitempty"` // 0 means unbounded
	OccurrencesCompleted int              `json:"occurrencesCompleted"`
	RecurringUntil       *time.Time       `json:"recurringUntil,omitempty"`
}

// AutoReversal holds the parameters for accruals that reverse themselves in
// full on a target date, typically the first day of the next period.
type AutoReversal struct {
	Enabled    bool       `json:"enabled"`
	TargetDate *time.Time `json:"targetDate,omitempty"`
	Completed  bool       `json:"completed"`
}

// SettlementMetrics captures how closely the settled cash matched the
// original estimate. Populated when an accrual reaches SETTLED.
type SettlementMetrics struct {
	Variance        decimal.Decimal `json:"variance"`
	VariancePercent decimal.Decimal `json:"variancePercent"`
	AccuracyScore   decimal.Decimal `json:"accuracyScore"` // 0-100
}

// Accrual is a financial commitment recognized before cash settlement.
// OutstandingBalance must always equal Amount - ReversedAmount - SettledAmount.
type Accrual struct {
	AccrualID     string `json:"accrualID"`     // Primary key (UUID)
	TenantID      string `json:"tenantID"`      // Owning tenant (Not Null)
	AccrualNumber string `json:"accrualNumber"` // Unique, period-scoped, e.g. ACR-202501-0007
	ExternalRef   string `json:"externalRef"`   // Nullable reference to a source document

	Description string      `json:"description"`
	Type        AccrualType `json:"type"`

	// Classification resolved at creation from the accrual type.
	IFRSClassification string `json:"ifrsClassification"`
	IsCurrent          bool   `json:"isCurrent"`
	TaxDeductible      bool   `json:"taxDeductible"`

	Amount             decimal.Decimal `json:"amount"`
	ReversedAmount     decimal.Decimal `json:"reversedAmount"`
	SettledAmount      decimal.Decimal `json:"settledAmount"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`

	AccrualDate            time.Time  `json:"accrualDate"`
	PeriodStart            time.Time  `json:"periodStart"`
	PeriodEnd              time.Time  `json:"periodEnd"`
	ExpectedSettlementDate *time.Time `json:"expectedSettlementDate,omitempty"`
	ActualSettlementDate   *time.Time `json:"actualSettlementDate,omitempty"`
	ReversalDate           *time.Time `json:"reversalDate,omitempty"`

	DebitAccountID  string `json:"debitAccountID"`
	CreditAccountID string `json:"creditAccountID"`
	CostCenter      string `json:"costCenter,omitempty"`
	Department      string `json:"department,omitempty"`
	Project         string `json:"project,omitempty"`

	Recurrence   Recurrence   `json:"recurrence"`
	AutoReversal AutoReversal `json:"autoReversal"`

	Settlement SettlementMetrics `json:"settlement"`

	Status     AccrualStatus `json:"status"`
	Approver   string        `json:"approver,omitempty"`
	ApprovedAt *time.Time    `json:"approvedAt,omitempty"`
	Notes      string        `json:"notes,omitempty"`

	// Version is the optimistic concurrency token; every balance-affecting
	// update must match the version it read or fail with a conflict.
	Version int64 `json:"version"`

	AuditFields
}

// CheckBalanceInvariant verifies outstanding == amount - reversed - settled
// within the given tolerance, and that the consumed total never exceeds the
// accrued amount.
func (a *Accrual) CheckBalanceInvariant(tolerance decimal.Decimal) bool {
	expected := a.Amount.Sub(a.ReversedAmount).Sub(a.SettledAmount)
	if a.OutstandingBalance.Sub(expected).Abs().GreaterThan(tolerance) {
		return false
	}
	if a.OutstandingBalance.IsNegative() {
		return false
	}
	return a.ReversedAmount.Add(a.SettledAmount).LessThanOrEqual(a.Amount.Add(tolerance))
}

// FullyResolved reports whether the outstanding balance is within the
// tolerance of zero, i.e. nothing remains to reverse or settle.
func (a *Accrual) FullyResolved(tolerance decimal.Decimal) bool {
	return a.OutstandingBalance.Abs().LessThanOrEqual(tolerance)
}

// PeriodKey returns the year-month key used to scope accrual numbering,
// e.g. "202501" for January 2025.
func (a *Accrual) PeriodKey() string {
	return a.AccrualDate.Format("200601")
}
