package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventName identifies a domain event emitted by a lifecycle mutation.
type EventName string

const (
	EventAccrualCreated  EventName = "accrual.created"
	EventAccrualApproved EventName = "accrual.approved"
	EventAccrualReversed EventName = "accrual.reversed"
	EventAccrualSettled  EventName = "accrual.settled"
)

// AccrualEvent is published after each successful lifecycle mutation.
// Downstream GL-sync and notification consumers subscribe; the core never
// calls them directly.
type AccrualEvent struct {
	Name          EventName       `json:"name"`
	TenantID      string          `json:"tenantID"`
	AccrualID     string          `json:"accrualID"`
	AccrualNumber string          `json:"accrualNumber"`
	Status        AccrualStatus   `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Actor         string          `json:"actor"`
	OccurredAt    time.Time       `json:"occurredAt"`

	// Settlement metrics, present on accrual.settled for trend analysis.
	Metrics *SettlementMetrics `json:"metrics,omitempty"`
}
