package dto

import (
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecurrenceRequest carries the optional recurrence parameters on creation.
type RecurrenceRequest struct {
	Frequency        domain.AccrualFrequency `json:"frequency" binding:"required"`
	TotalOccurrences int                     `json:"totalOccurrences,omitempty" binding:"omitempty,min=1"`
	RecurringUntil   *time.Time              `json:"recurringUntil,omitempty"`
}

// AutoReversalRequest carries the optional auto-reversal parameters on creation.
type AutoReversalRequest struct {
	TargetDate time.Time `json:"targetDate" binding:"required"`
}

// CreateAccrualRequest defines the payload for creating an accrual.
type CreateAccrualRequest struct {
	Description            string               `json:"description" binding:"required"`
	Type                   domain.AccrualType   `json:"type" binding:"required"`
	Amount                 decimal.Decimal      `json:"amount" binding:"required"`
	AccrualDate            time.Time            `json:"accrualDate" binding:"required"`
	PeriodStart            time.Time            `json:"periodStart" binding:"required"`
	PeriodEnd              time.Time            `json:"periodEnd" binding:"required"`
	DebitAccountID         string               `json:"debitAccountID" binding:"required"`
	CreditAccountID        string               `json:"creditAccountID" binding:"required"`
	ExpectedSettlementDate *time.Time           `json:"expectedSettlementDate,omitempty"`
	ExternalRef            string               `json:"externalRef,omitempty"`
	CostCenter             string               `json:"costCenter,omitempty"`
	Department             string               `json:"department,omitempty"`
	Project                string               `json:"project,omitempty"`
	Notes                  string               `json:"notes,omitempty"`
	Recurrence             *RecurrenceRequest   `json:"recurrence,omitempty"`
	AutoReversal           *AutoReversalRequest `json:"autoReversal,omitempty"`
}

// ApproveAccrualRequest defines the payload for approving an accrual.
type ApproveAccrualRequest struct {
	Notes string `json:"notes,omitempty"`
}

// RejectAccrualRequest defines the payload for rejecting a pending accrual.
type RejectAccrualRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseAccrualRequest defines the payload for a full or partial reversal.
type ReverseAccrualRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

// SettleAccrualRequest defines the payload for a settlement.
type SettleAccrualRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	ActualDate time.Time       `json:"actualDate" binding:"required"`
	Notes      string          `json:"notes,omitempty"`
}

// ListAccrualsParams holds query parameters for listing accruals.
type ListAccrualsParams struct {
	Status      *domain.AccrualStatus `form:"status"`
	Type        *domain.AccrualType   `form:"type"`
	PeriodStart *time.Time            `form:"periodStart" time_format:"2006-01-02"`
	PeriodEnd   *time.Time            `form:"periodEnd" time_format:"2006-01-02"`
	Limit       int                   `form:"limit"`
	NextToken   *string               `form:"nextToken"`
}

// AccrualResponse defines the data returned for an accrual.
type AccrualResponse struct {
	AccrualID          string                   `json:"accrualID"`
	AccrualNumber      string                   `json:"accrualNumber"`
	ExternalRef        string                   `json:"externalRef,omitempty"`
	Description        string                   `json:"description"`
	Type               domain.AccrualType       `json:"type"`
	IFRSClassification string                   `json:"ifrsClassification"`
	IsCurrent          bool                     `json:"isCurrent"`
	TaxDeductible      bool                     `json:"taxDeductible"`
	Amount             decimal.Decimal          `json:"amount"`
	ReversedAmount     decimal.Decimal          `json:"reversedAmount"`
	SettledAmount      decimal.Decimal          `json:"settledAmount"`
	OutstandingBalance decimal.Decimal          `json:"outstandingBalance"`
	AccrualDate        time.Time                `json:"accrualDate"`
	PeriodStart        time.Time                `json:"periodStart"`
	PeriodEnd          time.Time                `json:"periodEnd"`
	DebitAccountID     string                   `json:"debitAccountID"`
	CreditAccountID    string                   `json:"creditAccountID"`
	CostCenter         string                   `json:"costCenter,omitempty"`
	Status             domain.AccrualStatus     `json:"status"`
	Approver           string                   `json:"approver,omitempty"`
	ApprovedAt         *time.Time               `json:"approvedAt,omitempty"`
	Recurrence         domain.Recurrence        `json:"recurrence"`
	AutoReversal       domain.AutoReversal      `json:"autoReversal"`
	Settlement         domain.SettlementMetrics `json:"settlement"`
	CreatedAt          time.Time                `json:"createdAt"`
	CreatedBy          string                   `json:"createdBy"`
}

// ListAccrualsResponse is the paginated accrual listing.
type ListAccrualsResponse struct {
	Accruals  []AccrualResponse `json:"accruals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// SummaryResponse mirrors domain.AccrualSummary for the API.
type SummaryResponse struct {
	ActiveCount          int             `json:"activeCount"`
	ActiveOutstanding    decimal.Decimal `json:"activeOutstanding"`
	PendingApprovalCount int             `json:"pendingApprovalCount"`
	PendingReversalCount int             `json:"pendingReversalCount"`
	OverdueSettlement    int             `json:"overdueSettlement"`
}

// ToAccrualResponse converts a domain.Accrual to its response DTO.
func ToAccrualResponse(a *domain.Accrual) AccrualResponse {
	return AccrualResponse{
		AccrualID:          a.AccrualID,
		AccrualNumber:      a.AccrualNumber,
		ExternalRef:        a.ExternalRef,
		Description:        a.Description,
		Type:               a.Type,
		IFRSClassification: a.IFRSClassification,
		IsCurrent:          a.IsCurrent,
		TaxDeductible:      a.TaxDeductible,
		Amount:             a.Amount,
		ReversedAmount:     a.ReversedAmount,
		SettledAmount:      a.SettledAmount,
		OutstandingBalance: a.OutstandingBalance,
		AccrualDate:        a.AccrualDate,
		PeriodStart:        a.PeriodStart,
		PeriodEnd:          a.PeriodEnd,
		DebitAccountID:     a.DebitAccountID,
		CreditAccountID:    a.CreditAccountID,
		CostCenter:         a.CostCenter,
		Status:             a.Status,
		Approver:           a.Approver,
		ApprovedAt:         a.ApprovedAt,
		Recurrence:         a.Recurrence,
		AutoReversal:       a.AutoReversal,
		Settlement:         a.Settlement,
		CreatedAt:          a.CreatedAt,
		CreatedBy:          a.CreatedBy,
	}
}

// ToAccrualResponses converts a slice of domain accruals to response DTOs.
func ToAccrualResponses(accruals []domain.Accrual) []AccrualResponse {
	responses := make([]AccrualResponse, len(accruals))
	for i := range accruals {
		responses[i] = ToAccrualResponse(&accruals[i])
	}
	return responses
}

// ToSummaryResponse converts a domain summary to its response DTO.
func ToSummaryResponse(s *domain.AccrualSummary) SummaryResponse {
	return SummaryResponse{
		ActiveCount:          s.ActiveCount,
		ActiveOutstanding:    s.ActiveOutstanding,
		PendingApprovalCount: s.PendingApprovalCount,
		PendingReversalCount: s.PendingReversalCount,
		OverdueSettlement:    s.OverdueSettlement,
	}
}
