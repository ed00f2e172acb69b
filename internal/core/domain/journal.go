package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryType identifies which lifecycle event produced an entry.
type JournalEntryType string

const (
	AccrualEntry          JournalEntryType = "ACCRUAL_ENTRY"
	ReversalEntry         JournalEntryType = "REVERSAL_ENTRY"
	SettlementEntry       JournalEntryType = "SETTLEMENT_ENTRY"
	AdjustmentEntry       JournalEntryType = "ADJUSTMENT_ENTRY"
	ReclassificationEntry JournalEntryType = "RECLASSIFICATION_ENTRY"
)

// JournalEntryStatus indicates the state of a journal entry.
// Non-DRAFT entries are immutable except for a transition to REVERSED.
type JournalEntryStatus string

const (
	EntryDraft     JournalEntryStatus = "DRAFT"
	EntryPosted    JournalEntryStatus = "POSTED"
	EntryReversed  JournalEntryStatus = "REVERSED"
	EntryCancelled JournalEntryStatus = "CANCELLED"
)

// JournalEntry is one balanced double-entry posting derived from an accrual
// lifecycle event. DebitAmount must always equal CreditAmount.
type JournalEntry struct {
	EntryID     string `json:"entryID"`     // Primary key (UUID)
	TenantID    string `json:"tenantID"`    // Owning tenant (Not Null)
	EntryNumber string `json:"entryNumber"` // Unique, period-scoped, e.g. JE-202501-0042
	AccrualID   string `json:"accrualID"`   // FK -> Accrual.AccrualID (Not Null, never reassigned)

	EntryType   JournalEntryType `json:"entryType"`
	EntryDate   time.Time        `json:"entryDate"`
	Description string           `json:"description"`

	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	CostCenter      string          `json:"costCenter,omitempty"`

	PeriodYear  int `json:"periodYear"`
	PeriodMonth int `json:"periodMonth"`

	// ReversesEntryID links a REVERSAL_ENTRY or ADJUSTMENT_ENTRY back to the
	// entry it offsets.
	ReversesEntryID *string `json:"reversesEntryID,omitempty"`

	Status JournalEntryStatus `json:"status"`
	AuditFields
}

// Balanced reports whether debits equal credits exactly.
func (e *JournalEntry) Balanced() bool {
	return e.DebitAmount.Equal(e.CreditAmount)
}
