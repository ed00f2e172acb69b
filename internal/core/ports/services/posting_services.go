package services

import (
	"context"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PostingInstruction describes one journal entry to derive from a lifecycle
// transition. The posting engine assigns the entry number and enforces the
// double-entry invariant.
type PostingInstruction struct {
	TenantID        string
	AccrualID       string
	EntryType       domain.JournalEntryType
	EntryDate       time.Time
	Description     string
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal // posted as both debit and credit
	CostCenter      string
	ReversesEntryID *string
	Actor           string
}

// PostingSvcFacade is the journal posting engine. Entries are written inside
// the caller's transaction so the accrual state change and its posting
// commit or roll back together.
type PostingSvcFacade interface {
	// PostEntryInTx derives, numbers and persists one balanced POSTED entry.
	// An unbalanced instruction fails with apperrors.ErrPostingImbalance and
	// aborts the surrounding transaction.
	PostEntryInTx(ctx context.Context, tx pgx.Tx, instr PostingInstruction) (*domain.JournalEntry, error)
}
