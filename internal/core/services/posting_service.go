package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
)

// postingService derives balanced journal entries from lifecycle transitions.
type postingService struct {
	BaseService
	journalRepo   portsrepo.JournalEntryWriter
	numberingRepo portsrepo.NumberingRepository
}

// NewPostingService creates the journal posting engine.
func NewPostingService(journalRepo portsrepo.JournalEntryWriter, numberingRepo portsrepo.NumberingRepository) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo:   journalRepo,
		numberingRepo: numberingRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostEntryInTx numbers and persists one POSTED journal entry inside the
// caller's transaction. The double-entry check is defensive: instructions
// always carry a single amount posted to both sides, so an imbalance means
// a programming error and aborts the transaction.
func (s *postingService) PostEntryInTx(ctx context.Context, tx pgx.Tx, instr portssvc.PostingInstruction) (*domain.JournalEntry, error) {
	if instr.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: posting amount must be positive, got %s", apperrors.ErrValidation, instr.Amount.String())
	}
	if instr.DebitAccountID == "" || instr.CreditAccountID == "" {
		return nil, fmt.Errorf("%w: posting requires both debit and credit accounts", apperrors.ErrValidation)
	}

	periodKey := instr.EntryDate.Format("200601")
	seq, err := s.numberingRepo.NextNumberInTx(ctx, tx, instr.TenantID, portsrepo.ScopeJournal, periodKey)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate journal entry number: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		TenantID:        instr.TenantID,
		EntryNumber:     fmt.Sprintf("JE-%s-%04d", periodKey, seq),
		AccrualID:       instr.AccrualID,
		EntryType:       instr.EntryType,
		EntryDate:       instr.EntryDate,
		Description:     instr.Description,
		DebitAccountID:  instr.DebitAccountID,
		CreditAccountID: instr.CreditAccountID,
		DebitAmount:     instr.Amount,
		CreditAmount:    instr.Amount,
		CostCenter:      instr.CostCenter,
		PeriodYear:      instr.EntryDate.Year(),
		PeriodMonth:     int(instr.EntryDate.Month()),
		ReversesEntryID: instr.ReversesEntryID,
		Status:          domain.EntryPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     instr.Actor,
			LastUpdatedAt: now,
			LastUpdatedBy: instr.Actor,
		},
	}

	if !entry.Balanced() {
		// Unreachable with a single-amount instruction; never silently corrected.
		return nil, fmt.Errorf("%w: debit %s credit %s for entry %s",
			apperrors.ErrPostingImbalance, entry.DebitAmount.String(), entry.CreditAmount.String(), entry.EntryNumber)
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry %s: %w", entry.EntryNumber, err)
	}

	return &entry, nil
}
