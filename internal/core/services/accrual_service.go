package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/finacct/accrual_subledger_app/internal/dto"
	"github.com/finacct/accrual_subledger_app/internal/utils/accounting"
)

var (
	ErrIdenticalAccounts = errors.New("debit and credit accounts must be distinct")
	ErrInvertedPeriod    = errors.New("period start must not be after period end")
	ErrUnknownFrequency  = errors.New("unknown accrual frequency")
)

// accrualService owns the accrual state machine: creation, approval,
// reversal, settlement and the reads that surround them.
type accrualService struct {
	BaseService
	accrualRepo   portsrepo.AccrualRepositoryWithTx
	journalRepo   portsrepo.JournalEntryReader
	numberingRepo portsrepo.NumberingRepository
	analyticsRepo portsrepo.AnalyticsRepository
	postingSvc    portssvc.PostingSvcFacade
	accounts      portsrepo.AccountValidator
	classifier    portssvc.ClassificationResolver
	publisher     portssvc.EventPublisher

	// tolerance is the currency-precision policy deciding when an
	// outstanding balance counts as zero.
	tolerance decimal.Decimal
}

// NewAccrualService creates the accrual lifecycle engine.
func NewAccrualService(
	accrualRepo portsrepo.AccrualRepositoryWithTx,
	journalRepo portsrepo.JournalEntryReader,
	numberingRepo portsrepo.NumberingRepository,
	analyticsRepo portsrepo.AnalyticsRepository,
	postingSvc portssvc.PostingSvcFacade,
	accounts portsrepo.AccountValidator,
	classifier portssvc.ClassificationResolver,
	publisher portssvc.EventPublisher,
	tolerance decimal.Decimal,
) portssvc.AccrualSvcFacade {
	return &accrualService{
		accrualRepo:   accrualRepo,
		journalRepo:   journalRepo,
		numberingRepo: numberingRepo,
		analyticsRepo: analyticsRepo,
		postingSvc:    postingSvc,
		accounts:      accounts,
		classifier:    classifier,
		publisher:     publisher,
		tolerance:     tolerance,
	}
}

var _ portssvc.AccrualSvcFacade = (*accrualService)(nil)

// validateAccounts confirms both account codes exist and accept postings.
func (s *accrualService) validateAccounts(ctx context.Context, tenantID, debitAccountID, creditAccountID string) error {
	if debitAccountID == creditAccountID {
		return fmt.Errorf("%w: %s", ErrIdenticalAccounts, debitAccountID)
	}
	for _, code := range []string{debitAccountID, creditAccountID} {
		exists, err := s.accounts.AccountExists(ctx, tenantID, code)
		if err != nil {
			return fmt.Errorf("failed to validate account %s: %w", code, err)
		}
		if !exists {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrInvalidAccount, code)
		}
		postable, err := s.accounts.IsPostable(ctx, tenantID, code)
		if err != nil {
			return fmt.Errorf("failed to validate account %s: %w", code, err)
		}
		if !postable {
			return fmt.Errorf("%w: account %s is not postable", apperrors.ErrInvalidAccount, code)
		}
	}
	return nil
}

// buildAccrual validates a creation request and assembles the new accrual in
// PENDING_APPROVAL, without persisting it.
func (s *accrualService) buildAccrual(ctx context.Context, tenantID string, req dto.CreateAccrualRequest, actor string) (*domain.Accrual, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: accrual amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}
	if req.PeriodStart.After(req.PeriodEnd) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrInvertedPeriod)
	}
	if err := s.validateAccounts(ctx, tenantID, req.DebitAccountID, req.CreditAccountID); err != nil {
		if errors.Is(err, ErrIdenticalAccounts) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return nil, err
	}

	now := time.Now().UTC()
	classification := s.classifier.Classify(req.Type)

	accrual := domain.Accrual{
		AccrualID:              uuid.NewString(),
		TenantID:               tenantID,
		ExternalRef:            req.ExternalRef,
		Description:            req.Description,
		Type:                   req.Type,
		IFRSClassification:     classification.IFRSCategory,
		IsCurrent:              s.classifier.IsCurrent(req.PeriodEnd, now),
		TaxDeductible:          s.classifier.IsTaxDeductible(req.Type),
		Amount:                 req.Amount,
		ReversedAmount:         decimal.Zero,
		SettledAmount:          decimal.Zero,
		OutstandingBalance:     req.Amount,
		AccrualDate:            req.AccrualDate,
		PeriodStart:            req.PeriodStart,
		PeriodEnd:              req.PeriodEnd,
		ExpectedSettlementDate: req.ExpectedSettlementDate,
		DebitAccountID:         req.DebitAccountID,
		CreditAccountID:        req.CreditAccountID,
		CostCenter:             req.CostCenter,
		Department:             req.Department,
		Project:                req.Project,
		Notes:                  req.Notes,
		Status:                 domain.AccrualPendingApproval,
		Version:                1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if req.Recurrence != nil {
		if !req.Recurrence.Frequency.Valid() {
			return nil, fmt.Errorf("%w: %v %q", apperrors.ErrValidation, ErrUnknownFrequency, req.Recurrence.Frequency)
		}
		if req.Recurrence.RecurringUntil != nil && req.Recurrence.RecurringUntil.Before(req.AccrualDate) {
			return nil, fmt.Errorf("%w: recurring-until date precedes the accrual date", apperrors.ErrValidation)
		}
		next := req.Recurrence.Frequency.Advance(req.AccrualDate)
		accrual.Recurrence = domain.Recurrence{
			IsRecurring:      true,
			Frequency:        req.Recurrence.Frequency,
			NextAccrualDate:  &next,
			TotalOccurrences: req.Recurrence.TotalOccurrences,
			RecurringUntil:   req.Recurrence.RecurringUntil,
		}
	}

	if req.AutoReversal != nil {
		if req.AutoReversal.TargetDate.Before(req.AccrualDate) {
			return nil, fmt.Errorf("%w: auto-reversal date precedes the accrual date", apperrors.ErrValidation)
		}
		target := req.AutoReversal.TargetDate
		accrual.AutoReversal = domain.AutoReversal{Enabled: true, TargetDate: &target}
	}

	return &accrual, nil
}

// saveNewAccrualInTx claims the accrual's period-scoped number and inserts
// the row inside the caller's transaction. The counter row serializes
// concurrent creators.
func (s *accrualService) saveNewAccrualInTx(ctx context.Context, tx pgx.Tx, accrual *domain.Accrual) error {
	seq, err := s.numberingRepo.NextNumberInTx(ctx, tx, accrual.TenantID, portsrepo.ScopeAccrual, accrual.PeriodKey())
	if err != nil {
		return fmt.Errorf("failed to allocate accrual number: %w", err)
	}
	accrual.AccrualNumber = fmt.Sprintf("ACR-%s-%04d", accrual.PeriodKey(), seq)

	if err := s.accrualRepo.SaveAccrualInTx(ctx, tx, *accrual); err != nil {
		return fmt.Errorf("failed to save accrual: %w", err)
	}
	return nil
}

// CreateAccrual validates and persists a new accrual in PENDING_APPROVAL.
func (s *accrualService) CreateAccrual(ctx context.Context, tenantID string, req dto.CreateAccrualRequest, actor string) (*domain.Accrual, error) {
	logger := s.GetLogger(ctx)

	accrual, err := s.buildAccrual(ctx, tenantID, req, actor)
	if err != nil {
		return nil, err
	}

	tx, err := s.accrualRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accrualRepo.Rollback(ctx, tx)

	if err := s.saveNewAccrualInTx(ctx, tx, accrual); err != nil {
		logger.Error("Failed to save accrual", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.accrualRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Accrual created",
		slog.String("accrual_id", accrual.AccrualID),
		slog.String("accrual_number", accrual.AccrualNumber),
		slog.String("amount", accrual.Amount.String()))

	s.publisher.Publish(ctx, s.buildEvent(domain.EventAccrualCreated, accrual, actor, nil))
	return accrual, nil
}

// CreateAccrualFromTemplate persists a recurring occurrence together with the
// advanced template in one transaction. The template row is written with its
// version check, so losing a race against a concurrent lifecycle operation on
// the template rolls back the occurrence as well; the template then still
// reads as due and the next run regenerates the occurrence exactly once.
func (s *accrualService) CreateAccrualFromTemplate(ctx context.Context, tenantID string, req dto.CreateAccrualRequest, template domain.Accrual, actor string) (*domain.Accrual, error) {
	logger := s.GetLogger(ctx)

	accrual, err := s.buildAccrual(ctx, tenantID, req, actor)
	if err != nil {
		return nil, err
	}

	tx, err := s.accrualRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accrualRepo.Rollback(ctx, tx)

	if err := s.saveNewAccrualInTx(ctx, tx, accrual); err != nil {
		logger.Error("Failed to save recurring occurrence", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.accrualRepo.UpdateAccrualInTx(ctx, tx, template); err != nil {
		return nil, fmt.Errorf("failed to advance recurrence schedule for %s: %w", template.AccrualID, err)
	}

	if err := s.accrualRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Recurring occurrence created",
		slog.String("template_id", template.AccrualID),
		slog.String("accrual_id", accrual.AccrualID),
		slog.String("accrual_number", accrual.AccrualNumber))

	s.publisher.Publish(ctx, s.buildEvent(domain.EventAccrualCreated, accrual, actor, nil))
	return accrual, nil
}

// ApproveAccrual moves a pending accrual to ACTIVE and posts the initial
// ACCRUAL_ENTRY in the same transaction.
func (s *accrualService) ApproveAccrual(ctx context.Context, tenantID, accrualID string, req dto.ApproveAccrualRequest, approver string) (*domain.Accrual, error) {
	logger := s.GetLogger(ctx)

	accrual, err := s.accrualRepo.FindAccrualByID(ctx, tenantID, accrualID)
	if err != nil {
		return nil, err
	}
	if accrual.Status != domain.AccrualPendingApproval {
		return nil, fmt.Errorf("%w: accrual %s is %s, expected PENDING_APPROVAL", apperrors.ErrInvalidState, accrualID, accrual.Status)
	}

	now := time.Now().UTC()
	accrual.Status = domain.AccrualActive
	accrual.Approver = approver
	accrual.ApprovedAt = &now
	if req.Notes != "" {
		accrual.Notes = req.Notes
	}
	accrual.LastUpdatedAt = now
	accrual.LastUpdatedBy = approver

	tx, err := s.accrualRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accrualRepo.Rollback(ctx, tx)

	if err := s.accrualRepo.UpdateAccrualInTx(ctx, tx, *accrual); err != nil {
		return nil, err
	}

	entry, err := s.postingSvc.PostEntryInTx(ctx, tx, portssvc.PostingInstruction{
		TenantID:        tenantID,
		AccrualID:       accrual.AccrualID,
		EntryType:       domain.AccrualEntry,
		EntryDate:       accrual.AccrualDate,
		Description:     fmt.Sprintf("Accrual %s: %s", accrual.AccrualNumber, accrual.Description),
		DebitAccountID:  accrual.DebitAccountID,
		CreditAccountID: accrual.CreditAccountID,
		Amount:          accrual.Amount,
		CostCenter:      accrual.CostCenter,
		Actor:           approver,
	})
	if err != nil {
		return nil, err
	}

	if err := s.accrualRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	accrual.Version++

	logger.Info("Accrual approved",
		slog.String("accrual_id", accrual.AccrualID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("approver", approver))

	s.publisher.Publish(ctx, s.buildEvent(domain.EventAccrualApproved, accrual, approver, nil))
	return accrual, nil
}

// RejectAccrual cancels a pending accrual. No journal entry is produced
// because nothing was ever posted.
func (s *accrualService) RejectAccrual(ctx context.Context, tenantID, accrualID string, req dto.RejectAccrualRequest, actor string) (*domain.Accrual, error) {
	accrual, err := s.accrualRepo.FindAccrualByID(ctx, tenantID, accrualID)
	if err != nil {
		return nil, err
	}
	if accrual.Status != domain.AccrualPendingApproval {
		return nil, fmt.Errorf("%w: accrual %s is %s, expected PENDING_APPROVAL", apperrors.ErrInvalidState, accrualID, accrual.Status)
	}

	now := time.Now().UTC()
	accrual.Status = domain.AccrualCancelled
	accrual.Notes = req.Reason
	accrual.LastUpdatedAt = now
	accrual.LastUpdatedBy = actor

	tx, err := s.accrualRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accrualRepo.Rollback(ctx, tx)

	if err := s.accrualRepo.UpdateAccrualInTx(ctx, tx, *accrual); err != nil {
		return nil, err
	}
	if err := s.accrualRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	accrual.Version++

	s.LogInfo(ctx, "Accrual rejected", slog.String("accrual_id", accrualID), slog.String("actor", actor))
	return accrual, nil
}

// maxConflictRetries bounds how many times a lifecycle operation re-reads
// state after losing an optimistic-lock race before giving up.
const maxConflictRetries = 3

// withConflictRetry re-runs op after a version conflict. Each retry re-reads
// the accrual, so a reversal that lost a race against another reversal fails
// with ErrOverAmount once the fresh outstanding balance no longer covers it.
func (s *accrualService) withConflictRetry(ctx context.Context, op func() (*domain.Accrual, error)) (*domain.Accrual, error) {
	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		accrual, err := op()
		if err == nil {
			return accrual, nil
		}
		if !errors.Is(err, apperrors.ErrConcurrencyConflict) {
			return nil, err
		}
		lastErr = err
		s.LogWarn(ctx, "Optimistic lock conflict, re-reading accrual state", slog.Int("attempt", attempt+1))
	}
	return nil, lastErr
}

// ReverseAccrual applies a full or partial reversal. The REVERSAL_ENTRY
// swaps the accounts of the original posting.
func (s *accrualService) ReverseAccrual(ctx context.Context, tenantID, accrualID string, req dto.ReverseAccrualRequest, actor string) (*domain.Accrual, error) {
	return s.withConflictRetry(ctx, func() (*domain.Accrual, error) {
		return s.reverseOnce(ctx, tenantID, accrualID, req, actor)
	})
}

func (s *accrualService) reverseOnce(ctx context.Context, tenantID, accrualID string, req dto.ReverseAccrualRequest, actor string) (*domain.Accrual, error) {
	logger := s.GetLogger(ctx)

	accrual, err := s.accrualRepo.FindAccrualByID(ctx, tenantID, accrualID)
	if err != nil {
		return nil, err
	}
	if accrual.Status != domain.AccrualActive && accrual.Status != domain.AccrualPartiallyReversed {
		return nil, fmt.Errorf("%w: accrual %s is %s, reversal requires ACTIVE or PARTIALLY_REVERSED", apperrors.ErrInvalidState, accrualID, accrual.Status)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: reversal amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}
	if req.Amount.GreaterThan(accrual.OutstandingBalance) {
		return nil, fmt.Errorf("%w: reversal %s exceeds outstanding %s",
			apperrors.ErrOverAmount, req.Amount.String(), accrual.OutstandingBalance.String())
	}

	now := time.Now().UTC()
	accrual.ReversedAmount = accrual.ReversedAmount.Add(req.Amount)
	accrual.OutstandingBalance = accrual.OutstandingBalance.Sub(req.Amount)
	if accrual.FullyResolved(s.tolerance) {
		accrual.Status = domain.AccrualReversed
		accrual.ReversalDate = &now
		if accrual.AutoReversal.Enabled {
			accrual.AutoReversal.Completed = true
		}
	} else {
		accrual.Status = domain.AccrualPartiallyReversed
	}
	accrual.LastUpdatedAt = now
	accrual.LastUpdatedBy = actor

	tx, err := s.accrualRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accrualRepo.Rollback(ctx, tx)

	// The version check inside UpdateAccrualInTx is what prevents two
	// concurrent reversals from double-spending the outstanding balance.
	if err := s.accrualRepo.UpdateAccrualInTx(ctx, tx, *accrual); err != nil {
		return nil, err
	}

	entry, err := s.postingSvc.PostEntryInTx(ctx, tx, portssvc.PostingInstruction{
		TenantID:    tenantID,
		AccrualID:   accrual.AccrualID,
		EntryType:   domain.ReversalEntry,
		EntryDate:   now,
		Description: fmt.Sprintf("Reversal of %s: %s", accrual.AccrualNumber, req.Reason),
		// Accounts swapped relative to the original accrual entry.
		DebitAccountID:  accrual.CreditAccountID,
		CreditAccountID: accrual.DebitAccountID,
		Amount:          req.Amount,
		CostCenter:      accrual.CostCenter,
		Actor:           actor,
	})
	if err != nil {
		return nil, err
	}

	if err := s.accrualRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	accrual.Version++

	logger.Info("Accrual reversed",
		slog.String("accrual_id", accrual.AccrualID),
		slog.String("amount", req.Amount.String()),
		slog.String("outstanding", accrual.OutstandingBalance.String()),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(accrual.Status)))

	s.publisher.Publish(ctx, s.buildEvent(domain.EventAccrualReversed, accrual, actor, nil))
	return accrual, nil
}

// SettleAccrual records the actual cash event an accrual anticipated and
// computes how accurate the original estimate was.
func (s *accrualService) SettleAccrual(ctx context.Context, tenantID, accrualID string, req dto.SettleAccrualRequest, actor string) (*domain.Accrual, error) {
	return s.withConflictRetry(ctx, func() (*domain.Accrual, error) {
		return s.settleOnce(ctx, tenantID, accrualID, req, actor)
	})
}

func (s *accrualService) settleOnce(ctx context.Context, tenantID, accrualID string, req dto.SettleAccrualRequest, actor string) (*domain.Accrual, error) {
	logger := s.GetLogger(ctx)

	accrual, err := s.accrualRepo.FindAccrualByID(ctx, tenantID, accrualID)
	if err != nil {
		return nil, err
	}
	if accrual.Status != domain.AccrualActive && accrual.Status != domain.AccrualPartiallyReversed {
		return nil, fmt.Errorf("%w: accrual %s is %s, settlement requires ACTIVE or PARTIALLY_REVERSED", apperrors.ErrInvalidState, accrualID, accrual.Status)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: settlement amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}
	if req.Amount.GreaterThan(accrual.OutstandingBalance) {
		return nil, fmt.Errorf("%w: settlement %s exceeds outstanding %s",
			apperrors.ErrOverAmount, req.Amount.String(), accrual.OutstandingBalance.String())
	}

	now := time.Now().UTC()
	accrual.SettledAmount = accrual.SettledAmount.Add(req.Amount)
	accrual.OutstandingBalance = accrual.OutstandingBalance.Sub(req.Amount)
	if accrual.OutstandingBalance.IsNegative() {
		accrual.OutstandingBalance = decimal.Zero
	}

	accrual.Settlement = domain.SettlementMetrics{
		Variance:        accounting.SettlementVariance(accrual.Amount, accrual.SettledAmount),
		VariancePercent: accounting.VariancePercent(accrual.Amount, accrual.SettledAmount),
		AccuracyScore:   accounting.AccuracyScore(accrual.Amount, accrual.SettledAmount),
	}

	actualDate := req.ActualDate
	accrual.ActualSettlementDate = &actualDate
	if accrual.FullyResolved(s.tolerance) {
		accrual.Status = domain.AccrualSettled
	}
	if req.Notes != "" {
		accrual.Notes = req.Notes
	}
	accrual.LastUpdatedAt = now
	accrual.LastUpdatedBy = actor

	tx, err := s.accrualRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accrualRepo.Rollback(ctx, tx)

	if err := s.accrualRepo.UpdateAccrualInTx(ctx, tx, *accrual); err != nil {
		return nil, err
	}

	entry, err := s.postingSvc.PostEntryInTx(ctx, tx, portssvc.PostingInstruction{
		TenantID:    tenantID,
		AccrualID:   accrual.AccrualID,
		EntryType:   domain.SettlementEntry,
		EntryDate:   req.ActualDate,
		Description: fmt.Sprintf("Settlement of %s", accrual.AccrualNumber),
		// Settlement extinguishes the accrued balance, so it posts against
		// the accounts in the opposite direction of the original entry.
		DebitAccountID:  accrual.CreditAccountID,
		CreditAccountID: accrual.DebitAccountID,
		Amount:          req.Amount,
		CostCenter:      accrual.CostCenter,
		Actor:           actor,
	})
	if err != nil {
		return nil, err
	}

	if err := s.accrualRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	accrual.Version++

	logger.Info("Accrual settled",
		slog.String("accrual_id", accrual.AccrualID),
		slog.String("amount", req.Amount.String()),
		slog.String("outstanding", accrual.OutstandingBalance.String()),
		slog.String("accuracy_score", accrual.Settlement.AccuracyScore.String()),
		slog.String("entry_number", entry.EntryNumber))

	metrics := accrual.Settlement
	s.publisher.Publish(ctx, s.buildEvent(domain.EventAccrualSettled, accrual, actor, &metrics))
	return accrual, nil
}

// GetAccrualByID retrieves a single accrual.
func (s *accrualService) GetAccrualByID(ctx context.Context, tenantID, accrualID string) (*domain.Accrual, error) {
	return s.accrualRepo.FindAccrualByID(ctx, tenantID, accrualID)
}

// ListAccruals retrieves a filtered, paginated accrual listing.
func (s *accrualService) ListAccruals(ctx context.Context, tenantID string, params dto.ListAccrualsParams) (*dto.ListAccrualsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	filter := portsrepo.ListAccrualsFilter{
		Status:      params.Status,
		Type:        params.Type,
		PeriodStart: params.PeriodStart,
		PeriodEnd:   params.PeriodEnd,
	}

	accruals, nextToken, err := s.accrualRepo.ListAccruals(ctx, tenantID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accruals")
		return nil, fmt.Errorf("failed to retrieve accruals: %w", err)
	}

	return &dto.ListAccrualsResponse{
		Accruals:  dto.ToAccrualResponses(accruals),
		NextToken: nextToken,
	}, nil
}

// GetSummary returns the headline counts and outstanding totals.
func (s *accrualService) GetSummary(ctx context.Context, tenantID string) (*domain.AccrualSummary, error) {
	summary, err := s.analyticsRepo.GetSummary(ctx, tenantID, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accrual summary")
		return nil, fmt.Errorf("failed to retrieve summary: %w", err)
	}
	return summary, nil
}

// ListEntriesByAccrual retrieves the journal history of one accrual.
func (s *accrualService) ListEntriesByAccrual(ctx context.Context, tenantID, accrualID string) ([]domain.JournalEntry, error) {
	// Confirm the accrual exists in this tenant before exposing entries.
	if _, err := s.accrualRepo.FindAccrualByID(ctx, tenantID, accrualID); err != nil {
		return nil, err
	}
	return s.journalRepo.ListEntriesByAccrual(ctx, tenantID, accrualID)
}

func (s *accrualService) buildEvent(name domain.EventName, a *domain.Accrual, actor string, metrics *domain.SettlementMetrics) domain.AccrualEvent {
	return domain.AccrualEvent{
		Name:          name,
		TenantID:      a.TenantID,
		AccrualID:     a.AccrualID,
		AccrualNumber: a.AccrualNumber,
		Status:        a.Status,
		Amount:        a.Amount,
		Outstanding:   a.OutstandingBalance,
		Actor:         actor,
		OccurredAt:    time.Now().UTC(),
		Metrics:       metrics,
	}
}
