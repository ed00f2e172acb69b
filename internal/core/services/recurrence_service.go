package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/finacct/accrual_subledger_app/internal/dto"
)

// recurrenceService is the daily driver for recurring accrual generation and
// auto-reversals. It holds no state of its own; due-ness comes entirely from
// persisted rows, so a run can safely execute twice.
type recurrenceService struct {
	BaseService
	accrualRepo portsrepo.AccrualRepositoryWithTx
	accrualSvc  portssvc.AccrualSvcFacade
}

// NewRecurrenceService creates the recurrence/auto-reversal driver.
func NewRecurrenceService(accrualRepo portsrepo.AccrualRepositoryWithTx, accrualSvc portssvc.AccrualSvcFacade) portssvc.RecurrenceSvcFacade {
	return &recurrenceService{
		accrualRepo: accrualRepo,
		accrualSvc:  accrualSvc,
	}
}

var _ portssvc.RecurrenceSvcFacade = (*recurrenceService)(nil)

// RunDaily generates due recurring instances and executes due auto-reversals.
// Individual record failures are logged and skipped so one bad record does
// not block the batch.
func (s *recurrenceService) RunDaily(ctx context.Context, asOf time.Time) (*portssvc.RecurrenceRunReport, error) {
	logger := s.GetLogger(ctx)
	report := &portssvc.RecurrenceRunReport{}

	due, err := s.accrualRepo.FindDueRecurring(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for due recurring accruals: %w", err)
	}
	report.RecurringDue = len(due)

	for i := range due {
		template := due[i]
		if err := s.generateInstance(ctx, &template, asOf); err != nil {
			report.Failures++
			logger.Error("Failed to generate recurring accrual instance",
				slog.String("template_id", template.AccrualID),
				slog.String("error", err.Error()))
			continue
		}
		report.RecurringGenerated++
	}

	reversals, err := s.accrualRepo.FindDueAutoReversals(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for due auto-reversals: %w", err)
	}
	report.AutoReversalsDue = len(reversals)

	for i := range reversals {
		accrual := reversals[i]
		_, err := s.accrualSvc.ReverseAccrual(ctx, accrual.TenantID, accrual.AccrualID, dto.ReverseAccrualRequest{
			Amount: accrual.OutstandingBalance,
			Reason: "Automatic period-end reversal",
		}, domain.SystemActor)
		if err != nil {
			report.Failures++
			logger.Error("Failed to auto-reverse accrual",
				slog.String("accrual_id", accrual.AccrualID),
				slog.String("error", err.Error()))
			continue
		}
		report.AutoReversalsDone++
	}

	logger.Info("Recurrence run completed",
		slog.Int("recurring_due", report.RecurringDue),
		slog.Int("recurring_generated", report.RecurringGenerated),
		slog.Int("auto_reversals_due", report.AutoReversalsDue),
		slog.Int("auto_reversals_done", report.AutoReversalsDone),
		slog.Int("failures", report.Failures))
	return report, nil
}

// generateInstance creates the next occurrence from a recurring template and
// advances the template's schedule, both in one transaction.
func (s *recurrenceService) generateInstance(ctx context.Context, template *domain.Accrual, asOf time.Time) error {
	if !template.Recurrence.IsRecurring || template.Recurrence.NextAccrualDate == nil {
		return fmt.Errorf("accrual %s is not a due recurring template", template.AccrualID)
	}
	// Unapproved and cancelled templates do not spawn occurrences. The
	// due-scan already filters them; this guards direct callers.
	if template.Status == domain.AccrualPendingApproval || template.Status == domain.AccrualCancelled {
		return fmt.Errorf("recurring template %s is %s and cannot spawn occurrences", template.AccrualID, template.Status)
	}

	occurrenceDate := *template.Recurrence.NextAccrualDate

	// Shift the accounting period by the same offset as the accrual date.
	shift := occurrenceDate.Sub(template.AccrualDate)
	periodStart := template.PeriodStart.Add(shift)
	periodEnd := template.PeriodEnd.Add(shift)

	req := dto.CreateAccrualRequest{
		Description:     template.Description,
		Type:            template.Type,
		Amount:          template.Amount,
		AccrualDate:     occurrenceDate,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		DebitAccountID:  template.DebitAccountID,
		CreditAccountID: template.CreditAccountID,
		ExternalRef:     template.ExternalRef,
		CostCenter:      template.CostCenter,
		Department:      template.Department,
		Project:         template.Project,
		// Instances are plain accruals; only the template recurs.
	}
	if template.AutoReversal.Enabled && template.AutoReversal.TargetDate != nil {
		target := template.AutoReversal.TargetDate.Add(shift)
		req.AutoReversal = &dto.AutoReversalRequest{TargetDate: target}
	}

	// Advance the template's schedule. Recurrence stops once limits are hit;
	// the repository's due-scan also enforces them, this just makes the
	// template self-describing.
	next := template.Recurrence.Frequency.Advance(occurrenceDate)
	template.Recurrence.OccurrencesCompleted++
	template.Recurrence.NextAccrualDate = &next
	if template.Recurrence.TotalOccurrences > 0 && template.Recurrence.OccurrencesCompleted >= template.Recurrence.TotalOccurrences {
		template.Recurrence.NextAccrualDate = nil
	}
	if template.Recurrence.RecurringUntil != nil && next.After(*template.Recurrence.RecurringUntil) {
		template.Recurrence.NextAccrualDate = nil
	}
	template.LastUpdatedAt = time.Now().UTC()
	template.LastUpdatedBy = domain.SystemActor

	// Occurrence insert and schedule advance commit together. If either side
	// fails, the template stays due and the next run regenerates cleanly.
	if _, err := s.accrualSvc.CreateAccrualFromTemplate(ctx, template.TenantID, req, *template, domain.SystemActor); err != nil {
		return fmt.Errorf("failed to create occurrence for template %s: %w", template.AccrualID, err)
	}
	return nil
}
