package services

import (
	"context"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	"github.com/finacct/accrual_subledger_app/internal/dto"
)

// AccrualSvcFacade is the accrual lifecycle engine surface consumed by
// handlers and by the recurrence driver.
type AccrualSvcFacade interface {
	// CreateAccrual validates and persists a new accrual in PENDING_APPROVAL
	// and emits accrual.created.
	CreateAccrual(ctx context.Context, tenantID string, req dto.CreateAccrualRequest, actor string) (*domain.Accrual, error)

	// CreateAccrualFromTemplate persists a new occurrence and the advanced
	// recurring template in one transaction. The template update carries the
	// optimistic version check, so a concurrent modification of the template
	// rolls back the occurrence too and a later run regenerates it cleanly.
	// Emits accrual.created for the occurrence.
	CreateAccrualFromTemplate(ctx context.Context, tenantID string, req dto.CreateAccrualRequest, template domain.Accrual, actor string) (*domain.Accrual, error)

	// ApproveAccrual moves a pending accrual to ACTIVE and posts the initial
	// ACCRUAL_ENTRY atomically. Emits accrual.approved.
	ApproveAccrual(ctx context.Context, tenantID, accrualID string, req dto.ApproveAccrualRequest, approver string) (*domain.Accrual, error)

	// RejectAccrual cancels a pending accrual without posting.
	RejectAccrual(ctx context.Context, tenantID, accrualID string, req dto.RejectAccrualRequest, actor string) (*domain.Accrual, error)

	// ReverseAccrual applies a full or partial reversal and posts one
	// REVERSAL_ENTRY with the accounts swapped. Emits accrual.reversed.
	ReverseAccrual(ctx context.Context, tenantID, accrualID string, req dto.ReverseAccrualRequest, actor string) (*domain.Accrual, error)

	// SettleAccrual records the actual cash event, posts one
	// SETTLEMENT_ENTRY, and computes accuracy metrics. Emits accrual.settled.
	SettleAccrual(ctx context.Context, tenantID, accrualID string, req dto.SettleAccrualRequest, actor string) (*domain.Accrual, error)

	// GetAccrualByID retrieves a single accrual.
	GetAccrualByID(ctx context.Context, tenantID, accrualID string) (*domain.Accrual, error)

	// ListAccruals retrieves a filtered, paginated accrual listing.
	ListAccruals(ctx context.Context, tenantID string, params dto.ListAccrualsParams) (*dto.ListAccrualsResponse, error)

	// GetSummary returns headline counts and outstanding totals.
	GetSummary(ctx context.Context, tenantID string) (*domain.AccrualSummary, error)

	// ListEntriesByAccrual retrieves the journal history of one accrual.
	ListEntriesByAccrual(ctx context.Context, tenantID, accrualID string) ([]domain.JournalEntry, error)
}
