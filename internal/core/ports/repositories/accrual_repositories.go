package repositories

import (
	"context"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ListAccrualsFilter narrows an accrual listing.
type ListAccrualsFilter struct {
	Status      *domain.AccrualStatus
	Type        *domain.AccrualType
	PeriodStart *time.Time // accrual_date >= PeriodStart
	PeriodEnd   *time.Time // accrual_date <= PeriodEnd
}

// AccrualReader defines read operations for accrual data.
type AccrualReader interface {
	// FindAccrualByID retrieves a specific accrual by its unique identifier.
	FindAccrualByID(ctx context.Context, tenantID, accrualID string) (*domain.Accrual, error)

	// ListAccruals retrieves a filtered, paginated list of accruals for a
	// tenant using token-based pagination. It returns the accruals, a token
	// for the next page, and an error.
	ListAccruals(ctx context.Context, tenantID string, filter ListAccrualsFilter, limit int, nextToken *string) ([]domain.Accrual, *string, error)

	// FindDueRecurring retrieves recurring accruals whose next accrual date
	// has arrived and whose occurrence/until-date limits are not exceeded.
	FindDueRecurring(ctx context.Context, asOf time.Time) ([]domain.Accrual, error)

	// FindDueAutoReversals retrieves ACTIVE accruals with auto-reversal
	// enabled, due, and not yet completed.
	FindDueAutoReversals(ctx context.Context, asOf time.Time) ([]domain.Accrual, error)
}

// AccrualWriter defines write operations for accrual data. Lifecycle writes
// are always part of a caller-owned transaction so the accrual row and its
// derived journal entry commit or roll back together.
type AccrualWriter interface {
	// SaveAccrualInTx persists a new accrual within the given transaction.
	SaveAccrualInTx(ctx context.Context, tx pgx.Tx, accrual domain.Accrual) error

	// UpdateAccrualInTx updates an accrual within the given transaction using
	// optimistic locking: the update only applies if the stored version still
	// matches accrual.Version, and the version is incremented. A version
	// mismatch returns apperrors.ErrConcurrencyConflict.
	UpdateAccrualInTx(ctx context.Context, tx pgx.Tx, accrual domain.Accrual) error
}

// AccrualRepositoryFacade combines all accrual-related repository interfaces.
type AccrualRepositoryFacade interface {
	AccrualReader
	AccrualWriter
}

// AccrualRepositoryWithTx extends AccrualRepositoryFacade with transaction capabilities.
type AccrualRepositoryWithTx interface {
	AccrualRepositoryFacade
	TransactionManager
}
