package pgsql

import (
	"context"
	"errors"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a validator backed by the ledger_accounts table,
// a local mirror of the chart of accounts.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountValidator {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountValidator = (*PgxAccountRepository)(nil)

// AccountExists reports whether the account code is known to the ledger.
func (r *PgxAccountRepository) AccountExists(ctx context.Context, tenantID, code string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM ledger_accounts WHERE tenant_id = $1 AND account_code = $2
	);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, code).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check account "+code, err)
	}
	return exists, nil
}

// IsPostable reports whether the account accepts direct postings.
func (r *PgxAccountRepository) IsPostable(ctx context.Context, tenantID, code string) (bool, error) {
	query := `SELECT is_postable AND is_active
		FROM ledger_accounts
		WHERE tenant_id = $1 AND account_code = $2;`

	var postable bool
	err := r.Pool.QueryRow(ctx, query, tenantID, code).Scan(&postable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// An unknown account is simply not postable; existence is
			// checked separately so the caller can report the right error.
			return false, nil
		}
		return false, apperrors.NewAppError(500, "failed to check postability of account "+code, err)
	}
	return postable, nil
}
