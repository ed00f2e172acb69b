package pgsql

import (
	"context"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNumberingRepository struct {
	BaseRepository
}

// NewNumberingRepository creates a new repository for document sequences.
func NewNumberingRepository(pool *pgxpool.Pool) portsrepo.NumberingRepository {
	return &PgxNumberingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NumberingRepository = (*PgxNumberingRepository)(nil)

// NextNumberInTx atomically increments and returns the counter for the given
// tenant, scope and period key. The upsert takes a row lock on the counter so
// concurrent transactions in the same period serialize here; two commits can
// never observe the same value.
func (r *PgxNumberingRepository) NextNumberInTx(ctx context.Context, tx pgx.Tx, tenantID string, scope portsrepo.NumberingScope, periodKey string) (int64, error) {
	query := `
		INSERT INTO sequence_counters (tenant_id, scope, period_key, value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, scope, period_key)
		DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value;`

	var value int64
	err := tx.QueryRow(ctx, query, tenantID, string(scope), periodKey).Scan(&value)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate sequence number for scope "+string(scope), err)
	}
	return value, nil
}
