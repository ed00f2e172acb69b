package pgsql

import (
	"context"
	"errors"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `
	entry_id, tenant_id, entry_number, accrual_id, entry_type, entry_date, description,
	debit_account_id, credit_account_id, debit_amount, credit_amount, cost_center,
	period_year, period_month, reverses_entry_id, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// NewJournalEntryRepository creates a new repository for journal entry data.
func NewJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

func scanJournalEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID, &e.TenantID, &e.EntryNumber, &e.AccrualID, &e.EntryType, &e.EntryDate, &e.Description,
		&e.DebitAccountID, &e.CreditAccountID, &e.DebitAmount, &e.CreditAmount, &e.CostCenter,
		&e.PeriodYear, &e.PeriodMonth, &e.ReversesEntryID, &e.Status,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindEntryByID retrieves a journal entry by tenant and ID.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT` + journalColumns + `
		FROM journal_entries
		WHERE entry_id = $1 AND tenant_id = $2;`

	entry, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	return entry, nil
}

// ListEntriesByAccrual retrieves all entries owned by an accrual, oldest first.
func (r *PgxJournalEntryRepository) ListEntriesByAccrual(ctx context.Context, tenantID, accrualID string) ([]domain.JournalEntry, error) {
	query := `SELECT` + journalColumns + `
		FROM journal_entries
		WHERE accrual_id = $1 AND tenant_id = $2
		ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, accrualID, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for accrual "+accrualID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

// SaveEntryInTx persists a journal entry within the given transaction.
func (r *PgxJournalEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, e domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`

	_, err := tx.Exec(ctx, query,
		e.EntryID, e.TenantID, e.EntryNumber, e.AccrualID, e.EntryType, e.EntryDate, e.Description,
		e.DebitAccountID, e.CreditAccountID, e.DebitAmount, e.CreditAmount, e.CostCenter,
		e.PeriodYear, e.PeriodMonth, e.ReversesEntryID, e.Status,
		e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+e.EntryID, err)
	}
	return nil
}
