package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	"github.com/finacct/accrual_subledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// accrualColumns is the canonical column list shared by every accrual SELECT.
const accrualColumns = `
	accrual_id, tenant_id, accrual_number, external_ref, description, accrual_type,
	ifrs_classification, is_current, tax_deductible,
	amount, reversed_amount, settled_amount, outstanding_balance,
	accrual_date, period_start, period_end,
	expected_settlement_date, actual_settlement_date, reversal_date,
	debit_account_id, credit_account_id, cost_center, department, project,
	is_recurring, frequency, next_accrual_date, total_occurrences, occurrences_completed, recurring_until,
	auto_reverse, auto_reverse_date, auto_reverse_done,
	variance, variance_percent, accuracy_score,
	status, approver, approved_at, notes, version,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccrualRepository struct {
	BaseRepository
}

// NewAccrualRepository creates a new repository for accrual data.
func NewAccrualRepository(pool *pgxpool.Pool) portsrepo.AccrualRepositoryWithTx {
	return &PgxAccrualRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccrualRepositoryWithTx = (*PgxAccrualRepository)(nil)

// scanAccrual reads one accrual row in accrualColumns order.
func scanAccrual(row pgx.Row) (*domain.Accrual, error) {
	var a domain.Accrual
	var frequency string

	err := row.Scan(
		&a.AccrualID, &a.TenantID, &a.AccrualNumber, &a.ExternalRef, &a.Description, &a.Type,
		&a.IFRSClassification, &a.IsCurrent, &a.TaxDeductible,
		&a.Amount, &a.ReversedAmount, &a.SettledAmount, &a.OutstandingBalance,
		&a.AccrualDate, &a.PeriodStart, &a.PeriodEnd,
		&a.ExpectedSettlementDate, &a.ActualSettlementDate, &a.ReversalDate,
		&a.DebitAccountID, &a.CreditAccountID, &a.CostCenter, &a.Department, &a.Project,
		&a.Recurrence.IsRecurring, &frequency, &a.Recurrence.NextAccrualDate,
		&a.Recurrence.TotalOccurrences, &a.Recurrence.OccurrencesCompleted, &a.Recurrence.RecurringUntil,
		&a.AutoReversal.Enabled, &a.AutoReversal.TargetDate, &a.AutoReversal.Completed,
		&a.Settlement.Variance, &a.Settlement.VariancePercent, &a.Settlement.AccuracyScore,
		&a.Status, &a.Approver, &a.ApprovedAt, &a.Notes, &a.Version,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	a.Recurrence.Frequency = domain.AccrualFrequency(frequency)
	return &a, nil
}

// FindAccrualByID retrieves an accrual by tenant and ID.
func (r *PgxAccrualRepository) FindAccrualByID(ctx context.Context, tenantID, accrualID string) (*domain.Accrual, error) {
	query := `SELECT` + accrualColumns + `
		FROM accruals
		WHERE accrual_id = $1 AND tenant_id = $2;`

	accrual, err := scanAccrual(r.Pool.QueryRow(ctx, query, accrualID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find accrual "+accrualID, err)
	}
	return accrual, nil
}

// ListAccruals retrieves a filtered, paginated list of accruals using
// token-based keyset pagination ordered by accrual_date, created_at DESC.
func (r *PgxAccrualRepository) ListAccruals(ctx context.Context, tenantID string, filter portsrepo.ListAccrualsFilter, limit int, nextToken *string) ([]domain.Accrual, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT` + accrualColumns + ` FROM accruals WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += ` AND accrual_type = $` + strconv.Itoa(len(args))
	}
	if filter.PeriodStart != nil {
		args = append(args, *filter.PeriodStart)
		query += ` AND accrual_date >= $` + strconv.Itoa(len(args))
	}
	if filter.PeriodEnd != nil {
		args = append(args, *filter.PeriodEnd)
		query += ` AND accrual_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		// Tuple comparison keeps the cursor stable under concurrent inserts.
		query += ` AND (accrual_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY accrual_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query accruals for tenant "+tenantID, err)
	}
	defer rows.Close()

	accruals := make([]domain.Accrual, 0, fetchLimit)
	for rows.Next() {
		a, scanErr := scanAccrual(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan accrual row", scanErr)
		}
		accruals = append(accruals, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating accrual rows", err)
	}

	var nextTokenVal *string
	if len(accruals) > limit {
		last := accruals[limit-1]
		token := pagination.EncodeToken(last.AccrualDate, last.CreatedAt)
		nextTokenVal = &token
		accruals = accruals[:limit]
	}

	return accruals, nextTokenVal, nil
}

// FindDueRecurring retrieves recurring templates whose next occurrence is due.
// Templates still awaiting approval do not spawn occurrences; their schedule
// starts once someone approves them.
func (r *PgxAccrualRepository) FindDueRecurring(ctx context.Context, asOf time.Time) ([]domain.Accrual, error) {
	query := `SELECT` + accrualColumns + `
		FROM accruals
		WHERE is_recurring
		  AND next_accrual_date IS NOT NULL
		  AND next_accrual_date <= $1
		  AND (total_occurrences = 0 OR occurrences_completed < total_occurrences)
		  AND (recurring_until IS NULL OR next_accrual_date <= recurring_until)
		  AND status NOT IN ('PENDING_APPROVAL', 'CANCELLED')
		ORDER BY next_accrual_date;`

	return r.queryAccruals(ctx, query, asOf)
}

// FindDueAutoReversals retrieves open accruals whose auto-reversal is due.
func (r *PgxAccrualRepository) FindDueAutoReversals(ctx context.Context, asOf time.Time) ([]domain.Accrual, error) {
	query := `SELECT` + accrualColumns + `
		FROM accruals
		WHERE auto_reverse
		  AND NOT auto_reverse_done
		  AND auto_reverse_date IS NOT NULL
		  AND auto_reverse_date <= $1
		  AND status IN ('ACTIVE', 'PARTIALLY_REVERSED')
		ORDER BY auto_reverse_date;`

	return r.queryAccruals(ctx, query, asOf)
}

func (r *PgxAccrualRepository) queryAccruals(ctx context.Context, query string, args ...interface{}) ([]domain.Accrual, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accruals", err)
	}
	defer rows.Close()

	accruals := []domain.Accrual{}
	for rows.Next() {
		a, scanErr := scanAccrual(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accrual row", scanErr)
		}
		accruals = append(accruals, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accrual rows", err)
	}
	return accruals, nil
}

// SaveAccrualInTx persists a new accrual within the given transaction.
func (r *PgxAccrualRepository) SaveAccrualInTx(ctx context.Context, tx pgx.Tx, a domain.Accrual) error {
	query := `
		INSERT INTO accruals (` + accrualColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		        $31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
		        $41, $42, $43, $44, $45);`

	_, err := tx.Exec(ctx, query,
		a.AccrualID, a.TenantID, a.AccrualNumber, a.ExternalRef, a.Description, a.Type,
		a.IFRSClassification, a.IsCurrent, a.TaxDeductible,
		a.Amount, a.ReversedAmount, a.SettledAmount, a.OutstandingBalance,
		a.AccrualDate, a.PeriodStart, a.PeriodEnd,
		a.ExpectedSettlementDate, a.ActualSettlementDate, a.ReversalDate,
		a.DebitAccountID, a.CreditAccountID, a.CostCenter, a.Department, a.Project,
		a.Recurrence.IsRecurring, string(a.Recurrence.Frequency), a.Recurrence.NextAccrualDate,
		a.Recurrence.TotalOccurrences, a.Recurrence.OccurrencesCompleted, a.Recurrence.RecurringUntil,
		a.AutoReversal.Enabled, a.AutoReversal.TargetDate, a.AutoReversal.Completed,
		a.Settlement.Variance, a.Settlement.VariancePercent, a.Settlement.AccuracyScore,
		a.Status, a.Approver, a.ApprovedAt, a.Notes, a.Version,
		a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert accrual "+a.AccrualID, err)
	}
	return nil
}

// UpdateAccrualInTx updates an accrual using optimistic locking: the write
// only applies if the stored version still matches a.Version. A mismatch
// means another transaction won the race.
func (r *PgxAccrualRepository) UpdateAccrualInTx(ctx context.Context, tx pgx.Tx, a domain.Accrual) error {
	query := `
		UPDATE accruals SET
			reversed_amount = $3,
			settled_amount = $4,
			outstanding_balance = $5,
			actual_settlement_date = $6,
			reversal_date = $7,
			next_accrual_date = $8,
			occurrences_completed = $9,
			auto_reverse_done = $10,
			variance = $11,
			variance_percent = $12,
			accuracy_score = $13,
			status = $14,
			approver = $15,
			approved_at = $16,
			notes = $17,
			version = version + 1,
			last_updated_at = $18,
			last_updated_by = $19
		WHERE accrual_id = $1 AND tenant_id = $2 AND version = $20;`

	cmdTag, err := tx.Exec(ctx, query,
		a.AccrualID, a.TenantID,
		a.ReversedAmount, a.SettledAmount, a.OutstandingBalance,
		a.ActualSettlementDate, a.ReversalDate,
		a.Recurrence.NextAccrualDate, a.Recurrence.OccurrencesCompleted,
		a.AutoReversal.Completed,
		a.Settlement.Variance, a.Settlement.VariancePercent, a.Settlement.AccuracyScore,
		a.Status, a.Approver, a.ApprovedAt, a.Notes,
		a.LastUpdatedAt, a.LastUpdatedBy,
		a.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update accrual "+a.AccrualID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// The row was read before the update, so zero rows means the version
		// moved underneath us rather than the accrual vanishing.
		return apperrors.ErrConcurrencyConflict
	}
	return nil
}
