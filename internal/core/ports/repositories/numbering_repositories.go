package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// NumberingScope identifies which document sequence a counter belongs to.
type NumberingScope string

const (
	ScopeAccrual NumberingScope = "ACCRUAL"
	ScopeJournal NumberingScope = "JOURNAL"
)

// NumberingRepository hands out unique, monotonic sequence values scoped to
// tenant + scope + period. The increment must happen inside the caller's
// transaction so a rolled-back lifecycle operation does not burn a number
// out of order with its journal history.
type NumberingRepository interface {
	// NextNumberInTx atomically increments and returns the counter for the
	// given tenant, scope and period key (e.g. "202501"). Concurrent callers
	// serialize on the counter row; counting existing rows is never used.
	NextNumberInTx(ctx context.Context, tx pgx.Tx, tenantID string, scope NumberingScope, periodKey string) (int64, error)
}
