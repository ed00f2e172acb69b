package repositories

import "context"

// AccountValidator confirms account codes against the chart of accounts.
// The general ledger itself is an external collaborator; this subledger only
// checks that the accounts it posts to exist and accept postings.
type AccountValidator interface {
	// AccountExists reports whether the account code is known to the ledger.
	AccountExists(ctx context.Context, tenantID, code string) (bool, error)

	// IsPostable reports whether the account accepts direct postings.
	IsPostable(ctx context.Context, tenantID, code string) (bool, error)
}
