package ledger

import (
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
)

// classificationPolicy is the per-type policy row. Per-type behavior is a
// lookup table, not a type hierarchy.
type classificationPolicy struct {
	IFRSCategory  string
	TaxDeductible bool
}

var classificationTable = map[domain.AccrualType]classificationPolicy{
	domain.AccrualExpense:   {IFRSCategory: "Trade and other payables", TaxDeductible: true},
	domain.AccrualRevenue:   {IFRSCategory: "Contract assets", TaxDeductible: false},
	domain.AccrualInterest:  {IFRSCategory: "Interest payable", TaxDeductible: true},
	domain.AccrualTax:       {IFRSCategory: "Current tax liabilities", TaxDeductible: false},
	domain.AccrualSalary:    {IFRSCategory: "Employee benefit obligations", TaxDeductible: true},
	domain.AccrualProvision: {IFRSCategory: "Provisions", TaxDeductible: true},
	domain.AccrualOther:     {IFRSCategory: "Other liabilities", TaxDeductible: false},
}

// resolver implements the classification collaborator as pure lookups.
type resolver struct{}

// NewClassificationResolver returns the default classification resolver.
func NewClassificationResolver() portssvc.ClassificationResolver {
	return &resolver{}
}

var _ portssvc.ClassificationResolver = (*resolver)(nil)

// Classify returns the IFRS classification for an accrual type. Unknown
// types fall back to the OTHER policy.
func (r *resolver) Classify(accrualType domain.AccrualType) domain.Classification {
	policy, ok := classificationTable[accrualType]
	if !ok {
		policy = classificationTable[domain.AccrualOther]
	}
	return domain.Classification{
		IFRSCategory:  policy.IFRSCategory,
		TaxDeductible: policy.TaxDeductible,
	}
}

// IsCurrent reports whether an obligation ending at periodEnd settles within
// twelve months of asOf.
func (r *resolver) IsCurrent(periodEnd time.Time, asOf time.Time) bool {
	return !periodEnd.After(asOf.AddDate(1, 0, 0))
}

// IsTaxDeductible reports whether the accrual type is deductible.
func (r *resolver) IsTaxDeductible(accrualType domain.AccrualType) bool {
	policy, ok := classificationTable[accrualType]
	if !ok {
		return false
	}
	return policy.TaxDeductible
}
