package domain

// Classification is the balance-sheet classification resolved for an
// accrual at creation time.
type Classification struct {
	IFRSCategory  string `json:"ifrsCategory"`
	IsCurrent     bool   `json:"isCurrent"`
	TaxDeductible bool   `json:"taxDeductible"`
}
