package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// InsuranceContribution is the outcome for one insurance scheme
type InsuranceContribution struct {
	Base           decimal.Decimal `json:"base"`
	EmployeeAmount decimal.Decimal `json:"employee_amount"`
	EmployerAmount decimal.Decimal `json:"employer_amount"`
}

// PayrollResult is the gross-to-net breakdown of one calculation. A new value is
// produced for every call; nothing updates it afterwards.
type PayrollResult struct {
	Components             map[string]decimal.Decimal              `json:"components"`
	GrossIncome            decimal.Decimal                         `json:"gross_income"`
	InsuranceContributions map[InsuranceType]InsuranceContribution `json:"insurance_contributions"`
	TotalEmployeeInsurance decimal.Decimal                         `json:"total_employee_insurance"`
	TotalEmployerInsurance decimal.Decimal                         `json:"total_employer_insurance"`
	PersonalDeduction      decimal.Decimal                         `json:"personal_deduction"`
	DependentDeduction     decimal.Decimal                         `json:"dependent_deduction"`
	TaxableIncome          decimal.Decimal                         `json:"taxable_income"`
	TaxBracketOrder        int                                     `json:"tax_bracket_order"`
	TaxAmount              decimal.Decimal                         `json:"tax_amount"`
	NetIncome              decimal.Decimal                         `json:"net_income"`
	EmployerCost           decimal.Decimal                         `json:"employer_cost"`
}

// ComponentKeys returns component keys in payslip order: base salary, overtime,
// allowances alphabetically, then bonus.
func (r *PayrollResult) ComponentKeys() []string {
	keys := make([]string, 0, len(r.Components))
	var allowances []string
	for k := range r.Components {
		if !IsReservedComponent(k) {
			allowances = append(allowances, k)
		}
	}
	sort.Strings(allowances)
	for _, k := range []string{ComponentBaseSalary, ComponentOvertime} {
		if _, ok := r.Components[k]; ok {
			keys = append(keys, k)
		}
	}
	keys = append(keys, allowances...)
	if _, ok := r.Components[ComponentBonus]; ok {
		keys = append(keys, ComponentBonus)
	}
	return keys
}

// InsuranceKeys returns the insurance types present in the result in display order
func (r *PayrollResult) InsuranceKeys() []InsuranceType {
	keys := make([]InsuranceType, 0, len(r.InsuranceContributions))
	for _, t := range InsuranceTypes {
		if _, ok := r.InsuranceContributions[t]; ok {
			keys = append(keys, t)
		}
	}
	return keys
}
