package calculation

import (
	"sort"

	"github.com/rpgo/payroll-calculator/internal/domain"
	money "github.com/rpgo/payroll-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Calculate turns one employee's figures and a policy snapshot into a fresh
// gross-to-net result. It has no side effects and never modifies its arguments;
// identical arguments always give identical results.
func Calculate(input domain.CalculationInput, policy domain.PolicyConfig) (*domain.PayrollResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if policy.RoundingScale < 0 {
		return nil, domain.NewPolicyConfigError("rounding_scale", "must not be negative, got %d", policy.RoundingScale)
	}
	scale := policy.RoundingScale
	round := func(d decimal.Decimal) decimal.Decimal {
		return money.NewMoneyFromDecimal(d).RoundTo(scale).Decimal
	}

	// Income
	base, err := ProrateSalary(input.ContractSalary, input.StandardWorkDays, input.ActualWorkDays)
	if err != nil {
		return nil, err
	}
	multiplier := policy.EffectiveOvertimeMultiplier()
	if multiplier.IsNegative() {
		return nil, domain.NewPolicyConfigError("overtime_multiplier", "must not be negative, got %s", multiplier)
	}
	otPay, err := OvertimePay(input.ContractSalary, input.StandardWorkDays, input.OvertimeHours, multiplier)
	if err != nil {
		return nil, err
	}

	components := make(map[string]decimal.Decimal, len(input.FixedAllowances)+3)
	components[domain.ComponentBaseSalary] = round(base)
	components[domain.ComponentOvertime] = round(otPay)
	for key, amount := range input.FixedAllowances {
		components[key] = round(amount)
	}
	components[domain.ComponentBonus] = round(input.Bonus)

	gross := money.Zero()
	for _, amount := range components {
		gross = gross.Add(money.NewMoneyFromDecimal(amount))
	}

	// Insurance is levied on the contract salary, never on prorated or gross income
	insurance, err := CalculateInsurance(input.ContractSalary, policy.InsuranceRates, scale)
	if err != nil {
		return nil, err
	}

	// Taxable income
	if policy.PersonalDeduction.IsNegative() {
		return nil, domain.NewPolicyConfigError("personal_deduction", "must not be negative, got %s", policy.PersonalDeduction)
	}
	if policy.DependentDeduction.IsNegative() {
		return nil, domain.NewPolicyConfigError("dependent_deduction", "must not be negative, got %s", policy.DependentDeduction)
	}
	dependentDeduction := policy.DependentDeduction.Mul(decimal.NewFromInt(int64(input.DependentsCount)))
	afterInsurance := gross.Sub(money.NewMoneyFromDecimal(insurance.TotalEmployee))
	taxable := afterInsurance.
		Sub(money.NewMoneyFromDecimal(policy.PersonalDeduction)).
		Sub(money.NewMoneyFromDecimal(dependentDeduction)).
		FloorZero()

	// Tax
	taxCalc, err := NewProgressiveTaxCalculator(policy.TaxBrackets)
	if err != nil {
		return nil, err
	}
	tax, bracket, err := taxCalc.CalculateTax(taxable.Decimal, scale)
	if err != nil {
		return nil, err
	}

	net := afterInsurance.Sub(money.NewMoneyFromDecimal(tax))

	return &domain.PayrollResult{
		Components:             components,
		GrossIncome:            gross.Decimal,
		InsuranceContributions: insurance.Contributions,
		TotalEmployeeInsurance: insurance.TotalEmployee,
		TotalEmployerInsurance: insurance.TotalEmployer,
		PersonalDeduction:      policy.PersonalDeduction,
		DependentDeduction:     dependentDeduction,
		TaxableIncome:          taxable.Decimal,
		TaxBracketOrder:        bracket.Order,
		TaxAmount:              tax,
		NetIncome:              net.Decimal,
		EmployerCost:           gross.Decimal.Add(insurance.TotalEmployer),
	}, nil
}

// ValidatePolicy checks every section of a policy up front. Calculate performs the
// same checks lazily where each section is used; loaders call this to fail early.
func ValidatePolicy(policy domain.PolicyConfig) error {
	if err := ValidateTaxBrackets(policy.TaxBrackets); err != nil {
		return err
	}
	if err := ValidateInsuranceRates(policy.InsuranceRates); err != nil {
		return err
	}
	if policy.PersonalDeduction.IsNegative() {
		return domain.NewPolicyConfigError("personal_deduction", "must not be negative, got %s", policy.PersonalDeduction)
	}
	if policy.DependentDeduction.IsNegative() {
		return domain.NewPolicyConfigError("dependent_deduction", "must not be negative, got %s", policy.DependentDeduction)
	}
	if policy.OvertimeMultiplier.IsNegative() {
		return domain.NewPolicyConfigError("overtime_multiplier", "must not be negative, got %s", policy.OvertimeMultiplier)
	}
	if policy.RoundingScale < 0 {
		return domain.NewPolicyConfigError("rounding_scale", "must not be negative, got %d", policy.RoundingScale)
	}
	return nil
}

func validateInput(input domain.CalculationInput) error {
	if !input.StandardWorkDays.IsPositive() {
		return domain.NewInvalidInput("standard_work_days", "must be greater than zero, got %s", input.StandardWorkDays)
	}
	if input.ContractSalary.IsNegative() {
		return domain.NewInvalidInput("contract_salary", "must not be negative, got %s", input.ContractSalary)
	}
	if input.ActualWorkDays.IsNegative() {
		return domain.NewInvalidInput("actual_work_days", "must not be negative, got %s", input.ActualWorkDays)
	}
	if input.OvertimeHours.IsNegative() {
		return domain.NewInvalidInput("overtime_hours", "must not be negative, got %s", input.OvertimeHours)
	}
	if input.Bonus.IsNegative() {
		return domain.NewInvalidInput("bonus", "must not be negative, got %s", input.Bonus)
	}
	if input.DependentsCount < 0 {
		return domain.NewInvalidInput("dependents_count", "must not be negative, got %d", input.DependentsCount)
	}

	keys := make([]string, 0, len(input.FixedAllowances))
	for k := range input.FixedAllowances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "" {
			return domain.NewInvalidInput("fixed_allowances", "allowance key must not be empty")
		}
		if domain.IsReservedComponent(k) {
			return domain.NewInvalidInput("fixed_allowances", "allowance key %q is reserved", k)
		}
		if input.FixedAllowances[k].IsNegative() {
			return domain.NewInvalidInput("fixed_allowances", "allowance %s must not be negative, got %s", k, input.FixedAllowances[k])
		}
	}
	return nil
}
