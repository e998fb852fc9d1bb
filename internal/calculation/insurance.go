package calculation

import (
	"github.com/rpgo/payroll-calculator/internal/domain"
	money "github.com/rpgo/payroll-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// InsuranceBreakdown is the outcome of CalculateInsurance
type InsuranceBreakdown struct {
	Contributions map[domain.InsuranceType]domain.InsuranceContribution
	TotalEmployee decimal.Decimal
	TotalEmployer decimal.Decimal
}

// ContributionBase returns min(contractSalary, cap); a nil cap leaves the salary as is
func ContributionBase(contractSalary decimal.Decimal, capBase *decimal.Decimal) decimal.Decimal {
	if capBase == nil {
		return contractSalary
	}
	return decimal.Min(contractSalary, *capBase)
}

// ValidateInsuranceRates rejects unknown or duplicate schemes and negative rates or caps
func ValidateInsuranceRates(rates []domain.InsuranceRate) error {
	seen := make(map[domain.InsuranceType]bool, len(rates))
	for _, r := range rates {
		if !r.Type.Valid() {
			return domain.NewPolicyConfigError("insurance_rates", "unknown insurance type %q", r.Type)
		}
		if seen[r.Type] {
			return domain.NewPolicyConfigError("insurance_rates", "duplicate insurance type %s", r.Type)
		}
		seen[r.Type] = true
		if r.EmployeeRate.IsNegative() {
			return domain.NewPolicyConfigError("insurance_rates", "%s employee rate is negative: %s", r.Type, r.EmployeeRate)
		}
		if r.EmployerRate.IsNegative() {
			return domain.NewPolicyConfigError("insurance_rates", "%s employer rate is negative: %s", r.Type, r.EmployerRate)
		}
		if r.CapBaseSalary != nil && r.CapBaseSalary.IsNegative() {
			return domain.NewPolicyConfigError("insurance_rates", "%s cap base salary is negative: %s", r.Type, *r.CapBaseSalary)
		}
	}
	return nil
}

// CalculateInsurance levies every configured scheme on the contract salary, capped per
// scheme. Amounts are rounded half-up to scale fraction digits.
func CalculateInsurance(contractSalary decimal.Decimal, rates []domain.InsuranceRate, scale int32) (InsuranceBreakdown, error) {
	if err := ValidateInsuranceRates(rates); err != nil {
		return InsuranceBreakdown{}, err
	}

	out := InsuranceBreakdown{
		Contributions: make(map[domain.InsuranceType]domain.InsuranceContribution, len(rates)),
		TotalEmployee: decimal.Zero,
		TotalEmployer: decimal.Zero,
	}
	for _, r := range rates {
		base := money.NewMoneyFromDecimal(ContributionBase(contractSalary, r.CapBaseSalary))
		contribution := domain.InsuranceContribution{
			Base:           base.Decimal,
			EmployeeAmount: base.ApplyRate(r.EmployeeRate).RoundTo(scale).Decimal,
			EmployerAmount: base.ApplyRate(r.EmployerRate).RoundTo(scale).Decimal,
		}
		out.Contributions[r.Type] = contribution
		out.TotalEmployee = out.TotalEmployee.Add(contribution.EmployeeAmount)
		out.TotalEmployer = out.TotalEmployer.Add(contribution.EmployerAmount)
	}
	return out, nil
}
