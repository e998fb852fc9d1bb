package calculation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, context ...string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: expected %s, got %s", strings.Join(context, " "), want, got)
}

// flatPolicy is the single 5% bracket policy with uncapped employee-only insurance
func flatPolicy() domain.PolicyConfig {
	return domain.PolicyConfig{
		TaxBrackets: []domain.TaxBracket{
			{Order: 1, MinIncome: decimal.Zero, TaxRate: d("0.05")},
		},
		InsuranceRates: []domain.InsuranceRate{
			{Type: domain.InsuranceSocial, EmployeeRate: d("0.08")},
			{Type: domain.InsuranceHealth, EmployeeRate: d("0.015")},
			{Type: domain.InsuranceUnemployment, EmployeeRate: d("0.01")},
		},
		PersonalDeduction: d("11000000"),
	}
}

// vnPolicy is the 2024 Vietnamese monthly schedule
func vnPolicy() domain.PolicyConfig {
	return domain.PolicyConfig{
		Name: "VN-2024",
		TaxBrackets: []domain.TaxBracket{
			{Order: 1, MinIncome: d("0"), MaxIncome: dp("5000000"), TaxRate: d("0.05"), SubtractAmount: d("0")},
			{Order: 2, MinIncome: d("5000000"), MaxIncome: dp("10000000"), TaxRate: d("0.10"), SubtractAmount: d("250000")},
			{Order: 3, MinIncome: d("10000000"), MaxIncome: dp("18000000"), TaxRate: d("0.15"), SubtractAmount: d("750000")},
			{Order: 4, MinIncome: d("18000000"), MaxIncome: dp("32000000"), TaxRate: d("0.20"), SubtractAmount: d("1650000")},
			{Order: 5, MinIncome: d("32000000"), MaxIncome: dp("52000000"), TaxRate: d("0.25"), SubtractAmount: d("3250000")},
			{Order: 6, MinIncome: d("52000000"), MaxIncome: dp("80000000"), TaxRate: d("0.30"), SubtractAmount: d("5850000")},
			{Order: 7, MinIncome: d("80000000"), TaxRate: d("0.35"), SubtractAmount: d("9850000")},
		},
		InsuranceRates: []domain.InsuranceRate{
			{Type: domain.InsuranceSocial, EmployeeRate: d("0.08"), EmployerRate: d("0.175"), CapBaseSalary: dp("46800000")},
			{Type: domain.InsuranceHealth, EmployeeRate: d("0.015"), EmployerRate: d("0.03"), CapBaseSalary: dp("46800000")},
			{Type: domain.InsuranceUnemployment, EmployeeRate: d("0.01"), EmployerRate: d("0.01"), CapBaseSalary: dp("99200000")},
		},
		PersonalDeduction:  d("11000000"),
		DependentDeduction: d("4400000"),
	}
}

func fullMonth(salary string) domain.CalculationInput {
	return domain.CalculationInput{
		ContractSalary:   d(salary),
		StandardWorkDays: d("22"),
		ActualWorkDays:   d("22"),
	}
}

func TestCalculate_ExampleScenario(t *testing.T) {
	input := fullMonth("30000000")
	input.FixedAllowances = map[string]decimal.Decimal{"LUNCH": d("1500000")}

	result, err := Calculate(input, flatPolicy())
	require.NoError(t, err)

	assertDecimal(t, "31500000", result.GrossIncome, "gross")
	assertDecimal(t, "3150000", result.TotalEmployeeInsurance, "employee insurance")
	assertDecimal(t, "17350000", result.TaxableIncome, "taxable")
	assertDecimal(t, "867500", result.TaxAmount, "tax")
	assertDecimal(t, "27482500", result.NetIncome, "net")

	assertDecimal(t, "30000000", result.Components[domain.ComponentBaseSalary])
	assertDecimal(t, "0", result.Components[domain.ComponentOvertime])
	assertDecimal(t, "1500000", result.Components["LUNCH"])
	assertDecimal(t, "0", result.Components[domain.ComponentBonus])
	assert.Equal(t, []string{"BASE_SALARY", "OT_PAY", "LUNCH", "BONUS"}, result.ComponentKeys())

	assertDecimal(t, "2400000", result.InsuranceContributions[domain.InsuranceSocial].EmployeeAmount)
	assertDecimal(t, "450000", result.InsuranceContributions[domain.InsuranceHealth].EmployeeAmount)
	assertDecimal(t, "300000", result.InsuranceContributions[domain.InsuranceUnemployment].EmployeeAmount)
	assertDecimal(t, "0", result.TotalEmployerInsurance)
	assertDecimal(t, "31500000", result.EmployerCost)
	assert.Equal(t, 1, result.TaxBracketOrder)
}

func TestCalculate_VietnameseSchedule(t *testing.T) {
	tests := []struct {
		name        string
		salary      string
		dependents  int
		allowances  map[string]decimal.Decimal
		wantGross   string
		wantIns     string
		wantTaxable string
		wantBracket int
		wantTax     string
		wantNet     string
		description string
	}{
		{
			name:        "one dependent",
			salary:      "30000000",
			dependents:  1,
			allowances:  map[string]decimal.Decimal{"LUNCH": d("1500000")},
			wantGross:   "31500000",
			wantIns:     "3150000",
			wantTaxable: "12950000",
			wantBracket: 3,
			wantTax:     "1192500", // 250,000 + 500,000 + 2,950,000 × 15%
			wantNet:     "27157500",
			description: "taxable income in the 15% bracket",
		},
		{
			name:        "below deductions",
			salary:      "8000000",
			wantGross:   "8000000",
			wantIns:     "840000",
			wantTaxable: "0",
			wantBracket: 1,
			wantTax:     "0",
			wantNet:     "7160000",
			description: "deductions exceed income after insurance",
		},
		{
			name:        "capped insurance",
			salary:      "60000000",
			wantGross:   "60000000",
			wantIns:     "5046000", // 3,744,000 + 702,000 + 600,000
			wantTaxable: "43954000",
			wantBracket: 5,
			wantTax:     "7738500", // 43,954,000 × 25% − 3,250,000
			wantNet:     "47215500",
			description: "social and health capped at 46.8M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := fullMonth(tt.salary)
			input.DependentsCount = tt.dependents
			input.FixedAllowances = tt.allowances

			result, err := Calculate(input, vnPolicy())
			require.NoError(t, err, tt.description)

			assertDecimal(t, tt.wantGross, result.GrossIncome, tt.description)
			assertDecimal(t, tt.wantIns, result.TotalEmployeeInsurance, tt.description)
			assertDecimal(t, tt.wantTaxable, result.TaxableIncome, tt.description)
			assert.Equal(t, tt.wantBracket, result.TaxBracketOrder, tt.description)
			assertDecimal(t, tt.wantTax, result.TaxAmount, tt.description)
			assertDecimal(t, tt.wantNet, result.NetIncome, tt.description)
		})
	}
}

func TestCalculate_Proration(t *testing.T) {
	tests := []struct {
		name     string
		salary   string
		standard string
		actual   string
		wantBase string
	}{
		{"full attendance", "30000000", "22", "22", "30000000"},
		{"half month", "10000000", "22", "11", "5000000"},
		{"rounded to currency unit", "7000000", "3", "1", "2333333"},
		{"actual above standard is not clamped", "20000000", "20", "22", "22000000"},
		{"no attendance", "20000000", "20", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := domain.CalculationInput{
				ContractSalary:   d(tt.salary),
				StandardWorkDays: d(tt.standard),
				ActualWorkDays:   d(tt.actual),
			}
			result, err := Calculate(input, vnPolicy())
			require.NoError(t, err)
			assertDecimal(t, tt.wantBase, result.Components[domain.ComponentBaseSalary])
		})
	}
}

func TestCalculate_Overtime(t *testing.T) {
	input := fullMonth("17600000")
	input.OvertimeHours = d("10")

	result, err := Calculate(input, vnPolicy())
	require.NoError(t, err)
	// daily 800,000, hourly 100,000, 10h at 1.5
	assertDecimal(t, "1500000", result.Components[domain.ComponentOvertime])

	policy := vnPolicy()
	policy.OvertimeMultiplier = d("2")
	result, err = Calculate(input, policy)
	require.NoError(t, err)
	assertDecimal(t, "2000000", result.Components[domain.ComponentOvertime])
}

func TestCalculate_GrossDecomposition(t *testing.T) {
	input := domain.CalculationInput{
		ContractSalary:   d("23456789"),
		StandardWorkDays: d("21"),
		ActualWorkDays:   d("19.5"),
		OvertimeHours:    d("7.25"),
		FixedAllowances: map[string]decimal.Decimal{
			"LUNCH":     d("730000"),
			"TRANSPORT": d("500000.4"),
			"PHONE":     d("0"),
		},
		DependentsCount: 2,
		Bonus:           d("1000000.5"),
	}

	for _, scale := range []int32{0, 2} {
		policy := vnPolicy()
		policy.RoundingScale = scale
		result, err := Calculate(input, policy)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, amount := range result.Components {
			sum = sum.Add(amount)
		}
		assert.True(t, sum.Equal(result.GrossIncome), "scale %d: components %s != gross %s", scale, sum, result.GrossIncome)
		assert.Len(t, result.Components, 6)

		net := result.GrossIncome.Sub(result.TotalEmployeeInsurance).Sub(result.TaxAmount)
		assert.True(t, net.Equal(result.NetIncome), "scale %d: net identity", scale)
	}
}

func TestCalculate_InsuranceUsesContractSalary(t *testing.T) {
	input := domain.CalculationInput{
		ContractSalary:   d("20000000"),
		StandardWorkDays: d("20"),
		ActualWorkDays:   d("10"),
		Bonus:            d("5000000"),
	}
	result, err := Calculate(input, vnPolicy())
	require.NoError(t, err)

	social := result.InsuranceContributions[domain.InsuranceSocial]
	assertDecimal(t, "20000000", social.Base)
	assertDecimal(t, "1600000", social.EmployeeAmount)
	assertDecimal(t, "3500000", social.EmployerAmount)
}

func TestCalculate_NegativeNetIsReturned(t *testing.T) {
	input := domain.CalculationInput{
		ContractSalary:   d("10000000"),
		StandardWorkDays: d("22"),
		ActualWorkDays:   d("0"),
	}
	result, err := Calculate(input, vnPolicy())
	require.NoError(t, err)
	assertDecimal(t, "0", result.GrossIncome)
	assertDecimal(t, "0", result.TaxableIncome)
	assertDecimal(t, "0", result.TaxAmount)
	assertDecimal(t, "-1050000", result.NetIncome)
}

func TestCalculate_BracketBoundaryUsesNextBracket(t *testing.T) {
	policy := domain.PolicyConfig{
		TaxBrackets: []domain.TaxBracket{
			{Order: 1, MinIncome: d("0"), MaxIncome: dp("10000000"), TaxRate: d("0.05")},
			{Order: 2, MinIncome: d("10000000"), TaxRate: d("0.10")},
		},
	}
	// no insurance and no deductions, so taxable equals gross
	result, err := Calculate(fullMonth("10000000"), policy)
	require.NoError(t, err)
	assertDecimal(t, "10000000", result.TaxableIncome)
	assert.Equal(t, 2, result.TaxBracketOrder)
	assertDecimal(t, "1000000", result.TaxAmount)

	result, err = Calculate(fullMonth("9999999"), policy)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TaxBracketOrder)
	assertDecimal(t, "500000", result.TaxAmount) // 499,999.95 rounded half up
}

func TestCalculate_Deterministic(t *testing.T) {
	input := fullMonth("45678901")
	input.OvertimeHours = d("3.5")
	input.FixedAllowances = map[string]decimal.Decimal{"LUNCH": d("730000"), "TRANSPORT": d("400000")}
	input.DependentsCount = 1

	first, err := Calculate(input, vnPolicy())
	require.NoError(t, err)
	second, err := Calculate(input, vnPolicy())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestCalculate_DoesNotMutateArguments(t *testing.T) {
	policy := vnPolicy()
	// reverse the bracket slice; Order drives evaluation
	for i, j := 0, len(policy.TaxBrackets)-1; i < j; i, j = i+1, j-1 {
		policy.TaxBrackets[i], policy.TaxBrackets[j] = policy.TaxBrackets[j], policy.TaxBrackets[i]
	}
	input := fullMonth("30000000")
	input.FixedAllowances = map[string]decimal.Decimal{"LUNCH": d("1500000")}

	result, err := Calculate(input, policy)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TaxBracketOrder)

	assert.Equal(t, 7, policy.TaxBrackets[0].Order, "bracket slice must keep caller order")
	assert.Len(t, input.FixedAllowances, 1)
	assertDecimal(t, "1500000", input.FixedAllowances["LUNCH"])
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CalculationInput)
		field  string
	}{
		{"zero standard days", func(in *domain.CalculationInput) { in.StandardWorkDays = decimal.Zero }, "standard_work_days"},
		{"negative standard days", func(in *domain.CalculationInput) { in.StandardWorkDays = d("-1") }, "standard_work_days"},
		{"negative salary", func(in *domain.CalculationInput) { in.ContractSalary = d("-1") }, "contract_salary"},
		{"negative actual days", func(in *domain.CalculationInput) { in.ActualWorkDays = d("-0.5") }, "actual_work_days"},
		{"negative overtime", func(in *domain.CalculationInput) { in.OvertimeHours = d("-2") }, "overtime_hours"},
		{"negative bonus", func(in *domain.CalculationInput) { in.Bonus = d("-100") }, "bonus"},
		{"negative dependents", func(in *domain.CalculationInput) { in.DependentsCount = -1 }, "dependents_count"},
		{"reserved allowance key", func(in *domain.CalculationInput) {
			in.FixedAllowances = map[string]decimal.Decimal{domain.ComponentBonus: d("1")}
		}, "fixed_allowances"},
		{"empty allowance key", func(in *domain.CalculationInput) {
			in.FixedAllowances = map[string]decimal.Decimal{"": d("1")}
		}, "fixed_allowances"},
		{"negative allowance", func(in *domain.CalculationInput) {
			in.FixedAllowances = map[string]decimal.Decimal{"LUNCH": d("-1")}
		}, "fixed_allowances"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := fullMonth("30000000")
			tt.mutate(&input)

			result, err := Calculate(input, vnPolicy())
			require.Error(t, err)
			assert.Nil(t, result, "no partial result on error")
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))

			var inputErr *domain.InvalidInputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestCalculate_InputCheckedBeforePolicy(t *testing.T) {
	input := fullMonth("30000000")
	input.StandardWorkDays = decimal.Zero

	_, err := Calculate(input, domain.PolicyConfig{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCalculate_PolicyErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.PolicyConfig)
		section string
	}{
		{"no brackets", func(p *domain.PolicyConfig) { p.TaxBrackets = nil }, "tax_brackets"},
		{"bounded top bracket", func(p *domain.PolicyConfig) { p.TaxBrackets[6].MaxIncome = dp("100000000") }, "tax_brackets"},
		{"gap between brackets", func(p *domain.PolicyConfig) { p.TaxBrackets[3].MinIncome = d("19000000") }, "tax_brackets"},
		{"negative tax rate", func(p *domain.PolicyConfig) { p.TaxBrackets[0].TaxRate = d("-0.05") }, "tax_brackets"},
		{"unknown insurance type", func(p *domain.PolicyConfig) { p.InsuranceRates[0].Type = "PENSION" }, "insurance_rates"},
		{"duplicate insurance type", func(p *domain.PolicyConfig) { p.InsuranceRates[1].Type = domain.InsuranceSocial }, "insurance_rates"},
		{"negative employee rate", func(p *domain.PolicyConfig) { p.InsuranceRates[2].EmployeeRate = d("-0.01") }, "insurance_rates"},
		{"negative cap", func(p *domain.PolicyConfig) { p.InsuranceRates[2].CapBaseSalary = dp("-1") }, "insurance_rates"},
		{"negative personal deduction", func(p *domain.PolicyConfig) { p.PersonalDeduction = d("-1") }, "personal_deduction"},
		{"negative dependent deduction", func(p *domain.PolicyConfig) { p.DependentDeduction = d("-1") }, "dependent_deduction"},
		{"negative overtime multiplier", func(p *domain.PolicyConfig) { p.OvertimeMultiplier = d("-1.5") }, "overtime_multiplier"},
		{"negative rounding scale", func(p *domain.PolicyConfig) { p.RoundingScale = -1 }, "rounding_scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := vnPolicy()
			tt.mutate(&policy)

			result, err := Calculate(fullMonth("30000000"), policy)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrPolicyConfig))

			var policyErr *domain.PolicyConfigError
			require.True(t, errors.As(err, &policyErr))
			assert.Equal(t, tt.section, policyErr.Section)

			assert.Error(t, ValidatePolicy(policy), "eager validation agrees")
		})
	}
}

func TestValidatePolicy_Valid(t *testing.T) {
	assert.NoError(t, ValidatePolicy(vnPolicy()))
	assert.NoError(t, ValidatePolicy(flatPolicy()))
}
