package config

import (
	"time"

	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultPolicyName identifies the built-in schedule
const DefaultPolicyName = "VN-2024"

func ptr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultPolicy returns the Vietnamese monthly personal income tax schedule and
// statutory insurance rates in force from July 2024. A fresh value is built on every
// call so callers may modify it freely.
func DefaultPolicy() domain.PolicyConfig {
	effective := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	return domain.PolicyConfig{
		Name:          DefaultPolicyName,
		EffectiveFrom: &effective,
		TaxBrackets: []domain.TaxBracket{
			{Order: 1, MinIncome: decimal.Zero, MaxIncome: ptr(5000000), TaxRate: decimal.RequireFromString("0.05"), SubtractAmount: decimal.Zero},
			{Order: 2, MinIncome: decimal.NewFromInt(5000000), MaxIncome: ptr(10000000), TaxRate: decimal.RequireFromString("0.10"), SubtractAmount: decimal.NewFromInt(250000)},
			{Order: 3, MinIncome: decimal.NewFromInt(10000000), MaxIncome: ptr(18000000), TaxRate: decimal.RequireFromString("0.15"), SubtractAmount: decimal.NewFromInt(750000)},
			{Order: 4, MinIncome: decimal.NewFromInt(18000000), MaxIncome: ptr(32000000), TaxRate: decimal.RequireFromString("0.20"), SubtractAmount: decimal.NewFromInt(1650000)},
			{Order: 5, MinIncome: decimal.NewFromInt(32000000), MaxIncome: ptr(52000000), TaxRate: decimal.RequireFromString("0.25"), SubtractAmount: decimal.NewFromInt(3250000)},
			{Order: 6, MinIncome: decimal.NewFromInt(52000000), MaxIncome: ptr(80000000), TaxRate: decimal.RequireFromString("0.30"), SubtractAmount: decimal.NewFromInt(5850000)},
			{Order: 7, MinIncome: decimal.NewFromInt(80000000), TaxRate: decimal.RequireFromString("0.35"), SubtractAmount: decimal.NewFromInt(9850000)},
		},
		InsuranceRates: []domain.InsuranceRate{
			// caps are 20 × the base salary (2,340,000) and 20 × the region I minimum wage (4,960,000)
			{Type: domain.InsuranceSocial, EmployeeRate: decimal.RequireFromString("0.08"), EmployerRate: decimal.RequireFromString("0.175"), CapBaseSalary: ptr(46800000)},
			{Type: domain.InsuranceHealth, EmployeeRate: decimal.RequireFromString("0.015"), EmployerRate: decimal.RequireFromString("0.03"), CapBaseSalary: ptr(46800000)},
			{Type: domain.InsuranceUnemployment, EmployeeRate: decimal.RequireFromString("0.01"), EmployerRate: decimal.RequireFromString("0.01"), CapBaseSalary: ptr(99200000)},
		},
		PersonalDeduction:  decimal.NewFromInt(11000000),
		DependentDeduction: decimal.NewFromInt(4400000),
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
	}
}
