package calculation

import (
	"github.com/rpgo/payroll-calculator/internal/domain"
	money "github.com/rpgo/payroll-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// HoursPerDay is the standard schedule used to derive the hourly rate
const HoursPerDay = 8

var hoursPerDay = decimal.NewFromInt(HoursPerDay)

// ProrateSalary scales the contract salary by actual over standard work days.
// Actual days above standard days are paid as worked; no clamp is applied.
func ProrateSalary(contractSalary, standardDays, actualDays decimal.Decimal) (decimal.Decimal, error) {
	if !standardDays.IsPositive() {
		return decimal.Zero, domain.NewInvalidInput("standard_work_days", "must be greater than zero, got %s", standardDays)
	}
	return money.NewMoneyFromDecimal(contractSalary).Prorate(actualDays, standardDays).Decimal, nil
}

// DailyRate returns the contract salary per standard work day
func DailyRate(contractSalary, standardDays decimal.Decimal) (decimal.Decimal, error) {
	if !standardDays.IsPositive() {
		return decimal.Zero, domain.NewInvalidInput("standard_work_days", "must be greater than zero, got %s", standardDays)
	}
	return contractSalary.Div(standardDays), nil
}

// OvertimePay pays overtime hours at multiplier × (daily rate / HoursPerDay),
// evaluated as salary × multiplier × hours / (standardDays × HoursPerDay).
func OvertimePay(contractSalary, standardDays, overtimeHours, multiplier decimal.Decimal) (decimal.Decimal, error) {
	if !standardDays.IsPositive() {
		return decimal.Zero, domain.NewInvalidInput("standard_work_days", "must be greater than zero, got %s", standardDays)
	}
	if overtimeHours.IsZero() {
		return decimal.Zero, nil
	}
	return contractSalary.Mul(multiplier).Mul(overtimeHours).Div(standardDays.Mul(hoursPerDay)), nil
}
