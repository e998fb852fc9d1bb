package domain

import (
	"github.com/shopspring/decimal"
)

// Well-known component keys. Allowances use their own keys verbatim.
const (
	ComponentBaseSalary = "BASE_SALARY"
	ComponentOvertime   = "OT_PAY"
	ComponentBonus      = "BONUS"
)

// IsReservedComponent reports whether key collides with an engine-owned component
func IsReservedComponent(key string) bool {
	switch key {
	case ComponentBaseSalary, ComponentOvertime, ComponentBonus:
		return true
	}
	return false
}

// CalculationInput carries one employee's figures for one pay period
type CalculationInput struct {
	ContractSalary   decimal.Decimal            `yaml:"contract_salary" json:"contract_salary"`
	StandardWorkDays decimal.Decimal            `yaml:"standard_work_days" json:"standard_work_days"`
	ActualWorkDays   decimal.Decimal            `yaml:"actual_work_days" json:"actual_work_days"`
	OvertimeHours    decimal.Decimal            `yaml:"overtime_hours" json:"overtime_hours"`
	FixedAllowances  map[string]decimal.Decimal `yaml:"fixed_allowances,omitempty" json:"fixed_allowances,omitempty"` // part of gross, outside the insurance base
	DependentsCount  int                        `yaml:"dependents_count" json:"dependents_count"`
	Bonus            decimal.Decimal            `yaml:"bonus" json:"bonus"` // part of gross, outside the insurance base
}
