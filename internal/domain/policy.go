package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsuranceType identifies a statutory insurance scheme
type InsuranceType string

const (
	InsuranceSocial       InsuranceType = "SOCIAL"
	InsuranceHealth       InsuranceType = "HEALTH"
	InsuranceUnemployment InsuranceType = "UNEMPLOYMENT"
)

// InsuranceTypes lists the supported schemes in display order
var InsuranceTypes = []InsuranceType{InsuranceSocial, InsuranceHealth, InsuranceUnemployment}

// Valid reports whether the type is one of the supported schemes
func (t InsuranceType) Valid() bool {
	switch t {
	case InsuranceSocial, InsuranceHealth, InsuranceUnemployment:
		return true
	}
	return false
}

// DefaultOvertimeMultiplier applies when a policy leaves the multiplier unset
var DefaultOvertimeMultiplier = decimal.RequireFromString("1.5")

// TaxBracket is one row of a quick-deduction progressive tax schedule.
// Income in [MinIncome, MaxIncome) is taxed as income × TaxRate − SubtractAmount.
type TaxBracket struct {
	Order          int              `yaml:"order" json:"order"`
	MinIncome      decimal.Decimal  `yaml:"min_income" json:"min_income"`
	MaxIncome      *decimal.Decimal `yaml:"max_income,omitempty" json:"max_income,omitempty"` // nil for the unbounded top bracket
	TaxRate        decimal.Decimal  `yaml:"tax_rate" json:"tax_rate"`                         // fraction, 0.05 = 5%
	SubtractAmount decimal.Decimal  `yaml:"subtract_amount" json:"subtract_amount"`
}

// Unbounded reports whether the bracket has no upper limit
func (b TaxBracket) Unbounded() bool {
	return b.MaxIncome == nil
}

// Contains reports whether income falls in [MinIncome, MaxIncome)
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.MinIncome) {
		return false
	}
	return b.Unbounded() || income.LessThan(*b.MaxIncome)
}

// InsuranceRate holds employee and employer rates for one scheme
type InsuranceRate struct {
	Type          InsuranceType    `yaml:"type" json:"type"`
	EmployeeRate  decimal.Decimal  `yaml:"employee_rate" json:"employee_rate"`
	EmployerRate  decimal.Decimal  `yaml:"employer_rate" json:"employer_rate"`
	CapBaseSalary *decimal.Decimal `yaml:"cap_base_salary,omitempty" json:"cap_base_salary,omitempty"` // caps the contribution base
}

// PolicyConfig is the tax and insurance policy snapshot for one calculation.
// It is passed by value and never read from shared state.
type PolicyConfig struct {
	Name               string          `yaml:"name,omitempty" json:"name,omitempty"`
	EffectiveFrom      *time.Time      `yaml:"effective_from,omitempty" json:"effective_from,omitempty"`
	TaxBrackets        []TaxBracket    `yaml:"tax_brackets" json:"tax_brackets"`
	InsuranceRates     []InsuranceRate `yaml:"insurance_rates" json:"insurance_rates"`
	PersonalDeduction  decimal.Decimal `yaml:"personal_deduction" json:"personal_deduction"`
	DependentDeduction decimal.Decimal `yaml:"dependent_deduction" json:"dependent_deduction"`
	OvertimeMultiplier decimal.Decimal `yaml:"overtime_multiplier,omitempty" json:"overtime_multiplier,omitempty"` // 0 means DefaultOvertimeMultiplier
	RoundingScale      int32           `yaml:"rounding_scale,omitempty" json:"rounding_scale,omitempty"`           // fraction digits of the currency unit
}

// EffectiveOvertimeMultiplier returns the configured multiplier or the 1.5 default
func (p PolicyConfig) EffectiveOvertimeMultiplier() decimal.Decimal {
	if p.OvertimeMultiplier.IsZero() {
		return DefaultOvertimeMultiplier
	}
	return p.OvertimeMultiplier
}

// Clone returns a deep copy so that later edits to p cannot leak into a running batch
func (p PolicyConfig) Clone() PolicyConfig {
	out := p
	if p.EffectiveFrom != nil {
		t := *p.EffectiveFrom
		out.EffectiveFrom = &t
	}
	if p.TaxBrackets != nil {
		out.TaxBrackets = make([]TaxBracket, len(p.TaxBrackets))
		for i, b := range p.TaxBrackets {
			if b.MaxIncome != nil {
				m := *b.MaxIncome
				b.MaxIncome = &m
			}
			out.TaxBrackets[i] = b
		}
	}
	if p.InsuranceRates != nil {
		out.InsuranceRates = make([]InsuranceRate, len(p.InsuranceRates))
		for i, r := range p.InsuranceRates {
			if r.CapBaseSalary != nil {
				c := *r.CapBaseSalary
				r.CapBaseSalary = &c
			}
			out.InsuranceRates[i] = r
		}
	}
	return out
}
