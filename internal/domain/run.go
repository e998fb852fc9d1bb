package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payslip is one employee's calculated result for a period
type Payslip struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	Period       Period         `json:"period"`
	Result       *PayrollResult `json:"result"`
}

// RunFailure records an employee that was skipped during a batch run
type RunFailure struct {
	EmployeeID string `json:"employee_id"`
	Err        error  `json:"-"`
	Message    string `json:"error"`
}

// RunTotals aggregates the successful payslips of a run
type RunTotals struct {
	Headcount         int             `json:"headcount"`
	GrossIncome       decimal.Decimal `json:"gross_income"`
	EmployeeInsurance decimal.Decimal `json:"employee_insurance"`
	EmployerInsurance decimal.Decimal `json:"employer_insurance"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	NetIncome         decimal.Decimal `json:"net_income"`
	EmployerCost      decimal.Decimal `json:"employer_cost"`
}

// PayrollRun is the outcome of calculating a whole period
type PayrollRun struct {
	RunID      uuid.UUID    `json:"run_id"`
	Period     Period       `json:"period"`
	PolicyName string       `json:"policy_name,omitempty"`
	Scale      int32        `json:"rounding_scale"` // fraction digits of every amount in the run
	StartedAt  time.Time    `json:"started_at"`
	Payslips   []Payslip    `json:"payslips"`
	Failures   []RunFailure `json:"failures,omitempty"`
	Totals     RunTotals    `json:"totals"`
}

// CalculateTotals sums the payslips into Totals and returns them
func (r *PayrollRun) CalculateTotals() RunTotals {
	totals := RunTotals{}
	for _, ps := range r.Payslips {
		if ps.Result == nil {
			continue
		}
		totals.Headcount++
		totals.GrossIncome = totals.GrossIncome.Add(ps.Result.GrossIncome)
		totals.EmployeeInsurance = totals.EmployeeInsurance.Add(ps.Result.TotalEmployeeInsurance)
		totals.EmployerInsurance = totals.EmployerInsurance.Add(ps.Result.TotalEmployerInsurance)
		totals.TaxAmount = totals.TaxAmount.Add(ps.Result.TaxAmount)
		totals.NetIncome = totals.NetIncome.Add(ps.Result.NetIncome)
		totals.EmployerCost = totals.EmployerCost.Add(ps.Result.EmployerCost)
	}
	r.Totals = totals
	return totals
}

// HasFailures reports whether any employee was skipped
func (r *PayrollRun) HasFailures() bool {
	return len(r.Failures) > 0
}
