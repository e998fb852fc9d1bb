package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders one payslip per employee followed by the run totals.
type ConsoleFormatter struct {
	Locale string // BCP 47 tag for thousands grouping; empty means DefaultLocale
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	mf, err := NewMoneyFormatter(c.Locale, run.Scale)
	if err != nil {
		return nil, err
	}
	line := func(buf *bytes.Buffer, indent int, label string, amount decimal.Decimal) {
		fmt.Fprintf(buf, "%s%-*s %18s\n", strings.Repeat(" ", indent), 32-indent, label, mf.Format(amount))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PAYROLL RUN %s\n", run.Period)
	fmt.Fprintln(&buf, "==================================================")
	if run.PolicyName != "" {
		fmt.Fprintf(&buf, "Policy: %s\n", run.PolicyName)
	}
	fmt.Fprintf(&buf, "Run ID: %s\n", run.RunID)
	fmt.Fprintln(&buf)

	for _, ps := range run.Payslips {
		r := ps.Result
		if r == nil {
			continue
		}
		fmt.Fprintf(&buf, "%s  %s\n", ps.EmployeeID, ps.EmployeeName)
		fmt.Fprintln(&buf, "  Earnings")
		for _, key := range r.ComponentKeys() {
			line(&buf, 4, key, r.Components[key])
		}
		line(&buf, 2, "Gross income", r.GrossIncome)

		if keys := r.InsuranceKeys(); len(keys) > 0 {
			fmt.Fprintln(&buf, "  Insurance (employee share)")
			for _, t := range keys {
				line(&buf, 4, string(t), r.InsuranceContributions[t].EmployeeAmount)
			}
			line(&buf, 2, "Total insurance", r.TotalEmployeeInsurance)
		}

		line(&buf, 2, "Personal deduction", r.PersonalDeduction)
		line(&buf, 2, "Dependent deduction", r.DependentDeduction)
		line(&buf, 2, "Taxable income", r.TaxableIncome)
		line(&buf, 2, fmt.Sprintf("Income tax (bracket %d)", r.TaxBracketOrder), r.TaxAmount)
		line(&buf, 2, "NET INCOME", r.NetIncome)
		if r.NetIncome.IsNegative() {
			fmt.Fprintln(&buf, "  WARNING: deductions exceed gross income")
		}
		line(&buf, 2, "Employer insurance", r.TotalEmployerInsurance)
		fmt.Fprintln(&buf, "--------------------------------------------------")
	}

	if len(run.Failures) > 0 {
		fmt.Fprintf(&buf, "SKIPPED (%d)\n", len(run.Failures))
		for _, f := range run.Failures {
			fmt.Fprintf(&buf, "  %s: %s\n", f.EmployeeID, f.Message)
		}
		fmt.Fprintln(&buf)
	}

	t := run.Totals
	fmt.Fprintf(&buf, "TOTALS (%d employees)\n", t.Headcount)
	line(&buf, 2, "Gross income", t.GrossIncome)
	line(&buf, 2, "Employee insurance", t.EmployeeInsurance)
	line(&buf, 2, "Income tax", t.TaxAmount)
	line(&buf, 2, "Net income", t.NetIncome)
	line(&buf, 2, "Employer insurance", t.EmployerInsurance)
	line(&buf, 2, "Employer cost", t.EmployerCost)
	return buf.Bytes(), nil
}
