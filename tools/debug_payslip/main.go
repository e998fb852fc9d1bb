package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rpgo/payroll-calculator/internal/calculation"
	"github.com/rpgo/payroll-calculator/internal/config"
	"github.com/shopspring/decimal"
)

// debug_payslip prints every intermediate figure of a run as CSV, plus a running
// net total, for checking a configuration by hand.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_payslip <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	run, err := calculation.NewPayrollRunner().Run(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	std := cfg.Period.WorkingDays()
	fmt.Printf("Period %s, policy %s, %d weekdays\n", run.Period, run.PolicyName, std)
	fmt.Println("Index,Employee,Components,Gross,EmployeeIns,EmployerIns,Deductions,Taxable,Bracket,Tax,Net")

	cum := decimal.Zero
	for idx, ps := range run.Payslips {
		r := ps.Result
		components := ""
		for i, k := range r.ComponentKeys() {
			if i > 0 {
				components += " "
			}
			components += k + "=" + r.Components[k].StringFixed(run.Scale)
		}
		fmt.Printf("%d,%s,%s,%s,%s,%s,%s,%s,%d,%s,%s\n",
			idx, ps.EmployeeID, components,
			r.GrossIncome.StringFixed(run.Scale),
			r.TotalEmployeeInsurance.StringFixed(run.Scale),
			r.TotalEmployerInsurance.StringFixed(run.Scale),
			r.PersonalDeduction.Add(r.DependentDeduction).StringFixed(run.Scale),
			r.TaxableIncome.StringFixed(run.Scale),
			r.TaxBracketOrder,
			r.TaxAmount.StringFixed(run.Scale),
			r.NetIncome.StringFixed(run.Scale),
		)
		cum = cum.Add(r.NetIncome)
		fmt.Printf("Cumulative net after %s: %s\n", ps.EmployeeID, cum.StringFixed(run.Scale))
	}

	for _, f := range run.Failures {
		fmt.Printf("Skipped %s: %s\n", f.EmployeeID, f.Message)
	}
}
