package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/payroll-calculator/internal/calculation"
	"github.com/rpgo/payroll-calculator/internal/config"
	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/rpgo/payroll-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type calculateOptions struct {
	period        string
	salary        string
	standardDays  string
	actualDays    string
	overtimeHours string
	bonus         string
	allowances    []string
	dependents    int
	policyFile    string
	format        string
	locale        string
}

func (a *app) newCalculateCmd() *cobra.Command {
	opts := &calculateOptions{}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate a single payslip from command-line figures",
		Example: `  payroll calculate --salary 30000000 --dependents 1
  payroll calculate --salary 20000000 --period 2025-02 --actual-days 15 --overtime-hours 10 --allowance LUNCH=730000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCalculate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.period, "period", "", "pay period YYYY-MM (default current month)")
	f.StringVar(&opts.salary, "salary", "", "monthly contract salary")
	f.StringVar(&opts.standardDays, "standard-days", "", "standard work days (default Mon-Fri days of the period)")
	f.StringVar(&opts.actualDays, "actual-days", "", "days actually worked (default standard days)")
	f.StringVar(&opts.overtimeHours, "overtime-hours", "0", "overtime hours worked")
	f.StringVar(&opts.bonus, "bonus", "0", "one-off bonus for the period")
	f.StringArrayVar(&opts.allowances, "allowance", nil, "fixed allowance as KEY=AMOUNT (repeatable)")
	f.IntVar(&opts.dependents, "dependents", 0, "number of registered dependents")
	f.StringVar(&opts.policyFile, "policy", "", "policy YAML file (default built-in "+config.DefaultPolicyName+")")
	f.StringVar(&opts.format, "format", a.env.Format, "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	f.StringVar(&opts.locale, "locale", a.env.Locale, "locale for console amounts")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func (a *app) runCalculate(cmd *cobra.Command, opts *calculateOptions) error {
	record, period, err := opts.employeeRecord()
	if err != nil {
		return err
	}

	policy := config.DefaultPolicy()
	custom, err := a.resolvePolicy(opts.policyFile)
	if err != nil {
		return err
	}
	if custom != nil {
		policy = *custom
	}

	input, err := record.CalculationInput(period)
	if err != nil {
		return err
	}
	result, err := calculation.Calculate(input, policy)
	if err != nil {
		return err
	}
	a.logger.Debug("payslip calculated",
		zap.String("period", period.String()),
		zap.String("gross", result.GrossIncome.String()),
		zap.String("net", result.NetIncome.String()),
	)

	run := &domain.PayrollRun{
		RunID:      uuid.New(),
		Period:     period,
		PolicyName: policy.Name,
		Scale:      policy.RoundingScale,
		StartedAt:  time.Now(),
		Payslips: []domain.Payslip{
			{EmployeeID: record.ID, EmployeeName: record.Name, Period: period, Result: result},
		},
	}
	run.CalculateTotals()
	return output.GenerateLocalizedReport(cmd.OutOrStdout(), run, opts.format, opts.locale)
}

// employeeRecord turns the flag values into the record a provider would supply
func (o *calculateOptions) employeeRecord() (domain.EmployeeRecord, domain.Period, error) {
	period := domain.Period{Year: time.Now().Year(), Month: time.Now().Month()}
	if o.period != "" {
		p, err := domain.ParsePeriod(o.period)
		if err != nil {
			return domain.EmployeeRecord{}, domain.Period{}, err
		}
		period = p
	}

	salary, err := parseAmount("salary", o.salary)
	if err != nil {
		return domain.EmployeeRecord{}, period, err
	}
	overtime, err := parseAmount("overtime-hours", o.overtimeHours)
	if err != nil {
		return domain.EmployeeRecord{}, period, err
	}
	bonus, err := parseAmount("bonus", o.bonus)
	if err != nil {
		return domain.EmployeeRecord{}, period, err
	}
	allowances, err := parseAllowances(o.allowances)
	if err != nil {
		return domain.EmployeeRecord{}, period, err
	}

	record := domain.EmployeeRecord{
		ID:         "CLI",
		Name:       "Command line",
		Contract:   &domain.Contract{Salary: salary, Allowances: allowances},
		Bonus:      bonus,
		Dependents: o.dependents,
	}
	record.Attendance.OvertimeHours = overtime

	standard := decimal.NewFromInt(int64(period.WorkingDays()))
	if o.standardDays != "" {
		standard, err = parseAmount("standard-days", o.standardDays)
		if err != nil {
			return domain.EmployeeRecord{}, period, err
		}
		record.Attendance.StandardWorkDays = &standard
	}
	record.Attendance.ActualWorkDays = standard
	if o.actualDays != "" {
		record.Attendance.ActualWorkDays, err = parseAmount("actual-days", o.actualDays)
		if err != nil {
			return domain.EmployeeRecord{}, period, err
		}
	}
	return record, period, nil
}

func parseAmount(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return d, nil
}

// parseAllowances reads repeated KEY=AMOUNT values
func parseAllowances(values []string) (map[string]decimal.Decimal, error) {
	if len(values) == 0 {
		return nil, nil
	}
	allowances := make(map[string]decimal.Decimal, len(values))
	for _, v := range values {
		key, amount, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --allowance %q, expected KEY=AMOUNT", v)
		}
		key = strings.TrimSpace(key)
		if _, dup := allowances[key]; dup {
			return nil, fmt.Errorf("allowance %s given more than once", key)
		}
		d, err := parseAmount("allowance", amount)
		if err != nil {
			return nil, err
		}
		allowances[key] = d
	}
	return allowances, nil
}
