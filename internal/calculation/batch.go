package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpgo/payroll-calculator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of employees calculated at once
const DefaultConcurrency = 10

// PayrollRunner calculates every employee of a period against one policy snapshot
type PayrollRunner struct {
	Concurrency int  // <= 0 means DefaultConcurrency
	FailFast    bool // abort on the first employee failure instead of skipping it
	Logger      Logger
}

// NewPayrollRunner creates a runner with default concurrency that skips failing employees
func NewPayrollRunner() *PayrollRunner {
	return &PayrollRunner{
		Concurrency: DefaultConcurrency,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the runner. If nil is provided, a no-op logger is used.
func (r *PayrollRunner) SetLogger(l Logger) {
	if l == nil {
		r.Logger = NopLogger{}
		return
	}
	r.Logger = l
}

func (r *PayrollRunner) logger() Logger {
	if r.Logger == nil {
		return NopLogger{}
	}
	return r.Logger
}

// Run calculates all employees of cfg in parallel. Payslips and failures keep the
// order of cfg.Employees. An employee that cannot be calculated is logged and
// recorded in Failures unless FailFast is set, in which case the run is aborted.
func (r *PayrollRunner) Run(ctx context.Context, cfg *domain.Configuration) (*domain.PayrollRun, error) {
	if cfg == nil {
		return nil, errors.New("configuration is nil")
	}

	// Every employee sees the same snapshot, whatever happens to cfg.Policy meanwhile
	policy := cfg.Policy.Clone()
	period := cfg.Period

	run := &domain.PayrollRun{
		RunID:      runIDFunc(),
		Period:     period,
		PolicyName: policy.Name,
		Scale:      policy.RoundingScale,
		StartedAt:  nowFunc(),
	}
	log := r.logger()
	log.Infof("payroll run %s: %d employees for %s", run.RunID, len(cfg.Employees), period)

	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	payslips := make([]*domain.Payslip, len(cfg.Employees))
	failures := make([]*domain.RunFailure, len(cfg.Employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range cfg.Employees {
		if gctx.Err() != nil {
			break
		}
		i := i
		employee := cfg.Employees[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := calculateEmployee(employee, period, policy)
			if err != nil {
				log.Warnf("skipping employee %s: %v", employee.ID, err)
				failures[i] = &domain.RunFailure{EmployeeID: employee.ID, Err: err, Message: err.Error()}
				if r.FailFast {
					return fmt.Errorf("employee %s: %w", employee.ID, err)
				}
				return nil
			}
			log.Debugf("employee %s: gross %s net %s", employee.ID, result.GrossIncome, result.NetIncome)
			payslips[i] = &domain.Payslip{
				EmployeeID:   employee.ID,
				EmployeeName: employee.Name,
				Period:       period,
				Result:       result,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf("payroll run %s aborted: %v", run.RunID, err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := range cfg.Employees {
		if payslips[i] != nil {
			run.Payslips = append(run.Payslips, *payslips[i])
		}
		if failures[i] != nil {
			run.Failures = append(run.Failures, *failures[i])
		}
	}
	run.CalculateTotals()

	log.Infof("payroll run %s finished: %d calculated, %d skipped, net total %s",
		run.RunID, run.Totals.Headcount, len(run.Failures), run.Totals.NetIncome)
	return run, nil
}

func calculateEmployee(employee domain.EmployeeRecord, period domain.Period, policy domain.PolicyConfig) (*domain.PayrollResult, error) {
	input, err := employee.CalculationInput(period)
	if err != nil {
		return nil, err
	}
	return Calculate(input, policy)
}
