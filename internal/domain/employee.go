package domain

import (
	"fmt"
	"time"

	"github.com/rpgo/payroll-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Period identifies a monthly pay period
type Period struct {
	Year  int        `yaml:"year" json:"year"`
	Month time.Month `yaml:"month" json:"month"`
}

// ParsePeriod parses a YYYY-MM string
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q, expected YYYY-MM", s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// String renders the period as YYYY-MM
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// IsZero reports whether the period is unset
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Validate checks the month range and a sane year
func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("period month must be between 1 and 12, got %d", p.Month)
	}
	if p.Year < 1900 || p.Year > 9999 {
		return fmt.Errorf("period year out of range: %d", p.Year)
	}
	return nil
}

// WorkingDays counts the Monday-to-Friday days of the period
func (p Period) WorkingDays() int {
	return dateutil.WorkingDaysInMonth(p.Year, p.Month)
}

// MarshalText renders the period as YYYY-MM for YAML and JSON
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses YYYY-MM
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalYAML accepts either "2025-01" or a {year, month} mapping
func (p *Period) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return p.UnmarshalText([]byte(value.Value))
	}

	type Alias struct {
		Year  int `yaml:"year"`
		Month int `yaml:"month"`
	}
	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	p.Year = aux.Year
	p.Month = time.Month(aux.Month)
	return nil
}

// Contract is the employee's position salary and fixed allowances
type Contract struct {
	Salary     decimal.Decimal            `yaml:"salary" json:"salary"`
	Allowances map[string]decimal.Decimal `yaml:"allowances,omitempty" json:"allowances,omitempty"`
}

// Attendance summarises the employee's time records for the period
type Attendance struct {
	StandardWorkDays *decimal.Decimal `yaml:"standard_work_days,omitempty" json:"standard_work_days,omitempty"` // nil derives Mon-Fri days of the period
	ActualWorkDays   decimal.Decimal  `yaml:"actual_work_days" json:"actual_work_days"`
	OvertimeHours    decimal.Decimal  `yaml:"overtime_hours" json:"overtime_hours"`
}

// EmployeeRecord is what the employee and attendance providers supply for one period
type EmployeeRecord struct {
	ID         string          `yaml:"id" json:"id"`
	Name       string          `yaml:"name" json:"name"`
	Contract   *Contract       `yaml:"contract,omitempty" json:"contract,omitempty"`
	Attendance Attendance      `yaml:"attendance" json:"attendance"`
	Bonus      decimal.Decimal `yaml:"bonus" json:"bonus"`
	Dependents int             `yaml:"dependents" json:"dependents"`
}

// CalculationInput assembles the engine input for the given period
func (e *EmployeeRecord) CalculationInput(period Period) (CalculationInput, error) {
	if e.Contract == nil {
		return CalculationInput{}, fmt.Errorf("%w: %s", ErrMissingContract, e.ID)
	}

	standardDays := decimal.NewFromInt(int64(period.WorkingDays()))
	if e.Attendance.StandardWorkDays != nil {
		standardDays = *e.Attendance.StandardWorkDays
	}

	var allowances map[string]decimal.Decimal
	if len(e.Contract.Allowances) > 0 {
		allowances = make(map[string]decimal.Decimal, len(e.Contract.Allowances))
		for k, v := range e.Contract.Allowances {
			allowances[k] = v
		}
	}

	return CalculationInput{
		ContractSalary:   e.Contract.Salary,
		StandardWorkDays: standardDays,
		ActualWorkDays:   e.Attendance.ActualWorkDays,
		OvertimeHours:    e.Attendance.OvertimeHours,
		FixedAllowances:  allowances,
		DependentsCount:  e.Dependents,
		Bonus:            e.Bonus,
	}, nil
}

// Configuration is a complete payroll run file: one period, one policy, many employees
type Configuration struct {
	Period    Period           `yaml:"period" json:"period"`
	Policy    PolicyConfig     `yaml:"policy" json:"policy"`
	Employees []EmployeeRecord `yaml:"employees" json:"employees"`
}
