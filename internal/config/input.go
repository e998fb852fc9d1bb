package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rpgo/payroll-calculator/internal/calculation"
	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of payroll run and policy files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a payroll run (period, policy, employees) from a YAML file.
// A run file without tax brackets gets DefaultPolicy.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(config.Policy.TaxBrackets) == 0 && len(config.Policy.InsuranceRates) == 0 {
		config.Policy = DefaultPolicy()
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadPolicyFromFile loads a standalone policy file
func (ip *InputParser) LoadPolicyFromFile(filename string) (*domain.PolicyConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var policy domain.PolicyConfig
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := calculation.ValidatePolicy(policy); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}

	return &policy, nil
}

// ValidateConfiguration validates the loaded configuration. Per-employee figures are
// left to the calculation so that one bad record is skipped rather than failing the file.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Period.Validate(); err != nil {
		return fmt.Errorf("period validation failed: %w", err)
	}

	if err := calculation.ValidatePolicy(config.Policy); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}

	if len(config.Employees) == 0 {
		return fmt.Errorf("no employees provided")
	}

	seen := make(map[string]bool, len(config.Employees))
	for i := range config.Employees {
		employee := &config.Employees[i]
		if err := ip.validateEmployee(employee); err != nil {
			return fmt.Errorf("employee %d (%s) validation failed: %w", i, employee.ID, err)
		}
		if seen[employee.ID] {
			return fmt.Errorf("duplicate employee id %s", employee.ID)
		}
		seen[employee.ID] = true
	}

	return nil
}

// validateEmployee checks the identity fields of one record
func (ip *InputParser) validateEmployee(employee *domain.EmployeeRecord) error {
	if employee.ID == "" {
		return fmt.Errorf("employee id is required")
	}
	if employee.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	return nil
}

// CreateExampleConfiguration creates an example run for the current month
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	now := time.Now()
	fullMonth := decimal.NewFromInt(22)

	return &domain.Configuration{
		Period: domain.Period{Year: now.Year(), Month: now.Month()},
		Policy: DefaultPolicy(),
		Employees: []domain.EmployeeRecord{
			{
				ID:   "EMP-001",
				Name: "Nguyen Van An",
				Contract: &domain.Contract{
					Salary: decimal.NewFromInt(30000000),
					Allowances: map[string]decimal.Decimal{
						"LUNCH": decimal.NewFromInt(1500000),
					},
				},
				Attendance: domain.Attendance{
					StandardWorkDays: &fullMonth,
					ActualWorkDays:   fullMonth,
				},
			},
			{
				ID:   "EMP-002",
				Name: "Tran Thi Binh",
				Contract: &domain.Contract{
					Salary: decimal.NewFromInt(18000000),
					Allowances: map[string]decimal.Decimal{
						"LUNCH":     decimal.NewFromInt(730000),
						"TRANSPORT": decimal.NewFromInt(500000),
					},
				},
				Attendance: domain.Attendance{
					StandardWorkDays: &fullMonth,
					ActualWorkDays:   decimal.NewFromInt(20),
					OvertimeHours:    decimal.NewFromInt(12),
				},
				Bonus:      decimal.NewFromInt(2000000),
				Dependents: 2,
			},
			{
				ID:   "EMP-003",
				Name: "Le Hoang Cuong",
				Contract: &domain.Contract{
					Salary: decimal.NewFromInt(65000000),
				},
				Attendance: domain.Attendance{
					StandardWorkDays: &fullMonth,
					ActualWorkDays:   fullMonth,
				},
				Dependents: 1,
			},
		},
	}
}
