package output_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	stddec "github.com/shopspring/decimal"

	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/rpgo/payroll-calculator/internal/output"
)

func TestSaveConfiguration(t *testing.T) {
	std := stddec.NewFromInt(22)
	cfg := &domain.Configuration{
		Period: domain.Period{Year: 2025, Month: time.March},
		Policy: domain.PolicyConfig{Name: "flat", TaxBrackets: []domain.TaxBracket{{Order: 1, TaxRate: stddec.RequireFromString("0.05")}}},
		Employees: []domain.EmployeeRecord{
			{ID: "E-1", Name: "A", Contract: &domain.Contract{Salary: stddec.NewFromInt(30000000)}, Attendance: domain.Attendance{StandardWorkDays: &std, ActualWorkDays: std}},
		},
	}
	path := filepath.Join(t.TempDir(), "payroll.yaml")
	if err := output.SaveConfiguration(cfg, path); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	for _, want := range []string{"2025-03", "name: flat", "id: E-1", "salary:"} {
		if !strings.Contains(content, want) {
			t.Errorf("saved configuration missing %q:\n%s", want, content)
		}
	}
}

func TestGenerateReport(t *testing.T) {
	run := &domain.PayrollRun{Period: domain.Period{Year: 2025, Month: time.January}}
	run.CalculateTotals()

	for _, format := range []string{"json", "csv", "detailed-csv", "console"} {
		var buf bytes.Buffer
		if err := output.GenerateReport(&buf, run, format); err != nil {
			t.Fatalf("GenerateReport %s error: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("GenerateReport %s wrote nothing", format)
		}
	}
}

func TestGenerateReport_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := output.GenerateReport(&buf, &domain.PayrollRun{}, "xlsx")
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "detailed-csv") {
		t.Fatalf("error should list available formats: %v", err)
	}
}

func TestWriteFormatted(t *testing.T) {
	run := &domain.PayrollRun{Period: domain.Period{Year: 2025, Month: time.January}}
	dir := t.TempDir()
	name, err := output.WriteFormatted(output.JSONFormatter{}, run, dir, "json")
	if err != nil {
		t.Fatalf("WriteFormatted error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(name), "payroll_2025-01_") || filepath.Ext(name) != ".json" {
		t.Fatalf("unexpected filename %s", name)
	}
	if _, err := os.Stat(name); err != nil {
		t.Fatalf("file not written: %v", err)
	}
}
