package output

import (
	"encoding/json"

	"github.com/rpgo/payroll-calculator/internal/domain"
)

// JSONFormatter serializes the payroll run as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	return json.MarshalIndent(run, "", "  ")
}
