package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/payroll-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per payslip).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(run *domain.PayrollRun) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"EmployeeID", "EmployeeName", "Period", "GrossIncome", "EmployeeInsurance", "EmployerInsurance", "PersonalDeduction", "DependentDeduction", "TaxableIncome", "TaxBracket", "TaxAmount", "NetIncome", "EmployerCost"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, ps := range run.Payslips {
		r := ps.Result
		if r == nil {
			continue
		}
		row := []string{
			ps.EmployeeID,
			ps.EmployeeName,
			ps.Period.String(),
			FormatAmount(r.GrossIncome, run.Scale),
			FormatAmount(r.TotalEmployeeInsurance, run.Scale),
			FormatAmount(r.TotalEmployerInsurance, run.Scale),
			FormatAmount(r.PersonalDeduction, run.Scale),
			FormatAmount(r.DependentDeduction, run.Scale),
			FormatAmount(r.TaxableIncome, run.Scale),
			intToString(r.TaxBracketOrder),
			FormatAmount(r.TaxAmount, run.Scale),
			FormatAmount(r.NetIncome, run.Scale),
			FormatAmount(r.EmployerCost, run.Scale),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
