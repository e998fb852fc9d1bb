package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Detailed CSV sections
const (
	SectionEarning           = "EARNING"
	SectionGross             = "GROSS"
	SectionEmployeeInsurance = "EMPLOYEE_INSURANCE"
	SectionEmployerInsurance = "EMPLOYER_INSURANCE"
	SectionDeduction         = "DEDUCTION"
	SectionTaxable           = "TAXABLE"
	SectionTax               = "TAX"
	SectionNet               = "NET"
)

// CSVDetailedExporter writes one row per payslip line so that exports can address
// each component, insurance scheme and deduction without re-deriving it.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(run *domain.PayrollRun) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"EmployeeID", "Period", "Section", "Item", "Base", "Amount"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, ps := range run.Payslips {
		r := ps.Result
		if r == nil {
			continue
		}
		row := func(section, item string, base *decimal.Decimal, amount decimal.Decimal) error {
			b := ""
			if base != nil {
				b = FormatAmount(*base, run.Scale)
			}
			return w.Write([]string{ps.EmployeeID, ps.Period.String(), section, item, b, FormatAmount(amount, run.Scale)})
		}

		for _, key := range r.ComponentKeys() {
			if err := row(SectionEarning, key, nil, r.Components[key]); err != nil {
				return nil, err
			}
		}
		if err := row(SectionGross, "GROSS_INCOME", nil, r.GrossIncome); err != nil {
			return nil, err
		}
		for _, t := range r.InsuranceKeys() {
			ic := r.InsuranceContributions[t]
			if err := row(SectionEmployeeInsurance, string(t), &ic.Base, ic.EmployeeAmount); err != nil {
				return nil, err
			}
			if err := row(SectionEmployerInsurance, string(t), &ic.Base, ic.EmployerAmount); err != nil {
				return nil, err
			}
		}
		if err := row(SectionDeduction, "PERSONAL", nil, r.PersonalDeduction); err != nil {
			return nil, err
		}
		if err := row(SectionDeduction, "DEPENDENT", nil, r.DependentDeduction); err != nil {
			return nil, err
		}
		if err := row(SectionTaxable, "TAXABLE_INCOME", nil, r.TaxableIncome); err != nil {
			return nil, err
		}
		if err := row(SectionTax, "BRACKET_"+intToString(r.TaxBracketOrder), &r.TaxableIncome, r.TaxAmount); err != nil {
			return nil, err
		}
		if err := row(SectionNet, "NET_INCOME", nil, r.NetIncome); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
