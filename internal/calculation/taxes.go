package calculation

import (
	"sort"

	"github.com/rpgo/payroll-calculator/internal/domain"
	money "github.com/rpgo/payroll-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TAX SCHEDULE CONVENTIONS:
//
// 1. Brackets use the quick-deduction method: tax = taxable × rate − subtract,
//    valid only inside the bracket's own range.
//
// 2. Ranges are lower-inclusive and upper-exclusive. Income exactly equal to a
//    bracket's MaxIncome is taxed by the next bracket.
//
// 3. Brackets are evaluated in Order. They must start at zero, be contiguous
//    (MaxIncome of one is MinIncome of the next) and end with an unbounded bracket.

// ProgressiveTaxCalculator applies a validated, ordered bracket schedule
type ProgressiveTaxCalculator struct {
	Brackets []domain.TaxBracket
}

// NewProgressiveTaxCalculator validates the schedule and keeps an ordered copy of it
func NewProgressiveTaxCalculator(brackets []domain.TaxBracket) (*ProgressiveTaxCalculator, error) {
	if err := ValidateTaxBrackets(brackets); err != nil {
		return nil, err
	}
	return &ProgressiveTaxCalculator{Brackets: sortedBrackets(brackets)}, nil
}

// FindBracket returns the single bracket with MinIncome <= taxable < MaxIncome
func (ptc *ProgressiveTaxCalculator) FindBracket(taxable decimal.Decimal) (domain.TaxBracket, error) {
	for _, b := range ptc.Brackets {
		if b.Contains(taxable) {
			return b, nil
		}
	}
	return domain.TaxBracket{}, domain.NewPolicyConfigError("tax_brackets", "no bracket matches taxable income %s", taxable)
}

// CalculateTax returns max(0, taxable × rate − subtract) rounded half-up to scale,
// together with the bracket that was applied.
func (ptc *ProgressiveTaxCalculator) CalculateTax(taxable decimal.Decimal, scale int32) (decimal.Decimal, domain.TaxBracket, error) {
	b, err := ptc.FindBracket(taxable)
	if err != nil {
		return decimal.Zero, domain.TaxBracket{}, err
	}
	tax := money.NewMoneyFromDecimal(taxable).
		ApplyRate(b.TaxRate).
		Sub(money.NewMoneyFromDecimal(b.SubtractAmount)).
		FloorZero().
		RoundTo(scale)
	return tax.Decimal, b, nil
}

// ValidateTaxBrackets checks the schedule invariants without modifying the slice
func ValidateTaxBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return domain.NewPolicyConfigError("tax_brackets", "no brackets configured")
	}

	sorted := sortedBrackets(brackets)
	for i, b := range sorted {
		if i > 0 && b.Order == sorted[i-1].Order {
			return domain.NewPolicyConfigError("tax_brackets", "duplicate bracket order %d", b.Order)
		}
		if b.TaxRate.IsNegative() {
			return domain.NewPolicyConfigError("tax_brackets", "bracket %d has negative tax rate %s", b.Order, b.TaxRate)
		}
		if b.SubtractAmount.IsNegative() {
			return domain.NewPolicyConfigError("tax_brackets", "bracket %d has negative subtract amount %s", b.Order, b.SubtractAmount)
		}

		last := i == len(sorted)-1
		if last && !b.Unbounded() {
			return domain.NewPolicyConfigError("tax_brackets", "top bracket %d must have no max income", b.Order)
		}
		if !last && b.Unbounded() {
			return domain.NewPolicyConfigError("tax_brackets", "only the top bracket may be unbounded, bracket %d is not the top", b.Order)
		}
		if !b.Unbounded() && b.MaxIncome.LessThanOrEqual(b.MinIncome) {
			return domain.NewPolicyConfigError("tax_brackets", "bracket %d max income %s must exceed min income %s", b.Order, *b.MaxIncome, b.MinIncome)
		}

		if i == 0 {
			if !b.MinIncome.IsZero() {
				return domain.NewPolicyConfigError("tax_brackets", "first bracket must start at 0, got %s", b.MinIncome)
			}
			continue
		}
		prev := sorted[i-1]
		if b.MinIncome.LessThanOrEqual(prev.MinIncome) {
			return domain.NewPolicyConfigError("tax_brackets", "bracket %d is not ascending by min income", b.Order)
		}
		if !prev.MaxIncome.Equal(b.MinIncome) {
			return domain.NewPolicyConfigError("tax_brackets", "gap or overlap between bracket %d (max %s) and bracket %d (min %s)",
				prev.Order, *prev.MaxIncome, b.Order, b.MinIncome)
		}
	}
	return nil
}

// DeriveSubtractAmounts fills in quick-deduction subtract amounts from the marginal
// rates: sub[i] = sub[i-1] + min[i] × (rate[i] − rate[i-1]). The result is an
// ordered copy; the argument is left untouched.
func DeriveSubtractAmounts(brackets []domain.TaxBracket) ([]domain.TaxBracket, error) {
	out := sortedBrackets(brackets)
	for i := range out {
		if i == 0 {
			out[i].SubtractAmount = decimal.Zero
			continue
		}
		step := out[i].MinIncome.Mul(out[i].TaxRate.Sub(out[i-1].TaxRate))
		out[i].SubtractAmount = out[i-1].SubtractAmount.Add(step)
	}
	if err := ValidateTaxBrackets(out); err != nil {
		return nil, err
	}
	return out, nil
}

// sortedBrackets returns a deep copy ordered by Order
func sortedBrackets(brackets []domain.TaxBracket) []domain.TaxBracket {
	out := (domain.PolicyConfig{TaxBrackets: brackets}).Clone().TaxBrackets
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
