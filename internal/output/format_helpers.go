package output

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale is configured
const DefaultLocale = "en"

// MoneyFormatter renders amounts with the grouping and decimal separators of a locale.
type MoneyFormatter struct {
	Scale   int32
	printer *message.Printer
}

// NewMoneyFormatter builds a formatter for a BCP 47 locale such as "vi" or "en-US".
func NewMoneyFormatter(locale string, scale int32) (MoneyFormatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return MoneyFormatter{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return MoneyFormatter{Scale: scale, printer: message.NewPrinter(tag)}, nil
}

// Format rounds half-up to Scale and groups thousands, e.g. 31,500,000 in "en".
func (mf MoneyFormatter) Format(amount decimal.Decimal) string {
	p := mf.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	rounded := amount.Round(mf.Scale)
	if mf.Scale <= 0 {
		return p.Sprintf("%d", rounded.IntPart())
	}
	return p.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(int(mf.Scale))))
}

// FormatAmount renders an amount with exactly scale fraction digits and no grouping,
// the form used in machine-readable outputs.
func FormatAmount(amount decimal.Decimal, scale int32) string {
	if scale < 0 {
		scale = 0
	}
	return amount.StringFixed(scale)
}

func intToString(v int) string { return strconv.Itoa(v) }
