package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/payroll-calculator/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(run *domain.PayrollRun) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.PayrollRun) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.PayrollRun) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                { return ff.ID }

// WriteFormatted runs a formatter and writes output to a period-stamped file in dir.
func WriteFormatted(f Formatter, run *domain.PayrollRun, dir, ext string) (string, error) {
	data, err := f.Format(run)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("payroll_%s_%s.%s", run.Period, time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// NewFormatter returns the named formatter configured for locale. Only the console
// formatter is locale-aware; machine-readable formats ignore it.
func NewFormatter(name, locale string) (Formatter, error) {
	f := GetFormatterByName(name)
	if f == nil {
		return nil, unsupportedFormat(name)
	}
	if _, ok := f.(ConsoleFormatter); ok {
		if _, err := NewMoneyFormatter(locale, 0); err != nil {
			return nil, err
		}
		return ConsoleFormatter{Locale: locale}, nil
	}
	return f, nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":         "console",
	"payslip":      "console",
	"csv-detailed": "detailed-csv",
	"csv-summary":  "csv",
	"json-pretty":  "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileExtension returns the extension used when a format is written to disk.
func FileExtension(format string) string {
	switch NormalizeFormatName(format) {
	case "json":
		return "json"
	case "csv", "detailed-csv":
		return "csv"
	default:
		return "txt"
	}
}
