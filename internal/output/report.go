package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/payroll-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for format names with no registered formatter
var ErrUnsupportedFormat = errors.New("unsupported format")

func unsupportedFormat(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport writes the run to w in the named format using the default locale.
func GenerateReport(w io.Writer, run *domain.PayrollRun, format string) error {
	return GenerateLocalizedReport(w, run, format, "")
}

// GenerateLocalizedReport writes the run to w; locale only affects the console format.
func GenerateLocalizedReport(w io.Writer, run *domain.PayrollRun, format, locale string) error {
	if run == nil {
		return fmt.Errorf("no payroll run to report")
	}
	f, err := NewFormatter(format, locale)
	if err != nil {
		return err
	}
	data, err := f.Format(run)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return nil
}

// SaveConfiguration writes a run configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := MarshalConfiguration(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// MarshalConfiguration renders a run configuration as YAML.
func MarshalConfiguration(config *domain.Configuration) ([]byte, error) {
	b, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return b, nil
}
