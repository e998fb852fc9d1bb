package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/payroll-calculator/internal/calculation"
	"github.com/rpgo/payroll-calculator/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runOptions struct {
	format      string
	output      string
	outputDir   string
	concurrency int
	failFast    bool
	policyFile  string
	locale      string
}

func (a *app) newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Calculate every employee of a pay period",
		Long: `Loads a period, a policy and a list of employees from YAML and calculates all
payslips against one policy snapshot. Employees that cannot be calculated are
reported and skipped unless --fail-fast is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPayroll(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", a.env.Format, "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	f.StringVarP(&opts.output, "output", "o", "", "write the report to this file instead of stdout")
	f.StringVar(&opts.outputDir, "output-dir", "", "write a timestamped report into this directory")
	f.IntVar(&opts.concurrency, "concurrency", a.env.Concurrency, "employees calculated in parallel")
	f.BoolVar(&opts.failFast, "fail-fast", false, "abort on the first employee that cannot be calculated")
	f.StringVar(&opts.policyFile, "policy", "", "policy YAML file overriding the one in the configuration")
	f.StringVar(&opts.locale, "locale", a.env.Locale, "locale for console amounts")
	cmd.MarkFlagsMutuallyExclusive("output", "output-dir")
	return cmd
}

func (a *app) runPayroll(cmd *cobra.Command, file string, opts *runOptions) error {
	cfg, err := a.parser.LoadFromFile(file)
	if err != nil {
		return err
	}
	policy, err := a.resolvePolicy(opts.policyFile)
	if err != nil {
		return err
	}
	if policy != nil {
		cfg.Policy = *policy
	}

	runner := calculation.NewPayrollRunner()
	runner.Concurrency = opts.concurrency
	runner.FailFast = opts.failFast
	runner.SetLogger(a.logger.Sugar())

	run, err := runner.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	a.logger.Info("payroll run complete",
		zap.String("run_id", run.RunID.String()),
		zap.Int("payslips", len(run.Payslips)),
		zap.Int("skipped", len(run.Failures)),
		zap.String("net_total", run.Totals.NetIncome.String()),
	)

	if opts.outputDir != "" {
		f, err := output.NewFormatter(opts.format, opts.locale)
		if err != nil {
			return err
		}
		name, err := output.WriteFormatted(f, run, opts.outputDir, output.FileExtension(opts.format))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", name)
		return nil
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		out, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
		w = out
	}
	return output.GenerateLocalizedReport(w, run, opts.format, opts.locale)
}
