package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Check a run configuration without calculating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			missing := 0
			for _, e := range cfg.Employees {
				if e.Contract == nil {
					missing++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration is valid\n")
			fmt.Fprintf(out, "  Period:    %s\n", cfg.Period)
			fmt.Fprintf(out, "  Policy:    %s (%d brackets, %d insurance schemes)\n", policyLabel(cfg.Policy.Name), len(cfg.Policy.TaxBrackets), len(cfg.Policy.InsuranceRates))
			fmt.Fprintf(out, "  Employees: %d\n", len(cfg.Employees))
			if missing > 0 {
				fmt.Fprintf(out, "  Warning:   %d employee(s) without a contract will be skipped\n", missing)
			}
			return nil
		},
	}
}

func policyLabel(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}
