package main

import (
	"fmt"

	"github.com/rpgo/payroll-calculator/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) newExampleCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example run configuration for the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.parser.CreateExampleConfiguration()
			if path != "" {
				if err := output.SaveConfiguration(cfg, path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "example configuration written to %s\n", path)
				return nil
			}
			data, err := output.MarshalConfiguration(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "write the configuration to this file")
	return cmd
}
