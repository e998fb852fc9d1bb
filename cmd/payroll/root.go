package main

import (
	"fmt"

	"github.com/rpgo/payroll-calculator/internal/config"
	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand shares
type app struct {
	env    *config.Environment
	parser *config.InputParser
	logger *zap.Logger
}

func newRootCmd(env *config.Environment) *cobra.Command {
	if env == nil {
		env = &config.Environment{LogLevel: "info", Concurrency: 10, Format: "console", Locale: "vi"}
	}
	a := &app{env: env, parser: config.NewInputParser(), logger: zap.NewNop()}

	var logLevel string
	root := &cobra.Command{
		Use:          "payroll",
		Short:        "Gross-to-net payroll calculator",
		Long:         "Calculates prorated salary, overtime, statutory insurance and progressive income tax for one employee or a whole pay period.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		a.newCalculateCmd(),
		a.newRunCmd(),
		a.newValidateCmd(),
		a.newExampleCmd(),
	)
	return root
}

// newLogger builds the development-style zap logger used by every command. Logs go
// to stderr so that reports on stdout stay machine-readable.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// resolvePolicy loads the policy file named by the flag, or by PAYROLL_POLICY_FILE.
// It returns nil when neither is set.
func (a *app) resolvePolicy(path string) (*domain.PolicyConfig, error) {
	if path == "" {
		path = a.env.PolicyFile
	}
	if path == "" {
		return nil, nil
	}
	policy, err := a.parser.LoadPolicyFromFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("policy loaded", zap.String("file", path), zap.String("name", policy.Name))
	return policy, nil
}
