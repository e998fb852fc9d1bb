package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/payroll-calculator/internal/config"
)

func main() {
	env, err := config.LoadEnvironment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(env).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
