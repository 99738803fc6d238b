// Package main is the entry point for the agenda CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"agenda/internal/agenda"
	"agenda/internal/backend"
	"agenda/internal/cli"
	"agenda/internal/commands"
	"agenda/internal/config"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	// Create store factory
	factory := func(ctx context.Context, cfg *config.Config, log *zap.Logger) (*agenda.Store, error) {
		st, err := backend.Open(cfg, log)
		if err != nil {
			return nil, err
		}
		opts := []agenda.Option{agenda.WithLogger(log)}
		if cfg.WriteMode == config.WriteAsync {
			opts = append(opts, agenda.WithWriteBehind())
		}
		return agenda.New(st, opts...), nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
