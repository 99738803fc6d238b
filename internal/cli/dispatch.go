// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"agenda/internal/agenda"
	"agenda/internal/commands"
	"agenda/internal/config"
	"agenda/internal/exitcode"
	"agenda/internal/logging"
)

// StoreFactory builds an uninitialized Store from config.
// Used to inject the storage backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config, log *zap.Logger) (*agenda.Store, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var backendName string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&backendName, "backend", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(errOut, flagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err == nil && backendName != "" {
		cfg.Backend = backendName
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	log := logging.New(errOut, debug)
	defer func() { _ = log.Sync() }()

	if d.factory == nil {
		fmt.Fprintln(errOut, "error: no storage backend configured")
		return exitcode.ConfigError
	}
	st, err := d.factory(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %s\n", err)
		return exitcode.StorageError
	}
	st.Initialize(ctx)

	code := cmd.Run(ctx, cfg, st, positionalArgs, out, errOut)

	// Wait for write-behind persistence before the process exits.
	if err := st.Close(context.WithoutCancel(ctx)); err != nil {
		fmt.Fprintf(errOut, "error: changes not saved: %s\n", err)
		if code == exitcode.Success {
			code = exitcode.StorageError
		}
	}
	return code
}

// flagError turns a flag package error into a user-facing message.
func flagError(err error) string {
	errStr := err.Error()

	// Missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "error: flag needs an argument: " + flagName
	}

	// Unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		return "error: unknown flag: " + flagName
	}

	return "error: " + errStr
}
