package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"agenda/internal/agenda"
	"agenda/internal/config"
	"agenda/internal/exitcode"
	"agenda/internal/ui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd implements the tui command.
type TUICmd struct{}

func (c *TUICmd) Name() string      { return "tui" }
func (c *TUICmd) Aliases() []string { return nil }
func (c *TUICmd) Synopsis() string  { return "Open the interactive terminal UI" }
func (c *TUICmd) Usage() string     { return "agenda tui" }
func (c *TUICmd) NeedsStore() bool  { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	if err := ui.Run(ctx, st); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
