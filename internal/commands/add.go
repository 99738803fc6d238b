package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"agenda/internal/agenda"
	"agenda/internal/config"
	"agenda/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task to the active agenda" }
func (c *AddCmd) Usage() string     { return "agenda add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	if _, ok := st.AddTask(ctx, text); !ok {
		fmt.Fprintln(errOut, "error: no active agenda")
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
