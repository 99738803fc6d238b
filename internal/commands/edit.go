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
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change the text of a task" }
func (c *EditCmd) Usage() string     { return "agenda edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	ref, err := ParseTaskRef(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	text := strings.Join(args[1:], " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	task, err := resolveTask(ctx, st, ref)
	if err != nil {
		fmt.Fprintln(errOut, taskError(err, ref))
		return exitcode.UserError
	}
	st.EditTaskText(ctx, task.ID, text)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
