package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"agenda/internal/agenda"
	"agenda/internal/config"
	"agenda/internal/exitcode"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task done or not done" }
func (c *ToggleCmd) Usage() string     { return "agenda toggle <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}
	ref, err := ParseTaskRef(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := resolveTask(ctx, st, ref)
	if err != nil {
		fmt.Fprintln(errOut, taskError(err, ref))
		return exitcode.UserError
	}
	st.ToggleTask(ctx, task.ID)

	if !cfg.Quiet {
		if task.Completed {
			fmt.Fprintln(out, "ok: reopened")
		} else {
			fmt.Fprintln(out, "ok: done")
		}
	}
	return exitcode.Success
}
