package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"agenda/internal/agenda"
	"agenda/internal/config"
	"agenda/internal/exitcode"
	"agenda/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `agenda` (no args) and `agenda list <agenda>`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "agenda list [<agenda>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	var a agenda.Agenda
	if len(args) == 0 {
		active, ok := st.Active()
		if !ok {
			fmt.Fprintln(errOut, "error: no active agenda")
			return exitcode.UserError
		}
		a = active
	} else {
		// Viewing another agenda does not select it.
		found, err := resolveAgenda(st, args)
		if err != nil {
			fmt.Fprintln(errOut, agendaError(err, args))
			return exitcode.UserError
		}
		a = found
	}

	output.FormatAgendaHeader(out, a)
	for i, task := range a.Tasks {
		output.FormatTask(out, i+1, task)
	}
	if len(a.Tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks")
	}
	return exitcode.Success
}
