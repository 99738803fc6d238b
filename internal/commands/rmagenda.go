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
	Register(&RmAgendaCmd{})
}

// RmAgendaCmd implements the rmagenda command.
type RmAgendaCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmAgendaCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmAgendaCmd) Name() string      { return "rmagenda" }
func (c *RmAgendaCmd) Aliases() []string { return nil }
func (c *RmAgendaCmd) Synopsis() string  { return "Delete an agenda and its tasks" }
func (c *RmAgendaCmd) Usage() string     { return "agenda rmagenda [--force] <agenda>" }
func (c *RmAgendaCmd) NeedsStore() bool  { return true }

func (c *RmAgendaCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *RmAgendaCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	target, err := resolveAgenda(st, args)
	if err != nil {
		fmt.Fprintln(errOut, agendaError(err, args))
		return exitcode.UserError
	}

	if !c.force {
		if len(st.Agendas()) <= 1 {
			fmt.Fprintln(errOut, "error: cannot delete the only agenda (use --force)")
			return exitcode.UserError
		}
		if len(target.Tasks) > 0 {
			fmt.Fprintln(errOut, "error: agenda not empty (use --force)")
			return exitcode.UserError
		}
	}

	st.DeleteAgenda(ctx, target.ID)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
