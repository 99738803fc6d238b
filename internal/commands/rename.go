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
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command.
type RenameCmd struct {
	agendaRef string
}

// SetAgenda sets the agenda reference (for testing).
func (c *RenameCmd) SetAgenda(ref string) {
	c.agendaRef = ref
}

func (c *RenameCmd) Name() string      { return "rename" }
func (c *RenameCmd) Aliases() []string { return nil }
func (c *RenameCmd) Synopsis() string  { return "Rename an agenda" }
func (c *RenameCmd) Usage() string     { return "agenda rename [--agenda <agenda>] <new-name...>" }
func (c *RenameCmd) NeedsStore() bool  { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.agendaRef, "agenda", "", "")
	fs.StringVar(&c.agendaRef, "a", "", "")
}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: new name required")
		return exitcode.UserError
	}

	var target agenda.Agenda
	if c.agendaRef != "" {
		found, err := resolveAgenda(st, []string{c.agendaRef})
		if err != nil {
			fmt.Fprintln(errOut, agendaError(err, []string{c.agendaRef}))
			return exitcode.UserError
		}
		target = found
	} else {
		active, ok := st.Active()
		if !ok {
			fmt.Fprintln(errOut, "error: no active agenda")
			return exitcode.UserError
		}
		target = active
	}

	if existing, err := st.FindAgenda(name); err == nil && existing.ID != target.ID {
		fmt.Fprintf(errOut, "error: agenda already exists: %s\n", name)
		return exitcode.UserError
	}

	st.RenameAgenda(ctx, target.ID, name)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
