package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"agenda/internal/agenda"
	"agenda/internal/config"
	"agenda/internal/exitcode"
)

func init() {
	Register(&NewCmd{})
}

// NewCmd implements the new command.
type NewCmd struct{}

func (c *NewCmd) Name() string      { return "new" }
func (c *NewCmd) Aliases() []string { return []string{"addagenda"} }
func (c *NewCmd) Synopsis() string  { return "Create an agenda and make it active" }
func (c *NewCmd) Usage() string     { return "agenda new <name...>" }
func (c *NewCmd) NeedsStore() bool  { return true }

func (c *NewCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NewCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: agenda name required")
		return exitcode.UserError
	}

	// Names are how agendas are addressed on the command line, so keep them distinct.
	if _, err := st.FindAgenda(name); err == nil || errors.Is(err, agenda.ErrAmbiguous) {
		fmt.Fprintf(errOut, "error: agenda already exists: %s\n", name)
		return exitcode.UserError
	}

	st.CreateAgenda(ctx, name)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
