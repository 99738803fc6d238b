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
	Register(&UseCmd{})
}

// UseCmd implements the use command.
type UseCmd struct{}

func (c *UseCmd) Name() string      { return "use" }
func (c *UseCmd) Aliases() []string { return []string{"switch"} }
func (c *UseCmd) Synopsis() string  { return "Make an agenda active" }
func (c *UseCmd) Usage() string     { return "agenda use <agenda>" }
func (c *UseCmd) NeedsStore() bool  { return true }

func (c *UseCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UseCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	target, err := resolveAgenda(st, args)
	if err != nil {
		fmt.Fprintln(errOut, agendaError(err, args))
		return exitcode.UserError
	}

	st.SetActive(ctx, target.ID)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
