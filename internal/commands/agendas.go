package commands

import (
	"context"
	"flag"
	"io"

	"agenda/internal/agenda"
	"agenda/internal/config"
	"agenda/internal/exitcode"
	"agenda/internal/output"
)

func init() {
	Register(&AgendasCmd{})
}

// AgendasCmd implements the agendas command.
type AgendasCmd struct{}

func (c *AgendasCmd) Name() string      { return "agendas" }
func (c *AgendasCmd) Aliases() []string { return nil }
func (c *AgendasCmd) Synopsis() string  { return "Print all agendas" }
func (c *AgendasCmd) Usage() string     { return "agenda agendas [common flags]" }
func (c *AgendasCmd) NeedsStore() bool  { return true }

func (c *AgendasCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AgendasCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	activeID := st.ActiveID()
	for i, a := range st.Agendas() {
		output.FormatAgendaLine(out, agenda.Letter(i), a, a.ID == activeID)
	}
	return exitcode.Success
}
