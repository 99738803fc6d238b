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
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	all    bool
}

// SetFormat sets the export format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetAll exports every agenda instead of the active one (for testing).
func (c *ExportCmd) SetAll(all bool) {
	c.all = all
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Print agendas as markdown, json or yaml" }
func (c *ExportCmd) Usage() string {
	return "agenda export [--format markdown|json|yaml] [--all]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "markdown", "")
	fs.StringVar(&c.format, "f", "markdown", "")
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	format, err := output.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var agendas []agenda.Agenda
	if c.all {
		agendas = st.Agendas()
	} else if active, ok := st.Active(); ok {
		agendas = []agenda.Agenda{active}
	}

	if err := output.Export(out, format, agendas); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
