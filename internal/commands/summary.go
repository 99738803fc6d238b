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
	Register(&SummaryCmd{})
}

// SummaryCmd implements the summary command.
type SummaryCmd struct{}

func (c *SummaryCmd) Name() string      { return "summary" }
func (c *SummaryCmd) Aliases() []string { return nil }
func (c *SummaryCmd) Synopsis() string  { return "Print completed/total for the active agenda" }
func (c *SummaryCmd) Usage() string     { return "agenda summary" }
func (c *SummaryCmd) NeedsStore() bool  { return true }

func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SummaryCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	completed, total := st.CompletionSummary()
	output.FormatSummary(out, completed, total)
	return exitcode.Success
}
