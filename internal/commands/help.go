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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "agenda help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *agenda.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  agenda                                     List tasks of the active agenda
  agenda list [common flags] [<agenda>]      List tasks of an agenda
  agenda agendas [common flags]              List agendas (* marks the active one)
  agenda add [common flags] <text...>        Add a task to the active agenda
  agenda toggle [common flags] <ref>         Mark a task done / not done (alias: done)
  agenda edit [common flags] <ref> <text...> Change a task's text
  agenda rm [common flags] <ref>             Delete a task
  agenda new [common flags] <name...>        Create an agenda and make it active
  agenda rename [common flags] [--agenda <agenda>] <name...>
  agenda rmagenda [common flags] [--force] <agenda>
  agenda use [common flags] <agenda>         Make an agenda active
  agenda summary [common flags]              Print completed/total
  agenda export [common flags] [--format markdown|json|yaml] [--all]
  agenda tui [common flags]                  Interactive terminal UI
  agenda help
  agenda version

Task refs:
  N                task N of the active agenda
  <letter>N        task N of the agenda with that letter (selects it)

Common flags:
  --config <dir>   Override config directory
  --backend <name> Storage backend: file, sqlite or memory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
