package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasklist help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-52s %s\n", "tasklist", "Same as tasklist list")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-52s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `
Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --no-color       Disable colored output

Environment (also read from <config dir>/config.env):
  TASKLIST_BIND_ADDR           Listen address for serve (default 127.0.0.1:8080)
  TASKLIST_METRICS_NAMESPACE   Prefix for exported metrics (default tasklist)
  NO_COLOR                     Disable colored output
`
