package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime"

	"tasklist/internal/backend/firebase"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

// Version can be overridden with -ldflags "-X tasklist/internal/commands.Version=...".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

type VersionCmd struct {
	verbose bool
}

func (c *VersionCmd) Name() string       { return "version" }
func (c *VersionCmd) Aliases() []string  { return nil }
func (c *VersionCmd) Synopsis() string   { return "Print version" }
func (c *VersionCmd) Usage() string      { return "tasklist version [--verbose]" }
func (c *VersionCmd) NeedsService() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "tasklist %s\n", Version)
	if c.verbose {
		fmt.Fprintf(out, "go:       %s\n", runtime.Version())
		fmt.Fprintf(out, "endpoint: %s\n", firebase.TasksURL)
		fmt.Fprintf(out, "config:   %s\n", cfg.Dir)
	}
	return exitcode.Success
}
