package commands

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasklist` (no args) and `tasklist list`.
type ListCmd struct {
	json bool
}

// SetJSON selects JSON output (for testing).
func (c *ListCmd) SetJSON(v bool) {
	c.json = v
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "Fetch and print tasks" }
func (c *ListCmd) Usage() string      { return "tasklist list [common flags] [--json]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.json, "json", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Fetch failures are held back until we know the run was not interrupted.
	var fetchLog bytes.Buffer
	component := tasklist.New(svc, tasklist.WithLogger(log.New(&fetchLog, "", 0)))
	defer component.Unmount()
	component.Mount(ctx)

	state, err := component.Wait(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		component.Unmount()
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.BackendError
	}
	errOut.Write(fetchLog.Bytes())

	failed := state.Phase() == tasklist.PhaseError
	switch {
	case c.json && failed:
		// The cause is already on errOut; keep stdout parseable.
	case c.json:
		if err := output.RenderJSON(out, state); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
	default:
		output.RenderText(out, state, output.TextOptions{Color: cfg.Color, NoHeading: cfg.Quiet})
	}

	if failed {
		return exitcode.BackendError
	}
	return exitcode.Success
}
