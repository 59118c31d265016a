// Package commands implements the tasklist subcommands.
package commands

import (
	"context"
	"flag"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/service"
)

// Command is one subcommand. Name, Aliases, Synopsis and Usage feed lookup
// and help output.
//
// Commands that read tasks report NeedsService; the dispatcher then builds
// the backend before Run, otherwise svc is nil. Run returns an exit code from
// package exitcode and receives the positional args left after flag parsing.
type Command interface {
	Name() string
	Aliases() []string
	Synopsis() string
	Usage() string
	NeedsService() bool
	RegisterFlags(fs *flag.FlagSet)
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
