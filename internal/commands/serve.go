package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/httpapi"
	"tasklist/internal/observability"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

const (
	// serverShutdownTimeout bounds graceful shutdown after interrupt.
	serverShutdownTimeout = 5 * time.Second

	serverReadHeaderTimeout = 10 * time.Second
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command: one component mounted for the
// lifetime of the process, rendered as HTML on every request.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Serve the task list as a web page" }
func (c *ServeCmd) Usage() string      { return "tasklist serve [common flags] [--addr <host:port>]" }
func (c *ServeCmd) NeedsService() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := cfg.BindAddr
	if c.addr != "" {
		addr = c.addr
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: could not listen on %s: %v\n", addr, err)
		return exitcode.BackendError
	}

	debug := cfg.DebugLogger(errOut)
	metrics := observability.NewMetrics(cfg.MetricsNamespace)
	component := tasklist.New(svc,
		tasklist.WithLogger(log.New(errOut, "", 0)),
		tasklist.WithObserver(metrics),
	)
	component.Mount(ctx)
	defer component.Unmount()

	server := &http.Server{
		Handler:           httpapi.New(component, metrics, debug).Router(),
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on http://%s\n", listener.Addr())
	}

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(errOut, "error: server: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	case <-ctx.Done():
	}

	component.Unmount()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(errOut, "error: shutdown: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
