// Package main is the entry point for the tasklist CLI.
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tasklist/internal/backend/firebase"
	"tasklist/internal/cli"
	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, error) {
		return firebase.New(log.New(errOut, "", 0), cfg.DebugLogger(errOut)), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
