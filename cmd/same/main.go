// Package main is the entry point for the same build tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/cmd/same/commands"
	"go.trai.ch/same/internal/app"
	_ "go.trai.ch/same/internal/wiring"
)

// AppProvider is a function that resolves the wired App.
type AppProvider func(context.Context) (*app.App, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.App, func(), error) {
		a, _, err := graft.ExecuteFor[*app.App](ctx)
		return a, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider AppProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed; write
		// directly to the stderr passed in.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()
	defer func() { _ = a.Close() }()

	cli := commands.New(a)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		a.Logger().Error(err)
		return 1
	}
	return 0
}
