// Package app implements the application layer for same: a thin
// CLI-facing wrapper that drives the Scheduler for one target and
// renders its event stream.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/same/internal/adapters/linear"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/same/internal/engine/scheduler"
)

// App orchestrates one run_command invocation: it hands RunOptions to
// the Scheduler and drains the resulting event stream through a
// Renderer.
type App struct {
	scheduler *scheduler.Scheduler
	cache     ports.CacheStore
	graph     *domain.WorkspaceGraph
	renderer  *linear.Renderer
	logger    ports.Logger
}

// New creates an App over an already-wired Scheduler.
func New(sched *scheduler.Scheduler, cache ports.CacheStore, graph *domain.WorkspaceGraph, renderer *linear.Renderer, logger ports.Logger) *App {
	return &App{
		scheduler: sched,
		cache:     cache,
		graph:     graph,
		renderer:  renderer,
		logger:    logger,
	}
}

// Logger returns the App's logger, for callers that need to report a
// fatal error before a Run completes.
func (a *App) Logger() ports.Logger {
	return a.logger
}

// RunOptions configures one CLI invocation of run_command (§4.6/§4.8).
type RunOptions struct {
	Mode       domain.RunMode
	Force      bool
	Affected   *domain.AffectedRange
	Stdio      domain.StdioMode
	To         []string
	Workspaces []string
	Watch      bool
	Debounce   time.Duration
}

// Run resolves target's plan, executes it, and renders every event as
// it arrives. It returns the run's terminal error, if any.
func (a *App) Run(ctx context.Context, target string, opts RunOptions) error {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = scheduler.DefaultDebounce
	}

	stream := a.scheduler.RunCommand(ctx, scheduler.RunParams{
		Target: target,
		Options: domain.RunOptions{
			Mode:       opts.Mode,
			Force:      opts.Force,
			Affected:   opts.Affected,
			Stdio:      opts.Stdio,
			To:         opts.To,
			Workspaces: opts.Workspaces,
		},
		Watch:    opts.Watch,
		Debounce: debounce,
	})

	for ev := range stream.Events {
		a.renderer.Render(ev, time.Now())
	}
	return stream.Err()
}

// Clean removes the on-disk cache for every (workspace, target) pair
// declared in the graph, or only the named targets if any are given.
func (a *App) Clean(_ context.Context, targetNames []string) error {
	wanted := make(map[string]bool, len(targetNames))
	for _, t := range targetNames {
		wanted[t] = true
	}

	var errs error
	for _, w := range a.graph.Workspaces() {
		for target := range w.Targets {
			if len(wanted) > 0 && !wanted[target] {
				continue
			}
			if err := a.cache.Invalidate(w.Root, target); err != nil {
				errs = errors.Join(errs, fmt.Errorf("%s/%s: %w", w.Name, target, err))
				continue
			}
			a.logger.Info(fmt.Sprintf("cleaned %s cache for %s", target, w.Name))
		}
	}
	return errs
}

// Close releases resources held across runs (in-flight daemons).
func (a *App) Close() error {
	return a.scheduler.Close()
}
