// Package scheduler runs a target across a resolved OrderedTargets plan,
// streaming RunCommandEvent values to the caller (§4.7), consulting the
// cache before spawning a process and invalidating it per the
// step-completion policy. Watch mode (§4.8) layers a reactive reducer
// on top of the same per-step execution primitive.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/same/internal/engine/targets"
)

// DefaultConcurrency is the default per-step task concurrency cap.
const DefaultConcurrency = 4

// DefaultDebounce is the default watch-mode FS event coalescing window.
const DefaultDebounce = 1000 * time.Millisecond

// Scheduler executes a resolved plan and streams progress events.
type Scheduler struct {
	graph         *domain.WorkspaceGraph
	resolver      *targets.Resolver
	cache         ports.CacheStore
	fingerprinter ports.Fingerprinter
	runner        ports.ProcessRunner
	watcher       ports.Watcher
	logger        ports.Logger
	concurrency   int

	mu      sync.Mutex
	daemons []ports.RunningProcess
}

// NewScheduler creates a Scheduler with the default concurrency cap.
func NewScheduler(
	graph *domain.WorkspaceGraph,
	resolver *targets.Resolver,
	cache ports.CacheStore,
	fingerprinter ports.Fingerprinter,
	runner ports.ProcessRunner,
	watcher ports.Watcher,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		graph:         graph,
		resolver:      resolver,
		cache:         cache,
		fingerprinter: fingerprinter,
		runner:        runner,
		watcher:       watcher,
		logger:        logger,
		concurrency:   DefaultConcurrency,
	}
}

// WithConcurrency overrides the per-step task concurrency cap.
func (s *Scheduler) WithConcurrency(n int) *Scheduler {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// RunParams parameterizes one run_command invocation (§4.7/§4.8).
type RunParams struct {
	Target   string
	Options  domain.RunOptions
	Env      map[string]string
	Watch    bool
	Debounce time.Duration
}

// Stream is the sole observable surface of a run: a live channel of
// events, and a terminal error available once Events is drained and
// closed.
type Stream struct {
	Events <-chan domain.RunCommandEvent
	err    error
}

// Err returns the run's terminal error. Only meaningful after Events
// has been fully drained (closed).
func (st *Stream) Err() error {
	return st.err
}

// RunCommand resolves target's plan and executes it, returning
// immediately with a Stream fed by a background goroutine.
func (s *Scheduler) RunCommand(ctx context.Context, params RunParams) *Stream {
	events := make(chan domain.RunCommandEvent, 32)
	st := &Stream{Events: events}

	go func() {
		defer close(events)
		st.err = s.run(ctx, params, events)
	}()

	return st
}

// Close kills every daemon started by this Scheduler across all runs.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	daemons := s.daemons
	s.daemons = nil
	s.mu.Unlock()

	var firstErr error
	for _, d := range daemons {
		if err := d.Kill(nil); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Scheduler) run(ctx context.Context, params RunParams, events chan<- domain.RunCommandEvent) error {
	plan, err := s.resolver.Resolve(ctx, params.Target, params.Options)
	if err != nil {
		return err
	}
	events <- domain.RunCommandEvent{Kind: domain.EventTargetsResolved, Targets: plan}

	if len(plan) == 0 {
		return nil
	}

	if params.Watch {
		return s.runWatch(ctx, params, plan, events)
	}
	return s.runOnce(ctx, params, plan, events)
}

// runOnce executes every step in strict sequence (§4.7's non-watch path).
func (s *Scheduler) runOnce(ctx context.Context, params RunParams, plan domain.OrderedTargets, events chan<- domain.RunCommandEvent) error {
	topological := params.Options.Mode == domain.ModeTopological

	for stepIdx, step := range plan {
		outcomes, aborted, stepErr := s.runStep(ctx, params, step, nil, events)

		if err := s.applyInvalidations(params, outcomes, topological, stepIdx, plan, events); err != nil {
			return err
		}

		if topological && aborted {
			return stepErr
		}
	}
	return nil
}

type taskOutcome struct {
	workspace   string
	errored     bool
	rebuilt     bool
	interrupted bool
}

// runStep runs every eligible ResolvedTarget in step, honoring the
// concurrency cap. If only is non-nil, workspaces absent from it are
// skipped entirely (used by watch-mode reschedules, §4.8). In
// topological mode a NodeErrored aborts the step: queued-but-unstarted
// tasks never launch, but already-running tasks finish.
func (s *Scheduler) runStep(ctx context.Context, params RunParams, step domain.Step, only map[string]bool, events chan<- domain.RunCommandEvent) ([]taskOutcome, bool, error) {
	topological := params.Options.Mode == domain.ModeTopological

	abortCtx, abort := context.WithCancel(ctx)
	defer abort()

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var outcomes []taskOutcome
	var firstErr error
	var aborted bool

	for _, rt := range step {
		if only != nil && !only[rt.Workspace] {
			continue
		}
		if topological && abortCtx.Err() != nil {
			break
		}
		if !rt.Affected || !rt.HasCommand {
			events <- domain.RunCommandEvent{Kind: domain.EventNodeSkipped, Workspace: rt.Workspace, Affected: rt.Affected, HasCommand: rt.HasCommand}
			continue
		}

		rt := rt
		select {
		case sem <- struct{}{}:
		case <-abortCtx.Done():
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			events <- domain.RunCommandEvent{Kind: domain.EventNodeStarted, Workspace: rt.Workspace}

			result, fromCache, rebuilt, err := s.execute(ctx, params, rt.Workspace)

			mu.Lock()
			defer mu.Unlock()

			if errors.Is(err, context.Canceled) {
				outcomes = append(outcomes, taskOutcome{workspace: rt.Workspace, interrupted: true})
				events <- domain.RunCommandEvent{Kind: domain.EventNodeInterrupted, Workspace: rt.Workspace}
				return
			}
			if err != nil {
				outcomes = append(outcomes, taskOutcome{workspace: rt.Workspace, errored: true, rebuilt: rebuilt})
				events <- domain.RunCommandEvent{Kind: domain.EventNodeErrored, Workspace: rt.Workspace, Err: err}
				if topological {
					aborted = true
					if firstErr == nil {
						firstErr = err
					}
					abort()
				}
				return
			}

			outcomes = append(outcomes, taskOutcome{workspace: rt.Workspace, rebuilt: rebuilt})
			events <- domain.RunCommandEvent{Kind: domain.EventNodeProcessed, Workspace: rt.Workspace, Result: result, FromCache: fromCache}
		}()
	}

	wg.Wait()
	return outcomes, aborted, firstErr
}

// applyInvalidations implements the step-completion policy: every
// errored workspace is invalidated; if the step rebuilt or errored
// anything in topological mode, every workspace in every later step is
// invalidated too, before execution continues.
func (s *Scheduler) applyInvalidations(params RunParams, outcomes []taskOutcome, topological bool, stepIdx int, plan domain.OrderedTargets, events chan<- domain.RunCommandEvent) error {
	var toInvalidate []string
	anyErroredOrRebuilt := false

	for _, o := range outcomes {
		if o.errored {
			toInvalidate = append(toInvalidate, o.workspace)
		}
		if o.errored || o.rebuilt {
			anyErroredOrRebuilt = true
		}
	}

	if topological && anyErroredOrRebuilt {
		for i := stepIdx + 1; i < len(plan); i++ {
			for _, rt := range plan[i] {
				toInvalidate = append(toInvalidate, rt.Workspace)
			}
		}
	}

	for _, name := range toInvalidate {
		ws, ok := s.graph.Get(name)
		if !ok {
			continue
		}
		if err := s.cache.Invalidate(ws.Root, params.Target); err != nil {
			events <- domain.RunCommandEvent{Kind: domain.EventErrorInvalidatingCache, Workspace: name, Err: err}
			return err
		}
		events <- domain.RunCommandEvent{Kind: domain.EventCacheInvalidated, Workspace: name}
	}
	return nil
}

// execute runs (or serves from cache) the TargetConfig commands for
// workspace, returning the final CommandResult, whether it was served
// from cache, and whether a fresh execution was attempted (rebuilt).
func (s *Scheduler) execute(ctx context.Context, params RunParams, workspace string) (domain.CommandResult, bool, bool, error) {
	ws, ok := s.graph.Get(workspace)
	if !ok {
		return domain.CommandResult{}, false, false, domain.ErrUnknownTarget
	}
	cfg := ws.Targets[params.Target]

	if !params.Options.Force {
		if result, hit := s.readCache(ws.Root, params.Target, cfg); hit {
			return result, true, false, nil
		}
	}

	invocationID := workspace
	var results []domain.CommandResult
	for _, cmd := range cfg.Commands {
		result, err := s.runCommand(ctx, ws.Root, cmd, params, invocationID, workspace)
		if err != nil {
			return domain.CommandResult{}, false, true, err
		}
		results = append(results, result)
	}

	if !params.Options.Force && len(results) > 0 {
		if fp, err := s.fingerprinter.Fingerprint(ws.Root, canonicalCommand(cfg), cfg.Src); err == nil {
			_ = s.cache.Write(ws.Root, params.Target, domain.CacheEntry{Fingerprint: fp, Results: results})
		}
	}

	if len(results) == 0 {
		return domain.CommandResult{}, false, true, nil
	}
	return results[len(results)-1], false, true, nil
}

func (s *Scheduler) runCommand(ctx context.Context, workspaceRoot string, cmd domain.Command, params RunParams, invocationID, workspace string) (domain.CommandResult, error) {
	if cmd.IsDaemon() {
		daemonResult, err := s.runner.RunDaemon(ctx, workspaceRoot, cmd, params.Env, params.Options.Stdio, invocationID, params.Target, workspace)
		if err != nil {
			return domain.CommandResult{}, err
		}
		s.mu.Lock()
		s.daemons = append(s.daemons, daemonResult.Handle)
		s.mu.Unlock()
		return domain.CommandResult{Command: cmd.Run, ExitCode: 0}, nil
	}
	return s.runner.Run(ctx, workspaceRoot, cmd, params.Env, params.Options.Stdio, invocationID, params.Target, workspace)
}

// readCache attempts a cache hit for cfg under workspaceRoot/target. A
// zero-file glob match (domain.ErrNoInputs) is logged and treated as a
// miss, per §4.4/§7.
func (s *Scheduler) readCache(workspaceRoot, target string, cfg domain.TargetConfig) (domain.CommandResult, bool) {
	fp, err := s.fingerprinter.Fingerprint(workspaceRoot, canonicalCommand(cfg), cfg.Src)
	if err != nil {
		if errors.Is(err, domain.ErrNoInputs) && s.logger != nil {
			s.logger.Warn("no inputs matched for " + target + "; treating as cache miss")
		}
		return domain.CommandResult{}, false
	}

	results, hit, err := s.cache.Read(workspaceRoot, target, fp)
	if err != nil || !hit || len(results) == 0 {
		return domain.CommandResult{}, false
	}
	return results[len(results)-1], true
}

func canonicalCommand(cfg domain.TargetConfig) string {
	var b []byte
	for i, cmd := range cfg.Commands {
		if i > 0 {
			b = append(b, ';')
		}
		b = append(b, cmd.Run...)
	}
	return string(b)
}
