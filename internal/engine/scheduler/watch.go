package scheduler

import (
	"context"
	"errors"

	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
)

// watchPhase is the sum-type state recommended by the design note for
// watch-mode interruption: a single reducer consumes FS-change messages
// and task-completion messages (§9). runWatch only ever sets phaseIdle
// and phaseRunning; the other phases are declared but never entered.
type watchPhase int

const (
	phaseIdle watchPhase = iota
	phaseRunning
	phaseAborting
	phaseCompleted
	phaseErrored
)

// watchState is the Scheduler's mutable watch-mode state (§4.8),
// owned exclusively by the single goroutine running runWatch's loop.
type watchState struct {
	phase             watchPhase
	currentStep       int
	running           map[string]bool
	processed         map[string]bool
	impacted          map[string]bool
	killed            map[string]bool
	letFinishAndAbort bool
}

func newWatchState() *watchState {
	return &watchState{
		running:   make(map[string]bool),
		processed: make(map[string]bool),
		impacted:  make(map[string]bool),
		killed:    make(map[string]bool),
	}
}

func (w *watchState) resetForStep(stepIdx int) {
	w.currentStep = stepIdx
	w.running = make(map[string]bool)
	w.processed = make(map[string]bool)
	w.letFinishAndAbort = false
}

// afterReschedule implements the reschedule-semantics bookkeeping: clear
// impacted and killed, and drop only the impacted workspaces from
// processed so unaffected results remain authoritative.
func (w *watchState) afterReschedule() {
	for name := range w.impacted {
		delete(w.processed, name)
	}
	w.impacted = make(map[string]bool)
	w.killed = make(map[string]bool)
}

type taskResult struct {
	workspace string
	result    domain.CommandResult
	fromCache bool
	rebuilt   bool
	err       error
}

// runWatch subscribes to the Watcher and re-enters the plan's steps,
// reacting to SourcesChanged by aborting, killing, and rescheduling the
// minimal affected portion of the plan (§4.8).
func (s *Scheduler) runWatch(ctx context.Context, params RunParams, plan domain.OrderedTargets, events chan<- domain.RunCommandEvent) error {
	debounce := params.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watchCh, err := s.watcher.Watch(ctx, plan, params.Target, debounce)
	if err != nil {
		return err
	}
	defer func() { _ = s.watcher.Unwatch() }()

	topological := params.Options.Mode == domain.ModeTopological
	state := newWatchState()

	stepIdx := 0
	var only map[string]bool

	for {
		if stepIdx >= len(plan) {
			state.phase = phaseIdle
			select {
			case <-ctx.Done():
				return ctx.Err()
			case batch, ok := <-watchCh:
				if !ok {
					return nil
				}
				from := s.reactBatch(ctx, state, batch, plan, params.Target, events, nil)
				if from >= 0 {
					only = snapshot(state.impacted)
					state.afterReschedule()
					stepIdx = from
					continue
				}
				continue
			}
		}

		state.phase = phaseRunning
		state.resetForStep(stepIdx)

		stepCtx, abortStep := context.WithCancel(ctx)
		step := plan[stepIdx]

		outCh, launched := s.launchStep(stepCtx, params, step, only, events, state)

		var outcomes []taskOutcome
		var stepAborted bool
		var firstErr error
		rescheduleFrom := -1

		remaining := launched
		for remaining > 0 {
			select {
			case <-ctx.Done():
				abortStep()
				return ctx.Err()

			case res := <-outCh:
				remaining--
				delete(state.running, res.workspace)

				if state.killed[res.workspace] {
					// Kill-swallow rule: NodeInterrupted already emitted
					// at kill time; drop the eventual terminal event.
					continue
				}

				state.processed[res.workspace] = true
				outcome, ev := classify(res)
				outcomes = append(outcomes, outcome)
				events <- ev

				if outcome.errored && topological {
					stepAborted = true
					if firstErr == nil {
						firstErr = res.err
					}
					abortStep()
				}

			case batch, ok := <-watchCh:
				if !ok {
					abortStep()
					return nil
				}
				if from := s.reactBatch(ctx, state, batch, plan, params.Target, events, abortStep); from >= 0 {
					rescheduleFrom = from
				}
			}
		}
		abortStep()

		if err := s.applyInvalidations(params, outcomes, topological, stepIdx, plan, events); err != nil {
			return err
		}

		if state.letFinishAndAbort && rescheduleFrom < 0 {
			rescheduleFrom = state.currentStep
		}

		if rescheduleFrom >= 0 {
			only = snapshot(state.impacted)
			state.afterReschedule()
			stepIdx = rescheduleFrom
			continue
		}

		if topological && stepAborted {
			return firstErr
		}

		stepIdx++
		only = nil
	}
}

// launchStep starts every eligible workspace in step (filtered by only,
// if non-nil), marking each as running in state before returning, and
// reports each completion asynchronously on the returned channel.
func (s *Scheduler) launchStep(ctx context.Context, params RunParams, step domain.Step, only map[string]bool, events chan<- domain.RunCommandEvent, state *watchState) (<-chan taskResult, int) {
	sem := make(chan struct{}, s.concurrency)
	outCh := make(chan taskResult, len(step))
	launched := 0

	for _, rt := range step {
		if only != nil && !only[rt.Workspace] {
			continue
		}
		if !rt.Affected || !rt.HasCommand {
			events <- domain.RunCommandEvent{Kind: domain.EventNodeSkipped, Workspace: rt.Workspace, Affected: rt.Affected, HasCommand: rt.HasCommand}
			continue
		}

		launched++
		state.running[rt.Workspace] = true
		events <- domain.RunCommandEvent{Kind: domain.EventNodeStarted, Workspace: rt.Workspace}

		rt := rt
		go func() {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				outCh <- taskResult{workspace: rt.Workspace, err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			result, fromCache, rebuilt, err := s.execute(ctx, params, rt.Workspace)
			outCh <- taskResult{workspace: rt.Workspace, result: result, fromCache: fromCache, rebuilt: rebuilt, err: err}
		}()
	}

	return outCh, launched
}

func classify(res taskResult) (taskOutcome, domain.RunCommandEvent) {
	if errors.Is(res.err, context.Canceled) {
		return taskOutcome{workspace: res.workspace, interrupted: true},
			domain.RunCommandEvent{Kind: domain.EventNodeInterrupted, Workspace: res.workspace}
	}
	if res.err != nil {
		return taskOutcome{workspace: res.workspace, errored: true, rebuilt: res.rebuilt},
			domain.RunCommandEvent{Kind: domain.EventNodeErrored, Workspace: res.workspace, Err: res.err}
	}
	return taskOutcome{workspace: res.workspace, rebuilt: res.rebuilt},
		domain.RunCommandEvent{Kind: domain.EventNodeProcessed, Workspace: res.workspace, Result: res.result, FromCache: res.fromCache}
}

// reactBatch applies §4.8's reaction rules to every WatchEvent in batch,
// returning the step index a reschedule must start from, or -1 if none
// of the events demand one. abortStep may be nil when there is no
// currently-running step (idle between plan completion and next change);
// a change seen while idle reschedules from its workspace's step.
func (s *Scheduler) reactBatch(_ context.Context, state *watchState, batch []ports.WatchEvent, plan domain.OrderedTargets, target string, events chan<- domain.RunCommandEvent, abortStep context.CancelFunc) int {
	rescheduleFrom := -1

	for _, we := range batch {
		events <- domain.RunCommandEvent{Kind: domain.EventSourcesChanged, Workspace: we.ResolvedTarget, FSKind: we.Kind, Path: we.Path}

		w := we.ResolvedTarget
		stepOfW := plan.StepOf(w)
		if stepOfW < 0 {
			continue
		}

		switch {
		case abortStep != nil && stepOfW < state.currentStep:
			for name := range state.running {
				state.killed[name] = true
				_ = s.runner.KillInvocation(target, name)
				events <- domain.RunCommandEvent{Kind: domain.EventNodeInterrupted, Workspace: name}
			}
			state.impacted[w] = true
			abortStep()
			if rescheduleFrom < 0 || stepOfW < rescheduleFrom {
				rescheduleFrom = stepOfW
			}

		case abortStep != nil && stepOfW == state.currentStep && (state.running[w] || state.processed[w]):
			state.impacted[w] = true
			state.letFinishAndAbort = true
			if state.running[w] {
				state.killed[w] = true
				_ = s.runner.KillInvocation(target, w)
				events <- domain.RunCommandEvent{Kind: domain.EventNodeInterrupted, Workspace: w}
			}

		case abortStep == nil:
			state.impacted[w] = true
			if rescheduleFrom < 0 || stepOfW < rescheduleFrom {
				rescheduleFrom = stepOfW
			}

		default:
			// Not started yet, or a later step: the plan naturally
			// reaches W; no special action (§4.8 rule 5).
		}
	}

	return rescheduleFrom
}

func snapshot(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k := range set {
		out[k] = true
	}
	return out
}
