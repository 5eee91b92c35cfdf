//go:build e2e

// Package e2e_test exercises the Scheduler against real adapters — the
// on-disk config loader, file fingerprinter, JSON cache store, pty
// process runner, and fsnotify watcher — wired together the way
// cmd/same wires them, instead of a mock of any one of them.
package e2e_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/same/internal/adapters/cache"
	"go.trai.ch/same/internal/adapters/config"
	"go.trai.ch/same/internal/adapters/fingerprint"
	"go.trai.ch/same/internal/adapters/process"
	"go.trai.ch/same/internal/adapters/watcher"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/engine/affected"
	"go.trai.ch/same/internal/engine/scheduler"
	"go.trai.ch/same/internal/engine/targets"
)

const waitTimeout = 10 * time.Second

// fixture is a project rooted at root with workspaces "a" (no
// dependencies) and "b" (depends on "a"), both declaring a "build"
// target that appends its own name to orderLog. Tests mutate the
// workspaces' source files in place to trigger re-execution.
type fixture struct {
	root     string
	orderLog string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{root: root, orderLog: filepath.Join(root, "order.log")}

	writeFile(t, filepath.Join(root, "package.json"), `{"name":"root","workspaces":["a","b"]}`)
	f.writeWorkspace(t, "a", "")
	f.writeWorkspace(t, "b", "a")
	return f
}

func (f *fixture) writeWorkspace(t *testing.T, name, dep string) {
	t.Helper()
	dir := filepath.Join(f.root, name)
	require.NoError(t, os.MkdirAll(dir, 0o750))

	depsJSON := "{}"
	if dep != "" {
		depsJSON = fmt.Sprintf(`{"%s":"*"}`, dep)
	}
	writeFile(t, filepath.Join(dir, "package.json"), fmt.Sprintf(`{"name":"%s","dependencies":%s}`, name, depsJSON))

	cmd := fmt.Sprintf(`echo %s >> %s`, name, f.orderLog)
	writeFile(t, filepath.Join(dir, "targets.json"), fmt.Sprintf(`{"targets":{"build":{"cmd":"%s","src":["*.txt"]}}}`, cmd))
	writeFile(t, filepath.Join(dir, "source.txt"), "v1")
}

func (f *fixture) touch(t *testing.T, workspace, content string) {
	t.Helper()
	writeFile(t, filepath.Join(f.root, workspace, "source.txt"), content)
}

func (f *fixture) orderedLines(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.orderLog) //nolint:gosec // test fixture path
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	var lines []string
	start := 0
	for i, r := range string(data) {
		if r != '\n' {
			continue
		}
		if line := string(data)[start:i]; line != "" {
			lines = append(lines, line)
		}
		start = i + 1
	}
	return lines
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644)) //nolint:gosec // test fixture path
}

// harness wires the real adapters over one fixture's project root, the
// way internal/wiring assembles them for a live CLI invocation.
type harness struct {
	scheduler *scheduler.Scheduler
}

func newHarness(t *testing.T, f *fixture) *harness {
	t.Helper()

	loader := config.NewLoader(nil)
	graph, err := loader.Load(f.root)
	require.NoError(t, err)
	require.NoError(t, graph.Validate())

	aff := affected.NewResolver(graph, nil, f.root)
	resolver := targets.NewResolver(graph, aff)
	cacheStore := cache.NewStore(nil)
	hasher := fingerprint.NewHasher()
	runner := process.NewRunner(nil)
	watch := watcher.NewWatcher(graph)

	sched := scheduler.NewScheduler(graph, resolver, cacheStore, hasher, runner, watch, nil)
	t.Cleanup(func() { _ = sched.Close() })

	return &harness{scheduler: sched}
}

func drain(t *testing.T, stream *scheduler.Stream) []domain.RunCommandEvent {
	t.Helper()
	var events []domain.RunCommandEvent
	for {
		select {
		case ev, ok := <-stream.Events:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-time.After(waitTimeout):
			t.Fatal("timed out waiting for event stream to drain")
		}
	}
}

func processedEvents(events []domain.RunCommandEvent) map[string]domain.RunCommandEvent {
	out := make(map[string]domain.RunCommandEvent)
	for _, ev := range events {
		if ev.Kind == domain.EventNodeProcessed {
			out[ev.Workspace] = ev
		}
	}
	return out
}

// TestParallelFanOut runs both workspaces in one step and verifies
// neither is skipped.
func TestParallelFanOut(t *testing.T) {
	f := newFixture(t)
	h := newHarness(t, f)

	stream := h.scheduler.RunCommand(context.Background(), scheduler.RunParams{
		Target:  "build",
		Options: domain.RunOptions{Mode: domain.ModeParallel},
	})
	events := drain(t, stream)
	require.NoError(t, stream.Err())

	processed := processedEvents(events)
	require.Contains(t, processed, "a")
	require.Contains(t, processed, "b")
	require.ElementsMatch(t, []string{"a", "b"}, f.orderedLines(t))
}

// TestTopologicalFanOut runs in dependency order and verifies b's
// command never runs before a's.
func TestTopologicalFanOut(t *testing.T) {
	f := newFixture(t)
	h := newHarness(t, f)

	stream := h.scheduler.RunCommand(context.Background(), scheduler.RunParams{
		Target:  "build",
		Options: domain.RunOptions{Mode: domain.ModeTopological},
	})
	events := drain(t, stream)
	require.NoError(t, stream.Err())

	require.Equal(t, domain.EventTargetsResolved, events[0].Kind)
	require.Len(t, events[0].Targets, 2, "expected two dependency-ordered steps")
	require.Equal(t, []string{"a", "b"}, f.orderedLines(t))
}

// TestCacheInvalidationCascade populates both workspaces' caches, then
// changes only a's source and reruns topologically: a must rebuild,
// and the step-completion policy must cascade an invalidation to b so
// it rebuilds too even though its own inputs did not change.
func TestCacheInvalidationCascade(t *testing.T) {
	f := newFixture(t)
	h := newHarness(t, f)
	ctx := context.Background()

	first := h.scheduler.RunCommand(ctx, scheduler.RunParams{
		Target:  "build",
		Options: domain.RunOptions{Mode: domain.ModeTopological},
	})
	drain(t, first)
	require.NoError(t, first.Err())

	// Both caches are now warm: a second run with no source changes must
	// be served entirely from cache.
	warm := h.scheduler.RunCommand(ctx, scheduler.RunParams{
		Target:  "build",
		Options: domain.RunOptions{Mode: domain.ModeTopological},
	})
	warmEvents := drain(t, warm)
	require.NoError(t, warm.Err())
	for workspace, ev := range processedEvents(warmEvents) {
		require.Truef(t, ev.FromCache, "%s: expected a cache hit before any source changed", workspace)
	}

	f.touch(t, "a", "v2")

	rebuilt := h.scheduler.RunCommand(ctx, scheduler.RunParams{
		Target:  "build",
		Options: domain.RunOptions{Mode: domain.ModeTopological},
	})
	rebuiltEvents := drain(t, rebuilt)
	require.NoError(t, rebuilt.Err())

	processed := processedEvents(rebuiltEvents)
	require.False(t, processed["a"].FromCache, "a's changed source must force a rebuild")
	require.False(t, processed["b"].FromCache, "a's rebuild must cascade-invalidate b's cache")

	var sawCacheInvalidated bool
	for _, ev := range rebuiltEvents {
		if ev.Kind == domain.EventCacheInvalidated && ev.Workspace == "b" {
			sawCacheInvalidated = true
		}
	}
	require.True(t, sawCacheInvalidated, "expected b's cache entry to be explicitly invalidated")
}

// TestWatchModeReschedule starts a watch-mode run, waits for the
// initial pass to finish, mutates a's source file, and verifies the
// watcher reschedules a (and cascades to its dependent b) without a
// second invocation of RunCommand.
func TestWatchModeReschedule(t *testing.T) {
	f := newFixture(t)
	h := newHarness(t, f)
	ctx, cancel := context.WithCancel(context.Background())

	stream := h.scheduler.RunCommand(ctx, scheduler.RunParams{
		Target:   "build",
		Options:  domain.RunOptions{Mode: domain.ModeTopological},
		Watch:    true,
		Debounce: 20 * time.Millisecond,
	})

	waitForProcessed(t, stream.Events, "b")

	f.touch(t, "a", "v2")

	waitForProcessed(t, stream.Events, "b")

	cancel()
	for range stream.Events { //nolint:revive // drain until the watch goroutine observes cancellation and closes
	}

	require.GreaterOrEqual(t, len(f.orderedLines(t)), 4, "expected both workspaces to run twice")
}

// waitForProcessed blocks until an EventNodeProcessed for workspace
// arrives on events, failing the test if waitTimeout elapses first.
func waitForProcessed(t *testing.T, events <-chan domain.RunCommandEvent, workspace string) {
	t.Helper()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event stream closed before observing %s processed", workspace)
			}
			if ev.Kind == domain.EventNodeProcessed && ev.Workspace == workspace {
				return
			}
		case <-time.After(waitTimeout):
			t.Fatalf("timed out waiting for %s to be processed", workspace)
		}
	}
}
