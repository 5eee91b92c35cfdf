// Package linear provides a synchronous, line-buffered renderer for the
// Scheduler's event stream: one prefixed plain line per workspace
// transition, no TUI and no colored rendering.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.trai.ch/same/internal/core/domain"
)

// Renderer prints a domain.RunCommandEvent stream as plain, chronological
// lines prefixed with the workspace name.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer

	mu        sync.Mutex
	startedAt map[string]time.Time
}

// NewRenderer creates a Renderer writing task lines to stdout and
// progress/error lines to stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:    stdout,
		stderr:    stderr,
		startedAt: make(map[string]time.Time),
	}
}

// Render prints one line for ev. now is injected so callers (and tests)
// control wall-clock duration formatting.
func (r *Renderer) Render(ev domain.RunCommandEvent, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Kind {
	case domain.EventTargetsResolved:
		_, _ = fmt.Fprintf(r.stderr, "Planning to build %d workspace(s) across %d step(s)\n",
			len(ev.Targets.Workspaces()), len(ev.Targets))

	case domain.EventNodeStarted:
		r.startedAt[ev.Workspace] = now
		_, _ = fmt.Fprintf(r.stderr, "%s starting\n", r.label(ev.Workspace))

	case domain.EventNodeSkipped:
		_, _ = fmt.Fprintf(r.stderr, "%s skipped (affected=%t, has_command=%t)\n",
			r.label(ev.Workspace), ev.Affected, ev.HasCommand)

	case domain.EventNodeProcessed:
		r.printOutput(ev.Workspace, ev.Result)
		source := "ran"
		if ev.FromCache {
			source = "cache hit"
		}
		_, _ = fmt.Fprintf(r.stderr, "%s done (%s, %s)\n", r.label(ev.Workspace), source, r.elapsed(ev.Workspace, now))

	case domain.EventNodeErrored:
		_, _ = fmt.Fprintf(r.stderr, "%s failed after %s: %v\n", r.label(ev.Workspace), r.elapsed(ev.Workspace, now), ev.Err)

	case domain.EventNodeInterrupted:
		_, _ = fmt.Fprintf(r.stderr, "%s interrupted\n", r.label(ev.Workspace))

	case domain.EventCacheInvalidated:
		_, _ = fmt.Fprintf(r.stderr, "%s cache invalidated\n", r.label(ev.Workspace))

	case domain.EventErrorInvalidatingCache:
		_, _ = fmt.Fprintf(r.stderr, "%s error invalidating cache: %v\n", r.label(ev.Workspace), ev.Err)

	case domain.EventSourcesChanged:
		_, _ = fmt.Fprintf(r.stderr, "%s sources changed: %s %s\n", r.label(ev.Workspace), ev.FSKind, ev.Path)

	default:
		_, _ = fmt.Fprintf(r.stderr, "unrecognized event kind %q for %s\n", ev.Kind, ev.Workspace)
	}
}

func (r *Renderer) label(workspace string) string {
	return fmt.Sprintf("[%s]", workspace)
}

func (r *Renderer) elapsed(workspace string, now time.Time) time.Duration {
	started, ok := r.startedAt[workspace]
	if !ok {
		return 0
	}
	return now.Sub(started)
}

func (r *Renderer) printOutput(workspace string, result domain.CommandResult) {
	if len(result.Combined) == 0 {
		return
	}
	prefix := r.label(workspace)
	_, _ = fmt.Fprintf(r.stdout, "%s %s", prefix, result.Combined)
}
