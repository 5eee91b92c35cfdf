// Package ports defines the interfaces the scheduler and its companion
// subsystems depend on, so adapters (vcs, cache, process, watcher,
// config) can be substituted by test doubles.
package ports

import (
	"context"
	"time"

	"go.trai.ch/same/internal/core/domain"
)

// Logger is the structured logging surface injected throughout the
// engine and adapters.
//
//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}

// VcsProbe is a thin, stateless-per-call adapter over a version-control
// tool (§4.2).
type VcsProbe interface {
	RevisionExists(ctx context.Context, rev string) bool
	// DiffNames lists paths changed between rev1 and rev2. If rev2 is
	// empty, the range is "from rev1 to working tree". pathPrefix, if
	// non-empty, restricts the diff to that subtree.
	DiffNames(ctx context.Context, rev1, rev2, pathPrefix string) ([]string, error)
	TagList(ctx context.Context, fetch bool) ([]string, error)
	CreateTag(ctx context.Context, name string) error
	Commit(ctx context.Context, paths []string, message string) error
	PushIncludingTags(ctx context.Context) error
}

// ConfigLoader loads the project's workspace graph from manifests and
// per-workspace target-configuration files (§6).
type ConfigLoader interface {
	Load(projectRoot string) (*domain.WorkspaceGraph, error)
}

// Fingerprinter computes a content fingerprint for a target invocation
// (§4.4).
type Fingerprinter interface {
	Fingerprint(workspaceRoot string, cmd string, globs []string) (domain.Fingerprint, error)
}

// CacheStore is the per-(workspace, target) on-disk cache (§4.4).
type CacheStore interface {
	// Read returns the cached results if fp matches the stored
	// fingerprint byte-for-byte; otherwise it returns (nil, false, nil).
	Read(workspaceRoot, target string, fp domain.Fingerprint) ([]domain.CommandResult, bool, error)
	Write(workspaceRoot, target string, entry domain.CacheEntry) error
	Invalidate(workspaceRoot, target string) error
}

// RunningProcess is a handle to one in-flight command invocation.
type RunningProcess interface {
	// Wait blocks until the process exits and returns its result.
	Wait(ctx context.Context) (domain.CommandResult, error)
	// Kill sends a graceful signal to the process tree, waits up to
	// grace, then escalates to a forceful kill of any process still
	// bound to one of releasePorts (or unconditionally if releasePorts
	// is empty).
	Kill(releasePorts []int) error
}

// DaemonResult is returned once a daemon's readiness condition resolves.
type DaemonResult struct {
	Handle  RunningProcess
	Started bool
}

// ProcessRunner spawns shell commands, streams their output, supervises
// daemons by log condition, and kills process trees (§4.5).
type ProcessRunner interface {
	// Run starts cmd in workspaceRoot with the given environment
	// overrides and stdio mode, and returns once the command exits.
	Run(ctx context.Context, workspaceRoot string, cmd domain.Command, env map[string]string, stdio domain.StdioMode, invocationID, target, workspace string) (domain.CommandResult, error)

	// RunDaemon starts a daemon-carrying command and returns once a
	// success condition matches, a failure condition matches, a
	// condition times out, or the process crashes.
	RunDaemon(ctx context.Context, workspaceRoot string, cmd domain.Command, env map[string]string, stdio domain.StdioMode, invocationID, target, workspace string) (DaemonResult, error)

	// Kill terminates every in-flight invocation registered for target.
	Kill(target string) error

	// KillInvocation terminates a single registered invocation, without
	// touching any other workspace's in-flight process for target.
	KillInvocation(target, invocationID string) error
}

// WatchEvent is a single raw file-system change.
type WatchEvent struct {
	ResolvedTarget string
	Kind           domain.FSEventKind
	Path           string
}

// Watcher multiplexes file-system changes for every target's source
// globs into a single debounced batch stream (§4.9).
type Watcher interface {
	// Watch subscribes to every glob listed in the plan's workspaces for
	// target, and returns a channel of debounced batches. Each batch is
	// non-empty.
	Watch(ctx context.Context, plan domain.OrderedTargets, target string, debounce time.Duration) (<-chan []WatchEvent, error)
	// Unwatch terminates the event stream and releases FS watches.
	Unwatch() error
}
