package domain

import "go.trai.ch/zerr"

var (
	// ErrCycleDetected is returned when the workspace graph contains a dependency cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrWorkspaceNotFound is returned when a named workspace does not exist in the graph.
	ErrWorkspaceNotFound = zerr.New("workspace not found")

	// ErrUnreadableManifest is returned when a workspace manifest cannot be read or parsed.
	ErrUnreadableManifest = zerr.New("unreadable workspace manifest")

	// ErrBadWorkspaceGlob is returned when the root manifest's workspaces glob is invalid.
	ErrBadWorkspaceGlob = zerr.New("invalid workspace glob pattern")

	// ErrSelfExtension is returned when a target config file's extends points at itself.
	ErrSelfExtension = zerr.New("target config cannot extend itself")

	// ErrUnknownTarget is returned when run_command is asked for a target no workspace declares.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrBadRevision is returned by the VcsProbe when a revision does not resolve.
	ErrBadRevision = zerr.New("bad revision")

	// ErrNoInputs is returned by the Fingerprinter when a target's glob patterns match no files.
	ErrNoInputs = zerr.New("no inputs matched")

	// ErrCacheMiss is returned internally when a cache read does not apply.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrInvalidationFailed is a fatal CacheStore error: best-effort removal of cache files failed.
	ErrInvalidationFailed = zerr.New("cache invalidation failed")

	// ErrProcessExit is returned by the ProcessRunner when a command exits non-zero.
	ErrProcessExit = zerr.New("command exited non-zero")

	// ErrDaemonFailure is returned when a daemon's failure LogCondition matches.
	ErrDaemonFailure = zerr.New("daemon readiness condition reported failure")

	// ErrDaemonTimeout is returned when a daemon's LogCondition does not resolve within its timeout.
	ErrDaemonTimeout = zerr.New("daemon readiness condition timed out")

	// ErrDaemonCrashed is returned when a daemon process exits before any condition resolves.
	ErrDaemonCrashed = zerr.New("daemon process crashed before readiness")

	// ErrUnknownMatcher is returned when a LogCondition names a matcher other than "contains".
	ErrUnknownMatcher = zerr.New("unknown log condition matcher")

	// ErrInvalidStdio is returned when a LogCondition names an unknown stdio stream.
	ErrInvalidStdio = zerr.New("invalid log condition stdio")

	// ErrOutputsOutsideRoot is returned when a cache path would escape the workspace root.
	ErrOutputsOutsideRoot = zerr.New("path escapes workspace root")

	// ErrWatchAlreadyActive is returned by Watcher.Watch when a watch is
	// already running and Unwatch has not yet been called.
	ErrWatchAlreadyActive = zerr.New("watch already active")
)
