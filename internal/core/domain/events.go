package domain

// FSEventKind mirrors a raw file-system change kind surfaced to watch-mode
// consumers via SourcesChanged.
type FSEventKind string

const (
	FSEventAdd      FSEventKind = "add"
	FSEventAddDir   FSEventKind = "add_dir"
	FSEventChange   FSEventKind = "change"
	FSEventUnlink   FSEventKind = "unlink"
	FSEventUnlinkDir FSEventKind = "unlink_dir"
)

// EventKind is the closed set of RunCommandEvent variants (§4.7).
type EventKind string

const (
	EventTargetsResolved       EventKind = "TargetsResolved"
	EventNodeStarted           EventKind = "NodeStarted"
	EventNodeProcessed         EventKind = "NodeProcessed"
	EventNodeErrored           EventKind = "NodeErrored"
	EventNodeSkipped           EventKind = "NodeSkipped"
	EventNodeInterrupted       EventKind = "NodeInterrupted"
	EventCacheInvalidated      EventKind = "CacheInvalidated"
	EventErrorInvalidatingCache EventKind = "ErrorInvalidatingCache"
	EventSourcesChanged        EventKind = "SourcesChanged"
)

// RunCommandEvent is the sole observable surface of the Scheduler.
// Exactly one of its payload fields is meaningful, selected by Kind.
// Consumers must treat an unrecognized Kind as an error (§6).
type RunCommandEvent struct {
	Kind EventKind

	// TargetsResolved
	Targets OrderedTargets

	// NodeStarted / NodeProcessed / NodeErrored / NodeSkipped / NodeInterrupted
	// CacheInvalidated / SourcesChanged
	Workspace string

	// NodeProcessed
	Result    CommandResult
	FromCache bool

	// NodeErrored / ErrorInvalidatingCache
	Err error

	// NodeSkipped
	Affected   bool
	HasCommand bool

	// SourcesChanged
	FSKind FSEventKind
	Path   string
}
