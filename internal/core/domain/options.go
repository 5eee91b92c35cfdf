package domain

// RunMode selects how eligible workspaces are ordered for execution.
type RunMode string

const (
	// ModeParallel runs every eligible workspace as a single step.
	ModeParallel RunMode = "parallel"
	// ModeTopological runs eligible workspaces in dependency order.
	ModeTopological RunMode = "topological"
)

// StdioMode selects how a run's process output is handled.
type StdioMode string

const (
	// StdioCapture buffers stdout/stderr for the event stream and cache.
	StdioCapture StdioMode = "capture"
	// StdioInherit passes the invoking process's stdio straight through,
	// disabling capture (and therefore caching of command output).
	StdioInherit StdioMode = "inherit"
)

// AffectedRange narrows a run to workspaces changed between two
// revisions, per §4.3.
type AffectedRange struct {
	Rev1 string
	Rev2 string
}

// RunOptions parameterizes one runCommand invocation (§4.6).
type RunOptions struct {
	Mode       RunMode
	Force      bool
	Affected   *AffectedRange
	Stdio      StdioMode
	To         []string // topological mode: roots to resolve from
	Workspaces []string // parallel mode: restrict to this set
}
