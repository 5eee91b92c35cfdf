// Package config loads a project's workspace graph from the per-workspace
// package manifest (name, version, dependencies) and the optional target
// configuration file (targets, source globs), per spec §6.
package config

// Manifest is the per-workspace package manifest. The root manifest
// additionally sets Workspaces to the glob patterns used to discover
// member workspaces.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version,omitempty"`
	Private         bool              `json:"private,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Workspaces      []string          `json:"workspaces,omitempty"`
}

// allDependencyNames returns the union of dependencies and devDependencies.
func (m Manifest) allDependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies)+len(m.DevDependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	for name := range m.DevDependencies {
		names = append(names, name)
	}
	return names
}

// TargetConfigFile is the optional per-workspace target configuration
// file: `{ targets?: {...}, extends?: relative-path }`.
type TargetConfigFile struct {
	Targets map[string]TargetDTO `json:"targets,omitempty"`
	Extends string                `json:"extends,omitempty"`
}

// TargetDTO is the wire shape of a TargetConfig. `cmd` accepts either a
// single Command or an array of Commands (custom-unmarshaled below);
// `src` is the glob pattern list.
type TargetDTO struct {
	Cmd []CommandDTO
	Src []string `json:"src"`
}

// CommandDTO is the wire shape of a Command: either a plain shell string
// or `{ run, daemon? }`, where daemon accepts a single LogCondition or an
// array of them.
type CommandDTO struct {
	Run    string
	Daemon []DaemonSpecDTO
}

// DaemonSpecDTO is the wire shape of one LogCondition.
type DaemonSpecDTO struct {
	Stdio     string `json:"stdio"`
	Matcher   string `json:"matcher"`
	Value     string `json:"value"`
	Type      string `json:"type"`
	TimeoutMS uint64 `json:"timeout_ms,omitempty"`
}
