package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	manifestFileName = "package.json"
	targetsFileName  = "targets.json"
)

// Loader implements ports.ConfigLoader by reading package.json manifests
// and optional targets.json target-configuration files.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new manifest-backed Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the root manifest's `workspaces` glob list, loads every
// matching workspace's manifest and target config, and builds the
// resulting graph. It does not call Validate; callers must do so before
// relying on topological ordering (mirroring domain.WorkspaceGraph's
// contract).
func (l *Loader) Load(projectRoot string) (*domain.WorkspaceGraph, error) {
	rootManifest, err := readManifest(filepath.Join(projectRoot, manifestFileName))
	if err != nil {
		return nil, err
	}

	paths, err := l.discoverWorkspacePaths(projectRoot, rootManifest.Workspaces)
	if err != nil {
		return nil, err
	}

	g := domain.NewWorkspaceGraph()
	for _, path := range paths {
		w, err := l.loadWorkspace(path)
		if err != nil {
			return nil, err
		}
		if err := g.AddWorkspace(w); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (l *Loader) discoverWorkspacePaths(projectRoot string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(projectRoot, pattern))
		if err != nil {
			return nil, zerr.With(domain.ErrBadWorkspaceGlob, "pattern", pattern)
		}
		for _, m := range matches {
			info, statErr := os.Stat(m)
			if statErr != nil || !info.IsDir() {
				continue
			}
			if _, exists := seen[m]; exists {
				continue
			}
			if _, statErr := os.Stat(filepath.Join(m, manifestFileName)); statErr != nil {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	return paths, nil
}

func (l *Loader) loadWorkspace(path string) (domain.Workspace, error) {
	manifest, err := readManifest(filepath.Join(path, manifestFileName))
	if err != nil {
		return domain.Workspace{}, err
	}

	targets, err := l.loadTargetConfig(path, filepath.Join(path, targetsFileName), nil)
	if err != nil {
		return domain.Workspace{}, err
	}

	return domain.Workspace{
		Name:         manifest.Name,
		Root:         path,
		Version:      manifest.Version,
		Private:      manifest.Private,
		Dependencies: manifest.allDependencyNames(),
		Targets:      targets,
	}, nil
}

// loadTargetConfig reads a targets.json file, following its `extends`
// chain to any depth (self-extension and cycles are rejected; a missing
// file is `{}`).
func (l *Loader) loadTargetConfig(workspaceRoot, path string, visiting map[string]bool) (map[string]domain.TargetConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path built from trusted discovery
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.TargetConfig{}, nil
		}
		return nil, zerr.Wrap(err, "failed to read target config")
	}

	var file TargetConfigFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse target config")
	}

	base := map[string]domain.TargetConfig{}
	if file.Extends != "" {
		extendsPath := filepath.Clean(filepath.Join(filepath.Dir(path), file.Extends))
		if extendsPath == filepath.Clean(path) {
			return nil, zerr.With(domain.ErrSelfExtension, "path", path)
		}
		if visiting == nil {
			visiting = map[string]bool{}
		}
		if visiting[path] {
			return nil, zerr.With(domain.ErrSelfExtension, "path", path)
		}
		visiting[path] = true

		extended, err := l.loadTargetConfig(workspaceRoot, extendsPath, visiting)
		if err != nil {
			return nil, err
		}
		base = extended
	}

	for name, dto := range file.Targets {
		base[name] = toDomainTargetConfig(dto)
	}
	return base, nil
}

func toDomainTargetConfig(dto TargetDTO) domain.TargetConfig {
	cmds := make([]domain.Command, 0, len(dto.Cmd))
	for _, c := range dto.Cmd {
		cmds = append(cmds, domain.Command{
			Run:    c.Run,
			Daemon: toDomainDaemonSpec(c.Daemon),
		})
	}
	return domain.TargetConfig{Commands: cmds, Src: dto.Src}
}

func toDomainDaemonSpec(dto []DaemonSpecDTO) []domain.LogCondition {
	if len(dto) == 0 {
		return nil
	}
	out := make([]domain.LogCondition, 0, len(dto))
	for _, d := range dto {
		out = append(out, domain.LogCondition{
			Stdio:     domain.Stdio(d.Stdio),
			Matcher:   d.Matcher,
			Value:     d.Value,
			Type:      domain.LogConditionType(d.Type),
			TimeoutMS: d.TimeoutMS,
		})
	}
	return out
}

func readManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path built from trusted discovery
	if err != nil {
		return Manifest{}, zerr.With(domain.ErrUnreadableManifest, "path", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, zerr.With(domain.ErrUnreadableManifest, "path", path)
	}
	return m, nil
}
