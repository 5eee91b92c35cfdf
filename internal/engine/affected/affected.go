// Package affected implements the affected-workspace resolution
// algorithm (§4.3): given a revision range and a target, decide which
// workspaces have changed inputs, optionally propagating that status
// through the dependency graph.
package affected

import (
	"context"
	"path/filepath"

	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/zerr"
)

// Range is a VCS revision range. An empty Rev2 diffs Rev1 against the
// working tree.
type Range struct {
	Rev1 string
	Rev2 string
}

// Resolver computes affected status per §4.3.
type Resolver struct {
	graph       *domain.WorkspaceGraph
	vcs         ports.VcsProbe
	projectRoot string
}

// NewResolver creates a Resolver over graph, using vcs to compute
// diffs. projectRoot is used to make glob-expanded paths comparable to
// the repo-relative paths diff_names returns.
func NewResolver(graph *domain.WorkspaceGraph, vcs ports.VcsProbe, projectRoot string) *Resolver {
	return &Resolver{graph: graph, vcs: vcs, projectRoot: projectRoot}
}

// IsAffected reports whether workspace is affected by rng for target,
// per §4.3. Both revisions are validated before any diff is computed;
// an unresolvable revision fails the whole call.
func (r *Resolver) IsAffected(ctx context.Context, workspace, target string, rng Range, topological bool) (bool, error) {
	if !r.vcs.RevisionExists(ctx, rng.Rev1) {
		return false, zerr.With(domain.ErrBadRevision, "rev", rng.Rev1)
	}
	if rng.Rev2 != "" && !r.vcs.RevisionExists(ctx, rng.Rev2) {
		return false, zerr.With(domain.ErrBadRevision, "rev", rng.Rev2)
	}

	memo := make(map[string]bool)
	return r.resolve(ctx, workspace, target, rng, topological, memo)
}

func (r *Resolver) resolve(ctx context.Context, name, target string, rng Range, topological bool, memo map[string]bool) (bool, error) {
	if v, ok := memo[name]; ok {
		return v, nil
	}
	// Mark visited before recursing so a (spec-forbidden, but
	// defensively handled) cycle can't loop forever.
	memo[name] = false

	ws, ok := r.graph.Get(name)
	if !ok {
		return false, zerr.With(domain.ErrUnknownTarget, "workspace", name)
	}

	local, err := r.locallyAffected(ctx, ws, target, rng)
	if err != nil {
		return false, err
	}
	if local {
		memo[name] = true
		return true, nil
	}
	if !topological {
		return false, nil
	}

	for _, dep := range r.graph.DependenciesOf(name) {
		depAffected, err := r.resolve(ctx, dep, target, rng, topological, memo)
		if err != nil {
			return false, err
		}
		if depAffected {
			memo[name] = true
			return true, nil
		}
	}
	return false, nil
}

func (r *Resolver) locallyAffected(ctx context.Context, ws domain.Workspace, target string, rng Range) (bool, error) {
	diffs, err := r.vcs.DiffNames(ctx, rng.Rev1, rng.Rev2, ws.Root)
	if err != nil {
		return false, err
	}
	if len(diffs) == 0 {
		return false, nil
	}

	var patterns []string
	if cfg, ok := ws.Targets[target]; ok {
		patterns = cfg.Src
	}

	if matchesEverything(patterns) {
		return true, nil
	}

	expanded, err := r.expandPatterns(ws.Root, patterns)
	if err != nil {
		return false, err
	}

	diffSet := make(map[string]struct{}, len(diffs))
	for _, d := range diffs {
		diffSet[d] = struct{}{}
	}
	for _, path := range expanded {
		if _, ok := diffSet[path]; ok {
			return true, nil
		}
	}
	return false, nil
}

func matchesEverything(patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return len(patterns) == 1 && patterns[0] == "**"
}

// expandPatterns globs each pattern under workspaceRoot and returns the
// matches as paths relative to the project root, so they compare
// directly against vcs.diff_names output.
func (r *Resolver) expandPatterns(workspaceRoot string, patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(workspaceRoot, pattern))
		if err != nil {
			return nil, zerr.With(domain.ErrBadWorkspaceGlob, "pattern", pattern)
		}
		for _, m := range matches {
			rel, err := filepath.Rel(r.projectRoot, m)
			if err != nil {
				return nil, zerr.Wrap(err, "failed to relativize matched path")
			}
			out = append(out, filepath.ToSlash(rel))
		}
	}
	return out, nil
}
