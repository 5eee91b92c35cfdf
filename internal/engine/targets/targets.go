// Package targets resolves a target name and RunOptions into an
// OrderedTargets execution plan (§4.6): one flat step in parallel mode,
// or dependency-ordered steps in topological mode.
package targets

import (
	"context"
	"sort"

	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/engine/affected"
	"go.trai.ch/zerr"
)

// Resolver builds an OrderedTargets plan from a WorkspaceGraph and an
// AffectedResolver.
type Resolver struct {
	graph    *domain.WorkspaceGraph
	affected *affected.Resolver
}

// NewResolver creates a TargetsResolver over graph, using aff to
// compute per-workspace affected status when a RunOptions.Affected
// range is supplied.
func NewResolver(graph *domain.WorkspaceGraph, aff *affected.Resolver) *Resolver {
	return &Resolver{graph: graph, affected: aff}
}

// Resolve builds the plan for target under opts.
func (r *Resolver) Resolve(ctx context.Context, target string, opts domain.RunOptions) (domain.OrderedTargets, error) {
	if opts.Mode == domain.ModeTopological {
		return r.resolveTopological(ctx, target, opts)
	}
	return r.resolveParallel(ctx, target, opts)
}

func (r *Resolver) resolveParallel(ctx context.Context, target string, opts domain.RunOptions) (domain.OrderedTargets, error) {
	names := opts.Workspaces
	if len(names) == 0 {
		for _, w := range r.graph.Workspaces() {
			names = append(names, w.Name)
		}
		sort.Strings(names)
	}

	step := make(domain.Step, 0, len(names))
	for _, name := range names {
		w, ok := r.graph.Get(name)
		if !ok {
			return nil, zerr.With(domain.ErrUnknownTarget, "workspace", name)
		}
		rt, err := r.resolvedTarget(ctx, w, target, opts, false)
		if err != nil {
			return nil, err
		}
		step = append(step, rt)
	}
	return domain.OrderedTargets{step}, nil
}

// resolveTopological partitions the eligible set (the transitive
// dependency closure of opts.To, or every workspace) into steps: step k
// holds every workspace whose eligible-set dependencies are all placed
// in steps 0..k-1.
func (r *Resolver) resolveTopological(ctx context.Context, target string, opts domain.RunOptions) (domain.OrderedTargets, error) {
	var ordered []domain.Workspace
	for w := range r.graph.Topological(opts.To...) {
		ordered = append(ordered, w)
	}

	eligible := make(map[string]bool, len(ordered))
	for _, w := range ordered {
		eligible[w.Name] = true
	}

	stepOf := make(map[string]int, len(ordered))
	maxStep := -1
	for _, w := range ordered {
		step := 0
		for _, dep := range r.graph.DependenciesOf(w.Name) {
			if !eligible[dep] {
				continue
			}
			if s := stepOf[dep] + 1; s > step {
				step = s
			}
		}
		stepOf[w.Name] = step
		if step > maxStep {
			maxStep = step
		}
	}

	steps := make([]domain.Step, maxStep+1)
	for _, w := range ordered {
		rt, err := r.resolvedTarget(ctx, w, target, opts, true)
		if err != nil {
			return nil, err
		}
		idx := stepOf[w.Name]
		steps[idx] = append(steps[idx], rt)
	}
	return domain.OrderedTargets(steps), nil
}

func (r *Resolver) resolvedTarget(ctx context.Context, w domain.Workspace, target string, opts domain.RunOptions, topological bool) (domain.ResolvedTarget, error) {
	isAffected := true
	if opts.Affected != nil {
		rng := affected.Range{Rev1: opts.Affected.Rev1, Rev2: opts.Affected.Rev2}
		var err error
		isAffected, err = r.affected.IsAffected(ctx, w.Name, target, rng, topological)
		if err != nil {
			return domain.ResolvedTarget{}, err
		}
	}
	return domain.ResolvedTarget{
		Workspace:  w.Name,
		Affected:   isAffected,
		HasCommand: w.HasTarget(target),
	}, nil
}
