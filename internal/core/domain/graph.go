package domain

import (
	"iter"
	"sort"

	"go.trai.ch/zerr"
)

// WorkspaceGraph is the dependency graph over a project's workspaces.
// Edges A -> B are derived from A's manifest dependencies that name a
// known workspace B; external packages are not represented as nodes.
type WorkspaceGraph struct {
	workspaces map[string]Workspace
	order      []string // deterministic insertion order, for stable iteration
}

// NewWorkspaceGraph creates an empty WorkspaceGraph.
func NewWorkspaceGraph() *WorkspaceGraph {
	return &WorkspaceGraph{workspaces: make(map[string]Workspace)}
}

// AddWorkspace adds a workspace to the graph.
func (g *WorkspaceGraph) AddWorkspace(w Workspace) error {
	if _, exists := g.workspaces[w.Name]; exists {
		return zerr.With(zerr.New("duplicate workspace name"), "workspace", w.Name)
	}
	g.workspaces[w.Name] = w
	g.order = append(g.order, w.Name)
	return nil
}

// Get returns the named workspace.
func (g *WorkspaceGraph) Get(name string) (Workspace, bool) {
	w, ok := g.workspaces[name]
	return w, ok
}

// Workspaces returns every workspace in insertion order.
func (g *WorkspaceGraph) Workspaces() []Workspace {
	out := make([]Workspace, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.workspaces[name])
	}
	return out
}

// knownDependencies filters a workspace's declared dependencies down to
// the ones that are themselves workspaces in this graph.
func (g *WorkspaceGraph) knownDependencies(w Workspace) []string {
	deps := make([]string, 0, len(w.Dependencies))
	for _, d := range w.Dependencies {
		if _, ok := g.workspaces[d]; ok {
			deps = append(deps, d)
		}
	}
	return deps
}

// DependenciesOf returns the known-workspace dependencies of a workspace.
func (g *WorkspaceGraph) DependenciesOf(name string) []string {
	w, ok := g.workspaces[name]
	if !ok {
		return nil
	}
	return g.knownDependencies(w)
}

// DependentsOf returns every workspace that directly depends on name.
func (g *WorkspaceGraph) DependentsOf(name string) []string {
	var dependents []string
	for _, depName := range g.order {
		for _, dep := range g.knownDependencies(g.workspaces[depName]) {
			if dep == name {
				dependents = append(dependents, depName)
				break
			}
		}
	}
	return dependents
}

// Validate checks the graph for cycles. It must be called (and must
// succeed) before Topological is used.
func (g *WorkspaceGraph) Validate() error {
	visited := make(map[string]int) // 0 unvisited, 1 visiting, 2 done
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = 1
		path = append(path, name)

		for _, dep := range g.knownDependencies(g.workspaces[name]) {
			switch visited[dep] {
			case 1:
				return g.cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range g.order {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *WorkspaceGraph) cycleError(path []string, dep string) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cycle := ""
	for i := start; i < len(path); i++ {
		cycle += path[i] + " -> "
	}
	cycle += dep
	return zerr.With(ErrCycleDetected, "cycle", cycle)
}

// Topological returns workspaces in dependency-first (post) order. If `to`
// is non-empty, only the transitive dependency closure of those roots is
// visited; otherwise every workspace is visited, in deterministic
// (sorted-root) order for disconnected components.
func (g *WorkspaceGraph) Topological(to ...string) iter.Seq[Workspace] {
	roots := to
	if len(roots) == 0 {
		roots = append([]string(nil), g.order...)
		sort.Strings(roots)
	}

	return func(yield func(Workspace) bool) {
		visited := make(map[string]bool)
		var visit func(name string) bool
		visit = func(name string) bool {
			if visited[name] {
				return true
			}
			visited[name] = true
			for _, dep := range g.knownDependencies(g.workspaces[name]) {
				if !visit(dep) {
					return false
				}
			}
			w, ok := g.workspaces[name]
			if !ok {
				return true
			}
			return yield(w)
		}
		for _, root := range roots {
			if !visit(root) {
				return
			}
		}
	}
}
