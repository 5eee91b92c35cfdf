package targets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/engine/affected"
	"go.trai.ch/same/internal/engine/targets"
)

// fixtureGraph builds the canonical fixture from the spec's end-to-end
// scenarios: {workspace-a, workspace-c} -> {workspace-b, app-a} -> {api} -> {app-b}.
func fixtureGraph(t *testing.T) *domain.WorkspaceGraph {
	t.Helper()
	g := domain.NewWorkspaceGraph()
	lint := map[string]domain.TargetConfig{"lint": {Commands: []domain.Command{{Run: "lint"}}}}

	workspaces := []domain.Workspace{
		{Name: "workspace-a", Root: "/repo/workspace-a", Targets: lint},
		{Name: "workspace-c", Root: "/repo/workspace-c", Targets: lint},
		{Name: "workspace-b", Root: "/repo/workspace-b", Dependencies: []string{"workspace-a"}, Targets: lint},
		{Name: "app-a", Root: "/repo/app-a", Dependencies: []string{"workspace-c"}, Targets: lint},
		{Name: "api", Root: "/repo/api", Dependencies: []string{"workspace-b", "app-a"}, Targets: lint},
		{Name: "app-b", Root: "/repo/app-b", Dependencies: []string{"api"}, Targets: lint},
	}
	for _, w := range workspaces {
		require.NoError(t, g.AddWorkspace(w))
	}
	require.NoError(t, g.Validate())
	return g
}

func TestResolver_Parallel_AllEligible(t *testing.T) {
	g := fixtureGraph(t)
	r := targets.NewResolver(g, affected.NewResolver(g, nil, "/repo"))

	plan, err := r.Resolve(context.Background(), "lint", domain.RunOptions{Mode: domain.ModeParallel})
	require.NoError(t, err)
	require.Len(t, plan, 1)
	require.Len(t, plan[0], 6)
	for _, rt := range plan[0] {
		require.True(t, rt.Affected)
		require.True(t, rt.HasCommand)
	}
}

func TestResolver_Topological_FourStepLayering(t *testing.T) {
	g := fixtureGraph(t)
	r := targets.NewResolver(g, affected.NewResolver(g, nil, "/repo"))

	plan, err := r.Resolve(context.Background(), "lint", domain.RunOptions{Mode: domain.ModeTopological})
	require.NoError(t, err)
	require.Len(t, plan, 4)

	require.ElementsMatch(t, []string{"workspace-a", "workspace-c"}, workspaceNames(plan[0]))
	require.ElementsMatch(t, []string{"workspace-b", "app-a"}, workspaceNames(plan[1]))
	require.ElementsMatch(t, []string{"api"}, workspaceNames(plan[2]))
	require.ElementsMatch(t, []string{"app-b"}, workspaceNames(plan[3]))
}

func TestResolver_Parallel_RestrictedToWorkspaces(t *testing.T) {
	g := fixtureGraph(t)
	r := targets.NewResolver(g, affected.NewResolver(g, nil, "/repo"))

	plan, err := r.Resolve(context.Background(), "lint", domain.RunOptions{
		Mode:       domain.ModeParallel,
		Workspaces: []string{"api"},
	})
	require.NoError(t, err)
	require.Len(t, plan, 1)
	require.Len(t, plan[0], 1)
	require.Equal(t, "api", plan[0][0].Workspace)
}

func TestResolver_Parallel_HasCommandFalseForMissingTarget(t *testing.T) {
	g := fixtureGraph(t)
	r := targets.NewResolver(g, affected.NewResolver(g, nil, "/repo"))

	plan, err := r.Resolve(context.Background(), "does-not-exist", domain.RunOptions{Mode: domain.ModeParallel})
	require.NoError(t, err)
	for _, rt := range plan[0] {
		require.False(t, rt.HasCommand)
	}
}

func workspaceNames(step domain.Step) []string {
	names := make([]string, 0, len(step))
	for _, rt := range step {
		names = append(names, rt.Workspace)
	}
	return names
}
