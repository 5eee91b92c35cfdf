package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports/mocks"
	"go.trai.ch/same/internal/engine/affected"
	"go.trai.ch/same/internal/engine/scheduler"
	"go.trai.ch/same/internal/engine/targets"
	"go.uber.org/mock/gomock"
)

func buildTarget(globs ...string) domain.TargetConfig {
	if len(globs) == 0 {
		globs = []string{"**"}
	}
	return domain.TargetConfig{Commands: []domain.Command{{Run: "build"}}, Src: globs}
}

// independentGraph constructs a two-workspace graph, a and b, with no
// dependency between them.
func independentGraph(t *testing.T) *domain.WorkspaceGraph {
	t.Helper()
	g := domain.NewWorkspaceGraph()
	require.NoError(t, g.AddWorkspace(domain.Workspace{Name: "a", Root: "/repo/a", Targets: map[string]domain.TargetConfig{"build": buildTarget()}}))
	require.NoError(t, g.AddWorkspace(domain.Workspace{Name: "b", Root: "/repo/b", Targets: map[string]domain.TargetConfig{"build": buildTarget()}}))
	require.NoError(t, g.Validate())
	return g
}

// chainGraph constructs a -> b (b depends on a).
func chainGraph(t *testing.T) *domain.WorkspaceGraph {
	t.Helper()
	g := domain.NewWorkspaceGraph()
	require.NoError(t, g.AddWorkspace(domain.Workspace{Name: "a", Root: "/repo/a", Targets: map[string]domain.TargetConfig{"build": buildTarget()}}))
	require.NoError(t, g.AddWorkspace(domain.Workspace{Name: "b", Root: "/repo/b", Dependencies: []string{"a"}, Targets: map[string]domain.TargetConfig{"build": buildTarget()}}))
	require.NoError(t, g.Validate())
	return g
}

type testMocks struct {
	cache  *mocks.MockCacheStore
	fp     *mocks.MockFingerprinter
	runner *mocks.MockProcessRunner
	watch  *mocks.MockWatcher
	logger *mocks.MockLogger
}

func newTestMocks(ctrl *gomock.Controller) testMocks {
	return testMocks{
		cache:  mocks.NewMockCacheStore(ctrl),
		fp:     mocks.NewMockFingerprinter(ctrl),
		runner: mocks.NewMockProcessRunner(ctrl),
		watch:  mocks.NewMockWatcher(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
}

func newScheduler(graph *domain.WorkspaceGraph, m testMocks) *scheduler.Scheduler {
	resolver := targets.NewResolver(graph, affected.NewResolver(graph, nil, "/repo"))
	return scheduler.NewScheduler(graph, resolver, m.cache, m.fp, m.runner, m.watch, m.logger)
}

func drain(t *testing.T, st *scheduler.Stream) []domain.RunCommandEvent {
	t.Helper()
	var events []domain.RunCommandEvent
	for ev := range st.Events {
		events = append(events, ev)
	}
	return events
}

func kindsFor(events []domain.RunCommandEvent, workspace string) []domain.EventKind {
	var kinds []domain.EventKind
	for _, ev := range events {
		if ev.Workspace == workspace {
			kinds = append(kinds, ev.Kind)
		}
	}
	return kinds
}

func TestScheduler_Parallel_AllSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestMocks(ctrl)
	g := independentGraph(t)

	m.fp.EXPECT().Fingerprint(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Fingerprint{"cmd": "build"}, nil).AnyTimes()
	m.cache.EXPECT().Read(gomock.Any(), "build", gomock.Any()).Return(nil, false, nil).AnyTimes()
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "build", gomock.Any()).
		Return(domain.CommandResult{ExitCode: 0}, nil).Times(2)
	m.cache.EXPECT().Write(gomock.Any(), "build", gomock.Any()).Return(nil).Times(2)

	s := newScheduler(g, m)
	st := s.RunCommand(context.Background(), scheduler.RunParams{Target: "build", Options: domain.RunOptions{Mode: domain.ModeParallel}})
	events := drain(t, st)

	require.NoError(t, st.Err())
	require.Equal(t, domain.EventTargetsResolved, events[0].Kind)
	require.Equal(t, []domain.EventKind{domain.EventNodeStarted, domain.EventNodeProcessed}, kindsFor(events, "a"))
	require.Equal(t, []domain.EventKind{domain.EventNodeStarted, domain.EventNodeProcessed}, kindsFor(events, "b"))
}

func TestScheduler_Parallel_OneFailure_StreamNeverErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestMocks(ctrl)
	g := independentGraph(t)

	m.fp.EXPECT().Fingerprint(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Fingerprint{"cmd": "build"}, nil).AnyTimes()
	m.cache.EXPECT().Read(gomock.Any(), "build", gomock.Any()).Return(nil, false, nil).AnyTimes()

	failure := errors.New("boom")
	m.runner.EXPECT().Run(gomock.Any(), "/repo/a", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "build", "a").
		Return(domain.CommandResult{}, failure)
	m.runner.EXPECT().Run(gomock.Any(), "/repo/b", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "build", "b").
		Return(domain.CommandResult{ExitCode: 0}, nil)
	m.cache.EXPECT().Write(gomock.Any(), "build", gomock.Any()).Return(nil).Times(1)
	m.cache.EXPECT().Invalidate("/repo/a", "build").Return(nil).Times(1)

	s := newScheduler(g, m)
	st := s.RunCommand(context.Background(), scheduler.RunParams{Target: "build", Options: domain.RunOptions{Mode: domain.ModeParallel}})
	events := drain(t, st)

	require.NoError(t, st.Err(), "parallel mode reports errors as events, never as a stream error")
	require.Equal(t, []domain.EventKind{domain.EventNodeStarted, domain.EventNodeErrored, domain.EventCacheInvalidated}, kindsFor(events, "a"))
	require.Contains(t, kindsFor(events, "a"), domain.EventCacheInvalidated)
}

func TestScheduler_Topological_MidStepError_AbortsSubsequentSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestMocks(ctrl)
	g := chainGraph(t)

	m.fp.EXPECT().Fingerprint(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Fingerprint{"cmd": "build"}, nil).AnyTimes()
	m.cache.EXPECT().Read(gomock.Any(), "build", gomock.Any()).Return(nil, false, nil).AnyTimes()

	failure := errors.New("boom")
	m.runner.EXPECT().Run(gomock.Any(), "/repo/a", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "build", "a").
		Return(domain.CommandResult{}, failure)
	// b must never execute: step 1 is never entered.
	m.cache.EXPECT().Invalidate("/repo/a", "build").Return(nil).Times(1)
	m.cache.EXPECT().Invalidate("/repo/b", "build").Return(nil).Times(1)

	s := newScheduler(g, m)
	st := s.RunCommand(context.Background(), scheduler.RunParams{Target: "build", Options: domain.RunOptions{Mode: domain.ModeTopological}})
	events := drain(t, st)

	require.ErrorIs(t, st.Err(), failure)
	require.Equal(t, []domain.EventKind{domain.EventCacheInvalidated}, kindsFor(events, "b"), "b's step must never be entered after a's step aborts; b is only invalidated")

	var invalidated []string
	for _, ev := range events {
		if ev.Kind == domain.EventCacheInvalidated {
			invalidated = append(invalidated, ev.Workspace)
		}
	}
	require.ElementsMatch(t, []string{"a", "b"}, invalidated)
}

func TestScheduler_CacheHit_NoProcessSpawned(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestMocks(ctrl)
	g := independentGraph(t)

	fp := domain.Fingerprint{"cmd": "build"}
	m.fp.EXPECT().Fingerprint(gomock.Any(), gomock.Any(), gomock.Any()).Return(fp, nil).AnyTimes()
	m.cache.EXPECT().Read(gomock.Any(), "build", fp).Return([]domain.CommandResult{{ExitCode: 0}}, true, nil).AnyTimes()
	// No Run or Write expectations: a cache hit must never spawn a process.

	s := newScheduler(g, m)
	st := s.RunCommand(context.Background(), scheduler.RunParams{Target: "build", Options: domain.RunOptions{Mode: domain.ModeParallel}})
	events := drain(t, st)

	require.NoError(t, st.Err())
	for _, ev := range events {
		if ev.Kind == domain.EventNodeProcessed {
			require.True(t, ev.FromCache)
		}
	}
}

func TestScheduler_EmptyPlan_CompletesImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestMocks(ctrl)
	g := domain.NewWorkspaceGraph()
	require.NoError(t, g.Validate())

	s := newScheduler(g, m)
	st := s.RunCommand(context.Background(), scheduler.RunParams{Target: "build", Options: domain.RunOptions{Mode: domain.ModeTopological}})
	events := drain(t, st)

	require.NoError(t, st.Err())
	require.Len(t, events, 1)
	require.Equal(t, domain.EventTargetsResolved, events[0].Kind)
}

func TestScheduler_ErrorInvalidatingCache_IsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestMocks(ctrl)
	g := independentGraph(t)

	m.fp.EXPECT().Fingerprint(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Fingerprint{"cmd": "build"}, nil).AnyTimes()
	m.cache.EXPECT().Read(gomock.Any(), "build", gomock.Any()).Return(nil, false, nil).AnyTimes()

	failure := errors.New("boom")
	m.runner.EXPECT().Run(gomock.Any(), "/repo/a", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "build", "a").
		Return(domain.CommandResult{}, failure)
	m.runner.EXPECT().Run(gomock.Any(), "/repo/b", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "build", "b").
		Return(domain.CommandResult{ExitCode: 0}, nil)
	m.cache.EXPECT().Write(gomock.Any(), "build", gomock.Any()).Return(nil).Times(1)

	invalidationErr := domain.ErrInvalidationFailed
	m.cache.EXPECT().Invalidate("/repo/a", "build").Return(invalidationErr).Times(1)

	s := newScheduler(g, m)
	st := s.RunCommand(context.Background(), scheduler.RunParams{Target: "build", Options: domain.RunOptions{Mode: domain.ModeParallel}})
	events := drain(t, st)

	require.ErrorIs(t, st.Err(), invalidationErr)

	var sawFatal bool
	for _, ev := range events {
		if ev.Kind == domain.EventErrorInvalidatingCache {
			sawFatal = true
		}
	}
	require.True(t, sawFatal)
}

func TestScheduler_ConcurrencyCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestMocks(ctrl)
	g := domain.NewWorkspaceGraph()
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, g.AddWorkspace(domain.Workspace{Name: name, Root: "/repo/" + name, Targets: map[string]domain.TargetConfig{"build": buildTarget()}}))
	}
	require.NoError(t, g.Validate())

	m.fp.EXPECT().Fingerprint(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Fingerprint{"cmd": "build"}, nil).AnyTimes()
	m.cache.EXPECT().Read(gomock.Any(), "build", gomock.Any()).Return(nil, false, nil).AnyTimes()
	m.cache.EXPECT().Write(gomock.Any(), "build", gomock.Any()).Return(nil).AnyTimes()

	var current, max atomic.Int32
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "build", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ domain.Command, _ map[string]string, _ domain.StdioMode, _, _, _ string) (domain.CommandResult, error) {
			n := current.Add(1)
			for {
				m := max.Load()
				if n <= m || max.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return domain.CommandResult{ExitCode: 0}, nil
		}).Times(4)

	s := scheduler.NewScheduler(g, targets.NewResolver(g, affected.NewResolver(g, nil, "/repo")), m.cache, m.fp, m.runner, m.watch, m.logger).WithConcurrency(2)
	st := s.RunCommand(context.Background(), scheduler.RunParams{Target: "build", Options: domain.RunOptions{Mode: domain.ModeParallel}})
	drain(t, st)

	require.NoError(t, st.Err())
	require.LessOrEqual(t, int(max.Load()), 2)
}
