package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher graft node.
const NodeID graft.ID = "adapter.watcher"

// GraphNodeID names the graft node that must supply the resolved
// *domain.WorkspaceGraph this Watcher resolves changed paths against.
const GraphNodeID graft.ID = "engine.workspace_graph"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{GraphNodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			graph, err := graft.Dep[*domain.WorkspaceGraph](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(graph), nil
		},
	})
}
