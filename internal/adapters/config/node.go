package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/internal/adapters/logger"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config"

// GraphNodeID is the unique identifier for the resolved *domain.WorkspaceGraph
// Graft node. Other packages (targets, affected, scheduler, watcher) depend
// on this node rather than reloading the manifest themselves.
const GraphNodeID graft.ID = "engine.workspace_graph"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*domain.WorkspaceGraph]{
		ID:        GraphNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.WorkspaceGraph, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			root, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			graph, err := loader.Load(root)
			if err != nil {
				return nil, err
			}
			if err := graph.Validate(); err != nil {
				return nil, err
			}
			return graph, nil
		},
	})
}
