package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/internal/adapters/cache"
	"go.trai.ch/same/internal/adapters/config"
	"go.trai.ch/same/internal/adapters/linear"
	"go.trai.ch/same/internal/adapters/logger"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/same/internal/engine/scheduler"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			scheduler.NodeID,
			cache.NodeID,
			config.GraphNodeID,
			linear.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}
			cacheStore, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			graph, err := graft.Dep[*domain.WorkspaceGraph](ctx)
			if err != nil {
				return nil, err
			}
			node, err := graft.Dep[*linear.Node](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(sched, cacheStore, graph, node.Renderer(), log), nil
		},
	})
}
