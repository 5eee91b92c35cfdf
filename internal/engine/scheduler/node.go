package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/internal/adapters/cache"
	"go.trai.ch/same/internal/adapters/config"
	"go.trai.ch/same/internal/adapters/fingerprint"
	"go.trai.ch/same/internal/adapters/logger"
	"go.trai.ch/same/internal/adapters/process"
	"go.trai.ch/same/internal/adapters/watcher"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/same/internal/engine/targets"
)

// NodeID is the unique identifier for the Scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.GraphNodeID,
			targets.NodeID,
			cache.NodeID,
			fingerprint.NodeID,
			process.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			graph, err := graft.Dep[*domain.WorkspaceGraph](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*targets.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			cacheStore, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			fp, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScheduler(graph, resolver, cacheStore, fp, runner, watch, log), nil
		},
	})
}
