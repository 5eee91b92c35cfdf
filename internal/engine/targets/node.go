package targets

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/internal/adapters/config"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/engine/affected"
)

// NodeID is the unique identifier for the TargetsResolver Graft node.
const NodeID graft.ID = "engine.targets"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.GraphNodeID, affected.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			graph, err := graft.Dep[*domain.WorkspaceGraph](ctx)
			if err != nil {
				return nil, err
			}
			aff, err := graft.Dep[*affected.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(graph, aff), nil
		},
	})
}
