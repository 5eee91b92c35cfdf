package affected

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/internal/adapters/config"
	"go.trai.ch/same/internal/adapters/vcs"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
)

// NodeID is the unique identifier for the affected-workspace Resolver
// Graft node.
const NodeID graft.ID = "engine.affected"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.GraphNodeID, vcs.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			graph, err := graft.Dep[*domain.WorkspaceGraph](ctx)
			if err != nil {
				return nil, err
			}
			probe, err := graft.Dep[ports.VcsProbe](ctx)
			if err != nil {
				return nil, err
			}
			root, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewResolver(graph, probe, root), nil
		},
	})
}
