package vcs

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/internal/adapters/logger"
	"go.trai.ch/same/internal/core/ports"
)

// NodeID is the unique identifier for the VcsProbe Graft node.
const NodeID graft.ID = "adapter.vcs"

func init() {
	graft.Register(graft.Node[ports.VcsProbe]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.VcsProbe, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			root, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewProbe(root, log), nil
		},
	})
}
