package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/same/internal/core/ports"
)

// NodeID identifies the logger node in the dependency graph. Every other
// adapter node depends on it so a single Logger instance is shared
// across a run.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run:       func(_ context.Context) (ports.Logger, error) { return New(), nil },
	})
}
