package linear

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the linear renderer Graft node.
const NodeID graft.ID = "adapter.linear"

// Node is the graft node for dependency injection. The linear renderer
// has no dependencies of its own.
type Node struct{}

// NewNode creates a new Node.
func NewNode() *Node {
	return &Node{}
}

// Renderer returns a new Renderer writing to stdout/stderr.
func (n *Node) Renderer() *Renderer {
	return NewRenderer(nil, nil)
}

func init() {
	graft.Register(graft.Node[*Node]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Node, error) {
			return NewNode(), nil
		},
	})
}
