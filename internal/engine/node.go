package engine

import (
	"github.com/avandeursen/mosaic/internal/domain"
)

// Node is the ephemeral hierarchical view-model derived from flat Resource
// records. Trees are rebuilt wholesale on every refresh and never patched
// incrementally; a Node is exclusively owned by its tree root.
type Node struct {
	ID       string              `json:"id"`
	Type     domain.ResourceType `json:"type"`
	Variant  string              `json:"variant"`
	Title    string              `json:"title"`
	Metadata map[string]any      `json:"metadata"`
	Children []*Node             `json:"children"`
}

// Reserved metadata keys the builder injects from the persisted record so
// generic view components can reach them through slots.
const (
	MetaStatus      = "status"
	MetaDescription = "description"
	MetaVariant     = "variant"
	MetaSlots       = "slots"
	MetaScheduledAt = "scheduled_at"
	MetaIsEvent     = "is_event"
)

// Status reads the record status mirrored into the node metadata.
func (n *Node) Status() domain.ResourceStatus {
	if s, ok := n.Metadata[MetaStatus].(string); ok {
		return domain.ResourceStatus(s)
	}
	return domain.StatusActive
}

// Walk visits the node and all descendants depth-first in child order.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Descendants returns every node below n in depth-first child order,
// excluding n itself.
func (n *Node) Descendants() []*Node {
	var out []*Node
	for _, c := range n.Children {
		c.Walk(func(d *Node) { out = append(out, d) })
	}
	return out
}

// BehaviorDescriptor is the closed-vocabulary declarative action the
// presentation layer hands to the dispatcher.
type BehaviorDescriptor struct {
	Action  string         `json:"action"`
	Target  string         `json:"target,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Behavior action vocabulary. Anything else is logged and ignored.
const (
	ActionUpdateField  = "update_field"
	ActionToggleStatus = "toggle_status"
	ActionMoveNode     = "move_node"
	ActionMoveToColumn = "move_to_column"
	ActionLogEvent     = "log_event"
)
