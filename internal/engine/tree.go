package engine

import (
	"log/slog"

	"github.com/avandeursen/mosaic/internal/domain"
)

// TreeBuilder converts a flat, parent-referencing record set into a rooted
// Node tree. Building is a pure function of (record set, root id): identical
// inputs always yield an isomorphic tree. It never fails; a missing root
// simply yields a nil tree, which callers render as an empty state.
type TreeBuilder struct {
	logger *slog.Logger
}

// NewTreeBuilder creates a TreeBuilder. A nil logger disables diagnostics.
func NewTreeBuilder(logger *slog.Logger) *TreeBuilder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TreeBuilder{logger: logger}
}

// Build assembles the subtree reachable from rootID.
//
// One pass indexes records by id (first write wins on duplicates, logged),
// a second pass groups children by parent in input order, then the tree is
// assembled from the root with a visited guard so a corrupt parent cycle
// can never loop. Records whose parent_id does not resolve within the set
// are dropped with a diagnostic.
func (b *TreeBuilder) Build(records []*domain.Resource, rootID string) *Node {
	byID := make(map[string]*domain.Resource, len(records))
	order := make([]*domain.Resource, 0, len(records))
	for _, r := range records {
		if r == nil || r.IsDeleted {
			continue
		}
		if _, dup := byID[r.ID]; dup {
			b.logger.Warn("duplicate resource id, keeping first", "id", r.ID)
			continue
		}
		byID[r.ID] = r
		order = append(order, r)
	}

	childIDs := make(map[string][]string, len(order))
	for _, r := range order {
		if r.ID == rootID || r.ParentID == nil {
			continue
		}
		if _, ok := byID[*r.ParentID]; !ok {
			b.logger.Debug("dropping orphan resource", "id", r.ID, "parent_id", *r.ParentID)
			continue
		}
		childIDs[*r.ParentID] = append(childIDs[*r.ParentID], r.ID)
	}

	root, ok := byID[rootID]
	if !ok {
		return nil
	}

	visited := make(map[string]bool, len(order))
	return b.assemble(root, byID, childIDs, visited)
}

func (b *TreeBuilder) assemble(r *domain.Resource, byID map[string]*domain.Resource, childIDs map[string][]string, visited map[string]bool) *Node {
	if visited[r.ID] {
		b.logger.Warn("parent cycle detected, truncating branch", "id", r.ID)
		return nil
	}
	visited[r.ID] = true

	n := newNode(r)
	for _, childID := range childIDs[r.ID] {
		if child := b.assemble(byID[childID], byID, childIDs, visited); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// newNode projects a persisted record into the view-model shape. The record
// metadata is copied, never aliased, and select record fields are mirrored
// in so slots can reach them without knowing the storage schema.
func newNode(r *domain.Resource) *Node {
	meta := make(map[string]any, len(r.Metadata)+2)
	for k, v := range r.Metadata {
		meta[k] = v
	}
	meta[MetaStatus] = string(r.Status)
	if r.Description != "" {
		if _, ok := meta[MetaDescription]; !ok {
			meta[MetaDescription] = r.Description
		}
	}
	if r.ScheduledAt != nil {
		if _, ok := meta[MetaScheduledAt]; !ok {
			meta[MetaScheduledAt] = r.ScheduledAt.Format(timeLayout)
		}
	}

	variant := string(r.Type)
	if v, ok := meta[MetaVariant].(string); ok && v != "" {
		variant = v
	}

	return &Node{
		ID:       r.ID,
		Type:     r.Type,
		Variant:  variant,
		Title:    r.Title,
		Metadata: meta,
	}
}

// BuildIndex returns a lookup table of every node in the tree by id.
// The index is a weak lookup-by-id relation, not an ownership edge.
func BuildIndex(root *Node) map[string]*Node {
	index := make(map[string]*Node)
	root.Walk(func(n *Node) {
		if _, ok := index[n.ID]; !ok {
			index[n.ID] = n
		}
	})
	return index
}
