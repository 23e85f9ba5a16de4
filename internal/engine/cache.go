package engine

import "sync"

// Cache memoizes built trees by root id so repeated reads between mutations
// do not rebuild. Trees are pure functions of the record set, so the only
// correctness requirement is that every mutation invalidates dependents;
// the dispatcher does that after each write, success or rollback alike.
type Cache struct {
	mu    sync.Mutex
	trees map[string]*cachedTree
}

type cachedTree struct {
	root  *Node
	index map[string]*Node
}

// NewCache creates an empty tree cache.
func NewCache() *Cache {
	return &Cache{trees: make(map[string]*cachedTree)}
}

// Tree returns the memoized tree for rootID, building it on a miss. The
// build callback may return a nil root (missing record), which is cached as
// the empty state like any other result.
func (c *Cache) Tree(rootID string, build func() (*Node, error)) (*Node, error) {
	c.mu.Lock()
	if entry, ok := c.trees[rootID]; ok {
		c.mu.Unlock()
		return entry.root, nil
	}
	c.mu.Unlock()

	root, err := build()
	if err != nil {
		return nil, err
	}

	entry := &cachedTree{root: root}
	if root != nil {
		entry.index = BuildIndex(root)
	}

	c.mu.Lock()
	c.trees[rootID] = entry
	c.mu.Unlock()
	return root, nil
}

// Node looks up a node by id within the cached tree for rootID. Returns nil
// when the tree is not cached or the id is unknown.
func (c *Cache) Node(rootID, nodeID string) *Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.trees[rootID]
	if !ok || entry.index == nil {
		return nil
	}
	return entry.index[nodeID]
}

// Lookup returns a NodeLookup over the cached tree for rootID, suitable for
// aggregation source_id indirection.
func (c *Cache) Lookup(rootID string) NodeLookup {
	return func(id string) *Node {
		return c.Node(rootID, id)
	}
}

// Invalidate drops the cached tree for one root.
func (c *Cache) Invalidate(rootID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.trees, rootID)
}

// InvalidateAll drops every cached tree. Mutations use this: a write to any
// record may affect any view that includes it.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees = make(map[string]*cachedTree)
}
