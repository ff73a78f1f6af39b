package hierarchy

import "github.com/ivlev/dopesheet/internal/curve"

// Cache holds the tree built from a store until Invalidate is called.
// Store edits are not detected.
type Cache struct {
	store *curve.Store
	tree  *Node
}

func NewCache(store *curve.Store) *Cache {
	return &Cache{store: store}
}

// Tree returns the cached tree, rebuilding it if needed
func (c *Cache) Tree() *Node {
	if c.tree == nil {
		c.tree = Build(c.store.Sorted())
	}
	return c.tree
}

// Invalidate drops the cached tree
func (c *Cache) Invalidate() {
	c.tree = nil
}
