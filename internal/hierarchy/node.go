package hierarchy

import "github.com/ivlev/dopesheet/internal/curve"

// Kind tags what a node represents
type Kind int

const (
	Utility Kind = iota
	ClipSummary
	Group
	Leaf
)

func (k Kind) String() string {
	switch k {
	case Utility:
		return "utility"
	case ClipSummary:
		return "summary"
	case Group:
		return "group"
	case Leaf:
		return "leaf"
	}
	return "unknown"
}

// Node is one row source of the dope sheet tree.
//
// Leaf nodes own exactly one curve; Group nodes own the curves of their
// children; the ClipSummary node owns every persisted curve.
type Node struct {
	Kind     Kind
	Key      string // stable identifier for expansion state
	Name     string
	Depth    int
	Binding  curve.Binding // Leaf only
	Curves   []*curve.Curve
	Children []*Node
}

// Expandable reports whether the node has children to show
func (n *Node) Expandable() bool {
	return len(n.Children) > 0
}

// IsPhantom reports whether a leaf stands in for a missing component
func (n *Node) IsPhantom() bool {
	return n.Kind == Leaf && n.Binding.IsPhantom
}

// Walk visits n and its descendants depth first until fn returns false
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given key
func (n *Node) Find(key string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Key == key {
			found = node
			return false
		}
		return true
	})
	return found
}

// Leaves returns every leaf below n in display order
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(node *Node) bool {
		if node.Kind == Leaf {
			out = append(out, node)
		}
		return true
	})
	return out
}
