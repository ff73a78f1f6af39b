package hierarchy

// Expansion manages expand/collapse state keyed by Node.Key
type Expansion struct {
	State map[string]bool
}

// NewExpansion creates initialized expansion state
func NewExpansion() *Expansion {
	return &Expansion{State: make(map[string]bool)}
}

// IsExpanded returns expansion state for key
func (e *Expansion) IsExpanded(key string) bool {
	return e.State[key]
}

// SetExpanded sets expansion state for key
func (e *Expansion) SetExpanded(key string, expanded bool) {
	e.State[key] = expanded
}

// Toggle flips expansion state for key
func (e *Expansion) Toggle(key string) bool {
	e.State[key] = !e.State[key]
	return e.State[key]
}

// ExpandAll expands every expandable node below root
func (e *Expansion) ExpandAll(root *Node) {
	root.Walk(func(n *Node) bool {
		if n.Expandable() {
			e.State[n.Key] = true
		}
		return true
	})
}

// CollapseAll collapses all keys
func (e *Expansion) CollapseAll() {
	for k := range e.State {
		e.State[k] = false
	}
}

// Row is one visible line of a flattened tree
type Row struct {
	Node     *Node
	Depth    int
	Expanded bool
	IsLast   bool // last sibling at this depth
}

// Flatten lists the visible nodes below root. Children of collapsed nodes
// are omitted; the root itself is never a row.
func Flatten(root *Node, exp *Expansion) []Row {
	var rows []Row
	var add func(n *Node)
	add = func(n *Node) {
		for i, child := range n.Children {
			expanded := child.Expandable() && exp.IsExpanded(child.Key)
			rows = append(rows, Row{
				Node:     child,
				Depth:    child.Depth,
				Expanded: expanded,
				IsLast:   i == len(n.Children)-1,
			})
			if expanded {
				add(child)
			}
		}
	}
	add(root)
	return rows
}
