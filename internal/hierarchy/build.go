package hierarchy

import (
	"github.com/ivlev/dopesheet/internal/curve"
	"github.com/ivlev/dopesheet/internal/rotation"
)

const (
	RootKey    = "root"
	SummaryKey = "summary"
)

var eulerAxes = []string{"x", "y", "z"}

// Build turns curves into the dope sheet tree. Input order is ignored; the
// curves are arranged by curve.Compare after phantom rotation components
// are added. An empty input yields a bare root.
func Build(curves []*curve.Curve) *Node {
	root := &Node{Kind: Utility, Key: RootKey}
	if len(curves) == 0 {
		return root
	}

	all := make([]*curve.Curve, 0, len(curves))
	all = append(all, curves...)
	all = append(all, phantoms(curves)...)
	curve.Sort(all)

	summary := &Node{Kind: ClipSummary, Key: SummaryKey, Name: "Summary", Depth: 1}
	for _, c := range all {
		if !c.IsPhantom() {
			summary.Curves = append(summary.Curves, c)
		}
	}
	root.Children = append(root.Children, summary)
	root.Curves = summary.Curves

	var run []*curve.Curve
	for i, c := range all {
		run = append(run, c)
		if i+1 < len(all) && sameGroup(c.Binding, all[i+1].Binding) {
			continue
		}
		root.Children = append(root.Children, flush(run))
		run = nil
	}

	return root
}

func flush(run []*curve.Curve) *Node {
	if len(run) == 1 {
		return leaf(run[0], 1)
	}

	b := run[0].Binding
	group := &Node{
		Kind:   Group,
		Key:    groupKey(b),
		Name:   b.GroupName(),
		Depth:  1,
		Curves: run,
	}
	for _, c := range run {
		group.Children = append(group.Children, leaf(c, 2))
	}
	return group
}

func leaf(c *curve.Curve, depth int) *Node {
	return &Node{
		Kind:    Leaf,
		Key:     leafKey(c.Binding),
		Name:    c.Binding.PropertyName,
		Depth:   depth,
		Binding: c.Binding,
		Curves:  []*curve.Curve{c},
	}
}

func sameGroup(a, b curve.Binding) bool {
	return a.Path == b.Path && a.Type == b.Type && a.GroupName() == b.GroupName()
}

func groupKey(b curve.Binding) string {
	return b.Path + "|" + b.Type + "|" + b.GroupName()
}

func leafKey(b curve.Binding) string {
	key := groupKey(b) + "|" + b.PropertyName
	if b.IsPhantom {
		key += "|phantom"
	}
	return key
}

// phantoms synthesizes the missing axes of every euler rotation group so
// each group shows x, y and z.
func phantoms(curves []*curve.Curve) []*curve.Curve {
	type groupID struct {
		path, prefix string
	}
	present := make(map[groupID]map[string]bool)
	var order []groupID

	for _, c := range curves {
		b := c.Binding
		if !b.IsTransform() || !rotation.Classify(b).IsEuler() {
			continue
		}
		id := groupID{b.Path, b.GroupName()}
		if present[id] == nil {
			present[id] = make(map[string]bool)
			order = append(order, id)
		}
		present[id][rotation.Axis(b)] = true
	}

	var out []*curve.Curve
	for _, id := range order {
		for _, axis := range eulerAxes {
			if present[id][axis] {
				continue
			}
			out = append(out, curve.New(curve.Binding{
				Path:         id.path,
				Type:         curve.TransformType,
				PropertyName: id.prefix + "." + axis,
				IsPhantom:    true,
			}))
		}
	}
	return out
}
