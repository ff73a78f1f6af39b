package curve

import (
	"sort"
	"strings"
)

// Transform property groups that get a fixed display order.
const (
	PositionGroup      = "m_LocalPosition"
	QuaternionGroup    = "m_LocalRotation"
	EulerGroupPrefix   = "localEulerAngles"
	transformRankPos   = 0
	transformRankRot   = 1
	transformRankOther = 2
)

// Compare is the canonical display order of bindings. It returns a negative
// number when a sorts before b, zero when they are equal and a positive
// number otherwise.
//
// Paths compare segment by segment. On a shared path the transform component
// comes first, and inside it position precedes rotation. Sibling components
// of one property group sort by descending component index. Everything else
// falls back to ordinal comparison.
func Compare(a, b Binding) int {
	if a.Path != b.Path {
		return comparePaths(a.Path, b.Path)
	}

	aT, bT := a.IsTransform(), b.IsTransform()
	if aT != bT {
		if aT {
			return -1
		}
		return 1
	}
	if aT {
		if d := transformRank(a) - transformRank(b); d != 0 {
			return d
		}
	}

	if a.Type != b.Type {
		return strings.Compare(a.Type, b.Type)
	}

	// Group first so component ordering cannot contradict the ordinal fallback.
	ga, gb := a.GroupName(), b.GroupName()
	if ga != gb {
		return strings.Compare(ga, gb)
	}
	ia, ib := a.ComponentIndex(), b.ComponentIndex()
	if ia != -1 && ib != -1 && ia != ib {
		return ib - ia
	}
	if d := strings.Compare(a.PropertyName, b.PropertyName); d != 0 {
		return d
	}

	return compareFlags(a, b)
}

// Sort orders curves in place by Compare.
func Sort(curves []*Curve) {
	sort.SliceStable(curves, func(i, j int) bool {
		return Compare(curves[i].Binding, curves[j].Binding) < 0
	})
}

// SortBindings orders bindings in place by Compare and returns them.
func SortBindings(bs []Binding) []Binding {
	sort.SliceStable(bs, func(i, j int) bool {
		return Compare(bs[i], bs[j]) < 0
	})
	return bs
}

// IsPositionGroup reports whether a group name is the transform position.
func IsPositionGroup(group string) bool {
	return group == PositionGroup
}

// IsRotationGroup reports whether a group name holds transform rotation in
// any representation.
func IsRotationGroup(group string) bool {
	return group == QuaternionGroup || strings.HasPrefix(group, EulerGroupPrefix)
}

func transformRank(b Binding) int {
	group := b.GroupName()
	switch {
	case IsPositionGroup(group):
		return transformRankPos
	case IsRotationGroup(group):
		return transformRankRot
	}
	return transformRankOther
}

func comparePaths(a, b string) int {
	as, bs := splitPath(a), splitPath(b)
	n := min(len(as), len(bs))
	for i := 0; i < n; i++ {
		if d := strings.Compare(as[i], bs[i]); d != 0 {
			return d
		}
	}
	return len(as) - len(bs)
}

func compareFlags(a, b Binding) int {
	for _, pair := range [][2]bool{
		{a.IsPPtrCurve, b.IsPPtrCurve},
		{a.IsDiscrete, b.IsDiscrete},
		{a.IsPhantom, b.IsPhantom},
	} {
		if pair[0] != pair[1] {
			if pair[0] {
				return 1
			}
			return -1
		}
	}
	return 0
}
