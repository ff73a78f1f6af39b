package curve

import (
	"fmt"
	"strings"
)

// TransformType is the owning component kind whose curves sort first on a path.
const TransformType = "Transform"

// Binding identifies one animatable property. Bindings are comparable and
// are used directly as map keys.
type Binding struct {
	Path         string `yaml:"path"`
	Type         string `yaml:"type"`
	PropertyName string `yaml:"property"`
	IsPPtrCurve  bool   `yaml:"pptr,omitempty"`
	IsDiscrete   bool   `yaml:"discrete,omitempty"`
	IsPhantom    bool   `yaml:"-"`
}

// IsTransform reports whether the binding targets the transform component.
func (b Binding) IsTransform() bool {
	return b.Type == TransformType
}

// GroupName is the property name with its component suffix stripped.
func (b Binding) GroupName() string {
	return PropertyGroupName(b.PropertyName)
}

// ComponentIndex is the index of the binding's component suffix, or -1.
func (b Binding) ComponentIndex() int {
	return ComponentIndex(b.PropertyName)
}

// WithProperty returns a copy of b targeting another property name.
func (b Binding) WithProperty(name string) Binding {
	b.PropertyName = name
	return b
}

func (b Binding) String() string {
	path := b.Path
	if path == "" {
		path = "<root>"
	}
	return fmt.Sprintf("%s:%s.%s", path, b.Type, b.PropertyName)
}

// ComponentIndex maps a trailing ".x/.y/.z/.w" or ".r/.g/.b/.a" to 0..3.
// Any other name yields -1.
func ComponentIndex(name string) int {
	if len(name) < 3 || name[len(name)-2] != '.' {
		return -1
	}
	switch name[len(name)-1] {
	case 'x', 'r':
		return 0
	case 'y', 'g':
		return 1
	case 'z', 'b':
		return 2
	case 'w', 'a':
		return 3
	}
	return -1
}

// PropertyGroupName strips a recognized component suffix.
func PropertyGroupName(name string) string {
	if ComponentIndex(name) == -1 {
		return name
	}
	return name[:len(name)-2]
}

// ComponentSuffix returns the suffix letter of a component property, or "".
func ComponentSuffix(name string) string {
	if ComponentIndex(name) == -1 {
		return ""
	}
	return name[len(name)-1:]
}

// splitPath splits a hierarchical path into its segments.
func splitPath(path string) []string {
	return strings.Split(path, "/")
}
