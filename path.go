package yamlsort

import (
	"fmt"
	"strings"
)

// Segment is one dot-delimited unit of a rule path. Exactly three variants
// exist: a literal key, the `*` wildcard, and the `name[]` array-descend
// marker.
type Segment interface {
	segment()
	String() string
}

// Literal matches a single mapping key.
type Literal string

func (Literal) segment() {}

func (l Literal) String() string { return string(l) }

// Wildcard matches every value of a mapping.
type Wildcard struct{}

func (Wildcard) segment() {}

func (Wildcard) String() string { return "*" }

// ArrayDescend names a sequence-valued key whose elements the remaining path
// continues into.
type ArrayDescend string

func (ArrayDescend) segment() {}

func (a ArrayDescend) String() string { return string(a) + "[]" }

// Path is a parsed rule path.
type Path []Segment

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// ParsePath splits a `.`-delimited path spec into segments. `*` becomes a
// Wildcard, a trailing `[]` becomes an ArrayDescend, anything else is a
// Literal. Empty segments and a bare `[]` are rejected.
func ParsePath(spec string) (Path, error) {
	if spec == "" {
		return nil, fmt.Errorf("yamlsort: empty path")
	}
	parts := strings.Split(spec, ".")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		switch {
		case part == "":
			return nil, fmt.Errorf("yamlsort: empty segment in path %q", spec)
		case part == "*":
			path = append(path, Wildcard{})
		case strings.HasSuffix(part, "[]"):
			name := strings.TrimSuffix(part, "[]")
			if name == "" {
				return nil, fmt.Errorf("yamlsort: array segment without a name in path %q", spec)
			}
			if name == "*" {
				return nil, fmt.Errorf("yamlsort: wildcard segment cannot carry the array marker in path %q", spec)
			}
			path = append(path, ArrayDescend(name))
		default:
			path = append(path, Literal(part))
		}
	}
	return path, nil
}
