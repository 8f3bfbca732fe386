package yamlsort

import (
	"fmt"

	gyaml "github.com/goccy/go-yaml"
)

// Node is a sealed interface over the three tree shapes a parsed document is
// made of. Only Scalar, Sequence and Mapping implement it. Transforms never
// mutate a node in place; they return fresh containers so the tree produced
// by Parse stays valid for comparison after a rule pass.
type Node interface {
	node()
}

// Scalar holds a decoded scalar value (string, integer, float, bool or nil).
type Scalar struct {
	Value any
}

func (Scalar) node() {}

// Str returns the scalar's value and whether it is a string.
func (s Scalar) Str() (string, bool) {
	v, ok := s.Value.(string)
	return v, ok
}

// Sequence is an ordered list of nodes.
type Sequence []Node

func (Sequence) node() {}

// MapEntry is a single key/value pair of a Mapping.
type MapEntry struct {
	Key   string
	Value Node
}

// Mapping is an insertion-ordered set of unique key/value pairs.
type Mapping []MapEntry

func (Mapping) node() {}

// Get returns the value stored under key, or (nil, false) when absent.
func (m Mapping) Get(key string) (Node, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// fromOrdered converts the ordered representation produced by the goccy
// decoder (MapSlice / []any / scalars) into a Node tree.
func fromOrdered(v any) Node {
	switch vv := v.(type) {
	case gyaml.MapSlice:
		m := make(Mapping, 0, len(vv))
		for _, item := range vv {
			m = append(m, MapEntry{Key: keyString(item.Key), Value: fromOrdered(item.Value)})
		}
		return m
	case []any:
		seq := make(Sequence, 0, len(vv))
		for _, elem := range vv {
			seq = append(seq, fromOrdered(elem))
		}
		return seq
	default:
		return Scalar{Value: v}
	}
}

// toOrdered converts a Node tree back into the value shapes the goccy
// encoder understands.
func toOrdered(n Node) any {
	switch nn := n.(type) {
	case Mapping:
		ms := make(gyaml.MapSlice, 0, len(nn))
		for _, e := range nn {
			ms = append(ms, gyaml.MapItem{Key: e.Key, Value: toOrdered(e.Value)})
		}
		return ms
	case Sequence:
		out := make([]any, 0, len(nn))
		for _, elem := range nn {
			out = append(out, toOrdered(elem))
		}
		return out
	case Scalar:
		return nn.Value
	default:
		return nil
	}
}

func keyString(k any) string {
	switch vv := k.(type) {
	case string:
		return vv
	case fmt.Stringer:
		return vv.String()
	default:
		return fmt.Sprintf("%v", vv)
	}
}
