package yamlsort

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule declares that the sequence(s) reached by Path should be ordered by the
// SortKey property of their elements.
type Rule struct {
	Path    string `yaml:"path"`
	SortKey string `yaml:"sortKey"`
}

type compiledRule struct {
	path    Path
	sortKey string
}

// RuleSet is an ordered collection of compiled rules. Rules apply in
// declaration order; each rule sees the tree produced by the previous one.
type RuleSet struct {
	rules []compiledRule
}

// CompileRules validates and compiles a rule list.
func CompileRules(rules []Rule) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if r.Path == "" {
			return nil, fmt.Errorf("yamlsort: rule %d: path is required", i)
		}
		if r.SortKey == "" {
			return nil, fmt.Errorf("yamlsort: rule %d (%s): sortKey is required", i, r.Path)
		}
		p, err := ParsePath(r.Path)
		if err != nil {
			return nil, fmt.Errorf("yamlsort: rule %d: %w", i, err)
		}
		rs.rules = append(rs.rules, compiledRule{path: p, sortKey: r.SortKey})
	}
	return rs, nil
}

// ParseRules decodes a YAML rule list and compiles it.
func ParseRules(data []byte) (*RuleSet, error) {
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("yamlsort: failed to parse rule config: %w", err)
	}
	return CompileRules(rules)
}

// LoadRules reads and compiles a rule config file.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlsort: failed to read rule config: %w", err)
	}
	return ParseRules(data)
}

// Apply runs every rule against the tree in declaration order, then
// re-applies the whole set to all nested mapping values and sequence
// elements, so rules match at any depth. Returns a new tree; the input is
// never mutated.
func (rs *RuleSet) Apply(n Node) Node {
	return rs.apply(n, newSorter())
}

func (rs *RuleSet) apply(n Node, s *sorter) Node {
	for _, r := range rs.rules {
		n = applyPath(n, r.path, r.sortKey, s)
	}
	switch nn := n.(type) {
	case Mapping:
		out := make(Mapping, 0, len(nn))
		for _, e := range nn {
			out = append(out, MapEntry{Key: e.Key, Value: rs.apply(e.Value, s)})
		}
		return out
	case Sequence:
		out := make(Sequence, 0, len(nn))
		for _, elem := range nn {
			out = append(out, rs.apply(elem, s))
		}
		return out
	default:
		return n
	}
}

// applyPath resolves one rule path against a node and sorts whatever
// sequences it reaches. Unresolvable paths (missing keys, shape mismatches)
// leave the node untouched; that is a no-op, not an error.
func applyPath(n Node, path Path, sortKey string, s *sorter) Node {
	if len(path) == 0 {
		return n
	}
	seg, rest := path[0], path[1:]
	last := len(path) == 1

	switch sg := seg.(type) {
	case Wildcard:
		switch nn := n.(type) {
		case Mapping:
			out := make(Mapping, 0, len(nn))
			for _, e := range nn {
				v := e.Value
				if last {
					// Terminal fan-out: sort every sequence-valued
					// property of this mapping.
					if seq, ok := v.(Sequence); ok {
						v = s.sortSequence(seq, sortKey)
					}
				} else {
					v = applyPath(v, rest, sortKey, s)
				}
				out = append(out, MapEntry{Key: e.Key, Value: v})
			}
			return out
		case Sequence:
			if last {
				return n
			}
			// A wildcard does not consume a sequence level; match the
			// unconsumed path inside every element.
			return mapSequence(nn, path, sortKey, s)
		default:
			return n
		}

	case ArrayDescend:
		m, ok := n.(Mapping)
		if !ok {
			return n
		}
		out := make(Mapping, 0, len(m))
		for _, e := range m {
			v := e.Value
			if e.Key == string(sg) {
				if seq, ok := v.(Sequence); ok {
					v = mapSequence(seq, rest, sortKey, s)
				}
			}
			out = append(out, MapEntry{Key: e.Key, Value: v})
		}
		return out

	case Literal:
		switch nn := n.(type) {
		case Sequence:
			// Sequences are transparent to literal segments; match the
			// same path inside every element.
			return mapSequence(nn, path, sortKey, s)
		case Mapping:
			out := make(Mapping, 0, len(nn))
			for _, e := range nn {
				v := e.Value
				if e.Key == string(sg) {
					if last {
						if seq, ok := v.(Sequence); ok {
							v = s.sortSequence(seq, sortKey)
						}
					} else {
						v = applyPath(v, rest, sortKey, s)
					}
				}
				out = append(out, MapEntry{Key: e.Key, Value: v})
			}
			return out
		default:
			return n
		}
	}
	return n
}

// mapSequence applies a path to every element of a sequence, rebuilding it.
func mapSequence(seq Sequence, path Path, sortKey string, s *sorter) Sequence {
	out := make(Sequence, 0, len(seq))
	for _, elem := range seq {
		out = append(out, applyPath(elem, path, sortKey, s))
	}
	return out
}
