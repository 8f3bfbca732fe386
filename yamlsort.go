// Package yamlsort reorders sequences inside YAML documents according to a
// declarative set of path rules, rewriting the document text so that only
// array order changes and full-line comments stay attached to the content
// they documented.
package yamlsort

import (
	"bytes"
	"fmt"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

// Document is a parsed YAML document plus the formatting facts needed to
// re-serialize it in the source's style.
type Document struct {
	Root      Node
	indent    int  // detected indent (2 or 4 spaces typically)
	indentSeq bool // whether sequences under a key are indented
}

// Parse reads YAML text into a Document. The top level must be a mapping.
func Parse(data []byte) (*Document, error) {
	d := &Document{
		Root:      Mapping{},
		indent:    2,
		indentSeq: true,
	}
	if len(data) == 0 {
		return d, nil
	}

	// Shape check with yaml.v3 first: its parse errors carry positions and
	// it cleanly rejects multi-document and non-mapping input.
	var tmp yaml.Node
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return nil, fmt.Errorf("yamlsort: failed to parse YAML: %w", err)
	}
	if tmp.Kind != yaml.DocumentNode || len(tmp.Content) == 0 || tmp.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yamlsort: top-level YAML is not a mapping")
	}

	var ordered gyaml.MapSlice
	if err := gyaml.UnmarshalWithOptions(data, &ordered, gyaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yamlsort: failed to parse YAML: %w", err)
	}
	d.Root = fromOrdered(ordered)
	d.indent, d.indentSeq = detectIndentAndSequence(data)
	return d, nil
}

// Render serializes a tree in the document's detected style. Comments are
// not part of the tree; Reconcile reattaches them afterwards. Rendering the
// same tree twice yields identical bytes.
func (d *Document) Render(n Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := gyaml.NewEncoder(&buf, gyaml.Indent(d.indent), gyaml.IndentSequence(d.indentSeq))
	if err := enc.Encode(toOrdered(n)); err != nil {
		return nil, fmt.Errorf("yamlsort: failed to encode YAML: %w", err)
	}
	_ = enc.Close()
	return buf.Bytes(), nil
}

// Result is the outcome of processing one document.
type Result struct {
	// Changed reports whether reordering altered the serialized form.
	Changed bool
	// Output is the reconciled replacement text when Changed, the input
	// bytes otherwise.
	Output []byte
}

// Process parses a document, applies the rule set, and reconciles comments
// into the reordered rendering. The change signal compares the serialized
// form of the original tree against the reordered one, so formatting drift
// alone never counts as a change.
func (rs *RuleSet) Process(data []byte) (Result, error) {
	doc, err := Parse(data)
	if err != nil {
		return Result{}, err
	}

	before, err := doc.Render(doc.Root)
	if err != nil {
		return Result{}, err
	}
	sorted := rs.Apply(doc.Root)
	after, err := doc.Render(sorted)
	if err != nil {
		return Result{}, err
	}

	if bytes.Equal(before, after) {
		return Result{Changed: false, Output: data}, nil
	}
	out := Reconcile(data, after, ExtractComments(data))
	return Result{Changed: true, Output: out}, nil
}
