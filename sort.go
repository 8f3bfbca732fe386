package yamlsort

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sorter orders sequence elements by the string value of a designated key.
// The collator is stateful, so a sorter must not be shared across goroutines;
// each rule pass creates its own.
type sorter struct {
	coll *collate.Collator
}

func newSorter() *sorter {
	return &sorter{coll: collate.New(language.Und)}
}

// sortSequence returns a stable permutation of seq ordered by each element's
// sortKey value. Elements that are not mappings, lack the key, or hold a
// non-string value compare equal and keep their relative input order. The
// input sequence is never mutated.
func (s *sorter) sortSequence(seq Sequence, sortKey string) Sequence {
	out := make(Sequence, len(seq))
	copy(out, seq)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := sortValue(out[i], sortKey)
		b, bok := sortValue(out[j], sortKey)
		if !aok || !bok {
			return false
		}
		return s.coll.CompareString(a, b) < 0
	})
	return out
}

// sortValue extracts the string to order by, reporting whether the element
// exposes the key as a string scalar.
func sortValue(n Node, sortKey string) (string, bool) {
	m, ok := n.(Mapping)
	if !ok {
		return "", false
	}
	v, ok := m.Get(sortKey)
	if !ok {
		return "", false
	}
	sc, ok := v.(Scalar)
	if !ok {
		return "", false
	}
	return sc.Str()
}
