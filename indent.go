package yamlsort

import "bytes"

// detectIndentAndSequence returns the base indent, and whether sequences that
// are values of mapping keys are indented one level (true) or "indentless"
// (false). Honoring the source style keeps non-reordered lines byte-identical
// after re-serialization, which is what the comment reconciler anchors on.
func detectIndentAndSequence(b []byte) (int, bool) {
	indent := detectIndent(b)
	lines := bytes.Split(b, []byte("\n"))
	votes := 0 // >0 prefer indented seq, <0 prefer indentless

	for i, ln := range lines {
		if isBlankOrComment(ln) || !endsWithMappingKey(ln) {
			continue
		}
		seqIndent, ok := nextSequenceIndent(lines[i+1:])
		if !ok {
			continue
		}
		switch keyIndent := leadingSpaces(ln); seqIndent {
		case keyIndent + indent:
			votes++
		case keyIndent:
			votes--
		}
	}
	// ties and no evidence default to indented sequences
	return indent, votes >= 0
}

// nextSequenceIndent reports the indent of the first content line, but only
// when that line opens a block sequence; any other content line means the
// preceding key does not hold a sequence value.
func nextSequenceIndent(lines [][]byte) (int, bool) {
	for _, ln := range lines {
		if isBlankOrComment(ln) {
			continue
		}
		trimmed := bytes.TrimLeft(ln, " ")
		if len(trimmed) == 0 || trimmed[0] != '-' {
			return 0, false
		}
		return leadingSpaces(ln), true
	}
	return 0, false
}

func isBlankOrComment(ln []byte) bool {
	t := bytes.TrimSpace(ln)
	return len(t) == 0 || t[0] == '#'
}

// endsWithMappingKey returns true if the line is a block mapping key of the
// form "key:" possibly followed by spaces and/or a comment.
func endsWithMappingKey(ln []byte) bool {
	// ignore flow/inline cases; we just need the common block "key:" form
	idx := bytes.IndexByte(ln, ':')
	if idx < 0 {
		return false
	}
	rest := bytes.TrimSpace(ln[idx+1:])
	return len(rest) == 0 || rest[0] == '#'
}

// detectIndent infers the base indent as the GCD of every non-zero leading
// indent seen on content lines, defaulting to 2.
func detectIndent(b []byte) int {
	result := 0
	for _, ln := range bytes.Split(b, []byte("\n")) {
		if isBlankOrComment(ln) {
			continue
		}
		n := leadingSpaces(ln)
		if n == 0 {
			continue
		}
		if result == 0 {
			result = n
		} else {
			result = gcd(result, n)
		}
		if result == 1 {
			break
		}
	}
	if result > 0 && result <= 8 {
		return result
	}
	return 2
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func leadingSpaces(line []byte) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}
