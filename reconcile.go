package yamlsort

import (
	"sort"
	"strings"
)

// ReconcileOpts controls anchor matching in Reconcile.
type ReconcileOpts struct {
	// RepeatAnchors re-emits a comment group at every occurrence of its
	// anchor line instead of only the first. Default is first-match-only;
	// with textually duplicate lines the repeat behavior duplicates
	// comments, so it is opt-in.
	RepeatAnchors bool
}

type anchoredComment struct {
	text string
	line int
}

// Reconcile merges the comments extracted from the original text into the
// freshly rendered (comment-free) text. Each comment is re-inserted
// immediately before the line it originally preceded, located by exact line
// text. Comments whose anchor no longer appears verbatim in the rendered
// text are dropped; this is a best-effort textual correlation, not a
// structural one.
func Reconcile(original, rendered []byte, comments []Comment) []byte {
	return ReconcileWith(original, rendered, comments, ReconcileOpts{})
}

// ReconcileWith is Reconcile with explicit options.
func ReconcileWith(original, rendered []byte, comments []Comment, opts ReconcileOpts) []byte {
	if len(comments) == 0 {
		return rendered
	}

	origLines := splitLines(string(original))
	anchors := map[string][]anchoredComment{}
	for _, c := range comments {
		anchor, ok := anchorLine(origLines, c.Line)
		if !ok {
			continue
		}
		anchors[anchor] = append(anchors[anchor], anchoredComment{text: c.Text, line: c.Line})
	}
	for _, group := range anchors {
		sort.SliceStable(group, func(i, j int) bool { return group[i].line < group[j].line })
	}

	var b strings.Builder
	b.Grow(len(rendered) + len(original))
	for _, line := range splitLines(string(rendered)) {
		if group, ok := anchors[line]; ok {
			for _, c := range group {
				b.WriteString(c.text)
				b.WriteByte('\n')
			}
			if !opts.RepeatAnchors {
				delete(anchors, line)
			}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// anchorLine scans forward from a comment's own line for the first line that
// is not itself a comment. Comments that share an anchor accumulate in source
// order, which is also authored order since extraction walks lines top to
// bottom.
func anchorLine(lines []string, from int) (string, bool) {
	for i := from; i < len(lines); i++ {
		if !isCommentLine(lines[i]) {
			return lines[i], true
		}
	}
	return "", false
}
