package yamlsort

import "strings"

// Comment is a full-line comment extracted from a document, with its raw line
// text (indentation included) and zero-based source line index.
type Comment struct {
	Text string
	Line int
}

// ExtractComments scans document text for full-line comments: lines whose
// first non-space character is '#'. Trailing comments on content lines are
// not extracted; they travel with (or are dropped alongside) their line.
func ExtractComments(data []byte) []Comment {
	var comments []Comment
	for i, line := range splitLines(string(data)) {
		if isCommentLine(line) {
			comments = append(comments, Comment{Text: line, Line: i})
		}
	}
	return comments
}

func isCommentLine(line string) bool {
	t := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(t, "#")
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
