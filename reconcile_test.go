package yamlsort

import (
	"strings"
	"testing"
)

func TestExtractCommentsFindsFullLineComments(t *testing.T) {
	in := "# header\n" +
		"items:\n" +
		"  # first\n" +
		"  - name: a\n" +
		"  - name: b # trailing, not extracted\n"
	got := ExtractComments([]byte(in))
	if len(got) != 2 {
		t.Fatalf("expected 2 comments, got %d: %v", len(got), got)
	}
	if got[0].Text != "# header" || got[0].Line != 0 {
		t.Fatalf("unexpected first comment: %+v", got[0])
	}
	if got[1].Text != "  # first" || got[1].Line != 2 {
		t.Fatalf("unexpected second comment: %+v", got[1])
	}
}

func TestReconcileMovesCommentWithAnchor(t *testing.T) {
	original := "items:\n" +
		"  # bravo comes second\n" +
		"  - name: b\n" +
		"  - name: a\n"
	rendered := "items:\n" +
		"  - name: a\n" +
		"  - name: b\n"
	out := Reconcile([]byte(original), []byte(rendered), ExtractComments([]byte(original)))
	want := "items:\n" +
		"  - name: a\n" +
		"  # bravo comes second\n" +
		"  - name: b\n"
	if string(out) != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out)
	}
}

func TestReconcileStackedCommentsKeepAuthoredOrder(t *testing.T) {
	original := "items:\n" +
		"  # one\n" +
		"  # two\n" +
		"  - name: z\n" +
		"  - name: a\n"
	rendered := "items:\n" +
		"  - name: a\n" +
		"  - name: z\n"
	out := Reconcile([]byte(original), []byte(rendered), ExtractComments([]byte(original)))
	want := "items:\n" +
		"  - name: a\n" +
		"  # one\n" +
		"  # two\n" +
		"  - name: z\n"
	if string(out) != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out)
	}
}

func TestReconcileDropsCommentWhenAnchorVanishes(t *testing.T) {
	original := "# gone with its line\n" +
		"old: value\n"
	rendered := "new: value\n"
	out := Reconcile([]byte(original), []byte(rendered), ExtractComments([]byte(original)))
	if strings.Contains(string(out), "#") {
		t.Fatalf("expected comment to be dropped, got:\n%s", out)
	}
	if string(out) != rendered {
		t.Fatalf("rendered text must pass through unchanged, got:\n%s", out)
	}
}

func TestReconcileConsumesAnchorOnFirstMatch(t *testing.T) {
	original := "# note\n" +
		"- name: a\n" +
		"- name: a\n"
	rendered := "- name: a\n" +
		"- name: a\n"
	out := Reconcile([]byte(original), []byte(rendered), ExtractComments([]byte(original)))
	if strings.Count(string(out), "# note") != 1 {
		t.Fatalf("expected the comment once, got:\n%s", out)
	}
	if !strings.HasPrefix(string(out), "# note\n- name: a\n") {
		t.Fatalf("comment must precede the first occurrence, got:\n%s", out)
	}
}

func TestReconcileRepeatAnchorsOption(t *testing.T) {
	original := "# note\n" +
		"- name: a\n" +
		"- name: a\n"
	rendered := "- name: a\n" +
		"- name: a\n"
	out := ReconcileWith([]byte(original), []byte(rendered), ExtractComments([]byte(original)), ReconcileOpts{RepeatAnchors: true})
	if strings.Count(string(out), "# note") != 2 {
		t.Fatalf("expected the comment at both occurrences, got:\n%s", out)
	}
}

func TestReconcileWithoutCommentsReturnsRenderedText(t *testing.T) {
	rendered := []byte("a: 1\n")
	out := Reconcile([]byte("a: 1\n"), rendered, nil)
	if string(out) != string(rendered) {
		t.Fatalf("expected pass-through, got %q", out)
	}
}

func TestProcessKeepsCommentAboveMovedElement(t *testing.T) {
	rs := mustRules(t, Rule{Path: "chains", SortKey: "name"})
	in := "chains:\n" +
		"  # the original mainnet\n" +
		"  - name: ethereum\n" +
		"  - name: arbitrum\n"
	want := "chains:\n" +
		"  - name: arbitrum\n" +
		"  # the original mainnet\n" +
		"  - name: ethereum\n"
	res := mustProcess(t, rs, in)
	if !res.Changed {
		t.Fatalf("expected change")
	}
	if string(res.Output) != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, res.Output)
	}
}
