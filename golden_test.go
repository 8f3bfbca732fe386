package yamlsort

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Golden tests cover whole-document runs: parse, rule application,
// re-serialization and comment reconciliation in one pass. Regenerate with:
//
//	go test . -update
func TestGoldenDocuments(t *testing.T) {
	cases := []struct {
		name  string
		rules []Rule
	}{
		{
			name: "registry",
			rules: []Rule{
				{Path: "chains", SortKey: "name"},
				{Path: "validators", SortKey: "name"},
			},
		},
		{
			name: "pipeline",
			rules: []Rule{
				{Path: "stages[].steps", SortKey: "run"},
				{Path: "stages", SortKey: "name"},
			},
		},
	}

	g := goldie.New(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := os.ReadFile(filepath.Join("testdata", tc.name+".yaml"))
			if err != nil {
				t.Fatalf("read input: %v", err)
			}
			rs, err := CompileRules(tc.rules)
			if err != nil {
				t.Fatalf("CompileRules error: %v", err)
			}
			res, err := rs.Process(in)
			if err != nil {
				t.Fatalf("Process error: %v", err)
			}
			g.Assert(t, tc.name, res.Output)
		})
	}
}
