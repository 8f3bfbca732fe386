// Command yamlsort reorders sequences in YAML files according to a rule
// config and rewrites each file so that comments stay with the content they
// documented.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/txfusion/yamlsort"
)

type options struct {
	Config string
	Write  bool
	Check  bool
	Ext    string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "yamlsort [files or directories]",
		Short: "Sort YAML sequences by configured path rules",
		Long: "yamlsort applies an ordered list of {path, sortKey} rules to YAML\n" +
			"documents, reordering matched sequences while keeping comments attached\n" +
			"to their original content lines.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := yamlsort.LoadRules(opts.Config)
			if err != nil {
				return err
			}
			files, err := collectFiles(args, extensions(opts.Ext))
			if err != nil {
				return err
			}
			changed := 0
			for _, file := range files {
				ch, err := processFile(cmd, opts, rules, file)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				if ch {
					changed++
				}
			}
			if opts.Check && changed > 0 {
				return fmt.Errorf("%d file(s) would be reordered", changed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", ".yamlsort.yaml", "rule config file")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "rewrite changed files in place")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "report changed files and exit non-zero; prints a diff")
	cmd.Flags().StringVar(&opts.Ext, "ext", ".yaml,.yml", "comma-separated extensions scanned in directories")

	return cmd
}

func processFile(cmd *cobra.Command, opts *options, rules *yamlsort.RuleSet, file string) (bool, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}
	res, err := rules.Process(data)
	if err != nil {
		return false, err
	}

	switch {
	case opts.Check:
		if res.Changed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s would be reordered\n", file)
			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(data)),
				B:        difflib.SplitLines(string(res.Output)),
				FromFile: file,
				ToFile:   file + " (sorted)",
				Context:  3,
			})
			if err == nil {
				fmt.Fprint(cmd.OutOrStdout(), diff)
			}
		}
	case opts.Write:
		if res.Changed {
			info, err := os.Stat(file)
			if err != nil {
				return false, err
			}
			if err := os.WriteFile(file, res.Output, info.Mode().Perm()); err != nil {
				return false, err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reordered\n", file)
		}
	default:
		fmt.Fprint(cmd.OutOrStdout(), string(res.Output))
	}
	return res.Changed, nil
}

// collectFiles expands directory arguments into their matching files and
// passes explicit file arguments through regardless of extension.
func collectFiles(args []string, exts map[string]bool) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && exts[filepath.Ext(path)] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func extensions(spec string) map[string]bool {
	exts := map[string]bool{}
	for _, e := range strings.Split(spec, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}
	return exts
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "yamlsort:", err)
		os.Exit(1)
	}
}
