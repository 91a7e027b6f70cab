package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/mergemate/internal/config"
	"github.com/sprite-ai/mergemate/internal/model"
	"github.com/sprite-ai/mergemate/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review <repo-url>",
	Short: "Rank the files in a repository by review relevance",
	Long: `Fetch a repository at a ref and rank its files by relevance. With
--base-ref, only files changed against that base are considered. With
--keywords, files are scored by how many lines match.

Examples:
  mergemate review https://github.com/org/repo.git -r main -k auth,token
  mergemate review https://github.com/org/repo.git -r feature -b main
  mergemate review https://github.com/org/repo.git -r v1.2.0 --format json
  mergemate review https://github.com/org/repo.git -r main -k password -i`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringP("ref", "r", "HEAD", "branch, tag, or commit SHA to analyze")
	reviewCmd.Flags().StringP("base-ref", "b", "", "base ref for diff mode (e.g. main)")
	reviewCmd.Flags().StringSliceP("keywords", "k", nil, "keywords to score files against")
	reviewCmd.Flags().Int("max-files", 0, "maximum files to return (1-100, default 20)")
	reviewCmd.Flags().Int("radius", 0, "snippet context radius in lines (1-50, default 5)")
	reviewCmd.Flags().StringSlice("exclude", nil, "glob patterns to exclude (e.g. '**/*_test.go')")
	reviewCmd.Flags().StringP("format", "f", "text", "output format: text or json")
	reviewCmd.Flags().BoolP("interactive", "i", false, "browse the results in a TUI")
}

func runReview(cmd *cobra.Command, args []string) error {
	ref, _ := cmd.Flags().GetString("ref")
	baseRef, _ := cmd.Flags().GetString("base-ref")
	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	maxFiles, _ := cmd.Flags().GetInt("max-files")
	radius, _ := cmd.Flags().GetInt("radius")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	format, _ := cmd.Flags().GetString("format")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	req := model.ReviewRequest{
		RepoURL:       args[0],
		Ref:           ref,
		BaseRef:       baseRef,
		Keywords:      keywords,
		MaxFiles:      maxFiles,
		SnippetRadius: radius,
		Exclude:       exclude,
	}

	progress := func(stage, detail string) {
		fmt.Fprintf(os.Stderr, "%-8s %s\n", stage, detail)
	}

	result, err := newEngine(cfg).Review(cmd.Context(), req, progress)
	if err != nil {
		return err
	}

	if interactive {
		return tui.Run(result)
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(os.Stdout, result)
	return nil
}

func printResult(w io.Writer, result *model.ReviewResult) {
	fmt.Fprintf(w, "%s @ %s\n", result.RepoURL, result.Ref)
	if result.Mode == model.ModeDiff {
		fmt.Fprintf(w, "%d file(s) changed vs %s", len(result.ChangedFiles), result.BaseRef)
		if added, deleted, ok := changeTotals(result.ChangedStats); ok {
			fmt.Fprintf(w, ", %d insertions(+), %d deletions(-)", added, deleted)
		}
		fmt.Fprintln(w)
	}

	if len(result.Relevant) == 0 {
		fmt.Fprintln(w, "No relevant files.")
		return
	}

	fmt.Fprintf(w, "%d relevant file(s):\n\n", len(result.Relevant))
	for _, f := range result.Relevant {
		fmt.Fprintf(w, "  %6.1f  %-55s %5d lines", f.Score, f.Path, f.Lines)
		if n := len(f.Snippets); n > 0 {
			fmt.Fprintf(w, "  %d snippet(s)", n)
		}
		fmt.Fprintln(w)
	}
}

// changeTotals sums the per-file diff counts. ok is false when the stats
// were dropped, so the summary line can omit them.
func changeTotals(stats []model.FileChange) (added, deleted int, ok bool) {
	for _, s := range stats {
		added += s.AddedLines
		deleted += s.DeletedLines
	}
	return added, deleted, len(stats) > 0
}
