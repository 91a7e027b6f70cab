package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/mergemate/internal/config"
	"github.com/sprite-ai/mergemate/internal/model"
)

var fileCmd = &cobra.Command{
	Use:   "file <repo-url> <path>",
	Short: "Print a single file's content at a ref",
	Long: `Fetch a repository at a ref and print one file's text content to
stdout. Binary extensions are rejected; oversized files need --max-bytes
raised.

Examples:
  mergemate file https://github.com/org/repo.git cmd/main.go -r main
  mergemate file https://github.com/org/repo.git docs/README.md -r v1.2.0`,
	Args: cobra.ExactArgs(2),
	RunE: runFile,
}

func init() {
	fileCmd.Flags().StringP("ref", "r", "HEAD", "branch, tag, or commit SHA")
	fileCmd.Flags().Int("max-bytes", 0, "byte ceiling for the file (default 200000)")
}

func runFile(cmd *cobra.Command, args []string) error {
	ref, _ := cmd.Flags().GetString("ref")
	maxBytes, _ := cmd.Flags().GetInt("max-bytes")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	content, err := newEngine(cfg).FetchFile(cmd.Context(), model.FileRequest{
		RepoURL:  args[0],
		Ref:      ref,
		Path:     args[1],
		MaxBytes: maxBytes,
	})
	if err != nil {
		return err
	}

	fmt.Print(content.Content)
	return nil
}
