// Package cli implements the mergemate command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sprite-ai/mergemate/internal/config"
	"github.com/sprite-ai/mergemate/internal/gitx"
	"github.com/sprite-ai/mergemate/internal/review"
)

// logger is configured once in the root pre-run and shared by every
// command.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "mergemate",
	Short: "Find the files that matter for a code review",
	Long: `mergemate fetches a read-only snapshot of a git repository at a ref,
optionally narrows to the files changed against a base ref, scores files
against keywords, and returns a ranked list with contextual snippets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd, reviewCmd, fileCmd, versionCmd)
}

func setupLogging(cmd *cobra.Command) error {
	levelStr, _ := cmd.Flags().GetString("log-level")
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q", levelStr)
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().
		Logger()
	return nil
}

// newEngine wires the review pipeline from the environment configuration.
func newEngine(cfg config.Config) *review.Engine {
	client := gitx.New(&gitx.ExecRunner{GitPath: cfg.GitPath}, gitx.Options{
		Timeout:      cfg.GitTimeout(),
		MaxRepoBytes: cfg.MaxRepoBytes(),
	})
	return review.New(client, logger)
}
