// Package cli wires the cobra command surface around the search engine.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/coral-tools/coralsearch/internal/logger"
)

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "coralsearch",
	Short: "Recursive multi-mode file search",
	Long: `coralsearch scans a directory tree for content and name matches and
returns a unified, deduplicated result set. It searches file content
(including text embedded in PDFs via pdftotext) and file/directory names,
with literal, basic-regex and extended-regex modes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose diagnostics on stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.coral/coral.yaml)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
