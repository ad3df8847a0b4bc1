package cli

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/coral-tools/coralsearch/internal/adapters/driven/config/file"
	"github.com/coral-tools/coralsearch/internal/adapters/driving/tui"
	"github.com/coral-tools/coralsearch/internal/core/domain"
	"github.com/coral-tools/coralsearch/internal/core/ports/driving"
	"github.com/coral-tools/coralsearch/internal/core/services"
	"github.com/coral-tools/coralsearch/internal/extract/pdftotext"
	"github.com/coral-tools/coralsearch/internal/logger"
	"github.com/coral-tools/coralsearch/internal/report"
)

var (
	searchRoot     string
	searchMode     string
	searchExclude  []string
	searchInclude  []string
	searchReport   bool
	searchPick     bool
	searchOpen     bool
	searchNoConfig bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Recursively search a directory tree",
	Long: `Searches file content and file/directory names under --root.
Content matching follows --mode; filename matching is always a literal,
case-insensitive substring test. Exclude globs prune whole subtrees from
both searches; include globs restrict content search only.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchRoot, "root", "r", ".", "directory to search")
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "literal", "search mode: literal, regex or extended")
	searchCmd.Flags().StringArrayVar(&searchExclude, "exclude", nil, "exclude glob (repeatable, adds to config)")
	searchCmd.Flags().StringArrayVar(&searchInclude, "include", nil, "include glob for content search (repeatable)")
	searchCmd.Flags().BoolVar(&searchReport, "report", false, "write a markdown report to the coral temp folder")
	searchCmd.Flags().BoolVar(&searchPick, "pick", false, "pick a result interactively and open it in the editor")
	searchCmd.Flags().BoolVar(&searchOpen, "open", false, "open the report in the editor (implies --report)")
	searchCmd.Flags().BoolVar(&searchNoConfig, "no-config", false, "ignore the config file")
	rootCmd.AddCommand(searchCmd)
}

//nolint:gocyclo // Command glue with necessary sequential steps
func runSearch(cmd *cobra.Command, args []string) error {
	searchTerm := args[0]

	mode, err := domain.ParseMode(searchMode)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := absRoot(searchRoot)
	if err != nil {
		return err
	}

	req := domain.SearchRequest{
		RootDir:         root,
		Term:            searchTerm,
		Mode:            mode,
		ExcludePatterns: append(append([]string{}, cfg.Search.Excluded...), searchExclude...),
		IncludePatterns: append(append([]string{}, cfg.Search.Included...), searchInclude...),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator := services.NewOrchestrator(pdftotext.New(cfg.Tools.Pdftotext))
	handle, err := orchestrator.Submit(ctx, req)
	if err != nil {
		return err
	}

	cmd.Printf("Searching for: %s\n", req.Term)
	cmd.Printf("Search type: %s\n", req.Mode.Label())
	cmd.Printf("In folder: %s\n\n", req.RootDir)

	renderProgress(cmd, handle)

	results, err := handle.Result()
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printResults(cmd, results)

	if searchReport || searchOpen {
		path, err := report.Write(req, results, handle.Warnings(), time.Now())
		if err != nil {
			return err
		}
		cmd.Printf("\nResults written to: %s\n", path)
		if searchOpen {
			if err := openInEditor(cfg.Editor.Command, path); err != nil {
				return err
			}
		}
	}

	if searchPick && len(results) > 0 {
		choice, err := tui.Run(results)
		if err != nil {
			return err
		}
		if choice != nil {
			return openInEditor(cfg.Editor.Command, choice.Path)
		}
	}

	return nil
}

func loadConfig() (*configfile.Config, error) {
	if searchNoConfig {
		cfg := &configfile.Config{}
		cfg.Editor.Command = configfile.DefaultEditor
		return cfg, nil
	}
	path := flagConfig
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return configfile.Load(path)
}

// renderProgress drains the live feed until the run ends. On a TTY the
// scanning counters overwrite one line, the way the original progress
// indicator did; elsewhere only matches and warnings print.
func renderProgress(cmd *cobra.Command, handle *driving.ExecutionHandle) {
	tty := term.IsTerminal(int(os.Stdout.Fd()))
	scanned, matched := 0, 0

	for ev := range handle.Progress() {
		switch ev.Kind {
		case driving.EventScanning:
			scanned++
			if tty {
				fmt.Fprintf(cmd.OutOrStdout(), "\rFiles searched: %d | Matches found: %d", scanned, matched)
			}
		case driving.EventMatch:
			matched++
			if tty {
				fmt.Fprintf(cmd.OutOrStdout(), "\rFiles searched: %d | Matches found: %d", scanned, matched)
			} else {
				cmd.Println(ev.Message)
			}
		case driving.EventWarning, driving.EventDiagnostic:
			logger.Warn("%s", ev.Message)
		}
	}
	if tty {
		cmd.Println()
	}
}

func printResults(cmd *cobra.Command, results domain.ResultSet) {
	cmd.Println()
	if len(results) == 0 {
		cmd.Println("No matches found.")
		return
	}

	cmd.Printf("Matches (%d):\n", len(results))
	for _, hit := range results {
		if hit.Origin == domain.OriginContent && hit.Snippet != "" {
			cmd.Printf("  %s:%d: %s\n", hit.Path, hit.Line, hit.Snippet)
		} else {
			cmd.Printf("  %s (name match)\n", hit.Path)
		}
	}
}

func openInEditor(editor, path string) error {
	if editor == "" {
		editor = configfile.DefaultEditor
	}
	if err := exec.Command(editor, path).Start(); err != nil {
		return fmt.Errorf("open %s with %s: %w", path, editor, err)
	}
	return nil
}

func absRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	return filepath.Abs(root)
}
