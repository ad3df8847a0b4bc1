// Package report renders a finished scan as a timestamped markdown file,
// the artifact hand-off format consumed by editors.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coral-tools/coralsearch/internal/connectors/filesystem"
	"github.com/coral-tools/coralsearch/internal/core/domain"
	"github.com/coral-tools/coralsearch/internal/logger"
)

// timestampLayout names report files coral-search--YYYY-MM-DD--HH-MM-SS.md.
const timestampLayout = "2006-01-02--15-04-05"

// TempFolder returns the coral scratch folder, creating it if needed.
// Falls back to the system temp directory when creation fails.
func TempFolder() string {
	dir := filepath.Join(os.TempDir(), "coral")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("Cannot create %s, falling back to %s: %v", dir, os.TempDir(), err)
		return os.TempDir()
	}
	return dir
}

// Write renders the result set to a timestamped markdown file and returns
// its path.
func Write(req domain.SearchRequest, rs domain.ResultSet, warnings []string, now time.Time) (string, error) {
	path := filepath.Join(TempFolder(), fmt.Sprintf("coral-search--%s.md", now.Format(timestampLayout)))
	if err := os.WriteFile(path, []byte(Render(req, rs, warnings, now)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Render produces the markdown body.
func Render(req domain.SearchRequest, rs domain.ResultSet, warnings []string, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Search Results\n\n")
	fmt.Fprintf(&b, "**Search term:** %s\n\n", req.Term)
	fmt.Fprintf(&b, "**Search type:** %s\n\n", req.Mode.Label())
	fmt.Fprintf(&b, "**Search location:** %s\n\n", req.RootDir)
	fmt.Fprintf(&b, "**Date:** %s\n\n", now.Format(time.RFC1123))
	b.WriteString("---\n\n")

	if len(warnings) > 0 {
		b.WriteString("## Notes\n\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Matches\n\n")
	if len(rs) == 0 {
		b.WriteString("No matches found.\n")
		return b.String()
	}

	for _, hit := range rs {
		fmt.Fprintf(&b, "- %s\n", filesystem.FileURI(hit.Path))
		if hit.Origin == domain.OriginContent && hit.Snippet != "" {
			fmt.Fprintf(&b, "  - line %d: `%s`\n", hit.Line, hit.Snippet)
		}
	}
	return b.String()
}
