package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SearchMode selects how the search term is interpreted for content matching.
// Filename matching is always a literal substring test regardless of mode.
type SearchMode int

const (
	// ModeLiteral matches the term as exact substring text (grep -F).
	ModeLiteral SearchMode = iota

	// ModeBasicRegex interprets the term as a POSIX basic regular expression.
	ModeBasicRegex

	// ModeExtendedRegex interprets the term as a POSIX extended regular
	// expression (grep -E).
	ModeExtendedRegex
)

// Label returns the human-readable mode name used in reports and progress.
func (m SearchMode) Label() string {
	switch m {
	case ModeLiteral:
		return "Literal"
	case ModeBasicRegex:
		return "Basic Regex"
	case ModeExtendedRegex:
		return "Extended Regex"
	default:
		return "Unknown"
	}
}

// ParseMode converts a mode name to a SearchMode.
// Accepts the CLI spellings "literal", "regex" and "extended".
func ParseMode(name string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "literal":
		return ModeLiteral, nil
	case "regex", "basic":
		return ModeBasicRegex, nil
	case "extended":
		return ModeExtendedRegex, nil
	default:
		return ModeLiteral, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// SearchRequest describes a single point-in-time scan.
// It is immutable once submitted.
type SearchRequest struct {
	// RootDir is the directory to scan recursively.
	RootDir string

	// Term is the raw search term. Must not be empty.
	Term string

	// Mode selects the content-matching dialect.
	Mode SearchMode

	// ExcludePatterns are glob patterns matched against full paths.
	// A matching directory is pruned from traversal entirely.
	ExcludePatterns []string

	// IncludePatterns are glob patterns gating content search only.
	// Empty means every file is content-eligible.
	IncludePatterns []string
}

// Validate checks the request preconditions.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.Term) == "" {
		return fmt.Errorf("%w: empty search term", ErrInvalidInput)
	}
	if strings.TrimSpace(r.RootDir) == "" {
		return fmt.Errorf("%w: empty root directory", ErrInvalidInput)
	}
	return nil
}

// HitOrigin records where a match was found.
type HitOrigin int

const (
	// OriginContent is a match inside a file's textual content.
	OriginContent HitOrigin = iota

	// OriginFilename is a match against a file or directory base name.
	OriginFilename
)

// String returns the origin tag used in output and reports.
func (o HitOrigin) String() string {
	if o == OriginContent {
		return "content"
	}
	return "filename"
}

// SearchHit is a single match event. Two hits with the same path and
// different origins are the same logical result.
type SearchHit struct {
	// Path is the absolute path of the matched file or directory.
	Path string

	// Origin records whether the content or the name matched.
	Origin HitOrigin

	// Line is the 1-based line number of the match. Content hits only.
	Line int

	// Snippet is the matching line, trimmed. Content hits only.
	Snippet string
}

// ResultSet is the final, deduplicated outcome of a run: one entry per
// path, sorted lexicographically regardless of hit arrival order.
type ResultSet []SearchHit

// Paths returns the sorted paths of the set.
func (rs ResultSet) Paths() []string {
	paths := make([]string, len(rs))
	for i, hit := range rs {
		paths[i] = hit.Path
	}
	return paths
}

// Sort orders the set lexicographically by path.
// This is what makes the final output deterministic.
func (rs ResultSet) Sort() {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Path < rs[j].Path })
}
