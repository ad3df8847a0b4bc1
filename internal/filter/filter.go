// Package filter owns the exclude/include glob semantics of a scan:
// which directories are pruned from traversal and which files are
// eligible for content search.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coral-tools/coralsearch/internal/core/domain"
)

// compiledGlob is a single glob pattern translated to an anchored regexp.
type compiledGlob struct {
	raw string
	re  *regexp.Regexp
}

// PathFilter decides, for each directory, whether to descend, and for each
// file, whether it is eligible for content search.
//
// Patterns are matched against the full path. A '*' crosses path separators,
// matching what `find -path` does: the exclude pattern `*/build/*` prunes a
// build directory at any depth. Include patterns gate content search only;
// filename search deliberately ignores them.
type PathFilter struct {
	exclude []compiledGlob
	include []compiledGlob
}

// New compiles exclude and include glob lists into a PathFilter.
func New(excludePatterns, includePatterns []string) (*PathFilter, error) {
	exclude, err := compileGlobs(excludePatterns)
	if err != nil {
		return nil, err
	}
	include, err := compileGlobs(includePatterns)
	if err != nil {
		return nil, err
	}
	return &PathFilter{exclude: exclude, include: include}, nil
}

// ShouldPrune reports whether a directory matches any exclude pattern.
// A pruned directory and everything beneath it is never visited.
//
// The path is also tested with a trailing separator so patterns of the
// form `*/name/*` prune the directory itself, not just its children.
func (f *PathFilter) ShouldPrune(dirPath string) bool {
	return f.excluded(dirPath) || f.excluded(dirPath+"/")
}

// Excluded reports whether a file path matches any exclude pattern.
// Excludes apply uniformly to content and filename search.
func (f *PathFilter) Excluded(filePath string) bool {
	return f.excluded(filePath)
}

// ContentEligible reports whether a file may be content-searched: true when
// no include patterns are configured, or when at least one matches.
func (f *PathFilter) ContentEligible(filePath string) bool {
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.re.MatchString(filePath) {
			return true
		}
	}
	return false
}

func (f *PathFilter) excluded(path string) bool {
	for _, g := range f.exclude {
		if g.re.MatchString(path) {
			return true
		}
	}
	return false
}

func compileGlobs(patterns []string) ([]compiledGlob, error) {
	globs := make([]compiledGlob, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		re, err := regexp.Compile(translate(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidGlob, raw, err)
		}
		globs = append(globs, compiledGlob{raw: raw, re: re})
	}
	return globs, nil
}

// translate rewrites a glob into an anchored regexp. '*' becomes '.*',
// '?' becomes '.', character classes pass through, everything else is
// quoted. Unlike path.Match, '*' is allowed to cross '/'.
func translate(glob string) string {
	var b strings.Builder
	b.Grow(len(glob) + 8)
	b.WriteString(`^(?s)`)

	inClass := false
	for _, r := range glob {
		if inClass {
			if r == ']' {
				inClass = false
			}
			b.WriteRune(r)
			continue
		}
		switch r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteByte('.')
		case '[':
			inClass = true
			b.WriteRune(r)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return b.String()
}
