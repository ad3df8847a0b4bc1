package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// CompiledPattern is the mode-specific content matcher derived from a term.
// Matching is unconditionally case-insensitive; the insensitivity is a
// property of the matcher, the term text itself is never folded.
type CompiledPattern struct {
	re   *regexp.Regexp
	term string
	mode SearchMode
}

// Compile builds the content matcher for a term under the given mode.
//
// Literal terms have every regex metacharacter escaped so the matcher
// behaves as a pure substring test. Basic regex terms are normalised from
// the BRE dialect before compilation; extended regex terms compile as-is.
func Compile(mode SearchMode, term string) (*CompiledPattern, error) {
	var expr string
	switch mode {
	case ModeLiteral:
		expr = regexp.QuoteMeta(term)
	case ModeBasicRegex:
		expr = basicToModernSyntax(term)
	case ModeExtendedRegex:
		expr = term
	default:
		return nil, fmt.Errorf("%w: mode %d", ErrInvalidPattern, mode)
	}

	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, term, err)
	}

	return &CompiledPattern{re: re, term: term, mode: mode}, nil
}

// MatchLine reports whether a single line of text matches the pattern.
func (p *CompiledPattern) MatchLine(line string) bool {
	return p.re.MatchString(line)
}

// Term returns the raw term the pattern was compiled from.
func (p *CompiledPattern) Term() string { return p.term }

// Mode returns the dialect the pattern was compiled under.
func (p *CompiledPattern) Mode() SearchMode { return p.mode }

// MatchName performs the mode-invariant filename test: a case-insensitive
// literal substring match of the raw term against a base name.
func MatchName(term, baseName string) bool {
	return strings.Contains(strings.ToLower(baseName), strings.ToLower(term))
}

// basicToModernSyntax rewrites a POSIX basic regular expression into the
// syntax the regexp package understands. In BRE the grouping and interval
// operators are the escaped forms \( \) \{ \}, while the bare characters
// ( ) { } + ? | are literals. GNU grep additionally treats \+ \? \| as
// operators, which this follows.
func basicToModernSyntax(expr string) string {
	var b strings.Builder
	b.Grow(len(expr) + 8)

	escaped := false
	inClass := false
	for _, r := range expr {
		if inClass {
			b.WriteRune(r)
			if r == ']' {
				inClass = false
			}
			continue
		}
		if escaped {
			switch r {
			case '(', ')', '{', '}', '+', '?', '|':
				// Escaped in BRE means operator.
				b.WriteRune(r)
			default:
				b.WriteByte('\\')
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '(', ')', '{', '}', '+', '?', '|':
			// Bare in BRE means literal.
			b.WriteByte('\\')
			b.WriteRune(r)
		case '[':
			inClass = true
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteByte('\\')
		b.WriteByte('\\')
	}
	return b.String()
}
