package services

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/coral-tools/coralsearch/internal/core/domain"
	"github.com/coral-tools/coralsearch/internal/core/ports/driven"
)

// maxSnippetLen caps the matching line carried on a hit.
const maxSnippetLen = 200

// maxLineLen bounds the line scanner so one pathological line cannot
// exhaust memory.
const maxLineLen = 1 << 20

// sniffLen is how many leading bytes are inspected when the extension is
// inconclusive.
const sniffLen = 512

// textExtensions are extensions always treated as plain text.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".rst": true,
	".go": true, ".py": true, ".rb": true, ".rs": true, ".java": true,
	".c": true, ".h": true, ".cpp": true, ".hpp": true, ".cs": true,
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".css": true,
	".html": true, ".htm": true, ".xml": true, ".svg": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".sh": true, ".bash": true, ".zsh": true, ".fish": true,
	".sql": true, ".csv": true, ".tsv": true, ".log": true, ".tex": true,
	".conf": true, ".cfg": true, ".env": true, ".proto": true,
}

// binaryExtensions are extensions always skipped for content search.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".tiff": true, ".tif": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".7z": true, ".rar": true, ".jar": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".o": true, ".obj": true, ".bin": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wav": true,
	".flac": true, ".ogg": true, ".mkv": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".odt": true,
	".db": true, ".sqlite": true, ".sqlite3": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".pyc": true, ".pyo": true, ".class": true, ".pickle": true, ".pkl": true,
}

// classifyFile derives the content-match dispatch kind from the extension,
// falling back to a content sniff for unknown extensions.
func classifyFile(path string) domain.FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".pdf":
		return domain.KindPDF
	case textExtensions[ext]:
		return domain.KindPlainText
	case binaryExtensions[ext]:
		return domain.KindUnsupported
	}
	return sniffKind(path)
}

// sniffKind inspects the leading bytes: a NUL byte or invalid UTF-8 marks
// the file as binary.
func sniffKind(path string) domain.FileKind {
	f, err := os.Open(path)
	if err != nil {
		return domain.KindUnsupported
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		// Empty files are text.
		return domain.KindPlainText
	}
	buf = buf[:n]

	if bytes.IndexByte(buf, 0) >= 0 {
		return domain.KindUnsupported
	}
	// Tolerate a rune truncated by the sniff window.
	for len(buf) > 0 && !utf8.Valid(buf) {
		r, _ := utf8.DecodeLastRune(buf)
		if r != utf8.RuneError {
			break
		}
		buf = buf[:len(buf)-1]
	}
	if !utf8.Valid(buf) {
		return domain.KindUnsupported
	}
	return domain.KindPlainText
}

// contentMatcher runs the compiled pattern against one file's text.
type contentMatcher struct {
	pattern   *domain.CompiledPattern
	extractor driven.TextExtractor
}

// matchFile emits a content hit for every matching line of the file.
// Per-file errors are returned to the caller to be absorbed as warnings;
// they never abort the run.
func (m *contentMatcher) matchFile(ctx context.Context, path string, kind domain.FileKind, emit func(domain.SearchHit)) error {
	switch kind {
	case domain.KindPlainText:
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return m.matchLines(ctx, path, bufio.NewScanner(f), emit)

	case domain.KindPDF:
		text, err := m.extractor.Extract(ctx, path)
		if err != nil {
			return err
		}
		return m.matchLines(ctx, path, bufio.NewScanner(strings.NewReader(text)), emit)

	default:
		// Unsupported files are silently skipped, not an error.
		return nil
	}
}

func (m *contentMatcher) matchLines(ctx context.Context, path string, scanner *bufio.Scanner, emit func(domain.SearchHit)) error {
	scanner.Buffer(make([]byte, 64*1024), maxLineLen)

	lineNo := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lineNo++
		line := scanner.Text()
		if !m.pattern.MatchLine(line) {
			continue
		}
		emit(domain.SearchHit{
			Path:    path,
			Origin:  domain.OriginContent,
			Line:    lineNo,
			Snippet: snippet(line),
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

func snippet(line string) string {
	line = strings.TrimSpace(line)
	if len(line) <= maxSnippetLen {
		return line
	}
	cut := line[:maxSnippetLen]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut + "…"
}
