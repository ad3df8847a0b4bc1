// Package pdftotext extracts text from PDF files by shelling out to the
// pdftotext binary from poppler-utils.
package pdftotext

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/coral-tools/coralsearch/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// DefaultBinary is the tool name resolved via PATH when no explicit
// path is configured.
const DefaultBinary = "pdftotext"

// installHint is printed once per run when the tool is missing.
const installHint = "sudo apt install poppler-utils"

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor converts PDFs to text through a CommandRunner.
type Extractor struct {
	binary string
	runner driven.CommandRunner
}

// New creates an extractor for the given tool path. An empty path falls
// back to resolving DefaultBinary via PATH.
func New(binary string) *Extractor {
	return NewWithRunner(binary, execRunner{})
}

// NewWithRunner creates an extractor with an explicit runner, for tests.
func NewWithRunner(binary string, runner driven.CommandRunner) *Extractor {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Extractor{binary: binary, runner: runner}
}

// Available reports whether the tool can be resolved.
func (e *Extractor) Available(_ context.Context) bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// InstallHint returns the installation command for the missing tool.
func (e *Extractor) InstallHint() string { return installHint }

// Extract runs `pdftotext <path> -` and returns the extracted text.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	out, err := e.runner.Run(ctx, e.binary, path, "-")
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return string(out), nil
}
