package driven

import "context"

// CommandRunner executes an external command and returns its stdout.
// Extraction adapters depend on this instead of os/exec so tests can
// substitute a double.
type CommandRunner interface {
	// Run executes name with args and returns captured stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// TextExtractor converts a binary container (PDF) into searchable text.
type TextExtractor interface {
	// Available reports whether the extraction tool is installed.
	// Checked once per run; when false every PDF is treated as
	// unsupported for that run.
	Available(ctx context.Context) bool

	// InstallHint returns the command a user can run to install the tool.
	InstallHint() string

	// Extract returns the text content of the file at path.
	Extract(ctx context.Context, path string) (string, error)
}
