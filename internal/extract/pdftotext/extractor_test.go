package pdftotext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error

	name string
	args []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func TestNew(t *testing.T) {
	t.Run("defaults the binary name", func(t *testing.T) {
		e := New("")
		assert.Equal(t, DefaultBinary, e.binary)
	})

	t.Run("keeps a configured tool path", func(t *testing.T) {
		e := New("/opt/poppler/bin/pdftotext")
		assert.Equal(t, "/opt/poppler/bin/pdftotext", e.binary)
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Run("invokes the tool with stdout output", func(t *testing.T) {
		runner := &mockRunner{output: []byte("page one text\npage two text\n")}
		e := NewWithRunner("pdftotext", runner)

		text, err := e.Extract(context.Background(), "/docs/report.pdf")
		require.NoError(t, err)
		assert.Equal(t, "page one text\npage two text\n", text)
		assert.Equal(t, "pdftotext", runner.name)
		assert.Equal(t, []string{"/docs/report.pdf", "-"}, runner.args)
	})

	t.Run("wraps tool failures with the file path", func(t *testing.T) {
		toolErr := errors.New("exit status 1")
		runner := &mockRunner{err: toolErr}
		e := NewWithRunner("pdftotext", runner)

		_, err := e.Extract(context.Background(), "/docs/broken.pdf")
		require.Error(t, err)
		assert.ErrorIs(t, err, toolErr)
		assert.Contains(t, err.Error(), "/docs/broken.pdf")
	})
}

func TestExtractor_InstallHint(t *testing.T) {
	assert.Contains(t, New("").InstallHint(), "poppler-utils")
}
