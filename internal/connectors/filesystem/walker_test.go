package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-tools/coralsearch/internal/core/domain"
	"github.com/coral-tools/coralsearch/internal/filter"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collect(t *testing.T, w *Walker) ([]Candidate, []*WalkError) {
	t.Helper()
	candidates, errs := w.Walk(context.Background())

	var walkErrs []*WalkError
	errsDone := make(chan struct{})
	go func() {
		defer close(errsDone)
		for e := range errs {
			walkErrs = append(walkErrs, e)
		}
	}()

	var got []Candidate
	for c := range candidates {
		got = append(got, c)
	}
	<-errsDone
	return got, walkErrs
}

func paths(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Path
	}
	sort.Strings(out)
	return out
}

func TestWalker_Walk(t *testing.T) {
	t.Run("enumerates files and directories", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.txt"), "hello")
		writeFile(t, filepath.Join(root, "sub", "b.txt"), "world")

		f, err := filter.New(nil, nil)
		require.NoError(t, err)

		got, walkErrs := collect(t, NewWalker(root, f))
		assert.Empty(t, walkErrs)
		assert.Equal(t, []string{
			filepath.Join(root, "a.txt"),
			filepath.Join(root, "sub"),
			filepath.Join(root, "sub", "b.txt"),
		}, paths(got))
	})

	t.Run("pruned directories are never entered", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "notes.md"), "TODO: ship")
		writeFile(t, filepath.Join(root, "build", "output.log"), "todo")

		f, err := filter.New([]string{"*/build/*"}, nil)
		require.NoError(t, err)

		got, walkErrs := collect(t, NewWalker(root, f))
		assert.Empty(t, walkErrs)
		assert.Equal(t, []string{filepath.Join(root, "notes.md")}, paths(got))
	})

	t.Run("excluded files are skipped", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "keep.txt"), "x")
		writeFile(t, filepath.Join(root, "skip.log"), "x")

		f, err := filter.New([]string{"*.log"}, nil)
		require.NoError(t, err)

		got, _ := collect(t, NewWalker(root, f))
		assert.Equal(t, []string{filepath.Join(root, "keep.txt")}, paths(got))
	})

	t.Run("unreadable subdirectory is reported and siblings continue", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("permission bits are ignored for root")
		}
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "ok.txt"), "x")
		locked := filepath.Join(root, "locked")
		require.NoError(t, os.MkdirAll(locked, 0o755))
		require.NoError(t, os.Chmod(locked, 0o000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		f, err := filter.New(nil, nil)
		require.NoError(t, err)

		got, walkErrs := collect(t, NewWalker(root, f))
		require.Len(t, walkErrs, 1)
		assert.False(t, walkErrs[0].Fatal)
		assert.Equal(t, locked, walkErrs[0].Path)
		assert.Contains(t, paths(got), filepath.Join(root, "ok.txt"))
	})

	t.Run("cancelled context stops traversal", func(t *testing.T) {
		root := t.TempDir()
		for i := 0; i < 20; i++ {
			writeFile(t, filepath.Join(root, "dir", "f"+string(rune('a'+i))+".txt"), "x")
		}
		f, err := filter.New(nil, nil)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		candidates, errs := NewWalker(root, f).Walk(ctx)
		var n int
		for range candidates {
			n++
		}
		for range errs {
		}
		assert.Zero(t, n)
	})
}

func TestWalker_Validate(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		f, err := filter.New(nil, nil)
		require.NoError(t, err)
		w := NewWalker(filepath.Join(t.TempDir(), "nope"), f)
		assert.ErrorIs(t, w.Validate(), domain.ErrRootNotFound)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		file := filepath.Join(root, "f.txt")
		writeFile(t, file, "x")
		f, err := filter.New(nil, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, NewWalker(file, f).Validate(), domain.ErrRootNotFound)
	})

	t.Run("valid root", func(t *testing.T) {
		f, err := filter.New(nil, nil)
		require.NoError(t, err)
		assert.NoError(t, NewWalker(t.TempDir(), f).Validate())
	})
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/tmp/a.txt", ResolvePath("file:///tmp/a.txt"))
	assert.Equal(t, "/tmp/a.txt", ResolvePath("/tmp/a.txt"))
	assert.Equal(t, "file:///tmp/a.txt", FileURI("/tmp/a.txt"))
	assert.Equal(t, "file:///tmp/a.txt", FileURI("file:///tmp/a.txt"))
}
