package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Literal(t *testing.T) {
	t.Run("metacharacters are matched as exact text", func(t *testing.T) {
		p, err := Compile(ModeLiteral, "file*.txt")
		require.NoError(t, err)

		assert.True(t, p.MatchLine("see file*.txt for details"))
		assert.False(t, p.MatchLine("fileXYZ.txt"), "no wildcard expansion in literal mode")
		assert.False(t, p.MatchLine("file.txt"))
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		p, err := Compile(ModeLiteral, "ERROR")
		require.NoError(t, err)

		assert.True(t, p.MatchLine("an error occurred"))
		assert.True(t, p.MatchLine("Error: boom"))
		assert.True(t, p.MatchLine("ERROR"))
		assert.False(t, p.MatchLine("warn: boom"))
	})

	t.Run("never fails to compile", func(t *testing.T) {
		p, err := Compile(ModeLiteral, `a(b[c{d\e`)
		require.NoError(t, err)
		assert.True(t, p.MatchLine(`xx a(b[c{d\e yy`))
	})
}

func TestCompile_ExtendedRegex(t *testing.T) {
	t.Run("alternation and grouping", func(t *testing.T) {
		p, err := Compile(ModeExtendedRegex, "(todo|fixme):")
		require.NoError(t, err)

		assert.True(t, p.MatchLine("TODO: ship it"))
		assert.True(t, p.MatchLine("fixme: later"))
		assert.False(t, p.MatchLine("todo later"))
	})

	t.Run("unbalanced parenthesis is rejected", func(t *testing.T) {
		_, err := Compile(ModeExtendedRegex, "broken(group")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})
}

func TestCompile_BasicRegex(t *testing.T) {
	t.Run("bare parentheses are literals", func(t *testing.T) {
		p, err := Compile(ModeBasicRegex, "main()")
		require.NoError(t, err)

		assert.True(t, p.MatchLine("func main() {"))
		assert.False(t, p.MatchLine("func main {"))
	})

	t.Run("escaped parentheses group", func(t *testing.T) {
		p, err := Compile(ModeBasicRegex, `\(ab\)*c`)
		require.NoError(t, err)

		assert.True(t, p.MatchLine("ababc"))
		assert.True(t, p.MatchLine("c"))
	})

	t.Run("bare plus and question mark are literals", func(t *testing.T) {
		p, err := Compile(ModeBasicRegex, "a+b?")
		require.NoError(t, err)

		assert.True(t, p.MatchLine("a+b?"))
		assert.False(t, p.MatchLine("aaab"))
	})

	t.Run("star and dot keep regex meaning", func(t *testing.T) {
		p, err := Compile(ModeBasicRegex, "ab*c.")
		require.NoError(t, err)

		assert.True(t, p.MatchLine("abbbcx"))
		assert.True(t, p.MatchLine("acx"))
		assert.False(t, p.MatchLine("abc"))
	})

	t.Run("character classes pass through", func(t *testing.T) {
		p, err := Compile(ModeBasicRegex, "[0-9][0-9]*")
		require.NoError(t, err)

		assert.True(t, p.MatchLine("build 42"))
		assert.False(t, p.MatchLine("no digits"))
	})
}

func TestMatchName(t *testing.T) {
	t.Run("case-insensitive substring", func(t *testing.T) {
		assert.True(t, MatchName("config", "CONFIG.yaml"))
		assert.True(t, MatchName("Config", "app_config_test.go"))
		assert.False(t, MatchName("config", "settings.yaml"))
	})

	t.Run("regex metacharacters stay literal", func(t *testing.T) {
		assert.True(t, MatchName("notes (draft)", "notes (draft).md"))
		assert.False(t, MatchName("a.c", "abc.txt"), "dot is not a wildcard")
	})
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		name string
		want SearchMode
	}{
		{"literal", ModeLiteral},
		{"regex", ModeBasicRegex},
		{"basic", ModeBasicRegex},
		{"extended", ModeExtendedRegex},
		{"Extended", ModeExtendedRegex},
	}
	for _, tc := range cases {
		mode, err := ParseMode(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, mode, tc.name)
	}

	_, err := ParseMode("fuzzy")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSearchRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := SearchRequest{RootDir: "/tmp", Term: "x"}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty term rejected", func(t *testing.T) {
		req := SearchRequest{RootDir: "/tmp", Term: "   "}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})

	t.Run("empty root rejected", func(t *testing.T) {
		req := SearchRequest{Term: "x"}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})
}

func TestResultSet_Sort(t *testing.T) {
	rs := ResultSet{
		{Path: "/b/two.txt"},
		{Path: "/a/one.txt"},
		{Path: "/a/nested/three.txt"},
	}
	rs.Sort()
	assert.Equal(t, []string{"/a/nested/three.txt", "/a/one.txt", "/b/two.txt"}, rs.Paths())
}
