package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "strlift.dev/pkg/strlift/internal/model"
)

func goDoc() *MemDocument {
	return NewMemDocument("sample.go", []string{
		"package sample",
		"",
		"import \"fmt\"",
		"",
		"const greeting = \"Hello\\nWorld\"",
		"",
		"var raw = `multi",
		"line`",
		"",
		"func main() {",
		"\tfmt.Println(greeting, 'x')",
		"}",
	})
}

func TestGoASTProviderAllStrings(t *testing.T) {
	provider := NewGoASTProvider()

	hits, err := provider.AllStrings(goDoc())
	require.NoError(t, err)
	require.Len(t, hits, 3, "the rune literal must not count")

	assert.Equal(t, `"fmt"`, hits[0].Text)
	assert.Equal(t, `"Hello\nWorld"`, hits[1].Text)
	assert.Equal(t, "`multi\nline`", hits[2].Text)

	assert.Equal(t, m.Span{
		Start: m.Position{Line: 5, Col: 17},
		End:   m.Position{Line: 5, Col: 31},
	}, hits[1].Span)

	assert.Equal(t, m.Span{
		Start: m.Position{Line: 7, Col: 10},
		End:   m.Position{Line: 8, Col: 5},
	}, hits[2].Span)
}

func TestGoASTProviderFindStringAt(t *testing.T) {
	provider := NewGoASTProvider()

	t.Run("cursor inside the literal", func(t *testing.T) {
		hit, err := provider.FindStringAt(goDoc(), m.Position{Line: 5, Col: 20})
		require.NoError(t, err)
		assert.Equal(t, `"Hello\nWorld"`, hit.Text)
	})

	t.Run("cursor on the opening quote", func(t *testing.T) {
		hit, err := provider.FindStringAt(goDoc(), m.Position{Line: 5, Col: 17})
		require.NoError(t, err)
		assert.Equal(t, `"Hello\nWorld"`, hit.Text)
	})

	t.Run("cursor on a raw literal's second line", func(t *testing.T) {
		hit, err := provider.FindStringAt(goDoc(), m.Position{Line: 8, Col: 2})
		require.NoError(t, err)
		assert.Equal(t, "`multi\nline`", hit.Text)
	})

	t.Run("cursor outside any literal", func(t *testing.T) {
		_, err := provider.FindStringAt(goDoc(), m.Position{Line: 10, Col: 3})
		require.Error(t, err)

		var op *m.OpError
		require.True(t, errors.As(err, &op))
		assert.Equal(t, m.ErrNotFound, op.Kind)
	})

	t.Run("unparseable source", func(t *testing.T) {
		broken := NewMemDocument("broken.go", []string{"func ???"})

		_, err := provider.FindStringAt(broken, m.Position{Line: 1, Col: 0})
		require.Error(t, err)

		var op *m.OpError
		require.True(t, errors.As(err, &op))
		assert.Equal(t, m.ErrNotFound, op.Kind)
	})
}

func TestProviderRegistry(t *testing.T) {
	registry := DefaultProviderRegistry(false)

	t.Run("go files use the ast provider", func(t *testing.T) {
		provider, err := registry.ForDocument(NewMemDocument("x.go", nil))
		require.NoError(t, err)
		assert.IsType(t, &GoASTProvider{}, provider)
	})

	t.Run("tree-sitter grammars are routed by extension", func(t *testing.T) {
		for _, name := range []string{"x.py", "x.js", "x.jsx", "x.mjs"} {
			provider, err := registry.ForDocument(NewMemDocument(name, nil))
			require.NoError(t, err, name)
			assert.IsType(t, &TreeSitterProvider{}, provider, name)
		}
	})

	t.Run("tree-sitter can take over go files", func(t *testing.T) {
		preferring := DefaultProviderRegistry(true)

		provider, err := preferring.ForDocument(NewMemDocument("x.go", nil))
		require.NoError(t, err)
		assert.IsType(t, &TreeSitterProvider{}, provider)
	})

	t.Run("extension matching is case-insensitive", func(t *testing.T) {
		provider, err := registry.ForDocument(NewMemDocument("X.GO", nil))
		require.NoError(t, err)
		assert.IsType(t, &GoASTProvider{}, provider)
	})

	t.Run("unknown extensions point at the selection fallback", func(t *testing.T) {
		_, err := registry.ForDocument(NewMemDocument("notes.txt", nil))
		require.Error(t, err)

		var op *m.OpError
		require.True(t, errors.As(err, &op))
		assert.Equal(t, m.ErrProviderUnavailable, op.Kind)
		assert.NotEmpty(t, op.Suggestions)
	})
}

func TestTreeSitterProviderFindStringAt(t *testing.T) {
	provider := NewTreeSitterProvider()

	t.Run("python literal", func(t *testing.T) {
		doc := NewMemDocument("sample.py", []string{
			`greeting = "Hello\nWorld"`,
			"count = 3",
		})

		hit, err := provider.FindStringAt(doc, m.Position{Line: 1, Col: 14})
		require.NoError(t, err)
		assert.Equal(t, `"Hello\nWorld"`, hit.Text)
		assert.Equal(t, m.Span{
			Start: m.Position{Line: 1, Col: 11},
			End:   m.Position{Line: 1, Col: 25},
		}, hit.Span)
	})

	t.Run("javascript literal", func(t *testing.T) {
		doc := NewMemDocument("sample.js", []string{
			`const s = 'hi\tthere';`,
		})

		hit, err := provider.FindStringAt(doc, m.Position{Line: 1, Col: 12})
		require.NoError(t, err)
		assert.Equal(t, `'hi\tthere'`, hit.Text)
	})

	t.Run("cursor outside any literal", func(t *testing.T) {
		doc := NewMemDocument("sample.py", []string{"count = 3"})

		_, err := provider.FindStringAt(doc, m.Position{Line: 1, Col: 2})
		require.Error(t, err)

		var op *m.OpError
		require.True(t, errors.As(err, &op))
		assert.Equal(t, m.ErrNotFound, op.Kind)
	})
}
