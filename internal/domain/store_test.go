package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "strlift.dev/pkg/strlift/internal/model"
)

func storeSpan(startLine, startCol, endLine, endCol int) m.Span {
	return m.Span{
		Start: m.Position{Line: startLine, Col: startCol},
		End:   m.Position{Line: endLine, Col: endCol},
	}
}

func TestBindingStore(t *testing.T) {
	store := NewBindingStore()

	assert.Nil(t, store.Get("surface-1"))
	assert.Equal(t, 0, store.Len())

	binding := &m.SourceBinding{
		OriginDocument:      "a.go",
		Span:                storeSpan(1, 4, 1, 10),
		Quote:               m.QuoteDouble,
		LastKnownQuotedText: `"text"`,
	}

	store.Put("surface-1", binding)
	assert.Equal(t, 1, store.Len())
	assert.Same(t, binding, store.Get("surface-1"))

	store.Delete("surface-1")
	assert.Nil(t, store.Get("surface-1"))

	// Deleting again is a no-op.
	store.Delete("surface-1")
	assert.Equal(t, 0, store.Len())
}

func TestBindingStoreOverlapping(t *testing.T) {
	store := NewBindingStore()
	store.Put("surface-1", &m.SourceBinding{
		OriginDocument: "a.go",
		Span:           storeSpan(2, 4, 2, 10),
	})

	tests := []struct {
		name   string
		origin string
		span   m.Span
		want   bool
	}{
		{name: "identical span", origin: "a.go", span: storeSpan(2, 4, 2, 10), want: true},
		{name: "partial overlap", origin: "a.go", span: storeSpan(2, 8, 2, 20), want: true},
		{name: "contained", origin: "a.go", span: storeSpan(2, 5, 2, 6), want: true},
		{name: "adjacent before", origin: "a.go", span: storeSpan(2, 0, 2, 4), want: false},
		{name: "adjacent after", origin: "a.go", span: storeSpan(2, 10, 2, 15), want: false},
		{name: "other line", origin: "a.go", span: storeSpan(3, 4, 3, 10), want: false},
		{name: "other document", origin: "b.go", span: storeSpan(2, 4, 2, 10), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := store.Overlapping(tt.origin, tt.span)
			assert.Equal(t, tt.want, ok)

			if tt.want {
				assert.Equal(t, m.SurfaceID("surface-1"), id)
			}
		})
	}
}

func TestBindingStoreEach(t *testing.T) {
	store := NewBindingStore()
	store.Put("surface-1", &m.SourceBinding{OriginDocument: "a.go"})
	store.Put("surface-2", &m.SourceBinding{OriginDocument: "b.go"})

	seen := map[m.SurfaceID]string{}
	store.Each(func(id m.SurfaceID, b *m.SourceBinding) {
		seen[id] = b.OriginDocument
	})

	require.Len(t, seen, 2)
	assert.Equal(t, "a.go", seen["surface-1"])
	assert.Equal(t, "b.go", seen["surface-2"])
}
