package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	m "strlift.dev/pkg/strlift/internal/model"
)

// StringHit is a structural-parse result: the span of a string node and its
// literal text as found in source, quotes included.
type StringHit struct {
	Span m.Span
	Text string
}

// StructuralProvider maps a cursor position to the enclosing syntactic
// string node. Implementations must distinguish "no string here" (a
// not-found OpError) from "no parser for this content" (a
// provider-unavailable OpError) so callers can suggest the selection
// fallback for the latter.
type StructuralProvider interface {
	// FindStringAt returns the string node enclosing pos.
	FindStringAt(doc Document, pos m.Position) (StringHit, error)

	// AllStrings returns every string node in the document, in source
	// order.
	AllStrings(doc Document) ([]StringHit, error)
}

// ProviderRegistry routes documents to structural providers by file
// extension.
type ProviderRegistry struct {
	byExtension map[string]StructuralProvider
}

// NewProviderRegistry returns an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{byExtension: make(map[string]StructuralProvider)}
}

// Register routes ext (including the leading dot) to provider.
func (r *ProviderRegistry) Register(ext string, provider StructuralProvider) {
	r.byExtension[strings.ToLower(ext)] = provider
}

// ForDocument returns the provider responsible for the document, or a
// provider-unavailable error when no parser covers its content type.
func (r *ProviderRegistry) ForDocument(doc Document) (StructuralProvider, error) {
	ext := strings.ToLower(filepath.Ext(doc.ID()))

	provider, ok := r.byExtension[ext]
	if !ok {
		return nil, m.NewOpError(m.ErrProviderUnavailable,
			fmt.Sprintf("no structural parser for %q files", ext),
			"select the string by hand with --start/--end")
	}

	return provider, nil
}

// DefaultProviderRegistry wires the bundled providers: go/ast for Go
// sources, tree-sitter for the other supported grammars. When
// preferTreeSitter is set, Go sources route through tree-sitter as well.
func DefaultProviderRegistry(preferTreeSitter bool) *ProviderRegistry {
	registry := NewProviderRegistry()
	ts := NewTreeSitterProvider()

	for _, ext := range ts.Extensions() {
		registry.Register(ext, ts)
	}

	if !preferTreeSitter {
		registry.Register(".go", NewGoASTProvider())
	}

	return registry
}

// documentText joins a document's lines into one string for whole-file
// parsers.
func documentText(doc Document) (string, error) {
	count := doc.LineCount()
	lines := make([]string, 0, count)

	for i := 1; i <= count; i++ {
		line, err := doc.Line(i)
		if err != nil {
			return "", err
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}
