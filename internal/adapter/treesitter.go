package adapter

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"

	m "strlift.dev/pkg/strlift/internal/model"
)

// TreeSitterProvider locates string literals with tree-sitter grammars. One
// provider instance serves every bundled language; the grammar is picked per
// document by extension.
type TreeSitterProvider struct {
	languages map[string]*sitter.Language
}

// NewTreeSitterProvider constructs a provider with the bundled grammars.
func NewTreeSitterProvider() *TreeSitterProvider {
	goLang := golang.GetLanguage()
	jsLang := javascript.GetLanguage()
	pyLang := python.GetLanguage()

	return &TreeSitterProvider{
		languages: map[string]*sitter.Language{
			".go":  goLang,
			".js":  jsLang,
			".jsx": jsLang,
			".mjs": jsLang,
			".py":  pyLang,
		},
	}
}

// Extensions returns the file extensions this provider can parse, sorted.
func (p *TreeSitterProvider) Extensions() []string {
	exts := make([]string, 0, len(p.languages))
	for ext := range p.languages {
		exts = append(exts, ext)
	}

	sort.Strings(exts)

	return exts
}

// FindStringAt returns the string node enclosing pos, climbing from the
// innermost named node at the cursor to the nearest enclosing string.
func (p *TreeSitterProvider) FindStringAt(doc Document, pos m.Position) (StringHit, error) {
	src, root, cleanup, err := p.parse(doc)
	if err != nil {
		return StringHit{}, err
	}
	defer cleanup()

	point := sitter.Point{Row: uint32(pos.Line - 1), Column: uint32(pos.Col)}

	node := root.NamedDescendantForPointRange(point, point)
	for node != nil && !isStringNode(node.Type()) {
		node = node.Parent()
	}

	if node == nil {
		return StringHit{}, m.NewOpError(m.ErrNotFound,
			fmt.Sprintf("no string node at %s in %s", pos.String(), doc.ID()))
	}

	return nodeHit(node, src), nil
}

// AllStrings returns every string node in the document, in source order.
func (p *TreeSitterProvider) AllStrings(doc Document) ([]StringHit, error) {
	src, root, cleanup, err := p.parse(doc)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var hits []StringHit

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if isStringNode(node.Type()) {
			hits = append(hits, nodeHit(node, src))
			return
		}

		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}

	walk(root)

	return hits, nil
}

func (p *TreeSitterProvider) parse(doc Document) (src []byte, root *sitter.Node, cleanup func(), err error) {
	lang, ok := p.languages[strings.ToLower(filepath.Ext(doc.ID()))]
	if !ok {
		return nil, nil, nil, m.NewOpError(m.ErrProviderUnavailable,
			fmt.Sprintf("no tree-sitter grammar for %s", doc.ID()),
			"select the string by hand with --start/--end")
	}

	text, err := documentText(doc)
	if err != nil {
		return nil, nil, nil, err
	}

	src = []byte(text)

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, nil, nil, m.WrapOpError(m.ErrNotFound, fmt.Sprintf("failed to parse %s", doc.ID()), err)
	}

	return src, tree.RootNode(), tree.Close, nil
}

// isStringNode matches the string node types across the bundled grammars
// (interpreted_string_literal, raw_string_literal, string, string_literal).
func isStringNode(nodeType string) bool {
	return strings.Contains(nodeType, "string")
}

// nodeHit converts a tree-sitter node into a StringHit in engine
// coordinates: rows become 1-based lines, point columns are already 0-based
// byte offsets.
func nodeHit(node *sitter.Node, src []byte) StringHit {
	start := node.StartPoint()
	end := node.EndPoint()

	return StringHit{
		Span: m.Span{
			Start: m.Position{Line: int(start.Row) + 1, Col: int(start.Column)},
			End:   m.Position{Line: int(end.Row) + 1, Col: int(end.Column)},
		},
		Text: node.Content(src),
	}
}
