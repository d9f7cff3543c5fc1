package adapter

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	m "strlift.dev/pkg/strlift/internal/model"
)

// GoASTProvider locates string literals in Go sources with go/parser. It
// walks the AST for *ast.BasicLit string nodes, so it only reports
// syntactically complete literals.
type GoASTProvider struct{}

// NewGoASTProvider constructs a GoASTProvider.
func NewGoASTProvider() *GoASTProvider {
	return &GoASTProvider{}
}

// FindStringAt returns the string literal enclosing pos.
func (p *GoASTProvider) FindStringAt(doc Document, pos m.Position) (StringHit, error) {
	hits, err := p.AllStrings(doc)
	if err != nil {
		return StringHit{}, err
	}

	for _, hit := range hits {
		if !pos.Before(hit.Span.Start) && pos.Before(hit.Span.End) {
			return hit, nil
		}
	}

	return StringHit{}, m.NewOpError(m.ErrNotFound,
		fmt.Sprintf("no string literal at %s in %s", pos.String(), doc.ID()))
}

// AllStrings returns every string literal in the document, in source order.
func (p *GoASTProvider) AllStrings(doc Document) ([]StringHit, error) {
	src, err := documentText(doc)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, doc.ID(), src, parser.ParseComments)
	if err != nil {
		return nil, m.WrapOpError(m.ErrNotFound, fmt.Sprintf("failed to parse %s", doc.ID()), err)
	}

	var hits []StringHit

	ast.Inspect(file, func(n ast.Node) bool {
		lit, ok := n.(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}

		start := fset.Position(lit.Pos())
		end := fset.Position(lit.End())

		hits = append(hits, StringHit{
			Span: m.Span{
				// go/token columns are 1-based; the engine's are 0-based.
				Start: m.Position{Line: start.Line, Col: start.Column - 1},
				End:   m.Position{Line: end.Line, Col: end.Column - 1},
			},
			Text: lit.Value,
		})

		return true
	})

	return hits, nil
}
