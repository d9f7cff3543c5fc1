package domain

import (
	"fmt"
	"strings"

	"strlift.dev/pkg/strlift/internal/adapter"
	m "strlift.dev/pkg/strlift/internal/model"
)

// lineSeparator joins multi-line spans into one string. Documents are
// line-addressed, so the separator never appears inside a line.
const lineSeparator = "\n"

// InfoFromStructural normalizes a structural-parse hit into a StringInfo.
// The provider is trusted to have identified a syntactically complete string
// node; the quote character is re-derived from the text itself so a provider
// that reports nonsense degrades to the conservative no-strip behavior
// instead of corrupting content.
func InfoFromStructural(hit adapter.StringHit) (m.StringInfo, error) {
	if hit.Text == "" {
		return m.StringInfo{}, m.NewOpError(m.ErrNotFound, "structural provider returned an empty string node")
	}

	info := newStringInfo(hit.Text, hit.Span, m.SourceStructural)

	return info, nil
}

// InfoFromSelection normalizes a raw selection into a StringInfo. The
// selection arrives in the host's 1-based inclusive convention, possibly
// with reversed endpoints; it leaves here ordered, snapped for line-wise
// mode, and translated into the engine's half-open coordinates.
func InfoFromSelection(doc adapter.Document, sel m.RawSelection) (m.StringInfo, error) {
	span, err := NormalizeSelection(doc, sel)
	if err != nil {
		return m.StringInfo{}, err
	}

	content, err := doc.GetText(span)
	if err != nil {
		return m.StringInfo{}, m.WrapOpError(m.ErrInvalidInput, "selection is not readable", err)
	}

	if content == "" {
		return m.StringInfo{}, m.NewOpError(m.ErrInvalidInput, "selection is empty")
	}

	return newStringInfo(content, span, m.SourceSelection), nil
}

// NormalizeSelection orders a raw selection's endpoints, applies line-wise
// snapping, and translates the host's 1-based inclusive columns into the
// engine's 0-based half-open span.
func NormalizeSelection(doc adapter.Document, sel m.RawSelection) (m.Span, error) {
	if sel.StartLine < 1 || sel.EndLine < 1 {
		return m.Span{}, m.NewOpError(m.ErrInvalidInput,
			fmt.Sprintf("selection lines must be positive, got %d..%d", sel.StartLine, sel.EndLine))
	}

	if sel.StartLine > doc.LineCount() || sel.EndLine > doc.LineCount() {
		return m.Span{}, m.NewOpError(m.ErrInvalidInput,
			fmt.Sprintf("selection exceeds document length (%d lines)", doc.LineCount()))
	}

	// The user may have dragged backward; order endpoints before anything
	// else so snapping and translation see a forward range.
	start := m.Position{Line: sel.StartLine, Col: sel.StartCol}
	end := m.Position{Line: sel.EndLine, Col: sel.EndCol}
	if end.Before(start) {
		start, end = end, start
	}

	if sel.Mode == m.SelectionLine {
		lastLine, err := doc.Line(end.Line)
		if err != nil {
			return m.Span{}, m.WrapOpError(m.ErrInvalidInput, "selection end line is not readable", err)
		}

		return m.Span{
			Start: m.Position{Line: start.Line, Col: 0},
			End:   m.Position{Line: end.Line, Col: len(lastLine)},
		}, nil
	}

	// Character-wise: host columns are 1-based with an inclusive end, so
	// the start shifts left by one and the end column is already the
	// exclusive 0-based boundary.
	span := m.Span{
		Start: m.Position{Line: start.Line, Col: start.Col - 1},
		End:   m.Position{Line: end.Line, Col: end.Col},
	}

	if span.Start.Col < 0 {
		span.Start.Col = 0
	}

	endLine, err := doc.Line(span.End.Line)
	if err != nil {
		return m.Span{}, m.WrapOpError(m.ErrInvalidInput, "selection end line is not readable", err)
	}

	if span.End.Col > len(endLine) {
		span.End.Col = len(endLine)
	}

	return span, nil
}

// newStringInfo applies the shared quote-detection rule: a symmetric quote
// pair is stripped, a lone leading quote marks the quote type but leaves the
// content untouched (truncated selections stay editable without being
// blindly de-quoted).
func newStringInfo(content string, span m.Span, source m.SourceType) m.StringInfo {
	info := m.StringInfo{
		Content:      content,
		InnerContent: content,
		Quote:        m.QuoteNone,
		Span:         span,
		Source:       source,
	}

	first := rune(content[0])
	if !m.IsQuote(first) {
		return info
	}

	info.Quote = m.Quote(first)
	if len(content) >= 2 && strings.HasSuffix(content, string(first)) {
		info.InnerContent = content[1 : len(content)-1]
	}

	return info
}
