package domain

import (
	"fmt"
	"log/slog"
	"strings"

	"strlift.dev/pkg/strlift/internal/adapter"
	m "strlift.dev/pkg/strlift/internal/model"
)

// The in-place operations share the locator and codec with sessions but not
// the binding store: they are stateless, single-shot rewrites of the current
// document.

func (e *engine) EscapeSelection(doc adapter.Document, sel m.RawSelection, quote m.Quote) (res m.Result[InPlaceData]) {
	defer guard(&res)

	info, err := InfoFromSelection(doc, sel)
	if err != nil {
		return m.FailErr[InPlaceData](err)
	}

	if quote == m.QuoteNone {
		quote = info.Quote
	}

	if quote == m.QuoteNone {
		quote = m.QuoteDouble
	}

	// Escaping folds newlines into \n markers, so the replacement is
	// always a single line.
	escaped := Escape(info.Content, quote)

	return e.rewrite(doc, info.Span, []string{escaped})
}

func (e *engine) UnescapeSelection(doc adapter.Document, sel m.RawSelection) (res m.Result[InPlaceData]) {
	defer guard(&res)

	info, err := InfoFromSelection(doc, sel)
	if err != nil {
		return m.FailErr[InPlaceData](err)
	}

	literal := Unescape(info.Content)

	return e.rewrite(doc, info.Span, strings.Split(literal, lineSeparator))
}

// rewrite replaces span with the replacement lines and reports the new span
// so the caller can re-cover the result with the cursor or selection.
func (e *engine) rewrite(doc adapter.Document, span m.Span, replacement []string) m.Result[InPlaceData] {
	if !doc.IsWritable() {
		return m.Fail[InPlaceData](m.ErrPreconditionFailed, fmt.Sprintf("%s is not writable", doc.ID()))
	}

	if err := doc.SetText(span, replacement); err != nil {
		return m.FailErr[InPlaceData](err)
	}

	newSpan := m.Span{Start: span.Start, End: replacementEnd(span.Start, replacement)}

	slog.Info("rewrote selection in place", "document", doc.ID(), "span", newSpan.String())

	return m.Ok(InPlaceData{
		Span: newSpan,
		Text: strings.Join(replacement, lineSeparator),
	}, fmt.Sprintf("rewrote %s in %s", newSpan, doc.ID()))
}
