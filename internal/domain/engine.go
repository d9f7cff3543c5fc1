package domain

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"strlift.dev/pkg/strlift/internal/adapter"
	m "strlift.dev/pkg/strlift/internal/model"
)

// Engine drives editing sessions from creation to a terminal write-or-discard
// outcome. Every operation is synchronous and runs to completion within the
// caller's invocation; failures never escape as panics or bare errors, they
// come back in the uniform result envelope.
type Engine interface {
	// Locate finds the string literal enclosing pos via the structural
	// parse provider registered for the document's content type.
	Locate(doc adapter.Document, pos m.Position) m.Result[LocateData]

	// LocateSelection normalizes a hand-made selection into the same
	// StringInfo shape the structural path produces.
	LocateSelection(doc adapter.Document, sel m.RawSelection) m.Result[LocateData]

	// Strings lists every string literal the structural provider can find
	// in the document.
	Strings(doc adapter.Document) m.Result[[]m.StringInfo]

	// Open starts an editing session over a located string: the inner
	// content is unescaped into a fresh editing surface and a source
	// binding is recorded. Sessions over spans overlapping a live binding
	// on the same document are rejected.
	Open(doc adapter.Document, info m.StringInfo) m.Result[OpenData]

	// Synchronize writes the surface's current text back into the origin
	// document through the session's binding, then updates the binding so
	// the session can be synchronized again. A surface whose text matches
	// the last written state is a no-op.
	Synchronize(id m.SurfaceID) m.Result[SyncData]

	// Save synchronizes, then destroys the surface and closes the session.
	Save(id m.SurfaceID) m.Result[SaveData]

	// Cancel discards the session without writing. It is unconditional:
	// the surface is destroyed even when the binding was already lost.
	Cancel(id m.SurfaceID) m.Result[CancelData]

	// Sessions lists the live sessions for diagnostics.
	Sessions() []SessionInfo

	// EscapeSelection escapes a selected span in place in the document,
	// with no session involved.
	EscapeSelection(doc adapter.Document, sel m.RawSelection, quote m.Quote) m.Result[InPlaceData]

	// UnescapeSelection unescapes a selected span in place.
	UnescapeSelection(doc adapter.Document, sel m.RawSelection) m.Result[InPlaceData]
}

// LocateData carries a located string.
type LocateData struct {
	Info m.StringInfo
}

// OpenData describes a freshly opened session.
type OpenData struct {
	Surface m.SurfaceID
	Info    m.StringInfo
	Lines   []string
}

// SyncData reports the outcome of one synchronize call.
type SyncData struct {
	Changed       bool
	ContentLength int
	LineCount     int
	NewEnd        m.Position
}

// SaveData reports a closed session: whether anything was written and where
// in the origin document control should return to.
type SaveData struct {
	Changed  bool
	ReturnTo m.Position
}

// CancelData reports a discarded session. Forced is set when the surface had
// to be torn down without a live binding.
type CancelData struct {
	Forced bool
}

// InPlaceData reports a stateless in-place codec rewrite: the replacement
// span and the text now occupying it.
type InPlaceData struct {
	Span m.Span
	Text string
}

// SessionInfo is a diagnostic view of one live session.
type SessionInfo struct {
	Surface m.SurfaceID
	Origin  string
	Span    m.Span
	Quote   m.Quote
}

type engine struct {
	providers *adapter.ProviderRegistry
	surfaces  adapter.SurfaceManager
	store     *BindingStore
	docs      map[m.SurfaceID]adapter.Document
}

// NewEngine constructs an Engine backed by the provided structural provider
// registry and surface manager.
func NewEngine(providers *adapter.ProviderRegistry, surfaces adapter.SurfaceManager) Engine {
	return &engine{
		providers: providers,
		surfaces:  surfaces,
		store:     NewBindingStore(),
		docs:      make(map[m.SurfaceID]adapter.Document),
	}
}

// guard converts a panic into an unexpected-failure result. It is the
// last-resort safety net behind the explicit error returns.
func guard[T any](res *m.Result[T]) {
	if r := recover(); r != nil {
		*res = m.Fail[T](m.ErrUnexpected, fmt.Sprintf("internal failure: %v", r))
	}
}

func (e *engine) Locate(doc adapter.Document, pos m.Position) (res m.Result[LocateData]) {
	defer guard(&res)

	provider, err := e.providers.ForDocument(doc)
	if err != nil {
		return m.FailErr[LocateData](err)
	}

	hit, err := provider.FindStringAt(doc, pos)
	if err != nil {
		return m.FailErr[LocateData](err)
	}

	info, err := InfoFromStructural(hit)
	if err != nil {
		return m.FailErr[LocateData](err)
	}

	slog.Debug("located string", "document", doc.ID(), "span", info.Span.String(), "quote", info.Quote.String())

	return m.Ok(LocateData{Info: info}, fmt.Sprintf("found %s string at %s", info.Source, info.Span))
}

func (e *engine) LocateSelection(doc adapter.Document, sel m.RawSelection) (res m.Result[LocateData]) {
	defer guard(&res)

	info, err := InfoFromSelection(doc, sel)
	if err != nil {
		return m.FailErr[LocateData](err)
	}

	return m.Ok(LocateData{Info: info}, fmt.Sprintf("selected %s", info.Span))
}

func (e *engine) Strings(doc adapter.Document) (res m.Result[[]m.StringInfo]) {
	defer guard(&res)

	provider, err := e.providers.ForDocument(doc)
	if err != nil {
		return m.FailErr[[]m.StringInfo](err)
	}

	hits, err := provider.AllStrings(doc)
	if err != nil {
		return m.FailErr[[]m.StringInfo](err)
	}

	infos := make([]m.StringInfo, 0, len(hits))

	for _, hit := range hits {
		info, err := InfoFromStructural(hit)
		if err != nil {
			continue
		}

		infos = append(infos, info)
	}

	return m.Ok(infos, fmt.Sprintf("%d string(s) in %s", len(infos), doc.ID()))
}

func (e *engine) Open(doc adapter.Document, info m.StringInfo) (res m.Result[OpenData]) {
	defer guard(&res)

	if !doc.IsWritable() {
		return m.Fail[OpenData](m.ErrPreconditionFailed, fmt.Sprintf("%s is not writable", doc.ID()))
	}

	if info.Content == "" {
		return m.Fail[OpenData](m.ErrInvalidInput, "nothing to edit: located content is empty")
	}

	if other, ok := e.store.Overlapping(doc.ID(), info.Span); ok {
		return m.Fail[OpenData](m.ErrPreconditionFailed,
			fmt.Sprintf("span %s overlaps live session %s", info.Span, other),
			"save or cancel the other session first")
	}

	literal := Unescape(info.InnerContent)
	lines := strings.Split(literal, lineSeparator)
	id := e.surfaces.Create(lines)

	e.store.Put(id, &m.SourceBinding{
		OriginDocument:      doc.ID(),
		Span:                info.Span,
		Quote:               info.Quote,
		LastKnownQuotedText: info.Content,
	})
	e.docs[id] = doc

	slog.Info("opened session", "surface", string(id), "document", doc.ID(), "span", info.Span.String())

	return m.Ok(OpenData{Surface: id, Info: info, Lines: lines}, fmt.Sprintf("editing %s of %s", info.Span, doc.ID()))
}

func (e *engine) Synchronize(id m.SurfaceID) (res m.Result[SyncData]) {
	defer guard(&res)

	binding := e.store.Get(id)
	if binding == nil {
		return m.Fail[SyncData](m.ErrPreconditionFailed, fmt.Sprintf("no session for surface %s", id))
	}

	doc := e.docs[id]

	lines, err := e.surfaces.Lines(id)
	if err != nil {
		return m.FailErr[SyncData](m.WrapOpError(m.ErrPreconditionFailed, "editing surface is gone", err))
	}

	edited := strings.Join(lines, lineSeparator)

	// Nothing to write when the surface still matches the last written
	// state; skipping the write also keeps position tracking intact.
	original := Unescape(StripQuotes(binding.LastKnownQuotedText, binding.Quote))
	if edited == original {
		return m.Ok(SyncData{
			Changed:       false,
			ContentLength: len(binding.LastKnownQuotedText),
			LineCount:     strings.Count(binding.LastKnownQuotedText, lineSeparator) + 1,
			NewEnd:        binding.Span.End,
		}, "no changes to synchronize")
	}

	full := Requote(Escape(edited, binding.Quote), binding.Quote)

	// Validate before writing: an origin document that shrank below the
	// recorded span must not be touched.
	if binding.Span.End.Line > doc.LineCount() {
		return m.Fail[SyncData](m.ErrStaleBinding,
			fmt.Sprintf("origin document %s now has %d lines, binding ends at line %d",
				binding.OriginDocument, doc.LineCount(), binding.Span.End.Line))
	}

	replacement := strings.Split(full, lineSeparator)

	if err := doc.SetText(binding.Span, replacement); err != nil {
		return m.FailErr[SyncData](err)
	}

	newEnd := replacementEnd(binding.Span.Start, replacement)

	binding.Span = m.Span{Start: binding.Span.Start, End: newEnd}
	binding.LastKnownQuotedText = full
	e.store.Put(id, binding)

	slog.Info("synchronized session", "surface", string(id), "document", binding.OriginDocument,
		"span", binding.Span.String(), "lines", len(replacement))

	return m.Ok(SyncData{
		Changed:       true,
		ContentLength: len(full),
		LineCount:     len(replacement),
		NewEnd:        newEnd,
	}, fmt.Sprintf("wrote %d line(s) to %s", len(replacement), binding.OriginDocument))
}

func (e *engine) Save(id m.SurfaceID) (res m.Result[SaveData]) {
	defer guard(&res)

	if !e.surfaces.Exists(id) {
		return m.Fail[SaveData](m.ErrPreconditionFailed, fmt.Sprintf("%s is not a live editing surface", id))
	}

	sync := e.Synchronize(id)
	if !sync.Success {
		return m.Result[SaveData]{
			Message:     sync.Message,
			ErrorCode:   sync.ErrorCode,
			Suggestions: sync.Suggestions,
		}
	}

	binding := e.store.Get(id)
	returnTo := binding.Span.Start

	e.closeSession(id)

	slog.Info("saved session", "surface", string(id), "changed", sync.Data.Changed)

	return m.Ok(SaveData{Changed: sync.Data.Changed, ReturnTo: returnTo},
		fmt.Sprintf("session closed, back at %s", returnTo))
}

func (e *engine) Cancel(id m.SurfaceID) (res m.Result[CancelData]) {
	defer guard(&res)

	forced := e.store.Get(id) == nil

	e.closeSession(id)

	slog.Info("canceled session", "surface", string(id), "forced", forced)

	return m.Ok(CancelData{Forced: forced}, "session discarded")
}

// closeSession tears down everything a session owns. Destroy failures are
// swallowed: cleanup must not leave orphaned surfaces or bindings behind.
func (e *engine) closeSession(id m.SurfaceID) {
	if err := e.surfaces.Destroy(id); err != nil {
		slog.Warn("surface already gone during cleanup", "surface", string(id), "error", err)
	}

	e.store.Delete(id)
	delete(e.docs, id)
}

func (e *engine) Sessions() []SessionInfo {
	sessions := make([]SessionInfo, 0, e.store.Len())

	e.store.Each(func(id m.SurfaceID, b *m.SourceBinding) {
		sessions = append(sessions, SessionInfo{
			Surface: id,
			Origin:  b.OriginDocument,
			Span:    b.Span,
			Quote:   b.Quote,
		})
	})

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Surface < sessions[j].Surface
	})

	return sessions
}

// replacementEnd computes the exclusive end position of replacement lines
// written at start: a single-line replacement extends the start column, a
// multi-line one ends at the length of its final line.
func replacementEnd(start m.Position, replacement []string) m.Position {
	if len(replacement) == 1 {
		return m.Position{Line: start.Line, Col: start.Col + len(replacement[0])}
	}

	return m.Position{
		Line: start.Line + len(replacement) - 1,
		Col:  len(replacement[len(replacement)-1]),
	}
}
