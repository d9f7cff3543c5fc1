package model

// SurfaceID identifies a disposable editing surface. Sessions are keyed by
// the surface they own, so the two are 1:1 for the session's lifetime.
type SurfaceID string

// SourceBinding links one editing session back to a specific span in a
// specific origin document. It is created when a session opens and rewritten
// after every successful synchronize so the span stays addressable as the
// quoted text changes shape.
type SourceBinding struct {
	// OriginDocument identifies the file or buffer the string was
	// extracted from.
	OriginDocument string

	// Span is the currently valid location of the quoted text.
	Span Span

	// Quote is the delimiter recorded at extraction time. It is immutable
	// for the session and determines re-escaping rules.
	Quote Quote

	// LastKnownQuotedText is the full quoted text, including delimiters,
	// last written to or read from the origin document. Used to detect
	// no-op synchronizations.
	LastKnownQuotedText string
}
