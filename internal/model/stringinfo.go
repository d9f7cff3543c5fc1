package model

// Quote is the delimiter character of a string literal.
type Quote rune

// Supported quote characters. QuoteNone marks content with no detected
// quoting (free-form selections).
const (
	QuoteNone   Quote = 0
	QuoteDouble Quote = '"'
	QuoteSingle Quote = '\''
	QuoteBack   Quote = '`'
)

// IsQuote reports whether r is one of the recognized quote characters.
func IsQuote(r rune) bool {
	return r == rune(QuoteDouble) || r == rune(QuoteSingle) || r == rune(QuoteBack)
}

func (q Quote) String() string {
	if q == QuoteNone {
		return ""
	}

	return string(rune(q))
}

// SourceType records which discovery strategy produced a StringInfo. It is
// carried through for diagnostics and labeling only and never changes codec
// behavior.
type SourceType string

const (
	// SourceStructural means a parse provider identified the string node.
	SourceStructural SourceType = "structural"
	// SourceSelection means the user selected the span by hand.
	SourceSelection SourceType = "selection"
)

// StringInfo is the normalized result of locating a string literal or a
// free-form selection. Both discovery strategies converge on this shape.
type StringInfo struct {
	// Content is the full raw text as it appears in source, including the
	// surrounding quote characters when present.
	Content string

	// InnerContent is Content with one leading and one trailing quote
	// stripped when the first and last characters are the same quote
	// character; otherwise it equals Content.
	InnerContent string

	// Quote is the detected delimiter, or QuoteNone.
	Quote Quote

	// Span is the location of Content in the origin document at the moment
	// of detection.
	Span Span

	// Source is the discovery strategy that produced this record.
	Source SourceType
}

// SelectionMode distinguishes character-wise from line-wise selection
// granularity.
type SelectionMode string

const (
	// SelectionChar selects an exact character range.
	SelectionChar SelectionMode = "char"
	// SelectionLine selects whole lines regardless of click columns.
	SelectionLine SelectionMode = "line"
)

// RawSelection is a selection as reported by the host selection primitive:
// lines and columns are 1-based and the end is inclusive, and the endpoints
// may arrive in either order when the user dragged backward. The locator
// normalizes it into the engine's 1-based-line/0-based-column half-open
// convention.
type RawSelection struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Mode      SelectionMode
}
