// Package adapter contains the infrastructure collaborators the engine
// talks to: document accessors, structural parse providers and editing
// surfaces.
package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	m "strlift.dev/pkg/strlift/internal/model"
)

// Document abstracts the text container a string is extracted from. The
// engine reads and rewrites spans through this interface so the workflow
// logic can be tested without touching the disk.
type Document interface {
	// ID returns an opaque identifier for the document, stable for its
	// lifetime. Bindings record it to tell origin documents apart.
	ID() string

	// LineCount returns the number of lines currently in the document.
	LineCount() int

	// Line returns the 1-based line i without its line terminator.
	Line(i int) (string, error)

	// GetText returns the text covered by span, with multi-line spans
	// joined by "\n".
	GetText(span m.Span) (string, error)

	// SetText replaces the text at span with the given replacement lines.
	// The write is all-or-nothing: on error the document is unchanged.
	SetText(span m.Span, replacement []string) error

	// IsWritable reports whether SetText is permitted.
	IsWritable() bool
}

// FileDocument is a line-addressed view of a file on disk. SetText splices
// in memory and writes the whole file back, preserving the presence or
// absence of a trailing newline.
type FileDocument struct {
	path            string
	lines           []string
	trailingNewline bool
	writable        bool
}

// OpenFileDocument loads path into a FileDocument.
func OpenFileDocument(path string) (*FileDocument, error) {
	content, err := os.ReadFile(path) // #nosec G304 - path is the user's own target file
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	text := string(content)
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = strings.TrimSuffix(text, "\n")
	}

	doc := &FileDocument{
		path:            path,
		lines:           strings.Split(text, "\n"),
		trailingNewline: trailing,
		writable:        info.Mode().Perm()&0o200 != 0,
	}

	slog.Debug("opened document", "path", path, "lines", len(doc.lines), "writable", doc.writable)

	return doc, nil
}

// ID returns the file path.
func (d *FileDocument) ID() string {
	return d.path
}

// LineCount returns the number of lines in the document.
func (d *FileDocument) LineCount() int {
	return len(d.lines)
}

// Line returns the 1-based line i.
func (d *FileDocument) Line(i int) (string, error) {
	if i < 1 || i > len(d.lines) {
		return "", fmt.Errorf("line %d out of range (document has %d lines)", i, len(d.lines))
	}

	return d.lines[i-1], nil
}

// GetText returns the text covered by span.
func (d *FileDocument) GetText(span m.Span) (string, error) {
	return spanText(d.lines, span)
}

// SetText replaces span with the replacement lines and persists the result.
func (d *FileDocument) SetText(span m.Span, replacement []string) error {
	if !d.writable {
		return m.NewOpError(m.ErrPreconditionFailed, fmt.Sprintf("%s is not writable", d.path))
	}

	updated, err := spliceLines(d.lines, span, replacement)
	if err != nil {
		return err
	}

	text := strings.Join(updated, "\n")
	if d.trailingNewline {
		text += "\n"
	}

	if err := os.WriteFile(d.path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}

	d.lines = updated
	slog.Debug("rewrote document span", "path", d.path, "span", span.String(), "replacementLines", len(replacement))

	return nil
}

// IsWritable reports whether the underlying file permits writes.
func (d *FileDocument) IsWritable() bool {
	return d.writable
}

// MemDocument is an in-memory Document used by tests and by hosts that
// manage their own persistence.
type MemDocument struct {
	id       string
	lines    []string
	writable bool
}

// NewMemDocument builds an in-memory document from lines.
func NewMemDocument(id string, lines []string) *MemDocument {
	copied := make([]string, len(lines))
	copy(copied, lines)

	return &MemDocument{id: id, lines: copied, writable: true}
}

// SetWritable toggles write permission, for exercising precondition
// failures.
func (d *MemDocument) SetWritable(writable bool) {
	d.writable = writable
}

// SetLines replaces the whole document content, simulating an external edit.
func (d *MemDocument) SetLines(lines []string) {
	d.lines = make([]string, len(lines))
	copy(d.lines, lines)
}

// Lines returns a copy of the current document content.
func (d *MemDocument) Lines() []string {
	copied := make([]string, len(d.lines))
	copy(copied, d.lines)

	return copied
}

// ID returns the document identifier.
func (d *MemDocument) ID() string {
	return d.id
}

// LineCount returns the number of lines.
func (d *MemDocument) LineCount() int {
	return len(d.lines)
}

// Line returns the 1-based line i.
func (d *MemDocument) Line(i int) (string, error) {
	if i < 1 || i > len(d.lines) {
		return "", fmt.Errorf("line %d out of range (document has %d lines)", i, len(d.lines))
	}

	return d.lines[i-1], nil
}

// GetText returns the text covered by span.
func (d *MemDocument) GetText(span m.Span) (string, error) {
	return spanText(d.lines, span)
}

// SetText replaces span with the replacement lines.
func (d *MemDocument) SetText(span m.Span, replacement []string) error {
	if !d.writable {
		return m.NewOpError(m.ErrPreconditionFailed, fmt.Sprintf("%s is not writable", d.id))
	}

	updated, err := spliceLines(d.lines, span, replacement)
	if err != nil {
		return err
	}

	d.lines = updated

	return nil
}

// IsWritable reports whether SetText is permitted.
func (d *MemDocument) IsWritable() bool {
	return d.writable
}

// spanText extracts the text covered by span from lines, joining multi-line
// spans with "\n".
func spanText(lines []string, span m.Span) (string, error) {
	if err := checkSpan(lines, span); err != nil {
		return "", err
	}

	if span.Start.Line == span.End.Line {
		return lines[span.Start.Line-1][span.Start.Col:span.End.Col], nil
	}

	parts := make([]string, 0, span.End.Line-span.Start.Line+1)
	parts = append(parts, lines[span.Start.Line-1][span.Start.Col:])

	for i := span.Start.Line + 1; i < span.End.Line; i++ {
		parts = append(parts, lines[i-1])
	}

	parts = append(parts, lines[span.End.Line-1][:span.End.Col])

	return strings.Join(parts, "\n"), nil
}

// spliceLines returns a copy of lines with span replaced by the replacement
// lines. The text before span on its first line and after span on its last
// line is preserved around the replacement.
func spliceLines(lines []string, span m.Span, replacement []string) ([]string, error) {
	if err := checkSpan(lines, span); err != nil {
		return nil, err
	}

	if len(replacement) == 0 {
		replacement = []string{""}
	}

	prefix := lines[span.Start.Line-1][:span.Start.Col]
	suffix := lines[span.End.Line-1][span.End.Col:]

	merged := make([]string, len(replacement))
	copy(merged, replacement)
	merged[0] = prefix + merged[0]
	merged[len(merged)-1] += suffix

	updated := make([]string, 0, span.Start.Line-1+len(merged)+len(lines)-span.End.Line)
	updated = append(updated, lines[:span.Start.Line-1]...)
	updated = append(updated, merged...)
	updated = append(updated, lines[span.End.Line:]...)

	return updated, nil
}

func checkSpan(lines []string, span m.Span) error {
	span = span.Ordered()

	if span.Start.Line < 1 || span.End.Line > len(lines) {
		return m.NewOpError(m.ErrStaleBinding,
			fmt.Sprintf("span %s is outside the document (%d lines)", span.String(), len(lines)))
	}

	if span.Start.Col < 0 || span.Start.Col > len(lines[span.Start.Line-1]) {
		return m.NewOpError(m.ErrStaleBinding,
			fmt.Sprintf("span start column %d exceeds line %d", span.Start.Col, span.Start.Line))
	}

	if span.End.Col < 0 || span.End.Col > len(lines[span.End.Line-1]) {
		return m.NewOpError(m.ErrStaleBinding,
			fmt.Sprintf("span end column %d exceeds line %d", span.End.Col, span.End.Line))
	}

	return nil
}
