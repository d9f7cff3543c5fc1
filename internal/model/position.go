// Package model defines the data structures for string extraction and
// round-trip synchronization.
package model

import "fmt"

// Position is a document coordinate. Line is 1-based, Col is 0-based and
// counts bytes within the line. When a Position is the end of a Span it is
// exclusive.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p orders strictly before other, comparing by
// (line, column).
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span delimits a contiguous range of text in a document. Start is
// inclusive, End is exclusive, both in Position coordinates.
type Span struct {
	Start Position
	End   Position
}

// Ordered returns a span whose Start is never after its End.
func (s Span) Ordered() Span {
	if s.End.Before(s.Start) {
		return Span{Start: s.End, End: s.Start}
	}

	return s
}

// Overlaps reports whether two spans share at least one position.
func (s Span) Overlaps(other Span) bool {
	a := s.Ordered()
	b := other.Ordered()

	// Disjoint when one ends at or before the other starts.
	if !a.Start.Before(b.End) || !b.Start.Before(a.End) {
		return false
	}

	return true
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
