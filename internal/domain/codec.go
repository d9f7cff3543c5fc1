// Package domain provides the core logic for string extraction and
// round-trip synchronization: the escape codec, the string locator, the
// source binding store and the synchronization engine.
package domain

import (
	"strings"

	m "strlift.dev/pkg/strlift/internal/model"
)

// backslashPlaceholder stands in for a literal backslash pair while the
// remaining escape sequences are interpreted. It is a private-use rune so it
// cannot collide with ordinary input.
const backslashPlaceholder = "\uE000"

// unescapeReplacer interprets the supported single-character escapes. It
// runs only after backslash pairs have been set aside, so a sequence like
// `\\n` stays a literal backslash followed by n.
var unescapeReplacer = strings.NewReplacer(
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\"`, `"`,
	`\'`, "'",
	"\\`", "`",
	`\0`, "\x00",
)

// escapeReplacer handles the quote-independent escapes. Backslashes must be
// doubled before this runs so the markers it inserts are never re-escaped.
var escapeReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\x00", `\0`,
)

// Unescape converts escaped source text into its literal form. Unknown
// escape sequences pass through unchanged, and input without escapes is
// returned as-is.
func Unescape(escaped string) string {
	if !strings.ContainsRune(escaped, '\\') {
		return escaped
	}

	s := strings.ReplaceAll(escaped, `\\`, backslashPlaceholder)
	s = unescapeReplacer.Replace(s)

	return strings.ReplaceAll(s, backslashPlaceholder, `\`)
}

// Escape converts literal text into its escaped-for-source form for a string
// delimited by quote. Only the active quote character is escaped; other
// quote characters do not need escaping inside a string delimited by a
// different one. A QuoteNone quote falls back to double quoting rules.
func Escape(raw string, quote m.Quote) string {
	s := strings.ReplaceAll(raw, `\`, `\\`)
	s = escapeReplacer.Replace(s)

	switch quote {
	case m.QuoteSingle:
		s = strings.ReplaceAll(s, `'`, `\'`)
	case m.QuoteBack:
		s = strings.ReplaceAll(s, "`", "\\`")
	case m.QuoteDouble, m.QuoteNone:
		s = strings.ReplaceAll(s, `"`, `\"`)
	}

	return s
}

// Requote wraps escaped content in its delimiters, producing the full
// quoted text as it should appear in source.
func Requote(escaped string, quote m.Quote) string {
	q := quote.String()

	return q + escaped + q
}

// StripQuotes removes exactly one delimiter from each end of quoted when
// both ends carry it. It is the inverse of Requote for well-formed input.
func StripQuotes(quoted string, quote m.Quote) string {
	q := quote.String()
	if q == "" || len(quoted) < 2 {
		return quoted
	}

	if strings.HasPrefix(quoted, q) && strings.HasSuffix(quoted, q) {
		return quoted[1 : len(quoted)-1]
	}

	return quoted
}
