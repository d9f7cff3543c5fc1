package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "strlift.dev/pkg/strlift/internal/model"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		name    string
		escaped string
		want    string
	}{
		{"empty", "", ""},
		{"no escapes", "plain text", "plain text"},
		{"newline", `one\ntwo`, "one\ntwo"},
		{"tab", `a\tb`, "a\tb"},
		{"carriage return", `a\rb`, "a\rb"},
		{"double quote", `say \"hi\"`, `say "hi"`},
		{"single quote", `it\'s`, "it's"},
		{"backtick", "a\\`b", "a`b"},
		{"nul", `end\0`, "end\x00"},
		{"double backslash", `a\\b`, `a\b`},
		{"backslash then n stays literal", `a\\nb`, `a\nb`},
		{"quad backslash", `\\\\`, `\\`},
		{"unknown escape passes through", `a\qb`, `a\qb`},
		{"trailing lone backslash", `a\`, `a\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unescape(tt.escaped))
		})
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		quote m.Quote
		want  string
	}{
		{"empty", "", m.QuoteDouble, ""},
		{"newline", "one\ntwo", m.QuoteDouble, `one\ntwo`},
		{"tab and cr", "a\tb\rc", m.QuoteDouble, `a\tb\rc`},
		{"backslash doubles", `a\b`, m.QuoteDouble, `a\\b`},
		{"backslash before markers", "\\\n", m.QuoteDouble, `\\\n`},
		{"matching double quote", `say "hi"`, m.QuoteDouble, `say \"hi\"`},
		{"matching single quote", "it's", m.QuoteSingle, `it\'s`},
		{"matching backtick", "a`b", m.QuoteBack, "a\\`b"},
		{"nul", "end\x00", m.QuoteDouble, `end\0`},
		{"no quote falls back to double rules", `say "hi"`, m.QuoteNone, `say \"hi\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.raw, tt.quote))
		})
	}
}

// Other quote characters in the content must stay untouched: they do not
// need escaping inside a string delimited by a different quote.
func TestEscapeQuoteScoping(t *testing.T) {
	assert.Equal(t, `He said "hi"`, Escape(`He said "hi"`, m.QuoteSingle))
	assert.Equal(t, "tick ` tick", Escape("tick ` tick", m.QuoteDouble))
	assert.Equal(t, `don\'t`, Escape("don't", m.QuoteSingle))
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"line one\nline two\nline three",
		"tabs\tand\rreturns",
		`back\slash`,
		`\\already\nescaped\\`,
		`mixed "double" and 'single' and ` + "`back`",
		"nul\x00inside",
		"trailing backslash \\",
		"\\n is not a newline here",
	}
	quotes := []m.Quote{m.QuoteDouble, m.QuoteSingle, m.QuoteBack}

	for _, raw := range inputs {
		for _, quote := range quotes {
			assert.Equal(t, raw, Unescape(Escape(raw, quote)),
				"round trip failed for %q with quote %s", raw, quote)
		}
	}
}

func TestRequoteStripQuotes(t *testing.T) {
	assert.Equal(t, `"abc"`, Requote("abc", m.QuoteDouble))
	assert.Equal(t, "abc", Requote("abc", m.QuoteNone))
	assert.Equal(t, "abc", StripQuotes(`"abc"`, m.QuoteDouble))
	assert.Equal(t, `"abc`, StripQuotes(`"abc`, m.QuoteDouble), "asymmetric quotes stay")
	assert.Equal(t, "abc", StripQuotes("abc", m.QuoteNone))
	assert.Equal(t, `"`, StripQuotes(`"`, m.QuoteDouble), "single char is not a pair")
}
