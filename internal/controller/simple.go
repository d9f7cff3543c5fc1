package controller

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"strlift.dev/pkg/strlift/internal/domain"
	m "strlift.dev/pkg/strlift/internal/model"
)

const diffContextLines = 3

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// ShowStrings renders located strings as a table.
func (s *SimpleUI) ShowStrings(path string, infos []m.StringInfo) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Span", "Quote", "Source", "Inner Content"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, info := range infos {
		table.Append([]string{
			info.Span.String(),
			quoteLabel(info.Quote),
			string(info.Source),
			truncate(info.InnerContent, 60),
		})
	}

	table.SetFooter([]string{path, "", "", strconv.Itoa(len(infos)) + " string(s)"})
	table.Render()

	s.printf("\n%s", buf.String())

	return nil
}

// ShowSessions renders the live session list.
func (s *SimpleUI) ShowSessions(sessions []domain.SessionInfo) error {
	if len(sessions) == 0 {
		s.printf("no live sessions\n")
		return nil
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Surface", "Origin", "Span", "Quote"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, session := range sessions {
		table.Append([]string{
			string(session.Surface),
			session.Origin,
			session.Span.String(),
			quoteLabel(session.Quote),
		})
	}

	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// ShowDiff renders a unified diff between two document states.
func (s *SimpleUI) ShowDiff(path string, before, after []string) error {
	diff := difflib.UnifiedDiff{
		A:        appendNewlines(before),
		B:        appendNewlines(after),
		FromFile: path,
		ToFile:   path,
		Context:  diffContextLines,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("failed to render diff for %s: %w", path, err)
	}

	if text == "" {
		return nil
	}

	s.printf("%s", text)

	return nil
}

// ShowMessage prints an informational line.
func (s *SimpleUI) ShowMessage(format string, args ...any) {
	s.printf(format+"\n", args...)
}

// ShowFailure prints a failed result with its error code and remediation
// suggestions.
func (s *SimpleUI) ShowFailure(message string, code m.ErrorKind, suggestions []string) {
	s.printf("error (%s): %s\n", string(code), message)

	for _, suggestion := range suggestions {
		s.printf("  hint: %s\n", suggestion)
	}
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func quoteLabel(q m.Quote) string {
	if q == m.QuoteNone {
		return "none"
	}

	return q.String()
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	if len(s) <= max {
		return s
	}

	return s[:max-1] + "…"
}

// appendNewlines terminates each line for difflib, which diffs
// newline-terminated line sets.
func appendNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}

	return out
}
