// Package controller renders engine results for the CLI, either as plain
// tabular output or through the interactive editor.
package controller

import (
	"strlift.dev/pkg/strlift/internal/domain"
	m "strlift.dev/pkg/strlift/internal/model"
)

// UI is the output surface for engine results. Implementations can use
// different output methods (plain text tables, TUI, etc).
type UI interface {
	// ShowStrings renders located strings as a table.
	ShowStrings(path string, infos []m.StringInfo) error

	// ShowSessions renders the live session list.
	ShowSessions(sessions []domain.SessionInfo) error

	// ShowDiff renders a unified diff between two document states.
	ShowDiff(path string, before, after []string) error

	// ShowMessage prints an informational line.
	ShowMessage(format string, args ...any)

	// ShowFailure prints a failed result with its error code and
	// remediation suggestions.
	ShowFailure(message string, code m.ErrorKind, suggestions []string)
}
