package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"strlift.dev/pkg/strlift/internal/adapter"
	"strlift.dev/pkg/strlift/internal/domain"
	m "strlift.dev/pkg/strlift/internal/model"
)

const (
	// chromeHeight is the number of rows the title and status bars occupy
	// around the textarea.
	chromeHeight = 4

	defaultEditorWidth  = 80
	defaultEditorHeight = 20
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// EditorOptions configures one interactive editing session. The surface
// referenced by Surface must already be open in the engine; the editor
// pushes its buffer into that surface before every synchronize.
type EditorOptions struct {
	Engine   domain.Engine
	Surfaces adapter.SurfaceManager
	Surface  m.SurfaceID
	Origin   string
	Quote    m.Quote
	Lines    []string
	Output   io.Writer
}

// EditorOutcome reports how the interactive session ended.
type EditorOutcome struct {
	Saved   bool
	Changed bool
	Message string
}

// RunEditor opens the unescaped literal in a textarea and drives the
// session: ctrl+s synchronizes without closing, ctrl+q saves and closes,
// esc cancels.
func RunEditor(opts EditorOptions) (EditorOutcome, error) {
	model := newEditorModel(opts)

	if f, ok := opts.Output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.resize(width, height)
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(opts.Output), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return EditorOutcome{}, fmt.Errorf("editor failed: %w", err)
	}

	em, ok := final.(editorModel)
	if !ok {
		return EditorOutcome{}, fmt.Errorf("editor returned unexpected model %T", final)
	}

	return em.outcome, nil
}

// editorModel is the Bubble Tea model for the editing surface.
type editorModel struct {
	opts     EditorOptions
	textarea textarea.Model
	status   string
	failed   bool
	outcome  EditorOutcome
	quitting bool
}

func newEditorModel(opts EditorOptions) editorModel {
	ta := textarea.New()
	ta.SetValue(strings.Join(opts.Lines, "\n"))
	ta.SetWidth(defaultEditorWidth)
	ta.SetHeight(defaultEditorHeight)
	ta.CharLimit = 0
	ta.Focus()

	return editorModel{
		opts:     opts,
		textarea: ta,
		status:   "editing literal content",
	}
}

func (em editorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (em editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		em.resize(msg.Width, msg.Height)

		return em, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlS:
			em.synchronize()
			return em, nil

		case tea.KeyCtrlQ:
			em.save()
			em.quitting = true

			return em, tea.Quit

		case tea.KeyEsc:
			em.cancel()
			em.quitting = true

			return em, tea.Quit

		default:
		}
	}

	var cmd tea.Cmd
	em.textarea, cmd = em.textarea.Update(msg)

	return em, cmd
}

func (em editorModel) View() string {
	if em.quitting {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf(" %s (%s) ", em.opts.Origin, quoteLabel(em.opts.Quote)))

	status := statusStyle.Render(em.status)
	if em.failed {
		status = errorStyle.Render(em.status)
	}

	help := helpStyle.Render("ctrl+s: sync | ctrl+q: save & close | esc: cancel")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n", title, em.textarea.View(), status, help)
}

func (em *editorModel) resize(width, height int) {
	if width > 0 {
		em.textarea.SetWidth(width)
	}

	if height > chromeHeight {
		em.textarea.SetHeight(height - chromeHeight)
	}
}

// pushSurface copies the textarea buffer into the engine's editing surface
// so the next synchronize sees the user's edits.
func (em *editorModel) pushSurface() bool {
	lines := strings.Split(em.textarea.Value(), "\n")

	if err := em.opts.Surfaces.SetLines(em.opts.Surface, lines); err != nil {
		em.status = err.Error()
		em.failed = true

		return false
	}

	return true
}

func (em *editorModel) synchronize() {
	if !em.pushSurface() {
		return
	}

	res := em.opts.Engine.Synchronize(em.opts.Surface)
	em.failed = !res.Success
	em.status = res.Message

	if res.Success && res.Data.Changed {
		em.outcome.Changed = true
	}
}

func (em *editorModel) save() {
	if !em.pushSurface() {
		return
	}

	res := em.opts.Engine.Save(em.opts.Surface)
	em.outcome.Saved = res.Success
	em.outcome.Message = res.Message

	if res.Success && res.Data.Changed {
		em.outcome.Changed = true
	}
}

func (em *editorModel) cancel() {
	res := em.opts.Engine.Cancel(em.opts.Surface)
	em.outcome.Saved = false
	em.outcome.Message = res.Message
}
