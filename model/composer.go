package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aivibe/vibe-tui/style"
)

const composerRows = 3

// ComposerModel is the multi-line message box with history navigation.
//
// History navigation:
//   - Ctrl+P: walk backwards through sent messages
//   - Ctrl+N: walk forwards (towards the present)
//
// Enter is handled by the owner through Submit; Alt+Enter inserts a newline.
type ComposerModel struct {
	ta         textarea.Model
	history    []string
	historyIdx int // one past the last entry when not navigating
	draft      string
}

// NewComposer returns a focused composer.
func NewComposer() ComposerModel {
	ta := textarea.New()
	ta.Placeholder = "Type a message…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = style.PromptChar.Render("┃ ")
	ta.SetHeight(composerRows)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()
	return ComposerModel{ta: ta}
}

// Submit returns the literal text and clears the composer when the trimmed
// text is non-empty. Otherwise it returns false and leaves the text alone.
func (m *ComposerModel) Submit() (string, bool) {
	text := m.ta.Value()
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	m.history = append(m.history, text)
	m.historyIdx = len(m.history)
	m.draft = ""
	m.ta.Reset()
	return text, true
}

func (m *ComposerModel) Focus() tea.Cmd {
	m.ta.Prompt = style.PromptChar.Render("┃ ")
	return m.ta.Focus()
}

func (m *ComposerModel) Blur() {
	m.ta.Prompt = style.Hint.Render("┃ ")
	m.ta.Blur()
}

func (m ComposerModel) Focused() bool { return m.ta.Focused() }

// Value returns the raw text.
func (m ComposerModel) Value() string { return m.ta.Value() }

// SetValue replaces the text.
func (m *ComposerModel) SetValue(s string) { m.ta.SetValue(s) }

// SetWidth sizes the textarea to the available columns.
func (m *ComposerModel) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	m.ta.SetWidth(w)
}

// Height is the number of rows the composer occupies.
func (m ComposerModel) Height() int { return composerRows }

// Update intercepts history keys and delegates the rest to the textarea.
func (m ComposerModel) Update(msg tea.Msg) (ComposerModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+p":
			return m.navigateHistory(-1), nil
		case "ctrl+n":
			return m.navigateHistory(+1), nil
		}
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m ComposerModel) View() string {
	return m.ta.View()
}

// navigateHistory moves the history cursor by delta (-1 = older, +1 = newer).
// Leaving the present saves the unsent text so coming back restores it.
func (m ComposerModel) navigateHistory(delta int) ComposerModel {
	if len(m.history) == 0 {
		return m
	}
	if m.historyIdx == len(m.history) {
		m.draft = m.ta.Value()
	}
	next := m.historyIdx + delta
	switch {
	case next < 0:
		next = 0
	case next > len(m.history):
		next = len(m.history)
	}
	m.historyIdx = next
	if next == len(m.history) {
		m.ta.SetValue(m.draft)
	} else {
		m.ta.SetValue(m.history[next])
	}
	m.ta.CursorEnd()
	return m
}

// Restyle picks up the prompt color after a theme change.
func (m *ComposerModel) Restyle() {
	if m.ta.Focused() {
		m.ta.Prompt = style.PromptChar.Render("┃ ")
	} else {
		m.ta.Prompt = style.Hint.Render("┃ ")
	}
}
