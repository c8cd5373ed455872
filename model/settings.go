package model

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aivibe/vibe-tui/client"
	"github.com/aivibe/vibe-tui/msg"
	"github.com/aivibe/vibe-tui/style"
)

// Panel rows, top to bottom.
const (
	rowPersonality = iota
	rowProvider
	rowMemory
	rowApply
	rowCount
)

// SettingsModel edits a draft selection and submits it with Apply.
//
// Keys while focused:
//   - Up/Down (k/j): move between rows
//   - Left/Right (h/l): cycle the personality or provider option
//   - Space: toggle memory
//   - Enter: submit the whole draft
type SettingsModel struct {
	personalities []string
	providers     []string
	active        client.Selection // what the backend reports
	draft         client.Selection
	cursor        int
	focused       bool
	width         int
}

// NewSettings seeds the draft from s.Current.
func NewSettings(s client.Settings) SettingsModel {
	m := SettingsModel{draft: s.Current}
	m.Sync(s)
	return m
}

// Sync refreshes option lists and active markers after the backend state
// changes. The draft is left as the user edited it.
func (m *SettingsModel) Sync(s client.Settings) {
	m.personalities = append([]string(nil), s.Personalities...)
	m.providers = append([]string(nil), s.Providers...)
	m.active = s.Current
}

// Draft returns the selection that Apply would submit.
func (m SettingsModel) Draft() client.Selection { return m.draft }

func (m *SettingsModel) Focus() { m.focused = true }
func (m *SettingsModel) Blur() { m.focused = false }
func (m SettingsModel) Focused() bool { return m.focused }
func (m *SettingsModel) SetWidth(w int) { m.width = w }

// Update handles keys while the panel is focused. Submission returns a
// command producing msg.ApplySettings with every draft field set.
func (m SettingsModel) Update(tmsg tea.Msg) (SettingsModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	k, ok := tmsg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor + rowCount - 1) % rowCount
	case "down", "j":
		m.cursor = (m.cursor + 1) % rowCount
	case "left", "h":
		m.cycle(-1)
	case "right", "l":
		m.cycle(+1)
	case " ", "space":
		if m.cursor == rowMemory {
			m.draft.Memory = !m.draft.Memory
		}
	case "enter":
		update := client.FullUpdate(m.draft)
		return m, func() tea.Msg { return msg.ApplySettings{Update: update} }
	}
	return m, nil
}

func (m *SettingsModel) cycle(delta int) {
	switch m.cursor {
	case rowPersonality:
		m.draft.Personality = step(m.personalities, m.draft.Personality, delta)
	case rowProvider:
		m.draft.Provider = step(m.providers, m.draft.Provider, delta)
	case rowMemory:
		m.draft.Memory = !m.draft.Memory
	}
}

// step moves cur by delta within options, wrapping at both ends. A value
// not in options moves to the first option.
func step(options []string, cur string, delta int) string {
	if len(options) == 0 {
		return cur
	}
	for i, o := range options {
		if o == cur {
			return options[(i+delta+len(options))%len(options)]
		}
	}
	return options[0]
}

func (m SettingsModel) View() string {
	var sb strings.Builder
	sb.WriteString(style.Title.Render("Settings") + "\n\n")
	sb.WriteString(m.renderRow(rowPersonality, "Personality", m.draft.Personality, m.draft.Personality == m.active.Personality) + "\n")
	sb.WriteString(m.renderRow(rowProvider, "Provider", m.draft.Provider, m.draft.Provider == m.active.Provider) + "\n")

	check := "[ ]"
	if m.draft.Memory {
		check = "[x]"
	}
	sb.WriteString(m.renderRow(rowMemory, "Memory", check, m.draft.Memory == m.active.Memory) + "\n\n")

	btn := style.ButtonIdle
	if m.focused && m.cursor == rowApply {
		btn = style.ButtonFocused
	}
	sb.WriteString(btn.Render("Apply"))

	box := style.PanelBorder
	if m.focused {
		box = style.PanelFocused
	}
	if m.width > 0 {
		box = box.Width(m.width - box.GetHorizontalBorderSize())
	}
	return box.Render(sb.String())
}

func (m SettingsModel) renderRow(row int, label, value string, isActive bool) string {
	cursor := "  "
	if m.focused && m.cursor == row {
		cursor = style.FieldCursor.Render("> ")
	}
	if value == "" {
		value = "-"
	}
	v := style.FieldValue.Render(value)
	if row != rowMemory && m.focused && m.cursor == row {
		v = style.Faint.Render("‹ ") + v + style.Faint.Render(" ›")
	}
	marker := ""
	if isActive {
		marker = " " + style.ActiveMarker.Render("●")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cursor, style.FieldLabel.Render(label), v, marker)
}
