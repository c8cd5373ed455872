package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aivibe/vibe-tui/style"
)

// Role identifies who authored a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is a single transcript entry. Entries are never edited once added.
type Message struct {
	Role Role
	Text string
}

const emptyTranscript = "No messages yet. Type below to get started."

// ChatModel is the scrollable transcript. It follows the newest entry.
type ChatModel struct {
	vp       viewport.Model
	messages []Message
	width    int
	height   int
}

// NewChat constructs a ChatModel sized to width x height.
func NewChat(width, height int) ChatModel {
	m := ChatModel{
		vp:     viewport.New(width, height),
		width:  width,
		height: height,
	}
	m.refresh()
	return m
}

// AddUserMessage appends a user entry and scrolls to the bottom.
func (m *ChatModel) AddUserMessage(text string) {
	m.add(Message{Role: RoleUser, Text: text})
}

// AddBotMessage appends a bot entry and scrolls to the bottom.
func (m *ChatModel) AddBotMessage(text string) {
	m.add(Message{Role: RoleBot, Text: text})
}

func (m *ChatModel) add(msg Message) {
	m.messages = append(m.messages, msg)
	m.refresh()
}

// Messages returns a copy of the transcript in insertion order.
func (m ChatModel) Messages() []Message {
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len returns the number of entries.
func (m ChatModel) Len() int { return len(m.messages) }

// LastBotText returns the text of the newest bot entry.
func (m ChatModel) LastBotText() (string, bool) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == RoleBot {
			return m.messages[i].Text, true
		}
	}
	return "", false
}

// SetSize resizes the viewport.
func (m *ChatModel) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.vp.Width = width
	m.vp.Height = height
	m.refresh()
}

// Restyle re-renders entries after a theme change.
func (m *ChatModel) Restyle() {
	m.refresh()
}

// Update forwards scroll keys and mouse wheel events to the viewport.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m ChatModel) View() string {
	return m.vp.View()
}

func (m *ChatModel) refresh() {
	m.vp.SetContent(m.renderAll())
	m.vp.GotoBottom()
}

func (m *ChatModel) renderAll() string {
	if len(m.messages) == 0 {
		return style.Faint.Render(emptyTranscript)
	}
	parts := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n\n")
}

// renderMessage prints the label and the text verbatim. Long lines are
// soft-wrapped to the viewport width; nothing is interpreted as markup.
func (m *ChatModel) renderMessage(msg Message) string {
	var label string
	box := style.BotMsg
	if msg.Role == RoleUser {
		label = style.UserLabel.Render("You:")
		box = style.UserMsg
	} else {
		label = style.BotLabel.Render("Bot:")
	}
	body := msg.Text
	if w := m.width - box.GetHorizontalFrameSize(); w > 0 {
		body = lipgloss.NewStyle().Width(w).Render(body)
	}
	return box.Render(label + "\n" + body)
}
