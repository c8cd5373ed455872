package model

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aivibe/vibe-tui/msg"
	"github.com/aivibe/vibe-tui/style"
)

// ToastLevel classifies toast severity.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarning
	ToastError
)

const (
	maxToasts    = 3
	toastTTL     = 4 * time.Second
	tickInterval = time.Second
)

type toast struct {
	text   string
	level  ToastLevel
	expiry time.Time
}

// ToastsModel is a short queue of notifications that expire on their own.
type ToastsModel struct {
	queue []toast
	now   func() time.Time
}

func NewToasts() ToastsModel {
	return ToastsModel{now: time.Now}
}

// Add enqueues a notification, dropping the oldest beyond maxToasts.
func (m *ToastsModel) Add(text string, level ToastLevel) {
	m.queue = append(m.queue, toast{text: text, level: level, expiry: m.clock().Add(toastTTL)})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
}

// Tick drops expired notifications. Call on every msg.TickMsg.
func (m *ToastsModel) Tick() {
	now := m.clock()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
}

// Len returns the number of visible notifications.
func (m ToastsModel) Len() int { return len(m.queue) }

func (m ToastsModel) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// TickCmd schedules the next msg.TickMsg.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return msg.TickMsg{} })
}

// View renders notifications right-aligned to width.
func (m ToastsModel) View(width int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		icon, color := toastIconColor(t.level)
		line := lipgloss.NewStyle().Foreground(color).Render(" " + icon + " " + t.text + " ")
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, line))
	}
	return strings.Join(lines, "\n")
}

func toastIconColor(level ToastLevel) (string, lipgloss.TerminalColor) {
	switch level {
	case ToastWarning:
		return "⚠", style.Warning
	case ToastError:
		return "✘", style.Error
	default:
		return "✓", style.Success
	}
}
