package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aivibe/vibe-tui/style"
)

// ActivityModel renders the spinner shown while settings load and while
// chat replies are outstanding.
type ActivityModel struct {
	sp      spinner.Model
	pending int
	since   time.Time // when pending last went from 0 to 1
	now     func() time.Time
}

// NewActivity constructs an ActivityModel with a Dot spinner.
func NewActivity() ActivityModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style.SpinnerStyle
	return ActivityModel{sp: sp, now: time.Now}
}

// Tick starts the spinner animation.
func (m ActivityModel) Tick() tea.Cmd {
	return m.sp.Tick
}

// Begin records an outstanding chat request.
func (m *ActivityModel) Begin() {
	if m.pending == 0 {
		m.since = m.clock()
	}
	m.pending++
}

// End records a resolved chat request.
func (m *ActivityModel) End() {
	if m.pending > 0 {
		m.pending--
	}
}

// Pending returns the number of outstanding chat requests.
func (m ActivityModel) Pending() int { return m.pending }

func (m ActivityModel) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// Restyle picks up the spinner color after a theme change.
func (m *ActivityModel) Restyle() {
	m.sp.Style = style.SpinnerStyle
}

// Update advances the spinner.
func (m ActivityModel) Update(teaMsg tea.Msg) (ActivityModel, tea.Cmd) {
	if t, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(t)
		return m, cmd
	}
	return m, nil
}

// LoadingView is the whole-screen placeholder before settings arrive.
func (m ActivityModel) LoadingView() string {
	return m.sp.View() + " " + style.Faint.Render("Loading…")
}

// View renders the pending counter, or nothing when idle.
func (m ActivityModel) View() string {
	if m.pending == 0 {
		return ""
	}
	noun := "reply"
	if m.pending > 1 {
		noun = "replies"
	}
	elapsed := formatElapsed(m.clock().Sub(m.since))
	return m.sp.View() + " " + style.Faint.Render(fmt.Sprintf("%d %s pending · %s", m.pending, noun, elapsed))
}

// formatElapsed renders a duration as a concise string.
// Examples: 3s, 1m 23s
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
