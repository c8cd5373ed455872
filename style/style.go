package style

import "github.com/charmbracelet/lipgloss"

// Colors, initialized to the dark theme. Updated via SetTheme.
var (
	Primary   lipgloss.TerminalColor = darkTheme.Primary
	Secondary lipgloss.TerminalColor = darkTheme.Secondary
	Success   lipgloss.TerminalColor = darkTheme.Success
	Warning   lipgloss.TerminalColor = darkTheme.Warning
	Error     lipgloss.TerminalColor = darkTheme.Error
	Muted     lipgloss.TerminalColor = darkTheme.Muted
	Dim       lipgloss.TerminalColor = darkTheme.Dim
	Border    lipgloss.TerminalColor = darkTheme.Border

	MsgBorderUser lipgloss.TerminalColor = darkTheme.MsgBorderUser
	MsgBorderBot  lipgloss.TerminalColor = darkTheme.MsgBorderBot
)

// Styles. Rebuilt by SetTheme.
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style
	ErrorBox  lipgloss.Style

	// Header
	Title lipgloss.Style

	// Prompt
	PromptChar lipgloss.Style

	// Chat
	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	UserMsg   lipgloss.Style
	BotMsg    lipgloss.Style

	// Settings panel
	PanelBorder   lipgloss.Style
	PanelFocused  lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldValue    lipgloss.Style
	FieldCursor   lipgloss.Style
	ActiveMarker  lipgloss.Style
	ButtonIdle    lipgloss.Style
	ButtonFocused lipgloss.Style

	// Loading
	SpinnerStyle lipgloss.Style

	// Footer
	StatusBar lipgloss.Style
	Hint      lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	MsgBorderUser = t.MsgBorderUser
	MsgBorderBot = t.MsgBorderBot
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)
	ErrorBox = lipgloss.NewStyle().
		Foreground(Error).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Error).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	PromptChar = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	UserLabel = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	BotLabel = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	UserMsg = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(MsgBorderUser).
		PaddingLeft(1)
	BotMsg = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(MsgBorderBot).
		PaddingLeft(1)

	PanelBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	PanelFocused = PanelBorder.BorderForeground(Primary)
	FieldLabel = lipgloss.NewStyle().Foreground(Muted).Width(13)
	FieldValue = lipgloss.NewStyle().Bold(true)
	FieldCursor = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	ActiveMarker = lipgloss.NewStyle().Foreground(Success)
	ButtonIdle = lipgloss.NewStyle().
		Foreground(Muted).
		Border(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Padding(0, 2)
	ButtonFocused = ButtonIdle.
		Foreground(Primary).
		BorderForeground(Primary).
		Bold(true)

	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	Hint = lipgloss.NewStyle().Foreground(Dim)
}
