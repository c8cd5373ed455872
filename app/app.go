package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/aivibe/vibe-tui/client"
	"github.com/aivibe/vibe-tui/config"
	"github.com/aivibe/vibe-tui/markdown"
	"github.com/aivibe/vibe-tui/model"
	"github.com/aivibe/vibe-tui/msg"
	"github.com/aivibe/vibe-tui/style"
)

// AppName is the window title before settings are known.
const AppName = "AI Vibe Chat"

// Fallback messages when an error carries no text of its own.
const (
	fallbackLoad  = "Failed to load settings"
	fallbackChat  = "Request failed"
	fallbackApply = "Failed to save settings"
)

type focusArea int

const (
	focusComposer focusArea = iota
	focusSettings
)

// Options configures optional collaborators of the Model.
type Options struct {
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
	// Watcher, when set, live-reloads the theme from the config file.
	Watcher *config.Watcher
	// AutoTheme is the theme used when the config says "auto".
	AutoTheme string
	NoColor   bool
	// Copy writes text to the system clipboard. Defaults to atotto/clipboard.
	Copy func(string) error
}

// Model is the application controller. It owns the settings and the
// transcript; Update is the only place either changes.
type Model struct {
	client  *client.Client
	log     zerolog.Logger
	watcher *config.Watcher
	copy    func(string) error

	state    State
	err      string
	settings *client.Settings

	banner   model.BannerModel
	status   model.StatusModel
	panel    model.SettingsModel
	hasPanel bool
	chat     model.ChatModel
	composer model.ComposerModel
	activity model.ActivityModel
	toasts   model.ToastsModel
	help     help.Model
	keys     KeyMap

	focus       focusArea
	showHelp    bool
	confirmQuit bool
	ticking     bool
	autoTheme   string
	noColor     bool
	width       int
	height      int
}

func New(c *client.Client, opts Options) Model {
	cp := opts.Copy
	if cp == nil {
		cp = clipboard.WriteAll
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	auto := opts.AutoTheme
	if auto == "" {
		auto = "dark"
	}
	baseURL := client.DefaultBaseURL
	if c != nil {
		baseURL = c.BaseURL
	}
	m := Model{
		client:    c,
		banner:    model.NewBanner(AppName),
		status:    model.NewStatus(baseURL),
		log:       log,
		watcher:   opts.Watcher,
		copy:      cp,
		state:     StateLoading,
		chat:      model.NewChat(80, 10),
		composer:  model.NewComposer(),
		activity:  model.NewActivity(),
		toasts:    model.NewToasts(),
		help:      help.New(),
		keys:      DefaultKeyMap(),
		autoTheme: auto,
		noColor:   opts.NoColor,
		width:     80,
		height:    24,
	}
	m.layout()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadSettings(), m.activity.Tick(), tea.WindowSize()}
	if m.watcher != nil {
		cmds = append(cmds, watchConfig(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Title is the header text derived from the active selection.
func (m Model) Title() string {
	if m.settings == nil {
		return AppName
	}
	return fmt.Sprintf("%s — %s via %s", AppName, m.settings.Current.Personality, m.settings.Current.Provider)
}

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(rawMsg)
	m.layout()
	return m, cmd
}

func (m Model) update(rawMsg tea.Msg) (Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(v)
	case tea.MouseMsg:
		if m.interactive() {
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(v)
			return m, cmd
		}
		return m, nil
	case spinner.TickMsg:
		if m.state != StateLoading && m.activity.Pending() == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(v)
		return m, cmd
	case msg.SettingsLoaded:
		return m.handleSettingsLoaded(v)
	case msg.ApplySettings:
		m.log.Info().Interface("update", v.Update).Msg("applying settings")
		return m, m.applySettings(v.Update)
	case msg.SettingsApplied:
		return m.handleSettingsApplied(v)
	case msg.ChatReply:
		return m.handleChatReply(v)
	case msg.ClipboardResult:
		if v.Err != nil {
			m.log.Warn().Err(v.Err).Msg("clipboard write failed")
			return m, m.notify("Copy failed: "+v.Err.Error(), model.ToastError)
		}
		return m, m.notify("Copied reply", model.ToastInfo)
	case msg.ConfigChanged:
		return m.handleConfigChanged(v)
	case msg.TickMsg:
		m.toasts.Tick()
		if m.toasts.Len() == 0 {
			m.ticking = false
			return m, nil
		}
		return m, model.TickCmd()
	}
	return m, nil
}

func (m Model) handleSettingsLoaded(v msg.SettingsLoaded) (Model, tea.Cmd) {
	if v.Err != nil {
		m.state = StateError
		m.err = client.ErrorMessage(v.Err, fallbackLoad)
		m.log.Error().Err(v.Err).Str("state", m.state.String()).Msg("load settings failed")
		return m, nil
	}
	m.state = StateReady
	m.err = ""
	m.setSettings(v.Settings)
	m.log.Info().Str("state", m.state.String()).Bool("empty", v.Settings == nil).Msg("settings loaded")
	return m, nil
}

func (m Model) handleSettingsApplied(v msg.SettingsApplied) (Model, tea.Cmd) {
	if v.Err != nil {
		m.state = StateError
		m.err = client.ErrorMessage(v.Err, fallbackApply)
		m.log.Error().Err(v.Err).Str("state", m.state.String()).Msg("apply settings failed")
		return m, nil
	}
	m.state = StateReady
	m.err = ""
	m.setSettings(v.Settings)
	m.log.Info().Str("state", m.state.String()).Msg("settings applied")
	return m, m.notify("Settings applied", model.ToastInfo)
}

// setSettings replaces the held settings wholesale. An existing panel keeps
// its draft and only picks up the new options and active values.
func (m *Model) setSettings(s *client.Settings) {
	m.settings = s
	m.banner.SetTitle(m.Title())
	m.status.SetSettings(s)
	if s == nil {
		m.hasPanel = false
		m.focusComposer()
		return
	}
	if m.hasPanel {
		m.panel.Sync(*s)
		return
	}
	m.panel = model.NewSettings(*s)
	m.hasPanel = true
}

func (m Model) handleChatReply(v msg.ChatReply) (Model, tea.Cmd) {
	m.activity.End()
	if v.Err != nil {
		m.log.Warn().Err(v.Err).Msg("chat request failed")
		m.chat.AddBotMessage("Error: " + client.ErrorMessage(v.Err, fallbackChat))
		return m, nil
	}
	m.chat.AddBotMessage(v.Reply)
	return m, nil
}

func (m Model) handleConfigChanged(v msg.ConfigChanged) (Model, tea.Cmd) {
	if errors.Is(v.Err, config.ErrWatcherClosed) {
		return m, nil
	}
	if v.Err != nil {
		m.log.Warn().Err(v.Err).Msg("config reload failed")
		return m, tea.Batch(m.notify("Config not reloaded: "+v.Err.Error(), model.ToastWarning), watchConfig(m.watcher))
	}
	name := v.Theme
	if name == config.ThemeAuto {
		name = m.autoTheme
	}
	if name != style.CurrentThemeName && style.SetTheme(name) {
		m.composer.Restyle()
		m.chat.Restyle()
		m.activity.Restyle()
		m.log.Info().Str("theme", name).Msg("theme reloaded")
	}
	return m, watchConfig(m.watcher)
}

// interactive reports whether the chat and settings widgets are on screen.
func (m Model) interactive() bool {
	return m.settings != nil && (m.state == StateReady || m.state == StateError)
}

func (m Model) handleKey(k tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmQuit {
		if key.Matches(k, m.keys.Cancel) {
			return m, tea.Quit
		}
		m.confirmQuit = false
		return m, nil
	}
	if !m.interactive() {
		if key.Matches(k, m.keys.Cancel) || key.Matches(k, m.keys.QuitEOF) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.showHelp {
		if key.Matches(k, m.keys.Help) || key.Matches(k, m.keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Cancel):
		if m.composer.Value() == "" {
			m.confirmQuit = true
			return m, nil
		}
		m.composer.SetValue("")
		return m, nil
	case key.Matches(k, m.keys.QuitEOF):
		if m.composer.Value() == "" {
			return m, tea.Quit
		}
	case key.Matches(k, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(k, m.keys.FocusNext):
		if m.focus == focusComposer && m.hasPanel {
			return m, m.focusSettings()
		}
		return m, m.focusComposer()
	case key.Matches(k, m.keys.Escape):
		return m, m.focusComposer()
	case key.Matches(k, m.keys.CopyReply):
		return m, m.copyLastReply()
	case key.Matches(k, m.keys.PageUp), key.Matches(k, m.keys.PageDown):
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(k)
		return m, cmd
	}

	if m.focus == focusSettings {
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(k)
		return m, cmd
	}
	if key.Matches(k, m.keys.Submit) {
		text, ok := m.composer.Submit()
		if !ok {
			return m, nil
		}
		idle := m.activity.Pending() == 0
		var cmd tea.Cmd
		m, cmd = m.sendMessage(text)
		if idle && cmd != nil {
			cmd = tea.Batch(cmd, m.activity.Tick())
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(k)
	return m, cmd
}

func (m *Model) focusSettings() tea.Cmd {
	m.focus = focusSettings
	m.composer.Blur()
	m.panel.Focus()
	return nil
}

func (m *Model) focusComposer() tea.Cmd {
	m.focus = focusComposer
	m.panel.Blur()
	return m.composer.Focus()
}

// sendMessage appends the user entry now and returns the command that
// posts it. Replies append in the order they arrive.
func (m Model) sendMessage(text string) (Model, tea.Cmd) {
	if strings.TrimSpace(text) == "" {
		return m, nil
	}
	m.chat.AddUserMessage(text)
	m.activity.Begin()
	m.log.Debug().Int("pending", m.activity.Pending()).Msg("chat sent")
	c := m.client
	return m, func() tea.Msg {
		resp, err := c.Chat(context.Background(), text)
		if err != nil {
			return msg.ChatReply{Text: text, Err: err}
		}
		return msg.ChatReply{Text: text, Reply: resp.Reply}
	}
}

func (m Model) loadSettings() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		s, err := c.GetSettings(context.Background())
		return msg.SettingsLoaded{Settings: s, Err: err}
	}
}

// applySettings posts the update and, on success, re-reads the full
// settings so the held value always mirrors the backend.
func (m Model) applySettings(update client.SettingsUpdate) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := c.UpdateSettings(ctx, update); err != nil {
			return msg.SettingsApplied{Err: err}
		}
		s, err := c.GetSettings(ctx)
		if err != nil {
			return msg.SettingsApplied{Err: err}
		}
		return msg.SettingsApplied{Settings: s}
	}
}

func (m Model) copyLastReply() tea.Cmd {
	text, ok := m.chat.LastBotText()
	if !ok {
		return func() tea.Msg { return msg.ClipboardResult{Err: errors.New("no reply yet")} }
	}
	cp := m.copy
	return func() tea.Msg {
		return msg.ClipboardResult{Err: cp(text)}
	}
}

func watchConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, err := w.Next()
		return msg.ConfigChanged{Theme: cfg.Theme, Err: err}
	}
}

// notify queues a toast and starts the expiry tick if it is not running.
func (m *Model) notify(text string, level model.ToastLevel) tea.Cmd {
	m.toasts.Add(text, level)
	if m.ticking {
		return nil
	}
	m.ticking = true
	return model.TickCmd()
}

// layout sizes the widgets to the terminal.
func (m *Model) layout() {
	m.composer.SetWidth(m.width)
	m.banner.SetWidth(m.width)
	m.help.Width = m.width - lipgloss.Width(m.status.View()) - 2
	if m.hasPanel {
		m.panel.SetWidth(m.width)
	}
	m.chat.SetSize(m.width, m.chatHeight())
}

// chatHeight calculates available lines for the transcript viewport.
func (m Model) chatHeight() int {
	reserved := 1 // header
	if m.err != "" {
		reserved += countLines(m.renderError())
	}
	if m.hasPanel {
		reserved += countLines(m.panel.View())
	}
	reserved += 1 // activity line
	reserved += m.composer.Height()
	reserved += 1 // footer
	reserved += m.toasts.Len()

	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	return h
}

// countLines returns the number of lines in a rendered string.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func (m Model) View() string {
	switch {
	case m.state == StateLoading:
		return m.activity.LoadingView()
	case m.state == StateError && m.settings == nil:
		return m.renderError() + "\n" + style.Hint.Render("ctrl+c quit")
	case m.settings == nil:
		return style.Faint.Render("No settings available.") + "\n" + style.Hint.Render("ctrl+c quit")
	}

	if m.showHelp {
		return m.banner.View() + "\n" + markdown.Render(helpMarkdown(m.keys), markdown.StyleFor(style.IsDark(), !m.noColor), m.width)
	}

	sections := []string{m.banner.View()}
	if m.err != "" {
		sections = append(sections, m.renderError())
	}
	if m.hasPanel {
		sections = append(sections, m.panel.View())
	}
	sections = append(sections, m.chat.View(), m.activity.View(), m.composer.View())
	if t := m.toasts.View(m.width); t != "" {
		sections = append(sections, t)
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

// renderError shows the error alone when nothing else is held, and as a
// boxed overlay above the settings and transcript otherwise.
func (m Model) renderError() string {
	if m.settings == nil {
		return style.ErrorText.Render(m.err)
	}
	box := style.ErrorBox
	if m.width > 2 {
		box = box.Width(m.width - box.GetHorizontalBorderSize())
	}
	return box.Render(m.err)
}

func (m Model) renderFooter() string {
	if m.confirmQuit {
		return style.ErrorText.Render("Press Ctrl+C again to quit, or any key to cancel.")
	}
	return m.status.View() + "  " + m.help.View(m.keys)
}

func helpMarkdown(k KeyMap) string {
	var sb strings.Builder
	sb.WriteString("# Keys\n\n| Key | Action |\n|---|---|\n")
	for _, group := range k.FullHelp() {
		for _, b := range group {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	sb.WriteString("\n## Settings panel\n\n")
	sb.WriteString("- `↑` `↓` pick a row\n")
	sb.WriteString("- `←` `→` change personality or provider\n")
	sb.WriteString("- `space` toggle memory\n")
	sb.WriteString("- `enter` apply\n\n")
	sb.WriteString("Press `f1` or `esc` to close.\n")
	return sb.String()
}
