package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivibe/vibe-tui/client"
	"github.com/aivibe/vibe-tui/model"
	"github.com/aivibe/vibe-tui/msg"
	"github.com/aivibe/vibe-tui/style"
)

// fakeBackend serves /api/settings and /api/chat from memory.
type fakeBackend struct {
	mu        sync.Mutex
	settings  client.Settings
	nullBody  bool
	failLoad  int
	failApply string
	failChat  string
	chats     []string
	updates   []map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{settings: client.Settings{
		Personalities: []string{"friendly", "pirate"},
		Providers:     []string{"echo", "openai"},
		Current:       client.Selection{Personality: "friendly", Provider: "echo"},
	}}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/settings":
		if b.failLoad != 0 {
			w.WriteHeader(b.failLoad)
			_, _ = w.Write([]byte(`{"error":"db down"}`))
			return
		}
		if b.nullBody {
			_, _ = w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode(b.settings)
	case r.Method == http.MethodPost && r.URL.Path == "/api/settings":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.updates = append(b.updates, body)
		if b.failApply != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(client.ErrorResponse{Error: b.failApply})
			return
		}
		if v, ok := body["personality"].(string); ok {
			b.settings.Current.Personality = v
		}
		if v, ok := body["provider"].(string); ok {
			b.settings.Current.Provider = v
		}
		if v, ok := body["memory"].(bool); ok {
			b.settings.Current.Memory = v
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "current": b.settings.Current})
	case r.Method == http.MethodPost && r.URL.Path == "/api/chat":
		var req client.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.chats = append(b.chats, req.Text)
		if b.failChat != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(client.ErrorResponse{Error: b.failChat})
			return
		}
		_ = json.NewEncoder(w).Encode(client.ChatResponse{Reply: "re: " + req.Text})
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) chatTexts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.chats...)
}

func (b *fakeBackend) updateBodies() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.updates...)
}

func newTestModel(t *testing.T, b *fakeBackend) Model {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	m := New(client.New(srv.URL+"/api"), Options{Copy: func(string) error { return nil }})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func step(t *testing.T, m Model, in tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	out, cmd := m.Update(in)
	nm, ok := out.(Model)
	require.True(t, ok)
	return nm, cmd
}

// loaded runs the startup fetch to completion.
func loaded(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = step(t, m, m.loadSettings()())
	return m
}

func TestTitle_DefaultAndLoaded(t *testing.T) {
	b := newFakeBackend()
	m := newTestModel(t, b)
	assert.Equal(t, StateLoading, m.state)
	assert.Equal(t, "AI Vibe Chat", m.Title())
	assert.Contains(t, m.View(), "Loading…")

	m = loaded(t, m)
	assert.Equal(t, StateReady, m.state)
	assert.Equal(t, "AI Vibe Chat — friendly via echo", m.Title())
	assert.Contains(t, m.View(), "AI Vibe Chat — friendly via echo")
}

func TestLoad_FailureShowsOnlyError(t *testing.T) {
	b := newFakeBackend()
	b.failLoad = http.StatusInternalServerError
	m := loaded(t, newTestModel(t, b))

	assert.Equal(t, StateError, m.state)
	assert.Equal(t, "db down", m.err)
	v := m.View()
	assert.Contains(t, v, "db down")
	assert.NotContains(t, v, "Apply")
	assert.Equal(t, "AI Vibe Chat", m.Title())
}

func TestLoad_ErrorFallbacks(t *testing.T) {
	m := newTestModel(t, newFakeBackend())
	m, _ = step(t, m, msg.SettingsLoaded{Err: &client.APIError{Status: 502}})
	assert.Equal(t, "request failed with status code 502", m.err)

	m = newTestModel(t, newFakeBackend())
	m, _ = step(t, m, msg.SettingsLoaded{Err: errors.New("")})
	assert.Equal(t, "Failed to load settings", m.err)
}

func TestLoad_NullBody(t *testing.T) {
	b := newFakeBackend()
	b.nullBody = true
	m := loaded(t, newTestModel(t, b))

	assert.Equal(t, StateReady, m.state)
	assert.Nil(t, m.settings)
	assert.Contains(t, m.View(), "No settings available.")
}

func TestSendMessage_WhitespaceIsNoop(t *testing.T) {
	b := newFakeBackend()
	m := loaded(t, newTestModel(t, b))

	for _, text := range []string{"", "   ", "\n\t"} {
		var cmd tea.Cmd
		m, cmd = m.sendMessage(text)
		assert.Nil(t, cmd)
	}
	assert.Zero(t, m.chat.Len())
	assert.Zero(t, len(b.chatTexts()))
}

func TestSendMessage_UserEntryPrecedesRequest(t *testing.T) {
	b := newFakeBackend()
	m := loaded(t, newTestModel(t, b))

	m, cmd := m.sendMessage("  hello  ")
	require.NotNil(t, cmd)
	assert.Equal(t, []model.Message{{Role: model.RoleUser, Text: "  hello  "}}, m.chat.Messages())
	assert.Zero(t, len(b.chatTexts()), "request issued before the command ran")
	assert.Equal(t, 1, m.activity.Pending())

	m, _ = step(t, m, cmd())
	assert.Equal(t, []string{"  hello  "}, b.chatTexts())
	assert.Equal(t, []model.Message{
		{Role: model.RoleUser, Text: "  hello  "},
		{Role: model.RoleBot, Text: "re:   hello  "},
	}, m.chat.Messages())
	assert.Zero(t, m.activity.Pending())
}

func TestSendMessage_FailureStaysInTranscript(t *testing.T) {
	b := newFakeBackend()
	b.failChat = "bad input"
	m := loaded(t, newTestModel(t, b))

	m, cmd := m.sendMessage("hi")
	m, _ = step(t, m, cmd())

	msgs := m.chat.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.Message{Role: model.RoleBot, Text: "Error: bad input"}, msgs[1])
	assert.Empty(t, m.err)
	assert.Equal(t, StateReady, m.state)
}

func TestSendMessage_TransportFailureFallback(t *testing.T) {
	m := loaded(t, newTestModel(t, newFakeBackend()))
	m, _ = m.sendMessage("hi")
	m, _ = step(t, m, msg.ChatReply{Text: "hi", Err: errors.New("")})

	text, ok := m.chat.LastBotText()
	require.True(t, ok)
	assert.Equal(t, "Error: Request failed", text)
}

func TestSendMessage_RepliesAppendInResolutionOrder(t *testing.T) {
	b := newFakeBackend()
	m := loaded(t, newTestModel(t, b))

	m, first := m.sendMessage("one")
	m, second := m.sendMessage("two")
	assert.Equal(t, 2, m.activity.Pending())

	m, _ = step(t, m, second())
	m, _ = step(t, m, first())

	var got []string
	for _, e := range m.chat.Messages() {
		got = append(got, string(e.Role)+":"+e.Text)
	}
	assert.Equal(t, []string{"user:one", "user:two", "bot:re: two", "bot:re: one"}, got)
}

func TestApplySettings_RefreshesHeldSettings(t *testing.T) {
	b := newFakeBackend()
	m := loaded(t, newTestModel(t, b))

	pirate := "pirate"
	m, cmd := step(t, m, msg.ApplySettings{Update: client.SettingsUpdate{Personality: &pirate}})
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	assert.Equal(t, StateReady, m.state)
	assert.Equal(t, "AI Vibe Chat — pirate via echo", m.Title())
	assert.Equal(t, 1, m.toasts.Len())
	updates := b.updateBodies()
	require.Len(t, updates, 1)
	assert.Equal(t, map[string]any{"personality": "pirate"}, updates[0])
}

func TestApplySettings_FailureKeepsSettingsAndTranscript(t *testing.T) {
	b := newFakeBackend()
	b.failApply = "unknown provider"
	m := loaded(t, newTestModel(t, b))
	m, cmd := m.sendMessage("hi")
	m, _ = step(t, m, cmd())

	m, cmd = step(t, m, msg.ApplySettings{Update: client.FullUpdate(client.Selection{Personality: "x", Provider: "y"})})
	m, _ = step(t, m, cmd())

	assert.Equal(t, StateError, m.state)
	assert.Equal(t, "unknown provider", m.err)
	require.NotNil(t, m.settings)
	assert.Equal(t, "friendly", m.settings.Current.Personality)
	assert.Equal(t, 2, m.chat.Len())

	v := m.View()
	assert.Contains(t, v, "unknown provider")
	assert.Contains(t, v, "AI Vibe Chat — friendly via echo")
	assert.Contains(t, v, "Apply")

	// A later successful apply clears the error.
	b.mu.Lock()
	b.failApply = ""
	b.mu.Unlock()
	m, cmd = step(t, m, msg.ApplySettings{Update: client.FullUpdate(client.Selection{Personality: "pirate", Provider: "openai"})})
	m, _ = step(t, m, cmd())
	assert.Equal(t, StateReady, m.state)
	assert.Empty(t, m.err)
	assert.Equal(t, "AI Vibe Chat — pirate via openai", m.Title())
}

func TestApplySettings_FallbackMessage(t *testing.T) {
	m := loaded(t, newTestModel(t, newFakeBackend()))
	m, _ = step(t, m, msg.SettingsApplied{Err: errors.New("")})
	assert.Equal(t, "Failed to save settings", m.err)
}

func TestPanelSubmit_SendsEveryField(t *testing.T) {
	b := newFakeBackend()
	m := loaded(t, newTestModel(t, b))

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusSettings, m.focus)
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, cmd = step(t, m, cmd())
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	updates := b.updateBodies()
	require.Len(t, updates, 1)
	assert.Equal(t, map[string]any{"personality": "friendly", "provider": "echo", "memory": false}, updates[0])
	assert.Equal(t, StateReady, m.state)
}

func TestKeys_EnterSendsFromComposer(t *testing.T) {
	b := newFakeBackend()
	m := loaded(t, newTestModel(t, b))

	m.composer.SetValue("hey")
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Empty(t, m.composer.Value())
	assert.Equal(t, 1, m.chat.Len())

	m.composer.SetValue("   ")
	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "   ", m.composer.Value())
	assert.Equal(t, 1, m.chat.Len())
}

func TestKeys_ConfirmQuit(t *testing.T) {
	m := loaded(t, newTestModel(t, newFakeBackend()))

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.True(t, m.confirmQuit)
	assert.Contains(t, m.View(), "Press Ctrl+C again")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, m.confirmQuit)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	_, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestKeys_CopyReply(t *testing.T) {
	b := newFakeBackend()
	var copied string
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	m := New(client.New(srv.URL+"/api"), Options{Copy: func(s string) error { copied = s; return nil }})
	m = loaded(t, m)

	m, cmd := m.sendMessage("ping")
	m, _ = step(t, m, cmd())
	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	assert.Equal(t, "re: ping", copied)
	assert.Contains(t, m.toasts.View(100), "Copied reply")
}

func TestHelpOverlay(t *testing.T) {
	m := loaded(t, newTestModel(t, newFakeBackend()))
	m.noColor = true

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.showHelp)
	assert.True(t, strings.Contains(m.View(), "Settings panel"))

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestConfigChanged_AppliesTheme(t *testing.T) {
	m := loaded(t, newTestModel(t, newFakeBackend()))
	t.Cleanup(func() { style.SetTheme("dark") })

	m, cmd := step(t, m, msg.ConfigChanged{Theme: "light"})
	assert.Equal(t, "light", style.CurrentThemeName)
	assert.Nil(t, cmd, "no watcher to re-arm")

	m, _ = step(t, m, msg.ConfigChanged{Theme: "auto"})
	assert.Equal(t, "dark", style.CurrentThemeName)

	m, _ = step(t, m, msg.ConfigChanged{Err: errors.New("bad toml")})
	assert.Equal(t, 1, m.toasts.Len())
}
