// Package msg defines the tea.Msg types dispatched within the vibechat TUI.
// It depends only on client for payload types; model and app import it.
package msg

import "github.com/aivibe/vibe-tui/client"

// -- Lifecycle --

// SettingsLoaded from the startup GET /settings.
type SettingsLoaded struct {
	Settings *client.Settings
	Err      error
}

// -- User intents --

// ApplySettings is emitted by the settings panel on submission.
type ApplySettings struct {
	Update client.SettingsUpdate
}

// -- HTTP responses --

// SettingsApplied from POST /settings followed by the refreshing GET.
type SettingsApplied struct {
	Settings *client.Settings
	Err      error
}

// ChatReply from POST /chat. Text is the message the reply answers.
type ChatReply struct {
	Text  string
	Reply string
	Err   error
}

// ClipboardResult after copying a reply.
type ClipboardResult struct {
	Err error
}

// ConfigChanged when the config file is rewritten on disk.
type ConfigChanged struct {
	Theme string
	Err   error
}

// -- UI events --

// TickMsg for periodic timer updates.
type TickMsg struct{}
