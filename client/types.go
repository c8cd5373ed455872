package client

// Selection is the active configuration the backend is running with.
type Selection struct {
	Personality string `json:"personality"`
	Provider    string `json:"provider"`
	Memory      bool   `json:"memory"`
}

// Settings from GET /settings.
type Settings struct {
	Personalities []string  `json:"personalities"`
	Providers     []string  `json:"providers"`
	Current       Selection `json:"current"`
}

// SettingsUpdate for POST /settings. Nil fields are omitted from the body
// and leave the backend value unchanged.
type SettingsUpdate struct {
	Personality *string `json:"personality,omitempty"`
	Provider    *string `json:"provider,omitempty"`
	Memory      *bool   `json:"memory,omitempty"`
}

// FullUpdate builds an update that carries every field of sel.
func FullUpdate(sel Selection) SettingsUpdate {
	p, pr, mem := sel.Personality, sel.Provider, sel.Memory
	return SettingsUpdate{Personality: &p, Provider: &pr, Memory: &mem}
}

// IsEmpty reports whether the update would change nothing.
func (u SettingsUpdate) IsEmpty() bool {
	return u.Personality == nil && u.Provider == nil && u.Memory == nil
}

// UpdateSettingsResponse from POST /settings. Only the status matters to
// callers; the authoritative state is always re-read with GET /settings.
type UpdateSettingsResponse struct {
	OK      bool       `json:"ok"`
	Current *Selection `json:"current,omitempty"`
}

// ChatRequest for POST /chat.
type ChatRequest struct {
	Text string `json:"text"`
}

// ChatResponse from POST /chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
