package model

import (
	"net/url"
	"strings"

	"github.com/aivibe/vibe-tui/client"
	"github.com/aivibe/vibe-tui/style"
)

// StatusModel renders the footer's left segment:
//
//	127.0.0.1:5000 · memory on
//
// It shows which backend the client talks to and the backend's memory flag.
type StatusModel struct {
	backend string
	memory  *bool
}

// NewStatus shows the host of baseURL, or the raw value if it does not parse.
func NewStatus(baseURL string) StatusModel {
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return StatusModel{backend: host}
}

// SetSettings updates the memory indicator. Nil hides it.
func (m *StatusModel) SetSettings(s *client.Settings) {
	if s == nil {
		m.memory = nil
		return
	}
	mem := s.Current.Memory
	m.memory = &mem
}

func (m StatusModel) View() string {
	parts := []string{m.backend}
	if m.memory != nil {
		if *m.memory {
			parts = append(parts, "memory on")
		} else {
			parts = append(parts, "memory off")
		}
	}
	return style.StatusBar.Render(strings.Join(parts, " · "))
}
