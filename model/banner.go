package model

import (
	"github.com/mattn/go-runewidth"

	"github.com/aivibe/vibe-tui/style"
)

// BannerModel renders the one-line header:
//
//	AI Vibe Chat — pirate via openai
//
// The text is set by the controller; it is truncated to the terminal width.
type BannerModel struct {
	title string
	width int
}

func NewBanner(title string) BannerModel {
	return BannerModel{title: title}
}

func (m *BannerModel) SetTitle(title string) { m.title = title }

func (m *BannerModel) SetWidth(w int) { m.width = w }

// Title returns the untruncated header text.
func (m BannerModel) Title() string { return m.title }

func (m BannerModel) View() string {
	title := m.title
	if m.width > 0 && runewidth.StringWidth(title) > m.width {
		title = runewidth.Truncate(title, m.width, "…")
	}
	return style.Title.Render(title)
}
