package model

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestComposer_SubmitWhitespaceIsNoop(t *testing.T) {
	c := NewComposer()
	c.SetValue("   \n  ")

	text, ok := c.Submit()
	assert.False(t, ok)
	assert.Empty(t, text)
	assert.Equal(t, "   \n  ", c.Value())
}

func TestComposer_SubmitReturnsLiteralText(t *testing.T) {
	c := NewComposer()
	c.SetValue("  hello  ")

	text, ok := c.Submit()
	assert.True(t, ok)
	assert.Equal(t, "  hello  ", text)
	assert.Empty(t, c.Value())
}

func TestComposer_AltEnterInsertsNewline(t *testing.T) {
	c := NewComposer()
	c.SetValue("a")
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.Equal(t, "a\nb", c.Value())
}

func TestComposer_History(t *testing.T) {
	c := NewComposer()
	for _, s := range []string{"first", "second"} {
		c.SetValue(s)
		_, ok := c.Submit()
		assert.True(t, ok)
	}
	c.SetValue("unsent")

	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, "second", c.Value())
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, "first", c.Value())
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, "first", c.Value())
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, "unsent", c.Value())
}
