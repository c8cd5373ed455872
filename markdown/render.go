// Package markdown renders the help overlay. Chat content never goes
// through here; transcript entries are shown verbatim.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type cacheKey struct {
	style string
	width int
}

var (
	mu        sync.Mutex
	renderers = map[cacheKey]*glamour.TermRenderer{}
)

// StyleFor picks a glamour standard style for the current theme.
func StyleFor(dark, color bool) string {
	switch {
	case !color:
		return "notty"
	case dark:
		return "dark"
	default:
		return "light"
	}
}

// Render converts md to styled terminal output wrapped at width.
// Falls back to the raw text if glamour fails.
func Render(md, styleName string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	if width < 20 {
		width = 20
	}
	r, err := renderer(cacheKey{styleName, width})
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour adds surrounding blank lines.
	return strings.Trim(out, "\n")
}

func renderer(k cacheKey) (*glamour.TermRenderer, error) {
	mu.Lock()
	defer mu.Unlock()
	if r, ok := renderers[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(k.style),
		glamour.WithWordWrap(k.width),
	)
	if err != nil {
		return nil, err
	}
	renderers[k] = r
	return r, nil
}
