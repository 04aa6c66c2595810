package tui

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownCache renders Markdown with glamour, reusing the renderer while the
// style and width stay the same.
type markdownCache struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	rendered map[string]string
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{rendered: make(map[string]string)}
}

func (c *markdownCache) render(md, style string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if c.renderer == nil || c.style != style || c.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Printf("tui: markdown renderer: %v", err)
			return md
		}
		c.renderer = r
		c.style = style
		c.width = width
		c.rendered = make(map[string]string)
	}
	if out, ok := c.rendered[md]; ok {
		return out
	}
	out, err := c.renderer.Render(md)
	if err != nil {
		log.Printf("tui: markdown render: %v", err)
		return md
	}
	out = strings.Trim(out, "\n")
	c.rendered[md] = out
	return out
}
