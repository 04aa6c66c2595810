package tui

import (
	"fmt"
	"strings"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

type viewRenderer func(m model, width int) string

// viewRenderers covers every nav.ViewID.
var viewRenderers = map[nav.ViewID]viewRenderer{
	nav.Home:       renderHome,
	nav.Repository: renderRepository,
	nav.Webinars:   renderWebinars,
	nav.Blog:       renderBlog,
	nav.Nemi:       renderNemi,
	nav.Studio:     renderStudio,
	nav.EduTools:   renderEduTools,
}

// renderBody draws the active view followed by the footer when the view
// shows one.
func renderBody(m model) string {
	view := m.nav.CurrentView()
	width := m.contentWidth()

	render, ok := viewRenderers[view]
	if !ok {
		return m.theme.err.Render(fmt.Sprintf("Vista sin renderizador: %s", view))
	}
	out := render(m, width)
	if nav.FooterVisible(view) {
		out = strings.TrimRight(out, "\n") + "\n\n" + renderFooter(m, width)
	}
	return out
}

func (m model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// itemCount is the length of the cursor-driven list of view.
func (m model) itemCount(view nav.ViewID) int {
	switch view {
	case nav.Home:
		return len(homeEntries(m))
	case nav.Repository:
		return len(m.catalog.Videos())
	case nav.Webinars:
		return len(m.catalog.VideosInCategory(m.nav.Category()))
	case nav.Blog:
		return len(m.catalog.Posts())
	case nav.Nemi:
		return len(m.catalog.Agents())
	default:
		return 0
	}
}

// listLine renders one row of a cursor list.
func (m model) listLine(selected bool, title, detail string, width int) string {
	marker := "  "
	titleStyle := m.theme.helpLabel
	if selected {
		marker = m.theme.selected.Render("› ")
		titleStyle = m.theme.selected
	}
	line := marker + titleStyle.Render(truncate(title, width-4))
	if detail != "" {
		room := width - 4 - len([]rune(title)) - 3
		if room > 8 {
			line += m.theme.muted.Render(" · " + truncate(detail, room))
		}
	}
	return line
}

func (m model) hint(parts ...string) string {
	return m.theme.help.Render(strings.Join(parts, " · "))
}
