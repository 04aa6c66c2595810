package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

func renderBlog(m model, width int) string {
	t := m.theme
	posts := m.catalog.Posts()
	header := t.title.Render("Blog Académico") + "\n"
	if len(posts) == 0 {
		return header + t.muted.Render("Todavía no hay artículos.")
	}

	cursor := clampIndex(m.cursors[nav.Blog], len(posts))
	var list strings.Builder
	for i, p := range posts {
		list.WriteString(m.listLine(i == cursor, p.Title, "", width/3) + "\n")
		list.WriteString("    " + t.muted.Render(p.ReadTime+" · "+m.catalog.CategoryName(p.Category)) + "\n")
	}

	pane := NewSplitPane(t.styles, list.String(), "", 0.34)
	_, readerWidth := pane.Widths(width)
	pane.Right = renderPostReader(m, posts[cursor], readerWidth)

	return header + "\n" + pane.Render(width) + "\n\n" +
		m.hint("↑/↓ elegir artículo", "C ver webinars de la categoría")
}

func renderPostReader(m model, p catalog.Post, width int) string {
	var b strings.Builder
	b.WriteString("# " + p.Title + "\n\n")
	b.WriteString("*" + p.ReadTime + " · " + m.catalog.CategoryName(p.Category) + "*\n\n")
	b.WriteString(p.Markdown())
	return m.md.render(b.String(), m.theme.glamourStyle(), width)
}

func (m *model) handleBlogActions(actions []Action) (bool, tea.Cmd) {
	posts := m.catalog.Posts()
	for _, act := range actions {
		switch act {
		case ActNavigateUp:
			m.moveCursor(nav.Blog, -1, len(posts))
			return true, nil
		case ActNavigateDown:
			m.moveCursor(nav.Blog, 1, len(posts))
			return true, nil
		case ActConfirm:
			return true, nil
		case ActShowCategory:
			if len(posts) == 0 {
				return true, nil
			}
			post := posts[clampIndex(m.cursors[nav.Blog], len(posts))]
			m.navigate(nav.Webinars, post.Category)
			return true, nil
		}
	}
	return false, nil
}
