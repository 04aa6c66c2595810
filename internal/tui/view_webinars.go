package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

// categoryOptions lists the webinar filters in tab order, "all" first.
func (m model) categoryOptions() []ToggleOption {
	current := m.nav.Category()
	opts := []ToggleOption{{Label: "Todas", Value: nav.AllCategories, Selected: current == nav.AllCategories}}
	for _, c := range m.catalog.Categories() {
		opts = append(opts, ToggleOption{Label: c.Name, Value: c.ID, Selected: current == c.ID})
	}
	return opts
}

func renderWebinars(m model, width int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.title.Render("Cursos y Webinars") + "\n")

	opts := m.categoryOptions()
	b.WriteString(NewToggleGroup(t.styles, "Categoría", opts).Render() + "\n\n")

	category := m.nav.Category()
	videos := m.catalog.VideosInCategory(category)
	if len(videos) == 0 {
		name := m.catalog.CategoryName(category)
		b.WriteString(t.muted.Render(fmt.Sprintf("No hay webinars en «%s».", name)) + "\n")
		b.WriteString("\n" + m.hint("←/→ cambiar categoría"))
		return b.String()
	}

	cursor := clampIndex(m.cursors[nav.Webinars], len(videos))
	for i, v := range videos {
		detail := v.Duration + " · " + v.Instructor
		if watched, ok := m.cfg.Watched[v.ID]; ok && watched.Plays > 0 {
			detail += " · visto"
		}
		b.WriteString(m.listLine(i == cursor, v.Title, detail, width) + "\n")
		if i == cursor && v.Description != "" {
			b.WriteString("    " + t.muted.Render(truncate(v.Description, width-6)) + "\n")
		}
	}
	b.WriteString("\n" + m.hint("←/→ cambiar categoría", "Enter reproducir"))
	return b.String()
}

func (m *model) handleWebinarsActions(actions []Action) (bool, tea.Cmd) {
	videos := m.catalog.VideosInCategory(m.nav.Category())
	for _, act := range actions {
		switch act {
		case ActNavigateUp:
			m.moveCursor(nav.Webinars, -1, len(videos))
			return true, nil
		case ActNavigateDown:
			m.moveCursor(nav.Webinars, 1, len(videos))
			return true, nil
		case ActNavigateLeft, ActNavigateRight:
			m.cycleCategory(act == ActNavigateRight)
			return true, nil
		case ActConfirm:
			if len(videos) == 0 {
				return true, nil
			}
			return true, m.playVideo(videos[clampIndex(m.cursors[nav.Webinars], len(videos))])
		}
	}
	return false, nil
}

// cycleCategory re-navigates to webinars with the neighbouring category.
func (m *model) cycleCategory(forward bool) {
	opts := m.categoryOptions()
	idx := -1
	for i, o := range opts {
		if o.Selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0:
		idx = 0
	case forward:
		idx = (idx + 1) % len(opts)
	default:
		idx = (idx - 1 + len(opts)) % len(opts)
	}
	m.navigate(nav.Webinars, opts[idx].Value)
}
