package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

func renderRepository(m model, width int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.title.Render("Repositorio de recursos") + "\n")
	b.WriteString(t.muted.Render("Todos los webinars con sus materiales complementarios.") + "\n\n")

	videos := m.catalog.Videos()
	if len(videos) == 0 {
		b.WriteString(t.muted.Render("El catálogo no tiene webinars.") + "\n")
		return b.String()
	}
	cursor := clampIndex(m.cursors[nav.Repository], len(videos))
	for i, v := range videos {
		detail := v.Duration + " · " + m.catalog.CategoryName(v.Category)
		b.WriteString(m.listLine(i == cursor, v.Title, detail, width) + "\n")
		if i != cursor {
			continue
		}
		resources := v.Pedagogical.Resources
		if len(resources) == 0 {
			b.WriteString("    " + t.muted.Render("Sin recursos complementarios") + "\n")
			continue
		}
		for _, r := range resources {
			b.WriteString("    ↳ " + t.accent.Render(resourceBadge(r.Type)) + " " + truncate(r.Title, width-16) + "\n")
		}
	}
	b.WriteString("\n" + m.hint("Enter reproducir", "O abrir recurso"))
	return b.String()
}

func resourceBadge(kind catalog.ResourceType) string {
	switch kind {
	case catalog.ResourcePDF:
		return "[PDF]"
	case catalog.ResourceBot:
		return "[Bot]"
	default:
		return "[Enlace]"
	}
}

func (m *model) handleRepositoryActions(actions []Action) (bool, tea.Cmd) {
	videos := m.catalog.Videos()
	for _, act := range actions {
		switch act {
		case ActNavigateUp:
			m.moveCursor(nav.Repository, -1, len(videos))
			return true, nil
		case ActNavigateDown:
			m.moveCursor(nav.Repository, 1, len(videos))
			return true, nil
		case ActConfirm:
			if len(videos) == 0 {
				return true, nil
			}
			return true, m.playVideo(videos[clampIndex(m.cursors[nav.Repository], len(videos))])
		case ActOpenLink:
			if len(videos) == 0 {
				return true, nil
			}
			v := videos[clampIndex(m.cursors[nav.Repository], len(videos))]
			if len(v.Pedagogical.Resources) > 0 {
				return true, m.openCmd(v.Pedagogical.Resources[0].URL)
			}
			return true, m.openCmd(v.URL)
		}
	}
	return false, nil
}
