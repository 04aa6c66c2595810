package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

const (
	sectionPaths  = "Rutas de aprendizaje"
	sectionTools  = "Herramientas destacadas"
	sectionAgents = "Agentes Nemi"
	sectionPosts  = "Del blog"
)

type homeEntry struct {
	section string
	title   string
	detail  string
	run     func(m *model) tea.Cmd
}

// homeEntries flattens the home sections into one cursor list.
func homeEntries(m model) []homeEntry {
	var out []homeEntry
	for _, cat := range m.catalog.Categories() {
		videos := m.catalog.VideosInCategory(cat.ID)
		out = append(out, homeEntry{
			section: sectionPaths,
			title:   cat.Name,
			detail:  fmt.Sprintf("%d webinars", len(videos)),
			run: func(m *model) tea.Cmd {
				if len(videos) == 0 {
					m.navigate(nav.Webinars, cat.ID)
					return nil
				}
				return m.playVideo(videos[0])
			},
		})
	}

	n := m.cfg.FeaturedCount()
	for i, tool := range m.catalog.FeaturedTools(n) {
		out = append(out, homeEntry{
			section: sectionTools,
			title:   tool.Title,
			detail:  tool.Summary,
			run: func(m *model) tea.Cmd {
				m.navigate(nav.EduTools, "")
				m.tools.Select(i)
				return nil
			},
		})
	}
	for i, agent := range m.catalog.FeaturedAgents(n) {
		out = append(out, homeEntry{
			section: sectionAgents,
			title:   agent.Icon + " " + agent.Title,
			detail:  agent.Description,
			run: func(m *model) tea.Cmd {
				m.navigate(nav.Nemi, "")
				m.cursors[nav.Nemi] = i
				return nil
			},
		})
	}
	for i, post := range m.catalog.LatestPosts(n) {
		out = append(out, homeEntry{
			section: sectionPosts,
			title:   post.Title,
			detail:  catalog.Excerpt(post, 80),
			run: func(m *model) tea.Cmd {
				m.navigate(nav.Blog, "")
				m.cursors[nav.Blog] = i
				return nil
			},
		})
	}
	return out
}

func renderHome(m model, width int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.title.Render("Centro de Desarrollo Académico") + "\n")
	b.WriteString(t.muted.Render("Formación docente continua: webinars, artículos, herramientas y agentes de IA para tu práctica.") + "\n")

	cursor := m.cursors[nav.Home]
	section := ""
	for i, entry := range homeEntries(m) {
		if entry.section != section {
			section = entry.section
			b.WriteString(t.sectionTitle.Render(section) + "\n")
		}
		b.WriteString(m.listLine(i == cursor, entry.title, entry.detail, width) + "\n")
	}
	b.WriteString("\n" + m.hint("↑/↓ elegir", "Enter abrir", "Ctrl+K buscar", "Ctrl+N Nemi chat"))
	return b.String()
}

func (m *model) handleHomeActions(actions []Action) (bool, tea.Cmd) {
	entries := homeEntries(*m)
	for _, act := range actions {
		switch act {
		case ActNavigateUp:
			m.moveCursor(nav.Home, -1, len(entries))
			return true, nil
		case ActNavigateDown:
			m.moveCursor(nav.Home, 1, len(entries))
			return true, nil
		case ActConfirm:
			if len(entries) == 0 {
				return true, nil
			}
			entry := entries[clampIndex(m.cursors[nav.Home], len(entries))]
			return true, entry.run(m)
		}
	}
	return false, nil
}
