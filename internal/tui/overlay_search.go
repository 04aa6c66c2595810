package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

const maxHitsPerGroup = 5

type searchHit struct {
	group  string
	title  string
	detail string
	run    func(m *model) tea.Cmd
}

// onSearchOpened focuses a fresh query whenever the overlay opens.
func (m *model) onSearchOpened() tea.Cmd {
	m.searchInput.SetValue("")
	m.searchCursor = 0
	m.chatInput.Blur()
	m.record(levelInfo, "search opened")
	return m.searchInput.Focus()
}

func (m *model) closeSearch() {
	m.overlays.CloseSearch()
	m.searchInput.Blur()
	if m.chat.IsOpen() {
		m.chatInput.Focus()
	}
}

// searchHits groups the results of the current query in display order.
func searchHits(m model) []searchHit {
	res := m.catalog.Search(m.searchInput.Value())
	if res.Empty() {
		return nil
	}
	var hits []searchHit
	for _, v := range firstHits(res.Videos) {
		hits = append(hits, searchHit{
			group:  "Webinars",
			title:  v.Title,
			detail: m.catalog.CategoryName(v.Category),
			run: func(m *model) tea.Cmd {
				m.closeSearch()
				return m.playVideo(v)
			},
		})
	}
	posts := m.catalog.Posts()
	for _, p := range firstHits(res.Posts) {
		hits = append(hits, searchHit{
			group:  "Artículos",
			title:  p.Title,
			detail: p.ReadTime,
			run: func(m *model) tea.Cmd {
				m.closeSearch()
				m.navigate(nav.Blog, "")
				m.cursors[nav.Blog] = indexOfPost(posts, p.ID)
				return nil
			},
		})
	}
	tools := m.catalog.Tools()
	for _, tool := range firstHits(res.Tools) {
		hits = append(hits, searchHit{
			group:  "EduTools",
			title:  tool.Title,
			detail: tool.Summary,
			run: func(m *model) tea.Cmd {
				m.closeSearch()
				m.navigate(nav.EduTools, "")
				m.tools.Select(indexOfTool(tools, tool.ID))
				return nil
			},
		})
	}
	agents := m.catalog.Agents()
	for _, a := range firstHits(res.Agents) {
		hits = append(hits, searchHit{
			group:  "Agentes Nemi",
			title:  a.Title,
			detail: a.Description,
			run: func(m *model) tea.Cmd {
				m.closeSearch()
				m.navigate(nav.Nemi, "")
				m.cursors[nav.Nemi] = indexOfAgent(agents, a.ID)
				return nil
			},
		})
	}
	return hits
}

func firstHits[T any](items []T) []T {
	if len(items) > maxHitsPerGroup {
		return items[:maxHitsPerGroup]
	}
	return items
}

func indexOfPost(posts []catalog.Post, id string) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return 0
}

func indexOfTool(tools []catalog.Tool, id string) int {
	for i, t := range tools {
		if t.ID == id {
			return i
		}
	}
	return 0
}

func indexOfAgent(agents []catalog.Agent, id string) int {
	for i, a := range agents {
		if a.ID == id {
			return i
		}
	}
	return 0
}

func (m *model) handleSearchActions(actions []Action) (bool, tea.Cmd) {
	for _, act := range actions {
		switch act {
		case ActCancel:
			m.closeSearch()
			m.record(levelInfo, "search closed")
			return true, nil
		case ActNavigateUp, ActNavigateDown:
			n := len(searchHits(*m))
			if n == 0 {
				return true, nil
			}
			delta := 1
			if act == ActNavigateUp {
				delta = -1
			}
			m.searchCursor = ((m.searchCursor+delta)%n + n) % n
			return true, nil
		case ActConfirm:
			hits := searchHits(*m)
			if len(hits) == 0 {
				return true, nil
			}
			hit := hits[clampIndex(m.searchCursor, len(hits))]
			m.record(levelInfo, "search %q -> %s", m.searchInput.Value(), hit.title)
			return true, hit.run(m)
		}
	}
	return false, nil
}

func renderSearchOverlay(m model, width int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.title.Render("Buscar") + "\n")
	b.WriteString(m.searchInput.View() + "\n\n")

	query := strings.TrimSpace(m.searchInput.Value())
	hits := searchHits(m)
	switch {
	case query == "":
		b.WriteString(t.muted.Render("Escribe para buscar en todo el portal.") + "\n")
	case len(hits) == 0:
		b.WriteString(t.muted.Render("Sin resultados para «"+query+"».") + "\n")
	default:
		cursor := clampIndex(m.searchCursor, len(hits))
		group := ""
		for i, hit := range hits {
			if hit.group != group {
				group = hit.group
				b.WriteString(t.sectionTitle.UnsetMarginTop().Render(group) + "\n")
			}
			b.WriteString(m.listLine(i == cursor, hit.title, hit.detail, width-6) + "\n")
		}
	}
	b.WriteString("\n" + m.hint("↑/↓ elegir", "Enter abrir", "Esc cerrar"))
	return t.overlay.Width(width - 2).Render(b.String())
}
