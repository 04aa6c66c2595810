package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

const maxCardWidth = 72

func renderNemi(m model, width int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.title.Render("Nemi Agents") + "\n")
	b.WriteString(t.muted.Render("Asistentes de IA especializados para tu práctica docente.") + "\n\n")

	agents := m.catalog.Agents()
	if len(agents) == 0 {
		b.WriteString(t.muted.Render("No hay agentes disponibles."))
		return b.String()
	}

	cardWidth := width - 2
	if cardWidth > maxCardWidth {
		cardWidth = maxCardWidth
	}
	cursor := clampIndex(m.cursors[nav.Nemi], len(agents))
	for i, a := range agents {
		card := NewBorderedBox(t.styles, a.Icon+" "+a.Title, a.Description+"\n"+t.muted.Render(a.URL))
		card.Width = cardWidth
		card.Focused = i == cursor
		b.WriteString(card.Render() + "\n")
	}
	b.WriteString(m.hint("Enter abrir agente", "Y copiar enlace"))
	return b.String()
}

func (m *model) handleNemiActions(actions []Action) (bool, tea.Cmd) {
	agents := m.catalog.Agents()
	for _, act := range actions {
		switch act {
		case ActNavigateUp:
			m.moveCursor(nav.Nemi, -1, len(agents))
			return true, nil
		case ActNavigateDown:
			m.moveCursor(nav.Nemi, 1, len(agents))
			return true, nil
		case ActConfirm, ActCopyLink:
			if len(agents) == 0 {
				return true, nil
			}
			agent := agents[clampIndex(m.cursors[nav.Nemi], len(agents))]
			if act == ActConfirm {
				return true, m.openCmd(agent.URL)
			}
			return true, m.copyText(agent.URL, "Enlace de "+agent.Title+" copiado")
		}
	}
	return false, nil
}

// copyText writes text to the clipboard and reports the outcome.
func (m *model) copyText(text, success string) tea.Cmd {
	if err := m.copy(text); err != nil {
		m.record(levelError, "clipboard: %v", err)
		m.status = "Error al copiar: " + err.Error()
		return nil
	}
	m.record(levelInfo, "copied %d bytes", len(text))
	return m.showToast(success)
}
