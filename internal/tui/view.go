package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

func viewShortcutLabel(keys KeyMap, idx int) string {
	if act, ok := gotoViewAction(idx); ok {
		if combos := keys.Global[act]; len(combos) > 0 {
			labels := make([]string, 0, len(combos))
			for _, combo := range combos {
				labels = append(labels, combo.Display())
			}
			return strings.Join(labels, "/")
		}
	}
	return fmt.Sprintf("%d", idx+1)
}

func (m model) View() string {
	var b strings.Builder
	width := m.contentWidth()
	t := m.theme

	header := NewPowerlineBar([]PowerlineSegment{
		{Text: "CDA · Portal docente", Style: t.title},
		{Text: "Ctrl+K buscar", Style: t.muted},
		{Text: "Ctrl+N Nemi", Style: t.muted},
		{Text: "? ayuda", Style: t.muted},
		{Text: "tema " + themeLabel(t.name()), Style: t.muted},
	})
	b.WriteString(header.RenderFullWidth(width) + "\n")

	current := m.nav.CurrentView()
	for i, v := range nav.AllViews() {
		label := fmt.Sprintf("[%s] %s  ", viewShortcutLabel(m.keys, i), v.Title())
		if v == current {
			b.WriteString(t.tabActive.Render(label))
			continue
		}
		b.WriteString(t.tabInactive.Render(label))
	}
	b.WriteString("\n\n")

	body := m.body
	if m.chat.IsOpen() {
		body.Height = max(3, body.Height-chatPanelHeight)
	}
	switch {
	case m.overlays.IsSearchOpen():
		b.WriteString(renderSearchOverlay(m, width))
	default:
		if v, ok := m.overlays.CurrentlyPlaying(); ok {
			b.WriteString(renderVideoOverlay(m, v, width))
		} else {
			b.WriteString(body.View())
		}
	}
	b.WriteString("\n")

	if m.chat.IsOpen() {
		b.WriteString(renderChatPanel(m, width))
	} else {
		b.WriteString(t.help.Render("Nemi chat · Ctrl+N"))
	}

	renderHelpOverlay(&b, m)
	renderStatusBar(&b, m)

	return b.String()
}

const chatPanelHeight = 12

func renderStatusBar(b *strings.Builder, m model) {
	message, style := statusBarMessage(m)
	if message == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(style.Render(message))
	b.WriteString("\n")
}

func statusBarMessage(m model) (string, lipgloss.Style) {
	if m.toast != nil {
		return m.toast.message, classifyStatusStyle(m.theme.styles, m.toast.message)
	}
	if note := strings.TrimSpace(m.status); note != "" {
		return note, classifyStatusStyle(m.theme.styles, note)
	}
	return "", lipgloss.NewStyle()
}

func classifyStatusStyle(s styles, text string) lipgloss.Style {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "error"),
		strings.Contains(lower, "no disponible"),
		strings.Contains(lower, "no soportado"):
		return s.statusErr
	case strings.Contains(lower, "desconocid"),
		strings.Contains(lower, "último"),
		strings.Contains(lower, "primer"),
		strings.Contains(lower, "no forma parte"):
		return s.statusWarn
	case strings.Contains(lower, "copiado"),
		strings.Contains(lower, "actualizado"),
		strings.Contains(lower, "resultado"),
		strings.Contains(lower, "abriendo"):
		return s.statusOK
	default:
		return s.statusInfo
	}
}
