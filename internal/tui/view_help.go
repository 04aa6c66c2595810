package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

// scopeTitle names a key scope in the help overlay.
func scopeTitle(scope string) string {
	switch scope {
	case scopeSearch:
		return "Búsqueda"
	case scopeVideo:
		return "Reproductor"
	case scopeChat:
		return "Nemi chat"
	}
	if v, err := nav.ParseView(scope); err == nil {
		return v.Title()
	}
	return scope
}

// renderHelpOverlay renders the help overlay if active.
func renderHelpOverlay(b *strings.Builder, m model) {
	if !m.showHelp {
		return
	}

	panel := buildHelpOverlayContent(m)
	if panel == "" {
		return
	}

	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(panel)
}

// buildHelpOverlayContent lists the global bindings and those of the scope
// that currently receives keys.
func buildHelpOverlayContent(m model) string {
	scope := m.currentScope()
	var sections []string

	if global := overlayHelpSection(m, "Global", withSearchShortcut(m.keys.GlobalHelpEntries())); global != "" {
		sections = append(sections, global)
	}

	if scoped := overlayHelpSection(m, scopeTitle(scope), m.keys.HelpEntriesForScope(scope)); scoped != "" {
		sections = append(sections, scoped)
	}

	if len(sections) == 0 {
		return ""
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return m.theme.helpBox.Render(content)
}

// overlayHelpSection builds a single section for the help overlay.
func overlayHelpSection(m model, title string, entries []HelpEntry) string {
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		combos := make([]string, 0, len(entry.Combos))
		for _, combo := range entry.Combos {
			combos = append(combos, combo.Display())
		}
		line := lipgloss.JoinHorizontal(lipgloss.Left,
			m.theme.helpKey.Render(strings.Join(combos, " / ")),
			" ",
			m.theme.helpLabel.Render(entry.Label),
		)
		lines = append(lines, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.helpBoxTitle.Render(title),
		content,
	)
}

// withSearchShortcut lists the keyboard-bus search combination next to the
// keymap's own search keys. The combination is owned by the shortcut listener,
// not the keymap.
func withSearchShortcut(entries []HelpEntry) []HelpEntry {
	if len(nav.SearchShortcuts) == 0 {
		return entries
	}
	combo := parseKeyCombo(nav.SearchShortcuts[0])
	for i, entry := range entries {
		if entry.Action == ActOpenSearch {
			entries[i].Combos = append([]KeyCombo{combo}, entry.Combos...)
			return entries
		}
	}
	return append(entries, HelpEntry{Action: ActOpenSearch, Label: "Buscar", Combos: []KeyCombo{combo}})
}

// parseKeyCombo reads a bubbletea key string such as "ctrl+k".
func parseKeyCombo(s string) KeyCombo {
	var kc KeyCombo
	parts := strings.Split(strings.ToLower(s), "+")
	for _, part := range parts[:len(parts)-1] {
		switch part {
		case "ctrl":
			kc.Ctrl = true
		case "alt":
			kc.Alt = true
		case "shift":
			kc.Shift = true
		}
	}
	kc.Key = parts[len(parts)-1]
	return kc
}
