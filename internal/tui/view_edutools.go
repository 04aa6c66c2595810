package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
)

type toolItem struct {
	tool catalog.Tool
}

func (i toolItem) Title() string       { return i.tool.Title }
func (i toolItem) Description() string { return i.tool.Summary }
func (i toolItem) FilterValue() string {
	return i.tool.Title + " " + i.tool.Summary + " " + strings.Join(i.tool.Tags, " ")
}

func toolItems(c *catalog.Catalog) []list.Item {
	tools := c.Tools()
	items := make([]list.Item, 0, len(tools))
	for _, tool := range tools {
		items = append(items, toolItem{tool: tool})
	}
	return items
}

func newToolsList(c *catalog.Catalog, th theme, width, height int) list.Model {
	l := list.New(toolItems(c), list.NewDefaultDelegate(), width, height)
	l.Title = "EduTools · herramientas recomendadas"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.Filter.SetKeys("f")
	return restyleToolsList(l, th)
}

func restyleToolsList(l list.Model, th theme) list.Model {
	l.Styles.Title = th.title.Padding(0, 1)
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(th.palette.accent).BorderForeground(th.palette.accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(th.palette.accent2).BorderForeground(th.palette.accent)
	l.SetDelegate(delegate)
	return l
}

func renderEduTools(m model, width int) string {
	return m.tools.View() + "\n" + m.hint("F filtrar", "Enter abrir herramienta")
}

func (m *model) handleEduToolsActions(actions []Action, msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.tools.SettingFilter() {
		var cmd tea.Cmd
		m.tools, cmd = m.tools.Update(msg)
		return true, cmd
	}
	for _, act := range actions {
		if act != ActConfirm {
			continue
		}
		item, ok := m.tools.SelectedItem().(toolItem)
		if !ok {
			return true, nil
		}
		return true, m.openCmd(item.tool.URL)
	}
	return false, nil
}
