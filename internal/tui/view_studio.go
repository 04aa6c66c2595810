package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

// syncStudio points the studio form at the tool named by the studio channel,
// or the first tool when the channel is empty or unknown. The form is rebuilt
// only when the tool changes.
func (m *model) syncStudio() {
	tools := m.catalog.StudioTools()
	if len(tools) == 0 {
		m.studioToolID = ""
		m.studioFields = nil
		m.studioFocus = -1
		return
	}

	want := m.nav.StudioTool()
	tool, err := m.catalog.StudioTool(want)
	if want == "" || err != nil {
		tool = tools[0]
	}
	if want != "" && err != nil && m.nav.CurrentView() == nav.Studio {
		m.setStatus("Herramienta de Studio desconocida: %s", want)
	}
	if tool.ID == m.studioToolID && m.studioFields != nil {
		return
	}

	m.studioToolID = tool.ID
	m.studioFields = make([]textinput.Model, 0, len(tool.Fields))
	for _, field := range tool.Fields {
		m.studioFields = append(m.studioFields, mkInput(fieldLabel(field), "", clampWidth(m.width-24, 10, 60)))
	}
	m.studioContext.Reset()
	m.studioContext.Blur()
	m.studioFocus = -1
}

func fieldLabel(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}
	r := []rune(field)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func (m model) currentStudioTool() (catalog.StudioTool, bool) {
	tool, err := m.catalog.StudioTool(m.studioToolID)
	return tool, err == nil
}

func renderStudio(m model, width int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.title.Render("Nemi Studio") + "\n")
	b.WriteString(t.muted.Render("Genera prompts listos para usar con tus agentes de IA.") + "\n\n")

	tools := m.catalog.StudioTools()
	if len(tools) == 0 {
		b.WriteString(t.muted.Render("No hay herramientas de Studio configuradas."))
		return b.String()
	}

	opts := make([]ToggleOption, 0, len(tools))
	for _, tool := range tools {
		opts = append(opts, ToggleOption{Label: tool.Title, Value: tool.ID, Selected: tool.ID == m.studioToolID})
	}
	picker := NewToggleGroup(t.styles, "Herramienta", opts)
	picker.Focused = m.studioFocus < 0
	b.WriteString(picker.Render() + "\n")

	tool, ok := m.currentStudioTool()
	if !ok {
		return b.String()
	}
	b.WriteString(t.muted.Render(tool.Description) + "\n\n")

	labelWidth := 0
	for _, field := range tool.Fields {
		if w := len([]rune(fieldLabel(field))); w > labelWidth {
			labelWidth = w
		}
	}
	for i, field := range tool.Fields {
		if i >= len(m.studioFields) {
			break
		}
		label := fieldLabel(field)
		label += strings.Repeat(" ", labelWidth-len([]rune(label)))
		line := t.helpKey.Render(label) + "  " + m.studioFields[i].View()
		if m.studioFocus == i {
			line = t.focus.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + t.helpKey.Render("Contexto") + "\n" + m.studioContext.View() + "\n\n")

	if preview, err := m.composeStudioPrompt(); err == nil {
		card := NewBorderedBox(t.styles, "Vista previa", preview)
		card.Width = clampWidth(width-2, 20, 100)
		b.WriteString(card.Render() + "\n")
	}
	b.WriteString(m.hint("←/→ herramienta", "Tab campo", "Enter o Ctrl+S generar y copiar", "Esc salir del campo"))
	return b.String()
}

// composeStudioPrompt fills the current tool's template from the form.
func (m model) composeStudioPrompt() (string, error) {
	tool, ok := m.currentStudioTool()
	if !ok {
		return "", catalog.ErrNotFound
	}
	values := make(map[string]string, len(tool.Fields))
	for i, field := range tool.Fields {
		if i < len(m.studioFields) {
			values[field] = m.studioFields[i].Value()
		}
	}
	prompt, err := tool.Compose(values)
	if err != nil {
		return "", err
	}
	if extra := strings.TrimSpace(m.studioContext.Value()); extra != "" {
		prompt += "\n\nContexto adicional: " + extra
	}
	return prompt, nil
}

func (m *model) handleStudioActions(actions []Action, msg tea.KeyMsg) (bool, tea.Cmd) {
	for _, act := range actions {
		switch act {
		case ActNavigateLeft, ActNavigateRight:
			if m.studioFocus >= 0 {
				return false, nil
			}
			m.cycleStudioTool(act == ActNavigateRight)
			return true, nil
		case ActTabForward:
			return true, m.setStudioFocus(m.nextStudioFocus(1))
		case ActTabBackward:
			return true, m.setStudioFocus(m.nextStudioFocus(-1))
		case ActConfirm:
			if m.studioFocus == len(m.studioFields) {
				return false, nil
			}
			return true, m.composeAndCopy()
		case ActCompose:
			return true, m.composeAndCopy()
		case ActCancel:
			if m.studioFocus < 0 {
				return false, nil
			}
			return true, m.setStudioFocus(-1)
		}
	}
	return false, nil
}

func (m *model) cycleStudioTool(forward bool) {
	tools := m.catalog.StudioTools()
	if len(tools) == 0 {
		return
	}
	idx := 0
	for i, tool := range tools {
		if tool.ID == m.studioToolID {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(tools)
	} else {
		idx = (idx - 1 + len(tools)) % len(tools)
	}
	m.navigate(nav.Studio, tools[idx].ID)
}

// Focus slots: -1 is the tool picker, then one per field, then the context
// textarea.
func (m model) nextStudioFocus(delta int) int {
	slots := len(m.studioFields) + 2
	return ((m.studioFocus+1+delta)%slots+slots)%slots - 1
}

func (m *model) setStudioFocus(slot int) tea.Cmd {
	for i := range m.studioFields {
		m.studioFields[i].Blur()
	}
	m.studioContext.Blur()
	m.studioFocus = slot
	switch {
	case slot >= 0 && slot < len(m.studioFields):
		return m.studioFields[slot].Focus()
	case slot == len(m.studioFields):
		return m.studioContext.Focus()
	default:
		m.studioFocus = -1
		return nil
	}
}

func (m *model) updateStudioFocus(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.studioFocus >= 0 && m.studioFocus < len(m.studioFields):
		m.studioFields[m.studioFocus], cmd = m.studioFields[m.studioFocus].Update(msg)
	case m.studioFocus == len(m.studioFields):
		m.studioContext, cmd = m.studioContext.Update(msg)
	}
	return cmd
}

func (m *model) composeAndCopy() tea.Cmd {
	prompt, err := m.composeStudioPrompt()
	if err != nil {
		m.record(levelError, "studio compose %s: %v", m.studioToolID, err)
		m.status = "Error al generar el prompt: " + err.Error()
		return nil
	}
	tool, _ := m.currentStudioTool()
	m.record(levelInfo, "studio compose %s", tool.ID)
	return m.copyText(prompt, "Prompt de "+tool.Title+" copiado al portapapeles")
}
