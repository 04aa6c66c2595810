package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/chat"
)

const chatVisibleMessages = 6

// pendingActions are the suggestions attached to the newest reply.
func (m model) pendingActions() []chat.Action {
	last, ok := m.chat.Last()
	if !ok || last.Role != chat.RoleAssistant {
		return nil
	}
	return last.Actions
}

func (m *model) handleChatActions(actions []Action) (bool, tea.Cmd) {
	for _, act := range actions {
		switch act {
		case ActCancel:
			m.chat.Close()
			m.chatInput.Blur()
			m.record(levelInfo, "chat closed")
			return true, nil
		case ActNavigateUp, ActNavigateDown:
			n := len(m.pendingActions())
			if n == 0 {
				return true, nil
			}
			delta := 1
			if act == ActNavigateUp {
				delta = -1
			}
			m.chatCursor = ((m.chatCursor+delta)%n + n) % n
			return true, nil
		case ActConfirm:
			if text := strings.TrimSpace(m.chatInput.Value()); text != "" {
				return true, m.sendChat(text)
			}
			return true, m.runChatSuggestion()
		}
	}
	return false, nil
}

func (m *model) sendChat(text string) tea.Cmd {
	reply, ok := m.chat.Send(text)
	m.chatInput.SetValue("")
	m.chatCursor = 0
	if !ok {
		return nil
	}
	m.record(levelInfo, "chat %q -> %d suggestion(s)", text, len(reply.Actions))
	return nil
}

// runChatSuggestion carries out the selected suggestion through the overlay
// or navigation controller.
func (m *model) runChatSuggestion() tea.Cmd {
	actions := m.pendingActions()
	if len(actions) == 0 {
		return nil
	}
	act := actions[clampIndex(m.chatCursor, len(actions))]
	m.record(levelInfo, "chat suggestion %q", act.Label)
	switch act.Kind {
	case chat.ActionPlayVideo:
		v, err := m.catalog.Video(act.VideoID)
		if err != nil {
			m.status = "Video no disponible: " + act.VideoID
			return nil
		}
		return m.playVideo(v)
	case chat.ActionNavigate:
		m.applyRequest(act.Request)
	}
	return nil
}

func renderChatPanel(m model, width int) string {
	t := m.theme
	messages := m.chat.Messages()
	if len(messages) > chatVisibleMessages {
		messages = messages[len(messages)-chatVisibleMessages:]
	}

	var b strings.Builder
	b.WriteString(t.chatBot.Render("Nemi chat") + "\n")
	for _, msg := range messages {
		who := t.chatBot.Render("Nemi: ")
		if msg.Role == chat.RoleUser {
			who = t.chatUser.Render("Tú: ")
		}
		b.WriteString(who + truncate(msg.Text, width-12) + "\n")
	}

	if actions := m.pendingActions(); len(actions) > 0 {
		cursor := clampIndex(m.chatCursor, len(actions))
		for i, act := range actions {
			b.WriteString(m.listLine(i == cursor, act.Label, "", width-8) + "\n")
		}
	}
	b.WriteString(m.chatInput.View() + "\n")
	b.WriteString(m.hint("Enter enviar o aceptar sugerencia", "↑/↓ sugerencias", "Esc cerrar"))
	return t.chatBox.Width(width - 2).Render(b.String())
}
