package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/config"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

func (m model) handleKeyMsg(msg tea.KeyMsg) (model, tea.Cmd) {
	mPtr := &m

	// The shared keyboard sees every key first; a consumed key never reaches
	// the focused widget.
	searchWasOpen := mPtr.overlays.IsSearchOpen()
	if mPtr.keyboard.Dispatch(msg) {
		if !searchWasOpen && mPtr.overlays.IsSearchOpen() {
			return *mPtr, mPtr.onSearchOpened()
		}
		return *mPtr, nil
	}

	if mPtr.showHelp && msg.Type == tea.KeyEsc {
		mPtr.showHelp = false
		return *mPtr, nil
	}

	scope := mPtr.currentScope()
	if handled, cmd := mPtr.handleScopeActions(scope, mPtr.keys.ScopeActions(scope, msg), msg); handled {
		return *mPtr, cmd
	}

	typing := mPtr.IsTyping()
	for _, act := range mPtr.keys.GlobalActions(msg) {
		if typing && mPtr.keys.IsTypingSensitive(act) {
			continue
		}
		if handled, cmd := mPtr.handleGlobalAction(act); handled {
			return *mPtr, cmd
		}
	}

	return *mPtr, mPtr.forwardToFocused(scope, msg)
}

// currentScope picks the key scope from the topmost layer: search, then the
// chat widget, then the playing video, then the active view.
func (m model) currentScope() string {
	switch {
	case m.overlays.IsSearchOpen():
		return scopeSearch
	case m.chat.IsOpen():
		return scopeChat
	}
	if _, playing := m.overlays.CurrentlyPlaying(); playing {
		return scopeVideo
	}
	return m.nav.CurrentView().String()
}

// IsTyping reports whether a text widget owns plain keystrokes.
func (m model) IsTyping() bool {
	switch m.currentScope() {
	case scopeSearch, scopeChat:
		return true
	case nav.Studio.String():
		return m.studioFocus >= 0
	case nav.EduTools.String():
		return m.tools.SettingFilter()
	default:
		return false
	}
}

func (m *model) handleScopeActions(scope string, actions []Action, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch scope {
	case scopeSearch:
		return m.handleSearchActions(actions)
	case scopeChat:
		return m.handleChatActions(actions)
	case scopeVideo:
		return m.handleVideoActions(actions)
	}

	switch m.nav.CurrentView() {
	case nav.Home:
		return m.handleHomeActions(actions)
	case nav.Repository:
		return m.handleRepositoryActions(actions)
	case nav.Webinars:
		return m.handleWebinarsActions(actions)
	case nav.Blog:
		return m.handleBlogActions(actions)
	case nav.Nemi:
		return m.handleNemiActions(actions)
	case nav.Studio:
		return m.handleStudioActions(actions, msg)
	case nav.EduTools:
		return m.handleEduToolsActions(actions, msg)
	default:
		return false, nil
	}
}

func (m *model) handleGlobalAction(act Action) (bool, tea.Cmd) {
	switch act {
	case ActInterrupt, ActQuit:
		m.record(levelInfo, "quit")
		return true, tea.Quit
	case ActHelp:
		m.showHelp = !m.showHelp
		return true, nil
	case ActOpenSearch:
		m.overlays.OpenSearch()
		return true, m.onSearchOpened()
	case ActToggleChat:
		m.chat.Toggle()
		if m.chat.IsOpen() {
			m.record(levelInfo, "chat opened")
			return true, m.chatInput.Focus()
		}
		m.chatInput.Blur()
		m.record(levelInfo, "chat closed")
		return true, nil
	case ActToggleTheme:
		m.theme = m.theme.toggled()
		m.cfg.Theme = m.theme.name()
		m.tools = restyleToolsList(m.tools, m.theme)
		m.record(levelInfo, "theme %s", m.cfg.Theme)
		return true, batchCmd(m.showToast("Tema: "+themeLabel(m.cfg.Theme)), m.persistCmd())
	case ActNextView, ActPrevView:
		m.navigate(m.adjacentView(act == ActNextView), "")
		return true, nil
	case ActPageUp:
		m.scroll.cancel()
		m.body.HalfViewUp()
		return true, nil
	case ActPageDown:
		m.scroll.cancel()
		m.body.HalfViewDown()
		return true, nil
	case ActScrollTop:
		m.scroll.cancel()
		m.body.GotoTop()
		return true, nil
	case ActScrollBottom:
		m.scroll.cancel()
		m.body.GotoBottom()
		return true, nil
	}
	if target, ok := viewFromAction(act); ok {
		m.navigate(target, "")
		return true, nil
	}
	return false, nil
}

func (m model) adjacentView(forward bool) nav.ViewID {
	views := nav.AllViews()
	current := m.nav.CurrentView()
	for i, v := range views {
		if v != current {
			continue
		}
		if forward {
			return views[(i+1)%len(views)]
		}
		return views[(i-1+len(views))%len(views)]
	}
	return nav.Home
}

func themeLabel(name string) string {
	if name == config.ThemeLight {
		return "claro"
	}
	return "oscuro"
}

// forwardToFocused hands an unbound key to whichever text widget or list has
// focus in scope.
func (m *model) forwardToFocused(scope string, msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch scope {
	case scopeSearch:
		before := m.searchInput.Value()
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.searchInput.Value() != before {
			m.searchCursor = 0
		}
	case scopeChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	case nav.Studio.String():
		cmd = m.updateStudioFocus(msg)
	case nav.EduTools.String():
		m.tools, cmd = m.tools.Update(msg)
	}
	return cmd
}

// moveCursor steps the cursor of view within n items, wrapping at both ends.
func (m *model) moveCursor(view nav.ViewID, delta, n int) {
	if n <= 0 {
		m.cursors[view] = 0
		return
	}
	m.cursors[view] = ((m.cursors[view]+delta)%n + n) % n
}
