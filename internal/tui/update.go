package tui

import (
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/launcher"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next.syncBody(cmd)
}

func (m model) update(msg tea.Msg) (model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(typed), nil

	case tea.KeyMsg:
		return m.handleKeyMsg(typed)

	case tea.MouseMsg:
		return m, nil

	case scrollFrameMsg:
		return m, m.scroll.frame(typed, &m.body)

	case statusMsg:
		if typed.note != "" {
			m.status = typed.note
		}
		return m, nil

	case toastExpiredMsg:
		if m.toast != nil && m.toast.seq == typed.seq {
			m.toast = nil
		}
		return m, nil

	case configSavedMsg:
		if typed.err != nil {
			log.Printf("tui: save config: %v", typed.err)
			m.status = "Error al guardar la configuración: " + typed.err.Error()
		}
		return m, nil

	case openResultMsg:
		return m.handleOpenResult(typed)

	case CatalogReload:
		return m.handleCatalogReload(typed)
	}

	return m, nil
}

// syncBody re-renders the active view into the body viewport and performs a
// pending scroll-to-top against the new content.
func (m model) syncBody(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.body.SetContent(renderBody(m))
	if v, ok := m.overlays.CurrentlyPlaying(); ok {
		m.videoPane.SetContent(renderVideoDetails(m, v, m.videoPane.Width-2))
	}
	return m, batchCmd(cmd, m.scroll.apply(&m.body))
}

func (m model) handleResize(msg tea.WindowSizeMsg) model {
	m.width, m.height = msg.Width, msg.Height
	m.body.Width, m.body.Height = msg.Width, m.bodyHeight()
	m.videoPane.Width, m.videoPane.Height = msg.Width-4, m.bodyHeight()-2
	m.searchInput.Width = clampWidth(msg.Width-8, 20, 80)
	m.chatInput.Width = clampWidth(msg.Width-8, 20, 80)
	m.studioContext.SetWidth(clampWidth(msg.Width-4, 20, 100))
	for i := range m.studioFields {
		m.studioFields[i].Width = clampWidth(msg.Width-24, 10, 60)
	}
	m.tools.SetSize(msg.Width, m.bodyHeight()-1)
	return m
}

func clampWidth(w, lo, hi int) int {
	if w < lo {
		return lo
	}
	if w > hi {
		return hi
	}
	return w
}

// navigate is the only path from the UI to the navigation controller. The
// target's cursor starts over and the navigation is journaled.
func (m *model) navigate(target nav.ViewID, param string) {
	if err := m.nav.Navigate(target, param); err != nil {
		m.record(levelWarn, "navigate %v rejected: %v", target, err)
		m.setStatus("Vista desconocida: %v", target)
		return
	}
	m.cursors[target] = 0
	m.syncStudio()
	if target == nav.EduTools {
		m.tools.ResetFilter()
		m.tools.Select(0)
	}
	if param != "" {
		m.record(levelInfo, "navigate %s param=%s", target, param)
	} else {
		m.record(levelInfo, "navigate %s", target)
	}
}

func (m *model) applyRequest(req nav.Request) {
	m.navigate(req.Target, req.Param)
}

func (m model) handleOpenResult(msg openResultMsg) (model, tea.Cmd) {
	if msg.err == nil {
		m.record(levelInfo, "open %s", msg.url)
		return m, m.showToast("Abriendo " + msg.url)
	}
	m.record(levelError, "open %s: %v", msg.url, msg.err)
	if errors.Is(msg.err, launcher.ErrUnsupportedURL) {
		m.status = "Enlace no soportado: " + msg.url
		return m, nil
	}
	m.status = "Error al abrir el enlace: " + msg.err.Error()
	return m, nil
}

func (m model) handleCatalogReload(msg CatalogReload) (model, tea.Cmd) {
	if msg.Err != nil {
		m.record(levelError, "catalog reload: %v", msg.Err)
		m.status = "Error al recargar el catálogo: " + msg.Err.Error()
		return m, m.waitCatalogReload()
	}
	if msg.Catalog == nil {
		return m, m.waitCatalogReload()
	}
	m.catalog = msg.Catalog
	m.chat.SetCatalog(msg.Catalog)
	m.tools.SetItems(toolItems(msg.Catalog))
	for view := range m.cursors {
		m.cursors[view] = clampIndex(m.cursors[view], m.itemCount(view))
	}
	if v, ok := m.overlays.CurrentlyPlaying(); ok {
		if fresh, err := msg.Catalog.Video(v.ID); err == nil {
			m.overlays.PlayVideo(fresh)
		}
	}
	m.studioToolID = ""
	m.syncStudio()
	m.record(levelInfo, "catalog reloaded")
	return m, batchCmd(m.showToast("Catálogo actualizado"), m.waitCatalogReload())
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
