package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/config"
)

type statusMsg struct{ note string }
type toastExpiredMsg struct{ seq int }
type configSavedMsg struct{ err error }
type openResultMsg struct {
	url string
	err error
}

func (m model) waitCatalogReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		reload, ok := <-ch
		if !ok {
			return nil
		}
		return reload
	}
}

// persistCmd saves a snapshot of cfg off the update loop.
func (m model) persistCmd() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	return m.saver.command(m.cfg.Clone())
}

// configSaver orders config writes. Bubble Tea runs commands concurrently, so
// each snapshot carries the generation it was taken at and a snapshot older
// than the last one written is dropped.
type configSaver struct {
	save func(config.Config) error

	// issued is only touched on the update loop.
	issued uint64

	mu      sync.Mutex
	written uint64
}

func newConfigSaver(save func(config.Config) error) *configSaver {
	if save == nil {
		return nil
	}
	return &configSaver{save: save}
}

func (s *configSaver) command(snapshot config.Config) tea.Cmd {
	s.issued++
	gen := s.issued
	return func() tea.Msg {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen <= s.written {
			return configSavedMsg{}
		}
		err := s.save(snapshot)
		if err == nil {
			s.written = gen
		}
		return configSavedMsg{err: err}
	}
}

// openCmd launches url off the update loop.
func (m model) openCmd(url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		return openResultMsg{url: url, err: opener.Open(url)}
	}
}

// showToast replaces the current toast and schedules its expiry.
func (m *model) showToast(message string) tea.Cmd {
	m.toastSeq++
	m.toast = &toast{message: message, seq: m.toastSeq}
	ttl := m.cfg.ToastTTL()
	if ttl <= 0 {
		ttl = config.DefaultToastTTLMs * time.Millisecond
	}
	seq := m.toastSeq
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func batchCmd(cmds ...tea.Cmd) tea.Cmd {
	var live []tea.Cmd
	for _, cmd := range cmds {
		if cmd != nil {
			live = append(live, cmd)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	default:
		return tea.Batch(live...)
	}
}
