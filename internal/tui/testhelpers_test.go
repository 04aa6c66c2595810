package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/config"
	"github.com/SimoKiihamaki/cdaportal/internal/launcher"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

type fakeClipboard struct {
	texts []string
}

func (c *fakeClipboard) write(text string) error {
	c.texts = append(c.texts, text)
	return nil
}

type testHarness struct {
	opener    *recordingOpener
	clipboard *fakeClipboard
	saves     int
	keyboard  *nav.Keyboard
}

func newTestModel(t *testing.T, mutate func(*config.Config)) (model, *testHarness) {
	t.Helper()
	cfg := config.Defaults()
	smooth := false
	cfg.UI.SmoothScroll = &smooth
	cfg.Theme = config.ThemeDark
	if mutate != nil {
		mutate(&cfg)
	}

	h := &testHarness{
		opener:    &recordingOpener{},
		clipboard: &fakeClipboard{},
		keyboard:  nav.NewKeyboard(),
	}
	m := New(Options{
		Config:    cfg,
		Catalog:   catalog.Default(),
		Keyboard:  h.keyboard,
		Opener:    h.opener,
		Clipboard: h.clipboard.write,
		Persist: func(config.Config) error {
			h.saves++
			return nil
		},
		DetectDark: func() bool { return true },
	})
	t.Cleanup(m.Shutdown)
	m = m.handleResize(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, h
}

func press(t *testing.T, m model, msg tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", next)
	}
	return out, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func textKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func keyOf(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func mustVideo(t *testing.T, m model, id string) catalog.Video {
	t.Helper()
	v, err := m.catalog.Video(id)
	if err != nil {
		t.Fatalf("video %s: %v", id, err)
	}
	return v
}

var (
	errUnsupportedForTest = fmt.Errorf("open: %w", launcher.ErrUnsupportedURL)
	errReloadForTest      = errors.New("catalog: yaml: line 3: did not find expected key")
)
