// Package tui is the terminal front end of the portal: a Bubble Tea program
// that renders the active view, the overlays stacked above it and the Nemi
// chat widget.
package tui

import (
	"fmt"
	"log"
	"time"

	clipboard "github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/chat"
	"github.com/SimoKiihamaki/cdaportal/internal/config"
	"github.com/SimoKiihamaki/cdaportal/internal/launcher"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

// Opener launches an external URL.
type Opener interface {
	Open(rawURL string) error
}

// CatalogReload is delivered by the catalog watcher after each reload.
type CatalogReload struct {
	Catalog *catalog.Catalog
	Err     error
}

// Options configures New. Zero values select the production defaults.
type Options struct {
	Config    config.Config
	Catalog   *catalog.Catalog
	Keyboard  *nav.Keyboard
	Opener    Opener
	Clipboard func(string) error
	Persist   func(config.Config) error
	Reloads   <-chan CatalogReload
	// SessionLog enables the per-session journal under the config directory.
	SessionLog bool
	// DetectDark resolves the "auto" theme; nil asks the terminal.
	DetectDark func() bool
}

type toast struct {
	message string
	seq     int
}

type model struct {
	cfg     config.Config
	catalog *catalog.Catalog
	keys    KeyMap
	theme   theme
	md      *markdownCache

	nav      *nav.Controller
	overlays *nav.Overlays
	keyboard *nav.Keyboard
	shortcut *nav.ShortcutListener
	chat     *chat.Assistant

	opener  Opener
	copy    func(string) error
	saver   *configSaver
	journal *sessionLog
	scroll  *scrollAnimator
	reloads <-chan CatalogReload

	width   int
	height  int
	body    viewport.Model
	cursors map[nav.ViewID]int

	// Search overlay
	searchInput  textinput.Model
	searchCursor int

	// Video overlay
	videoPane viewport.Model
	quiz      quizState

	// Chat widget
	chatInput  textinput.Model
	chatCursor int

	// Nemi Studio
	studioToolID  string
	studioFields  []textinput.Model
	studioContext textarea.Model
	studioFocus   int

	// EduTools
	tools list.Model

	showHelp bool
	status   string
	toast    *toast
	toastSeq int
}

// New builds the root model and mounts the search shortcut on the keyboard.
// Call Shutdown when the program exits.
func New(opts Options) model {
	cfg := opts.Config
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	kb := opts.Keyboard
	if kb == nil {
		kb = nav.NewKeyboard()
	}

	scroll := newScrollAnimator(cfg.SmoothScrollEnabled())
	navOpts := []nav.Option{nav.WithScroller(scroll)}
	if cfg.UI.RetainViewParams {
		navOpts = append(navOpts, nav.WithRetainedChannels())
	}
	overlays := nav.NewOverlays()
	shortcut := nav.NewShortcutListener(overlays)
	shortcut.Mount(kb)

	m := model{
		cfg:      cfg,
		catalog:  cat,
		keys:     DefaultKeyMap(),
		theme:    newTheme(resolveDark(cfg.Theme, opts.DetectDark)),
		md:       newMarkdownCache(),
		nav:      nav.NewController(navOpts...),
		overlays: overlays,
		keyboard: kb,
		shortcut: shortcut,
		chat:     chat.New(cat, cfg.ChatHistory()),
		opener:   opts.Opener,
		copy:     opts.Clipboard,
		scroll:   scroll,
		reloads:  opts.Reloads,
		width:    100,
		height:   32,
		cursors:  make(map[nav.ViewID]int),
	}
	if m.opener == nil {
		m.opener = launcher.New(cfg.OpenCommand)
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}
	persist := opts.Persist
	if persist == nil {
		persist = config.Save
	}
	m.saver = newConfigSaver(persist)

	if opts.SessionLog {
		journal, err := openSessionLog(cfg, time.Now)
		if err != nil {
			log.Printf("tui: session log unavailable: %v", err)
			m.status = "Bitácora no disponible: " + err.Error()
		}
		m.journal = journal
	}

	m.body = viewport.New(m.width, m.bodyHeight())
	m.videoPane = viewport.New(m.width-4, m.bodyHeight())

	m.searchInput = mkInput("Buscar webinars, artículos, herramientas o agentes…", "", 60)
	m.chatInput = mkInput("Escribe tu pregunta para Nemi…", "", 60)
	m.studioContext = textarea.New()
	m.studioContext.Placeholder = "Contexto adicional (grupo, nivel, necesidades)…"
	m.studioContext.SetWidth(60)
	m.studioContext.SetHeight(4)
	m.studioFocus = -1

	m.tools = newToolsList(cat, m.theme, m.width, m.bodyHeight())
	m.syncStudio()
	m.body.SetContent(renderBody(m))
	return m
}

func mkInput(placeholder, value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Width = width
	return ti
}

func (m model) Init() tea.Cmd {
	return m.waitCatalogReload()
}

// Shutdown unmounts the search shortcut and closes the session journal.
func (m model) Shutdown() {
	m.shortcut.Unmount()
	m.journal.close("quit")
}

const chromeHeight = 6

func (m model) bodyHeight() int {
	h := m.height - chromeHeight
	if h < 5 {
		h = 5
	}
	return h
}

// record writes a journal line; a failing journal is reported once.
func (m *model) record(level journalLevel, format string, args ...any) {
	if err := m.journal.event(level, format, args...); err != nil {
		m.status = "Error en la bitácora: " + err.Error()
	}
}

func (m *model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}
