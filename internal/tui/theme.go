package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/SimoKiihamaki/cdaportal/internal/config"
)

// palette holds the brand colors for one background.
type palette struct {
	accent  lipgloss.Color
	accent2 lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	ok      lipgloss.Color
	warn    lipgloss.Color
	err     lipgloss.Color
	focusBg lipgloss.Color
}

var (
	darkPalette = palette{
		accent:  lipgloss.Color("#F24405"),
		accent2: lipgloss.Color("#8BE9FD"),
		text:    lipgloss.Color("#F8F8F2"),
		muted:   lipgloss.Color("#8A8F98"),
		border:  lipgloss.Color("#44475A"),
		ok:      lipgloss.Color("#50FA7B"),
		warn:    lipgloss.Color("#F1FA8C"),
		err:     lipgloss.Color("#FF5555"),
		focusBg: lipgloss.Color("240"),
	}
	lightPalette = palette{
		accent:  lipgloss.Color("#C23603"),
		accent2: lipgloss.Color("#0B6E8A"),
		text:    lipgloss.Color("#1F2328"),
		muted:   lipgloss.Color("#6E7781"),
		border:  lipgloss.Color("#D0D7DE"),
		ok:      lipgloss.Color("#1A7F37"),
		warn:    lipgloss.Color("#9A6700"),
		err:     lipgloss.Color("#CF222E"),
		focusBg: lipgloss.Color("254"),
	}
)

// theme is the resolved dark/light mode and the styles derived from it.
type theme struct {
	dark bool
	styles
}

// resolveDark maps the configured theme to a concrete mode. "auto" asks the
// terminal for its background color.
func resolveDark(setting string, detect func() bool) bool {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case config.ThemeDark:
		return true
	case config.ThemeLight:
		return false
	default:
		if detect == nil {
			detect = termenv.HasDarkBackground
		}
		return detect()
	}
}

func newTheme(dark bool) theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return theme{dark: dark, styles: newStyles(p)}
}

func (t theme) name() string {
	if t.dark {
		return config.ThemeDark
	}
	return config.ThemeLight
}

// glamourStyle is the glamour standard style matching the mode.
func (t theme) glamourStyle() string {
	if t.dark {
		return "dark"
	}
	return "light"
}

func (t theme) toggled() theme {
	return newTheme(!t.dark)
}
