package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title        lipgloss.Style
	tabActive    lipgloss.Style
	tabInactive  lipgloss.Style
	sectionTitle lipgloss.Style
	help         lipgloss.Style
	muted        lipgloss.Style
	accent       lipgloss.Style
	selected     lipgloss.Style
	focus        lipgloss.Style
	ok           lipgloss.Style
	warn         lipgloss.Style
	err          lipgloss.Style
	border       lipgloss.Style
	overlay      lipgloss.Style
	chatBox      lipgloss.Style
	chatUser     lipgloss.Style
	chatBot      lipgloss.Style
	helpBox      lipgloss.Style
	helpBoxTitle lipgloss.Style
	helpKey      lipgloss.Style
	helpLabel    lipgloss.Style
	footer       lipgloss.Style
	statusInfo   lipgloss.Style
	statusOK     lipgloss.Style
	statusWarn   lipgloss.Style
	statusErr    lipgloss.Style
	stepDone     lipgloss.Style
	stepActive   lipgloss.Style
	stepPending  lipgloss.Style
	divider      lipgloss.Style

	palette palette
}

func newStyles(p palette) styles {
	return styles{
		title:        lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		tabActive:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.accent),
		tabInactive:  lipgloss.NewStyle().Faint(true),
		sectionTitle: lipgloss.NewStyle().Bold(true).MarginTop(1).Foreground(p.accent2),
		help:         lipgloss.NewStyle().Faint(true),
		muted:        lipgloss.NewStyle().Foreground(p.muted),
		accent:       lipgloss.NewStyle().Foreground(p.accent),
		selected:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		focus:        lipgloss.NewStyle().Background(p.focusBg),
		ok:           lipgloss.NewStyle().Foreground(p.ok),
		warn:         lipgloss.NewStyle().Foreground(p.warn),
		err:          lipgloss.NewStyle().Foreground(p.err),
		border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		overlay:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.accent).Padding(0, 1),
		chatBox:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent2).Padding(0, 1),
		chatUser:     lipgloss.NewStyle().Bold(true).Foreground(p.accent2),
		chatBot:      lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		helpBox:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		helpBoxTitle: lipgloss.NewStyle().Bold(true).Underline(true),
		helpKey:      lipgloss.NewStyle().Bold(true).Foreground(p.accent2),
		helpLabel:    lipgloss.NewStyle().Foreground(p.text),
		footer:       lipgloss.NewStyle().Foreground(p.muted).BorderTop(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(p.border),
		statusInfo:   lipgloss.NewStyle().Foreground(p.accent2),
		statusOK:     lipgloss.NewStyle().Foreground(p.ok).Bold(true),
		statusWarn:   lipgloss.NewStyle().Foreground(p.warn).Bold(true),
		statusErr:    lipgloss.NewStyle().Foreground(p.err).Bold(true),
		stepDone:     lipgloss.NewStyle().Foreground(p.ok),
		stepActive:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		stepPending:  lipgloss.NewStyle().Faint(true),
		divider:      lipgloss.NewStyle().Foreground(p.border),
		palette:      p,
	}
}
