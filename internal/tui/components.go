package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// -----------------------------------------------------------------------------
// StepStatus marks an episode's position relative to the one playing
// -----------------------------------------------------------------------------

type StepStatus int

const (
	StepPending StepStatus = iota
	StepActive
	StepComplete
)

// -----------------------------------------------------------------------------
// Stepper renders a horizontal series pipeline
// -----------------------------------------------------------------------------

type StepperStep struct {
	Label  string
	Status StepStatus
}

type Stepper struct {
	Steps     []StepperStep
	Connector string
	styles    styles
}

func NewStepper(s styles, steps []StepperStep) Stepper {
	return Stepper{
		Steps:     steps,
		Connector: " -> ",
		styles:    s,
	}
}

func (s Stepper) Render() string {
	if len(s.Steps) == 0 {
		return ""
	}

	parts := make([]string, 0, len(s.Steps)*2-1)
	for i, step := range s.Steps {
		label := s.styleForStatus(step.Status).Render(s.iconForStatus(step.Status) + " " + step.Label)
		parts = append(parts, label)
		if i < len(s.Steps)-1 {
			parts = append(parts, s.styles.divider.Render(s.Connector))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (s Stepper) iconForStatus(status StepStatus) string {
	switch status {
	case StepComplete:
		return "✓"
	case StepActive:
		return "●"
	default:
		return "○"
	}
}

func (s Stepper) styleForStatus(status StepStatus) lipgloss.Style {
	switch status {
	case StepComplete:
		return s.styles.stepDone
	case StepActive:
		return s.styles.stepActive
	default:
		return s.styles.stepPending
	}
}

// -----------------------------------------------------------------------------
// BorderedBox renders a card with an optional title
// -----------------------------------------------------------------------------

type BorderedBox struct {
	Title   string
	Content string
	Width   int
	Focused bool
	styles  styles
}

func NewBorderedBox(s styles, title, content string) BorderedBox {
	return BorderedBox{Title: title, Content: content, styles: s}
}

func (b BorderedBox) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	if b.Focused {
		style = style.BorderForeground(b.styles.palette.accent)
	} else {
		style = style.BorderForeground(b.styles.palette.border)
	}
	if b.Width > 0 {
		style = style.Width(b.Width)
	}

	content := b.Content
	if b.Title != "" {
		content = b.styles.sectionTitle.UnsetMarginTop().Render(b.Title) + "\n" + content
	}
	return style.Render(content)
}

// -----------------------------------------------------------------------------
// SplitPane renders two panes side by side
// -----------------------------------------------------------------------------

type SplitPane struct {
	Left      string
	Right     string
	LeftRatio float64 // share of the width given to the left pane
	Divider   string
	styles    styles
}

func NewSplitPane(s styles, left, right string, leftRatio float64) SplitPane {
	if leftRatio <= 0 || leftRatio >= 1 {
		leftRatio = 0.5
	}
	return SplitPane{
		Left:      left,
		Right:     right,
		LeftRatio: leftRatio,
		Divider:   " │ ",
		styles:    s,
	}
}

// Widths returns the left and right pane widths for totalWidth.
func (s SplitPane) Widths(totalWidth int) (int, int) {
	if totalWidth <= 0 {
		totalWidth = 80
	}
	available := totalWidth - lipgloss.Width(s.Divider)
	if available < 20 {
		available = 20
	}
	left := int(float64(available) * s.LeftRatio)
	right := available - left
	if left < 10 {
		left = 10
	}
	if right < 10 {
		right = 10
	}
	return left, right
}

func (s SplitPane) Render(totalWidth int) string {
	leftWidth, rightWidth := s.Widths(totalWidth)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(s.Left),
		s.styles.divider.Render(s.Divider),
		lipgloss.NewStyle().Width(rightWidth).Render(s.Right),
	)
}

// -----------------------------------------------------------------------------
// PowerlineBar renders the header strip
// -----------------------------------------------------------------------------

type PowerlineSegment struct {
	Text  string
	Style lipgloss.Style
}

type PowerlineBar struct {
	Segments  []PowerlineSegment
	Separator string
}

func NewPowerlineBar(segments []PowerlineSegment) PowerlineBar {
	return PowerlineBar{Segments: segments, Separator: " · "}
}

// RenderFullWidth pads the bar to width; segments that do not fit are dropped
// from the right.
func (p PowerlineBar) RenderFullWidth(width int) string {
	var parts []string
	used := 0
	for _, seg := range p.Segments {
		if seg.Text == "" {
			continue
		}
		rendered := seg.Style.Render(seg.Text)
		w := lipgloss.Width(rendered)
		if len(parts) > 0 {
			w += lipgloss.Width(p.Separator)
		}
		if width > 0 && used+w > width {
			break
		}
		parts = append(parts, rendered)
		used += w
	}
	content := strings.Join(parts, p.Separator)
	if width > used {
		content += strings.Repeat(" ", width-used)
	}
	return content
}

// -----------------------------------------------------------------------------
// ToggleGroup renders a labeled set of mutually exclusive options
// -----------------------------------------------------------------------------

type ToggleOption struct {
	Label    string
	Value    string
	Selected bool
}

type ToggleGroup struct {
	Label   string
	Options []ToggleOption
	Focused bool
	styles  styles
}

func NewToggleGroup(s styles, label string, options []ToggleOption) ToggleGroup {
	return ToggleGroup{Label: label, Options: options, styles: s}
}

func (t ToggleGroup) Render() string {
	parts := make([]string, 0, len(t.Options))
	for _, opt := range t.Options {
		if opt.Selected {
			parts = append(parts, t.styles.selected.Render("["+opt.Label+"]"))
			continue
		}
		parts = append(parts, t.styles.tabInactive.Render(opt.Label))
	}

	result := strings.Join(parts, "  ")
	if t.Label != "" {
		result = t.Label + ": " + result
	}
	if t.Focused {
		return t.styles.focus.Render(result)
	}
	return result
}

// -----------------------------------------------------------------------------
// StatusIndicator renders a short verdict with an icon
// -----------------------------------------------------------------------------

type StatusIndicator struct {
	Label  string
	Status string // "ok", "error", "warn", "info"
	styles styles
}

func (s StatusIndicator) Render() string {
	var icon string
	var style lipgloss.Style

	switch s.Status {
	case "ok":
		icon, style = "✓", s.styles.ok
	case "error":
		icon, style = "✗", s.styles.err
	case "warn":
		icon, style = "⚠", s.styles.warn
	default:
		icon, style = "●", s.styles.statusInfo
	}
	return style.Render(fmt.Sprintf("%s %s", icon, s.Label))
}

// truncate cuts s to width terminal cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
