package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/SimoKiihamaki/cdaportal/internal/config"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

func TestTruncate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hola", 0, ""},
		{"hola", 10, "hola"},
		{"evaluación", 6, "evalu…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestStepperMarksProgress(t *testing.T) {
	t.Parallel()
	s := newTheme(true).styles
	out := NewStepper(s, []StepperStep{
		{Label: "Ep. 1", Status: StepComplete},
		{Label: "Ep. 2", Status: StepActive},
		{Label: "Ep. 3", Status: StepPending},
	}).Render()
	for _, label := range []string{"Ep. 1", "Ep. 2", "Ep. 3"} {
		if !strings.Contains(out, label) {
			t.Errorf("stepper output missing %q:\n%s", label, out)
		}
	}
}

func TestSplitPaneWidths(t *testing.T) {
	t.Parallel()
	pane := NewSplitPane(newTheme(true).styles, "a", "b", 0.34)
	left, right := pane.Widths(103)
	if left+right != 100 || left != 34 {
		t.Fatalf("Widths(103) = %d, %d; want 34, 66", left, right)
	}

	left, right = pane.Widths(12)
	if left != 10 {
		t.Fatalf("left pane should keep its minimum, got %d", left)
	}
	if right < 10 {
		t.Fatalf("right pane below minimum: %d", right)
	}
}

func TestPowerlineBarDropsSegmentsThatDoNotFit(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", 60)
	out := NewPowerlineBar([]PowerlineSegment{
		{Text: "CDA"},
		{Text: "Inicio"},
		{Text: long},
	}).RenderFullWidth(30)
	if !strings.Contains(out, "CDA") {
		t.Fatalf("first segment missing: %q", out)
	}
	if strings.Contains(out, long) {
		t.Fatalf("oversized segment should be dropped: %q", out)
	}
}

func tallViewport(offset int) viewport.Model {
	vp := viewport.New(40, 5)
	vp.SetContent(strings.Repeat("línea\n", 100))
	vp.SetYOffset(offset)
	return vp
}

func TestScrollAnimatorConvergesToTop(t *testing.T) {
	t.Parallel()
	vp := tallViewport(40)

	s := newScrollAnimator(true)
	s.ScrollToTop(nav.ScrollSmooth)
	if cmd := s.apply(&vp); cmd == nil || !s.active {
		t.Fatalf("smooth scroll should start ticking")
	}

	gen := s.gen
	for i := 0; i < 600 && s.active; i++ {
		s.frame(scrollFrameMsg{gen: gen}, &vp)
	}
	if s.active {
		t.Fatalf("animation should settle")
	}
	if vp.YOffset != 0 {
		t.Fatalf("expected offset 0, got %d", vp.YOffset)
	}
}

func TestScrollAnimatorIgnoresStaleFrames(t *testing.T) {
	t.Parallel()
	vp := tallViewport(30)

	s := newScrollAnimator(true)
	s.ScrollToTop(nav.ScrollSmooth)
	s.apply(&vp)
	stale := s.gen
	s.cancel()

	if cmd := s.frame(scrollFrameMsg{gen: stale}, &vp); cmd != nil {
		t.Fatalf("stale frame should not schedule another tick")
	}
	if vp.YOffset != 30 {
		t.Fatalf("cancelled animation moved the viewport to %d", vp.YOffset)
	}
}

func TestScrollAnimatorJumpsWhenInstant(t *testing.T) {
	t.Parallel()
	vp := tallViewport(30)

	s := newScrollAnimator(true)
	s.ScrollToTop(nav.ScrollInstant)
	if cmd := s.apply(&vp); cmd != nil {
		t.Fatalf("instant scroll should not animate")
	}
	if vp.YOffset != 0 || s.requests != 1 {
		t.Fatalf("offset %d requests %d", vp.YOffset, s.requests)
	}
	if cmd := s.apply(&vp); cmd != nil {
		t.Fatalf("a request is applied once")
	}
}

type bufferCloser struct {
	strings.Builder
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

type failingWriter struct{ closed bool }

func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (f *failingWriter) Close() error {
	f.closed = true
	return nil
}

func TestSessionLogFormat(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	buf := &bufferCloser{}
	j := newSessionLog(buf, func() time.Time { return at })

	if err := j.event(levelInfo, "navigate %s param=%q\n", "webinars", "didactics"); err != nil {
		t.Fatalf("event: %v", err)
	}
	j.close("quit")

	want := "[2026-05-04T09:30:00Z] INFO: navigate webinars param=\"didactics\"\n" +
		"# session quit at 2026-05-04T09:30:00Z\n"
	if got := buf.String(); got != want {
		t.Fatalf("journal mismatch:\n got %q\nwant %q", got, want)
	}
	if !buf.closed {
		t.Fatalf("close should close the writer")
	}
	if err := j.event(levelWarn, "after close"); err != nil {
		t.Fatalf("closed journal should discard events, got %v", err)
	}
}

func TestSessionLogHonorsConfiguredLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level string
		want  []string
	}{
		{"DEBUG", []string{"INFO: play", "WARN: slow", "ERROR: open"}},
		{"INFO", []string{"INFO: play", "WARN: slow", "ERROR: open"}},
		{"WARNING", []string{"WARN: slow", "ERROR: open"}},
		{"ERROR", []string{"ERROR: open"}},
	}
	for _, tt := range tests {
		buf := &bufferCloser{}
		j := newSessionLog(buf, nil)
		j.min = journalLevel(tt.level)

		_ = j.event(levelInfo, "play")
		_ = j.event(levelWarn, "slow")
		_ = j.event(levelError, "open")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != len(tt.want) {
			t.Fatalf("level %s: got %d lines, want %d:\n%s", tt.level, len(lines), len(tt.want), buf.String())
		}
		for i, want := range tt.want {
			if !strings.Contains(lines[i], want) {
				t.Errorf("level %s line %d = %q, want %q", tt.level, i, lines[i], want)
			}
		}
	}
}

func TestSessionLogWriteFailureClosesJournal(t *testing.T) {
	t.Parallel()
	w := &failingWriter{}
	j := newSessionLog(w, nil)

	err := j.event(levelError, "boom")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
	if !w.closed {
		t.Fatalf("write failure should close the journal")
	}
	if err := j.event(levelInfo, "ignored"); err != nil {
		t.Fatalf("closed journal should discard events, got %v", err)
	}

	var nilJournal *sessionLog
	if err := nilJournal.event(levelInfo, "noop"); err != nil {
		t.Fatalf("nil journal should discard events, got %v", err)
	}
	nilJournal.close("quit")
}

func TestDisplayPathShortensHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	outside := filepath.Join(filepath.Dir(home), "elsewhere")
	tests := []struct {
		in   string
		want string
	}{
		{home, "~"},
		{filepath.Join(home, "logs", "a.log"), filepath.Join("~", "logs", "a.log")},
		{outside, outside},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := displayPath(tt.in); got != tt.want {
			t.Errorf("displayPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigSaverDropsSupersededSnapshots(t *testing.T) {
	t.Parallel()
	var saved []string
	s := newConfigSaver(func(c config.Config) error {
		saved = append(saved, c.Theme)
		return nil
	})

	older := config.Defaults()
	older.Theme = config.ThemeLight
	newer := config.Defaults()
	newer.Theme = config.ThemeDark

	first := s.command(older)
	second := s.command(newer)

	// The runtime may finish the newer command first.
	second()
	if msg, ok := first().(configSavedMsg); !ok || msg.err != nil {
		t.Fatalf("superseded save should report success, got %+v", msg)
	}
	if len(saved) != 1 || saved[0] != config.ThemeDark {
		t.Fatalf("only the newest snapshot should be written, got %v", saved)
	}

	third := s.command(older)
	third()
	if len(saved) != 2 || saved[1] != config.ThemeLight {
		t.Fatalf("a later snapshot should still be written, got %v", saved)
	}
}

func TestConfigSaverRetriesAfterFailure(t *testing.T) {
	t.Parallel()
	calls := 0
	s := newConfigSaver(func(config.Config) error {
		calls++
		if calls == 1 {
			return errors.New("read-only file system")
		}
		return nil
	})

	failed := s.command(config.Defaults())
	next := s.command(config.Defaults())
	if msg := failed().(configSavedMsg); msg.err == nil {
		t.Fatalf("expected the first save to fail")
	}
	// The failed write does not count as written, so the next one still runs.
	next()
	if calls != 2 {
		t.Fatalf("expected a second write attempt, got %d", calls)
	}
}
