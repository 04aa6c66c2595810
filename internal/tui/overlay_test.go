package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

func TestVideoOverlayWalksSeries(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.playVideo(mustVideo(t, m, "flipped-01"))

	m, _ = press(t, m, runeKey('n'))
	if v, _ := m.overlays.CurrentlyPlaying(); v.ID != "flipped-02" {
		t.Fatalf("n should play the next episode, got %s", v.ID)
	}
	m, _ = press(t, m, runeKey('p'))
	if v, _ := m.overlays.CurrentlyPlaying(); v.ID != "flipped-01" {
		t.Fatalf("p should play the previous episode, got %s", v.ID)
	}
	m, _ = press(t, m, runeKey('p'))
	if v, _ := m.overlays.CurrentlyPlaying(); v.ID != "flipped-01" {
		t.Fatalf("p on the first episode should keep it playing, got %s", v.ID)
	}
	if !strings.Contains(m.status, "primer episodio") {
		t.Fatalf("expected first-episode status, got %q", m.status)
	}
	if got := m.cfg.Watched["flipped-01"].Plays; got != 2 {
		t.Fatalf("expected 2 plays of flipped-01, got %d", got)
	}
}

func TestVideoOverlayStandaloneHasNoSeries(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.playVideo(mustVideo(t, m, "genai-classroom"))
	m, _ = press(t, m, runeKey('n'))
	if !strings.Contains(m.status, "serie") {
		t.Fatalf("expected no-series status, got %q", m.status)
	}
}

func TestVideoOverlayCategoryKeepsOverlayOpen(t *testing.T) {
	m, _ := newTestModel(t, nil)
	v := mustVideo(t, m, "rubrics-101")
	m.playVideo(v)

	m, _ = press(t, m, runeKey('c'))
	if got := m.nav.CurrentView(); got != nav.Webinars {
		t.Fatalf("c should navigate to webinars, got %s", got)
	}
	if got := m.nav.Category(); got != v.Category {
		t.Fatalf("category = %q, want %q", got, v.Category)
	}
	if _, ok := m.overlays.CurrentlyPlaying(); !ok {
		t.Fatalf("navigation must not close the video overlay")
	}

	m, _ = press(t, m, keyOf(tea.KeyEsc))
	if _, ok := m.overlays.CurrentlyPlaying(); ok {
		t.Fatalf("esc should stop the video")
	}
}

func TestVideoOverlayLinks(t *testing.T) {
	m, h := newTestModel(t, nil)
	v := mustVideo(t, m, "udl-basics")
	m.playVideo(v)

	m, _ = press(t, m, runeKey('y'))
	if len(h.clipboard.texts) != 1 || h.clipboard.texts[0] != v.URL {
		t.Fatalf("y should copy the video URL, got %v", h.clipboard.texts)
	}

	_, cmd := press(t, m, runeKey('o'))
	if cmd == nil {
		t.Fatalf("o should open the video")
	}
	cmd()
	if len(h.opener.urls) != 1 || h.opener.urls[0] != v.URL {
		t.Fatalf("opener got %v", h.opener.urls)
	}
}

func TestQuizRecordsBestScore(t *testing.T) {
	m, h := newTestModel(t, nil)
	v := mustVideo(t, m, "rubrics-101")
	m.playVideo(v)
	saves := h.saves

	m, cmd := press(t, m, runeKey('1'))
	if got, ok := m.cfg.QuizScores[v.ID]; !ok || got != 1 {
		t.Fatalf("expected best score 1, got %d (ok=%v)", got, ok)
	}
	if cmd == nil {
		t.Fatalf("a new best score should be persisted")
	}
	if _, ok := cmd().(tea.BatchMsg); !ok {
		t.Fatalf("expected toast and save to be batched")
	}
	if h.saves != saves {
		t.Fatalf("save runs from the batched command, not inline")
	}

	m, cmd = press(t, m, runeKey('2'))
	if cmd != nil {
		t.Fatalf("answers lock in once given")
	}
	if !m.quiz.recorded || m.quiz.answers[0] != 0 {
		t.Fatalf("unexpected quiz state %+v", m.quiz)
	}
}

func TestQuizAnswerAcrossQuestions(t *testing.T) {
	m, _ := newTestModel(t, nil)
	v := mustVideo(t, m, "flipped-01")
	m.playVideo(v)
	questions := v.Pedagogical.Quiz
	if len(questions) < 2 {
		t.Skip("flipped-01 needs at least two questions")
	}

	for i, q := range questions {
		m, _ = press(t, m, runeKey(rune('1'+q.CorrectIndex)))
		if i < len(questions)-1 {
			if m.quiz.recorded {
				t.Fatalf("score recorded before every question was answered")
			}
			m, _ = press(t, m, keyOf(tea.KeyTab))
		}
	}
	if got := m.cfg.QuizScores[v.ID]; got != len(questions) {
		t.Fatalf("expected full score %d, got %d", len(questions), got)
	}
}

func TestSearchSelectionPlaysVideoAndCloses(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, keyOf(tea.KeyCtrlK))
	m, _ = press(t, m, textKey("rúbricas"))

	hits := searchHits(m)
	if len(hits) == 0 || hits[0].group != "Webinars" {
		t.Fatalf("expected webinar hits first, got %+v", hits)
	}
	m, _ = press(t, m, keyOf(tea.KeyEnter))
	if m.overlays.IsSearchOpen() {
		t.Fatalf("selecting a hit should close search")
	}
	if _, ok := m.overlays.CurrentlyPlaying(); !ok {
		t.Fatalf("selecting a webinar should play it")
	}
}

func TestSearchPostHitOpensBlogAtPost(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, keyOf(tea.KeyCtrlK))
	m, _ = press(t, m, textKey("política"))

	hits := searchHits(m)
	target := -1
	for i, hit := range hits {
		if hit.group == "Artículos" {
			target = i
			break
		}
	}
	if target < 0 {
		t.Fatalf("expected an article hit, got %+v", hits)
	}
	for i := 0; i < target; i++ {
		m, _ = press(t, m, keyOf(tea.KeyDown))
	}
	m, _ = press(t, m, keyOf(tea.KeyEnter))

	if got := m.nav.CurrentView(); got != nav.Blog {
		t.Fatalf("article hit should open the blog, got %s", got)
	}
	want := indexOfPost(m.catalog.Posts(), "post-ai-policy")
	if m.cursors[nav.Blog] != want {
		t.Fatalf("blog cursor = %d, want %d", m.cursors[nav.Blog], want)
	}
}

func TestChatSuggestionNavigates(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, keyOf(tea.KeyCtrlN))
	if !m.chat.IsOpen() || !m.chatInput.Focused() {
		t.Fatalf("ctrl+n should open chat with the input focused")
	}

	m, _ = press(t, m, textKey("didáctica"))
	m, _ = press(t, m, keyOf(tea.KeyEnter))
	if m.chatInput.Value() != "" {
		t.Fatalf("sending should clear the input")
	}
	actions := m.pendingActions()
	if len(actions) == 0 {
		t.Fatalf("expected suggestions for didáctica")
	}

	m, _ = press(t, m, keyOf(tea.KeyEnter))
	if got := m.nav.CurrentView(); got != nav.Webinars {
		t.Fatalf("suggestion should open webinars, got %s", got)
	}
	if got := m.nav.Category(); got != "didactics" {
		t.Fatalf("category = %q, want didactics", got)
	}
	if !m.chat.IsOpen() {
		t.Fatalf("chat stays open after running a suggestion")
	}

	m, _ = press(t, m, keyOf(tea.KeyEsc))
	if m.chat.IsOpen() {
		t.Fatalf("esc should close chat")
	}
}

func TestStudioComposeCopiesPrompt(t *testing.T) {
	m, h := newTestModel(t, nil)
	m.navigate(nav.Studio, "rubric-builder")
	if m.studioToolID != "rubric-builder" || len(m.studioFields) != 2 {
		t.Fatalf("unexpected studio form %q with %d fields", m.studioToolID, len(m.studioFields))
	}

	m, _ = press(t, m, keyOf(tea.KeyTab))
	if m.studioFocus != 0 {
		t.Fatalf("tab should focus the first field, got %d", m.studioFocus)
	}
	m, cmd := press(t, m, textKey("ensayo"))
	if isQuit(cmd) {
		t.Fatalf("typing must not quit")
	}
	m, _ = press(t, m, keyOf(tea.KeyTab))
	m, _ = press(t, m, textKey("claridad y argumentación"))
	m, _ = press(t, m, keyOf(tea.KeyCtrlS))

	if len(h.clipboard.texts) != 1 {
		t.Fatalf("expected one copied prompt, got %v", h.clipboard.texts)
	}
	prompt := h.clipboard.texts[0]
	for _, want := range []string{`"ensayo"`, "claridad y argumentación"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestStudioTypingShieldsGlobalKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.navigate(nav.Studio, "")
	m, _ = press(t, m, keyOf(tea.KeyTab))
	if !m.IsTyping() {
		t.Fatalf("a focused field should count as typing")
	}

	m, cmd := press(t, m, runeKey('q'))
	if isQuit(cmd) {
		t.Fatalf("q in a field must not quit")
	}
	if got := m.studioFields[0].Value(); got != "q" {
		t.Fatalf("expected q typed into the field, got %q", got)
	}

	m, _ = press(t, m, keyOf(tea.KeyEsc))
	if m.IsTyping() {
		t.Fatalf("esc should leave the field")
	}
	_, cmd = press(t, m, runeKey('q'))
	if !isQuit(cmd) {
		t.Fatalf("q outside a field should quit")
	}
}

func TestStudioUnknownToolFallsBack(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.navigate(nav.Studio, "does-not-exist")
	first := m.catalog.StudioTools()[0]
	if m.studioToolID != first.ID {
		t.Fatalf("expected fallback to %s, got %s", first.ID, m.studioToolID)
	}
	if !strings.Contains(m.status, "desconocida") {
		t.Fatalf("expected unknown-tool status, got %q", m.status)
	}
}

func TestStudioPickerCyclesThroughChannel(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.navigate(nav.Studio, "")
	tools := m.catalog.StudioTools()

	m, _ = press(t, m, keyOf(tea.KeyRight))
	if got := m.nav.StudioTool(); got != tools[1].ID {
		t.Fatalf("studio channel = %q, want %q", got, tools[1].ID)
	}
	if m.studioToolID != tools[1].ID {
		t.Fatalf("form should follow the channel, got %q", m.studioToolID)
	}
}
