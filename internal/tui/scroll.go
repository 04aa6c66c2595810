package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

const scrollFPS = 60

type scrollFrameMsg struct{ gen int }

// scrollAnimator is the nav.Scroller of the body viewport. Navigation only
// records the request; apply performs it once the new body is in place, either
// as a jump or as a spring animation toward line zero.
type scrollAnimator struct {
	smooth   bool
	pending  bool
	behavior nav.ScrollBehavior
	spring   harmonica.Spring
	active   bool
	gen      int
	pos      float64
	vel      float64
	requests int
}

func newScrollAnimator(smooth bool) *scrollAnimator {
	return &scrollAnimator{
		smooth: smooth,
		spring: harmonica.NewSpring(harmonica.FPS(scrollFPS), 6.0, 1.0),
	}
}

func (s *scrollAnimator) ScrollToTop(b nav.ScrollBehavior) {
	s.pending = true
	s.behavior = b
	s.requests++
}

func (s *scrollAnimator) apply(vp *viewport.Model) tea.Cmd {
	if !s.pending {
		return nil
	}
	s.pending = false
	s.gen++
	if !s.smooth || s.behavior == nav.ScrollInstant || vp.YOffset == 0 {
		s.active = false
		vp.GotoTop()
		return nil
	}
	s.active = true
	s.pos = float64(vp.YOffset)
	s.vel = 0
	return s.tick()
}

func (s *scrollAnimator) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(time.Second/scrollFPS, func(time.Time) tea.Msg {
		return scrollFrameMsg{gen: gen}
	})
}

func (s *scrollAnimator) frame(msg scrollFrameMsg, vp *viewport.Model) tea.Cmd {
	if !s.active || msg.gen != s.gen {
		return nil
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, 0)
	if s.pos < 0.5 {
		s.active = false
		vp.GotoTop()
		return nil
	}
	vp.SetYOffset(int(math.Round(s.pos)))
	return s.tick()
}

// cancel stops a running animation; manual scrolling wins.
func (s *scrollAnimator) cancel() {
	if s.active {
		s.active = false
		s.gen++
	}
}
