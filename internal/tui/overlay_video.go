package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

// quizState tracks the self-assessment of the playing video.
type quizState struct {
	videoID  string
	question int
	answers  map[int]int
	recorded bool
}

func (q quizState) score(questions []catalog.QuizQuestion) int {
	score := 0
	for i, question := range questions {
		if chosen, ok := q.answers[i]; ok && question.Correct(chosen) {
			score++
		}
	}
	return score
}

// playVideo starts v in the overlay, replacing whatever was playing, and
// records the play in the config.
func (m *model) playVideo(v catalog.Video) tea.Cmd {
	m.overlays.PlayVideo(v)
	m.quiz = quizState{videoID: v.ID, answers: make(map[int]int)}
	m.videoPane.GotoTop()
	m.cfg.RecordPlay(v.ID, time.Now())
	m.record(levelInfo, "play %s", v.ID)
	return m.persistCmd()
}

func (m *model) handleVideoActions(actions []Action) (bool, tea.Cmd) {
	v, ok := m.overlays.CurrentlyPlaying()
	if !ok {
		return false, nil
	}
	for _, act := range actions {
		switch act {
		case ActCancel:
			m.overlays.StopVideo()
			m.record(levelInfo, "stop %s", v.ID)
			return true, nil
		case ActNextEpisode, ActPrevEpisode:
			return true, m.playAdjacent(v, act == ActNextEpisode)
		case ActShowCategory:
			m.navigate(nav.Webinars, v.Category)
			return true, nil
		case ActOpenLink:
			return true, m.openCmd(v.URL)
		case ActCopyLink:
			return true, m.copyText(v.URL, "Enlace del video copiado")
		case ActTabForward, ActTabBackward:
			m.stepQuestion(v, act == ActTabForward)
			return true, nil
		case ActNavigateUp:
			m.videoPane.LineUp(1)
			return true, nil
		case ActNavigateDown:
			m.videoPane.LineDown(1)
			return true, nil
		}
		if idx, ok := answerIndex(act); ok {
			return true, m.answerQuiz(v, idx)
		}
	}
	return false, nil
}

func (m *model) playAdjacent(v catalog.Video, forward bool) tea.Cmd {
	if v.Series == nil {
		m.status = "Este webinar no forma parte de una serie"
		return nil
	}
	delta := -1
	if forward {
		delta = 1
	}
	next, ok := m.catalog.Adjacent(v, delta)
	if !ok {
		if forward {
			m.status = "Es el último episodio de la serie"
		} else {
			m.status = "Es el primer episodio de la serie"
		}
		return nil
	}
	return m.playVideo(next)
}

func (m *model) stepQuestion(v catalog.Video, forward bool) {
	n := len(v.Pedagogical.Quiz)
	if n == 0 {
		return
	}
	if forward {
		m.quiz.question = (m.quiz.question + 1) % n
	} else {
		m.quiz.question = (m.quiz.question - 1 + n) % n
	}
}

// answerQuiz locks in an answer for the current question. Once every question
// is answered the score is kept if it beats the stored best.
func (m *model) answerQuiz(v catalog.Video, option int) tea.Cmd {
	questions := v.Pedagogical.Quiz
	q := m.quiz.question
	if q < 0 || q >= len(questions) || option >= len(questions[q].Options) {
		return nil
	}
	if m.quiz.answers == nil {
		m.quiz.answers = make(map[int]int)
	}
	if _, done := m.quiz.answers[q]; done {
		return nil
	}
	m.quiz.answers[q] = option
	m.record(levelInfo, "quiz %s q%d option=%d correct=%t", v.ID, q+1, option+1, questions[q].Correct(option))

	if len(m.quiz.answers) < len(questions) || m.quiz.recorded {
		return nil
	}
	m.quiz.recorded = true
	score := m.quiz.score(questions)
	msg := fmt.Sprintf("Resultado: %d/%d", score, len(questions))
	if m.cfg.RecordQuizScore(v.ID, score) {
		return batchCmd(m.showToast(msg+" · nuevo mejor resultado"), m.persistCmd())
	}
	return m.showToast(msg)
}

func renderVideoOverlay(m model, v catalog.Video, width int) string {
	t := m.theme
	header := t.title.Render("▶ "+v.Title) + "\n" +
		m.hint("Esc cerrar", "N/P episodio", "C categoría", "O abrir", "Y copiar", "1-4 responder", "Tab pregunta") + "\n"
	vp := m.videoPane
	vp.SetContent(renderVideoDetails(m, v, vp.Width-2))
	return t.overlay.Width(width - 2).Render(header + vp.View())
}

func renderVideoDetails(m model, v catalog.Video, width int) string {
	t := m.theme
	p := v.Pedagogical
	var b strings.Builder

	meta := []string{v.Duration, v.Instructor, m.catalog.CategoryName(v.Category)}
	if v.Date != "" {
		meta = append(meta, v.Date)
	}
	b.WriteString(t.muted.Render(strings.Join(meta, " · ")) + "\n")
	b.WriteString(t.accent.Render(v.URL) + "\n")
	if v.Description != "" {
		b.WriteString("\n" + v.Description + "\n")
	}

	if v.Series != nil {
		episodes := m.catalog.SeriesVideos(v.Series.ID)
		steps := make([]StepperStep, 0, len(episodes))
		status := StepComplete
		for i, ep := range episodes {
			s := status
			if ep.ID == v.ID {
				s = StepActive
				status = StepPending
			}
			steps = append(steps, StepperStep{Label: fmt.Sprintf("Ep. %d", i+1), Status: s})
		}
		b.WriteString(t.sectionTitle.Render("Serie: "+v.Series.Name) + "\n")
		b.WriteString(NewStepper(t.styles, steps).Render() + "\n")
	}

	if p.Purpose != "" {
		b.WriteString(t.sectionTitle.Render("Propósito") + "\n" + p.Purpose + "\n")
	}
	if p.AdultLearning != "" {
		b.WriteString(t.sectionTitle.Render("Impacto andragógico") + "\n" + p.AdultLearning + "\n")
	}
	if len(p.KeyPoints) > 0 {
		b.WriteString(t.sectionTitle.Render("Puntos clave") + "\n")
		for _, point := range p.KeyPoints {
			b.WriteString("• " + point + "\n")
		}
	}
	if content := m.md.render(p.Content, m.theme.glamourStyle(), width); content != "" {
		b.WriteString(t.sectionTitle.Render("Contenido") + "\n" + content + "\n")
	}

	if len(p.Quiz) > 0 {
		b.WriteString(renderQuiz(m, v))
	}

	if len(p.Resources) > 0 || p.Infographic != "" || p.Presentation != "" {
		b.WriteString(t.sectionTitle.Render("Recursos complementarios") + "\n")
		for _, r := range p.Resources {
			b.WriteString(t.accent.Render(resourceBadge(r.Type)) + " " + r.Title + " " + t.muted.Render(r.URL) + "\n")
		}
		if p.Infographic != "" {
			b.WriteString(t.accent.Render("[Infografía]") + " " + t.muted.Render(p.Infographic) + "\n")
		}
		if p.Presentation != "" {
			b.WriteString(t.accent.Render("[Presentación]") + " " + t.muted.Render(p.Presentation) + "\n")
		}
	}
	return b.String()
}

func renderQuiz(m model, v catalog.Video) string {
	t := m.theme
	questions := v.Pedagogical.Quiz
	idx := clampIndex(m.quiz.question, len(questions))
	q := questions[idx]

	var b strings.Builder
	b.WriteString(t.sectionTitle.Render(fmt.Sprintf("Autoevaluación · pregunta %d/%d", idx+1, len(questions))) + "\n")
	b.WriteString(q.Question + "\n")

	chosen, answered := -1, false
	if m.quiz.videoID == v.ID {
		chosen, answered = m.quiz.answers[idx]
	}
	for i, opt := range q.Options {
		line := fmt.Sprintf("  %d) %s", i+1, opt)
		switch {
		case answered && q.Correct(i):
			line = t.ok.Render(line)
		case answered && i == chosen:
			line = t.err.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if answered {
		verdict := StatusIndicator{Label: "Correcto", Status: "ok", styles: t.styles}
		if !q.Correct(chosen) {
			verdict = StatusIndicator{Label: "Incorrecto", Status: "error", styles: t.styles}
		}
		b.WriteString(verdict.Render() + "\n")
		if q.Insight != "" {
			b.WriteString(t.muted.Render(q.Insight) + "\n")
		}
	}
	if best, ok := m.cfg.QuizScores[v.ID]; ok {
		b.WriteString(t.muted.Render(fmt.Sprintf("Mejor resultado: %d/%d", best, len(questions))) + "\n")
	}
	return b.String()
}
