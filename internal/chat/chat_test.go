package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

func TestNewAssistantGreetsAndStartsClosed(t *testing.T) {
	a := New(catalog.Default(), 0)
	assert.False(t, a.IsOpen())

	msgs := a.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleAssistant, msgs[0].Role)
	assert.NotEmpty(t, msgs[0].ID)
}

func TestToggleOwnsVisualState(t *testing.T) {
	a := New(catalog.Default(), 0)
	a.Toggle()
	assert.True(t, a.IsOpen())
	a.Toggle()
	assert.False(t, a.IsOpen())
	a.Open()
	a.Open()
	assert.True(t, a.IsOpen())
	a.Close()
	assert.False(t, a.IsOpen())
}

func TestSendIgnoresBlankInput(t *testing.T) {
	a := New(catalog.Default(), 0)
	_, ok := a.Send("   ")
	assert.False(t, ok)
	assert.Len(t, a.Messages(), 1)
}

func TestReplySuggestsCategoryNavigation(t *testing.T) {
	a := New(catalog.Default(), 0)
	reply, ok := a.Send("Quiero mejorar mi didáctica")
	require.True(t, ok)

	require.NotEmpty(t, reply.Actions)
	first := reply.Actions[0]
	assert.Equal(t, ActionNavigate, first.Kind)
	assert.Equal(t, nav.Request{Target: nav.Webinars, Param: "didactics"}, first.Request)
}

func TestReplySuggestsVideosAndAgents(t *testing.T) {
	a := New(catalog.Default(), 0)
	reply, ok := a.Send("rúbricas")
	require.True(t, ok)

	var playedRubrics, agents bool
	for _, act := range reply.Actions {
		if act.Kind == ActionPlayVideo && act.VideoID == "rubrics-101" {
			playedRubrics = true
		}
		if act.Kind == ActionNavigate && act.Request.Target == nav.Nemi {
			agents = true
		}
	}
	assert.True(t, playedRubrics)
	assert.True(t, agents)
	assert.LessOrEqual(t, len(reply.Actions), MaxSuggestions)
}

func TestReplySplitsQuestionIntoWords(t *testing.T) {
	a := New(catalog.Default(), 0)
	reply, ok := a.Send("¿Tienes algo sobre evaluación formativa para mis cursos?")
	require.True(t, ok)

	var ids []string
	for _, act := range reply.Actions {
		if act.Kind == ActionPlayVideo {
			ids = append(ids, act.VideoID)
		}
	}
	assert.Contains(t, ids, "flipped-03")
}

func TestReplyWithoutMatches(t *testing.T) {
	a := New(catalog.Default(), 0)
	reply, ok := a.Send("xyzzy")
	require.True(t, ok)
	assert.Empty(t, reply.Actions)
	assert.Contains(t, reply.Text, "No encontré")
}

func TestHistoryIsBounded(t *testing.T) {
	a := New(catalog.Default(), 3)
	a.Send("uno")
	a.Send("dos")

	msgs := a.Messages()
	require.Len(t, msgs, 3)
	last, ok := a.Last()
	require.True(t, ok)
	assert.Equal(t, RoleAssistant, last.Role)
	assert.Equal(t, "dos", msgs[1].Text)
}

func TestStudioToolSuggestion(t *testing.T) {
	a := New(catalog.Default(), 0)
	reply, ok := a.Send("necesito el planeador de sesión")
	require.True(t, ok)

	found := false
	for _, act := range reply.Actions {
		if act.Request == (nav.Request{Target: nav.Studio, Param: "lesson-planner"}) {
			found = true
		}
	}
	assert.True(t, found)
}
