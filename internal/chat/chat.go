// Package chat implements the floating Nemi assistant. It owns only its own
// conversation and open/closed state; the actions it suggests are carried out
// by the caller through the navigation and overlay controllers.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

// DefaultHistory bounds the number of messages kept.
const DefaultHistory = 50

// MaxSuggestions is the cap on actions attached to a reply.
const MaxSuggestions = 3

const greeting = "¡Hola! Soy Nemi. Pregúntame por un tema y te recomiendo webinars, herramientas o agentes."

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ActionKind int

const (
	ActionPlayVideo ActionKind = iota
	ActionNavigate
)

// Action is a suggestion the user can accept from a reply.
type Action struct {
	Kind    ActionKind
	Label   string
	VideoID string
	Request nav.Request
}

type Message struct {
	ID      string
	Role    Role
	Text    string
	At      time.Time
	Actions []Action
}

// Assistant holds the conversation. It is not safe for concurrent use.
type Assistant struct {
	catalog  *catalog.Catalog
	open     bool
	messages []Message
	limit    int
	now      func() time.Time
}

func New(c *catalog.Catalog, history int) *Assistant {
	if history <= 0 {
		history = DefaultHistory
	}
	a := &Assistant{catalog: c, limit: history, now: time.Now}
	a.append(Message{Role: RoleAssistant, Text: greeting})
	return a
}

func (a *Assistant) IsOpen() bool { return a.open }
func (a *Assistant) Open()        { a.open = true }
func (a *Assistant) Close()       { a.open = false }
func (a *Assistant) Toggle()      { a.open = !a.open }

// SetCatalog swaps the catalog used for future replies.
func (a *Assistant) SetCatalog(c *catalog.Catalog) { a.catalog = c }

func (a *Assistant) Messages() []Message {
	return append([]Message(nil), a.messages...)
}

// Last returns the newest message.
func (a *Assistant) Last() (Message, bool) {
	if len(a.messages) == 0 {
		return Message{}, false
	}
	return a.messages[len(a.messages)-1], true
}

// Send records the user's text and the assistant's reply. Blank input is
// ignored and reported with ok=false.
func (a *Assistant) Send(text string) (reply Message, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, false
	}
	a.append(Message{Role: RoleUser, Text: text})
	reply = a.respond(text)
	return a.append(reply), true
}

func (a *Assistant) append(m Message) Message {
	m.ID = uuid.NewString()
	m.At = a.now()
	a.messages = append(a.messages, m)
	if over := len(a.messages) - a.limit; over > 0 {
		a.messages = append([]Message(nil), a.messages[over:]...)
	}
	return m
}

func (a *Assistant) respond(text string) Message {
	if a.catalog == nil {
		return Message{Role: RoleAssistant, Text: "El catálogo no está disponible en este momento."}
	}

	var actions []Action
	add := func(act Action) bool {
		if len(actions) >= MaxSuggestions {
			return false
		}
		actions = append(actions, act)
		return true
	}

	folded := catalog.Fold(text)
	for _, cat := range a.catalog.Categories() {
		if strings.Contains(folded, catalog.Fold(cat.Name)) || strings.Contains(folded, catalog.Fold(cat.ID)) {
			add(Action{
				Kind:    ActionNavigate,
				Label:   "Ver webinars de " + cat.Name,
				Request: nav.Request{Target: nav.Webinars, Param: cat.ID},
			})
		}
	}
	for _, tool := range a.catalog.StudioTools() {
		if strings.Contains(folded, catalog.Fold(tool.Title)) || strings.Contains(folded, tool.ID) {
			add(Action{
				Kind:    ActionNavigate,
				Label:   "Abrir " + tool.Title + " en Nemi Studio",
				Request: nav.Request{Target: nav.Studio, Param: tool.ID},
			})
		}
	}

	res := a.searchTerms(text)
	for _, v := range res.Videos {
		if !add(Action{Kind: ActionPlayVideo, Label: "Reproducir: " + v.Title, VideoID: v.ID}) {
			break
		}
	}
	if len(res.Tools) > 0 {
		add(Action{Kind: ActionNavigate, Label: "Explorar EduTools", Request: nav.Request{Target: nav.EduTools}})
	}
	if len(res.Agents) > 0 {
		add(Action{Kind: ActionNavigate, Label: "Conocer los agentes Nemi", Request: nav.Request{Target: nav.Nemi}})
	}

	if len(actions) == 0 {
		return Message{
			Role: RoleAssistant,
			Text: "No encontré contenido relacionado. Prueba con temas como evaluación, rúbricas o inteligencia artificial.",
		}
	}
	return Message{
		Role:    RoleAssistant,
		Text:    fmt.Sprintf("Encontré %d sugerencia(s) para \"%s\":", len(actions), text),
		Actions: actions,
	}
}

// searchTerms runs the whole question first, then each meaningful word, and
// merges hits without duplicates.
func (a *Assistant) searchTerms(text string) catalog.Results {
	merged := a.catalog.Search(text)
	if !merged.Empty() {
		return merged
	}
	seenV := map[string]bool{}
	seenT := map[string]bool{}
	seenA := map[string]bool{}
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, "¿?¡!.,;:\"'()")
		if len([]rune(word)) < 4 {
			continue
		}
		res := a.catalog.Search(word)
		for _, v := range res.Videos {
			if !seenV[v.ID] {
				seenV[v.ID] = true
				merged.Videos = append(merged.Videos, v)
			}
		}
		for _, t := range res.Tools {
			if !seenT[t.ID] {
				seenT[t.ID] = true
				merged.Tools = append(merged.Tools, t)
			}
		}
		for _, ag := range res.Agents {
			if !seenA[ag.ID] {
				seenA[ag.ID] = true
				merged.Agents = append(merged.Agents, ag)
			}
		}
	}
	return merged
}
