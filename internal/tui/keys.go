package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

type Action string

const (
	ActQuit      Action = "quit"
	ActInterrupt Action = "interrupt"
	ActHelp      Action = "help"

	ActGotoView1 Action = "goto_view_1"
	ActGotoView2 Action = "goto_view_2"
	ActGotoView3 Action = "goto_view_3"
	ActGotoView4 Action = "goto_view_4"
	ActGotoView5 Action = "goto_view_5"
	ActGotoView6 Action = "goto_view_6"
	ActGotoView7 Action = "goto_view_7"
	ActNextView  Action = "next_view"
	ActPrevView  Action = "prev_view"

	ActOpenSearch  Action = "open_search"
	ActToggleChat  Action = "toggle_chat"
	ActToggleTheme Action = "toggle_theme"

	ActConfirm       Action = "confirm"
	ActCancel        Action = "cancel"
	ActTabForward    Action = "tab_forward"
	ActTabBackward   Action = "tab_backward"
	ActNavigateUp    Action = "navigate_up"
	ActNavigateDown  Action = "navigate_down"
	ActNavigateLeft  Action = "navigate_left"
	ActNavigateRight Action = "navigate_right"
	ActPageUp        Action = "page_up"
	ActPageDown      Action = "page_down"
	ActScrollTop     Action = "scroll_top"
	ActScrollBottom  Action = "scroll_bottom"

	ActOpenLink     Action = "open_link"
	ActCopyLink     Action = "copy_link"
	ActShowCategory Action = "show_category"
	ActNextEpisode  Action = "next_episode"
	ActPrevEpisode  Action = "prev_episode"
	ActAnswer1      Action = "answer_1"
	ActAnswer2      Action = "answer_2"
	ActAnswer3      Action = "answer_3"
	ActAnswer4      Action = "answer_4"
	ActCompose      Action = "compose"
)

// Scopes that are not views. View scopes use nav.ViewID.String().
const (
	scopeSearch = "search"
	scopeVideo  = "video"
	scopeChat   = "chat"
)

func gotoViewAction(index int) (Action, bool) {
	switch index {
	case 0:
		return ActGotoView1, true
	case 1:
		return ActGotoView2, true
	case 2:
		return ActGotoView3, true
	case 3:
		return ActGotoView4, true
	case 4:
		return ActGotoView5, true
	case 5:
		return ActGotoView6, true
	case 6:
		return ActGotoView7, true
	default:
		return "", false
	}
}

func viewFromAction(act Action) (nav.ViewID, bool) {
	for i, v := range nav.AllViews() {
		if candidate, ok := gotoViewAction(i); ok && candidate == act {
			return v, true
		}
	}
	return 0, false
}

func answerIndex(act Action) (int, bool) {
	switch act {
	case ActAnswer1:
		return 0, true
	case ActAnswer2:
		return 1, true
	case ActAnswer3:
		return 2, true
	case ActAnswer4:
		return 3, true
	default:
		return 0, false
	}
}

type KeyCombo struct {
	Key   string
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (kc KeyCombo) String() string {
	parts := make([]string, 0, 4)
	if kc.Ctrl {
		parts = append(parts, "ctrl")
	}
	if kc.Alt {
		parts = append(parts, "alt")
	}
	if kc.Shift {
		parts = append(parts, "shift")
	}
	parts = append(parts, strings.ToLower(kc.Key))
	return strings.Join(parts, "+")
}

func (kc KeyCombo) Display() string {
	parts := make([]string, 0, 4)
	if kc.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if kc.Alt {
		parts = append(parts, "Alt")
	}
	if kc.Shift {
		parts = append(parts, "Shift")
	}
	base := strings.ToLower(kc.Key)
	switch base {
	case "pgup":
		base = "PgUp"
	case "pgdown":
		base = "PgDn"
	case "esc":
		base = "Esc"
	case "home":
		base = "Home"
	case "end":
		base = "End"
	case "tab":
		base = "Tab"
	case "enter":
		base = "Enter"
	case "up":
		base = "↑"
	case "down":
		base = "↓"
	case "left":
		base = "←"
	case "right":
		base = "→"
	default:
		if len(base) == 1 {
			base = strings.ToUpper(base)
		} else {
			base = strings.ToUpper(base[:1]) + base[1:]
		}
	}
	if len(parts) == 0 {
		return base
	}
	parts = append(parts, base)
	return strings.Join(parts, "+")
}

func (kc KeyCombo) Matches(msg tea.KeyMsg) bool {
	return strings.EqualFold(kc.String(), msg.String())
}

type KeyMap struct {
	Global          map[Action][]KeyCombo
	PerScope        map[string]map[Action][]KeyCombo
	labels          map[Action]string
	typingSensitive map[Action]bool
}

type HelpEntry struct {
	Action Action
	Label  string
	Combos []KeyCombo
}

func (km KeyMap) GlobalActions(msg tea.KeyMsg) []Action {
	return km.matchingActions(km.Global, msg)
}

func (km KeyMap) ScopeActions(scope string, msg tea.KeyMsg) []Action {
	return km.matchingActions(km.PerScope[scope], msg)
}

func (km KeyMap) matchingActions(source map[Action][]KeyCombo, msg tea.KeyMsg) []Action {
	if len(source) == 0 {
		return nil
	}
	var matches []Action
	for act, combos := range source {
		for _, combo := range combos {
			if combo.Matches(msg) {
				matches = append(matches, act)
				break
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return string(matches[i]) < string(matches[j])
	})
	return matches
}

func (km KeyMap) Label(act Action) string {
	if label, ok := km.labels[act]; ok {
		return label
	}
	return string(act)
}

func (km KeyMap) IsTypingSensitive(act Action) bool {
	return km.typingSensitive[act]
}

func (km KeyMap) GlobalHelpEntries() []HelpEntry {
	return km.helpEntries(km.Global)
}

func (km KeyMap) HelpEntriesForScope(scope string) []HelpEntry {
	return km.helpEntries(km.PerScope[scope])
}

func (km KeyMap) helpEntries(source map[Action][]KeyCombo) []HelpEntry {
	if len(source) == 0 {
		return nil
	}
	entries := make([]HelpEntry, 0, len(source))
	for act, combos := range source {
		if len(combos) == 0 {
			continue
		}
		entries = append(entries, HelpEntry{
			Action: act,
			Label:  km.Label(act),
			Combos: append([]KeyCombo(nil), combos...),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	return entries
}

func DefaultKeyMap() KeyMap {
	ctrl := func(key string) KeyCombo {
		return KeyCombo{Key: key, Ctrl: true}
	}
	alt := func(key string) KeyCombo {
		return KeyCombo{Key: key, Alt: true}
	}
	shift := func(key string) KeyCombo {
		return KeyCombo{Key: key, Shift: true}
	}
	key := func(k string) KeyCombo {
		return KeyCombo{Key: k}
	}
	listKeys := map[Action][]KeyCombo{
		ActNavigateUp:   {key("up"), key("k")},
		ActNavigateDown: {key("down"), key("j")},
		ActConfirm:      {key("enter")},
	}
	with := func(extra map[Action][]KeyCombo) map[Action][]KeyCombo {
		out := make(map[Action][]KeyCombo, len(listKeys)+len(extra))
		for act, combos := range listKeys {
			out[act] = combos
		}
		for act, combos := range extra {
			out[act] = combos
		}
		return out
	}

	global := map[Action][]KeyCombo{
		ActQuit:         {key("q")},
		ActInterrupt:    {ctrl("c")},
		ActHelp:         {key("?"), key("f1")},
		ActGotoView1:    {alt("1")},
		ActGotoView2:    {alt("2")},
		ActGotoView3:    {alt("3")},
		ActGotoView4:    {alt("4")},
		ActGotoView5:    {alt("5")},
		ActGotoView6:    {alt("6")},
		ActGotoView7:    {alt("7")},
		ActNextView:     {key("tab")},
		ActPrevView:     {shift("tab")},
		ActOpenSearch:   {key("/")},
		ActToggleChat:   {ctrl("n")},
		ActToggleTheme:  {ctrl("t")},
		ActPageUp:       {key("pgup")},
		ActPageDown:     {key("pgdown")},
		ActScrollTop:    {key("home")},
		ActScrollBottom: {key("end")},
	}

	perScope := map[string]map[Action][]KeyCombo{
		nav.Home.String():       with(nil),
		nav.Repository.String(): with(map[Action][]KeyCombo{ActOpenLink: {key("o")}}),
		nav.Webinars.String(): with(map[Action][]KeyCombo{
			ActNavigateLeft:  {key("left"), key("h")},
			ActNavigateRight: {key("right"), key("l")},
		}),
		nav.Blog.String(): with(map[Action][]KeyCombo{ActShowCategory: {key("c")}}),
		nav.Nemi.String(): with(map[Action][]KeyCombo{ActCopyLink: {key("y")}}),
		nav.Studio.String(): {
			ActNavigateLeft:  {key("left")},
			ActNavigateRight: {key("right")},
			ActTabForward:    {key("tab")},
			ActTabBackward:   {shift("tab")},
			ActConfirm:       {key("enter")},
			ActCompose:       {ctrl("s")},
			ActCancel:        {key("esc")},
		},
		nav.EduTools.String(): {
			ActConfirm: {key("enter")},
		},
		scopeSearch: {
			ActNavigateUp:   {key("up")},
			ActNavigateDown: {key("down")},
			ActConfirm:      {key("enter")},
			ActCancel:       {key("esc")},
		},
		scopeVideo: {
			ActCancel:       {key("esc")},
			ActNextEpisode:  {key("n")},
			ActPrevEpisode:  {key("p")},
			ActShowCategory: {key("c")},
			ActOpenLink:     {key("o")},
			ActCopyLink:     {key("y")},
			ActTabForward:   {key("tab")},
			ActTabBackward:  {shift("tab")},
			ActAnswer1:      {key("1")},
			ActAnswer2:      {key("2")},
			ActAnswer3:      {key("3")},
			ActAnswer4:      {key("4")},
			ActNavigateUp:   {key("up")},
			ActNavigateDown: {key("down")},
		},
		scopeChat: {
			ActNavigateUp:   {key("up")},
			ActNavigateDown: {key("down")},
			ActConfirm:      {key("enter")},
			ActCancel:       {key("esc")},
		},
	}

	labels := map[Action]string{
		ActQuit:          "Salir",
		ActInterrupt:     "Salir de inmediato",
		ActHelp:          "Mostrar/ocultar ayuda",
		ActNextView:      "Vista siguiente",
		ActPrevView:      "Vista anterior",
		ActOpenSearch:    "Buscar",
		ActToggleChat:    "Abrir/cerrar Nemi chat",
		ActToggleTheme:   "Cambiar tema claro/oscuro",
		ActConfirm:       "Abrir / Activar",
		ActCancel:        "Cerrar / Salir del campo",
		ActTabForward:    "Campo o pregunta siguiente",
		ActTabBackward:   "Campo o pregunta anterior",
		ActNavigateUp:    "Subir",
		ActNavigateDown:  "Bajar",
		ActNavigateLeft:  "Anterior",
		ActNavigateRight: "Siguiente",
		ActPageUp:        "Página arriba",
		ActPageDown:      "Página abajo",
		ActScrollTop:     "Ir al inicio",
		ActScrollBottom:  "Ir al final",
		ActOpenLink:      "Abrir enlace",
		ActCopyLink:      "Copiar enlace",
		ActShowCategory:  "Ver webinars de la categoría",
		ActNextEpisode:   "Episodio siguiente",
		ActPrevEpisode:   "Episodio anterior",
		ActAnswer1:       "Responder opción 1",
		ActAnswer2:       "Responder opción 2",
		ActAnswer3:       "Responder opción 3",
		ActAnswer4:       "Responder opción 4",
		ActCompose:       "Generar y copiar prompt",
	}
	for i, v := range nav.AllViews() {
		if act, ok := gotoViewAction(i); ok {
			labels[act] = "Ir a " + v.Title()
		}
	}

	typingSensitive := map[Action]bool{
		ActQuit:         true,
		ActHelp:         true,
		ActOpenSearch:   true,
		ActNextView:     true,
		ActPrevView:     true,
		ActGotoView1:    true,
		ActGotoView2:    true,
		ActGotoView3:    true,
		ActGotoView4:    true,
		ActGotoView5:    true,
		ActGotoView6:    true,
		ActGotoView7:    true,
		ActScrollTop:    true,
		ActScrollBottom: true,
	}

	return KeyMap{
		Global:          global,
		PerScope:        perScope,
		labels:          labels,
		typingSensitive: typingSensitive,
	}
}
