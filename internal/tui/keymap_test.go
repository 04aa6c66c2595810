package tui

import (
	"strings"
	"testing"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

type keyUsage struct {
	action Action
	scope  string
}

func allScopes() []string {
	scopes := make([]string, 0, len(nav.AllViews())+3)
	for _, v := range nav.AllViews() {
		scopes = append(scopes, v.String())
	}
	return append(scopes, scopeSearch, scopeVideo, scopeChat)
}

func isNavigationAction(act Action) bool {
	switch act {
	case ActNavigateUp,
		ActNavigateDown,
		ActNavigateLeft,
		ActNavigateRight,
		ActPageUp,
		ActPageDown,
		ActScrollTop,
		ActScrollBottom,
		ActTabForward,
		ActTabBackward,
		ActConfirm,
		ActCancel:
		return true
	default:
		return false
	}
}

func TestDefaultKeyMapHasNoSingleLetterConflicts(t *testing.T) {
	t.Parallel()
	keyMap := DefaultKeyMap()
	seen := make(map[string]keyUsage)

	for _, scope := range allScopes() {
		for action, combos := range keyMap.PerScope[scope] {
			for _, combo := range combos {
				if combo.Alt || combo.Ctrl || combo.Shift {
					continue
				}
				if isNavigationAction(action) {
					continue
				}

				key := strings.ToLower(combo.Key)
				runes := []rune(key)
				if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
					continue
				}

				if previous, ok := seen[key]; ok {
					if previous.action != action {
						t.Fatalf(
							"key %q is bound to %q in scope %q and %q in scope %q",
							key,
							previous.action,
							previous.scope,
							action,
							scope,
						)
					}
					continue
				}
				seen[key] = keyUsage{action: action, scope: scope}
			}
		}
	}
}

func TestDefaultKeyMapScopesAndLabels(t *testing.T) {
	t.Parallel()
	keyMap := DefaultKeyMap()

	for _, scope := range allScopes() {
		if len(keyMap.PerScope[scope]) == 0 {
			t.Errorf("scope %q has no bindings", scope)
		}
		for _, entry := range keyMap.HelpEntriesForScope(scope) {
			if entry.Label == string(entry.Action) {
				t.Errorf("action %q in scope %q has no label", entry.Action, scope)
			}
		}
	}

	for i, v := range nav.AllViews() {
		act, ok := gotoViewAction(i)
		if !ok {
			t.Fatalf("no goto action for view %s", v)
		}
		if got := keyMap.Label(act); got != "Ir a "+v.Title() {
			t.Errorf("label for %s = %q", act, got)
		}
		if back, ok := viewFromAction(act); !ok || back != v {
			t.Errorf("viewFromAction(%s) = %v, %v", act, back, ok)
		}
	}
}

func TestSearchShortcutIsGlobalAndTypingSensitive(t *testing.T) {
	t.Parallel()
	keyMap := DefaultKeyMap()

	combos := keyMap.Global[ActOpenSearch]
	if len(combos) != 1 || combos[0].String() != "/" {
		t.Fatalf("keymap should only bind / to search, got %v", combos)
	}
	if acts := keyMap.GlobalActions(tea.KeyMsg{Type: tea.KeyCtrlK}); len(acts) != 0 {
		t.Fatalf("ctrl+k belongs to the shortcut listener, keymap resolved %v", acts)
	}
	if !keyMap.IsTypingSensitive(ActOpenSearch) {
		t.Fatalf("the / alias must not fire while typing")
	}
	if keyMap.IsTypingSensitive(ActToggleChat) {
		t.Fatalf("chat toggle should work while typing")
	}
}

func TestHelpListsSearchShortcut(t *testing.T) {
	t.Parallel()
	entries := withSearchShortcut(DefaultKeyMap().GlobalHelpEntries())
	for _, entry := range entries {
		if entry.Action != ActOpenSearch {
			continue
		}
		if len(entry.Combos) != 2 || entry.Combos[0].Display() != "Ctrl+K" || entry.Combos[1].Display() != "/" {
			t.Fatalf("unexpected search help combos %v", entry.Combos)
		}
		return
	}
	t.Fatalf("search missing from help entries")
}

func TestKeyComboDisplay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		combo KeyCombo
		want  string
	}{
		{KeyCombo{Key: "k", Ctrl: true}, "Ctrl+K"},
		{KeyCombo{Key: "1", Alt: true}, "Alt+1"},
		{KeyCombo{Key: "tab", Shift: true}, "Shift+Tab"},
		{KeyCombo{Key: "pgdown"}, "PgDn"},
		{KeyCombo{Key: "f1"}, "F1"},
	}
	for _, tt := range tests {
		if got := tt.combo.Display(); got != tt.want {
			t.Errorf("Display(%+v) = %q, want %q", tt.combo, got, tt.want)
		}
	}
}
