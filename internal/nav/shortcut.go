package nav

import (
	"strings"
	"sync"
)

// KeyEvent is anything that can describe itself as a key combination string
// such as "ctrl+k". tea.KeyMsg satisfies it.
type KeyEvent interface {
	String() string
}

// KeyHandler returns true when it consumed the event, which stops the event
// from reaching any later handler or the focused widget.
type KeyHandler func(KeyEvent) bool

// Keyboard is the process-wide key event source listeners attach to.
type Keyboard struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]KeyHandler
	order    []int
}

func NewKeyboard() *Keyboard {
	return &Keyboard{handlers: make(map[int]KeyHandler)}
}

// AddListener registers h and returns the function that removes it. The
// remover is safe to call more than once.
func (k *Keyboard) AddListener(h KeyHandler) (remove func()) {
	k.mu.Lock()
	defer k.mu.Unlock()
	id := k.nextID
	k.nextID++
	k.handlers[id] = h
	k.order = append(k.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			defer k.mu.Unlock()
			delete(k.handlers, id)
			for i, existing := range k.order {
				if existing == id {
					k.order = append(k.order[:i], k.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Listeners reports how many handlers are registered.
func (k *Keyboard) Listeners() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.handlers)
}

// Dispatch offers ev to each listener in registration order until one
// consumes it.
func (k *Keyboard) Dispatch(ev KeyEvent) bool {
	k.mu.Lock()
	handlers := make([]KeyHandler, 0, len(k.order))
	for _, id := range k.order {
		handlers = append(handlers, k.handlers[id])
	}
	k.mu.Unlock()

	for _, h := range handlers {
		if h(ev) {
			return true
		}
	}
	return false
}

// SearchShortcuts are the combinations that open search. Terminals report
// Control; Command/Super only arrive from hosts that forward them.
var SearchShortcuts = []string{"ctrl+k", "cmd+k", "super+k"}

// SearchOpener is the overlay operation the shortcut triggers.
type SearchOpener interface {
	OpenSearch()
}

// ShortcutListener binds the search shortcut to an overlay controller.
type ShortcutListener struct {
	target SearchOpener
	combos map[string]struct{}
	remove func()
}

func NewShortcutListener(target SearchOpener) *ShortcutListener {
	combos := make(map[string]struct{}, len(SearchShortcuts))
	for _, c := range SearchShortcuts {
		combos[c] = struct{}{}
	}
	return &ShortcutListener{target: target, combos: combos}
}

// Mount registers the listener on kb. Mounting an already mounted listener
// is a no-op.
func (l *ShortcutListener) Mount(kb *Keyboard) {
	if l.remove != nil {
		return
	}
	l.remove = kb.AddListener(l.handle)
}

// Unmount releases the registration; later dispatches never reach the listener.
func (l *ShortcutListener) Unmount() {
	if l.remove == nil {
		return
	}
	l.remove()
	l.remove = nil
}

func (l *ShortcutListener) Mounted() bool { return l.remove != nil }

func (l *ShortcutListener) handle(ev KeyEvent) bool {
	if _, ok := l.combos[strings.ToLower(ev.String())]; !ok {
		return false
	}
	l.target.OpenSearch()
	return true
}
