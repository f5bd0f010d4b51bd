package hud

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/views"
)

// Keybar lists single key actions, and runs them when their key is pressed
// in either case.
type Keybar struct {
	*views.SimpleStyledText
	actions map[rune]keybarAction
	prior   map[rune]keybarAction
}

type keybarAction struct {
	l string
	f func()
}

// NewKeybar returns an empty keybar in the default colors.
func NewKeybar() *Keybar {
	kb := &Keybar{}
	kb.SimpleStyledText = views.NewSimpleStyledText()
	kb.actions = make(map[rune]keybarAction)
	kb.RegisterStyle('N', tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite))
	kb.RegisterStyle('A', tcell.StyleDefault.
		Background(tcell.ColorDarkBlue).
		Foreground(tcell.ColorSlateBlue))
	kb.RegisterStyle('S', tcell.StyleDefault.
		Background(tcell.ColorSlateBlue).
		Foreground(tcell.ColorDarkBlue))
	return kb
}

// AddAction binds a key; binding a key twice panics.
func (kb *Keybar) AddAction(k rune, label string, f func()) {
	if _, def := kb.actions[k]; def {
		panic(fmt.Sprintf("duplicate action %q", k))
	}
	kb.actions[k] = keybarAction{label, f}
	kb.refresh()
}

// Label returns the label bound to a key.
func (kb *Keybar) Label(k rune) (string, bool) {
	a, def := kb.actions[k]
	return a.l, def
}

func (kb *Keybar) refresh() {
	parts := make([]string, 0, len(kb.actions))
	for k, a := range kb.actions {
		parts = append(parts, fmt.Sprintf("%%S[%s]%%A%s%%N", string(k), a.l))
	}
	sort.Strings(parts)
	kb.SetMarkup(strings.Join(parts, "  "))
}

// push saves the current actions aside, replacing them with none.
func (kb *Keybar) push() {
	if kb.prior == nil {
		kb.prior = kb.actions
	}
	kb.actions = make(map[rune]keybarAction)
}

// pop restores the actions saved by push.
func (kb *Keybar) pop() {
	if kb.prior != nil {
		kb.actions = kb.prior
		kb.prior = nil
		kb.refresh()
	}
}

// HandleEvent runs the action bound to a pressed key.
func (kb *Keybar) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyRune:
			k := ev.Rune()
			a, def := kb.actions[k]
			if !def {
				if unicode.IsLower(k) {
					k = unicode.ToUpper(k)
				} else {
					k = unicode.ToLower(k)
				}
				a, def = kb.actions[k]
			}
			if def {
				a.f()
				return true
			}
		}
	}
	return false
}
