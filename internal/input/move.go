package input

import (
	"unicode"

	"github.com/gdamore/tcell"
)

// Action is something a held key asks the player to do.
type Action uint8

// Actions, in the order their keys are listed in help text.
const (
	NoAction Action = iota
	Forward
	Back
	StrafeLeft
	StrafeRight
	TurnLeft
	TurnRight
	numActions
)

var actionNames = [numActions]string{
	"none", "forward", "back", "strafe left", "strafe right", "turn left", "turn right",
}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "?"
}

// ParseRune maps a WASD key to its action. Upper case letters (shift held)
// ask for a sprint.
func ParseRune(ch rune) (act Action, sprint bool) {
	if unicode.IsUpper(ch) {
		sprint = true
		ch = unicode.ToLower(ch)
	}
	switch ch {
	case 'w':
		return Forward, sprint
	case 's':
		return Back, sprint
	case 'a':
		return StrafeLeft, sprint
	case 'd':
		return StrafeRight, sprint
	}
	return NoAction, false
}

// ParseKey maps an arrow key to its action.
func ParseKey(k tcell.Key) Action {
	switch k {
	case tcell.KeyUp:
		return Forward
	case tcell.KeyDown:
		return Back
	case tcell.KeyLeft:
		return TurnLeft
	case tcell.KeyRight:
		return TurnRight
	}
	return NoAction
}

// ParseEvent maps a key event to its action, if any.
func ParseEvent(ev *tcell.EventKey) (act Action, sprint bool) {
	if ev.Key() == tcell.KeyRune {
		return ParseRune(ev.Rune())
	}
	return ParseKey(ev.Key()), ev.Modifiers()&tcell.ModShift != 0
}
