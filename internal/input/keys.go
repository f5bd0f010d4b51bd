// Package input turns terminal key and mouse events into movement intent.
//
// Terminals only report key presses, never releases. A key is treated as
// held from its press until Hold has passed without another press; the
// terminal's auto-repeat keeps refreshing a key that is really held down.
package input

import (
	"time"
)

// Intent is what the player is asking to do this tick; each axis is in
// [-1, 1].
type Intent struct {
	// Forward is positive forward, negative backward.
	Forward float64
	// Strafe is positive to the right.
	Strafe float64
	// Turn is positive clockwise (towards +Y).
	Turn float64
	// Yaw is an absolute turn in radians accumulated from the pointer.
	Yaw    float64
	Sprint bool
}

// Keys tracks which actions are held.
type Keys struct {
	// Hold is how long a press keeps its action held.
	Hold time.Duration

	until  [numActions]time.Time
	sprint time.Time
}

// Press marks an action held as of now.
func (ks *Keys) Press(act Action, sprint bool, now time.Time) {
	if act == NoAction || act >= numActions {
		return
	}
	ks.until[act] = now.Add(ks.Hold)
	if sprint {
		ks.sprint = now.Add(ks.Hold)
	}
}

// Release forgets an action early.
func (ks *Keys) Release(act Action) {
	if act < numActions {
		ks.until[act] = time.Time{}
	}
}

// Reset releases everything.
func (ks *Keys) Reset() {
	*ks = Keys{Hold: ks.Hold}
}

// Held returns true if the action is held as of now.
func (ks *Keys) Held(act Action, now time.Time) bool {
	return act < numActions && now.Before(ks.until[act])
}

// Intent resolves the held actions into an intent as of now.
func (ks *Keys) Intent(now time.Time) Intent {
	var in Intent
	axis := func(pos, neg Action) float64 {
		var v float64
		if ks.Held(pos, now) {
			v++
		}
		if ks.Held(neg, now) {
			v--
		}
		return v
	}
	in.Forward = axis(Forward, Back)
	in.Strafe = axis(StrafeRight, StrafeLeft)
	in.Turn = axis(TurnRight, TurnLeft)
	in.Sprint = now.Before(ks.sprint) && (in.Forward != 0 || in.Strafe != 0)
	return in
}
