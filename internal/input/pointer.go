package input

import "github.com/gdamore/tcell"

// Pointer emulates a locked pointer on a terminal mouse: clicking locks it,
// Escape unlocks it, and while locked horizontal motion turns the camera.
type Pointer struct {
	// Sensitivity is radians of yaw per cell of mouse motion.
	Sensitivity float64

	locked bool
	lastX  int
	haveX  bool
	yaw    float64
}

// Locked returns true if the pointer is captured.
func (p *Pointer) Locked() bool { return p.locked }

// Lock captures the pointer.
func (p *Pointer) Lock() {
	p.locked = true
	p.haveX = false
}

// Unlock releases the pointer and drops any pending yaw.
func (p *Pointer) Unlock() {
	p.locked = false
	p.haveX = false
	p.yaw = 0
}

// HandleEvent consumes mouse events and the unlocking Escape key, returning
// true if the event was consumed.
func (p *Pointer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, _ := ev.Position()
		if !p.locked {
			if ev.Buttons()&tcell.Button1 != 0 {
				p.Lock()
				p.lastX, p.haveX = x, true
				return true
			}
			return false
		}
		if p.haveX {
			p.yaw += float64(x-p.lastX) * p.Sensitivity
		}
		p.lastX, p.haveX = x, true
		return true

	case *tcell.EventKey:
		if p.locked && ev.Key() == tcell.KeyEscape {
			p.Unlock()
			return true
		}
	}
	return false
}

// TakeYaw returns the yaw accumulated since the last call.
func (p *Pointer) TakeYaw() float64 {
	yaw := p.yaw
	p.yaw = 0
	return yaw
}
