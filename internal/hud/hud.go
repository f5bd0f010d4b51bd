// Package hud frames a content widget with a title, a status line, a keybar
// of single key actions and a log pane, and can swap in a modal panel.
package hud

import (
	"fmt"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/views"
)

// HUD is the top level panel.
type HUD struct {
	views.Panel

	Title  *views.TextBar
	Status *views.SimpleStyledTextBar
	Keys   *Keybar
	Logs   Logs

	content views.Widget
	modal   views.Widget

	// Quit and Refresh are run on Ctrl-C and Ctrl-L.
	Quit    func()
	Refresh func()
}

// New returns a HUD around content, keeping logCap log messages.
func New(title string, content views.Widget, logCap int) *HUD {
	hud := &HUD{}
	hud.Logs.Init(logCap)

	hud.Title = views.NewTextBar()
	hud.Title.SetCenter(title, tcell.StyleDefault)
	hud.Keys = NewKeybar()
	hud.Status = views.NewSimpleStyledTextBar()

	hud.content = content
	hud.SetMenu(hud.Status)
	hud.SetTitle(hud.Title)
	hud.SetStatus(hud.Keys)
	hud.SetContent(content)
	return hud
}

// Modal returns the modal widget being shown, if any.
func (hud *HUD) Modal() views.Widget { return hud.modal }

// ShowModal replaces the content with a widget until it is dismissed with Q
// or Escape.
func (hud *HUD) ShowModal(wid views.Widget) {
	hud.Keys.push()
	hud.modal = wid
	hud.SetContent(wid)
	hud.Keys.AddAction('Q', "Resume", hud.HideModal)
}

// HideModal restores the content.
func (hud *HUD) HideModal() {
	hud.Keys.pop()
	hud.modal = nil
	hud.SetContent(hud.content)
}

// Help shows lines of help text as a modal.
func (hud *HUD) Help(lines []string) {
	halp := views.NewTextArea()
	halp.SetLines(lines)
	hud.ShowModal(halp)
}

// HandleEvent handles the global keys, then offers the event to the panel's
// widgets; anything nobody wanted is noted in the status line.
func (hud *HUD) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlL:
			if hud.Refresh != nil {
				hud.Refresh()
			}
			return true
		case tcell.KeyCtrlC:
			if hud.Quit != nil {
				hud.Quit()
			}
			return true
		case tcell.KeyEscape:
			if hud.modal != nil {
				hud.HideModal()
				return true
			}
		}
	}

	if hud.Panel.HandleEvent(ev) {
		return true
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyRune:
			hud.Status.SetLeft(fmt.Sprintf("?rune %q", ev.Rune()))
		default:
			hud.Status.SetLeft(fmt.Sprintf("?key %v", ev.Key()))
		}
	}
	return false
}
