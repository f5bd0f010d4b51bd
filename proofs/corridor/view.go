package main

import (
	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/views"
)

// firstPerson is the widget showing the session's view.
type firstPerson struct {
	views.WidgetWatchers
	view views.View
	sess *session
}

func newView(sess *session) *firstPerson {
	return &firstPerson{sess: sess}
}

func (fp *firstPerson) HandleEvent(ev tcell.Event) bool {
	return fp.sess.handleEvent(ev)
}

// Size is what the view would like; it happily fills whatever it gets.
func (fp *firstPerson) Size() (int, int) {
	return 80, 24
}

func (fp *firstPerson) SetView(view views.View) {
	fp.view = view
	if fp.view == nil {
		return
	}
	fp.Resize()
}

func (fp *firstPerson) Resize() {
	if fp.view == nil {
		return
	}
	w, h := fp.view.Size()
	fp.sess.frame.Resize(w, h)
	fp.PostEventWidgetResize(fp)
}

func (fp *firstPerson) Draw() {
	if fp.view == nil {
		return
	}
	fp.sess.draw(fp.view)
}
