package perf

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell"
)

// Dash summarizes a Perf on one line, with optional notes, and toggles
// profiling from the keyboard.
type Dash struct {
	*Perf
	notes map[string]string
	parts []string
}

// HandleEvent toggles profiling on '*'.
func (da *Dash) HandleEvent(ev tcell.Event) bool {
	if ev, ok := ev.(*tcell.EventKey); ok && ev.Key() == tcell.KeyRune && ev.Rune() == '*' {
		da.Perf.Toggle()
		return true
	}
	return false
}

// Note adds or updats an optional note in the dashboard.
func (da *Dash) Note(name, mess string, args ...interface{}) {
	if da.notes == nil {
		da.notes = make(map[string]string, 1)
	}
	da.notes[name] = fmt.Sprintf(mess, args...)
}

// String renders the dashboard: a profiling status glyph, the frame rate
// and time, then the notes sorted by name.
func (da *Dash) String() string {
	da.Note("heap", "%v", siBytes(da.Perf.HeapAlloc()))

	if len(da.parts) > 0 {
		da.parts = da.parts[:0]
	} else {
		da.parts = make([]string, 0, 2+len(da.notes))
	}
	da.parts = append(da.parts,
		string(da.status()),
		fmt.Sprintf("%.0ffps Δt=%v", da.Perf.FPS(), da.Perf.Last().Round(10*time.Microsecond)))
	notes := len(da.parts)
	for name, mess := range da.notes {
		da.parts = append(da.parts, fmt.Sprintf("%s=%s", name, mess))
	}
	sort.Strings(da.parts[notes:])
	return strings.Join(da.parts, " ")
}

func (da *Dash) status() rune {
	if da.Perf.err != nil {
		return '■'
	}
	if da.Perf.profiling {
		return '◉'
	}
	if da.Perf.shouldProfile {
		return '◎'
	}
	return '○'
}

func siBytes(n uint64) string {
	if n < 1024 {
		return fmt.Sprintf("%vB", n)
	}
	if n < 1024*1024 {
		return fmt.Sprintf("%.1fKiB", float64(n)/1024.0)
	}
	if n < 1024*1024*1024 {
		return fmt.Sprintf("%.1fMiB", float64(n)/(1024.0*1024.0))
	}
	return fmt.Sprintf("%.1fGiB", float64(n)/(1024.0*1024.0*1024.0))
}
