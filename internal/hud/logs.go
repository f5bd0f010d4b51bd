package hud

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/views"
	"github.com/sirupsen/logrus"

	"github.com/borkshop/corridor/internal/moremath"
)

// Logs is a bounded buffer of log messages, safe for concurrent use.
type Logs struct {
	Style tcell.Style
	// Min and Max bound how many lines RenderSize asks for.
	Min, Max int

	mu     sync.Mutex
	buffer []string
}

// Init initializes the log buffer and metadata, allocating the given capacity.
func (logs *Logs) Init(logCap int) {
	logs.Style = tcell.StyleDefault
	logs.Min = 1
	logs.Max = 5
	logs.buffer = make([]string, 0, logCap)
}

// Log formats and appends a log message to the buffer, discarding the oldest
// message if full.
func (logs *Logs) Log(mess string, args ...interface{}) {
	mess = fmt.Sprintf(mess, args...)
	logs.mu.Lock()
	defer logs.mu.Unlock()
	if len(logs.buffer) < cap(logs.buffer) {
		logs.buffer = append(logs.buffer, mess)
	} else if len(logs.buffer) > 0 {
		copy(logs.buffer, logs.buffer[1:])
		logs.buffer[len(logs.buffer)-1] = mess
	}
}

// Lines returns a copy of up to the last n messages, oldest first.
func (logs *Logs) Lines(n int) []string {
	logs.mu.Lock()
	defer logs.mu.Unlock()
	off := moremath.MaxInt(0, len(logs.buffer)-n)
	return append([]string(nil), logs.buffer[off:]...)
}

// Len returns how many messages are buffered.
func (logs *Logs) Len() int {
	logs.mu.Lock()
	defer logs.mu.Unlock()
	return len(logs.buffer)
}

// RenderSize returns the desired and necessary sizes for rendering.
func (logs *Logs) RenderSize() (wanted, needed [2]int) {
	lines := logs.Lines(logs.Max)
	needed[0] = 1
	needed[1] = moremath.MinInt(len(lines), logs.Min)
	wanted[0] = 1
	wanted[1] = len(lines)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > wanted[0] {
			wanted[0] = n
		}
	}
	return wanted, needed
}

// Render draws the newest messages that fit onto a view, bottom aligned.
func (logs *Logs) Render(v views.View) {
	w, h := v.Size()
	lines := logs.Lines(h)
	y := h - len(lines)
	for _, line := range lines {
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			v.SetContent(x, y, r, nil, logs.Style)
			x++
		}
		y++
	}
}

// LogHook is a logrus hook that copies entries into a Logs buffer.
type LogHook struct {
	Logs *Logs
	// Notify, if set, is called after every entry, such as to redraw.
	Notify func()
	// Levels defaults to info and above.
	LevelSet []logrus.Level
}

// Levels implements logrus.Hook.
func (hook *LogHook) Levels() []logrus.Level {
	if hook.LevelSet != nil {
		return hook.LevelSet
	}
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
	}
}

// Fire implements logrus.Hook.
func (hook *LogHook) Fire(ent *logrus.Entry) error {
	var sb strings.Builder
	if ent.Level < logrus.InfoLevel {
		sb.WriteString(strings.ToUpper(ent.Level.String()))
		sb.WriteString(": ")
	}
	sb.WriteString(ent.Message)
	if err, ok := ent.Data[logrus.ErrorKey]; ok {
		fmt.Fprintf(&sb, ": %v", err)
	}
	hook.Logs.Log("%s", sb.String())
	if hook.Notify != nil {
		hook.Notify()
	}
	return nil
}
