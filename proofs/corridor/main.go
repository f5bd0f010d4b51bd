package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/views"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/borkshop/corridor/internal/hud"
	"github.com/borkshop/corridor/internal/level"
	"github.com/borkshop/corridor/internal/logger"
	"github.com/borkshop/corridor/internal/watch"
)

var helpLines = []string{
	`/ Movement ----------------------------------------\`,
	`|  w / s      : walk forward / back                |`,
	`|  a / d      : strafe left / right                |`,
	`|  arrows     : turn, or walk with up / down       |`,
	`|  W A S D    : (shifted) sprint                   |`,
	`|  click      : capture the mouse to look around   |`,
	`|  Esc        : release the mouse                  |`,
	`|  *          : toggle profiling                   |`,
	`\--------------------------------------------------/`,
}

func runPlay(cmd *cobra.Command, args []string) error {
	lvl, err := loadLevel(cfg.Level)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess, err := newSession(ctx, cfg, lvl)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.perf.Close(); err != nil {
			sess.log.WithError(err).Warn("profiler")
		}
	}()

	app := &views.Application{}
	h := hud.New("corridor", newView(sess), 50)
	sess.logs = &h.Logs
	logger.Log.AddHook(&hud.LogHook{Logs: &h.Logs})
	h.Quit = app.Quit
	h.Refresh = app.Refresh
	h.Keys.AddAction('?', "Help", func() { h.Help(helpLines) })
	h.Keys.AddAction('M', "Map", sess.toggleMap)
	h.Keys.AddAction('R', "Reset", sess.reset)
	h.Keys.AddAction('Q', "Quit", app.Quit)
	app.SetRootWidget(h)

	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	app.SetScreen(scr)
	app.PostFunc(func() {
		scr.EnableMouse()
		h.Title.SetRight(fmt.Sprintf("colors=%v", scr.Colors()), tcell.StyleDefault)
	})

	if cfg.Watch && !isBuiltin(cfg.Level) {
		w, err := watch.New(cfg.Level)
		if err != nil {
			return err
		}
		w.OnReload = func(lvl *level.Level) {
			app.PostFunc(func() { sess.reload(lvl) })
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	var eg errgroup.Group
	eg.Go(func() error {
		tickLoop(ctx, cfg.Tick(), app.PostFunc, func(now time.Time, dt time.Duration) {
			sess.tick(now, dt)
			left, center, right := sess.status()
			h.Status.SetLeft(left)
			h.Status.SetCenter(center)
			h.Status.SetRight(right)
		})
		return nil
	})
	logger.Log.WithField("level", lvl.Name).Info("corridor started")
	err = app.Run()
	cancel()
	if werr := eg.Wait(); err == nil {
		err = werr
	}
	return err
}

// tickLoop calls tick through post every period until ctx is done.
func tickLoop(ctx context.Context, period time.Duration, post func(func()), tick func(now time.Time, dt time.Duration)) {
	t := time.NewTicker(period)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			dt := now.Sub(last)
			last = now
			post(func() { tick(now, dt) })
		}
	}
}

func isBuiltin(name string) bool {
	for _, b := range level.Builtin() {
		if b == name {
			return true
		}
	}
	return false
}

func runLevels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range level.Builtin() {
		lvl, err := level.Load(name)
		if err != nil {
			return err
		}
		enemy := "-"
		if lvl.Enemy != nil {
			enemy = "enemy"
		}
		size := lvl.Bounds.Size()
		fmt.Fprintf(out, "%-8s %3d walls %3d obstacles %4.0fx%-4.0f %s %s\n",
			name, len(lvl.Walls), len(lvl.Obstacles), size.X, size.Y,
			lvl.SurfaceColor(0).Hex(), enemy)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var logCloser func() error

func setupLogging(file string) error {
	out, closer, err := logger.OpenFile(file)
	if err != nil {
		return err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format, out)
	logCloser = closer
	return nil
}
