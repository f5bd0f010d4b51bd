package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/views"
	"github.com/sirupsen/logrus"

	"github.com/borkshop/corridor/internal/config"
	"github.com/borkshop/corridor/internal/frame"
	"github.com/borkshop/corridor/internal/game"
	"github.com/borkshop/corridor/internal/hud"
	"github.com/borkshop/corridor/internal/input"
	"github.com/borkshop/corridor/internal/level"
	"github.com/borkshop/corridor/internal/logger"
	"github.com/borkshop/corridor/internal/minimap"
	"github.com/borkshop/corridor/internal/perf"
	"github.com/borkshop/corridor/internal/raycast"
)

var enemyColor = color.RGBA{0xd0, 0x30, 0x30, 0xff}

// noticeFor is how long a notice stays in the middle of the status line.
const noticeFor = 2 * time.Second

// session is everything one run of the game needs, independent of the
// terminal application driving it.
type session struct {
	ctx     context.Context
	cfg     config.Config
	rcfg    raycast.Config
	caster  *raycast.Caster
	world   *game.World
	keys    input.Keys
	pointer input.Pointer
	perf    perf.Perf
	dash    perf.Dash
	mini    *minimap.Map
	showMap bool
	frame   *frame.Frame
	cols    []raycast.Column
	logs    *hud.Logs
	log     *logrus.Entry

	notice      string
	noticeUntil time.Time
}

func newSession(ctx context.Context, cfg config.Config, lvl *level.Level) (*session, error) {
	rcfg, err := renderConfig(cfg.Render)
	if err != nil {
		return nil, err
	}
	caster, err := raycast.New(rcfg)
	if err != nil {
		return nil, err
	}
	s := &session{
		ctx:     ctx,
		cfg:     cfg,
		rcfg:    rcfg,
		caster:  caster,
		world:   game.NewWorld(lvl, gameParams(cfg), newRand(cfg.Seed)),
		showMap: cfg.Minimap.Visible,
		frame:   frame.New(0, 0),
		mini:    minimap.New(cfg.Minimap.Width, lvl.Bounds),
		log:     logger.Component("session"),
	}
	s.keys.Hold = cfg.Movement.KeyHold
	s.pointer.Sensitivity = cfg.Movement.MouseSensitivity
	s.mini.Style = tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorLightGreen)
	s.frame.SetGrain(cfg.Seed, cfg.Render.Grain)
	s.perf.Init("", "corridor")
	s.dash.Perf = &s.perf
	return s, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// tick advances the world by dt using the input held as of now, and posts
// or expires the status notice.
func (s *session) tick(now time.Time, dt time.Duration) []game.Event {
	in := s.keys.Intent(now)
	in.Yaw = s.pointer.TakeYaw()
	events := s.world.Step(dt, in)
	for _, ev := range events {
		if ev.Kind == game.Caught {
			s.notice, s.noticeUntil = "caught!", now.Add(noticeFor)
		}
	}
	if s.notice != "" && !now.Before(s.noticeUntil) {
		s.notice = ""
	}
	return events
}

// handleEvent feeds keyboard and mouse input to the player controls.
func (s *session) handleEvent(ev tcell.Event) bool {
	if s.pointer.HandleEvent(ev) {
		return true
	}
	if s.dash.HandleEvent(ev) {
		return true
	}
	if ev, ok := ev.(*tcell.EventKey); ok {
		if act, sprint := input.ParseEvent(ev); act != input.NoAction {
			s.keys.Press(act, sprint, ev.When())
			return true
		}
	}
	return false
}

func (s *session) reset() {
	s.world.Reset()
	s.keys.Reset()
}

func (s *session) reload(lvl *level.Level) {
	s.world.Reload(lvl)
	w, _ := s.mini.Size()
	s.mini.Fit(w, lvl.Bounds)
}

func (s *session) toggleMap() { s.showMap = !s.showMap }

// viewFor returns the raycast view of the player for a w × h pixel frame.
func (s *session) viewFor(w, h int) raycast.View {
	return raycast.View{
		Pos:    s.world.Player.Pos,
		Angle:  s.world.Player.Angle,
		Width:  w,
		Height: h,
	}
}

// renderFrame casts and rasterizes the player's view into the session frame.
func (s *session) renderFrame() error {
	w, h := s.frame.Pixels()
	v := s.viewFor(w, h)
	surfaces := s.world.Level.Surfaces()
	if s.rcfg.Workers == 1 {
		s.cols = s.caster.CastInto(s.cols, surfaces, v)
	} else {
		cols, err := s.caster.CastParallel(s.ctx, surfaces, v)
		if err != nil {
			return err
		}
		s.cols = cols
	}
	s.frame.DrawView(s.cols, s.world.Level, frame.DefaultPalette)
	if en := s.world.Enemy; en != nil {
		s.frame.DrawSprite(v, s.rcfg, frame.Sprite{
			Pos:    en.Pos,
			Radius: en.Radius,
			Height: 0.6,
			Color:  enemyColor,
		})
	}
	return nil
}

// draw renders everything onto a view: the first person frame, then the
// minimap in the top right corner and recent log lines in the bottom left.
func (s *session) draw(view views.View) {
	s.perf.Measure(func() {
		w, h := view.Size()
		s.frame.Resize(w, h)
		if err := s.renderFrame(); err != nil {
			s.log.WithError(err).Debug("frame abandoned")
			return
		}
		s.frame.Blit(view)

		if r := s.mapBounds(w, h); !r.Empty() {
			s.mini.Draw(s.scene())
			s.mini.Render(views.NewViewPort(view, r.Min.X, r.Min.Y, r.Dx(), r.Dy()))
		}
		if s.logs != nil {
			if wanted, _ := s.logs.RenderSize(); wanted[1] > 0 && h > wanted[1] {
				lw := wanted[0]
				if lw > w {
					lw = w
				}
				s.logs.Render(views.NewViewPort(view, 0, h-wanted[1], lw, wanted[1]))
			}
		}
	})
}

func (s *session) scene() minimap.Scene {
	sc := minimap.Scene{
		Level:  s.world.Level,
		Viewer: s.world.Player.Pos,
		Angle:  s.world.Player.Angle,
		FOV:    s.rcfg.FOV,
		Range:  s.rcfg.MaxRange,
	}
	if en := s.world.Enemy; en != nil {
		pos := en.Pos
		sc.Enemy = &pos
	}
	return sc
}

// status returns the left, center and right parts of the status line.
func (s *session) status() (left, center, right string) {
	p := s.world.Player
	left = fmt.Sprintf("%s  pos=%.0f,%.0f  heading=%.0f°",
		s.world.Level.Name, p.Pos.X, p.Pos.Y, p.Angle*180/math.Pi)
	if en := s.world.Enemy; en != nil {
		left += fmt.Sprintf("  gen=%d caught=%d", en.Brain.Gen(), en.Catches)
		if best := en.Brain.BestScore(); !math.IsInf(best, 1) {
			left += fmt.Sprintf(" best=%.2f", best)
		}
	}
	if s.pointer.Locked() {
		left += "  [mouse]"
	}
	return left, s.notice, s.dash.String()
}

// mapBounds returns where the minimap is drawn within a w × h view, or an
// empty rectangle if it is hidden.
func (s *session) mapBounds(w, h int) image.Rectangle {
	if !s.showMap {
		return image.ZR
	}
	mw, mh := s.mini.Size()
	if mw > w || mh > h {
		return image.ZR
	}
	return image.Rect(w-mw, 0, w, mh)
}
