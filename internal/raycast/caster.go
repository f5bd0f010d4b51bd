package raycast

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/borkshop/corridor/internal/geom"
	"github.com/borkshop/corridor/internal/logger"
)

// View is the viewer and viewport a frame is cast for.
type View struct {
	Pos    geom.Vec
	Angle  float64
	Width  int
	Height int
}

// Column is the result of casting one screen column.
type Column struct {
	Index int
	// Angle is the ray's heading.
	Angle float64
	// Distance is how far the ray travelled; MaxRange when nothing was hit.
	Distance float64
	// Corrected is Distance projected onto the view direction.
	Corrected float64
	// Height is the wall slice height in rows, at most the view height.
	Height float64
	// Brightness is the slice shade in [MinBrightness, 1].
	Brightness float64
	Hit        bool
	// Wall indexes the segment that was hit, -1 if none.
	Wall int
	// U is the hit parameter along the wall, 0 at its A end.
	U float64
}

// Caster casts views against a set of wall segments.
type Caster struct {
	cfg Config
}

// New returns a caster for a validated config.
func New(cfg Config) (*Caster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Component("raycast").WithFields(logrus.Fields{
		"fov":       cfg.FOV,
		"max_range": cfg.MaxRange,
		"method":    cfg.Method.String(),
	}).Debug("caster ready")
	return &Caster{cfg: cfg}, nil
}

// Config returns the caster's configuration.
func (c *Caster) Config() Config { return c.cfg }

// Cast casts every column of the view.
func (c *Caster) Cast(walls []geom.Segment, v View) []Column {
	return c.CastInto(nil, walls, v)
}

// CastInto is Cast re-using dst's storage when it is large enough.
func (c *Caster) CastInto(dst []Column, walls []geom.Segment, v View) []Column {
	if v.Width <= 0 {
		return dst[:0]
	}
	dst = sized(dst, v.Width)
	c.castRange(dst, walls, v, 0, v.Width)
	return dst
}

// CastParallel is Cast with the columns split into bands, one per worker.
// The columns are identical to those Cast would return.
func (c *Caster) CastParallel(ctx context.Context, walls []geom.Segment, v View) ([]Column, error) {
	if v.Width <= 0 {
		return nil, nil
	}
	cols := make([]Column, v.Width)
	workers := c.cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > v.Width {
		workers = v.Width
	}
	band := (v.Width + workers - 1) / workers

	eg, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < v.Width; lo += band {
		lo, hi := lo, lo+band
		if hi > v.Width {
			hi = v.Width
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.castRange(cols, walls, v, lo, hi)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return cols, nil
}

func (c *Caster) castRange(cols []Column, walls []geom.Segment, v View, lo, hi int) {
	for i := lo; i < hi; i++ {
		ra := RayAngle(v.Angle, c.cfg.FOV, i, v.Width)
		dist, u, wall, hit := c.Ray(walls, v.Pos, ra)
		col := &cols[i]
		*col = Column{
			Index:    i,
			Angle:    ra,
			Distance: dist,
			Hit:      hit,
			Wall:     wall,
			U:        u,
		}
		c.project(col, v)
	}
}

func (c *Caster) project(col *Column, v View) {
	col.Corrected = Corrected(col.Distance, col.Angle, v.Angle)
	col.Height = c.cfg.WallHeight(col.Corrected, v.Height)
	if col.Hit {
		col.Brightness = c.cfg.Brightness(col.Corrected)
	} else {
		col.Brightness = c.cfg.MinBrightness
	}
}

// Ray casts a single ray from pos along angle, returning the distance
// travelled, the hit parameter along the wall, the wall's index, and whether
// a wall was hit. Missing rays report MaxRange and wall -1.
func (c *Caster) Ray(walls []geom.Segment, pos geom.Vec, angle float64) (dist, u float64, wall int, hit bool) {
	dir := geom.FromAngle(angle)
	if c.cfg.Method == Exact {
		return c.exact(walls, pos, dir)
	}
	return c.march(walls, pos, dir)
}

func (c *Caster) march(walls []geom.Segment, pos, dir geom.Vec) (float64, float64, int, bool) {
	steps := int(c.cfg.MaxRange / c.cfg.Step)
	for k := 0; k <= steps; k++ {
		d := float64(k) * c.cfg.Step
		p := pos.Add(dir.Mul(d))
		best, bestU, bestWall := c.cfg.HitThreshold, 0.0, -1
		for i, w := range walls {
			if pd, t := w.DistanceTo(p); pd < best {
				best, bestU, bestWall = pd, t, i
			}
		}
		if bestWall >= 0 {
			return d, bestU, bestWall, true
		}
	}
	return c.cfg.MaxRange, 0, -1, false
}

func (c *Caster) exact(walls []geom.Segment, pos, dir geom.Vec) (float64, float64, int, bool) {
	best, bestU, bestWall := c.cfg.MaxRange, 0.0, -1
	for i, w := range walls {
		if d, u, ok := w.Intersect(pos, dir); ok && d <= best {
			best, bestU, bestWall = d, u, i
		}
	}
	return best, bestU, bestWall, bestWall >= 0
}

func sized(cols []Column, n int) []Column {
	if cap(cols) < n {
		return make([]Column, n)
	}
	return cols[:n]
}
