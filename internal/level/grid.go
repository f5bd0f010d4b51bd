package level

import (
	"github.com/pkg/errors"

	"github.com/borkshop/corridor/internal/geom"
)

// Grid runes.
const (
	gridSolid = '#'
	gridOpen  = '.'
	gridSpawn = 'P'
	gridEnemy = 'E'
)

type grid struct {
	cell  float64
	w, h  int
	solid []bool

	spawn, enemy *Spawn
}

func parseGrid(rows []string, cell float64) (*grid, error) {
	if cell <= 0 {
		return nil, errors.Errorf("grid cell size must be positive, got %v", cell)
	}
	g := &grid{cell: cell, h: len(rows)}
	for _, row := range rows {
		if n := len([]rune(row)); n > g.w {
			g.w = n
		}
	}
	g.solid = make([]bool, g.w*g.h)
	for y, row := range rows {
		x := 0
		for _, r := range row {
			center := geom.V((float64(x)+0.5)*cell, (float64(y)+0.5)*cell)
			switch r {
			case gridSolid:
				g.solid[y*g.w+x] = true
			case gridOpen, ' ':
			case gridSpawn:
				g.spawn = &Spawn{Pos: center}
			case gridEnemy:
				g.enemy = &Spawn{Pos: center}
			default:
				return nil, errors.Errorf("grid row %d: unknown rune %q", y, r)
			}
			x++
		}
	}
	return g, nil
}

// at reports whether a cell is solid; cells off the grid count as solid so
// that the outer faces of a bordered map produce no segments.
func (g *grid) at(x, y int) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return true
	}
	return g.solid[y*g.w+x]
}

// edges returns the boundary between solid and open cells as segments,
// merging runs of collinear cell faces.
func (g *grid) edges() []geom.Segment {
	var segs []geom.Segment
	c := g.cell

	// horizontal faces lie on the line between rows y-1 and y
	for y := 0; y <= g.h; y++ {
		runStart, runFace := 0, 0
		flush := func(x int) {
			if runFace != 0 {
				fy := float64(y) * c
				segs = append(segs, geom.Seg(float64(runStart)*c, fy, float64(x)*c, fy))
			}
		}
		for x := 0; x <= g.w; x++ {
			face := 0
			if x < g.w {
				face = faceOf(g.at(x, y-1), g.at(x, y))
			}
			if face != runFace {
				flush(x)
				runStart, runFace = x, face
			}
		}
	}

	// vertical faces lie on the line between columns x-1 and x
	for x := 0; x <= g.w; x++ {
		runStart, runFace := 0, 0
		flush := func(y int) {
			if runFace != 0 {
				fx := float64(x) * c
				segs = append(segs, geom.Seg(fx, float64(runStart)*c, fx, float64(y)*c))
			}
		}
		for y := 0; y <= g.h; y++ {
			face := 0
			if y < g.h {
				face = faceOf(g.at(x-1, y), g.at(x, y))
			}
			if face != runFace {
				flush(y)
				runStart, runFace = y, face
			}
		}
	}

	return segs
}

// faceOf classifies the boundary between two neighboring cells: 0 for none,
// 1 when only the first is solid, -1 when only the second is.
func faceOf(a, b bool) int {
	switch {
	case a && !b:
		return 1
	case !a && b:
		return -1
	}
	return 0
}
