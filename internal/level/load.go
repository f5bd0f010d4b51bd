package level

import (
	"embed"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/borkshop/corridor/internal/geom"
)

//go:embed levels/*.yaml
var builtins embed.FS

// file is the on-disk level format. A level either lists its walls and
// obstacles, or draws them with a grid of runes.
type file struct {
	Name      string         `yaml:"name"`
	Spawn     *spawnSpec     `yaml:"spawn"`
	Enemy     *spawnSpec     `yaml:"enemy"`
	Walls     []wallSpec     `yaml:"walls"`
	Obstacles []obstacleSpec `yaml:"obstacles"`

	Cell      float64  `yaml:"cell"`
	Grid      []string `yaml:"grid"`
	WallColor string   `yaml:"wall_color"`
}

type spawnSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Angle is in degrees.
	Angle float64 `yaml:"angle"`
}

type wallSpec struct {
	From  [2]float64 `yaml:"from"`
	To    [2]float64 `yaml:"to"`
	Color string     `yaml:"color"`
}

type obstacleSpec struct {
	At    [2]float64 `yaml:"at"`
	Size  [2]float64 `yaml:"size"`
	Color string     `yaml:"color"`
}

func (s *spawnSpec) spawn() Spawn {
	return Spawn{Pos: geom.V(s.X, s.Y), Angle: s.Angle * math.Pi / 180}
}

func colorOr(s string, dflt Color) (Color, error) {
	if s == "" {
		return dflt, nil
	}
	return ParseColor(s)
}

// Builtin returns the names of the embedded levels.
func Builtin() []string {
	ents, _ := builtins.ReadDir("levels")
	names := make([]string, 0, len(ents))
	for _, ent := range ents {
		names = append(names, strings.TrimSuffix(ent.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Load loads a built-in level by name, or else a level file by path.
func Load(name string) (*Level, error) {
	if data, err := builtins.ReadFile(path.Join("levels", name+".yaml")); err == nil {
		return Parse(data, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "loading level %q", name)
	}
	base := filepath.Base(name)
	return Parse(data, strings.TrimSuffix(base, filepath.Ext(base)))
}

// Parse decodes and validates a YAML level. The name is used when the file
// doesn't carry one.
func Parse(data []byte, name string) (*Level, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing level %q", name)
	}
	if f.Name == "" {
		f.Name = name
	}
	lvl, err := f.build()
	if err != nil {
		return nil, errors.Wrapf(err, "building level %q", f.Name)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

func (f *file) build() (*Level, error) {
	wallColor, err := colorOr(f.WallColor, DefaultWallColor)
	if err != nil {
		return nil, err
	}

	var (
		spawn *Spawn
		enemy *Spawn
		walls []Wall
	)
	if len(f.Grid) > 0 {
		g, err := parseGrid(f.Grid, f.Cell)
		if err != nil {
			return nil, err
		}
		for _, s := range g.edges() {
			walls = append(walls, Wall{Segment: s, Color: wallColor})
		}
		spawn, enemy = g.spawn, g.enemy
	}

	for i, ws := range f.Walls {
		c, err := colorOr(ws.Color, wallColor)
		if err != nil {
			return nil, errors.Wrapf(err, "wall %d", i)
		}
		walls = append(walls, Wall{
			Segment: geom.Seg(ws.From[0], ws.From[1], ws.To[0], ws.To[1]),
			Color:   c,
		})
	}

	obstacles := make([]Obstacle, 0, len(f.Obstacles))
	for i, ob := range f.Obstacles {
		c, err := colorOr(ob.Color, DefaultObstacleColor)
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %d", i)
		}
		obstacles = append(obstacles, Obstacle{
			Box:   geom.Bx(ob.At[0], ob.At[1], ob.Size[0], ob.Size[1]),
			Color: c,
		})
	}

	if f.Spawn != nil {
		s := f.Spawn.spawn()
		spawn = &s
	}
	if spawn == nil {
		return nil, errors.New("no player spawn")
	}
	if f.Enemy != nil {
		s := f.Enemy.spawn()
		enemy = &s
	}
	return New(f.Name, *spawn, enemy, walls, obstacles), nil
}
