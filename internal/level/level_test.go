package level

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borkshop/corridor/internal/geom"
)

func TestBuiltin(t *testing.T) {
	names := Builtin()
	assert.Equal(t, []string{"arena", "hunt", "maze"}, names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, lvl.Name)
			assert.NotEmpty(t, lvl.Surfaces())
			assert.NoError(t, lvl.CheckClearance(6, 8), "spawns clear of walls")
		})
	}
}

func TestLoad_arena(t *testing.T) {
	lvl, err := Load("arena")
	require.NoError(t, err)

	assert.Len(t, lvl.Walls, 7)
	assert.Len(t, lvl.Obstacles, 3)
	assert.Len(t, lvl.Surfaces(), 7+3*4)
	assert.Equal(t, geom.Bx(0, 0, 400, 400), lvl.Bounds)
	assert.Equal(t, geom.V(60, 60), lvl.Spawn.Pos)
	assert.InDelta(t, 0.785398, lvl.Spawn.Angle, 1e-6)
	assert.Nil(t, lvl.Enemy)

	assert.Equal(t, DefaultWallColor, lvl.SurfaceColor(0))
	assert.Equal(t, "#5a7fa8", lvl.SurfaceColor(4).Hex())
	assert.Equal(t, DefaultObstacleColor, lvl.SurfaceColor(7))
	assert.Equal(t, "#c08a3a", lvl.SurfaceColor(7+4).Hex())
	assert.Equal(t, DefaultWallColor, lvl.SurfaceColor(-1))
	assert.Equal(t, DefaultWallColor, lvl.SurfaceColor(1000))
}

func TestLevel_Collides(t *testing.T) {
	lvl := New("box", Spawn{Pos: geom.V(5, 5)}, nil,
		[]Wall{{Segment: geom.Seg(0, 0, 100, 0)}},
		[]Obstacle{{Box: geom.Bx(50, 50, 10, 10)}},
	)
	for _, tc := range []struct {
		name     string
		p        geom.Vec
		r        float64
		expected bool
	}{
		{"clear", geom.V(20, 20), 5, false},
		{"touching wall", geom.V(20, 4), 5, true},
		{"touching box", geom.V(45, 55), 6, true},
		{"inside box", geom.V(55, 55), 1, true},
		{"near box corner", geom.V(45, 45), 5, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, lvl.Collides(tc.p, tc.r))
		})
	}
}

func TestLevel_Clearance(t *testing.T) {
	lvl := New("box", Spawn{Pos: geom.V(5, 5)}, nil,
		[]Wall{{Segment: geom.Seg(0, 0, 100, 0)}},
		[]Obstacle{{Box: geom.Bx(50, 50, 10, 10)}},
	)
	for _, tc := range []struct {
		name     string
		p        geom.Vec
		expected float64
	}{
		{"nearest the wall", geom.V(20, 4), 4},
		{"nearest the box", geom.V(55, 47), 3},
		{"off a box corner", geom.V(63, 64), 5},
		{"inside the box", geom.V(55, 55), 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, lvl.Clearance(tc.p), 1e-9)
		})
	}
}

func TestLevel_CheckClearance(t *testing.T) {
	walls := []Wall{
		{Segment: geom.Seg(0, 0, 200, 0)},
		{Segment: geom.Seg(200, 0, 200, 200)},
		{Segment: geom.Seg(200, 200, 0, 200)},
		{Segment: geom.Seg(0, 200, 0, 0)},
	}
	for _, tc := range []struct {
		name     string
		player   geom.Vec
		enemy    *Spawn
		problems int
	}{
		{"both clear", geom.V(100, 100), &Spawn{Pos: geom.V(150, 150)}, 0},
		{"no enemy", geom.V(100, 100), nil, 0},
		{"player against a wall", geom.V(3, 100), nil, 1},
		{"both against walls", geom.V(3, 100), &Spawn{Pos: geom.V(150, 196)}, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lvl := New("room", Spawn{Pos: tc.player}, tc.enemy, walls, nil)
			require.NoError(t, lvl.Validate(), "only the radius makes it a problem")
			err := lvl.CheckClearance(5, 8)
			if tc.problems == 0 {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Len(t, ve.Problems, tc.problems, "%v", ve.Problems)
			assert.Contains(t, err.Error(), "closer than its radius")
		})
	}
}

func TestParse_grid(t *testing.T) {
	for _, tc := range []struct {
		name     string
		grid     string
		expected []geom.Segment
	}{
		{
			name: "single cell",
			grid: `["###", "#P#", "###"]`,
			expected: []geom.Segment{
				geom.Seg(10, 10, 20, 10),
				geom.Seg(10, 20, 20, 20),
				geom.Seg(10, 10, 10, 20),
				geom.Seg(20, 10, 20, 20),
			},
		},
		{
			name: "corridor merges faces",
			grid: `["####", "#P.#", "####"]`,
			expected: []geom.Segment{
				geom.Seg(10, 10, 30, 10),
				geom.Seg(10, 20, 30, 20),
				geom.Seg(10, 10, 10, 20),
				geom.Seg(30, 10, 30, 20),
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Parse([]byte("cell: 10\ngrid: "+tc.grid), tc.name)
			require.NoError(t, err)
			segs := make([]geom.Segment, len(lvl.Walls))
			for i, w := range lvl.Walls {
				segs[i] = w.Segment
			}
			assert.Equal(t, tc.expected, segs)
			assert.Equal(t, geom.V(15, 15), lvl.Spawn.Pos)
		})
	}
}

func TestParse_errors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		data   string
		errStr string
	}{
		{"not yaml", "walls: [", "parsing level"},
		{"no spawn", "walls: [{from: [0, 0], to: [1, 0]}]", "no player spawn"},
		{"bad color", "spawn: {x: 1, y: 1}\nwalls: [{from: [0, 0], to: [9, 0], color: red}]", "invalid color"},
		{"bad rune", "cell: 10\ngrid: ['#P?#']", "unknown rune"},
		{"no cell", "grid: ['#P#']", "cell size"},
		{"zero length wall", "spawn: {x: 1, y: 1}\nwalls: [{from: [0, 0], to: [0, 0]}, {from: [0, 0], to: [9, 9]}]", "zero length"},
		{"spawn in box", "spawn: {x: 5, y: 5}\nobstacles: [{at: [0, 0], size: [10, 10]}]", "inside obstacle"},
		{"spawn outside", "spawn: {x: 50, y: 50}\nwalls: [{from: [0, 0], to: [10, 10]}]", "outside"},
		{"nothing at all", "spawn: {x: 5, y: 5}", "no walls"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.name)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.errStr)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	lvl := New("bad", Spawn{Pos: geom.V(5, 5)}, &Spawn{Pos: geom.V(5, 5)}, nil,
		[]Obstacle{{Box: geom.Bx(0, 0, 10, 10)}, {Box: geom.Bx(3, 3, 0, 1)}})
	err := lvl.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "bad", ve.Level)
	assert.Len(t, ve.Problems, 3, "%v", ve.Problems)
}

func TestLoad_file(t *testing.T) {
	name := filepath.Join(t.TempDir(), "closet.yaml")
	require.NoError(t, os.WriteFile(name, []byte(`
spawn: {x: 5, y: 5, angle: 90}
walls:
  - {from: [0, 0], to: [10, 0]}
  - {from: [10, 0], to: [10, 10]}
`), 0644))
	lvl, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, "closet", lvl.Name)
	assert.Len(t, lvl.Surfaces(), 2)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0a0b0c")
	require.NoError(t, err)
	assert.Equal(t, Color{0x0a, 0x0b, 0x0c, 0xff}, c)
	assert.Equal(t, "#0a0b0c", c.Hex())
	_, err = ParseColor("0a0b0c")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
