package geom_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	. "github.com/borkshop/corridor/internal/geom"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestVec_Rotate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		v        Vec
		a        float64
		expected Vec
	}{
		{"quarter turn", V(1, 0), math.Pi / 2, V(0, 1)},
		{"half turn", V(1, 2), math.Pi, V(-1, -2)},
		{"no turn", V(3, 4), 0, V(3, 4)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expected, tc.v.Rotate(tc.a), approx); diff != "" {
				t.Errorf("unexpected rotation (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVec_basics(t *testing.T) {
	assert.Equal(t, 5.0, V(3, 4).Len())
	assert.Equal(t, V(0, 0), Vec{}.Norm(), "zero vector stays zero")
	assert.InDelta(t, 1.0, V(3, 4).Norm().Len(), 1e-12)
	assert.Equal(t, V(0, 1), V(1, 0).Perp())
	assert.InDelta(t, math.Pi/2, V(0, 2).Angle(), 1e-12)
	assert.InDelta(t, 0.0, FromAngle(0).Y, 1e-12)
	assert.Equal(t, -2.0, V(1, 0).Cross(V(0, -2)))
}

func TestSegment_DistanceTo(t *testing.T) {
	s := Seg(0, 0, 10, 0)
	for _, tc := range []struct {
		name  string
		p     Vec
		dist  float64
		param float64
	}{
		{"perpendicular above middle", V(5, -3), 3, 0.5},
		{"perpendicular below start", V(0, 4), 4, 0},
		{"on the segment", V(7, 0), 0, 0.7},
		{"beyond A uses endpoint", V(-3, 4), 5, 0},
		{"beyond B uses endpoint", V(13, -4), 5, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dist, param := s.DistanceTo(tc.p)
			assert.InDelta(t, tc.dist, dist, 1e-9)
			assert.InDelta(t, tc.param, param, 1e-9)
		})
	}

	t.Run("degenerate segment", func(t *testing.T) {
		dist, param := Seg(1, 1, 1, 1).DistanceTo(V(4, 5))
		assert.InDelta(t, 5, dist, 1e-9)
		assert.Equal(t, 0.0, param)
	})
}

func TestSegment_Intersect(t *testing.T) {
	wall := Seg(10, -5, 10, 5)
	for _, tc := range []struct {
		name   string
		origin Vec
		dir    Vec
		hit    bool
		dist   float64
		u      float64
	}{
		{"straight on", V(0, 0), V(1, 0), true, 10, 0.5},
		{"scaled direction still reports distance", V(0, 0), V(4, 0), true, 10, 0.5},
		{"oblique", V(0, 0), V(4, 1).Norm(), true, math.Hypot(10, 2.5), 0.75},
		{"behind", V(0, 0), V(-1, 0), false, 0, 0},
		{"parallel", V(0, 0), V(0, 1), false, 0, 0},
		{"misses the end", V(0, 0), V(1, 2).Norm(), false, 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dist, u, ok := wall.Intersect(tc.origin, tc.dir)
			assert.Equal(t, tc.hit, ok)
			if tc.hit {
				assert.InDelta(t, tc.dist, dist, 1e-9)
				assert.InDelta(t, tc.u, u, 1e-9)
			}
		})
	}
}

func TestBox(t *testing.T) {
	b := Bx(0, 0, 4, 2)
	assert.True(t, b.Contains(V(4, 2)), "edges are inside")
	assert.False(t, b.Contains(V(4.1, 1)))
	assert.Equal(t, Bx(0, 0, 5, 3), b.ExpandTo(V(5, 3)))
	assert.Equal(t, V(4, 1), b.ClosestPoint(V(9, 1)))
	assert.True(t, b.IntersectsCircle(V(5, 1), 1.5))
	assert.False(t, b.IntersectsCircle(V(5, 1), 0.5))
	assert.True(t, Box{V(3, 3), V(1, 1)}.Empty())
	assert.Equal(t, Bx(1, 1, 2, 2), Box{V(3, 3), V(1, 1)}.Canon())

	edges := b.Edges()
	var perimeter float64
	for _, e := range edges {
		perimeter += e.Len()
	}
	assert.Equal(t, 12.0, perimeter)
	assert.Equal(t, edges[0].B, edges[1].A, "edges are connected")
}
