package moremath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInts(t *testing.T) {
	assert.Equal(t, -2, MinInt(3, -2, 7))
	assert.Equal(t, 7, MaxInt(3, -2, 7))
	assert.Equal(t, 0, ClampInt(-4, 0, 10))
	assert.Equal(t, 10, ClampInt(14, 0, 10))
	assert.Equal(t, 5, ClampInt(5, 0, 10))
	assert.Equal(t, -1, IntSign(-7))
	assert.Equal(t, 0, IntSign(0))
	assert.Equal(t, 7, AbsInt(-7))
}

func TestWrapAngle(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       float64
		expected float64
	}{
		{"already wrapped", 1, 1},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"more than a turn", Tau + 0.5, 0.5},
		{"exactly a turn", Tau, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, WrapAngle(tc.in), 1e-12)
		})
	}
}

func TestAngleDiff(t *testing.T) {
	assert.InDelta(t, 0.2, AngleDiff(Tau-0.1, 0.1), 1e-12)
	assert.InDelta(t, -0.2, AngleDiff(0.1, Tau-0.1), 1e-12)
}

func TestScaleByte(t *testing.T) {
	assert.Equal(t, uint8(0), ScaleByte(200, -1))
	assert.Equal(t, uint8(100), ScaleByte(200, 0.5))
	assert.Equal(t, uint8(255), ScaleByte(200, 2))
	assert.Equal(t, 0.5, Lerp(0, 1, 0.5))
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
}
