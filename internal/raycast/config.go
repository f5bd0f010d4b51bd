package raycast

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Method selects how a ray finds its wall.
type Method uint8

const (
	// March steps along the ray testing point-to-segment distances.
	March Method = iota
	// Exact intersects the ray with every segment in closed form.
	Exact
)

func (m Method) String() string {
	switch m {
	case March:
		return "march"
	case Exact:
		return "exact"
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// ParseMethod maps a method name to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "march", "":
		return March, nil
	case "exact":
		return Exact, nil
	}
	return March, errors.Errorf("unknown cast method %q", s)
}

// Config holds the raycaster parameters.
type Config struct {
	// FOV is the horizontal field of view in radians.
	FOV float64
	// MaxRange is how far a ray travels before giving up.
	MaxRange float64
	// Step is the march increment.
	Step float64
	// HitThreshold is the point-to-segment distance under which a marching
	// ray has hit a wall.
	HitThreshold float64
	// MinBrightness is the brightness floor for distant walls.
	MinBrightness float64
	// WallScale is the corrected distance at which a wall exactly fills the
	// view height.
	WallScale float64
	Method    Method
	// Workers bounds CastParallel; zero means one per CPU.
	Workers int
}

// DefaultConfig returns a 60 degree unit-step marcher.
func DefaultConfig() Config {
	return Config{
		FOV:           math.Pi / 3,
		MaxRange:      600,
		Step:          1,
		HitThreshold:  1,
		MinBrightness: 0.15,
		WallScale:     24,
		Method:        March,
	}
}

// ErrConfig is the cause of every Validate failure.
var ErrConfig = errors.New("invalid raycast config")

// Validate rejects configurations that cannot produce a view.
func (cfg Config) Validate() error {
	switch {
	case !(cfg.FOV > 0 && cfg.FOV < math.Pi):
		return errors.Wrapf(ErrConfig, "fov %v outside (0, π)", cfg.FOV)
	case !(cfg.MaxRange > 0):
		return errors.Wrapf(ErrConfig, "max range %v", cfg.MaxRange)
	case !(cfg.Step > 0):
		return errors.Wrapf(ErrConfig, "step %v", cfg.Step)
	case !(cfg.HitThreshold > 0):
		return errors.Wrapf(ErrConfig, "hit threshold %v", cfg.HitThreshold)
	case cfg.MinBrightness < 0 || cfg.MinBrightness > 1:
		return errors.Wrapf(ErrConfig, "min brightness %v", cfg.MinBrightness)
	case !(cfg.WallScale > 0):
		return errors.Wrapf(ErrConfig, "wall scale %v", cfg.WallScale)
	case cfg.Method > Exact:
		return errors.Wrapf(ErrConfig, "method %v", cfg.Method)
	case cfg.Workers < 0:
		return errors.Wrapf(ErrConfig, "workers %d", cfg.Workers)
	}
	return nil
}
