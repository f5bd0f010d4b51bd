// Package config holds the tunables for a corridor session, loadable from
// YAML and overridable from the command line.
package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the complete set of session tunables.
type Config struct {
	// Level is a built-in level name or a path to a level file.
	Level string `yaml:"level"`
	// Watch reloads the level file whenever it changes on disk.
	Watch bool `yaml:"watch"`
	// TickRate is the simulation and render rate in Hz.
	TickRate float64 `yaml:"tick_rate"`
	// Seed seeds the enemy brain; 0 picks one from the clock.
	Seed int64 `yaml:"seed"`

	Render   Render   `yaml:"render"`
	Movement Movement `yaml:"movement"`
	Enemy    Enemy    `yaml:"enemy"`
	Minimap  Minimap  `yaml:"minimap"`
	Log      Log      `yaml:"log"`
}

// Render configures the raycaster.
type Render struct {
	FOVDegrees    float64 `yaml:"fov_degrees"`
	MaxRange      float64 `yaml:"max_range"`
	Step          float64 `yaml:"step"`
	HitThreshold  float64 `yaml:"hit_threshold"`
	MinBrightness float64 `yaml:"min_brightness"`
	WallScale     float64 `yaml:"wall_scale"`
	Method        string  `yaml:"method"`
	Workers       int     `yaml:"workers"`

	// Grain is how strongly walls are textured with noise, 0 for flat walls.
	Grain float64 `yaml:"grain"`
}

// FOV returns the field of view in radians.
func (r Render) FOV() float64 { return r.FOVDegrees * math.Pi / 180 }

// Movement configures the player.
type Movement struct {
	Speed            float64       `yaml:"speed"`
	SprintFactor     float64       `yaml:"sprint_factor"`
	TurnSpeed        float64       `yaml:"turn_speed"`
	Radius           float64       `yaml:"radius"`
	MouseSensitivity float64       `yaml:"mouse_sensitivity"`
	KeyHold          time.Duration `yaml:"key_hold"`
}

// Enemy configures the perceptron driven opponent.
type Enemy struct {
	Enabled       bool          `yaml:"enabled"`
	Speed         float64       `yaml:"speed"`
	TurnSpeed     float64       `yaml:"turn_speed"`
	Radius        float64       `yaml:"radius"`
	MutationRate  float64       `yaml:"mutation_rate"`
	MutationScale float64       `yaml:"mutation_scale"`
	Epoch         time.Duration `yaml:"epoch"`

	// Start picks the first brain: "seeker" for hand wired weights, or
	// "random" for weights uniform in [-mutation_scale, mutation_scale].
	Start string `yaml:"start"`
}

// Minimap configures the braille overview map.
type Minimap struct {
	Visible bool `yaml:"visible"`
	// Width is the minimap width in terminal cells.
	Width int `yaml:"width"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Level:    "arena",
		TickRate: 30,
		Render: Render{
			FOVDegrees:    60,
			MaxRange:      600,
			Step:          1,
			HitThreshold:  1,
			MinBrightness: 0.15,
			WallScale:     24,
			Grain:         0.2,
			Method:        "march",
		},
		Movement: Movement{
			Speed:            80,
			SprintFactor:     2,
			TurnSpeed:        2.5,
			Radius:           6,
			MouseSensitivity: 0.05,
			KeyHold:          500 * time.Millisecond,
		},
		Enemy: Enemy{
			Enabled:       true,
			Speed:         55,
			TurnSpeed:     3,
			Radius:        8,
			MutationRate:  0.25,
			MutationScale: 0.5,
			Epoch:         4 * time.Second,
			Start:         "seeker",
		},
		Minimap: Minimap{
			Visible: true,
			Width:   24,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
			File:   "corridor.log",
		},
	}
}

// Load overlays the YAML file at path onto the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %q", path)
	}
	return cfg, nil
}

// Tick returns the simulation period.
func (cfg Config) Tick() time.Duration {
	if cfg.TickRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / cfg.TickRate)
}

// Validate returns an error describing every out of range setting.
func (cfg Config) Validate() error {
	var probs []string
	check := func(ok bool, mess string, args ...interface{}) {
		if !ok {
			probs = append(probs, fmt.Sprintf(mess, args...))
		}
	}
	check(cfg.TickRate > 0, "tick_rate must be positive, got %v", cfg.TickRate)
	check(cfg.Render.FOVDegrees > 0 && cfg.Render.FOVDegrees < 180,
		"render.fov_degrees must be in (0, 180), got %v", cfg.Render.FOVDegrees)
	check(cfg.Render.MaxRange > 0, "render.max_range must be positive")
	check(cfg.Render.Step > 0, "render.step must be positive")
	check(cfg.Render.HitThreshold > 0, "render.hit_threshold must be positive")
	check(cfg.Render.MinBrightness >= 0 && cfg.Render.MinBrightness <= 1,
		"render.min_brightness must be in [0, 1]")
	check(cfg.Render.WallScale > 0, "render.wall_scale must be positive")
	check(cfg.Render.Grain >= 0 && cfg.Render.Grain <= 1, "render.grain must be in [0, 1]")
	check(cfg.Render.Method == "march" || cfg.Render.Method == "exact",
		"render.method must be march or exact, got %q", cfg.Render.Method)
	check(cfg.Render.Workers >= 0, "render.workers must not be negative")
	check(cfg.Movement.Speed > 0, "movement.speed must be positive")
	check(cfg.Movement.SprintFactor >= 1, "movement.sprint_factor must be at least 1")
	check(cfg.Movement.Radius > 0, "movement.radius must be positive")
	check(cfg.Movement.KeyHold > 0, "movement.key_hold must be positive")
	if cfg.Enemy.Enabled {
		check(cfg.Enemy.Radius > 0, "enemy.radius must be positive")
		check(cfg.Enemy.MutationRate >= 0 && cfg.Enemy.MutationRate <= 1,
			"enemy.mutation_rate must be in [0, 1]")
		check(cfg.Enemy.Epoch > 0, "enemy.epoch must be positive")
		check(cfg.Enemy.Start == "seeker" || cfg.Enemy.Start == "random",
			"enemy.start must be seeker or random, got %q", cfg.Enemy.Start)
	}
	check(cfg.Minimap.Width >= 4, "minimap.width must be at least 4")
	if len(probs) > 0 {
		return errors.Errorf("invalid config: %s", strings.Join(probs, "; "))
	}
	return nil
}
