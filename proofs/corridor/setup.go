package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/borkshop/corridor/internal/config"
	"github.com/borkshop/corridor/internal/game"
	"github.com/borkshop/corridor/internal/level"
	"github.com/borkshop/corridor/internal/logger"
	"github.com/borkshop/corridor/internal/raycast"
)

// renderConfig converts the render settings into a raycaster config.
func renderConfig(r config.Render) (raycast.Config, error) {
	method, err := raycast.ParseMethod(r.Method)
	if err != nil {
		return raycast.Config{}, err
	}
	rcfg := raycast.Config{
		FOV:           r.FOV(),
		MaxRange:      r.MaxRange,
		Step:          r.Step,
		HitThreshold:  r.HitThreshold,
		MinBrightness: r.MinBrightness,
		WallScale:     r.WallScale,
		Method:        method,
		Workers:       r.Workers,
	}
	return rcfg, rcfg.Validate()
}

// gameParams converts the movement and enemy settings into simulation
// parameters.
func gameParams(cfg config.Config) game.Params {
	return game.Params{
		Speed:        cfg.Movement.Speed,
		SprintFactor: cfg.Movement.SprintFactor,
		TurnSpeed:    cfg.Movement.TurnSpeed,
		Radius:       cfg.Movement.Radius,
		Enemy: game.EnemyParams{
			Enabled:       cfg.Enemy.Enabled,
			Speed:         cfg.Enemy.Speed,
			TurnSpeed:     cfg.Enemy.TurnSpeed,
			Radius:        cfg.Enemy.Radius,
			MutationRate:  cfg.Enemy.MutationRate,
			MutationScale: cfg.Enemy.MutationScale,
			Epoch:         cfg.Enemy.Epoch,
			RandomStart:   cfg.Enemy.Start == "random",
		},
	}
}

// loadLevel loads the configured level; level.Load validates it.
func loadLevel(name string) (*level.Level, error) {
	lvl, err := level.Load(name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot start")
	}
	logger.Component("setup").WithFields(logrus.Fields{
		"level":     lvl.Name,
		"surfaces":  len(lvl.Surfaces()),
		"has_enemy": lvl.Enemy != nil,
	}).Debug("level loaded")
	return lvl, nil
}
