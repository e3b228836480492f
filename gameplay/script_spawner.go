package gameplay

import (
	"errors"
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var ErrScriptResult = errors.New("gameplay: hazard script result")

// ScriptSpawner runs a tengo script to place bombs. The script sees
//
//	player_x, width, height, spawn_y, max_speed_x, speed_y, bounce
//	r1, r2   uniform draws in [0, 1) from the session's random source
//
// and must assign x, vx and vy. The result is held to the same rules as
// HazardSpawner: x is clamped into the half away from the player, vx into
// [-max_speed_x, max_speed_x], and y and bounce always come from the config.
type ScriptSpawner struct {
	area     PlayArea
	cfg      HazardConfig
	rng      Rand
	compiled *tengo.Compiled
}

func NewScriptSpawner(src []byte, area PlayArea, cfg HazardConfig, r Rand) (*ScriptSpawner, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))

	defaults := map[string]any{
		"player_x":    0.0,
		"width":       area.Width,
		"height":      area.Height,
		"spawn_y":     cfg.SpawnY,
		"max_speed_x": cfg.MaxSpeedX,
		"speed_y":     cfg.SpeedY,
		"bounce":      cfg.Bounce,
		"r1":          0.0,
		"r2":          0.0,
		"x":           0.0,
		"y":           cfg.SpawnY,
		"vx":          0.0,
		"vy":          cfg.SpeedY,
	}
	for name, v := range defaults {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("gameplay: hazard script: add %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("gameplay: hazard script: compile: %w", err)
	}
	return &ScriptSpawner{area: area, cfg: cfg, rng: r, compiled: compiled}, nil
}

func (s *ScriptSpawner) Spawn(playerX float64) (Hazard, error) {
	c := s.compiled.Clone()
	inputs := map[string]any{
		"player_x": playerX,
		"r1":       s.rng.Float64(),
		"r2":       s.rng.Float64(),
	}
	for name, v := range inputs {
		if err := c.Set(name, v); err != nil {
			return Hazard{}, fmt.Errorf("gameplay: hazard script: set %s: %w", name, err)
		}
	}
	if err := c.Run(); err != nil {
		return Hazard{}, fmt.Errorf("gameplay: hazard script: run: %w", err)
	}

	h := Hazard{CollideWorldBounds: true}
	var err error
	if h.X, err = scriptFloat(c, "x"); err != nil {
		return Hazard{}, err
	}
	if h.VX, err = scriptFloat(c, "vx"); err != nil {
		return Hazard{}, err
	}
	if h.VY, err = scriptFloat(c, "vy"); err != nil {
		return Hazard{}, err
	}

	lo, hi := oppositeHalf(s.area, playerX)
	h.X = math.Max(float64(lo), math.Min(h.X, float64(hi)))
	maxVX := float64(s.cfg.MaxSpeedX)
	h.VX = math.Max(-maxVX, math.Min(h.VX, maxVX))
	h.Y = s.cfg.SpawnY
	h.Bounce = s.cfg.Bounce
	return h, nil
}

func scriptFloat(c *tengo.Compiled, name string) (float64, error) {
	v := c.Get(name)
	if v == nil || v.IsUndefined() {
		return 0, fmt.Errorf("%w: %s is undefined", ErrScriptResult, name)
	}
	switch v.ValueType() {
	case "float", "int":
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %s is not finite", ErrScriptResult, name)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s has type %s", ErrScriptResult, name, v.ValueType())
	}
}
