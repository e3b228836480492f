package gameplay

import "math"

// PlayArea is the size of the screen the hazards bounce around in.
type PlayArea struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (a PlayArea) MidX() float64 { return a.Width / 2 }

// HazardConfig tunes spawned bombs.
type HazardConfig struct {
	SpawnY    float64 `json:"spawn_y"`
	MaxSpeedX int     `json:"max_speed_x"`
	SpeedY    float64 `json:"speed_y"`
	Bounce    float64 `json:"bounce"`
}

func DefaultHazardConfig() HazardConfig {
	return HazardConfig{SpawnY: 16, MaxSpeedX: 200, SpeedY: 20, Bounce: 1}
}

type Hazard struct {
	X, Y               float64
	VX, VY             float64
	Bounce             float64
	CollideWorldBounds bool
}

// Spawner picks where the next bomb appears given the player's x.
type Spawner interface {
	Spawn(playerX float64) (Hazard, error)
}

// HazardSpawner drops bombs on the half of the screen away from the player.
type HazardSpawner struct {
	area PlayArea
	cfg  HazardConfig
	rng  Rand
}

func NewHazardSpawner(area PlayArea, cfg HazardConfig, r Rand) *HazardSpawner {
	return &HazardSpawner{area: area, cfg: cfg, rng: r}
}

// Spawn returns x in [mid, width] when the player is left of mid, otherwise
// x in [0, mid).
func (s *HazardSpawner) Spawn(playerX float64) (Hazard, error) {
	lo, hi := oppositeHalf(s.area, playerX)
	return Hazard{
		X:                  float64(IntBetween(s.rng, lo, hi)),
		Y:                  s.cfg.SpawnY,
		VX:                 float64(IntBetween(s.rng, -s.cfg.MaxSpeedX, s.cfg.MaxSpeedX)),
		VY:                 s.cfg.SpeedY,
		Bounce:             s.cfg.Bounce,
		CollideWorldBounds: true,
	}, nil
}

// oppositeHalf is the inclusive integer x range away from playerX:
// [mid, width] when the player is left of mid, otherwise [0, mid-1].
func oppositeHalf(area PlayArea, playerX float64) (lo, hi int) {
	mid := int(math.Round(area.MidX()))
	if playerX < area.MidX() {
		return mid, int(math.Round(area.Width))
	}
	return 0, mid - 1
}
