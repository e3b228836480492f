// Package scene wires gameplay rules to the ECS world: it builds the level,
// maps input to player motion every tick and reacts to star and bomb
// contacts reported by the physics system.
package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"github.com/milk9111/stargrab/ecs/entity"
	"github.com/milk9111/stargrab/gameplay"
	"github.com/milk9111/stargrab/levels"
	"github.com/milk9111/stargrab/prefabs"
)

// Hooks is the scene lifecycle the game loop drives.
type Hooks interface {
	Preload() error
	Create(w *ecs.World) error
	Update(w *ecs.World) error
	OnCollect(w *ecs.World, player, star ecs.Entity)
	OnHit(w *ecs.World, player, hazard ecs.Entity)
}

// Images is the asset source the scene preloads and builds sprites from.
type Images interface {
	entity.ImageSource
	Preload() error
}

// Pauser freezes the simulation when the player is hit.
type Pauser interface {
	Pause()
}

// Event payloads pushed on the world's event queue.
type (
	StarCollected struct {
		Index int
		Score int
	}
	HazardSpawned struct {
		Index  int
		X, Y   float64
		VX, VY float64
	}
	GameOver struct {
		Level   string
		Score   int
		Hazards int
	}
)

type Options struct {
	Level   *levels.Level
	Images  Images
	Rand    gameplay.Rand
	Physics Pauser
	Logger  *log.Logger
}

// Controller implements Hooks for one play session.
type Controller struct {
	level   *levels.Level
	images  Images
	rng     gameplay.Rand
	physics Pauser
	logger  *log.Logger

	session *gameplay.Session
	scene   *entity.Scene
	bombs   []ecs.Entity
	err     error
}

var _ Hooks = (*Controller)(nil)

func NewController(opts Options) (*Controller, error) {
	if opts.Level == nil {
		return nil, fmt.Errorf("scene: level is required")
	}
	if opts.Rand == nil {
		return nil, fmt.Errorf("scene: random source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		level:   opts.Level,
		images:  opts.Images,
		rng:     opts.Rand,
		physics: opts.Physics,
		logger:  logger,
	}, nil
}

func (c *Controller) Session() *gameplay.Session { return c.session }
func (c *Controller) Scene() *entity.Scene       { return c.scene }
func (c *Controller) Level() *levels.Level       { return c.level }

// Err returns the first error raised inside a contact callback.
func (c *Controller) Err() error { return c.err }

func (c *Controller) Preload() error {
	if c.images == nil {
		return nil
	}
	if err := c.images.Preload(); err != nil {
		return fmt.Errorf("scene: preload: %w", err)
	}
	return nil
}

func (c *Controller) Create(w *ecs.World) error {
	stars, err := gameplay.NewCollectibleSet(c.level.Stars, c.rng)
	if err != nil {
		return fmt.Errorf("scene: create stars: %w", err)
	}
	spawner, err := c.newSpawner()
	if err != nil {
		return err
	}
	c.session = gameplay.NewSession(stars, spawner)

	c.scene, err = entity.BuildWorld(w, c.images, c.level, stars)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	c.logger.Info("level ready", "level", c.level.Name, "stars", stars.Len(), "script", c.level.HazardScript)
	return nil
}

func (c *Controller) newSpawner() (gameplay.Spawner, error) {
	if c.level.HazardScript == "" {
		return gameplay.NewHazardSpawner(c.level.Area(), c.level.Hazards, c.rng), nil
	}
	src, err := prefabs.LoadScript(c.level.HazardScript)
	if err != nil {
		return nil, fmt.Errorf("scene: load hazard script %q: %w", c.level.HazardScript, err)
	}
	sp, err := gameplay.NewScriptSpawner(src, c.level.Area(), c.level.Hazards, c.rng)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return sp, nil
}

// ReloadScript recompiles the level's hazard script after an edit. A broken
// script keeps the previous spawner.
func (c *Controller) ReloadScript(name string) error {
	if c.session == nil || c.level.HazardScript == "" || name != c.level.HazardScript {
		return nil
	}
	sp, err := c.newSpawner()
	if err != nil {
		return err
	}
	c.session.SetSpawner(sp)
	c.logger.Info("hazard script reloaded", "script", name)
	return nil
}

// Update maps the latest input sample onto the player body and animation.
// Nothing moves once the session is over.
func (c *Controller) Update(w *ecs.World) error {
	if c.err != nil {
		return c.err
	}
	if c.session == nil || c.scene == nil || c.session.GameOver {
		return nil
	}

	player := c.scene.Player
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return nil
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return nil
	}

	grounded := false
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.Grounded
	}

	tuning := gameplay.DefaultTuning()
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		tuning = gameplay.Tuning{MoveSpeed: p.MoveSpeed, JumpSpeed: p.JumpSpeed}
	}

	m := gameplay.MapInput(gameplay.InputSample{
		Left:  input.Left,
		Right: input.Right,
		Up:    input.Up,
	}, grounded, body.Body.Velocity().Y, tuning)
	body.Body.SetVelocity(m.VX, m.VY)

	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		anim.Play(m.Anim)
	}

	c.trackStars(w)
	return nil
}

// trackStars mirrors physics positions of active stars into the set.
func (c *Controller) trackStars(w *ecs.World) {
	for i, e := range c.scene.Stars {
		if !c.session.Stars.At(i).Active {
			continue
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			c.session.Stars.SetPosition(i, t.X, t.Y)
		}
	}
}

func (c *Controller) OnCollect(w *ecs.World, player, star ecs.Entity) {
	if c.session == nil || c.session.GameOver {
		return
	}
	col, ok := ecs.Get(w, star, component.CollectibleComponent.Kind())
	if !ok {
		return
	}

	playerX := 0.0
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		playerX = t.X
	}

	res, err := c.session.Collect(col.Index, playerX)
	if !res.Collected {
		return
	}

	setStarActive(w, star, false)
	entity.SetScoreText(w, res.Score)
	w.Events().Push(ecs.Event{Type: ecs.EventStarCollected, Data: StarCollected{Index: col.Index, Score: res.Score}})
	c.logger.Debug("star collected", "index", col.Index, "score", res.Score)

	if res.Reset {
		c.resetStars(w)
	}
	if err != nil {
		c.fail(err)
		return
	}
	if res.Hazard != nil {
		c.spawnBomb(w, *res.Hazard)
	}
}

func (c *Controller) resetStars(w *ecs.World) {
	for i, e := range c.scene.Stars {
		s := c.session.Stars.At(i)
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X, t.Y = s.X, s.Y
		}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			body.Body.SetPosition(cp.Vector{X: s.X, Y: s.Y})
			body.Body.SetVelocity(0, 0)
		}
		setStarActive(w, e, true)
	}
	c.logger.Debug("star set reset", "stars", len(c.scene.Stars))
}

func setStarActive(w *ecs.World, star ecs.Entity, active bool) {
	if body, ok := ecs.Get(w, star, component.PhysicsBodyComponent.Kind()); ok {
		body.Disabled = !active
	}
	if sprite, ok := ecs.Get(w, star, component.SpriteComponent.Kind()); ok {
		sprite.Hidden = !active
	}
}

func (c *Controller) spawnBomb(w *ecs.World, h gameplay.Hazard) {
	index := len(c.session.Hazards) - 1
	e, err := entity.NewBomb(w, c.images, index, h)
	if err != nil {
		c.fail(fmt.Errorf("scene: spawn bomb: %w", err))
		return
	}
	c.bombs = append(c.bombs, e)
	w.Events().Push(ecs.Event{Type: ecs.EventHazardSpawned, Data: HazardSpawned{Index: index, X: h.X, Y: h.Y, VX: h.VX, VY: h.VY}})
	c.logger.Info("bomb spawned", "index", index, "x", h.X, "vx", h.VX)
}

// OnHit ends the session: physics stops, the player turns red and faces
// forward. The score is kept.
func (c *Controller) OnHit(w *ecs.World, player, hazard ecs.Entity) {
	if c.session == nil || c.session.GameOver {
		return
	}
	if c.physics != nil {
		c.physics.Pause()
	}

	if err := ecs.Add(w, player, component.TintComponent.Kind(), &component.Tint{R: 1}); err != nil {
		c.logger.Warn("tint player", "error", err)
	}
	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		anim.Play(gameplay.AnimIdle)
	}

	c.session.Hit()
	score := c.session.Score()
	w.Events().Push(ecs.Event{Type: ecs.EventGameOver, Data: GameOver{
		Level:   c.level.Name,
		Score:   score,
		Hazards: len(c.session.Hazards),
	}})
	c.logger.Info("game over", "score", score, "bombs", len(c.session.Hazards))
}

func (c *Controller) fail(err error) {
	if c.err == nil {
		c.err = err
	}
	c.logger.Error("scene callback failed", "error", err)
}

// System adapts Update to the scheduler. Errors surface through Err.
func (c *Controller) System() ecs.System {
	return updateSystem{c}
}

type updateSystem struct {
	c *Controller
}

func (s updateSystem) Update(w *ecs.World) {
	if err := s.c.Update(w); err != nil && s.c.err == nil {
		s.c.err = err
	}
}
