package main

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/stargrab/assets"
	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"github.com/milk9111/stargrab/ecs/system"
	"github.com/milk9111/stargrab/gameplay"
	"github.com/milk9111/stargrab/levels"
	"github.com/milk9111/stargrab/prefabs"
	"github.com/milk9111/stargrab/scene"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

type GameOptions struct {
	Level    *levels.Level
	Rand     gameplay.Rand
	Recorder scene.ScoreRecorder
	Watcher  *prefabs.Watcher
	Debug    bool
	Logger   *log.Logger
}

type Game struct {
	world     *ecs.World
	input     *system.InputSystem
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem

	controller *scene.Controller
	results    *scene.Results
	logger     *log.Logger

	debug   bool
	created bool
	paused  bool
	quit    bool

	pauseUI    *ebitenui.UI
	gameOverUI *ebitenui.UI
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Level == nil {
		return nil, errors.New("game: level is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	physics := system.NewPhysicsSystem(opts.Level.Gravity)
	controller, err := scene.NewController(scene.Options{
		Level:   opts.Level,
		Images:  assets.NewRegistry(assets.Manifest...),
		Rand:    opts.Rand,
		Physics: physics,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	physics.SetContactHandler(controller)

	results := scene.NewResults(opts.Recorder, opts.Level.Name, logger)

	scheduler := ecs.NewScheduler()
	if opts.Watcher != nil {
		scheduler.Add(system.NewPrefabReloadSystem(opts.Watcher.Events, controller, logger))
	}
	scheduler.Add(physics)
	scheduler.Add(controller.System())
	scheduler.Add(system.NewAnimationSystem())
	scheduler.Add(results)

	g := &Game{
		world:      ecs.NewWorld(),
		input:      system.NewInputSystem(),
		scheduler:  scheduler,
		physics:    physics,
		render:     system.NewRenderSystem(),
		controller: controller,
		results:    results,
		logger:     logger,
		debug:      opts.Debug,
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if !g.created {
		if err := g.controller.Preload(); err != nil {
			return err
		}
		if err := g.controller.Create(g.world); err != nil {
			return err
		}
		g.created = true
	}

	g.input.Update(g.world)
	if g.pausePressed() && g.results.Final == nil {
		g.paused = !g.paused
	}

	switch {
	case g.paused:
		g.pauseUI.Update()
	case g.results.Final != nil:
		g.gameOver().Update()
	default:
		g.scheduler.Update(g.world)
		if g.results.Final != nil {
			g.gameOver()
		}
	}

	return g.controller.Err()
}

func (g *Game) pausePressed() bool {
	pressed := false
	ecs.ForEach(g.world, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		pressed = pressed || in.PausePressed
	})
	return pressed
}

func (g *Game) gameOver() *ebitenui.UI {
	if g.gameOverUI == nil {
		g.gameOverUI = NewGameOverUI(g, g.results.Final.Score, g.results.Best)
	}
	return g.gameOverUI
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), screen)
		system.DrawPlayerDebug(g.world, screen)
	}

	switch {
	case g.paused:
		g.pauseUI.Draw(screen)
	case g.gameOverUI != nil:
		g.gameOverUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
