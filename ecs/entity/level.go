package entity

import (
	"fmt"

	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"github.com/milk9111/stargrab/gameplay"
	"github.com/milk9111/stargrab/levels"
)

// Scene holds the entities the game controller keeps addressing after the
// world is built.
type Scene struct {
	Player    ecs.Entity
	Stars     []ecs.Entity
	ScoreText ecs.Entity
}

// BuildWorld populates w from a level: background, bounds, platforms, player,
// the star set and the score readout.
func BuildWorld(w *ecs.World, images ImageSource, lvl *levels.Level, stars *gameplay.CollectibleSet) (*Scene, error) {
	if w == nil || lvl == nil || stars == nil {
		return nil, fmt.Errorf("build world: missing world, level or star set")
	}

	if lvl.Background != "" {
		if _, err := BuildEntity(w, images, lvl.Background, WithTransform(lvl.Width/2, lvl.Height/2, 1, 1)); err != nil {
			return nil, fmt.Errorf("build world: background: %w", err)
		}
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
	}); err != nil {
		return nil, fmt.Errorf("build world: bounds: %w", err)
	}

	for i, p := range lvl.Platforms {
		if _, err := NewPlatform(w, images, p); err != nil {
			return nil, fmt.Errorf("build world: platform %d: %w", i, err)
		}
	}

	scene := &Scene{Stars: make([]ecs.Entity, 0, stars.Len())}

	player, err := NewPlayerAt(w, images, lvl.PlayerSpawn.X, lvl.PlayerSpawn.Y)
	if err != nil {
		return nil, fmt.Errorf("build world: player: %w", err)
	}
	scene.Player = player

	for i := 0; i < stars.Len(); i++ {
		e, err := NewStar(w, images, i, stars.At(i))
		if err != nil {
			return nil, fmt.Errorf("build world: star %d: %w", i, err)
		}
		scene.Stars = append(scene.Stars, e)
	}

	scene.ScoreText, err = NewScoreText(w)
	if err != nil {
		return nil, fmt.Errorf("build world: score text: %w", err)
	}
	SetScoreText(w, stars.Score())

	return scene, nil
}
