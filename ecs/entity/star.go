package entity

import (
	"fmt"

	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"github.com/milk9111/stargrab/gameplay"
)

// NewStar builds star i of the collectible set at its current position with
// its own bounce.
func NewStar(w *ecs.World, images ImageSource, i int, c gameplay.Collectible) (ecs.Entity, error) {
	e, err := BuildEntity(w, images, "star.yaml", WithTransform(c.X, c.Y, 1, 1))
	if err != nil {
		return 0, err
	}
	col, _ := ecs.Get(w, e, component.CollectibleComponent.Kind())
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if col == nil || !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("star: prefab lacks collectible or physics_body")
	}
	col.Index = i
	body.Elasticity = c.BounceY
	body.Disabled = !c.Active
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Hidden = !c.Active
	}
	return e, nil
}
