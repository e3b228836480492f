package entity

import (
	"fmt"

	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"github.com/milk9111/stargrab/gameplay"
)

// NewBomb builds hazard i of the session with its spawn velocity.
func NewBomb(w *ecs.World, images ImageSource, i int, h gameplay.Hazard) (ecs.Entity, error) {
	e, err := BuildEntity(w, images, "bomb.yaml", WithTransform(h.X, h.Y, 1, 1))
	if err != nil {
		return 0, err
	}
	hz, _ := ecs.Get(w, e, component.HazardComponent.Kind())
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if hz == nil || !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("bomb: prefab lacks hazard or physics_body")
	}
	hz.Index = i
	body.VelocityX = h.VX
	body.VelocityY = h.VY
	body.Elasticity = h.Bounce
	return e, nil
}
