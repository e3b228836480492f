package entity

import (
	"github.com/milk9111/stargrab/ecs"
)

func NewPlayer(w *ecs.World, images ImageSource) (ecs.Entity, error) {
	return BuildEntity(w, images, "player.yaml")
}

func NewPlayerAt(w *ecs.World, images ImageSource, x, y float64) (ecs.Entity, error) {
	return BuildEntity(w, images, "player.yaml", WithTransform(x, y, 1, 1))
}
