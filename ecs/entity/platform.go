package entity

import (
	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/levels"
)

func NewPlatform(w *ecs.World, images ImageSource, p levels.Platform) (ecs.Entity, error) {
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	return BuildEntity(w, images, "platform.yaml", WithTransform(p.X, p.Y, scale, scale), WithSprite(p.Image))
}
