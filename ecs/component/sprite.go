package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image     *ebiten.Image
	Source    image.Rectangle
	UseSource bool
	OriginX   float64
	OriginY   float64
	Hidden    bool
}

var SpriteComponent = NewComponent[Sprite]()

// Tint multiplies the sprite colour. The zero value leaves it untouched.
type Tint struct {
	R, G, B float32
}

var TintComponent = NewComponent[Tint]()
