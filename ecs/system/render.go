package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"golang.org/x/image/font/basicfont"
)

type RenderSystem struct {
	face text.Face
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := w.Query(component.TransformComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := renderLayer(w, entities[i])
		lj := renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			r.drawSprite(w, e, screen, t, s)
		}
		if label, ok := ecs.Get(w, e, component.TextComponent.Kind()); ok {
			r.drawText(screen, t, label)
		}
	}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func (r *RenderSystem) drawSprite(w *ecs.World, e ecs.Entity, screen *ebiten.Image, t *component.Transform, s *component.Sprite) {
	if s.Image == nil || s.Hidden {
		return
	}

	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}

	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(t.X, t.Y)

	if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok && (tint.R != 0 || tint.G != 0 || tint.B != 0) {
		op.ColorScale.Scale(tint.R, tint.G, tint.B, 1)
	}

	screen.DrawImage(img, op)
}

// drawText places the label's top-left corner at the transform.
func (r *RenderSystem) drawText(screen *ebiten.Image, t *component.Transform, label *component.Text) {
	if label.Value == "" {
		return
	}
	scale := label.Scale
	if scale <= 0 {
		scale = 1
	}
	var clr color.Color = color.Black
	if label.Color != nil {
		clr = label.Color
	}

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(t.X, t.Y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, label.Value, r.face, op)
}
