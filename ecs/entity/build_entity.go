package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"github.com/milk9111/stargrab/prefabs"
)

// ImageSource resolves asset names used by prefabs. assets.Registry
// satisfies it.
type ImageSource interface {
	Image(name string) (*ebiten.Image, error)
	Size(name string) (int, int, error)
}

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Images     ImageSource
	Transform  *component.Transform
	Sprite     string
}

// BuildOption adjusts a prefab before its components are built, so later
// components (physics sizing) see the final values.
type BuildOption func(*buildContext)

// WithTransform replaces the prefab's transform.
func WithTransform(x, y, scaleX, scaleY float64) BuildOption {
	return func(ctx *buildContext) {
		ctx.Transform = &component.Transform{X: x, Y: y, ScaleX: scaleX, ScaleY: scaleY}
	}
}

// WithSprite replaces the prefab's sprite image name.
func WithSprite(name string) BuildOption {
	return func(ctx *buildContext) {
		ctx.Sprite = name
	}
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"platform_tag":     addPlatformTag,
	"score_text_tag":   addScoreTextTag,
	"collectible":      addCollectible,
	"hazard":           addHazard,
	"player":           addPlayer,
	"input":            addInput,
	"player_collision": addPlayerCollision,
	"transform":        addTransform,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"text":             addText,
	"animation":        addAnimation,
	"physics_body":     addPhysicsBody,
}

var componentBuildOrder = []string{
	"player_tag",
	"platform_tag",
	"score_text_tag",
	"collectible",
	"hazard",
	"player",
	"input",
	"player_collision",
	"transform",
	"sprite",
	"render_layer",
	"text",
	"animation",
	"physics_body",
}

func BuildEntity(w *ecs.World, images ImageSource, prefabPath string, opts ...BuildOption) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Images: images}
	for _, opt := range opts {
		opt(ctx)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	}
	t.X = x
	t.Y = y
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addPlatformTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{})
}

func addScoreTextTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ScoreTextTagComponent.Kind(), &component.ScoreTextTag{})
}

func addCollectible(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CollectibleComponent.Kind(), &component.Collectible{})
}

func addHazard(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if o := ctx.Transform; o != nil {
		spec.X, spec.Y = o.X, o.Y
		spec.ScaleX, spec.ScaleY = o.ScaleX, o.ScaleY
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if ctx.Sprite != "" {
		spec.Image = ctx.Sprite
	}

	sprite := component.Sprite{
		OriginX: spec.OriginX,
		OriginY: spec.OriginY,
		Hidden:  spec.Hidden,
	}
	if spec.Image != "" && ctx.Images != nil {
		img, err := ctx.Images.Image(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
		if spec.CenterOrigin {
			fw, fh, err := ctx.Images.Size(spec.Image)
			if err != nil {
				return fmt.Errorf("size image %q: %w", spec.Image, err)
			}
			sprite.OriginX = float64(fw) / 2
			sprite.OriginY = float64(fh) / 2
		}
	}

	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite); err != nil {
		return err
	}
	ctx.Sprite = spec.Image
	return nil
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type textSpec = prefabs.TextComponentSpec

func addText(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[textSpec](raw)
	if err != nil {
		return fmt.Errorf("decode text spec: %w", err)
	}
	var c color.Color = color.Black
	if spec.Color.Set {
		c = spec.Color.NRGBA
	}
	return ecs.Add(w, e, component.TextComponent.Kind(), &component.Text{
		Value: spec.Value,
		Scale: spec.Scale,
		Color: c,
	})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}

	var sheet *ebiten.Image
	if spec.Sheet != "" && ctx.Images != nil {
		sheet, err = ctx.Images.Image(spec.Sheet)
		if err != nil {
			return fmt.Errorf("load animation sheet %q: %w", spec.Sheet, err)
		}
	}

	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		defs[name] = component.AnimationDef{
			Name:       name,
			Row:        def.Row,
			ColStart:   def.ColStart,
			FrameCount: def.FrameCount,
			FrameW:     def.FrameW,
			FrameH:     def.FrameH,
			FPS:        def.FPS,
			Loop:       def.Loop,
		}
	}
	if spec.Current != "" {
		if _, ok := defs[spec.Current]; !ok {
			return fmt.Errorf("animation %q is not defined", spec.Current)
		}
	}

	playing := spec.Playing
	if m, ok := raw.(map[string]any); ok {
		if _, has := m["playing"]; !has {
			playing = true
		}
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Sheet:   sheet,
		Defs:    defs,
		Current: spec.Current,
		Playing: playing,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}

	width := spec.Width
	height := spec.Height
	if spec.AutoSizeFromSprite && spec.Radius <= 0 && ctx.Sprite != "" && ctx.Images != nil {
		fw, fh, err := ctx.Images.Size(ctx.Sprite)
		if err != nil {
			return fmt.Errorf("size image %q: %w", ctx.Sprite, err)
		}
		width, height = float64(fw), float64(fh)
	}
	if spec.ScaleWithTransform {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && tr != nil {
			width *= tr.ScaleX
			height *= tr.ScaleY
		}
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      width,
		Height:     height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	})
}
