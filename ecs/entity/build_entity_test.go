package entity

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"github.com/milk9111/stargrab/gameplay"
	"github.com/milk9111/stargrab/levels"
	"github.com/milk9111/stargrab/prefabs"
)

// fakeImages reports sizes without creating GPU images.
type fakeImages map[string][2]int

func (f fakeImages) Image(name string) (*ebiten.Image, error) {
	if _, ok := f[name]; !ok {
		return nil, fmt.Errorf("unknown image %q", name)
	}
	return nil, nil
}

func (f fakeImages) Size(name string) (int, int, error) {
	sz, ok := f[name]
	if !ok {
		return 0, 0, fmt.Errorf("unknown image %q", name)
	}
	return sz[0], sz[1], nil
}

var testImages = fakeImages{
	"sky":    {800, 600},
	"ground": {400, 32},
	"star":   {24, 22},
	"bomb":   {14, 14},
	"dude":   {32, 48},
}

func TestBuildWorldMeadow(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("meadow")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	stars, err := gameplay.NewCollectibleSet(lvl.Stars, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("new collectible set: %v", err)
	}

	w := ecs.NewWorld()
	scene, err := BuildWorld(w, testImages, lvl, stars)
	if err != nil {
		t.Fatalf("BuildWorld: %v", err)
	}

	if got := len(w.Query(component.PlatformTagComponent.Kind())); got != 4 {
		t.Fatalf("expected 4 platforms, got %d", got)
	}
	if got := len(w.Query(component.PlayerTagComponent.Kind())); got != 1 {
		t.Fatalf("expected 1 player, got %d", got)
	}
	if got := len(scene.Stars); got != 12 {
		t.Fatalf("expected 12 stars, got %d", got)
	}
	if _, ok := w.First(component.LevelBoundsComponent.Kind()); !ok {
		t.Fatal("expected level bounds entity")
	}

	tr, ok := ecs.Get(w, scene.Player, component.TransformComponent.Kind())
	if !ok || tr.X != 100 || tr.Y != 450 {
		t.Fatalf("player transform = %+v", tr)
	}

	for i, e := range scene.Stars {
		col, _ := ecs.Get(w, e, component.CollectibleComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		st, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if col.Index != i {
			t.Fatalf("star %d has index %d", i, col.Index)
		}
		if want := 12 + 70*float64(i); st.X != want || st.Y != 0 {
			t.Fatalf("star %d at (%g,%g), want (%g,0)", i, st.X, st.Y, want)
		}
		if body.Elasticity != stars.At(i).BounceY || body.Elasticity < 0.4 || body.Elasticity >= 0.8 {
			t.Fatalf("star %d elasticity %g", i, body.Elasticity)
		}
		if body.Width != 24 || body.Height != 22 {
			t.Fatalf("star %d size %gx%g", i, body.Width, body.Height)
		}
	}

	text, ok := ecs.Get(w, scene.ScoreText, component.TextComponent.Kind())
	if !ok || text.Value != "Score: 0" {
		t.Fatalf("score text = %+v", text)
	}
}

func TestNewPlatformScalesBody(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlatform(w, testImages, levels.Platform{X: 400, Y: 568, Image: "ground", Scale: 2})
	if err != nil {
		t.Fatalf("NewPlatform: %v", err)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !body.Static || body.Width != 800 || body.Height != 64 {
		t.Fatalf("platform body = %+v", body)
	}
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sprite.OriginX != 200 || sprite.OriginY != 16 {
		t.Fatalf("origin = (%g,%g), want (200,16)", sprite.OriginX, sprite.OriginY)
	}
}

func TestNewBombCarriesVelocity(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewBomb(w, testImages, 3, gameplay.Hazard{X: 500, Y: 16, VX: -120, VY: 20, Bounce: 1})
	if err != nil {
		t.Fatalf("NewBomb: %v", err)
	}
	hz, _ := ecs.Get(w, e, component.HazardComponent.Kind())
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if hz.Index != 3 {
		t.Fatalf("hazard index %d", hz.Index)
	}
	if body.VelocityX != -120 || body.VelocityY != 20 || body.Elasticity != 1 || body.Radius != 7 {
		t.Fatalf("bomb body = %+v", body)
	}
}

func TestPlayerAnimationsFromPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, testImages, 10, 20)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		t.Fatal("player has no animation")
	}
	for _, name := range []string{gameplay.AnimLeft, gameplay.AnimIdle, gameplay.AnimRight} {
		if _, ok := anim.Defs[name]; !ok {
			t.Fatalf("missing animation %q", name)
		}
	}
	if anim.Current != gameplay.AnimIdle {
		t.Fatalf("initial animation %q", anim.Current)
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if p.MoveSpeed != 160 || p.JumpSpeed != 330 {
		t.Fatalf("player tuning = %+v", p)
	}
}

func TestBuildEntityRejectsUnknownComponent(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })

	data := []byte("name: odd\ncomponents:\n  transform: {}\n  wobble: {}\n")
	if err := os.WriteFile(filepath.Join(dir, "odd.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	w := ecs.NewWorld()
	if _, err := BuildEntity(w, testImages, "odd.yaml"); err == nil {
		t.Fatal("expected error for unknown component")
	}
	if got := len(w.Entities()); got != 0 {
		t.Fatalf("failed build left %d entities behind", got)
	}
}

func TestBuildEntityMissingPrefab(t *testing.T) {
	if _, err := BuildEntity(ecs.NewWorld(), testImages, "missing.yaml"); err == nil {
		t.Fatal("expected error for missing prefab")
	}
}
