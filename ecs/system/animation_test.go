package system

import (
	"testing"

	"github.com/milk9111/stargrab/ecs/component"
)

func TestAdvanceFrame(t *testing.T) {
	loop := component.AnimationDef{FrameCount: 4, FPS: 10, Loop: true}
	anim := &component.Animation{Playing: true}

	// 10 fps at 60 TPS is one frame every 6 ticks.
	for i := 0; i < 6*4; i++ {
		advanceFrame(anim, loop)
	}
	if anim.Frame != 0 || !anim.Playing {
		t.Fatalf("looping animation at frame %d playing=%v, want 0 true", anim.Frame, anim.Playing)
	}

	once := component.AnimationDef{FrameCount: 3, FPS: 60}
	anim = &component.Animation{Playing: true}
	for i := 0; i < 10; i++ {
		advanceFrame(anim, once)
	}
	if anim.Frame != 2 || anim.Playing {
		t.Fatalf("one-shot animation at frame %d playing=%v, want 2 false", anim.Frame, anim.Playing)
	}
}

func TestAnimationPlayKeepsFrame(t *testing.T) {
	anim := &component.Animation{
		Defs: map[string]component.AnimationDef{
			"left":  {FrameCount: 4, FPS: 10, Loop: true},
			"right": {FrameCount: 4, FPS: 10, Loop: true},
		},
		Current: "left",
		Playing: true,
		Frame:   2,
	}
	if !anim.Play("left") || anim.Frame != 2 {
		t.Fatalf("replaying the current animation reset frame to %d", anim.Frame)
	}
	if !anim.Play("right") || anim.Frame != 0 || anim.Current != "right" {
		t.Fatalf("switching animation: %+v", anim)
	}
	if anim.Play("jump") {
		t.Fatal("unknown animation accepted")
	}
}
