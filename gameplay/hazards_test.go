package gameplay

import (
	"math/rand/v2"
	"testing"
)

var testArea = PlayArea{Width: 800, Height: 600}

func TestHazardSpawnOppositeSide(t *testing.T) {
	cases := []struct {
		name    string
		playerX float64
		min     float64
		max     float64 // inclusive
	}{
		{"player_far_left", 0, 400, 800},
		{"player_left_of_mid", 399.9, 400, 800},
		{"player_at_mid", 400, 0, 399},
		{"player_right", 780, 0, 399},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewHazardSpawner(testArea, DefaultHazardConfig(), rand.New(rand.NewPCG(7, 11)))
			for i := 0; i < 500; i++ {
				h, err := s.Spawn(c.playerX)
				if err != nil {
					t.Fatalf("Spawn: %v", err)
				}
				if h.X < c.min || h.X > c.max {
					t.Fatalf("spawn x %v outside [%v, %v]", h.X, c.min, c.max)
				}
			}
		})
	}
}

func TestHazardSpawnMotion(t *testing.T) {
	s := NewHazardSpawner(testArea, DefaultHazardConfig(), rand.New(rand.NewPCG(3, 4)))
	for i := 0; i < 500; i++ {
		h, _ := s.Spawn(100)
		if h.VX < -200 || h.VX > 200 {
			t.Fatalf("vx %v outside [-200, 200]", h.VX)
		}
		if h.VY != 20 || h.Y != 16 {
			t.Fatalf("got y=%v vy=%v, want 16 and 20", h.Y, h.VY)
		}
		if h.Bounce != 1 || !h.CollideWorldBounds {
			t.Fatalf("bomb must be elastic and bounded, got %+v", h)
		}
	}
}

func TestHazardSpawnReproducible(t *testing.T) {
	a := NewHazardSpawner(testArea, DefaultHazardConfig(), rand.New(rand.NewPCG(9, 9)))
	b := NewHazardSpawner(testArea, DefaultHazardConfig(), rand.New(rand.NewPCG(9, 9)))
	for i := 0; i < 20; i++ {
		ha, _ := a.Spawn(float64(i * 40))
		hb, _ := b.Spawn(float64(i * 40))
		if ha != hb {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, ha, hb)
		}
	}
}
