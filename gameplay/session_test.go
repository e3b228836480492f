package gameplay

import (
	"errors"
	"testing"
)

type fixedSpawner struct {
	calls []float64
	err   error
}

func (f *fixedSpawner) Spawn(playerX float64) (Hazard, error) {
	f.calls = append(f.calls, playerX)
	if f.err != nil {
		return Hazard{}, f.err
	}
	return Hazard{X: 600, Y: 16, VX: 50, VY: 20, Bounce: 1, CollideWorldBounds: true}, nil
}

func newTestSession(t *testing.T, sp Spawner) *Session {
	t.Helper()
	return NewSession(newTestSet(t), sp)
}

func TestSessionSpawnsOneHazardPerExhaustion(t *testing.T) {
	sp := &fixedSpawner{}
	s := newTestSession(t, sp)

	for round := 1; round <= 3; round++ {
		for i := 0; i < 12; i++ {
			res, err := s.Collect(i, 100)
			if err != nil {
				t.Fatalf("Collect: %v", err)
			}
			last := i == 11
			if res.Reset != last || (res.Hazard != nil) != last {
				t.Fatalf("round %d star %d: reset=%v hazard=%v", round, i, res.Reset, res.Hazard != nil)
			}
		}
		if len(s.Hazards) != round {
			t.Fatalf("after round %d expected %d hazards, got %d", round, round, len(s.Hazards))
		}
		if s.Stars.ActiveCount() != 12 {
			t.Fatalf("set should be refilled, got %d active", s.Stars.ActiveCount())
		}
	}
	if s.Score() != 360 {
		t.Fatalf("expected score 360, got %d", s.Score())
	}
	if len(sp.calls) != 3 || sp.calls[0] != 100 {
		t.Fatalf("spawner calls %v", sp.calls)
	}
}

func TestSessionSpawnError(t *testing.T) {
	boom := errors.New("boom")
	s := newTestSession(t, &fixedSpawner{err: boom})
	for i := 0; i < 11; i++ {
		if _, err := s.Collect(i, 0); err != nil {
			t.Fatalf("unexpected error on star %d: %v", i, err)
		}
	}
	res, err := s.Collect(11, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped spawn error, got %v", err)
	}
	if !res.Collected || res.Reset || res.Hazard != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if !s.Stars.IsExhausted() || s.Stars.ActiveCount() != 0 {
		t.Fatalf("failed spawn refilled the set: %d active", s.Stars.ActiveCount())
	}
	if len(s.Hazards) != 0 {
		t.Fatalf("failed spawn recorded hazards %v", s.Hazards)
	}
	if s.Score() != 120 {
		t.Fatalf("score = %d, want 120", s.Score())
	}
}

func TestSessionHitEndsGame(t *testing.T) {
	s := newTestSession(t, &fixedSpawner{})
	s.Collect(0, 0)
	s.Collect(1, 0)

	s.Hit()
	if !s.GameOver {
		t.Fatal("expected game over")
	}
	if s.Score() != 20 {
		t.Fatalf("hit changed score to %d", s.Score())
	}

	s.Hit()
	if !s.GameOver || s.Score() != 20 {
		t.Fatalf("second hit changed state: over=%v score=%d", s.GameOver, s.Score())
	}

	res, _ := s.Collect(2, 0)
	if res.Collected || s.Score() != 20 {
		t.Fatalf("collect after game over should be ignored, got %+v", res)
	}
}

func TestSessionSetSpawnerKeepsHazards(t *testing.T) {
	first := &fixedSpawner{}
	s := newTestSession(t, first)
	for i := 0; i < 12; i++ {
		if _, err := s.Collect(i, 100); err != nil {
			t.Fatal(err)
		}
	}

	second := &fixedSpawner{}
	s.SetSpawner(second)
	s.SetSpawner(nil)
	for i := 0; i < 12; i++ {
		if _, err := s.Collect(i, 500); err != nil {
			t.Fatal(err)
		}
	}

	if len(first.calls) != 1 || len(second.calls) != 1 {
		t.Fatalf("calls: first=%d second=%d", len(first.calls), len(second.calls))
	}
	if len(s.Hazards) != 2 {
		t.Fatalf("expected 2 hazards, got %d", len(s.Hazards))
	}
}
