package gameplay

import "fmt"

// Session is the mutable state of one run: score, stars, bombs and the
// game-over flag. It is owned by a single scene controller and only touched
// from the game loop.
type Session struct {
	Stars    *CollectibleSet
	Hazards  []Hazard
	GameOver bool

	spawner Spawner
}

func NewSession(stars *CollectibleSet, spawner Spawner) *Session {
	return &Session{Stars: stars, spawner: spawner}
}

// SetSpawner swaps the hazard policy, e.g. after a script is edited. Bombs
// already spawned are kept.
func (s *Session) SetSpawner(spawner Spawner) {
	if spawner != nil {
		s.spawner = spawner
	}
}

// CollectResult reports what one star pickup changed.
type CollectResult struct {
	Collected bool
	Score     int
	// Reset is set when the pickup cleared the set and it was refilled.
	Reset  bool
	Hazard *Hazard
}

// Collect handles the player touching star i. When the last active star is
// taken exactly one hazard is spawned away from playerX and the set is
// reset. A failed spawn leaves the set exhausted.
func (s *Session) Collect(i int, playerX float64) (CollectResult, error) {
	if s.GameOver {
		return CollectResult{Score: s.Score()}, nil
	}
	score, ok := s.Stars.Collect(i)
	res := CollectResult{Collected: ok, Score: score}
	if !ok || !s.Stars.IsExhausted() {
		return res, nil
	}

	h, err := s.spawner.Spawn(playerX)
	if err != nil {
		return res, fmt.Errorf("gameplay: spawn hazard: %w", err)
	}
	s.Stars.Reset()
	res.Reset = true
	s.Hazards = append(s.Hazards, h)
	res.Hazard = &h
	return res, nil
}

// Hit ends the session. The score is left as is.
func (s *Session) Hit() {
	s.GameOver = true
}

func (s *Session) Score() int {
	if s.Stars == nil {
		return 0
	}
	return s.Stars.Score()
}
