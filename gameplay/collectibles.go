package gameplay

import (
	"errors"
	"fmt"
)

var ErrInvalidLayout = errors.New("gameplay: invalid collectible layout")

// StarLayout places a row of collectibles at StartX + i*StepX.
type StarLayout struct {
	Count          int     `json:"count"`
	StartX         float64 `json:"start_x"`
	StartY         float64 `json:"start_y"`
	StepX          float64 `json:"step_x"`
	BounceMin      float64 `json:"bounce_min"`
	BounceMax      float64 `json:"bounce_max"`
	ScoreIncrement int     `json:"score_increment"`
}

// DefaultStarLayout is twelve stars 70px apart starting at x=12, each worth 10.
func DefaultStarLayout() StarLayout {
	return StarLayout{
		Count:          12,
		StartX:         12,
		StartY:         0,
		StepX:          70,
		BounceMin:      0.4,
		BounceMax:      0.8,
		ScoreIncrement: 10,
	}
}

func (l StarLayout) Validate() error {
	if l.Count <= 0 {
		return fmt.Errorf("%w: count %d", ErrInvalidLayout, l.Count)
	}
	if l.ScoreIncrement <= 0 {
		return fmt.Errorf("%w: score increment %d", ErrInvalidLayout, l.ScoreIncrement)
	}
	if l.BounceMin < 0 || l.BounceMax < l.BounceMin {
		return fmt.Errorf("%w: bounce range [%g, %g)", ErrInvalidLayout, l.BounceMin, l.BounceMax)
	}
	return nil
}

type Collectible struct {
	HomeX   float64
	X, Y    float64
	BounceY float64
	Active  bool
}

// CollectibleSet owns one generation of stars and the session score.
type CollectibleSet struct {
	layout StarLayout
	items  []Collectible
	active int
	score  int
}

// NewCollectibleSet creates layout.Count active stars with bounce drawn
// from [BounceMin, BounceMax).
func NewCollectibleSet(layout StarLayout, r Rand) (*CollectibleSet, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	s := &CollectibleSet{
		layout: layout,
		items:  make([]Collectible, layout.Count),
		active: layout.Count,
	}
	for i := range s.items {
		x := layout.StartX + float64(i)*layout.StepX
		s.items[i] = Collectible{
			HomeX:   x,
			X:       x,
			Y:       layout.StartY,
			BounceY: FloatBetween(r, layout.BounceMin, layout.BounceMax),
			Active:  true,
		}
	}
	return s, nil
}

// Collect deactivates star i and adds the score increment. It returns the
// new score; ok is false when i is out of range or already inactive.
func (s *CollectibleSet) Collect(i int) (score int, ok bool) {
	if i < 0 || i >= len(s.items) || !s.items[i].Active {
		return s.score, false
	}
	s.items[i].Active = false
	s.active--
	s.score += s.layout.ScoreIncrement
	return s.score, true
}

func (s *CollectibleSet) IsExhausted() bool {
	return s.active == 0
}

// Reset reactivates every star at its home x and the top of the play area.
func (s *CollectibleSet) Reset() {
	for i := range s.items {
		s.items[i].Active = true
		s.items[i].X = s.items[i].HomeX
		s.items[i].Y = s.layout.StartY
	}
	s.active = len(s.items)
}

// SetPosition records where physics last put star i.
func (s *CollectibleSet) SetPosition(i int, x, y float64) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.items[i].X = x
	s.items[i].Y = y
}

func (s *CollectibleSet) ActiveCount() int { return s.active }
func (s *CollectibleSet) Len() int         { return len(s.items) }
func (s *CollectibleSet) Score() int       { return s.score }
func (s *CollectibleSet) Layout() StarLayout {
	return s.layout
}

func (s *CollectibleSet) At(i int) Collectible {
	if i < 0 || i >= len(s.items) {
		return Collectible{}
	}
	return s.items[i]
}
