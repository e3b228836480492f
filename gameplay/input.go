package gameplay

// Animation keys selected by MapInput.
const (
	AnimLeft  = "left"
	AnimRight = "right"
	AnimIdle  = "idle"
)

type InputSample struct {
	Left  bool
	Right bool
	Up    bool
}

type Tuning struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
}

func DefaultTuning() Tuning {
	return Tuning{MoveSpeed: 160, JumpSpeed: 330}
}

type Motion struct {
	VX   float64
	VY   float64
	Anim string
}

// MapInput turns one input sample into player velocity and animation. Left
// is checked before right, so holding both moves left. Jumping needs ground
// contact; otherwise vy passes through untouched.
func MapInput(in InputSample, grounded bool, vy float64, t Tuning) Motion {
	m := Motion{VY: vy}
	switch {
	case in.Left:
		m.VX = -t.MoveSpeed
		m.Anim = AnimLeft
	case in.Right:
		m.VX = t.MoveSpeed
		m.Anim = AnimRight
	default:
		m.VX = 0
		m.Anim = AnimIdle
	}
	if in.Up && grounded {
		m.VY = -t.JumpSpeed
	}
	return m
}
