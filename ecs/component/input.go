package component

// Input stores the per-frame key sample for an entity.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	// PausePressed is true only on the frame the pause key went down.
	PausePressed bool
}

var InputComponent = NewComponent[Input]()
