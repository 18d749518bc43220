package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool

	// Debug actions aimed at the nearest badguy.
	Freeze   bool
	Unfreeze bool
	Ignite   bool
}

var InputComponent = NewComponent[Input]()
