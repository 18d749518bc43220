package component

// Animation holds the sprite action an entity wants to show. Frame selection
// and drawing live outside the simulation.
type Animation struct {
	Current string
	Loops   int // -1 loops forever
}

var AnimationComponent = NewComponent[Animation]()

// Set switches the action, leaving the loop count untouched when it is
// already current.
func (a *Animation) Set(action string, loops int) {
	if a == nil {
		return
	}
	if a.Current == action && a.Loops == loops {
		return
	}
	a.Current = action
	a.Loops = loops
}
