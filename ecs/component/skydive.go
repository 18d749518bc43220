package component

// Skydive is a payload that detonates once it lands after being dropped.
type Skydive struct {
	BlastRadius float64
	// Fuse counts ticks since release; detonation waits for at least one
	// tick so the drop itself never counts as a landing.
	Fuse int
}

var SkydiveComponent = NewComponent[Skydive]()
