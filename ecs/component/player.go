package component

// Player holds the bits of player state that badguys interact with.
type Player struct {
	RunSpeed    float64 // pixels per second
	JumpSpeed   float64 // pixels per second
	BounceSpeed float64 // upward speed given by a stomp, pixels per second
	Bounces     int
	Hits        int
	// InvulnFrames is how long the player is immune after being hurt.
	InvulnFrames int
	InvulnTimer  int // ticks
}

var PlayerComponent = NewComponent[Player]()
