package component

// BadGuyState is the coarse lifecycle state of a badguy.
type BadGuyState string

const (
	BadGuyActive  BadGuyState = "active"
	BadGuyFalling BadGuyState = "falling"
)

// BadGuy is the state shared by every enemy.
type BadGuy struct {
	State          BadGuyState
	Direction      Direction
	StartDirection Direction
	Frozen         bool
	Freezable      bool
	Ignited        bool
	DeadScript     string

	// ThawFrames is how long a freeze lasts; 0 keeps the badguy frozen until
	// something unfreezes it explicitly.
	ThawFrames int
	ThawTimer  int
}

var BadGuyComponent = NewComponent[BadGuy]()
