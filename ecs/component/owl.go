package component

const (
	DefaultOwlCarry              = "skydive"
	DefaultOwlFlyingSpeed        = 120.0
	DefaultOwlActivationDistance = 128.0
	DefaultOwlCarryLift          = 3.0
	// LegacyOwlCarryHalfWidth is the fixed half width the original level
	// balance assumed for every payload.
	LegacyOwlCarryHalfWidth = 16.0
)

// Owl is a flying badguy that patrols horizontally and may carry one
// portable object, dropping it on the player.
type Owl struct {
	// CarryName is the prefab name of the payload. Set once at construction.
	CarryName string
	// Carried points at the payload while it is held.
	Carried EntityRef

	FlyingSpeed        float64
	ActivationDistance float64
	// CarryHalfWidth overrides the measured half width of the payload when
	// computing the anchor and the edge margin. Zero means measure.
	CarryHalfWidth float64
	CarryLift      float64

	Initialized bool
}

var OwlComponent = NewComponent[Owl]()
