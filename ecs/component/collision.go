package component

// CollisionHit records the sides on which an entity touched solid geometry
// during the last physics step. It is replaced every step and removed when
// nothing was hit.
type CollisionHit struct {
	Left   bool
	Right  bool
	Top    bool
	Bottom bool
}

var CollisionHitComponent = NewComponent[CollisionHit]()

func (h CollisionHit) Lateral() bool  { return h.Left || h.Right }
func (h CollisionHit) Vertical() bool { return h.Top || h.Bottom }

// SolidTag marks static level geometry.
type SolidTag struct{}

var SolidTagComponent = NewComponent[SolidTag]()
