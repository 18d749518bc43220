package component

// Portable marks an entity that can be carried. Holder is set while grabbed.
type Portable struct {
	Holder   EntityRef
	Held     bool
	Released bool
	// FreeGravity is the gravity scale restored when the object is let go.
	FreeGravity float64
}

var PortableComponent = NewComponent[Portable]()
