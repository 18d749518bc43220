package component

// Persistent marks entities that came from level data and are written back
// when the level is saved. Runtime spawns (for example a carried payload)
// never get one.
type Persistent struct {
	Type string
}

var PersistentComponent = NewComponent[Persistent]()
