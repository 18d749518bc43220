package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// EditorSession is a singleton marker: while any entity carries it the world
// is being edited and badguys must not spawn runtime objects.
type EditorSession struct{}

var EditorSessionComponent = NewComponent[EditorSession]()
