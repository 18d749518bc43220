package component

// EntityRef is a non-owning handle to another entity. It never keeps the
// target alive; resolve it with ecs.Deref, which fails once the target has
// been destroyed. The zero value refers to nothing.
type EntityRef uint64

func (r EntityRef) Empty() bool {
	return r == 0
}
