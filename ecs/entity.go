package ecs

import (
	"strconv"

	"github.com/milk9111/owl/ecs/component"
)

type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// Ref converts an entity into a non-owning reference that can be stored in
// components.
func Ref(e Entity) component.EntityRef {
	return component.EntityRef(e)
}

// Deref resolves a reference. It fails for the zero reference and for
// entities that have been destroyed since the reference was taken.
func Deref(w *World, ref component.EntityRef) (Entity, bool) {
	if ref.Empty() {
		return 0, false
	}
	e := Entity(ref)
	if !IsAlive(w, e) {
		return 0, false
	}
	return e, true
}
