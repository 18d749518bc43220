package ecs

import "github.com/milk9111/owl/ecs/component"

// World owns entities, component stores, the system schedule and the event
// queue for one simulation.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue
	tick      uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. It returns false
// when the entity was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.removeID(e.id())
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

func (w *World) CreateEntity() Entity        { return CreateEntity(w) }
func (w *World) DestroyEntity(e Entity) bool { return DestroyEntity(w, e) }
func (w *World) IsAlive(e Entity) bool       { return IsAlive(w, e) }

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// AddComponent stores an untyped component value. Prefer the typed Add.
func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if w == nil || !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// GetComponent returns the untyped component value for e.
func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if w == nil || kind == nil || !w.IsAlive(e) {
		return nil, false
	}
	s := w.store(kind.ID(), false)
	if !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

// HasComponent reports whether e carries a component of the given kind.
func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	_, ok := w.GetComponent(e, kind)
	return ok
}

// RemoveComponent deletes a component from e.
func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	if w == nil || kind == nil || !w.IsAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	if w.scheduler == nil {
		w.scheduler = NewScheduler()
	}
	w.scheduler.Add(s)
}

// Update runs all systems once and then drops any events nobody drained.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.tick++
	if w.scheduler != nil {
		w.scheduler.Update(w)
	}
	w.events.flush()
}

// Tick returns the number of completed or running updates.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
