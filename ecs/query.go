package ecs

import "github.com/milk9111/owl/ecs/component"

// Query returns the live entities that hold every given component kind. The
// result is a snapshot, so callers may add or remove components while
// iterating it.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, sets[smallest].Len())
	for _, e := range sets[smallest].denseEntities {
		if !w.IsAlive(e) {
			continue
		}
		match := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}
