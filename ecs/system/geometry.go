package system

import (
	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

// BBox returns the collider box of an entity in world space.
func BBox(w *ecs.World, e ecs.Entity) (common.Rect, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return common.Rect{X: t.X, Y: t.Y}, true
	}
	return common.Rect{
		X:      t.X + body.OffsetX,
		Y:      t.Y + body.OffsetY,
		Width:  body.Width,
		Height: body.Height,
	}, true
}

// NearestPlayer finds the player whose box centre is closest to box.
func NearestPlayer(w *ecs.World, box common.Rect) (ecs.Entity, common.Rect, bool) {
	var (
		best     ecs.Entity
		bestBox  common.Rect
		bestDist float64
		found    bool
	)
	for _, e := range w.Query(component.PlayerTagComponent.Kind()) {
		pb, ok := BBox(w, e)
		if !ok {
			continue
		}
		d := box.DistanceSq(pb)
		if !found || d < bestDist {
			best, bestBox, bestDist, found = e, pb, d, true
		}
	}
	return best, bestBox, found
}

// LevelWidth returns the level width in pixels, if the world has bounds.
func LevelWidth(w *ecs.World) (float64, bool) {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return 0, false
	}
	b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	if !ok || b.Width <= 0 {
		return 0, false
	}
	return b.Width, true
}

// LevelHeight returns the level height in pixels, if the world has bounds.
func LevelHeight(w *ecs.World) (float64, bool) {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return 0, false
	}
	b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	if !ok || b.Height <= 0 {
		return 0, false
	}
	return b.Height, true
}

// editing reports whether an editor session marker exists in the world.
func editing(w *ecs.World) bool {
	_, ok := ecs.First(w, component.EditorSessionComponent.Kind())
	return ok
}
