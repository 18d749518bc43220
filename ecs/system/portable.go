package system

import (
	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

// Grab attaches a portable object to holder and moves it to pos. Calling it
// every tick keeps the object pinned under a moving holder.
func Grab(w *ecs.World, obj, holder ecs.Entity, pos common.Vec2, dir component.Direction) {
	p, ok := ecs.Get(w, obj, component.PortableComponent.Kind())
	if !ok {
		return
	}
	p.Holder = ecs.Ref(holder)
	p.Held = true

	moveTo(w, obj, pos.X, pos.Y)
	v := velocity(w, obj)
	v.X, v.Y = 0, 0
	setGravityScale(w, obj, 0)
	if ecs.Has(w, obj, component.AnimationComponent.Kind()) {
		setAction(w, obj, dir.String())
	}
}

// Ungrab detaches a portable object and hands it back to free physics.
func Ungrab(w *ecs.World, obj, holder ecs.Entity, dir component.Direction) {
	p, ok := ecs.Get(w, obj, component.PortableComponent.Kind())
	if !ok {
		return
	}
	if h, ok := ecs.Deref(w, p.Holder); ok && h != holder {
		return
	}
	p.Holder = 0
	p.Held = false
	p.Released = true

	v := velocity(w, obj)
	v.X, v.Y = 0, 0
	setAccelerationY(w, obj, 0)
	gravity := p.FreeGravity
	if gravity == 0 {
		gravity = 1
	}
	setGravityScale(w, obj, gravity)
	if ecs.Has(w, obj, component.AnimationComponent.Kind()) {
		setAction(w, obj, "falling-"+dir.String())
	}
}
