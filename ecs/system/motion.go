package system

import (
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

// Small accessors over the physics proxy components. Missing components are
// created on first write so actors built by hand in tests behave the same as
// prefab-built ones.

func velocity(w *ecs.World, e ecs.Entity) *component.Velocity {
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		v = &component.Velocity{}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), v); err != nil {
			panic("motion: add velocity: " + err.Error())
		}
	}
	return v
}

func setVelocityX(w *ecs.World, e ecs.Entity, x float64) { velocity(w, e).X = x }
func setVelocityY(w *ecs.World, e ecs.Entity, y float64) { velocity(w, e).Y = y }

func setAccelerationY(w *ecs.World, e ecs.Entity, y float64) {
	a, ok := ecs.Get(w, e, component.AccelerationComponent.Kind())
	if !ok {
		if y == 0 {
			return
		}
		a = &component.Acceleration{}
		if err := ecs.Add(w, e, component.AccelerationComponent.Kind(), a); err != nil {
			panic("motion: add acceleration: " + err.Error())
		}
	}
	a.Y = y
}

func enableGravity(w *ecs.World, e ecs.Entity, on bool) {
	scale := 0.0
	if on {
		scale = 1
	}
	setGravityScale(w, e, scale)
}

func setGravityScale(w *ecs.World, e ecs.Entity, scale float64) {
	g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	if !ok {
		g = &component.GravityScale{}
		if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), g); err != nil {
			panic("motion: add gravity scale: " + err.Error())
		}
	}
	g.Scale = scale
}

func setAction(w *ecs.World, e ecs.Entity, action string) {
	a, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		a = &component.Animation{}
		if err := ecs.Add(w, e, component.AnimationComponent.Kind(), a); err != nil {
			panic("motion: add animation: " + err.Error())
		}
	}
	a.Set(action, -1)
}

func moveTo(w *ecs.World, e ecs.Entity, x, y float64) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			panic("motion: add transform: " + err.Error())
		}
	}
	t.X = x
	t.Y = y
}
