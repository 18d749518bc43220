package system

import (
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

// SkydiveSystem detonates dropped skydive payloads when they land or touch a
// player. Players inside the blast radius are hurt and the payload is
// removed.
type SkydiveSystem struct{}

func NewSkydiveSystem() *SkydiveSystem {
	return &SkydiveSystem{}
}

func (s *SkydiveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.SkydiveComponent.Kind(), component.PortableComponent.Kind(), func(e ecs.Entity, sd *component.Skydive, p *component.Portable) {
		if p.Held || !p.Released {
			sd.Fuse = 0
			return
		}
		sd.Fuse++
		if sd.Fuse < 2 {
			return
		}
		if landed(w, e) || touchingPlayer(w, e) {
			detonate(w, e, sd)
		}
	})
}

func landed(w *ecs.World, e ecs.Entity) bool {
	hit, ok := ecs.Get(w, e, component.CollisionHitComponent.Kind())
	return ok && hit.Bottom
}

func touchingPlayer(w *ecs.World, e ecs.Entity) bool {
	box, ok := BBox(w, e)
	if !ok {
		return false
	}
	for _, p := range w.Query(component.PlayerTagComponent.Kind()) {
		if pb, ok := BBox(w, p); ok && box.Intersects(pb) {
			return true
		}
	}
	return false
}

func detonate(w *ecs.World, e ecs.Entity, sd *component.Skydive) {
	box, ok := BBox(w, e)
	if !ok {
		ecs.DestroyEntity(w, e)
		return
	}
	r2 := sd.BlastRadius * sd.BlastRadius
	var victims []ecs.Entity
	for _, p := range w.Query(component.PlayerTagComponent.Kind()) {
		pb, ok := BBox(w, p)
		if !ok {
			continue
		}
		if box.Intersects(pb) || box.DistanceSq(pb) <= r2 {
			if hurtPlayer(w, p) {
				victims = append(victims, p)
			}
		}
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSound, Data: ecs.SoundRequested{Entity: e, Name: "explosion.wav"}})
	w.Events().Push(ecs.Event{
		Type: ecs.EventPayloadExploded,
		Data: ecs.PayloadExploded{Payload: e, X: box.CenterX(), Y: box.CenterY(), Victims: victims},
	})
	ecs.DestroyEntity(w, e)
}
