package entity

import (
	"fmt"

	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
	"github.com/milk9111/owl/prefabs"
)

// NewSkydive builds a skydive bomb. It is portable and falls under normal
// gravity once let go.
func NewSkydive(w *ecs.World, pos common.Vec2, dir component.Direction, props Props) (ecs.Entity, error) {
	spec, err := prefabs.LoadSkydiveSpec()
	if err != nil {
		return 0, fmt.Errorf("skydive: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("skydive: add transform: %w", err)
	}
	if err := addCollider(w, entity, spec.Collider, 1); err != nil {
		return 0, fmt.Errorf("skydive: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("skydive: add velocity: %w", err)
	}
	gravity := spec.Gravity
	if gravity == 0 {
		gravity = 1
	}
	if err := ecs.Add(w, entity, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: gravity}); err != nil {
		return 0, fmt.Errorf("skydive: add gravity scale: %w", err)
	}
	anim := &component.Animation{}
	anim.Set(dir.String(), -1)
	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), anim); err != nil {
		return 0, fmt.Errorf("skydive: add animation: %w", err)
	}
	if err := ecs.Add(w, entity, component.PortableComponent.Kind(), &component.Portable{FreeGravity: gravity}); err != nil {
		return 0, fmt.Errorf("skydive: add portable: %w", err)
	}
	if err := ecs.Add(w, entity, component.SkydiveComponent.Kind(), &component.Skydive{BlastRadius: spec.BlastRadius}); err != nil {
		return 0, fmt.Errorf("skydive: add skydive: %w", err)
	}

	// Placed in a level rather than spawned by a carrier.
	if props != nil {
		if err := ecs.Add(w, entity, component.PersistentComponent.Kind(), &component.Persistent{Type: "skydive"}); err != nil {
			return 0, fmt.Errorf("skydive: add persistent: %w", err)
		}
	}

	return entity, nil
}
