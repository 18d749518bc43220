package entity

import (
	"fmt"

	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
	"github.com/milk9111/owl/prefabs"
)

// NewOwl builds an owl from owl.yaml. Level props override the prefab:
// "carry" names the payload, "direction" the starting facing and
// "dead-script" an inline tengo script run when the owl dies.
func NewOwl(w *ecs.World, pos common.Vec2, dir component.Direction, props Props) (ecs.Entity, error) {
	spec, err := prefabs.LoadOwlSpec()
	if err != nil {
		return 0, fmt.Errorf("owl: load spec: %w", err)
	}

	carry := spec.Carry
	if carry == "" {
		carry = component.DefaultOwlCarry
	}
	if v, ok := props.String("carry"); ok {
		carry = v
	}

	if v, ok := props.String("direction"); ok {
		dir, err = component.ParseDirection(v, dir)
		if err != nil {
			return 0, fmt.Errorf("owl: %w", err)
		}
	}

	deadScript, err := owlDeadScript(spec, props)
	if err != nil {
		return 0, err
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("owl: add transform: %w", err)
	}
	if err := addCollider(w, entity, spec.Collider, 1); err != nil {
		return 0, fmt.Errorf("owl: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("owl: add velocity: %w", err)
	}
	if err := ecs.Add(w, entity, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 0}); err != nil {
		return 0, fmt.Errorf("owl: add gravity scale: %w", err)
	}
	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), &component.Animation{}); err != nil {
		return 0, fmt.Errorf("owl: add animation: %w", err)
	}

	if err := ecs.Add(w, entity, component.BadGuyComponent.Kind(), &component.BadGuy{
		State:          component.BadGuyActive,
		Direction:      dir,
		StartDirection: dir,
		Freezable:      true,
		DeadScript:     deadScript,
		ThawFrames:     int(spec.ThawSeconds * common.TicksPerSecond),
	}); err != nil {
		return 0, fmt.Errorf("owl: add badguy: %w", err)
	}

	owl := &component.Owl{CarryName: carry}
	applyOwlSpec(owl, spec)
	if err := ecs.Add(w, entity, component.OwlComponent.Kind(), owl); err != nil {
		return 0, fmt.Errorf("owl: add owl: %w", err)
	}

	if err := ecs.Add(w, entity, component.PersistentComponent.Kind(), &component.Persistent{Type: "owl"}); err != nil {
		return 0, fmt.Errorf("owl: add persistent: %w", err)
	}

	return entity, nil
}

func owlDeadScript(spec prefabs.OwlSpec, props Props) (string, error) {
	if v, ok := props.String("dead-script"); ok {
		return v, nil
	}
	if spec.DeadScript == "" {
		return "", nil
	}
	src, err := prefabs.LoadScript(spec.DeadScript)
	if err != nil {
		return "", fmt.Errorf("owl: load dead script: %w", err)
	}
	return string(src), nil
}

func applyOwlSpec(owl *component.Owl, spec prefabs.OwlSpec) {
	owl.FlyingSpeed = spec.FlyingSpeed
	if owl.FlyingSpeed <= 0 {
		owl.FlyingSpeed = component.DefaultOwlFlyingSpeed
	}
	owl.ActivationDistance = spec.ActivationDistance
	if owl.ActivationDistance <= 0 {
		owl.ActivationDistance = component.DefaultOwlActivationDistance
	}
	owl.CarryLift = spec.CarryLift
	if owl.CarryLift == 0 {
		owl.CarryLift = component.DefaultOwlCarryLift
	}
	owl.CarryHalfWidth = spec.CarryHalfWidth
}

// ApplyOwlTuning pushes reloaded owl.yaml values onto every live owl. The
// carried payload and per-level props are left alone. A flying owl keeps its
// direction but takes the new speed immediately.
func ApplyOwlTuning(w *ecs.World, spec prefabs.OwlSpec) int {
	n := 0
	ecs.ForEach2(w, component.OwlComponent.Kind(), component.BadGuyComponent.Kind(), func(e ecs.Entity, owl *component.Owl, bg *component.BadGuy) {
		applyOwlSpec(owl, spec)
		bg.ThawFrames = int(spec.ThawSeconds * common.TicksPerSecond)
		if bg.State == component.BadGuyActive && !bg.Frozen {
			if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
				v.X = bg.Direction.Sign() * owl.FlyingSpeed
			}
		}
		n++
	})
	return n
}
