package entity

import (
	"fmt"

	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
	"github.com/milk9111/owl/prefabs"
)

func NewPlayer(w *ecs.World, pos common.Vec2, dir component.Direction, props Props) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		RunSpeed:     spec.RunSpeed,
		JumpSpeed:    spec.JumpSpeed,
		BounceSpeed:  spec.BounceSpeed,
		InvulnFrames: spec.InvulnFrames,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := addCollider(w, entity, spec.Collider, 1); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("player: add velocity: %w", err)
	}
	if err := ecs.Add(w, entity, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1}); err != nil {
		return 0, fmt.Errorf("player: add gravity scale: %w", err)
	}
	if err := ecs.Add(w, entity, component.PersistentComponent.Kind(), &component.Persistent{Type: "player"}); err != nil {
		return 0, fmt.Errorf("player: add persistent: %w", err)
	}

	return entity, nil
}
