package system

import (
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

// PlayerSystem turns input into player velocity, counts down invulnerability
// and forwards debug actions to the nearest badguy as requests.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		if p.InvulnTimer > 0 {
			p.InvulnTimer--
		}
	})

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, p *component.Player, input *component.Input) {
		v := velocity(w, e)
		v.X = input.MoveX * p.RunSpeed
		if input.JumpPressed && grounded(w, e) {
			v.Y = -p.JumpSpeed
		}
		if input.Freeze {
			requestOnNearestBadGuy(w, e, component.FreezeRequestComponent, &component.FreezeRequest{})
		}
		if input.Unfreeze {
			requestOnNearestBadGuy(w, e, component.UnfreezeRequestComponent, &component.UnfreezeRequest{})
		}
		if input.Ignite {
			requestOnNearestBadGuy(w, e, component.IgniteRequestComponent, &component.IgniteRequest{})
		}
	})
}

func grounded(w *ecs.World, e ecs.Entity) bool {
	hit, ok := ecs.Get(w, e, component.CollisionHitComponent.Kind())
	return ok && hit.Bottom
}

// NearestBadGuy finds the live badguy closest to e.
func NearestBadGuy(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	box, ok := BBox(w, e)
	if !ok {
		return 0, false
	}
	var (
		best     ecs.Entity
		bestDist float64
		found    bool
	)
	for _, other := range w.Query(component.BadGuyComponent.Kind()) {
		bg, _ := ecs.Get(w, other, component.BadGuyComponent.Kind())
		if bg == nil || bg.State != component.BadGuyActive {
			continue
		}
		ob, ok := BBox(w, other)
		if !ok {
			continue
		}
		d := box.DistanceSq(ob)
		if !found || d < bestDist {
			best, bestDist, found = other, d, true
		}
	}
	return best, found
}

func requestOnNearestBadGuy[T any](w *ecs.World, from ecs.Entity, kind component.ComponentHandle[T], req *T) {
	target, ok := NearestBadGuy(w, from)
	if !ok {
		return
	}
	if err := ecs.Add(w, target, kind.Kind(), req); err != nil {
		panic("player system: add request: " + err.Error())
	}
}

// hurtPlayer counts a hit on the player unless it is still invulnerable.
func hurtPlayer(w *ecs.World, e ecs.Entity) bool {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.InvulnTimer > 0 {
		return false
	}
	p.Hits++
	p.InvulnTimer = p.InvulnFrames
	return true
}
