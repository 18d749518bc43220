package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

// fallOutMargin is how far below the level a dead badguy may fall before it
// is removed.
const fallOutMargin = 64.0

// BadGuySystem delivers solid collisions to badguys, applies lifecycle
// requests (freeze, unfreeze, ignite, squish), runs thaw timers and removes
// badguys that have fallen out of the level. It runs after physics and before
// the per-actor update systems.
type BadGuySystem struct {
	logger  *log.Logger
	scripts *ScriptRunner
}

func NewBadGuySystem(logger *log.Logger, scripts *ScriptRunner) *BadGuySystem {
	if logger == nil {
		logger = log.Default()
	}
	return &BadGuySystem{logger: logger, scripts: scripts}
}

func (s *BadGuySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.BadGuyComponent.Kind(), component.CollisionHitComponent.Kind(), func(e ecs.Entity, bg *component.BadGuy, hit *component.CollisionHit) {
		s.CollisionSolid(w, e, *hit)
	})

	ecs.ForEach(w, component.SquishRequestComponent.Kind(), func(e ecs.Entity, req *component.SquishRequest) {
		by, _ := ecs.Deref(w, req.By)
		ecs.Remove(w, e, component.SquishRequestComponent.Kind())
		s.Squish(w, e, by)
	})
	ecs.ForEach(w, component.IgniteRequestComponent.Kind(), func(e ecs.Entity, _ *component.IgniteRequest) {
		ecs.Remove(w, e, component.IgniteRequestComponent.Kind())
		s.Ignite(w, e)
	})
	ecs.ForEach(w, component.FreezeRequestComponent.Kind(), func(e ecs.Entity, _ *component.FreezeRequest) {
		ecs.Remove(w, e, component.FreezeRequestComponent.Kind())
		s.Freeze(w, e)
	})
	ecs.ForEach(w, component.UnfreezeRequestComponent.Kind(), func(e ecs.Entity, _ *component.UnfreezeRequest) {
		ecs.Remove(w, e, component.UnfreezeRequestComponent.Kind())
		s.Unfreeze(w, e)
	})

	ecs.ForEach(w, component.BadGuyComponent.Kind(), func(e ecs.Entity, bg *component.BadGuy) {
		if bg.Frozen && bg.ThawFrames > 0 {
			bg.ThawTimer--
			if bg.ThawTimer <= 0 {
				s.Unfreeze(w, e)
			}
		}
	})

	if height, ok := LevelHeight(w); ok {
		ecs.ForEach2(w, component.BadGuyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bg *component.BadGuy, t *component.Transform) {
			if bg.State == component.BadGuyFalling && t.Y > height+fallOutMargin {
				ecs.DestroyEntity(w, e)
			}
		})
	}
}

// CollisionSolid reacts to contact with solid geometry.
func (s *BadGuySystem) CollisionSolid(w *ecs.World, e ecs.Entity, hit component.CollisionHit) {
	bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind())
	if !ok || bg.State != component.BadGuyActive {
		return
	}
	if owl, ok := ecs.Get(w, e, component.OwlComponent.Kind()); ok {
		owlCollisionSolid(w, e, owl, bg, hit)
		return
	}
	baseCollisionSolid(w, e, hit)
}

// Freeze turns the badguy into an inert block of ice. Badguys that are not
// freezable, or are already dead, ignore it.
func (s *BadGuySystem) Freeze(w *ecs.World, e ecs.Entity) {
	bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind())
	if !ok || !IsFreezable(w, e) || bg.State != component.BadGuyActive {
		return
	}
	if owl, ok := ecs.Get(w, e, component.OwlComponent.Kind()); ok {
		releaseCarriedIfAny(w, e, owl, bg.Direction, ecs.ReleaseFreeze)
		enableGravity(w, e, true)
	}
	s.baseFreeze(w, e, bg)
}

// Unfreeze thaws a frozen badguy. Owls take off again. Dead badguys stay
// dead.
func (s *BadGuySystem) Unfreeze(w *ecs.World, e ecs.Entity) {
	bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind())
	if !ok || !bg.Frozen || bg.State != component.BadGuyActive {
		return
	}
	s.baseUnfreeze(w, e, bg)
	if owl, ok := ecs.Get(w, e, component.OwlComponent.Kind()); ok {
		owlFlight(w, e, owl, bg)
	}
}

// Ignite sets the badguy alight.
func (s *BadGuySystem) Ignite(w *ecs.World, e ecs.Entity) {
	bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind())
	if !ok {
		return
	}
	if owl, ok := ecs.Get(w, e, component.OwlComponent.Kind()); ok {
		releaseCarriedIfAny(w, e, owl, bg.Direction, ecs.ReleaseIgnite)
	}
	s.baseIgnite(w, e, bg)
}

// Squish handles a player landing on the badguy: the player bounces off and
// the badguy falls out of the level. by may be zero, in which case the nearest
// player bounces.
func (s *BadGuySystem) Squish(w *ecs.World, e ecs.Entity, by ecs.Entity) {
	bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind())
	if !ok || bg.Frozen || bg.State != component.BadGuyActive {
		return
	}
	if !ecs.Has(w, by, component.PlayerComponent.Kind()) {
		by = 0
		if box, ok := BBox(w, e); ok {
			if p, _, ok := NearestPlayer(w, box); ok {
				by = p
			}
		}
	}
	if by.Valid() {
		bounce(w, by)
	}
	if owl, ok := ecs.Get(w, e, component.OwlComponent.Kind()); ok {
		releaseCarriedIfAny(w, e, owl, bg.Direction, ecs.ReleaseSquish)
	}
	s.KillFall(w, e)
}

// KillFall kills the badguy: it drops off the screen and its dead script
// runs.
func (s *BadGuySystem) KillFall(w *ecs.World, e ecs.Entity) {
	bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind())
	if !ok || bg.State == component.BadGuyFalling {
		return
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSound, Data: ecs.SoundRequested{Entity: e, Name: "fall.wav"}})
	bg.Frozen = false
	bg.ThawTimer = 0
	setVelocityY(w, e, 0)
	setAccelerationY(w, e, 0)
	enableGravity(w, e, true)
	s.setState(w, e, bg, component.BadGuyFalling)

	if owl, ok := ecs.Get(w, e, component.OwlComponent.Kind()); ok {
		releaseCarriedIfAny(w, e, owl, bg.Direction, ecs.ReleaseKill)
	}

	s.runDeadScript(w, e, bg)
}

// IsFreezable reports whether Freeze has any effect on e. Owls always are.
func IsFreezable(w *ecs.World, e ecs.Entity) bool {
	if ecs.Has(w, e, component.OwlComponent.Kind()) {
		return true
	}
	bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind())
	return ok && bg.Freezable
}

func baseCollisionSolid(w *ecs.World, e ecs.Entity, hit component.CollisionHit) {
	if hit.Vertical() {
		setVelocityY(w, e, 0)
	}
	if hit.Lateral() {
		setVelocityX(w, e, 0)
	}
}

func (s *BadGuySystem) baseFreeze(w *ecs.World, e ecs.Entity, bg *component.BadGuy) {
	bg.Frozen = true
	bg.ThawTimer = bg.ThawFrames
	setVelocityX(w, e, 0)
	setAction(w, e, "iced-"+bg.Direction.String())
	w.Events().Push(ecs.Event{Type: ecs.EventBadGuyState, Data: ecs.BadGuyStateChanged{Entity: e, State: "frozen"}})
}

func (s *BadGuySystem) baseUnfreeze(w *ecs.World, e ecs.Entity, bg *component.BadGuy) {
	bg.Frozen = false
	bg.ThawTimer = 0
	setAction(w, e, bg.Direction.String())
	w.Events().Push(ecs.Event{Type: ecs.EventBadGuyState, Data: ecs.BadGuyStateChanged{Entity: e, State: "thawed"}})
}

func (s *BadGuySystem) baseIgnite(w *ecs.World, e ecs.Entity, bg *component.BadGuy) {
	if bg.Ignited || bg.State != component.BadGuyActive {
		return
	}
	bg.Ignited = true
	bg.Frozen = false
	enableGravity(w, e, true)
	setVelocityX(w, e, 0)
	setAction(w, e, "burning-"+bg.Direction.String())
	s.KillFall(w, e)
}

func (s *BadGuySystem) setState(w *ecs.World, e ecs.Entity, bg *component.BadGuy, state component.BadGuyState) {
	bg.State = state
	w.Events().Push(ecs.Event{Type: ecs.EventBadGuyState, Data: ecs.BadGuyStateChanged{Entity: e, State: string(state)}})
}

func (s *BadGuySystem) runDeadScript(w *ecs.World, e ecs.Entity, bg *component.BadGuy) {
	if bg.DeadScript == "" || s.scripts == nil {
		return
	}
	if err := s.scripts.Run(w, e, bg.DeadScript); err != nil {
		s.logger.Error("dead script failed", "entity", e, "err", err)
	}
}

func bounce(w *ecs.World, player ecs.Entity) {
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	p.Bounces++
	setVelocityY(w, player, -p.BounceSpeed)
}
