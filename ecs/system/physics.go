package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBadGuy
	collisionTypePlayer
	collisionTypePortable
	collisionTypeDynamic
)

// PhysicsSystem is the physics proxy: it mirrors Velocity, Acceleration and
// GravityScale into a Chipmunk space, steps it once per tick, copies the
// result back into Transform and Velocity, and reports solid contacts as
// CollisionHit components. Player/badguy contacts become squish requests or
// player hits.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	dt            float64

	bodies map[ecs.Entity]*bodyInfo
	shapes map[*cp.Shape]ecs.Entity

	hits     map[ecs.Entity]*component.CollisionHit
	contacts []playerContact

	world *ecs.World
}

type bodyInfo struct {
	body    *cp.Body
	shape   *cp.Shape
	static  bool
	gravity float64
	accel   cp.Vector
}

type playerContact struct {
	player ecs.Entity
	badguy ecs.Entity
	stomp  bool
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return &PhysicsSystem{
		space:  space,
		dt:     1.0 / common.TicksPerSecond,
		bodies: make(map[ecs.Entity]*bodyInfo),
		shapes: make(map[*cp.Shape]ecs.Entity),
		hits:   make(map[ecs.Entity]*component.CollisionHit),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.world = w
	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)

	clear(ps.hits)
	ps.contacts = ps.contacts[:0]

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushHits(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	for _, t := range []cp.CollisionType{collisionTypeBadGuy, collisionTypePlayer, collisionTypePortable, collisionTypeDynamic} {
		h := ps.space.NewCollisionHandler(t, collisionTypeSolid)
		h.UserData = ps
		h.PreSolveFunc = solidPreSolve
	}

	stomp := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeBadGuy)
	stomp.UserData = ps
	stomp.BeginFunc = playerBadGuyBegin

	// Payloads and other badguys pass through actors; the skydive system
	// checks player overlap itself.
	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeBadGuy, collisionTypeBadGuy},
		{collisionTypeBadGuy, collisionTypePortable},
		{collisionTypePlayer, collisionTypePortable},
	} {
		h := ps.space.NewCollisionHandler(pair[0], pair[1])
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool { return false }
	}

	ps.handlersReady = true
}

// solidPreSolve records which side of the dynamic shape touched solid
// geometry. Lateral contacts only count while moving into the wall, so a body
// that has just turned around is not reported twice.
func solidPreSolve(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	e, isA := sys.shapes[shapeA]
	shape := shapeA
	if !isA || shapeA.Body() == space.StaticBody {
		var okB bool
		e, okB = sys.shapes[shapeB]
		if !okB {
			return true
		}
		shape = shapeB
		isA = false
	}

	n := arb.Normal()
	if !isA {
		n = n.Neg()
	}
	hit := sys.hits[e]
	if hit == nil {
		hit = &component.CollisionHit{}
		sys.hits[e] = hit
	}
	v := shape.Body().Velocity()
	switch {
	case n.X > 0.5 && v.X > 0:
		hit.Right = true
	case n.X < -0.5 && v.X < 0:
		hit.Left = true
	case n.Y > 0.5:
		hit.Bottom = true
	case n.Y < -0.5:
		hit.Top = true
	}
	return true
}

func playerBadGuyBegin(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return false
	}
	shapeA, shapeB := arb.Shapes()
	player, okA := sys.shapes[shapeA]
	badguy, okB := sys.shapes[shapeB]
	if !okA || !okB {
		return false
	}
	// a frozen badguy is a solid block the player can stand on
	if bg, ok := ecs.Get(sys.world, badguy, component.BadGuyComponent.Kind()); ok && bg.Frozen {
		return true
	}
	// normal points from the player towards the badguy
	n := arb.Normal()
	falling := shapeA.Body().Velocity().Y > 0
	sys.contacts = append(sys.contacts, playerContact{
		player: player,
		badguy: badguy,
		stomp:  n.Y > 0.5 && falling,
	})
	return false
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(e, info)
	}
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.shapes, info.shape)
	}
	if info.body != nil && !info.static {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.bodies, e)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
		info := ps.bodies[e]
		if info == nil {
			info = ps.createBodyInfo(w, e, t, bodyComp)
			ps.bodies[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		}
		if info.static {
			return
		}

		info.gravity = 1
		if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			info.gravity = g.Scale
		}
		info.accel = cp.Vector{}
		if a, ok := ecs.Get(w, e, component.AccelerationComponent.Kind()); ok {
			info.accel = cp.Vector{X: a.X, Y: a.Y}
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			info.body.SetVelocity(v.X, v.Y)
		}

		held := false
		if p, ok := ecs.Get(w, e, component.PortableComponent.Kind()); ok && p.Held {
			held = true
			info.body.SetPosition(bodyCenter(t, bodyComp))
		}
		dead := false
		if bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind()); ok && bg.State == component.BadGuyFalling {
			dead = true
		}
		info.shape.SetSensor(held || dead)
	})
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, t *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = common.TileSize, common.TileSize
		bodyComp.Width, bodyComp.Height = width, height
	}

	if bodyComp.Static {
		left := t.X + bodyComp.OffsetX
		top := t.Y + bodyComp.OffsetY
		shape := cp.NewBox2(ps.space.StaticBody, cp.BB{L: left, B: top, R: left + width, T: top + height}, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		ps.shapes[shape] = e
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(bodyCenter(t, bodyComp))
	info := &bodyInfo{body: body, gravity: 1}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(info.gravity).Add(info.accel), damping, dt)
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeFor(w, e))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	ps.shapes[shape] = e
	info.shape = shape
	return info
}

func collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return collisionTypePlayer
	case ecs.Has(w, e, component.BadGuyComponent.Kind()):
		return collisionTypeBadGuy
	case ecs.Has(w, e, component.PortableComponent.Kind()):
		return collisionTypePortable
	}
	return collisionTypeDynamic
}

func bodyCenter(t *component.Transform, b *component.PhysicsBody) cp.Vector {
	return cp.Vector{
		X: t.X + b.OffsetX + b.Width/2,
		Y: t.Y + b.OffsetY + b.Height/2,
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X - bodyComp.Width/2 - bodyComp.OffsetX
		t.Y = pos.Y - bodyComp.Height/2 - bodyComp.OffsetY

		vel := info.body.Velocity()
		v := velocity(w, e)
		v.X, v.Y = vel.X, vel.Y
	}
}

func (ps *PhysicsSystem) flushHits(w *ecs.World) {
	for _, e := range w.Query(component.CollisionHitComponent.Kind()) {
		if _, ok := ps.hits[e]; !ok {
			ecs.Remove(w, e, component.CollisionHitComponent.Kind())
		}
	}
	for e, hit := range ps.hits {
		if !ecs.IsAlive(w, e) || (!hit.Lateral() && !hit.Vertical()) {
			ecs.Remove(w, e, component.CollisionHitComponent.Kind())
			continue
		}
		h := *hit
		if err := ecs.Add(w, e, component.CollisionHitComponent.Kind(), &h); err != nil {
			panic("physics system: add collision hit: " + err.Error())
		}
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for _, c := range ps.contacts {
		bg, ok := ecs.Get(w, c.badguy, component.BadGuyComponent.Kind())
		if !ok || bg.State != component.BadGuyActive || bg.Frozen {
			continue
		}
		if c.stomp {
			if err := ecs.Add(w, c.badguy, component.SquishRequestComponent.Kind(), &component.SquishRequest{By: ecs.Ref(c.player)}); err != nil {
				panic("physics system: add squish request: " + err.Error())
			}
			continue
		}
		hurtPlayer(w, c.player)
	}
}
