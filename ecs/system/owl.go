package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

// ObjectFactory builds entities by prefab name. Create reports alongside the
// new entity whether it can be carried.
type ObjectFactory interface {
	Create(w *ecs.World, name string, pos common.Vec2, dir component.Direction) (ecs.Entity, bool, error)
}

// OwlSystem runs owl activation and the per-tick carry logic. Collisions and
// lifecycle handlers are routed through BadGuySystem, which runs before it.
type OwlSystem struct {
	factory ObjectFactory
	logger  *log.Logger
	editor  bool
}

type OwlOption func(*OwlSystem)

// WithOwlLogger sets the logger used for construction failures.
func WithOwlLogger(l *log.Logger) OwlOption {
	return func(s *OwlSystem) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEditorMode suppresses payload creation, so an edited level never ends
// up with a second copy of the payload saved next to the owl.
func WithEditorMode(on bool) OwlOption {
	return func(s *OwlSystem) { s.editor = on }
}

func NewOwlSystem(factory ObjectFactory, opts ...OwlOption) *OwlSystem {
	s := &OwlSystem{factory: factory, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *OwlSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.OwlComponent.Kind(), component.BadGuyComponent.Kind(), func(e ecs.Entity, owl *component.Owl, bg *component.BadGuy) {
		if !owl.Initialized {
			s.initialize(w, e, owl, bg)
		}
		if bg.Frozen || bg.State != component.BadGuyActive {
			return
		}
		s.updateCarry(w, e, owl, bg)
	})
}

func (s *OwlSystem) initialize(w *ecs.World, e ecs.Entity, owl *component.Owl, bg *component.BadGuy) {
	owl.Initialized = true
	setVelocityX(w, e, bg.Direction.Sign()*owl.FlyingSpeed)
	enableGravity(w, e, false)
	setAction(w, e, bg.Direction.String())

	if s.editor || editing(w) {
		return
	}

	var pos common.Vec2
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = common.Vec2{X: t.X, Y: t.Y}
	}
	if s.factory == nil {
		s.logger.Log(log.FatalLevel, "creating carried object failed", "carry", owl.CarryName, "err", "no object factory")
		return
	}
	obj, portable, err := s.factory.Create(w, owl.CarryName, pos, bg.Direction)
	if err != nil {
		s.logger.Log(log.FatalLevel, "creating carried object failed", "carry", owl.CarryName, "err", err)
		return
	}
	if !portable {
		s.logger.Warn("object is not portable", "carry", owl.CarryName, "entity", obj)
		return
	}
	owl.Carried = ecs.Ref(obj)
}

func (s *OwlSystem) updateCarry(w *ecs.World, e ecs.Entity, owl *component.Owl, bg *component.BadGuy) {
	if owl.Carried.Empty() {
		return
	}
	obj, ok := ecs.Deref(w, owl.Carried)
	if !ok {
		// payload was destroyed by someone else
		owl.Carried = 0
		return
	}
	box, ok := BBox(w, e)
	if !ok {
		return
	}

	if owlAbovePlayer(w, box, owl, bg.Direction) {
		releaseCarriedIfAny(w, e, owl, bg.Direction, ecs.ReleaseDrop)
		return
	}

	half := carryHalfWidth(w, obj, owl)
	anchor := box.AnchorBottom()
	pos := common.Vec2{X: anchor.X - half, Y: anchor.Y + owl.CarryLift}

	width, bounded := LevelWidth(w)
	if pos.X <= half || (bounded && pos.X+half >= width) {
		releaseCarriedIfAny(w, e, owl, bg.Direction, ecs.ReleaseEdge)
		return
	}
	Grab(w, obj, e, pos, bg.Direction)
}

// owlAbovePlayer reports whether the nearest player is below the owl. The
// test is shifted ahead of the owl by the activation distance so the payload
// is let go early enough to still land on the player.
func owlAbovePlayer(w *ecs.World, box common.Rect, owl *component.Owl, dir component.Direction) bool {
	_, pb, ok := NearestPlayer(w, box)
	if !ok {
		return false
	}
	offset := -owl.ActivationDistance
	if dir == component.DirLeft {
		offset = owl.ActivationDistance
	}
	return pb.Top() >= box.Bottom() &&
		pb.Right()+offset > box.Left() &&
		pb.Left()+offset < box.Right()
}

func carryHalfWidth(w *ecs.World, obj ecs.Entity, owl *component.Owl) float64 {
	if owl.CarryHalfWidth > 0 {
		return owl.CarryHalfWidth
	}
	if body, ok := ecs.Get(w, obj, component.PhysicsBodyComponent.Kind()); ok && body.Width > 0 {
		return body.Width / 2
	}
	return component.LegacyOwlCarryHalfWidth
}

// releaseCarriedIfAny lets go of the payload, if any, and clears the
// reference. Every path that ends carrying goes through here.
func releaseCarriedIfAny(w *ecs.World, e ecs.Entity, owl *component.Owl, dir component.Direction, reason ecs.ReleaseReason) bool {
	if owl == nil || owl.Carried.Empty() {
		return false
	}
	ref := owl.Carried
	owl.Carried = 0
	obj, ok := ecs.Deref(w, ref)
	if !ok {
		return false
	}
	Ungrab(w, obj, e, dir)
	w.Events().Push(ecs.Event{
		Type: ecs.EventCarryReleased,
		Data: ecs.CarryReleased{Holder: e, Object: obj, Reason: reason},
	})
	return true
}

func owlCollisionSolid(w *ecs.World, e ecs.Entity, owl *component.Owl, bg *component.BadGuy, hit component.CollisionHit) {
	if bg.Frozen {
		baseCollisionSolid(w, e, hit)
		return
	}
	if hit.Vertical() {
		setVelocityY(w, e, 0)
	} else if hit.Lateral() {
		bg.Direction = bg.Direction.Opposite()
		setAction(w, e, bg.Direction.String())
		setVelocityX(w, e, bg.Direction.Sign()*owl.FlyingSpeed)
	}
}

func owlFlight(w *ecs.World, e ecs.Entity, owl *component.Owl, bg *component.BadGuy) {
	setVelocityX(w, e, bg.Direction.Sign()*owl.FlyingSpeed)
	enableGravity(w, e, false)
	setAction(w, e, bg.Direction.String())
}
