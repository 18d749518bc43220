package system

import (
	"errors"
	"testing"

	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

const (
	testOwlSize     = 31.0
	testPayloadSize = 32.0
)

func newTestWorld(t *testing.T, width, height float64) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: width, Height: height}); err != nil {
		t.Fatalf("add bounds: %v", err)
	}
	return w
}

func addTestOwl(t *testing.T, w *ecs.World, x, y float64, dir component.Direction) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: testOwlSize, Height: testOwlSize}))
	must(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	must(t, ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{}))
	must(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{}))
	must(t, ecs.Add(w, e, component.BadGuyComponent.Kind(), &component.BadGuy{
		State:          component.BadGuyActive,
		Direction:      dir,
		StartDirection: dir,
		Freezable:      true,
	}))
	must(t, ecs.Add(w, e, component.OwlComponent.Kind(), &component.Owl{
		CarryName:          component.DefaultOwlCarry,
		FlyingSpeed:        component.DefaultOwlFlyingSpeed,
		ActivationDistance: component.DefaultOwlActivationDistance,
		CarryLift:          component.DefaultOwlCarryLift,
	}))
	return e
}

func addTestPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{BounceSpeed: 450, InvulnFrames: 60}))
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 32, Height: 32}))
	must(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	return e
}

// stubFactory builds bare payloads without touching prefab files.
type stubFactory struct {
	portable bool
	width    float64
	err      error
	created  []ecs.Entity
	names    []string
}

func (f *stubFactory) Create(w *ecs.World, name string, pos common.Vec2, dir component.Direction) (ecs.Entity, bool, error) {
	f.names = append(f.names, name)
	if f.err != nil {
		return 0, false, f.err
	}
	width := f.width
	if width == 0 {
		width = testPayloadSize
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, false, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: testPayloadSize}); err != nil {
		return 0, false, err
	}
	if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1}); err != nil {
		return 0, false, err
	}
	if f.portable {
		if err := ecs.Add(w, e, component.PortableComponent.Kind(), &component.Portable{FreeGravity: 1}); err != nil {
			return 0, false, err
		}
	}
	f.created = append(f.created, e)
	return e, f.portable, nil
}

var errStubFactory = errors.New("stub factory failure")

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func releases(events []ecs.Event) []ecs.CarryReleased {
	var out []ecs.CarryReleased
	for _, evt := range events {
		if r, ok := evt.Data.(ecs.CarryReleased); ok {
			out = append(out, r)
		}
	}
	return out
}

func getOwl(t *testing.T, w *ecs.World, e ecs.Entity) (*component.Owl, *component.BadGuy) {
	t.Helper()
	owl, ok := ecs.Get(w, e, component.OwlComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no owl", e)
	}
	bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no badguy", e)
	}
	return owl, bg
}

func carried(t *testing.T, w *ecs.World, owlEntity ecs.Entity) (ecs.Entity, bool) {
	t.Helper()
	owl, _ := getOwl(t, w, owlEntity)
	return ecs.Deref(w, owl.Carried)
}

func gravityOf(w *ecs.World, e ecs.Entity) float64 {
	g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	if !ok {
		return 1
	}
	return g.Scale
}

func velocityOf(w *ecs.World, e ecs.Entity) component.Velocity {
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return component.Velocity{}
	}
	return *v
}

func positionOf(w *ecs.World, e ecs.Entity) common.Vec2 {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec2{}
	}
	return common.Vec2{X: tr.X, Y: tr.Y}
}

func actionOf(w *ecs.World, e ecs.Entity) string {
	a, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		return ""
	}
	return a.Current
}
