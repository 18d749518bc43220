package system

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestOwlSystem(f ObjectFactory, opts ...OwlOption) *OwlSystem {
	return NewOwlSystem(f, append([]OwlOption{WithOwlLogger(quietLogger())}, opts...)...)
}

func TestOwlActivation(t *testing.T) {
	tests := []struct {
		name        string
		factory     *stubFactory
		opts        []OwlOption
		editorMark  bool
		wantCarried bool
		wantCreated int
	}{
		{name: "portable_payload", factory: &stubFactory{portable: true}, wantCarried: true, wantCreated: 1},
		{name: "not_portable", factory: &stubFactory{portable: false}, wantCreated: 1},
		{name: "factory_error", factory: &stubFactory{err: errStubFactory}},
		{name: "editor_option", factory: &stubFactory{portable: true}, opts: []OwlOption{WithEditorMode(true)}},
		{name: "editor_marker", factory: &stubFactory{portable: true}, editorMark: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, 1000, 600)
			if tc.editorMark {
				must(t, ecs.Add(w, ecs.CreateEntity(w), component.EditorSessionComponent.Kind(), &component.EditorSession{}))
			}
			e := addTestOwl(t, w, 300, 100, component.DirRight)
			s := newTestOwlSystem(tc.factory, tc.opts...)

			s.Update(w)

			if len(tc.factory.created) != tc.wantCreated {
				t.Fatalf("expected %d objects created, got %d", tc.wantCreated, len(tc.factory.created))
			}
			if _, ok := carried(t, w, e); ok != tc.wantCarried {
				t.Fatalf("carrying=%v, want %v", ok, tc.wantCarried)
			}
			if v := velocityOf(w, e); v.X != component.DefaultOwlFlyingSpeed {
				t.Fatalf("expected flying speed %v, got %v", component.DefaultOwlFlyingSpeed, v.X)
			}
			if g := gravityOf(w, e); g != 0 {
				t.Fatalf("expected gravity off, got %v", g)
			}
			if a := actionOf(w, e); a != "right" {
				t.Fatalf("expected action right, got %q", a)
			}
			// a rejected object stays in the world
			if tc.name == "not_portable" && !ecs.IsAlive(w, tc.factory.created[0]) {
				t.Fatal("non-portable object should not be destroyed")
			}
		})
	}
}

func TestOwlActivationRunsOnce(t *testing.T) {
	w := newTestWorld(t, 1000, 600)
	addTestOwl(t, w, 300, 100, component.DirLeft)
	f := &stubFactory{portable: true}
	s := newTestOwlSystem(f)

	for i := 0; i < 5; i++ {
		s.Update(w)
	}
	if len(f.created) != 1 {
		t.Fatalf("expected a single payload, got %d", len(f.created))
	}
	if f.names[0] != component.DefaultOwlCarry {
		t.Fatalf("expected payload %q, got %q", component.DefaultOwlCarry, f.names[0])
	}
}

func TestOwlCarryAnchorTracksOwl(t *testing.T) {
	w := newTestWorld(t, 1000, 600)
	e := addTestOwl(t, w, 300, 100, component.DirRight)
	s := newTestOwlSystem(&stubFactory{portable: true})

	steps := []common.Vec2{{X: 300, Y: 100}, {X: 302, Y: 100}, {X: 310, Y: 95}, {X: 500, Y: 120}}
	for _, pos := range steps {
		moveTo(w, e, pos.X, pos.Y)
		s.Update(w)

		obj, ok := carried(t, w, e)
		if !ok {
			t.Fatalf("lost payload at %v", pos)
		}
		// anchor: owl bottom-centre, shifted left by half the payload and down by the lift
		want := common.Vec2{
			X: pos.X + testOwlSize/2 - testPayloadSize/2,
			Y: pos.Y + testOwlSize + component.DefaultOwlCarryLift,
		}
		if got := positionOf(w, obj); got != want {
			t.Fatalf("owl at %v: payload at %v, want %v", pos, got, want)
		}
		p, _ := ecs.Get(w, obj, component.PortableComponent.Kind())
		if !p.Held || p.Holder != ecs.Ref(e) {
			t.Fatalf("payload not held by owl: %+v", p)
		}
		if g := gravityOf(w, obj); g != 0 {
			t.Fatalf("held payload should have no gravity, got %v", g)
		}
	}
}

func TestOwlDropsOnPlayer(t *testing.T) {
	tests := []struct {
		name     string
		dir      component.Direction
		player   common.Vec2
		wantDrop bool
	}{
		// owl box spans x 400..431, bottom at 131
		{name: "player_ahead_facing_left", dir: component.DirLeft, player: common.Vec2{X: 300, Y: 300}, wantDrop: true},
		{name: "player_behind_facing_left", dir: component.DirLeft, player: common.Vec2{X: 500, Y: 300}},
		{name: "player_ahead_facing_right", dir: component.DirRight, player: common.Vec2{X: 500, Y: 300}, wantDrop: true},
		{name: "player_directly_below_facing_right", dir: component.DirRight, player: common.Vec2{X: 400, Y: 300}},
		{name: "player_above_owl", dir: component.DirLeft, player: common.Vec2{X: 300, Y: 20}},
		{name: "player_level_with_owl_bottom", dir: component.DirLeft, player: common.Vec2{X: 300, Y: 131}, wantDrop: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, 1000, 600)
			e := addTestOwl(t, w, 400, 100, tc.dir)
			addTestPlayer(t, w, tc.player.X, tc.player.Y)
			f := &stubFactory{portable: true}
			s := newTestOwlSystem(f)

			s.Update(w)

			_, holding := carried(t, w, e)
			if holding == tc.wantDrop {
				t.Fatalf("holding=%v, want drop=%v", holding, tc.wantDrop)
			}
			rel := releases(w.Events().Drain())
			if tc.wantDrop {
				if len(rel) != 1 || rel[0].Reason != ecs.ReleaseDrop || rel[0].Object != f.created[0] {
					t.Fatalf("expected one drop release, got %+v", rel)
				}
				p, _ := ecs.Get(w, f.created[0], component.PortableComponent.Kind())
				if p.Held || !p.Released {
					t.Fatalf("payload should be released: %+v", p)
				}
				if g := gravityOf(w, f.created[0]); g != 1 {
					t.Fatalf("released payload should fall, gravity %v", g)
				}
			} else if len(rel) != 0 {
				t.Fatalf("expected no release, got %+v", rel)
			}
		})
	}
}

func TestOwlNeverRegrabsAfterDrop(t *testing.T) {
	w := newTestWorld(t, 1000, 600)
	e := addTestOwl(t, w, 400, 100, component.DirLeft)
	player := addTestPlayer(t, w, 300, 300)
	f := &stubFactory{portable: true}
	s := newTestOwlSystem(f)

	s.Update(w)
	if _, ok := carried(t, w, e); ok {
		t.Fatal("expected drop on first update")
	}
	w.Events().Drain()

	// player leaves; the payload is lying somewhere, the owl keeps flying
	moveTo(w, player, 900, 20)
	payload := f.created[0]
	moveTo(w, payload, 405, 500)
	for i := 0; i < 10; i++ {
		s.Update(w)
	}

	if _, ok := carried(t, w, e); ok {
		t.Fatal("owl picked its payload up again")
	}
	if got := positionOf(w, payload); got != (common.Vec2{X: 405, Y: 500}) {
		t.Fatalf("dropped payload was moved to %v", got)
	}
	if rel := releases(w.Events().Drain()); len(rel) != 0 {
		t.Fatalf("expected no further releases, got %+v", rel)
	}
}

func TestOwlEdgeDrop(t *testing.T) {
	const width = 640.0
	tests := []struct {
		name     string
		x        float64
		dir      component.Direction
		wantDrop bool
	}{
		{name: "far_from_edges", x: 300, dir: component.DirLeft},
		// anchor x = 15.5 + 0 - 16 = -0.5 <= 16
		{name: "left_edge", x: 0, dir: component.DirLeft, wantDrop: true},
		// anchor x = 16 + 15.5 - 16 = 15.5 <= 16
		{name: "just_inside_left_margin", x: 16, dir: component.DirLeft, wantDrop: true},
		// anchor x = 17 + 15.5 - 16 = 16.5 > 16
		{name: "just_outside_left_margin", x: 17, dir: component.DirLeft},
		// anchor x + 16 = 630 + 15.5 = 645.5 >= 640
		{name: "right_edge", x: 630, dir: component.DirRight, wantDrop: true},
		{name: "near_right_edge", x: 600, dir: component.DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, width, 480)
			e := addTestOwl(t, w, tc.x, 100, tc.dir)
			s := newTestOwlSystem(&stubFactory{portable: true})

			s.Update(w)

			_, holding := carried(t, w, e)
			if holding == tc.wantDrop {
				t.Fatalf("holding=%v, want drop=%v", holding, tc.wantDrop)
			}
			rel := releases(w.Events().Drain())
			if tc.wantDrop && (len(rel) != 1 || rel[0].Reason != ecs.ReleaseEdge) {
				t.Fatalf("expected one edge release, got %+v", rel)
			}
		})
	}
}

func TestOwlCarryHalfWidth(t *testing.T) {
	tests := []struct {
		name     string
		override float64
		payload  float64
		want     float64
	}{
		{name: "measured", payload: 32, want: 16},
		{name: "measured_wide", payload: 48, want: 24},
		{name: "override", override: component.LegacyOwlCarryHalfWidth, payload: 48, want: 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, 1000, 600)
			e := addTestOwl(t, w, 300, 100, component.DirLeft)
			owl, _ := getOwl(t, w, e)
			owl.CarryHalfWidth = tc.override
			s := newTestOwlSystem(&stubFactory{portable: true, width: tc.payload})

			s.Update(w)

			obj, ok := carried(t, w, e)
			if !ok {
				t.Fatal("expected payload")
			}
			if got := carryHalfWidth(w, obj, owl); got != tc.want {
				t.Fatalf("half width %v, want %v", got, tc.want)
			}
			if x := positionOf(w, obj).X; x != 300+testOwlSize/2-tc.want {
				t.Fatalf("payload x %v, want %v", x, 300+testOwlSize/2-tc.want)
			}
		})
	}
}

func TestOwlForgetsDestroyedPayload(t *testing.T) {
	w := newTestWorld(t, 1000, 600)
	e := addTestOwl(t, w, 300, 100, component.DirLeft)
	f := &stubFactory{portable: true}
	s := newTestOwlSystem(f)
	s.Update(w)

	ecs.DestroyEntity(w, f.created[0])
	s.Update(w)

	owl, _ := getOwl(t, w, e)
	if !owl.Carried.Empty() {
		t.Fatal("expected stale payload reference to be cleared")
	}
	if rel := releases(w.Events().Drain()); len(rel) != 0 {
		t.Fatalf("a vanished payload must not produce a release, got %+v", rel)
	}
}

func TestOwlSolidCollision(t *testing.T) {
	tests := []struct {
		name    string
		dir     component.Direction
		vy      float64
		hit     component.CollisionHit
		wantDir component.Direction
		wantVX  float64
		wantVY  float64
	}{
		{name: "right_wall_turns_left", dir: component.DirRight, vy: 5, hit: component.CollisionHit{Right: true}, wantDir: component.DirLeft, wantVX: -120, wantVY: 5},
		{name: "left_wall_turns_right", dir: component.DirLeft, hit: component.CollisionHit{Left: true}, wantDir: component.DirRight, wantVX: 120},
		{name: "floor_stops_vertical_only", dir: component.DirRight, vy: 50, hit: component.CollisionHit{Bottom: true}, wantDir: component.DirRight, wantVX: 120},
		{name: "ceiling_stops_vertical_only", dir: component.DirLeft, vy: -50, hit: component.CollisionHit{Top: true}, wantDir: component.DirLeft, wantVX: -120},
		{name: "corner_counts_as_vertical", dir: component.DirLeft, vy: 30, hit: component.CollisionHit{Left: true, Bottom: true}, wantDir: component.DirLeft, wantVX: -120},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, 1000, 600)
			e := addTestOwl(t, w, 300, 100, tc.dir)
			newTestOwlSystem(&stubFactory{portable: true}).Update(w)
			setVelocityY(w, e, tc.vy)

			NewBadGuySystem(quietLogger(), nil).CollisionSolid(w, e, tc.hit)

			_, bg := getOwl(t, w, e)
			if bg.Direction != tc.wantDir {
				t.Fatalf("direction %v, want %v", bg.Direction, tc.wantDir)
			}
			v := velocityOf(w, e)
			if v.X != tc.wantVX || v.Y != tc.wantVY {
				t.Fatalf("velocity %+v, want (%v, %v)", v, tc.wantVX, tc.wantVY)
			}
			if a := actionOf(w, e); a != tc.wantDir.String() {
				t.Fatalf("action %q, want %q", a, tc.wantDir.String())
			}
			// collisions never drop the payload
			if _, ok := carried(t, w, e); !ok {
				t.Fatal("collision released the payload")
			}
		})
	}
}

func TestOwlLateralCollisionViaSystem(t *testing.T) {
	w := newTestWorld(t, 1000, 600)
	e := addTestOwl(t, w, 300, 100, component.DirRight)
	owls := newTestOwlSystem(nil, WithEditorMode(true))
	badguys := NewBadGuySystem(quietLogger(), nil)
	owls.Update(w)

	must(t, ecs.Add(w, e, component.CollisionHitComponent.Kind(), &component.CollisionHit{Right: true}))
	badguys.Update(w)

	_, bg := getOwl(t, w, e)
	if bg.Direction != component.DirLeft {
		t.Fatalf("expected owl to turn left, got %v", bg.Direction)
	}
	if v := velocityOf(w, e); v.X != -component.DefaultOwlFlyingSpeed {
		t.Fatalf("expected vx %v, got %v", -component.DefaultOwlFlyingSpeed, v.X)
	}
}
