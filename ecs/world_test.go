package ecs

import (
	"testing"

	"github.com/milk9111/owl/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})
}

func TestForEachN(t *testing.T) {
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	tests := []struct {
		name    string
		setup   func(w *World) []Entity
		destroy bool
		want    int // index into the created entities, -1 for none
	}{
		{
			name: "intersection",
			setup: func(w *World) []Entity {
				e1, e2, e3 := CreateEntity(w), CreateEntity(w), CreateEntity(w)
				mustAdd(t, w, e1, ka, 1)
				for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
					mustAdd(t, w, e2, k, 2)
				}
				mustAdd(t, w, e3, kb, 3)
				return []Entity{e1, e2, e3}
			},
			want: 1,
		},
		{
			name: "ignores_dead_entities",
			setup: func(w *World) []Entity {
				e := CreateEntity(w)
				for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
					mustAdd(t, w, e, k, 1)
				}
				return []Entity{e}
			},
			destroy: true,
			want:    -1,
		},
		{
			name: "missing_store",
			setup: func(w *World) []Entity {
				e := CreateEntity(w)
				mustAdd(t, w, e, ka, 1)
				return []Entity{e}
			},
			want: -1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			ents := tc.setup(w)
			if tc.destroy {
				for _, e := range ents {
					DestroyEntity(w, e)
				}
			}

			var res3, res4 []Entity
			ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res3 = append(res3, e) })
			ForEach4(w, ka, kb, kc, kd, func(e Entity, _ *int, _ *int, _ *int, _ *int) { res4 = append(res4, e) })

			for name, res := range map[string][]Entity{"ForEach3": res3, "ForEach4": res4} {
				if tc.want < 0 {
					if len(res) != 0 {
						t.Fatalf("%s: expected no entities, got %v", name, res)
					}
					continue
				}
				if len(res) != 1 || res[0] != ents[tc.want] {
					t.Fatalf("%s: expected only %v, got %v", name, ents[tc.want], res)
				}
			}
		})
	}
}

func TestQuerySkipsMissingComponents(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	mustAdd(t, w, e1, ka, 1)
	mustAdd(t, w, e2, ka, 2)
	if err := Add(w, e2, kb, stringPtr("x")); err != nil {
		t.Fatal(err)
	}

	got := w.Query(ka, kb)
	if len(got) != 1 || got[0] != e2 {
		t.Fatalf("expected [%v], got %v", e2, got)
	}
	if got := w.Query(); got != nil {
		t.Fatalf("expected nil for empty query, got %v", got)
	}
}

func TestEntityGenerations(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	if !DestroyEntity(w, old) {
		t.Fatal("destroy failed")
	}
	if DestroyEntity(w, old) {
		t.Fatal("second destroy should fail")
	}

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected id %d to be reused, got %d", old.id(), reused.id())
	}
	if reused == old {
		t.Fatal("reused entity must not compare equal to the destroyed handle")
	}
	if IsAlive(w, old) {
		t.Fatal("stale handle reported alive")
	}
	if !IsAlive(w, reused) {
		t.Fatal("new handle not alive")
	}
}

func TestRefDeref(t *testing.T) {
	tests := []struct {
		name string
		ref  func(w *World) component.EntityRef
		ok   bool
	}{
		{"empty", func(w *World) component.EntityRef { return 0 }, false},
		{"alive", func(w *World) component.EntityRef { return Ref(CreateEntity(w)) }, true},
		{"destroyed", func(w *World) component.EntityRef {
			e := CreateEntity(w)
			DestroyEntity(w, e)
			return Ref(e)
		}, false},
		{"destroyed_and_reused", func(w *World) component.EntityRef {
			e := CreateEntity(w)
			DestroyEntity(w, e)
			CreateEntity(w)
			return Ref(e)
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			ref := tc.ref(w)
			e, ok := Deref(w, ref)
			if ok != tc.ok {
				t.Fatalf("Deref ok=%v, want %v", ok, tc.ok)
			}
			if ok && Ref(e) != ref {
				t.Fatalf("Deref returned %v for ref %v", e, ref)
			}
		})
	}
}

type recordSystem struct {
	seen []int
}

func (r *recordSystem) Update(w *World) {
	r.seen = append(r.seen, w.Events().Len())
	w.Events().Push(Event{Type: EventSound, Data: SoundRequested{Name: "tick"}})
}

func TestUpdateFlushesEvents(t *testing.T) {
	w := NewWorld()
	rec := &recordSystem{}
	w.AddSystem(rec)

	for i := 0; i < 3; i++ {
		w.Update()
	}

	if w.Tick() != 3 {
		t.Fatalf("expected tick 3, got %d", w.Tick())
	}
	for i, n := range rec.seen {
		if n != 0 {
			t.Fatalf("update %d started with %d queued events", i, n)
		}
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected empty queue after update, got %d", w.Events().Len())
	}
}

func mustAdd(t *testing.T, w *World, e Entity, k component.ComponentKind[int], v int) {
	t.Helper()
	if err := Add(w, e, k, intPtr(v)); err != nil {
		t.Fatalf("add: %v", err)
	}
}
