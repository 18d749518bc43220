package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
	"github.com/milk9111/owl/prefabs"
)

// Props are the free-form settings a level attaches to a placed entity.
type Props map[string]interface{}

// Builder constructs one kind of entity at pos.
type Builder func(w *ecs.World, pos common.Vec2, dir component.Direction, props Props) (ecs.Entity, error)

// Factory creates entities by prefab name. It satisfies system.ObjectFactory.
type Factory struct {
	builders map[string]Builder
}

// NewFactory returns a factory with every built-in prefab registered.
func NewFactory() *Factory {
	f := &Factory{builders: make(map[string]Builder)}
	f.Register("owl", NewOwl)
	f.Register("skydive", NewSkydive)
	f.Register("player", NewPlayer)
	return f
}

func (f *Factory) Register(name string, b Builder) {
	f.builders[strings.ToLower(name)] = b
}

// Names lists the registered prefab names in sorted order.
func (f *Factory) Names() []string {
	names := make([]string, 0, len(f.builders))
	for name := range f.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates the named entity with level props.
func (f *Factory) Build(w *ecs.World, name string, pos common.Vec2, dir component.Direction, props Props) (ecs.Entity, error) {
	if f == nil {
		return 0, fmt.Errorf("factory: nil factory")
	}
	b, ok := f.builders[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("factory: unknown object %q", name)
	}
	return b(w, pos, dir, props)
}

// Create builds the named entity and reports whether it can be carried.
func (f *Factory) Create(w *ecs.World, name string, pos common.Vec2, dir component.Direction) (ecs.Entity, bool, error) {
	e, err := f.Build(w, name, pos, dir, nil)
	if err != nil {
		return 0, false, err
	}
	return e, ecs.Has(w, e, component.PortableComponent.Kind()), nil
}

func (p Props) String(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	raw, ok := p[key]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}
	return fmt.Sprint(raw), true
}

func addCollider(w *ecs.World, e ecs.Entity, c prefabs.ColliderSpec, mass float64) error {
	width, height := c.Width, c.Height
	if width == 0 {
		width = common.TileSize
	}
	if height == 0 {
		height = common.TileSize
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:   width,
		Height:  height,
		OffsetX: c.OffsetX,
		OffsetY: c.OffsetY,
		Mass:    mass,
	})
}
