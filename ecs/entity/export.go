package entity

import (
	"math"
	"sort"

	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
	"github.com/milk9111/owl/levels"
	"github.com/milk9111/owl/prefabs"
)

// ExportLevel rebuilds level data from the world. Tiles come from base; the
// entity list holds only level-placed entities, so objects spawned at runtime
// (such as an owl's payload) are never written back.
func ExportLevel(w *ecs.World, base *levels.Level) *levels.Level {
	out := &levels.Level{}
	if base != nil {
		out.Width = base.Width
		out.Height = base.Height
		out.TileSize = base.TileSize
		out.Layers = base.Layers
		out.LayerMeta = base.LayerMeta
	}

	defaultDeadScript := ""
	if spec, err := prefabs.LoadOwlSpec(); err == nil {
		defaultDeadScript, _ = owlDeadScript(spec, nil)
	}

	entities := w.Query(component.PersistentComponent.Kind(), component.TransformComponent.Kind())
	sort.Slice(entities, func(i, j int) bool { return uint64(entities[i]) < uint64(entities[j]) })

	for _, e := range entities {
		p, _ := ecs.Get(w, e, component.PersistentComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		ent := levels.Entity{
			Type: p.Type,
			X:    int(math.Round(t.X)),
			Y:    int(math.Round(t.Y)),
		}
		if owl, ok := ecs.Get(w, e, component.OwlComponent.Kind()); ok {
			ent.Props = map[string]interface{}{"carry": owl.CarryName}
			if bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind()); ok {
				ent.Props["direction"] = bg.StartDirection.String()
				if bg.DeadScript != "" && bg.DeadScript != defaultDeadScript {
					ent.Props["dead-script"] = bg.DeadScript
				}
			}
		}
		out.Entities = append(out.Entities, ent)
	}
	return out
}

// SaveLevel exports the world and writes it to path.
func SaveLevel(w *ecs.World, base *levels.Level, path string) error {
	return levels.Save(path, ExportLevel(w, base))
}
