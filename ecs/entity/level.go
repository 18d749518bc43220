package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
	"github.com/milk9111/owl/levels"
)

// LoadLevelToWorld loads a level into the ECS world: a bounds entity, merged
// static colliders for every physics layer, and one entity per placed object.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, factory *Factory) error {
	if lvl == nil {
		return fmt.Errorf("level: nil level")
	}
	if factory == nil {
		factory = NewFactory()
	}

	tileSize := lvl.Tile()
	width, height := lvl.PixelSize()
	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  width,
		Height: height,
	}); err != nil {
		return fmt.Errorf("level: add bounds: %w", err)
	}

	for layerIdx, layer := range lvl.Layers {
		layerHasPhysics := false
		if layerIdx < len(lvl.LayerMeta) {
			layerHasPhysics = lvl.LayerMeta[layerIdx].Physics
		}
		if !layerHasPhysics {
			continue
		}
		if err := addMergedTileColliders(world, layer, lvl.Width, lvl.Height, tileSize); err != nil {
			return err
		}
	}

	for i, ent := range lvl.Entities {
		dir := component.DirLeft
		pos := common.Vec2{X: float64(ent.X), Y: float64(ent.Y)}
		props := Props(ent.Props)
		if props == nil {
			props = Props{}
		}
		if _, err := factory.Build(world, strings.ToLower(ent.Type), pos, dir, props); err != nil {
			return fmt.Errorf("level: entity %d (%s): %w", i, ent.Type, err)
		}
	}

	return nil
}

func addMergedTileColliders(world *ecs.World, layer []int, width, height int, tileSize float64) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := index(x, y)
			if idx < 0 || idx >= len(layer) {
				continue
			}
			if visited[idx] || layer[idx] <= 0 {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width; x2++ {
				idx2 := index(x2, y)
				if idx2 >= len(layer) || visited[idx2] || layer[idx2] <= 0 {
					break
				}
				maxW++
			}
			if maxW == 0 {
				continue
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					idx2 := index(x2, y2)
					if idx2 >= len(layer) || visited[idx2] || layer[idx2] <= 0 {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					idx2 := index(xx, yy)
					if idx2 >= 0 && idx2 < len(visited) {
						visited[idx2] = true
					}
				}
			}

			e := world.CreateEntity()
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X: float64(x) * tileSize,
				Y: float64(y) * tileSize,
			}); err != nil {
				return fmt.Errorf("level: add tile transform: %w", err)
			}
			if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:  float64(maxW) * tileSize,
				Height: float64(maxH) * tileSize,
				Static: true,
			}); err != nil {
				return fmt.Errorf("level: add tile collider: %w", err)
			}
			if err := ecs.Add(world, e, component.SolidTagComponent.Kind(), &component.SolidTag{}); err != nil {
				return fmt.Errorf("level: add solid tag: %w", err)
			}
		}
	}

	return nil
}
