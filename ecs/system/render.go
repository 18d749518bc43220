package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/owl/common"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
	"golang.org/x/image/colornames"
)

// RenderSystem draws every entity with a collider as a coloured box. The
// camera follows the first player and is clamped to the level bounds.
type RenderSystem struct {
	ScreenWidth  float64
	ScreenHeight float64

	camX, camY float64
}

func NewRenderSystem(screenWidth, screenHeight float64) *RenderSystem {
	return &RenderSystem{ScreenWidth: screenWidth, ScreenHeight: screenHeight}
}

// Camera returns the top-left corner of the view in world space.
func (r *RenderSystem) Camera() (float64, float64) {
	if r == nil {
		return 0, 0
	}
	return r.camX, r.camY
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	r.follow(w)

	screen.Fill(colornames.Midnightblue)

	entities := w.Query(component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := drawLayer(w, entities[i]), drawLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		box, ok := BBox(w, e)
		if !ok {
			continue
		}
		x := float32(box.X - r.camX)
		y := float32(box.Y - r.camY)
		vector.DrawFilledRect(screen, x, y, float32(box.Width), float32(box.Height), entityColor(w, e), false)
		if bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind()); ok && bg.State == component.BadGuyActive {
			// beak marks the facing side
			bx := x
			if bg.Direction == component.DirRight {
				bx = x + float32(box.Width) - 4
			}
			vector.DrawFilledRect(screen, bx, y+float32(box.Height)/3, 4, 4, colornames.Orange, false)
		}
	}
}

func (r *RenderSystem) follow(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	box, ok := BBox(w, player)
	if !ok {
		return
	}
	r.camX = box.CenterX() - r.ScreenWidth/2
	r.camY = box.CenterY() - r.ScreenHeight/2
	if width, ok := LevelWidth(w); ok {
		r.camX = common.Clamp(r.camX, 0, max(0, width-r.ScreenWidth))
	}
	if height, ok := LevelHeight(w); ok {
		r.camY = common.Clamp(r.camY, 0, max(0, height-r.ScreenHeight))
	}
}

func drawLayer(w *ecs.World, e ecs.Entity) int {
	switch {
	case ecs.Has(w, e, component.SolidTagComponent.Kind()):
		return 0
	case ecs.Has(w, e, component.PortableComponent.Kind()):
		return 1
	case ecs.Has(w, e, component.BadGuyComponent.Kind()):
		return 2
	}
	return 3
}

func entityColor(w *ecs.World, e ecs.Entity) color.Color {
	if ecs.Has(w, e, component.SolidTagComponent.Kind()) {
		return colornames.Slategray
	}
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		if p.InvulnTimer > 0 && p.InvulnTimer%8 < 4 {
			return colornames.Pink
		}
		return colornames.Crimson
	}
	if bg, ok := ecs.Get(w, e, component.BadGuyComponent.Kind()); ok {
		switch {
		case bg.Frozen:
			return colornames.Lightcyan
		case bg.Ignited:
			return colornames.Orangered
		case bg.State == component.BadGuyFalling:
			return colornames.Dimgray
		}
		return colornames.Burlywood
	}
	if ecs.Has(w, e, component.SkydiveComponent.Kind()) {
		return colornames.Yellowgreen
	}
	return colornames.White
}
