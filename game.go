package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/owl/ecs/system"
	"github.com/milk9111/owl/prefabs"
	"github.com/milk9111/owl/sim"
)

const (
	baseWidth  = 640
	baseHeight = 480
)

type Game struct {
	sim     *sim.Sim
	render  *system.RenderSystem
	watcher *prefabs.Watcher
	logger  *log.Logger
	debug   bool
}

func NewGame(levelName string, editor, debug bool, logger *log.Logger) (*Game, error) {
	s, err := sim.Load(levelName, sim.Options{
		Editor: editor,
		Logger: logger,
		Input:  system.NewInputSystem(),
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		sim:    s,
		render: system.NewRenderSystem(baseWidth, baseHeight),
		logger: logger,
		debug:  debug,
	}

	if prefabs.DiskRoot != "" {
		w, err := prefabs.NewWatcher(prefabs.DiskRoot, filepath.Join(prefabs.DiskRoot, "scripts"))
		if err != nil {
			logger.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.pollPrefabs()
	g.sim.Step()
	return nil
}

func (g *Game) pollPrefabs() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	if change.Script {
		g.logger.Info("script changed, applies to new owls only", "path", change.Path)
		return
	}
	if change.Name != "owl.yaml" {
		return
	}
	spec, err := prefabs.LoadOwlSpec()
	if err != nil {
		g.logger.Error("reload owl prefab", "err", err)
		return
	}
	g.sim.Retune(spec)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.sim.World, screen)
	if !g.debug {
		return
	}
	camX, camY := g.render.Camera()
	system.DrawPhysicsDebug(g.sim.Physics, screen, camX, camY)
	system.DrawWorldDebug(g.sim.World, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	if err := g.watcher.Close(); err != nil {
		return fmt.Errorf("close prefab watcher: %w", err)
	}
	return nil
}
