// Package sim assembles a playable world from a level: entities, systems and
// the fixed update order shared by the viewer and the headless runner.
package sim

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/owl/ecs"
	"github.com/milk9111/owl/ecs/component"
	"github.com/milk9111/owl/ecs/entity"
	"github.com/milk9111/owl/ecs/system"
	"github.com/milk9111/owl/levels"
	"github.com/milk9111/owl/prefabs"
)

type Options struct {
	// Editor marks the world as being edited, so owls never spawn their
	// payload.
	Editor bool
	Logger *log.Logger
	// Input runs first each tick. Headless runs leave it nil.
	Input ecs.System
}

type Sim struct {
	World   *ecs.World
	Level   *levels.Level
	Physics *system.PhysicsSystem
	Events  *system.EventLogSystem

	logger *log.Logger
}

// New loads lvl into a fresh world and schedules:
// input, player, physics, badguy, owl, skydive, event log.
func New(lvl *levels.Level, opts Options) (*Sim, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := ecs.NewWorld()
	if opts.Editor {
		if err := ecs.Add(w, w.CreateEntity(), component.EditorSessionComponent.Kind(), &component.EditorSession{}); err != nil {
			return nil, fmt.Errorf("sim: editor session: %w", err)
		}
	}

	factory := entity.NewFactory()
	if err := entity.LoadLevelToWorld(w, lvl, factory); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Sim{
		World:   w,
		Level:   lvl,
		Physics: system.NewPhysicsSystem(),
		Events:  system.NewEventLogSystem(logger.WithPrefix("events")),
		logger:  logger,
	}

	if opts.Input != nil {
		w.AddSystem(opts.Input)
	}
	w.AddSystem(system.NewPlayerSystem())
	w.AddSystem(s.Physics)
	w.AddSystem(system.NewBadGuySystem(logger, system.NewScriptRunner(logger.WithPrefix("script"))))
	w.AddSystem(system.NewOwlSystem(factory,
		system.WithOwlLogger(logger.WithPrefix("owl")),
		system.WithEditorMode(opts.Editor),
	))
	w.AddSystem(system.NewSkydiveSystem())
	w.AddSystem(s.Events)

	return s, nil
}

// Load reads the named level and builds a Sim from it.
func Load(name string, opts Options) (*Sim, error) {
	lvl, err := levels.Load(name)
	if err != nil {
		return nil, fmt.Errorf("sim: load level %q: %w", name, err)
	}
	return New(lvl, opts)
}

func (s *Sim) Step() {
	s.World.Update()
}

// Run advances the world n ticks.
func (s *Sim) Run(n int) {
	for range n {
		s.World.Update()
	}
}

func (s *Sim) Stats() system.EventStats {
	return s.Events.Stats()
}

// Retune applies a reloaded owl prefab to every owl in the world.
func (s *Sim) Retune(spec prefabs.OwlSpec) int {
	n := entity.ApplyOwlTuning(s.World, spec)
	s.logger.Info("owl prefab reloaded", "owls", n, "carry", spec.Carry, "speed", spec.FlyingSpeed)
	return n
}

// Save writes the persistent part of the world back out as a level.
func (s *Sim) Save(path string) error {
	return entity.SaveLevel(s.World, s.Level, path)
}
