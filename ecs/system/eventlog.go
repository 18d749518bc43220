package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/owl/ecs"
)

// EventStats counts the events seen by an EventLogSystem.
type EventStats struct {
	Released  map[ecs.ReleaseReason]int
	Exploded  int
	Victims   int
	States    map[string]int
	Sounds    map[string]int
	Scripts   map[string]int
	Processed int
}

func newEventStats() EventStats {
	return EventStats{
		Released: make(map[ecs.ReleaseReason]int),
		States:   make(map[string]int),
		Sounds:   make(map[string]int),
		Scripts:  make(map[string]int),
	}
}

// EventLogSystem drains the world event queue, logs each event and keeps
// running totals. It must be the last system in the schedule.
type EventLogSystem struct {
	logger *log.Logger
	stats  EventStats
}

func NewEventLogSystem(logger *log.Logger) *EventLogSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &EventLogSystem{logger: logger, stats: newEventStats()}
}

func (s *EventLogSystem) Stats() EventStats {
	if s == nil {
		return newEventStats()
	}
	return s.stats
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		s.stats.Processed++
		switch data := evt.Data.(type) {
		case ecs.CarryReleased:
			s.stats.Released[data.Reason]++
			s.logger.Info("carry released", "holder", data.Holder, "object", data.Object, "reason", data.Reason, "tick", w.Tick())
		case ecs.PayloadExploded:
			s.stats.Exploded++
			s.stats.Victims += len(data.Victims)
			s.logger.Info("payload exploded", "payload", data.Payload, "x", data.X, "y", data.Y, "victims", len(data.Victims), "tick", w.Tick())
		case ecs.BadGuyStateChanged:
			s.stats.States[data.State]++
			s.logger.Debug("badguy state", "entity", data.Entity, "state", data.State)
		case ecs.SoundRequested:
			s.stats.Sounds[data.Name]++
			s.logger.Debug("sound", "entity", data.Entity, "name", data.Name)
		case ecs.ScriptEmitted:
			s.stats.Scripts[data.Name]++
			s.logger.Info("script event", "entity", data.Entity, "name", data.Name)
		default:
			s.logger.Warn("unknown event", "type", evt.Type)
		}
	}
}
