package ecs

// EventType names a world event.
type EventType string

const (
	// EventCarryReleased carries a CarryReleased payload.
	EventCarryReleased EventType = "carry.released"
	// EventPayloadExploded carries a PayloadExploded payload.
	EventPayloadExploded EventType = "payload.exploded"
	// EventBadGuyState carries a BadGuyStateChanged payload.
	EventBadGuyState EventType = "badguy.state"
	// EventSound carries a SoundRequested payload.
	EventSound EventType = "sound"
	// EventScript carries a ScriptEmitted payload.
	EventScript EventType = "script"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// ReleaseReason says why a holder let go of its carried object.
type ReleaseReason string

const (
	ReleaseDrop   ReleaseReason = "drop"
	ReleaseEdge   ReleaseReason = "edge"
	ReleaseFreeze ReleaseReason = "freeze"
	ReleaseIgnite ReleaseReason = "ignite"
	ReleaseSquish ReleaseReason = "squish"
	ReleaseKill   ReleaseReason = "kill"
	ReleaseLost   ReleaseReason = "lost"
)

type CarryReleased struct {
	Holder Entity
	Object Entity
	Reason ReleaseReason
}

type PayloadExploded struct {
	Payload Entity
	X, Y    float64
	Victims []Entity
}

type BadGuyStateChanged struct {
	Entity Entity
	State  string
}

type SoundRequested struct {
	Entity Entity
	Name   string
}

type ScriptEmitted struct {
	Entity Entity
	Name   string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
