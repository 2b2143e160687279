package ecs

type EventType string

const (
	EventClueSolved   EventType = "clue_solved"
	EventCluesDone    EventType = "clues_done"
	EventCluesReset   EventType = "clues_reset"
	EventModeChanged  EventType = "mode_changed"
	EventScenarioRun  EventType = "scenario_run"
	EventPrefabReload EventType = "prefab_reload"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a simple FIFO queue. Whatever is still queued when the
// scheduler finishes a tick is dropped.
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
