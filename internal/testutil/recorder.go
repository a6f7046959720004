package testutil

import (
	"sync"

	"github.com/Rshores91/TicTacToe/internal/game/events"
)

// EventRecorder is a subscriber that keeps every event it sees, in order.
type EventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

// NewEventRecorder creates an empty recorder
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) ID() string { return "test_recorder" }

func (r *EventRecorder) InterestedIn(string) bool { return true }

func (r *EventRecorder) HandleEvent(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events with the given type
func (r *EventRecorder) OfType(eventType string) []events.Event {
	var out []events.Event
	for _, e := range r.Events() {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events of eventType were recorded
func (r *EventRecorder) Count(eventType string) int {
	return len(r.OfType(eventType))
}
