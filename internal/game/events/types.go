package events

import (
	"time"
)

// Event is one thing that happened in one game
type Event interface {
	// Type is one of the Type* constants
	Type() string
	Timestamp() time.Time
	// GameID identifies the session that published the event
	GameID() string
}

// BaseEvent carries the fields shared by every game event
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      gameID,
	}
}

// EventHandler processes a single event
type EventHandler func(Event)

// HandlerID identifies a function handler so it can be removed again.
// The zero value never names a registered handler.
type HandlerID uint64

// Subscriber receives every event type it is interested in, for all games on
// the bus.
type Subscriber interface {
	ID() string
	// HandleEvent runs while the publishing coordinator holds its lock and
	// must not call back into it.
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is what the referee needs from a bus
type Publisher interface {
	Publish(Event)
}

// PublisherFunc adapts a plain function to Publisher
type PublisherFunc func(Event)

// Publish calls f(e)
func (f PublisherFunc) Publish(e Event) { f(e) }

// Discard drops every event
var Discard Publisher = PublisherFunc(func(Event) {})

// Bus is a Publisher that game drivers and tools can subscribe to
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	// SubscribeFunc registers handler for eventType in every game
	SubscribeFunc(eventType string, handler EventHandler) HandlerID
	// SubscribeGame registers handler for eventType in one game only
	SubscribeGame(gameID, eventType string, handler EventHandler) HandlerID
	// UnsubscribeFunc removes a handler and reports whether it was registered
	UnsubscribeFunc(id HandlerID) bool
}
