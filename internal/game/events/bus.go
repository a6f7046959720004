package events

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var _ Bus = (*EventBus)(nil)

// EventBus delivers events synchronously on the publishing goroutine. The
// coordinator publishes while it holds its lock, so the events of one game
// reach every handler in the order they happened.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	handlers    map[string][]funcHandler
	nextID      HandlerID
	published   atomic.Uint64
	logger      zerolog.Logger
}

type funcHandler struct {
	id     HandlerID
	gameID string // empty matches every game
	fn     EventHandler
}

func (h funcHandler) matches(e Event) bool {
	return h.gameID == "" || h.gameID == e.GameID()
}

// NewEventBus creates an empty bus
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string]Subscriber),
		handlers:    make(map[string][]funcHandler),
		logger:      logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds subscriber, replacing any earlier one with the same ID
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.subscribers, subscriberID)
	eb.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed from event bus")
}

// SubscribeFunc registers handler for eventType across all games
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) HandlerID {
	return eb.addHandler("", eventType, handler)
}

// SubscribeGame registers handler for eventType, called only for events
// published by gameID. Sessions sharing a bus use it to see their own moves.
func (eb *EventBus) SubscribeGame(gameID, eventType string, handler EventHandler) HandlerID {
	return eb.addHandler(gameID, eventType, handler)
}

func (eb *EventBus) addHandler(gameID, eventType string, handler EventHandler) HandlerID {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	eb.handlers[eventType] = append(eb.handlers[eventType], funcHandler{id: id, gameID: gameID, fn: handler})

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", gameID).
		Uint64("handler_id", uint64(id)).
		Msg("Function handler added to event bus")
	return id
}

// UnsubscribeFunc removes the handler registered under id
func (eb *EventBus) UnsubscribeFunc(id HandlerID) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for eventType, hs := range eb.handlers {
		for i, h := range hs {
			if h.id != id {
				continue
			}
			hs = append(hs[:i:i], hs[i+1:]...)
			if len(hs) == 0 {
				delete(eb.handlers, eventType)
			} else {
				eb.handlers[eventType] = hs
			}
			eb.logger.Debug().
				Str("event_type", eventType).
				Uint64("handler_id", uint64(id)).
				Msg("Function handler removed from event bus")
			return true
		}
	}
	return false
}

// Publish delivers event to every interested subscriber and matching
// handler. A panicking receiver is logged and does not stop delivery to the
// others.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eb.published.Add(1)
	eventType := event.Type()
	if e := eb.logger.Trace(); e.Enabled() {
		e.Str("event_type", eventType).
			Str("game_id", event.GameID()).
			Msg("Publishing event")
	}

	for id, subscriber := range eb.subscribers {
		if subscriber.InterestedIn(eventType) {
			eb.deliver(event, subscriber.HandleEvent, id, "Subscriber panicked while handling event")
		}
	}
	for _, h := range eb.handlers[eventType] {
		if h.matches(event) {
			eb.deliver(event, h.fn, "", "Function handler panicked while handling event")
		}
	}
}

func (eb *EventBus) deliver(event Event, fn EventHandler, subscriberID, panicMsg string) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("subscriber_id", subscriberID).
				Str("event_type", event.Type()).
				Str("game_id", event.GameID()).
				Interface("panic", r).
				Msg(panicMsg)
		}
	}()
	fn(event)
}

// Published returns how many events have gone through the bus
func (eb *EventBus) Published() uint64 {
	return eb.published.Load()
}

// SubscriberCount returns the number of subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// FuncHandlerCount returns the number of function handlers for eventType
func (eb *EventBus) FuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}
