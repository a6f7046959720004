package subscribers

import (
	"encoding/json"

	"github.com/Rshores91/TicTacToe/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
	showBoard       bool
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// SetShowBoard attaches the rendered board to accepted-move log lines
func (ls *LoggerSubscriber) SetShowBoard(enabled bool) {
	ls.showBoard = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Str("player_0_mark", e.Marks[0].String()).
			Str("player_1_mark", e.Marks[1].String())

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", int(e.Winner)).
			Str("outcome", e.Outcome).
			Int("moves", e.Moves).
			Dur("duration", e.Duration)

	case *events.MoveAcceptedEvent:
		logEvent.
			Int("player_id", int(e.PlayerID)).
			Str("mark", e.Mark.String()).
			Int("row", e.Move.Row).
			Int("col", e.Move.Col).
			Int("move_number", e.MoveNumber)
		if ls.showBoard {
			logEvent.Str("board", e.Board.Render())
		}

	case *events.MoveRejectedEvent:
		logEvent.
			Int("player_id", int(e.PlayerID)).
			Int("active_player", int(e.ActivePlayer)).
			Int("row", e.Move.Row).
			Int("col", e.Move.Col).
			Str("reason", e.Reason)

	case *events.TurnChangedEvent:
		logEvent.
			Int("from", int(e.From)).
			Int("to", int(e.To))

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_state", e.FromState).
			Str("to_state", e.ToState).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
