package events

import (
	"time"

	"github.com/Rshores91/TicTacToe/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeMoveAccepted    = "move.accepted"
	TypeMoveRejected    = "move.rejected"
	TypeTurnChanged     = "turn.changed"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a session creates its board
type GameStartedEvent struct {
	BaseEvent
	Marks core.MarkAssignment
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, marks core.MarkAssignment) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		Marks:     marks,
	}
}

// GameEndedEvent is published once, by the move that finished the game.
// Winner is core.NoPlayer for a draw.
type GameEndedEvent struct {
	BaseEvent
	Winner   core.PlayerID
	Outcome  string
	Moves    int
	Duration time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.PlayerID, outcome string, moves int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Outcome:   outcome,
		Moves:     moves,
		Duration:  duration,
	}
}

// MoveAcceptedEvent is published after a mark has been written to the board
type MoveAcceptedEvent struct {
	BaseEvent
	PlayerID   core.PlayerID
	Mark       core.Mark
	Move       core.Move
	MoveNumber int
	Board      core.Board
}

// NewMoveAcceptedEvent creates a new MoveAcceptedEvent
func NewMoveAcceptedEvent(gameID string, player core.PlayerID, mark core.Mark, move core.Move, moveNumber int, board core.Board) *MoveAcceptedEvent {
	return &MoveAcceptedEvent{
		BaseEvent:  newBase(TypeMoveAccepted, gameID),
		PlayerID:   player,
		Mark:       mark,
		Move:       move,
		MoveNumber: moveNumber,
		Board:      board,
	}
}

// MoveRejectedEvent is published when a submission leaves the state unchanged
type MoveRejectedEvent struct {
	BaseEvent
	PlayerID     core.PlayerID
	ActivePlayer core.PlayerID
	Move         core.Move
	Reason       string
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, player, active core.PlayerID, move core.Move, reason error) *MoveRejectedEvent {
	e := &MoveRejectedEvent{
		BaseEvent:    newBase(TypeMoveRejected, gameID),
		PlayerID:     player,
		ActivePlayer: active,
		Move:         move,
	}
	if reason != nil {
		e.Reason = reason.Error()
	}
	return e
}

// TurnChangedEvent is published whenever the active player flips
type TurnChangedEvent struct {
	BaseEvent
	From core.PlayerID
	To   core.PlayerID
}

// NewTurnChangedEvent creates a new TurnChangedEvent
func NewTurnChangedEvent(gameID string, from, to core.PlayerID) *TurnChangedEvent {
	return &TurnChangedEvent{
		BaseEvent: newBase(TypeTurnChanged, gameID),
		From:      from,
		To:        to,
	}
}

// StateTransitionEvent is published when the game outcome changes
type StateTransitionEvent struct {
	BaseEvent
	FromState string
	ToState   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromState, toState, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromState: fromState,
		ToState:   toState,
		Reason:    reason,
	}
}
