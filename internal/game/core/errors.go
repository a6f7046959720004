package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrInvalidMark        = errors.New("invalid mark")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidPlayer      = errors.New("invalid player ID")
	ErrNotYourTurn        = errors.New("it's not your turn")
)

// MoveError annotates a move failure with the player and target cell.
type MoveError struct {
	Player PlayerID
	Move   Move
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("player %d: move %s: %v", e.Player, e.Move, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// WrapMoveError returns nil when err is nil.
func WrapMoveError(player PlayerID, move Move, err error) error {
	if err == nil {
		return nil
	}
	return &MoveError{Player: player, Move: move, Err: err}
}

// IsIllegalMove reports whether err means the target cell could not take a mark.
func IsIllegalMove(err error) bool {
	return errors.Is(err, ErrCellOccupied) || errors.Is(err, ErrInvalidCoordinates)
}
