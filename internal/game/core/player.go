package core

import "fmt"

// PlayerID identifies one of the two participants. It is fixed for a worker's lifetime.
type PlayerID int

const (
	Player0 PlayerID = 0
	Player1 PlayerID = 1

	// NoPlayer marks the absence of a winner.
	NoPlayer PlayerID = -1

	NumPlayers = 2
)

// Valid reports whether p is 0 or 1.
func (p PlayerID) Valid() bool { return p == Player0 || p == Player1 }

// Other returns the opponent of p.
func (p PlayerID) Other() PlayerID { return 1 - p }

func (p PlayerID) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PlayerID(%d)", int(p))
	}
	return fmt.Sprintf("player %d", int(p))
}

// MarkAssignment binds each player to a distinct mark.
type MarkAssignment [NumPlayers]Mark

// DefaultMarks gives player 0 the O mark and player 1 the X mark.
var DefaultMarks = MarkAssignment{MarkO, MarkX}

// NewMarkAssignment validates that both marks are placeable and distinct.
func NewMarkAssignment(p0, p1 Mark) (MarkAssignment, error) {
	if !p0.Valid() || !p1.Valid() {
		return MarkAssignment{}, fmt.Errorf("%w: player marks must be X or O", ErrInvalidMark)
	}
	if p0 == p1 {
		return MarkAssignment{}, fmt.Errorf("%w: both players were assigned %s", ErrInvalidMark, p0)
	}
	return MarkAssignment{p0, p1}, nil
}

// Of returns the mark bound to p.
func (a MarkAssignment) Of(p PlayerID) Mark {
	if !p.Valid() {
		return MarkEmpty
	}
	return a[p]
}

// Owner returns the player holding mark, or NoPlayer.
func (a MarkAssignment) Owner(mark Mark) PlayerID {
	for i, m := range a {
		if m == mark && mark.Valid() {
			return PlayerID(i)
		}
	}
	return NoPlayer
}
