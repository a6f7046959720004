package states

import (
	"fmt"

	"github.com/Rshores91/TicTacToe/internal/game/core"
)

// OutcomeKind represents the state of a game's result
type OutcomeKind int

const (
	// KindInProgress - moves are still being accepted
	KindInProgress OutcomeKind = iota

	// KindWin - one player completed a line
	KindWin

	// KindDraw - the board filled up without a line
	KindDraw
)

// String returns the string representation of an OutcomeKind
func (k OutcomeKind) String() string {
	switch k {
	case KindInProgress:
		return "InProgress"
	case KindWin:
		return "Win"
	case KindDraw:
		return "Draw"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Outcome is the game result. Winner is only meaningful for KindWin.
type Outcome struct {
	Kind   OutcomeKind
	Winner core.PlayerID
}

// InProgress is the initial outcome of every game.
func InProgress() Outcome { return Outcome{Kind: KindInProgress, Winner: core.NoPlayer} }

// WinFor returns the outcome where p has won.
func WinFor(p core.PlayerID) Outcome { return Outcome{Kind: KindWin, Winner: p} }

// Draw returns the outcome of a full board without a winner.
func Draw() Outcome { return Outcome{Kind: KindDraw, Winner: core.NoPlayer} }

// String renders the outcome as InProgress, Win(<player>) or Draw
func (o Outcome) String() string {
	if o.Kind == KindWin {
		return fmt.Sprintf("Win(%d)", int(o.Winner))
	}
	return o.Kind.String()
}

// IsTerminal returns true if no further moves can be accepted
func (o Outcome) IsTerminal() bool {
	return o.Kind == KindWin || o.Kind == KindDraw
}

// Valid reports whether the outcome is well formed.
func (o Outcome) Valid() bool {
	switch o.Kind {
	case KindInProgress, KindDraw:
		return o.Winner == core.NoPlayer
	case KindWin:
		return o.Winner.Valid()
	default:
		return false
	}
}

// AllowedTransitions returns the outcomes this outcome can transition to
func (o Outcome) AllowedTransitions() []Outcome {
	if o.Kind == KindInProgress {
		return []Outcome{WinFor(core.Player0), WinFor(core.Player1), Draw()}
	}
	return []Outcome{}
}

// CanTransitionTo checks if a transition from this outcome to the target is allowed
func (o Outcome) CanTransitionTo(target Outcome) bool {
	for _, allowed := range o.AllowedTransitions() {
		if allowed == target {
			return true
		}
	}
	return false
}
