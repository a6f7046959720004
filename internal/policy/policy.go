// Package policy contains the move selection strategies used by player workers.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rshores91/TicTacToe/internal/game/core"
)

var (
	ErrNoLegalMoves    = errors.New("no legal moves available")
	ErrUnknownPolicy   = errors.New("unknown policy")
	ErrScriptExhausted = errors.New("scripted policy has no moves left")
)

// Policy proposes a move for mark on a board snapshot. A proposal may be
// illegal; the coordinator rejects it and the worker asks again.
type Policy interface {
	ProposeMove(board core.Board, mark core.Mark) (core.Move, error)
}

// Kinds accepted by New.
const (
	KindRandom = "random"
	KindBlind  = "blind"
)

// New builds a policy by name. Each call returns an independent policy with
// its own generator seeded from seed.
func New(kind string, seed int64) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindRandom, "":
		return NewRandom(seed), nil
	case KindBlind:
		return NewBlind(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, kind)
	}
}
