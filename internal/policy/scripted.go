package policy

import (
	"sync"

	"github.com/Rshores91/TicTacToe/internal/game/core"
)

// Scripted replays a fixed list of moves in order, one per call, whether or
// not they are legal.
type Scripted struct {
	mu    sync.Mutex
	moves []core.Move
	next  int
}

// NewScripted returns a policy that proposes moves in the given order
func NewScripted(moves ...core.Move) *Scripted {
	return &Scripted{moves: append([]core.Move(nil), moves...)}
}

// ProposeMove returns the next scripted move, or ErrScriptExhausted once
// every move has been proposed.
func (p *Scripted) ProposeMove(_ core.Board, _ core.Mark) (core.Move, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.next >= len(p.moves) {
		return core.Move{}, ErrScriptExhausted
	}
	m := p.moves[p.next]
	p.next++
	return m, nil
}

// Remaining returns how many scripted moves have not been proposed yet.
func (p *Scripted) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.moves) - p.next
}
