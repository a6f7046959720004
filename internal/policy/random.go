package policy

import (
	"math/rand"

	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/game/rules"
)

// Random picks uniformly among the empty cells. It never proposes an
// occupied cell. Not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random policy driven by its own source seeded with seed
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// ProposeMove returns one of the empty cells, or ErrNoLegalMoves on a full
// board. The mark is ignored.
func (p *Random) ProposeMove(board core.Board, _ core.Mark) (core.Move, error) {
	moves := rules.LegalMoves(board)
	if len(moves) == 0 {
		return core.Move{}, ErrNoLegalMoves
	}
	return moves[p.rng.Intn(len(moves))], nil
}

// Blind picks any of the nine cells, occupied or not, and relies on the
// coordinator rejecting collisions. Not safe for concurrent use.
type Blind struct {
	rng *rand.Rand
}

// NewBlind returns a Blind policy seeded with seed
func NewBlind(seed int64) *Blind {
	return &Blind{rng: rand.New(rand.NewSource(seed))}
}

// ProposeMove returns any cell on the board, occupied or not. It fails with
// ErrNoLegalMoves only once the board is full.
func (p *Blind) ProposeMove(board core.Board, _ core.Mark) (core.Move, error) {
	if board.IsFull() {
		return core.Move{}, ErrNoLegalMoves
	}
	return core.MoveFromIndex(p.rng.Intn(core.CellCount)), nil
}
