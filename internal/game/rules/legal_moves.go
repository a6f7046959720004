package rules

import "github.com/Rshores91/TicTacToe/internal/game/core"

// LegalMoves returns every empty cell in row-major order. A finished game has
// no legal moves, but that is the coordinator's concern; this only reads the board.
func LegalMoves(board core.Board) []core.Move {
	return board.EmptyCells()
}

// LegalMoveMask returns a flattened mask over the 9 cells.
// Index = row*3 + col, true = the cell is empty.
func LegalMoveMask(board core.Board) [core.CellCount]bool {
	var mask [core.CellCount]bool
	for i := 0; i < core.CellCount; i++ {
		mask[i] = board.Cell(i) == core.MarkEmpty
	}
	return mask
}

// IsLegal reports whether m targets an empty in-bounds cell.
func IsLegal(board core.Board, m core.Move) bool {
	if !m.InBounds() {
		return false
	}
	return board.Cell(m.Index()) == core.MarkEmpty
}
