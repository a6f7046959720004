package core

import "fmt"

// Move represents a target cell on the board
type Move struct {
	Row, Col int
}

// NewMove creates a new move with the given row and column
func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

// MoveFromIndex creates a move from a flat board index using row-major ordering
func MoveFromIndex(idx int) Move {
	return Move{
		Row: idx / Size,
		Col: idx % Size,
	}
}

// InBounds checks if the move targets a cell on the board
func (m Move) InBounds() bool {
	return InBounds(m.Row, m.Col)
}

// Index converts the move to a flat board index using row-major ordering
func (m Move) Index() int {
	return Idx(m.Row, m.Col)
}

// String returns a string representation of the move
func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}
