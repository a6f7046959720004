package core

import (
	"fmt"
	"strings"
)

const (
	// Size is the side length of the grid.
	Size = 3
	// CellCount is the number of cells on the board.
	CellCount = Size * Size
)

// Mark is the symbol held by a cell.
type Mark int

const (
	MarkEmpty Mark = iota
	MarkX
	MarkO
)

func (m Mark) String() string {
	switch m {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	case MarkEmpty:
		return " "
	default:
		return fmt.Sprintf("Mark(%d)", int(m))
	}
}

// Valid reports whether m is a placeable mark.
func (m Mark) Valid() bool { return m == MarkX || m == MarkO }

// ParseMark converts "X" or "O" (case-insensitive) into a Mark.
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return MarkX, nil
	case "O":
		return MarkO, nil
	default:
		return MarkEmpty, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}

// WinLines lists every row, column and diagonal as flat cell indices.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major. The zero value is an empty board and
// copying a Board yields an independent snapshot.
type Board struct {
	cells [CellCount]Mark
}

// NewBoard returns an empty board.
func NewBoard() Board { return Board{} }

// InBounds checks if coordinates are within board boundaries
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Idx converts a row/column pair into a flat index.
func Idx(row, col int) int { return row*Size + col }

// At returns the mark at (row, col).
func (b Board) At(row, col int) (Mark, error) {
	if !InBounds(row, col) {
		return MarkEmpty, fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinates, row, col)
	}
	return b.cells[Idx(row, col)], nil
}

// Cell returns the mark at flat index i, or MarkEmpty when i is out of range.
func (b Board) Cell(i int) Mark {
	if i < 0 || i >= CellCount {
		return MarkEmpty
	}
	return b.cells[i]
}

// Place writes mark into an empty cell. A cell is written at most once.
func (b *Board) Place(row, col int, mark Mark) error {
	if !mark.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidMark, mark)
	}
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinates, row, col)
	}
	idx := Idx(row, col)
	if b.cells[idx] != MarkEmpty {
		return fmt.Errorf("%w: (%d,%d) holds %s", ErrCellOccupied, row, col, b.cells[idx])
	}
	b.cells[idx] = mark
	return nil
}

// PlaceMove is Place for a Move value.
func (b *Board) PlaceMove(m Move, mark Mark) error {
	return b.Place(m.Row, m.Col, mark)
}

// IsFull reports whether no empty cell remains.
func (b Board) IsFull() bool {
	for _, c := range b.cells {
		if c == MarkEmpty {
			return false
		}
	}
	return true
}

// Winner reports whether mark occupies a complete row, column or diagonal.
// Only the given mark is tested.
func (b Board) Winner(mark Mark) bool {
	if !mark.Valid() {
		return false
	}
	for _, line := range WinLines {
		if b.cells[line[0]] == mark && b.cells[line[1]] == mark && b.cells[line[2]] == mark {
			return true
		}
	}
	return false
}

// EmptyCells lists the empty cells in row-major order.
func (b Board) EmptyCells() []Move {
	moves := make([]Move, 0, CellCount)
	for i, c := range b.cells {
		if c == MarkEmpty {
			moves = append(moves, MoveFromIndex(i))
		}
	}
	return moves
}

// Count returns how many cells hold mark.
func (b Board) Count(mark Mark) int {
	n := 0
	for _, c := range b.cells {
		if c == mark {
			n++
		}
	}
	return n
}

// Render returns a plain-text snapshot of the board.
func (b Board) Render() string {
	var sb strings.Builder
	sb.Grow(64)

	sb.WriteString("   0   1   2\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d ", row)
		for col := 0; col < Size; col++ {
			sb.WriteString(" ")
			sb.WriteString(b.cells[Idx(row, col)].String())
			sb.WriteString(" ")
			if col < Size-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
		if row < Size-1 {
			sb.WriteString("  ---+---+---\n")
		}
	}
	return sb.String()
}

func (b Board) String() string { return b.Render() }

// ParseBoard builds a board from a compact layout such as "XO. .X. ..O".
// 'X' and 'O' are marks; '.', '-' and '_' are empty cells. Whitespace, '|'
// and '/' are ignored. Parsed boards are not required to be reachable by legal play.
func ParseBoard(layout string) (Board, error) {
	var b Board
	i := 0
	for _, r := range layout {
		var m Mark
		switch r {
		case ' ', '\t', '\n', '\r', '|', '/':
			continue
		case 'X', 'x':
			m = MarkX
		case 'O', 'o':
			m = MarkO
		case '.', '-', '_':
			m = MarkEmpty
		default:
			return Board{}, fmt.Errorf("parse board: unexpected %q", r)
		}
		if i >= CellCount {
			return Board{}, fmt.Errorf("parse board: more than %d cells", CellCount)
		}
		b.cells[i] = m
		i++
	}
	if i != CellCount {
		return Board{}, fmt.Errorf("parse board: got %d cells, want %d", i, CellCount)
	}
	return b, nil
}
