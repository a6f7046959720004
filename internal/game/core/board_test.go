package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, layout string) Board {
	t.Helper()
	b, err := ParseBoard(layout)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	board := NewBoard()

	for i := 0; i < CellCount; i++ {
		assert.Equal(t, MarkEmpty, board.Cell(i), "cell %d should be empty", i)
	}
	assert.False(t, board.IsFull())
	assert.Len(t, board.EmptyCells(), CellCount)
}

func TestBoard_Place(t *testing.T) {
	t.Run("places mark on empty cell", func(t *testing.T) {
		board := NewBoard()

		require.NoError(t, board.Place(1, 2, MarkX))

		m, err := board.At(1, 2)
		require.NoError(t, err)
		assert.Equal(t, MarkX, m)
		assert.Equal(t, 1, board.Count(MarkX))
		assert.Equal(t, CellCount-1, board.Count(MarkEmpty))
	})

	t.Run("occupied cell is an illegal move", func(t *testing.T) {
		board := NewBoard()
		require.NoError(t, board.Place(0, 0, MarkO))
		before := board

		err := board.Place(0, 0, MarkX)

		require.ErrorIs(t, err, ErrCellOccupied)
		assert.True(t, IsIllegalMove(err))
		assert.Equal(t, before, board, "board must not change on rejection")
	})

	t.Run("same mark twice is still rejected", func(t *testing.T) {
		board := NewBoard()
		require.NoError(t, board.Place(2, 2, MarkO))

		assert.ErrorIs(t, board.Place(2, 2, MarkO), ErrCellOccupied)
	})

	t.Run("out of bounds", func(t *testing.T) {
		tests := []struct {
			row, col int
		}{
			{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {10, 10},
		}
		for _, tt := range tests {
			board := NewBoard()
			err := board.Place(tt.row, tt.col, MarkX)
			assert.ErrorIs(t, err, ErrInvalidCoordinates, "(%d,%d)", tt.row, tt.col)
			assert.Equal(t, NewBoard(), board)
		}
	})

	t.Run("empty mark cannot be placed", func(t *testing.T) {
		board := NewBoard()
		assert.ErrorIs(t, board.Place(0, 0, MarkEmpty), ErrInvalidMark)
		assert.ErrorIs(t, board.Place(0, 0, Mark(7)), ErrInvalidMark)
	})
}

func TestBoard_WriteOnce(t *testing.T) {
	board := NewBoard()
	marks := []Mark{MarkX, MarkO}

	for i := 0; i < CellCount; i++ {
		m := MoveFromIndex(i)
		require.NoError(t, board.PlaceMove(m, marks[i%2]))

		// every other attempt on any already written cell fails and leaves it intact
		for j := 0; j <= i; j++ {
			prev := board.Cell(j)
			for _, mark := range marks {
				assert.ErrorIs(t, board.PlaceMove(MoveFromIndex(j), mark), ErrCellOccupied)
				assert.Equal(t, prev, board.Cell(j))
			}
		}
	}
	assert.True(t, board.IsFull())
}

func TestBoard_IsFull(t *testing.T) {
	assert.True(t, mustParse(t, "XOX OXO OXO").IsFull())
	assert.False(t, mustParse(t, "XOX OXO OX.").IsFull())
	assert.False(t, NewBoard().IsFull())
}

func TestBoard_Winner(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		mark   Mark
		want   bool
	}{
		{"top row", "XXX OO. ...", MarkX, true},
		{"middle row", "OO. XXX ...", MarkX, true},
		{"bottom row", "... OO. XXX", MarkX, true},
		{"left column", "O.X O.X O..", MarkO, true},
		{"middle column", ".O. XOX .O.", MarkO, true},
		{"right column", "X.O X.O ..O", MarkO, true},
		{"main diagonal", "X.O .XO ..X", MarkX, true},
		{"anti diagonal", "X.O XO. O..", MarkO, true},
		{"only other mark wins", "XXX OO. ...", MarkO, false},
		{"no line", "XOX XOO OXX", MarkX, false},
		{"no line for O", "XOX XOO OXX", MarkO, false},
		{"empty board", "... ... ...", MarkX, false},
		{"empty mark never wins", "... ... ...", MarkEmpty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustParse(t, tt.layout)
			assert.Equal(t, tt.want, board.Winner(tt.mark))
		})
	}
}

func TestBoard_EmptyCells(t *testing.T) {
	board := mustParse(t, "X.O .X. O..")

	assert.Equal(t, []Move{
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
		{Row: 1, Col: 2},
		{Row: 2, Col: 1},
		{Row: 2, Col: 2},
	}, board.EmptyCells())

	assert.Empty(t, mustParse(t, "XOX OXO OXO").EmptyCells())
}

func TestBoard_SnapshotIsIndependent(t *testing.T) {
	board := NewBoard()
	snapshot := board

	require.NoError(t, board.Place(1, 1, MarkX))

	assert.Equal(t, MarkEmpty, snapshot.Cell(4))
	assert.Equal(t, MarkX, board.Cell(4))
}

func TestBoard_Render(t *testing.T) {
	board := mustParse(t, "X.O .X. O..")
	before := board

	expected := "   0   1   2\n" +
		"0  X |   | O \n" +
		"  ---+---+---\n" +
		"1    | X |   \n" +
		"  ---+---+---\n" +
		"2  O |   |   \n"

	assert.Equal(t, expected, board.Render())
	assert.Equal(t, expected, board.String())
	assert.Equal(t, before, board, "rendering must not mutate the board")
}

func TestParseBoard(t *testing.T) {
	t.Run("separators are ignored", func(t *testing.T) {
		a := mustParse(t, "X|O|.\n.|X|.\nO|.|.")
		b := mustParse(t, "XO..X.O..")
		assert.Equal(t, a, b)
	})

	t.Run("too few cells", func(t *testing.T) {
		_, err := ParseBoard("XO")
		assert.Error(t, err)
	})

	t.Run("too many cells", func(t *testing.T) {
		_, err := ParseBoard("XOXOXOXOXO")
		assert.Error(t, err)
	})

	t.Run("unknown rune", func(t *testing.T) {
		_, err := ParseBoard("XOZ ... ...")
		assert.Error(t, err)
	})
}

func TestMark(t *testing.T) {
	assert.Equal(t, "X", MarkX.String())
	assert.Equal(t, "O", MarkO.String())
	assert.Equal(t, " ", MarkEmpty.String())
	assert.Equal(t, "Mark(9)", Mark(9).String())

	m, err := ParseMark(" x ")
	require.NoError(t, err)
	assert.Equal(t, MarkX, m)

	m, err = ParseMark("O")
	require.NoError(t, err)
	assert.Equal(t, MarkO, m)

	_, err = ParseMark("Z")
	assert.ErrorIs(t, err, ErrInvalidMark)
}

func TestMove(t *testing.T) {
	for i := 0; i < CellCount; i++ {
		m := MoveFromIndex(i)
		assert.True(t, m.InBounds())
		assert.Equal(t, i, m.Index())
	}

	assert.Equal(t, Move{Row: 2, Col: 1}, NewMove(2, 1))
	assert.Equal(t, "(2,1)", NewMove(2, 1).String())
	assert.False(t, NewMove(3, 0).InBounds())
	assert.False(t, NewMove(0, -1).InBounds())
}
