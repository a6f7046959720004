package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapMoveError(t *testing.T) {
	tests := []struct {
		name     string
		player   PlayerID
		move     Move
		err      error
		expected string
		isNil    bool
	}{
		{
			name:   "nil error returns nil",
			player: Player0,
			move:   NewMove(0, 0),
			err:    nil,
			isNil:  true,
		},
		{
			name:     "occupied cell",
			player:   Player1,
			move:     NewMove(1, 2),
			err:      ErrCellOccupied,
			expected: "player 1: move (1,2): cell is already occupied",
		},
		{
			name:     "not your turn",
			player:   Player0,
			move:     NewMove(2, 2),
			err:      ErrNotYourTurn,
			expected: "player 0: move (2,2): it's not your turn",
		},
		{
			name:     "wrapped cause",
			player:   Player0,
			move:     NewMove(3, 3),
			err:      fmt.Errorf("validate: %w", ErrInvalidCoordinates),
			expected: "player 0: move (3,3): validate: invalid coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapMoveError(tt.player, tt.move, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))

			var moveErr *MoveError
			require.True(t, errors.As(wrapped, &moveErr))
			assert.Equal(t, tt.player, moveErr.Player)
			assert.Equal(t, tt.move, moveErr.Move)
		})
	}
}

func TestIsIllegalMove(t *testing.T) {
	assert.True(t, IsIllegalMove(ErrCellOccupied))
	assert.True(t, IsIllegalMove(WrapMoveError(Player0, NewMove(0, 0), ErrCellOccupied)))
	assert.True(t, IsIllegalMove(ErrInvalidCoordinates))
	assert.False(t, IsIllegalMove(ErrNotYourTurn))
	assert.False(t, IsIllegalMove(ErrGameOver))
	assert.False(t, IsIllegalMove(nil))
}

func TestPlayerID(t *testing.T) {
	assert.True(t, Player0.Valid())
	assert.True(t, Player1.Valid())
	assert.False(t, NoPlayer.Valid())
	assert.False(t, PlayerID(2).Valid())

	assert.Equal(t, Player1, Player0.Other())
	assert.Equal(t, Player0, Player1.Other())
	assert.Equal(t, "player 1", Player1.String())
	assert.Equal(t, "PlayerID(5)", PlayerID(5).String())
}

func TestMarkAssignment(t *testing.T) {
	t.Run("default assignment", func(t *testing.T) {
		assert.Equal(t, MarkO, DefaultMarks.Of(Player0))
		assert.Equal(t, MarkX, DefaultMarks.Of(Player1))
		assert.Equal(t, Player0, DefaultMarks.Owner(MarkO))
		assert.Equal(t, Player1, DefaultMarks.Owner(MarkX))
		assert.Equal(t, NoPlayer, DefaultMarks.Owner(MarkEmpty))
		assert.Equal(t, MarkEmpty, DefaultMarks.Of(NoPlayer))
	})

	t.Run("custom assignment", func(t *testing.T) {
		marks, err := NewMarkAssignment(MarkX, MarkO)
		require.NoError(t, err)
		assert.Equal(t, MarkX, marks.Of(Player0))
		assert.Equal(t, Player1, marks.Owner(MarkO))
	})

	t.Run("marks must differ", func(t *testing.T) {
		_, err := NewMarkAssignment(MarkX, MarkX)
		assert.ErrorIs(t, err, ErrInvalidMark)
	})

	t.Run("marks must be placeable", func(t *testing.T) {
		_, err := NewMarkAssignment(MarkEmpty, MarkX)
		assert.ErrorIs(t, err, ErrInvalidMark)
	})
}
