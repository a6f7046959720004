package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rshores91/TicTacToe/internal/game"
	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/game/states"
	"github.com/Rshores91/TicTacToe/internal/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"unknown": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestPrintResult(t *testing.T) {
	res := &game.Result{
		GameID:  "g1",
		Outcome: states.WinFor(core.Player0),
		Board:   testutil.MustParseBoard(t, "OOO / XX. / ..."),
		Moves: []game.MoveRecord{
			{Number: 1, Player: core.Player0, Mark: core.MarkO, Move: core.Move{Row: 0, Col: 0}},
			{Number: 2, Player: core.Player1, Mark: core.MarkX, Move: core.Move{Row: 1, Col: 0}},
		},
	}

	var buf bytes.Buffer
	printResult(&buf, res, core.DefaultMarks, false, true)

	out := buf.String()
	assert.Contains(t, out, " 1. player 0 (O) -> (0,0)\n")
	assert.Contains(t, out, " 2. player 1 (X) -> (1,0)\n")
	assert.Contains(t, out, res.Board.Render())
	assert.Contains(t, out, "Result: player 0 (O) wins after 2 moves")
}

func TestPlayGameAndTally(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tally := make(map[string]int)
	for i := int64(0); i < 10; i++ {
		res, err := playGame(t.Context(), gameOptions{
			seed:        100 + i*2,
			policyKind:  "blind",
			maxAttempts: 256,
			marks:       core.DefaultMarks,
		})
		require.NoError(t, err)
		require.True(t, res.Outcome.IsTerminal())
		tally[tallyKey(res.Outcome)]++
	}

	var buf bytes.Buffer
	printTally(&buf, tally, core.DefaultMarks)
	assert.Contains(t, buf.String(), "player 0 (O) wins:")
	assert.Contains(t, buf.String(), "draws:")
	assert.Equal(t, 10, tally["player 0"]+tally["player 1"]+tally["draw"])
}
