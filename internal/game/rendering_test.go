package game

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rshores91/TicTacToe/internal/common"
	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/game/states"
	"github.com/Rshores91/TicTacToe/internal/testutil"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRenderColored(t *testing.T) {
	board := testutil.MustParseBoard(t, "OX. / .O. / X.O")

	out := RenderColored(board, core.DefaultMarks)

	assert.Equal(t, board.Render(), ansi.ReplaceAllString(out, ""), "colors aside, the layout matches the plain renderer")
	assert.Contains(t, out, common.PlayerColor(0)+"O")
	assert.Contains(t, out, common.PlayerColor(1)+"X")
	assert.Equal(t, 3, strings.Count(out, common.WinLineColor), "the diagonal is highlighted")
}

func TestRenderColored_NoWinNoHighlight(t *testing.T) {
	out := RenderColored(testutil.MustParseBoard(t, "OX. / ... / ..."), core.DefaultMarks)
	assert.NotContains(t, out, common.WinLineColor)
}

func TestFormatOutcome(t *testing.T) {
	tests := []struct {
		outcome  states.Outcome
		expected string
	}{
		{states.WinFor(core.Player0), "player 0 (O) wins"},
		{states.WinFor(core.Player1), "player 1 (X) wins"},
		{states.Draw(), "draw"},
		{states.InProgress(), "in progress"},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatOutcome(tt.outcome, core.DefaultMarks, false))
			colored := FormatOutcome(tt.outcome, core.DefaultMarks, true)
			assert.Equal(t, tt.expected, ansi.ReplaceAllString(colored, ""))
		})
	}
}
