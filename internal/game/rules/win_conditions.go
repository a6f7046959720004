package rules

import (
	"github.com/rs/zerolog"

	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/game/states"
)

// WinConditionChecker decides the outcome after a mark has been placed
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// Evaluate returns the outcome after player, playing mark, made the latest
// move. Only the mover can have completed a line, so only mark is tested.
// A win on the ninth move is a win, not a draw.
func (wc *WinConditionChecker) Evaluate(board core.Board, mark core.Mark, player core.PlayerID) states.Outcome {
	if board.Winner(mark) {
		wc.logger.Info().Int("winner_player_id", int(player)).Str("mark", mark.String()).Msg("Winner determined")
		return states.WinFor(player)
	}
	if board.IsFull() {
		wc.logger.Info().Msg("Board full without a line, draw")
		return states.Draw()
	}

	wc.logger.Debug().
		Int("empty_cells", board.Count(core.MarkEmpty)).
		Msg("Game continues")
	return states.InProgress()
}

// WinningLine returns the first completed line for mark, if any.
func WinningLine(board core.Board, mark core.Mark) ([3]int, bool) {
	if !mark.Valid() {
		return [3]int{}, false
	}
	for _, line := range core.WinLines {
		if board.Cell(line[0]) == mark && board.Cell(line[1]) == mark && board.Cell(line[2]) == mark {
			return line, true
		}
	}
	return [3]int{}, false
}
