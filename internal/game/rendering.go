package game

import (
	"fmt"
	"strings"

	"github.com/Rshores91/TicTacToe/internal/common"
	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/game/rules"
	"github.com/Rshores91/TicTacToe/internal/game/states"
)

// This file contains the terminal rendering used by the CLI.

// RenderColored draws the board like core.Board.Render, with each mark in its
// owner's color and a completed line highlighted.
func RenderColored(board core.Board, marks core.MarkAssignment) string {
	highlight := make(map[int]bool, 3)
	for _, m := range marks {
		if line, ok := rules.WinningLine(board, m); ok {
			for _, idx := range line {
				highlight[idx] = true
			}
		}
	}

	// Each cell takes 3 visible chars plus up to ~14 for escape codes
	var sb strings.Builder
	sb.Grow(core.CellCount*20 + 64)

	sb.WriteString(common.Colorize(common.HeaderColor, "   0   1   2"))
	sb.WriteString("\n")
	for row := 0; row < core.Size; row++ {
		sb.WriteString(common.Colorize(common.HeaderColor, fmt.Sprintf("%d ", row)))
		for col := 0; col < core.Size; col++ {
			idx := core.Idx(row, col)
			writeCell(&sb, board.Cell(idx), marks, highlight[idx])
			if col < core.Size-1 {
				sb.WriteString(common.Colorize(common.GridLineColor, "|"))
			}
		}
		sb.WriteString("\n")
		if row < core.Size-1 {
			sb.WriteString(common.Colorize(common.GridLineColor, "  ---+---+---"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// writeCell writes one cell directly to the builder
func writeCell(sb *strings.Builder, mark core.Mark, marks core.MarkAssignment, highlighted bool) {
	if highlighted {
		sb.WriteString(common.WinLineColor)
	}
	sb.WriteString(" ")
	if mark == core.MarkEmpty {
		sb.WriteString(" ")
	} else {
		sb.WriteString(common.PlayerColor(int(marks.Owner(mark))))
		sb.WriteString(mark.String())
	}
	sb.WriteString(" ")
	sb.WriteString(common.ColorReset)
}

// FormatOutcome returns a one-line summary such as "player 0 (O) wins".
func FormatOutcome(outcome states.Outcome, marks core.MarkAssignment, color bool) string {
	var text, code string
	switch outcome.Kind {
	case states.KindWin:
		text = fmt.Sprintf("%s (%s) wins", outcome.Winner, marks.Of(outcome.Winner))
		code = common.OutcomeColor
	case states.KindDraw:
		text = "draw"
		code = common.DrawColor
	default:
		text = "in progress"
	}
	if !color {
		return text
	}
	return common.Colorize(code, text)
}
