package common

// ANSI escape codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"

	BgYellow = "\033[43m"
)

// PlayerColors defines the color scheme for each player
var PlayerColors = map[int]string{
	-1: ColorGray, // Neutral / empty
	0:  ColorRed,
	1:  ColorBlue,
}

// Terminal UI colors
var (
	GridLineColor = ColorGray
	HeaderColor   = ColorGray
	WinLineColor  = BgYellow
	OutcomeColor  = ColorBold + ColorGreen
	DrawColor     = ColorBold + ColorYellow
)

// PlayerColor returns the color for playerID, falling back to the neutral one
func PlayerColor(playerID int) string {
	if c, ok := PlayerColors[playerID]; ok {
		return c
	}
	return PlayerColors[-1]
}

// Colorize wraps s in code and a reset. An empty code returns s unchanged.
func Colorize(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset
}
