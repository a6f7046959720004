package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Rshores91/TicTacToe/internal/game/core"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// MustParseBoard builds a board from a layout like "XO. / .X. / ..O"
// and fails the test if the layout is malformed.
func MustParseBoard(t testing.TB, layout string) core.Board {
	t.Helper()
	board, err := core.ParseBoard(layout)
	require.NoError(t, err, "bad board layout %q", layout)
	return board
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
