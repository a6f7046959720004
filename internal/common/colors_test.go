package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerColors(t *testing.T) {
	tests := []struct {
		playerID     int
		expectedName string
		expected     string
	}{
		{-1, "neutral gray", ColorGray},
		{0, "player 0 red", ColorRed},
		{1, "player 1 blue", ColorBlue},
	}

	for _, tt := range tests {
		t.Run(tt.expectedName, func(t *testing.T) {
			c, exists := PlayerColors[tt.playerID]
			assert.True(t, exists, "color should exist for player %d", tt.playerID)
			assert.Equal(t, tt.expected, c)
			assert.Equal(t, tt.expected, PlayerColor(tt.playerID))
		})
	}
}

func TestPlayerColorFallback(t *testing.T) {
	assert.Equal(t, ColorGray, PlayerColor(99))
	assert.Equal(t, ColorGray, PlayerColor(-5))
}

func TestColorConsistency(t *testing.T) {
	t.Run("unique player colors", func(t *testing.T) {
		seen := make(map[string]int)
		for playerID, c := range PlayerColors {
			if existingID, exists := seen[c]; exists {
				t.Errorf("players %d and %d have the same color", existingID, playerID)
			}
			seen[c] = playerID
		}
	})

	t.Run("escape codes", func(t *testing.T) {
		for playerID, c := range PlayerColors {
			assert.True(t, strings.HasPrefix(c, "\033["), "player %d color should be an ANSI escape", playerID)
		}
	})
}

func TestColorize(t *testing.T) {
	assert.Equal(t, ColorRed+"X"+ColorReset, Colorize(ColorRed, "X"))
	assert.Equal(t, "X", Colorize("", "X"))
}
