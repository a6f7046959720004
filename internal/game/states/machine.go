package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rshores91/TicTacToe/internal/game/events"
)

var ErrInvalidTransition = errors.New("invalid outcome transition")

// Transition represents a state transition in the history
type Transition struct {
	From      Outcome
	To        Outcome
	Timestamp time.Time
	Reason    string
}

// Machine tracks a game's outcome. Once a terminal outcome is reached
// every further transition is refused.
type Machine struct {
	mu             sync.RWMutex
	gameID         string
	current        Outcome
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
	logger         zerolog.Logger
}

// NewMachine creates a machine in the InProgress state. publisher may be nil.
func NewMachine(gameID string, publisher events.Publisher, logger zerolog.Logger) *Machine {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Machine{
		gameID:         gameID,
		current:        InProgress(),
		history:        make([]Transition, 0, 1),
		maxHistorySize: 16,
		publisher:      publisher,
		logger:         logger.With().Str("component", "outcome_machine").Str("game_id", gameID).Logger(),
	}
}

// Current returns the current outcome
func (m *Machine) Current() Outcome {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current
}

// IsTerminal reports whether the game has finished
func (m *Machine) IsTerminal() bool {
	return m.Current().IsTerminal()
}

// TransitionTo attempts to move to target
func (m *Machine) TransitionTo(target Outcome, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !target.Valid() {
		return fmt.Errorf("%w: malformed target %+v", ErrInvalidTransition, target)
	}
	if !m.current.CanTransitionTo(target) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, m.current, target)
	}

	previous := m.current
	m.current = target
	m.addToHistory(Transition{
		From:      previous,
		To:        target,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	m.publisher.Publish(events.NewStateTransitionEvent(
		m.gameID,
		previous.String(),
		target.String(),
		reason,
	))

	m.logger.Info().
		Str("from_state", previous.String()).
		Str("to_state", target.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// addToHistory adds a transition to the history, maintaining max size
func (m *Machine) addToHistory(transition Transition) {
	m.history = append(m.history, transition)

	if len(m.history) > m.maxHistorySize {
		m.history = m.history[len(m.history)-m.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (m *Machine) GetHistory() []Transition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := make([]Transition, len(m.history))
	copy(history, m.history)
	return history
}

// CanTransitionTo checks if a transition to target is allowed
func (m *Machine) CanTransitionTo(target Outcome) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current.CanTransitionTo(target)
}
