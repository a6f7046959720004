package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/game/events"
	"github.com/Rshores91/TicTacToe/internal/game/states"
	"github.com/Rshores91/TicTacToe/internal/policy"
)

// NewGameID returns a fresh game identifier
func NewGameID() string {
	return uuid.NewString()
}

// SessionConfig holds everything needed to play one game
type SessionConfig struct {
	GameID string
	Marks  core.MarkAssignment

	// Policies[i] plays for player i. Nil entries are built from PolicyKind
	// seeded with Seed+i.
	Policies   [core.NumPlayers]policy.Policy
	PolicyKind string
	Seed       int64

	MaxAttemptsPerTurn int
	Logger             zerolog.Logger

	// EventBus may be shared between sessions. The session's own move
	// handler is scoped to its game and removed when Run returns.
	EventBus *events.EventBus
}

// MoveRecord is one accepted move in play order
type MoveRecord struct {
	Number int
	Player core.PlayerID
	Mark   core.Mark
	Move   core.Move
}

// Result summarises a finished session
type Result struct {
	GameID     string
	Outcome    states.Outcome
	Board      core.Board
	Moves      []MoveRecord
	Rejections int
	Duration   time.Duration
}

// Session wires a coordinator to two workers
type Session struct {
	config  SessionConfig
	coord   *Coordinator
	workers [core.NumPlayers]*Worker
	bus     *events.EventBus
	logger  zerolog.Logger

	recordID events.HandlerID
	mu       sync.Mutex
	moves    []MoveRecord
}

// NewSession builds the board, the coordinator and both workers
func NewSession(cfg SessionConfig) (*Session, error) {
	logger := cfg.Logger.With().Str("component", "Session").Logger()

	if cfg.GameID == "" {
		cfg.GameID = NewGameID()
	}
	if cfg.Marks == (core.MarkAssignment{}) {
		cfg.Marks = core.DefaultMarks
	}
	marks, err := core.NewMarkAssignment(cfg.Marks[0], cfg.Marks[1])
	if err != nil {
		return nil, fmt.Errorf("mark assignment: %w", err)
	}
	cfg.Marks = marks

	for i := range cfg.Policies {
		if cfg.Policies[i] != nil {
			continue
		}
		p, err := policy.New(cfg.PolicyKind, cfg.Seed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("player %d policy: %w", i, err)
		}
		cfg.Policies[i] = p
	}

	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus(cfg.Logger)
	}

	s := &Session{
		config: cfg,
		bus:    cfg.EventBus,
		logger: logger.With().Str("game_id", cfg.GameID).Logger(),
	}
	s.recordID = s.bus.SubscribeGame(cfg.GameID, events.TypeMoveAccepted, s.recordMove)

	s.coord = NewCoordinator(CoordinatorConfig{
		GameID:    cfg.GameID,
		Marks:     cfg.Marks,
		Logger:    cfg.Logger,
		Publisher: s.bus,
	})
	for i := range s.workers {
		s.workers[i] = NewWorker(core.PlayerID(i), s.coord, cfg.Policies[i], cfg.MaxAttemptsPerTurn, cfg.Logger)
	}

	return s, nil
}

// Coordinator exposes the referee, mainly for tests and renderers
func (s *Session) Coordinator() *Coordinator { return s.coord }

// GameID returns the session's game identifier
func (s *Session) GameID() string { return s.config.GameID }

// Run plays the game to completion. The context is only checked before the
// workers start; once started, a game always runs to its end. A session runs
// once.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	defer s.bus.UnsubscribeFunc(s.recordID)

	if err := ctx.Err(); err != nil {
		s.logger.Error().Err(err).Msg("Session cancelled before start")
		return nil, err
	}

	start := time.Now()
	s.bus.Publish(events.NewGameStartedEvent(s.config.GameID, s.config.Marks))
	s.logger.Info().
		Str("player_0_mark", s.config.Marks[0].String()).
		Str("player_1_mark", s.config.Marks[1].String()).
		Msg("Session started")

	var g errgroup.Group
	for _, w := range s.workers {
		g.Go(func() error {
			if err := w.Run(); err != nil {
				s.coord.Abort(err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("session %s: %w", s.config.GameID, err)
	}

	final := s.coord.State()
	result := &Result{
		GameID:   s.config.GameID,
		Outcome:  final.Outcome,
		Board:    s.coord.Board(),
		Moves:    s.history(),
		Duration: time.Since(start),
	}
	for _, w := range s.workers {
		result.Rejections += w.Stats().Rejected
	}

	s.logger.Info().
		Str("outcome", result.Outcome.String()).
		Int("moves", len(result.Moves)).
		Int("rejections", result.Rejections).
		Dur("duration", result.Duration).
		Msg("Session finished")

	return result, nil
}

func (s *Session) recordMove(e events.Event) {
	accepted, ok := e.(*events.MoveAcceptedEvent)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = append(s.moves, MoveRecord{
		Number: accepted.MoveNumber,
		Player: accepted.PlayerID,
		Mark:   accepted.Mark,
		Move:   accepted.Move,
	})
}

func (s *Session) history() []MoveRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MoveRecord, len(s.moves))
	copy(out, s.moves)
	return out
}
