package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/game/events"
	"github.com/Rshores91/TicTacToe/internal/game/rules"
	"github.com/Rshores91/TicTacToe/internal/game/states"
)

var (
	ErrTurnReleased    = errors.New("turn already released")
	ErrGameAborted     = errors.New("game aborted")
	ErrPolicyExhausted = errors.New("policy exhausted its attempts for this turn")
)

// TurnOutcome is what a player learns when AwaitTurn returns
type TurnOutcome int

const (
	YourTurn TurnOutcome = iota
	GameOver
	Aborted
)

func (o TurnOutcome) String() string {
	switch o {
	case YourTurn:
		return "YourTurn"
	case GameOver:
		return "GameOver"
	case Aborted:
		return "Aborted"
	default:
		return fmt.Sprintf("TurnOutcome(%d)", int(o))
	}
}

// MoveStatus reports whether a submission changed the game
type MoveStatus int

const (
	Rejected MoveStatus = iota
	Accepted
)

func (s MoveStatus) String() string {
	if s == Accepted {
		return "Accepted"
	}
	return "Rejected"
}

// MoveResult describes a single submission. Err is set only when Status is
// Rejected; Ended and Outcome reflect the game after the submission.
type MoveResult struct {
	Status  MoveStatus
	Player  core.PlayerID
	Mark    core.Mark
	Move    core.Move
	Ended   bool
	Outcome states.Outcome
	Err     error
}

// GameState is a consistent snapshot of the referee state
type GameState struct {
	ActivePlayer core.PlayerID
	Finished     bool
	Outcome      states.Outcome
	MovesPlayed  int
}

// CoordinatorConfig holds the collaborators of a Coordinator.
// Zero values fall back to defaults.
type CoordinatorConfig struct {
	GameID    string
	Marks     core.MarkAssignment
	Logger    zerolog.Logger
	Publisher events.Publisher
}

// Coordinator owns the board and the turn state of one game. All access goes
// through its mutex; players block on the condition variable until it is
// their turn or the game has ended.
type Coordinator struct {
	mu   sync.Mutex
	cond *sync.Cond

	board    core.Board
	active   core.PlayerID
	finished bool
	aborted  error
	moves    int

	gameID    string
	marks     core.MarkAssignment
	startedAt time.Time

	machine   *states.Machine
	checker   *rules.WinConditionChecker
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewCoordinator creates an empty board with player 0 to move
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	if cfg.Marks == (core.MarkAssignment{}) {
		cfg.Marks = core.DefaultMarks
	}
	if cfg.GameID == "" {
		cfg.GameID = NewGameID()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.Discard
	}

	logger := cfg.Logger.With().Str("component", "Coordinator").Str("game_id", cfg.GameID).Logger()
	c := &Coordinator{
		board:     core.NewBoard(),
		active:    core.Player0,
		gameID:    cfg.GameID,
		marks:     cfg.Marks,
		startedAt: time.Now(),
		machine:   states.NewMachine(cfg.GameID, cfg.Publisher, cfg.Logger),
		checker:   rules.NewWinConditionChecker(logger),
		publisher: cfg.Publisher,
		logger:    logger,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// GameID returns the identifier used in events and logs
func (c *Coordinator) GameID() string { return c.gameID }

// Marks returns the mark assignment of this game
func (c *Coordinator) Marks() core.MarkAssignment { return c.marks }

// AwaitTurn blocks until it is player's turn or the game is over.
// On YourTurn the returned Turn holds the coordinator lock until Release.
func (c *Coordinator) AwaitTurn(player core.PlayerID) (*Turn, TurnOutcome) {
	if !player.Valid() {
		panic(fmt.Sprintf("AwaitTurn: invalid player %d", int(player)))
	}

	c.mu.Lock()
	for !c.finished && c.aborted == nil && c.active != player {
		c.cond.Wait()
	}

	switch {
	case c.finished:
		c.mu.Unlock()
		return nil, GameOver
	case c.aborted != nil:
		c.mu.Unlock()
		return nil, Aborted
	}

	return &Turn{c: c, player: player}, YourTurn
}

// SubmitMove is the self-locking form of a turn: it checks the game is still
// running and that player is active, then applies move.
func (c *Coordinator) SubmitMove(player core.PlayerID, move core.Move) MoveResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	switch {
	case !player.Valid():
		err = core.ErrInvalidPlayer
	case c.finished:
		err = core.ErrGameOver
	case c.aborted != nil:
		err = ErrGameAborted
	case c.active != player:
		err = core.ErrNotYourTurn
	}
	if err != nil {
		return c.rejectLocked(player, move, err)
	}

	return c.applyLocked(player, move)
}

// State returns a snapshot of the turn state
func (c *Coordinator) State() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Board returns a snapshot of the board
func (c *Coordinator) Board() core.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board
}

// Wait blocks until the game has finished or was aborted
func (c *Coordinator) Wait() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.finished && c.aborted == nil {
		c.cond.Wait()
	}
	return c.stateLocked()
}

// Abort wakes every waiter with Aborted. It has no effect once the game is
// finished; the first cause wins.
func (c *Coordinator) Abort(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finished || c.aborted != nil {
		return
	}
	if cause == nil {
		cause = ErrGameAborted
	}
	c.aborted = cause
	c.logger.Warn().Err(cause).Int("moves", c.moves).Msg("Game aborted")
	c.cond.Broadcast()
}

// Err returns the abort cause, if any
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aborted
}

func (c *Coordinator) stateLocked() GameState {
	return GameState{
		ActivePlayer: c.active,
		Finished:     c.finished,
		Outcome:      c.machine.Current(),
		MovesPlayed:  c.moves,
	}
}

func (c *Coordinator) rejectLocked(player core.PlayerID, move core.Move, cause error) MoveResult {
	c.publish(events.NewMoveRejectedEvent(c.gameID, player, c.active, move, cause))
	c.logger.Debug().
		Int("player_id", int(player)).
		Int("active_player", int(c.active)).
		Str("move", move.String()).
		Err(cause).
		Msg("Move rejected")

	return MoveResult{
		Status:  Rejected,
		Player:  player,
		Mark:    c.marks.Of(player),
		Move:    move,
		Ended:   c.finished,
		Outcome: c.machine.Current(),
		Err:     core.WrapMoveError(player, move, cause),
	}
}

// applyLocked places the mark for the active player. The caller holds the
// lock and has checked that player is active and the game is running.
func (c *Coordinator) applyLocked(player core.PlayerID, move core.Move) MoveResult {
	mark := c.marks.Of(player)
	if err := c.board.PlaceMove(move, mark); err != nil {
		return c.rejectLocked(player, move, err)
	}
	c.moves++

	c.publish(events.NewMoveAcceptedEvent(c.gameID, player, mark, move, c.moves, c.board))
	c.logger.Debug().
		Int("player_id", int(player)).
		Str("mark", mark.String()).
		Str("move", move.String()).
		Int("move_number", c.moves).
		Msg("Move accepted")
	if e := c.logger.Debug(); e.Enabled() {
		e.Str("board", c.board.Render()).Msg("Board after move")
	}

	outcome := c.checker.Evaluate(c.board, mark, player)
	if outcome.IsTerminal() {
		c.finishLocked(outcome)
	}

	from := c.active
	c.active = from.Other()
	c.publish(events.NewTurnChangedEvent(c.gameID, from, c.active))

	c.cond.Broadcast()

	return MoveResult{
		Status:  Accepted,
		Player:  player,
		Mark:    mark,
		Move:    move,
		Ended:   c.finished,
		Outcome: c.machine.Current(),
	}
}

func (c *Coordinator) finishLocked(outcome states.Outcome) {
	reason := "board full"
	if outcome.Kind == states.KindWin {
		reason = fmt.Sprintf("%s completed a line", outcome.Winner)
	}

	if err := c.machine.TransitionTo(outcome, reason); err != nil {
		c.logger.Error().Err(err).Str("outcome", outcome.String()).Msg("Outcome transition refused")
		return
	}
	c.finished = true

	duration := time.Since(c.startedAt)
	c.publish(events.NewGameEndedEvent(c.gameID, outcome.Winner, outcome.String(), c.moves, duration))
	c.logger.Info().
		Str("outcome", outcome.String()).
		Int("moves", c.moves).
		Dur("duration", duration).
		Msg("Game finished")
}

func (c *Coordinator) publish(e events.Event) {
	c.publisher.Publish(e)
}

// Turn is the exclusive right of one player to move. It holds the
// coordinator lock from AwaitTurn until Release and belongs to the goroutine
// that received it.
type Turn struct {
	c        *Coordinator
	player   core.PlayerID
	moved    bool
	released bool
}

// Player returns the player this turn belongs to
func (t *Turn) Player() core.PlayerID { return t.player }

// Mark returns the mark the player places
func (t *Turn) Mark() core.Mark { return t.c.marks.Of(t.player) }

// Board returns a snapshot of the board for the policy
func (t *Turn) Board() core.Board {
	if t.released {
		return t.c.Board()
	}
	return t.c.board
}

// Submit applies move. A rejected move leaves the lock held so the player
// can try again; an accepted move ends the player's right to move.
func (t *Turn) Submit(move core.Move) MoveResult {
	if t.released {
		return MoveResult{
			Status: Rejected,
			Player: t.player,
			Mark:   t.Mark(),
			Move:   move,
			Err:    core.WrapMoveError(t.player, move, ErrTurnReleased),
		}
	}
	if t.moved {
		return t.c.rejectLocked(t.player, move, core.ErrNotYourTurn)
	}

	res := t.c.applyLocked(t.player, move)
	if res.Status == Accepted {
		t.moved = true
	}
	return res
}

// Release unlocks the coordinator. Calling it more than once is a no-op.
func (t *Turn) Release() {
	if t.released {
		return
	}
	t.released = true
	t.c.mu.Unlock()
}
