package game

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/policy"
)

// DefaultMaxAttemptsPerTurn bounds how often a policy may be asked for a move
// within one turn. Blind proposals on a board with one empty cell need nine
// tries on average.
const DefaultMaxAttemptsPerTurn = 256

// WorkerStats counts what a worker did during a game
type WorkerStats struct {
	Accepted int
	Rejected int
}

// Worker plays one side of a game: it waits for its turn, asks its policy
// for a move and submits it until the game is over.
type Worker struct {
	player      core.PlayerID
	coord       *Coordinator
	policy      policy.Policy
	maxAttempts int
	logger      zerolog.Logger

	mu    sync.Mutex
	stats WorkerStats
}

// NewWorker binds a policy to a player of coord. maxAttempts <= 0 uses
// DefaultMaxAttemptsPerTurn.
func NewWorker(player core.PlayerID, coord *Coordinator, p policy.Policy, maxAttempts int, logger zerolog.Logger) *Worker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttemptsPerTurn
	}
	return &Worker{
		player:      player,
		coord:       coord,
		policy:      p,
		maxAttempts: maxAttempts,
		logger: logger.With().
			Str("component", "Worker").
			Int("player_id", int(player)).
			Logger(),
	}
}

// Player returns the id this worker plays as
func (w *Worker) Player() core.PlayerID { return w.player }

// Stats returns the accepted and rejected move counts so far
func (w *Worker) Stats() WorkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run plays turns until the game ends. It returns nil when the game is over
// or was aborted by someone else, and an error when this worker cannot
// complete a turn.
func (w *Worker) Run() error {
	w.logger.Debug().Msg("Worker started")

	for {
		turn, outcome := w.coord.AwaitTurn(w.player)
		switch outcome {
		case GameOver:
			w.logger.Debug().Interface("stats", w.Stats()).Msg("Game over, worker exiting")
			return nil
		case Aborted:
			w.logger.Debug().Msg("Game aborted, worker exiting")
			return nil
		}

		if err := w.playTurn(turn); err != nil {
			w.logger.Error().Err(err).Msg("Worker failed to complete its turn")
			return err
		}
	}
}

// playTurn asks the policy until a move is accepted. The turn is always
// released on return.
func (w *Worker) playTurn(turn *Turn) error {
	defer turn.Release()

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		move, err := w.policy.ProposeMove(turn.Board(), turn.Mark())
		if err != nil {
			return fmt.Errorf("%s: propose move: %w", w.player, err)
		}

		res := turn.Submit(move)
		if res.Status == Accepted {
			w.record(true)
			w.logger.Debug().
				Str("move", move.String()).
				Int("attempt", attempt).
				Bool("ended", res.Ended).
				Msg("Move accepted")
			return nil
		}

		w.record(false)
		if !core.IsIllegalMove(res.Err) {
			return res.Err
		}
	}

	return fmt.Errorf("%w: %s gave up after %d attempts", ErrPolicyExhausted, w.player, w.maxAttempts)
}

func (w *Worker) record(accepted bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if accepted {
		w.stats.Accepted++
	} else {
		w.stats.Rejected++
	}
}
