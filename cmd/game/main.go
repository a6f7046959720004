package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Rshores91/TicTacToe/internal/config"
	"github.com/Rshores91/TicTacToe/internal/game"
	"github.com/Rshores91/TicTacToe/internal/game/core"
	"github.com/Rshores91/TicTacToe/internal/game/events"
	"github.com/Rshores91/TicTacToe/internal/game/events/subscribers"
	"github.com/Rshores91/TicTacToe/internal/game/states"
	"github.com/Rshores91/TicTacToe/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", -1, "Policy seed, 0 for time based (-1 to use config default)")
	policyKind := flag.String("policy", "", "Move policy: random or blind (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	games := flag.Int("games", -1, "Number of games to play (-1 to use config default)")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *seed == -1 {
		*seed = cfg.Game.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *policyKind == "" {
		*policyKind = cfg.Game.Policy
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *games <= 0 {
		*games = cfg.Game.Games
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if path := config.ConfigFilePath(); path != "" {
		config.WatchConfig(func(c *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			zerolog.SetGlobalLevel(parseLevel(c.Logging.Level))
			log.Info().Str("level", c.Logging.Level).Msg("Config reloaded")
		})
		log.Debug().Str("path", path).Msg("Watching config file")
	}

	marks, err := cfg.Game.MarkAssignment()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid mark assignment")
	}

	var monitor *monitoring.GoroutineMonitor
	if cfg.Development.MonitorGoroutines {
		monitor = monitoring.NewGoroutineMonitor(time.Second, 1000)
		monitor.Start()
		defer monitor.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int64("seed", *seed).
		Str("policy", *policyKind).
		Int("games", *games).
		Msg("Starting tic-tac-toe")

	out := os.Stdout
	tally := make(map[string]int)
	for i := 0; i < *games; i++ {
		if ctx.Err() != nil {
			log.Warn().Int("played", i).Msg("Interrupted, stopping early")
			break
		}

		if monitor != nil {
			monitor.AdjustComponent("session_workers", core.NumPlayers)
		}
		res, err := playGame(ctx, gameOptions{
			seed:        *seed + int64(i)*core.NumPlayers,
			policyKind:  *policyKind,
			maxAttempts: cfg.Game.MaxAttemptsPerTurn,
			marks:       marks,
			logEvents:   cfg.Development.LogEvents,
			showBoard:   cfg.UI.ShowMoves,
		})
		if monitor != nil {
			monitor.AdjustComponent("session_workers", -core.NumPlayers)
		}
		if err != nil {
			log.Fatal().Err(err).Int("game", i+1).Msg("Game failed")
		}

		if *games > 1 {
			fmt.Fprintf(out, "Game %d/%d (%s)\n", i+1, *games, res.GameID)
		}
		printResult(out, res, marks, cfg.UI.Color, cfg.UI.ShowMoves)
		tally[tallyKey(res.Outcome)]++
	}

	if *games > 1 {
		printTally(out, tally, marks)
	}

	if monitor != nil {
		if leaked := monitor.CheckLeaks(0, time.Second); leaked > 0 {
			log.Warn().Int("leaked", leaked).Msg("Goroutine leak suspected")
		}
	}
}

type gameOptions struct {
	seed        int64
	policyKind  string
	maxAttempts int
	marks       core.MarkAssignment
	logEvents   bool
	showBoard   bool
}

func playGame(ctx context.Context, opts gameOptions) (*game.Result, error) {
	bus := events.NewEventBus(log.Logger)

	level := zerolog.DebugLevel
	if opts.logEvents {
		level = zerolog.InfoLevel
	}
	eventLogger := subscribers.NewLoggerSubscriber("cli_event_logger", log.Logger, level)
	eventLogger.SetDevMode(opts.logEvents && os.Getenv("APP_ENV") != "production")
	eventLogger.SetShowBoard(opts.showBoard)
	bus.Subscribe(eventLogger)

	session, err := game.NewSession(game.SessionConfig{
		Marks:              opts.marks,
		PolicyKind:         opts.policyKind,
		Seed:               opts.seed,
		MaxAttemptsPerTurn: opts.maxAttempts,
		Logger:             log.Logger,
		EventBus:           bus,
	})
	if err != nil {
		return nil, err
	}
	return session.Run(ctx)
}

func printResult(w io.Writer, res *game.Result, marks core.MarkAssignment, color, showMoves bool) {
	if showMoves {
		for _, m := range res.Moves {
			fmt.Fprintf(w, "%2d. %s (%s) -> %s\n", m.Number, m.Player, m.Mark, m.Move)
		}
	}

	if color {
		fmt.Fprint(w, game.RenderColored(res.Board, marks))
	} else {
		fmt.Fprint(w, res.Board.Render())
	}
	fmt.Fprintf(w, "Result: %s after %d moves\n\n", game.FormatOutcome(res.Outcome, marks, color), len(res.Moves))
}

func tallyKey(o states.Outcome) string {
	if o.Kind == states.KindWin {
		return o.Winner.String()
	}
	return "draw"
}

func printTally(w io.Writer, tally map[string]int, marks core.MarkAssignment) {
	fmt.Fprintln(w, "Summary:")
	for _, p := range []core.PlayerID{core.Player0, core.Player1} {
		fmt.Fprintf(w, "  %s (%s) wins: %d\n", p, marks.Of(p), tally[p.String()])
	}
	fmt.Fprintf(w, "  draws: %d\n", tally["draw"])
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	// Logs go to stderr so the board on stdout stays readable
	if os.Getenv("APP_ENV") == "production" || strings.EqualFold(format, "json") {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
