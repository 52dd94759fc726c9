// Package main is the entry point for the skirmish terminal game.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/skirmish/internal/ai"
	"github.com/samdwyer/skirmish/internal/config"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/ui"
)

func main() {
	configPath := flag.String("config", "skirmish.yaml", "path to the YAML config file")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		slog.Debug(".env file not loaded", "error", err)
	}
	telemetry.ConfigureEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, "skirmish:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file.
	out, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	shutdown, err := telemetry.Setup(ctx, "game", cfg.Telemetry)
	if err != nil {
		logger.Warn("telemetry setup failed, running without it", "error", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err)
			}
		}()
	}

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting match", "map", cfg.Map, "seed", seed)

	messages := ui.NewMessageLog(50)
	presenter := ui.NewPresenter(messages, cfg.FrameDelay)
	board, err := game.New(catalog, cfg.Map, players(cfg, seed, logger), game.Config{
		Seed:      seed,
		TurnLimit: cfg.TurnLimit,
		Presenter: presenter,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer screen.Close()

	ctrl := ui.NewController(screen, board, messages, logger)
	presenter.SetDraw(ctrl.Draw)
	if err := ctrl.Run(ctx); err != nil {
		return err
	}
	logger.Info("match closed", "winner", board.Winner(), "rounds", board.Round())
	return nil
}

// players builds a controller per configured side. Each AI gets its own
// stream derived from seed.
func players(cfg config.Config, seed int64, logger *slog.Logger) []game.Player {
	rng := rand.New(rand.NewSource(seed))
	out := make([]game.Player, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		if p.Kind == config.KindHuman {
			out = append(out, game.NewHuman(p.Number))
			continue
		}
		out = append(out, ai.NewPlayer(p.Number, p.Ordered, rand.New(rand.NewSource(rng.Int63())), logger))
	}
	return out
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
