// Package main runs batches of computer-only skirmish matches and prints a
// summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/skirmish/internal/config"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/sim"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "skirmish.yaml", "path to the YAML config file")
	matches := flag.Int("matches", 0, "number of matches (overrides config)")
	parallel := flag.Int("parallel", 0, "matches played at once (overrides config)")
	seed := flag.Int64("seed", 0, "base seed (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not loaded", "error", err)
	}
	telemetry.ConfigureEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *matches, *parallel, *seed); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, matches, parallel int, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if matches > 0 {
		cfg.Sim.Matches = matches
	}
	if parallel > 0 {
		cfg.Sim.Parallel = parallel
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	shutdown, err := telemetry.Setup(ctx, "sim", cfg.Telemetry)
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

	// Every side is computer controlled here, human entries included.
	sides := make([]sim.Side, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		sides = append(sides, sim.Side{Number: p.Number, Ordered: p.Ordered})
	}

	start := time.Now()
	logger.Info("simulating", "map", cfg.Map, "matches", cfg.Sim.Matches, "parallel", cfg.Sim.Parallel)
	results, err := sim.Run(ctx, catalog, sim.Options{
		Map:       cfg.Map,
		Sides:     sides,
		Matches:   cfg.Sim.Matches,
		Parallel:  cfg.Sim.Parallel,
		Seed:      cfg.Seed,
		TurnLimit: cfg.TurnLimit,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	logger.Info("simulation finished", "elapsed", time.Since(start))

	return sim.Summarize(results).Write(os.Stdout)
}
