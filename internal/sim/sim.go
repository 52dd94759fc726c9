// Package sim plays computer-only matches without a screen, in parallel,
// and summarizes the outcomes.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/skirmish/internal/ai"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

// Side is one computer player in a simulated match.
type Side struct {
	Number  int
	Ordered bool
}

// Options configures a batch of matches.
type Options struct {
	Map      string
	Sides    []Side
	Matches  int
	Parallel int

	// Seed is the base seed; match i plays with Seed+i. 0 picks a random
	// base.
	Seed      int64
	TurnLimit int

	Logger *slog.Logger
}

// Result is the outcome of one match.
type Result struct {
	ID        uuid.UUID
	Index     int
	Seed      int64
	Winner    int // -1 on a draw
	Rounds    int
	Survivors map[int]int // living units per player
	Battles   int
	Duration  time.Duration
}

func (o *Options) validate() error {
	var errs []error
	if o.Matches < 1 {
		errs = append(errs, fmt.Errorf("matches must be at least 1, got %d", o.Matches))
	}
	if o.Parallel < 1 {
		errs = append(errs, fmt.Errorf("parallel must be at least 1, got %d", o.Parallel))
	}
	if len(o.Sides) < 2 {
		errs = append(errs, fmt.Errorf("need at least 2 sides, got %d", len(o.Sides)))
	}
	return errors.Join(errs...)
}

// Run plays opts.Matches matches with up to opts.Parallel at a time. Results
// are in match order. The first failing match cancels the rest.
func Run(ctx context.Context, catalog *gamedata.Catalog, opts Options) ([]Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if catalog.Maps.GetByID(opts.Map) == nil {
		return nil, fmt.Errorf("unknown map %q", opts.Map)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	base := opts.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	results := make([]Result, opts.Matches)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i := range opts.Matches {
		g.Go(func() error {
			r, err := playMatch(gctx, catalog, opts, i, base+int64(i))
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func playMatch(ctx context.Context, catalog *gamedata.Catalog, opts Options, index int, seed int64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	id := uuid.New()
	log := opts.Logger.With("match", id.String())

	ctx, span := telemetry.Tracer("sim").Start(ctx, "match")
	defer span.End()
	span.SetAttributes(
		attribute.String("match.id", id.String()),
		attribute.Int64("match.seed", seed),
		attribute.String("match.map", opts.Map),
	)

	rng := rand.New(rand.NewSource(seed))
	players := make([]game.Player, 0, len(opts.Sides))
	for _, s := range opts.Sides {
		players = append(players, ai.NewPlayer(s.Number, s.Ordered, rand.New(rand.NewSource(rng.Int63())), log))
	}

	start := time.Now()
	b, err := game.New(catalog, opts.Map, players, game.Config{
		Seed:      seed,
		TurnLimit: opts.TurnLimit,
		Logger:    log,
	})
	if err != nil {
		return Result{}, err
	}
	if err := b.Run(ctx); err != nil {
		return Result{}, err
	}
	if !b.IsOver() {
		return Result{}, errors.New("match stopped before it was decided")
	}

	r := Result{
		ID:        id,
		Index:     index,
		Seed:      seed,
		Winner:    b.Winner(),
		Rounds:    b.Round(),
		Survivors: make(map[int]int, len(players)),
		Duration:  time.Since(start),
	}
	for _, p := range players {
		r.Survivors[p.Number()] = len(b.Units.Alive(p.Number()))
	}
	r.Battles = countBattles(b.DrainEvents())
	span.SetAttributes(
		attribute.Int("match.winner", r.Winner),
		attribute.Int("match.rounds", r.Rounds),
		attribute.Int("match.battles", r.Battles),
	)
	log.Debug("match finished", "winner", r.Winner, "rounds", r.Rounds, "seed", seed)
	return r, nil
}

// countBattles tallies the resolved battles among a match's events. Nothing
// presents a headless match, so the events are discarded afterwards.
func countBattles(events []game.Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(game.BattleResolved); ok {
			n++
		}
	}
	return n
}

// =============================================================================
// Summary
// =============================================================================

// Summary aggregates a batch of results.
type Summary struct {
	Matches   int
	Wins      map[int]int
	Draws     int
	AvgRounds float64
	MinRounds int
	MaxRounds int
}

// Summarize totals wins, draws and match lengths.
func Summarize(results []Result) Summary {
	s := Summary{Matches: len(results), Wins: make(map[int]int)}
	if len(results) == 0 {
		return s
	}
	total := 0
	s.MinRounds = results[0].Rounds
	for _, r := range results {
		if r.Winner < 0 {
			s.Draws++
		} else {
			s.Wins[r.Winner]++
		}
		total += r.Rounds
		s.MinRounds = min(s.MinRounds, r.Rounds)
		s.MaxRounds = max(s.MaxRounds, r.Rounds)
	}
	s.AvgRounds = float64(total) / float64(len(results))
	return s
}

// WinRate returns the share of matches player won.
func (s Summary) WinRate(player int) float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins[player]) / float64(s.Matches)
}

// Write prints the summary as a short report.
func (s Summary) Write(w io.Writer) error {
	players := make([]int, 0, len(s.Wins))
	for p := range s.Wins {
		players = append(players, p)
	}
	sort.Ints(players)

	if _, err := fmt.Fprintf(w, "matches: %d\n", s.Matches); err != nil {
		return err
	}
	for _, p := range players {
		if _, err := fmt.Fprintf(w, "player %d wins: %d (%.1f%%)\n", p, s.Wins[p], 100*s.WinRate(p)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "draws: %d\nrounds: avg %.1f, min %d, max %d\n",
		s.Draws, s.AvgRounds, s.MinRounds, s.MaxRounds)
	return err
}
