// Package ai implements computer-controlled players.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/world"
)

// Player is a computer opponent. Each unit attacks from where it stands if
// it can, otherwise moves somewhere it can attack from, otherwise moves at
// random. The ordered variant prefers tiles closest to the enemy instead of
// random ones.
type Player struct {
	number  int
	ordered bool
	rng     *rand.Rand
	log     *slog.Logger
}

// NewPlayer creates a computer player. Pass a seeded rng for reproducible
// decisions.
func NewPlayer(number int, ordered bool, rng *rand.Rand, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	return &Player{number: number, ordered: ordered, rng: rng, log: log}
}

// Number returns the player number.
func (p *Player) Number() int { return p.number }

// Play commands every living unit once, then ends the turn.
func (p *Player) Play(ctx context.Context, b *game.Board) error {
	ctx, span := telemetry.Tracer("ai").Start(ctx, "ai.plan")
	defer span.End()
	span.SetAttributes(
		attribute.Int("player", p.number),
		attribute.Bool("ordered", p.ordered),
	)

	acted := 0
	for _, u := range b.Units.Alive(p.number) {
		if b.IsOver() {
			break
		}
		if !u.IsAlive() {
			continue
		}
		did, err := p.command(ctx, b, u)
		if err != nil {
			return err
		}
		if did {
			acted++
		}
	}
	span.SetAttributes(attribute.Int("units_acted", acted))

	if b.IsOver() {
		return nil
	}
	return b.EndTurn(ctx)
}

// command carries out one unit's plan and reports whether it did anything.
func (p *Player) command(ctx context.Context, b *game.Board, u *entity.Unit) (bool, error) {
	plan := p.PlanFor(b, u)
	p.log.Debug("ai plan", "unit", u.Name, "ability", plan.Ability.String(),
		"move", plan.Move, "to", plan.MoveTo.String(), "target", targetName(plan.Target))
	if plan.Holds() {
		return false, nil
	}

	if plan.Move {
		if err := b.Perform(ctx, u, entity.AbilityMove, game.Target{Tile: plan.MoveTo}); err != nil {
			return false, fmt.Errorf("move %s to %v: %w", u.Name, plan.MoveTo, err)
		}
	}

	target := plan.Target
	kind := plan.Ability
	if target == nil && u.IsAlive() {
		// Re-evaluate once after moving.
		pos, _ := b.Position(u)
		if enemies := b.AttackTargetsFrom(u, pos); len(enemies) > 0 {
			target, kind = enemies[p.rng.Intn(len(enemies))], entity.AbilityAttack
		}
	}
	if target == nil || !target.IsAlive() || b.IsOver() {
		return true, nil
	}

	tile, _ := b.Position(target)
	err := b.Perform(ctx, u, kind, game.Target{Tile: tile})
	if errors.Is(err, game.ErrGameOver) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("%v %s with %s: %w", kind, target.Name, u.Name, err)
	}
	return true, nil
}

// PlanFor decides what u should do from the current board.
func (p *Player) PlanFor(b *game.Board, u *entity.Unit) Plan {
	pos, ok := b.Position(u)
	if !ok {
		return Plan{Ability: entity.AbilityWait}
	}

	if allies := b.HealTargetsFrom(u, pos); len(allies) > 0 {
		return Plan{Ability: entity.AbilityHeal, FireFrom: pos, Target: p.weakest(allies)}
	}
	if enemies := b.AttackTargetsFrom(u, pos); len(enemies) > 0 {
		return Plan{Ability: entity.AbilityAttack, FireFrom: pos, Target: p.pick(enemies)}
	}

	moves := b.MoveTargets(u)
	if len(moves) == 0 {
		return Plan{Ability: entity.AbilityWait}
	}

	var firing []world.Coord
	for _, c := range moves {
		if len(b.AttackTargetsFrom(u, c)) > 0 {
			firing = append(firing, c)
		}
	}
	if len(firing) > 0 {
		from := p.chooseTile(b, u, firing)
		return Plan{
			Ability:  entity.AbilityAttack,
			Move:     true,
			MoveTo:   from,
			FireFrom: from,
			Target:   p.pick(b.AttackTargetsFrom(u, from)),
		}
	}

	return Plan{Ability: entity.AbilityMove, Move: true, MoveTo: p.chooseTile(b, u, moves)}
}

// chooseTile picks among candidate tiles: the one closest to the nearest
// enemy for ordered players, a random one otherwise.
func (p *Player) chooseTile(b *game.Board, u *entity.Unit, tiles []world.Coord) world.Coord {
	if !p.ordered {
		return tiles[p.rng.Intn(len(tiles))]
	}
	best := tiles[0]
	bestDist := nearestEnemy(b, u, best)
	for _, c := range tiles[1:] {
		if d := nearestEnemy(b, u, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func (p *Player) pick(units []*entity.Unit) *entity.Unit {
	if len(units) == 0 {
		return nil
	}
	return units[p.rng.Intn(len(units))]
}

func (p *Player) weakest(units []*entity.Unit) *entity.Unit {
	best := units[0]
	for _, u := range units[1:] {
		if u.HP*best.Total.HP < best.HP*u.Total.HP {
			best = u
		}
	}
	return best
}

// nearestEnemy returns the Manhattan distance from c to the closest enemy
// of u.
func nearestEnemy(b *game.Board, u *entity.Unit, c world.Coord) int {
	best := -1
	for _, e := range b.Units.Enemies(u.Player) {
		pos, ok := b.Position(e)
		if !ok {
			continue
		}
		if d := c.Distance(pos); best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 1 << 30
	}
	return best
}

func targetName(u *entity.Unit) string {
	if u == nil {
		return ""
	}
	return u.Name
}

var _ game.Player = (*Player)(nil)
