package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/world"
)

var (
	ErrInputBlocked  = errors.New("input is blocked")
	ErrNotYourUnit   = errors.New("unit does not belong to the active player")
	ErrNoSelection   = errors.New("no unit selected")
	ErrInvalidTarget = errors.New("invalid target")
	ErrCannotPerform = errors.New("ability cannot be performed")
	ErrGameOver      = errors.New("match is over")
)

// Board is a running match: the grid, every unit, the players and the turn
// state machine. A Board is not safe for concurrent use.
type Board struct {
	Grid  *world.Grid
	Units *entity.Roster

	players []Player
	sides   map[int]gamedata.PlayerDef
	active  int // index into players
	round   int
	turns   int // player turns started
	started bool

	turnLimit int
	winner    int

	machine   *fsm.FSM
	presenter Presenter
	calc      *combat.Calculator
	abilities map[entity.AbilityKind]Ability
	log       *slog.Logger
	tracer    trace.Tracer

	events []Event

	selected *entity.Unit
	ability  Ability
}

// NewBoard creates a board over an already populated grid and roster.
// players are given in turn order and must cover every unit's owner.
func NewBoard(grid *world.Grid, units *entity.Roster, players []Player, cfg Config) (*Board, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(players))
	}
	seen := make(map[int]bool, len(players))
	for _, p := range players {
		if seen[p.Number()] {
			return nil, fmt.Errorf("duplicate player %d", p.Number())
		}
		seen[p.Number()] = true
	}
	for _, u := range units.All() {
		if !seen[u.Player] {
			return nil, fmt.Errorf("unit %d belongs to unknown player %d", u.ID, u.Player)
		}
		if _, ok := grid.Position(u.ID); !ok && u.IsAlive() {
			return nil, fmt.Errorf("unit %d is not on the grid", u.ID)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b := &Board{
		Grid:      grid,
		Units:     units,
		players:   players,
		sides:     make(map[int]gamedata.PlayerDef),
		turnLimit: cfg.TurnLimit,
		winner:    -1,
		presenter: cfg.Presenter,
		calc:      combat.NewCalculator(rand.New(rand.NewSource(seed))),
		abilities: defaultAbilities(),
		log:       cfg.Logger,
		tracer:    telemetry.Tracer("game"),
	}
	if b.presenter == nil {
		b.presenter = NopPresenter{}
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	b.machine = b.newMachine()
	return b, nil
}

// =============================================================================
// Accessors
// =============================================================================

// Players returns the players in turn order.
func (b *Board) Players() []Player {
	return b.players
}

// ActivePlayer returns the player whose turn it is.
func (b *Board) ActivePlayer() Player {
	return b.players[b.active]
}

// Side returns the map definition of a player, or a generated one.
func (b *Board) Side(number int) gamedata.PlayerDef {
	if def, ok := b.sides[number]; ok {
		return def
	}
	return gamedata.PlayerDef{Number: number, Name: fmt.Sprintf("Player %d", number+1)}
}

// Round returns the current round, starting at 1.
func (b *Board) Round() int {
	return b.round
}

// Winner returns the winning player number, or -1 while the match runs or
// after a draw.
func (b *Board) Winner() int {
	return b.winner
}

// Selected returns the unit the human player is commanding, or nil.
func (b *Board) Selected() *entity.Unit {
	return b.selected
}

// ActiveAbility returns the selected unit's current ability, or nil.
func (b *Board) ActiveAbility() Ability {
	return b.ability
}

// Highlighted returns the target tiles of the active ability.
func (b *Board) Highlighted() []world.Coord {
	if b.selected == nil || b.ability == nil {
		return nil
	}
	return b.ability.Display(b, b.selected)
}

// DrainEvents returns the events queued since the last call.
func (b *Board) DrainEvents() []Event {
	out := b.events
	b.events = nil
	return out
}

func (b *Board) emit(e Event) {
	b.events = append(b.events, e)
}

// Position returns where u stands.
func (b *Board) Position(u *entity.Unit) (world.Coord, bool) {
	return b.Grid.Position(u.ID)
}

// UnitAt returns the living unit on c, or nil.
func (b *Board) UnitAt(c world.Coord) *entity.Unit {
	id := b.Grid.Occupant(c)
	if id == world.NoUnit {
		return nil
	}
	return b.Units.Get(id)
}

// =============================================================================
// Range queries
// =============================================================================

// MoveRange returns every tile u can reach this turn, its own tile included.
func (b *Board) MoveRange(u *entity.Unit) []world.Coord {
	pos, ok := b.Position(u)
	if !ok || !u.CanMove() {
		return nil
	}
	candidates := world.TilesInRange(b.Grid, pos, u.Movement)
	return world.TilesInMoveRange(b.Grid, pos, u.Movement, candidates)
}

// MoveTargets returns the tiles u can move to, excluding its own tile.
func (b *Board) MoveTargets(u *entity.Unit) []world.Coord {
	pos, _ := b.Position(u)
	reach := b.MoveRange(u)
	out := make([]world.Coord, 0, len(reach))
	for _, c := range reach {
		if c != pos {
			out = append(out, c)
		}
	}
	return out
}

// AttackTargetsFrom returns the enemies u could attack if it stood on from.
func (b *Board) AttackTargetsFrom(u *entity.Unit, from world.Coord) []*entity.Unit {
	var out []*entity.Unit
	for _, e := range b.Units.Enemies(u.Player) {
		pos, ok := b.Position(e)
		if ok && u.CanAttack(e, from.Distance(pos)) {
			out = append(out, e)
		}
	}
	return out
}

// HealTargetsFrom returns the allies u could heal if it stood on from.
func (b *Board) HealTargetsFrom(u *entity.Unit, from world.Coord) []*entity.Unit {
	var out []*entity.Unit
	for _, a := range b.Units.Alive(u.Player) {
		pos, ok := b.Position(a)
		if ok && u.CanHeal(a, from.Distance(pos)) {
			out = append(out, a)
		}
	}
	return out
}

// Forecast computes both sides' stats for attacker engaging defender from
// where they stand, using the weapon attacker would strike with.
func (b *Board) Forecast(attacker, defender *entity.Unit) (*combat.Stats, *combat.Stats) {
	apos, _ := b.Position(attacker)
	dpos, _ := b.Position(defender)
	distance := apos.Distance(dpos)

	ap := attacker.Profile(b.Grid.Tile(apos))
	if w := attacker.WeaponFor(distance); w != nil {
		ap.Weapon = w
	}
	dp := defender.Profile(b.Grid.Tile(dpos))
	return combat.Forecast(ap, dp, distance)
}

// HealForecast computes what healer would restore on target.
func (b *Board) HealForecast(healer, target *entity.Unit) combat.HealStats {
	return combat.NewHealStats(healer.Profile(nil), target.Profile(nil))
}
