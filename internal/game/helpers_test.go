package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/world"
)

var testCatalog = gamedata.MustLoadCatalog()

type spawn struct {
	class  string
	player int
	at     world.Coord
}

// newTestBoard places spawns on a grid parsed from rows. Unit IDs follow
// spawn order starting at 1.
func newTestBoard(t *testing.T, rows []string, players []Player, cfg Config, spawns ...spawn) *Board {
	t.Helper()
	grid, err := world.ParseGrid(rows)
	require.NoError(t, err)
	armory, err := combat.NewArmory(testCatalog.Weapons.All())
	require.NoError(t, err)

	units := entity.NewRoster()
	for i, s := range spawns {
		def := testCatalog.Units.GetByID(s.class)
		require.NotNil(t, def, "class %s", s.class)
		u, err := entity.NewUnit(world.UnitID(i+1), "", s.player, def, armory)
		require.NoError(t, err)
		require.NoError(t, grid.Place(u.ID, s.at))
		require.NoError(t, units.Add(u))
	}

	b, err := NewBoard(grid, units, players, cfg)
	require.NoError(t, err)
	return b
}

func humans() []Player {
	return []Player{NewHuman(0), NewHuman(1)}
}

func eventsOf[T Event](events []Event) []T {
	var out []T
	for _, e := range events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// recordingPresenter logs every step it is asked to play.
type recordingPresenter struct {
	calls []string
	err   error
}

func (p *recordingPresenter) record(format string, args ...any) error {
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
	return p.err
}

func (p *recordingPresenter) MoveStep(_ context.Context, u *entity.Unit, from, to world.Coord) error {
	return p.record("move %s %v->%v", u.Name, from, to)
}

func (p *recordingPresenter) BattleStart(_ context.Context, a, d *entity.Unit) error {
	return p.record("battle %s vs %s", a.Name, d.Name)
}

func (p *recordingPresenter) PlayAttackAnimation(_ context.Context, u *entity.Unit, crit bool) error {
	return p.record("attack %s crit=%t", u.Name, crit)
}

func (p *recordingPresenter) PlayHitAnimation(_ context.Context, u *entity.Unit, eff int) error {
	return p.record("hit %s eff=%d", u.Name, eff)
}

func (p *recordingPresenter) PlayDodgeAnimation(_ context.Context, u *entity.Unit) error {
	return p.record("dodge %s", u.Name)
}

func (p *recordingPresenter) PlayDeathAnimation(_ context.Context, u *entity.Unit) error {
	return p.record("death %s", u.Name)
}

func (p *recordingPresenter) UpdateHealthDisplay(_ context.Context, u *entity.Unit, hp int) error {
	return p.record("hp %s %d", u.Name, hp)
}

func (p *recordingPresenter) PlayHealAnimation(_ context.Context, h, t *entity.Unit, amount int) error {
	return p.record("heal %s->%s %d", h.Name, t.Name, amount)
}

func (p *recordingPresenter) count(prefix string) int {
	n := 0
	for _, c := range p.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// scriptedPlayer is a computer player that ends its turn, optionally after
// running fn.
type scriptedPlayer struct {
	number  int
	plays   int
	endTurn bool
	fn      func(ctx context.Context, b *Board) error
}

func (p *scriptedPlayer) Number() int { return p.number }

func (p *scriptedPlayer) Play(ctx context.Context, b *Board) error {
	p.plays++
	if p.fn != nil {
		if err := p.fn(ctx, b); err != nil {
			return err
		}
	}
	if p.endTurn && !b.IsOver() {
		return b.EndTurn(ctx)
	}
	return nil
}
