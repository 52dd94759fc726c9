package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

func startedDuel(t *testing.T, cfg Config) *Board {
	t.Helper()
	b, err := New(testCatalog, "duel", humans(), cfg)
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background()))
	b.DrainEvents()
	return b
}

func TestCancelUndoesMoveThenDeselects(t *testing.T) {
	ctx := context.Background()
	b := startedDuel(t, Config{Seed: 1})
	lord := b.Units.Get(1)

	require.NoError(t, b.HandleUnitClicked(ctx, lord.ID))
	require.NoError(t, b.HandleTileClicked(ctx, world.Coord{X: 3, Y: 1}))
	b.DrainEvents()

	require.NoError(t, b.Cancel(ctx))
	pos, _ := b.Position(lord)
	assert.Equal(t, world.Coord{X: 1, Y: 1}, pos)
	assert.Equal(t, lord.Total.Movement, lord.Movement)
	assert.Equal(t, StateUnitSelected, b.State())
	assert.Equal(t, entity.AbilityMove, b.ActiveAbility().Kind())

	moved := eventsOf[UnitMoved](b.DrainEvents())
	require.Len(t, moved, 1)
	assert.True(t, moved[0].Undo)
	assert.Equal(t, world.Coord{X: 1, Y: 1}, moved[0].To)

	require.NoError(t, b.Cancel(ctx))
	assert.Equal(t, StateWaitingInput, b.State())
	assert.Nil(t, b.Selected())
	assert.Equal(t, entity.StateNormal, lord.State())

	assert.ErrorIs(t, b.Cancel(ctx), ErrNoSelection)
}

func TestSecondMoveInSameTurnRejected(t *testing.T) {
	ctx := context.Background()
	b := startedDuel(t, Config{Seed: 1})
	lord := b.Units.Get(1)

	require.NoError(t, b.HandleUnitClicked(ctx, lord.ID))
	require.NoError(t, b.HandleTileClicked(ctx, world.Coord{X: 2, Y: 1}))
	assert.Equal(t, 0, lord.Movement)
	assert.Empty(t, b.MoveTargets(lord))

	assert.ErrorIs(t, b.HandleTileClicked(ctx, world.Coord{X: 3, Y: 1}), ErrInvalidTarget)
	pos, _ := b.Position(lord)
	assert.Equal(t, world.Coord{X: 2, Y: 1}, pos)
	assert.Equal(t, StateUnitSelected, b.State())

	require.NoError(t, b.Cancel(ctx))
	assert.Equal(t, lord.Total.Movement, lord.Movement, "undo gives the move back")
	require.NoError(t, b.HandleTileClicked(ctx, world.Coord{X: 3, Y: 1}))
	pos, _ = b.Position(lord)
	assert.Equal(t, world.Coord{X: 3, Y: 1}, pos)
}

func TestClickingSelectedUnitCancels(t *testing.T) {
	ctx := context.Background()
	b := startedDuel(t, Config{Seed: 1})

	require.NoError(t, b.HandleUnitClicked(ctx, 1))
	require.NoError(t, b.HandleUnitClicked(ctx, 1))
	assert.Equal(t, StateWaitingInput, b.State())
}

func TestInputErrors(t *testing.T) {
	ctx := context.Background()
	b := startedDuel(t, Config{Seed: 1})

	assert.ErrorIs(t, b.HandleUnitClicked(ctx, 2), ErrNotYourUnit)
	assert.ErrorIs(t, b.HandleUnitClicked(ctx, 99), ErrInvalidTarget)
	assert.ErrorIs(t, b.HandleTileClicked(ctx, world.Coord{X: 3, Y: 1}), ErrNoSelection)
	assert.ErrorIs(t, b.SelectWeapon(ctx, 0), ErrNoSelection)

	require.NoError(t, b.HandleUnitClicked(ctx, 1))
	assert.ErrorIs(t, b.HandleTileClicked(ctx, world.Coord{X: 0, Y: 0}), ErrInvalidTarget)
	assert.ErrorIs(t, b.HandleTileClicked(ctx, world.Coord{X: 5, Y: 1}), ErrInvalidTarget, "enemy out of reach")
	assert.ErrorIs(t, b.SelectWeapon(ctx, 0), ErrCannotPerform, "lord carries one weapon")
	assert.Equal(t, StateUnitSelected, b.State())
}

func TestInputBlockedDuringComputerTurn(t *testing.T) {
	ctx := context.Background()
	ai := &scriptedPlayer{number: 0}
	b, err := New(testCatalog, "duel", []Player{ai, NewHuman(1)}, Config{Seed: 1})
	require.NoError(t, err)
	require.NoError(t, b.Start(ctx))

	assert.Equal(t, StateAITurn, b.State())
	assert.ErrorIs(t, b.HandleUnitClicked(ctx, 1), ErrInputBlocked)
	assert.ErrorIs(t, b.Cancel(ctx), ErrInputBlocked)
}

func TestAttackForecastOnHover(t *testing.T) {
	ctx := context.Background()
	b := startedDuel(t, Config{Seed: 1})

	require.NoError(t, b.HandleUnitClicked(ctx, 1))
	require.NoError(t, b.HandleTileClicked(ctx, world.Coord{X: 4, Y: 1}))
	b.DrainEvents()

	b.HandleTileSelected(world.Coord{X: 5, Y: 1})
	forecasts := eventsOf[AttackForecast](b.DrainEvents())
	require.Len(t, forecasts, 1)
	f := forecasts[0]
	assert.Equal(t, world.UnitID(1), f.Attacker)
	assert.Equal(t, world.UnitID(2), f.Defender)
	assert.Equal(t, 9, f.Attack.Damage, "12 attack against 3 defense")
	assert.Equal(t, 9, f.Defense.Damage, "14 attack against 5 defense")
	assert.Equal(t, 122, f.Attack.HitChance)

	b.HandleTileSelected(world.Coord{X: 3, Y: 1})
	assert.Empty(t, eventsOf[AttackForecast](b.DrainEvents()), "empty tile")

	b.HandleTileDeselected(world.Coord{X: 5, Y: 1})
	assert.Len(t, eventsOf[ForecastCleared](b.DrainEvents()), 1)
}

func TestSelectWeapon(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(t, []string{"...."}, humans(), Config{Seed: 1},
		spawn{"cavalier", 0, world.Coord{X: 0, Y: 0}},
		spawn{"brigand", 1, world.Coord{X: 3, Y: 0}},
	)
	require.NoError(t, b.Run(ctx))
	cavalier := b.Units.Get(1)

	require.NoError(t, b.HandleUnitClicked(ctx, cavalier.ID))
	require.NoError(t, b.SelectWeapon(ctx, 1))
	assert.Equal(t, "javelin", cavalier.EquippedWeapon().ID)
	assert.Equal(t, StateUnitSelected, b.State())
	assert.Equal(t, 1, cavalier.Actions, "equipping is free")

	equipped := eventsOf[WeaponEquipped](b.DrainEvents())
	assert.Equal(t, []WeaponEquipped{{Unit: 1, Weapon: "javelin"}}, equipped)

	assert.ErrorIs(t, b.SelectWeapon(ctx, 5), ErrInvalidTarget)
	assert.Equal(t, StateUnitSelected, b.State())
}

func TestAttackSwitchesToWeaponInReach(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(t, []string{"...."}, humans(), Config{Seed: 1},
		spawn{"cavalier", 0, world.Coord{X: 0, Y: 0}},
		spawn{"soldier", 1, world.Coord{X: 3, Y: 0}},
	)
	require.NoError(t, b.Run(ctx))
	cavalier := b.Units.Get(1)
	require.Equal(t, "iron_lance", cavalier.EquippedWeapon().ID)

	require.NoError(t, b.HandleUnitClicked(ctx, cavalier.ID))
	require.NoError(t, b.HandleTileClicked(ctx, world.Coord{X: 1, Y: 0}))
	require.NoError(t, b.HandleTileClicked(ctx, world.Coord{X: 3, Y: 0}))

	assert.Equal(t, "javelin", cavalier.EquippedWeapon().ID)
	battles := eventsOf[BattleResolved](b.DrainEvents())
	require.Len(t, battles, 1)
	for _, a := range battles[0].Actions {
		assert.True(t, a.ByAttacker, "the soldier's lance cannot reach two tiles")
	}
}

func TestWaitFinishesUnit(t *testing.T) {
	ctx := context.Background()
	b := startedDuel(t, Config{Seed: 1})
	lord := b.Units.Get(1)

	require.NoError(t, b.HandleUnitClicked(ctx, lord.ID))
	require.NoError(t, b.UseAbility(ctx, entity.AbilityWait, Target{}))

	assert.False(t, lord.CanMove())
	assert.False(t, lord.CanAct())
	assert.Equal(t, StateWaitingInput, b.State())
	assert.ErrorIs(t, b.HandleUnitClicked(ctx, lord.ID), ErrCannotPerform)
}
