package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/world"
)

var catalog = gamedata.MustLoadCatalog()

func newTestUnit(t *testing.T, id world.UnitID, class string, player int) *Unit {
	t.Helper()
	armory, err := combat.NewArmory(catalog.Weapons.All())
	require.NoError(t, err)
	def := catalog.Units.GetByID(class)
	require.NotNil(t, def, "class %s", class)
	u, err := NewUnit(id, "", player, def, armory)
	require.NoError(t, err)
	return u
}

func TestNewUnit(t *testing.T) {
	u := newTestUnit(t, 1, "cavalier", 0)

	assert.Equal(t, "Cavalier", u.Name)
	assert.Equal(t, 'C', u.Symbol)
	assert.Equal(t, 22, u.HP)
	assert.Equal(t, 7, u.Movement)
	assert.Equal(t, StateNormal, u.State())
	require.Len(t, u.Weapons(), 2)
	assert.Equal(t, "iron_lance", u.EquippedWeapon().ID)
	assert.Equal(t, 2, u.AttackRange())
	assert.Equal(t, 0, u.HealRange())
	assert.True(t, u.HasAbility(AbilityAttack))
	assert.False(t, u.HasAbility(AbilityHeal))
}

func TestNewUnitRejectsZeroID(t *testing.T) {
	armory, err := combat.NewArmory(catalog.Weapons.All())
	require.NoError(t, err)
	_, err = NewUnit(world.NoUnit, "x", 0, catalog.Units.GetByID("lord"), armory)
	assert.Error(t, err)
}

func TestParseAbilityKind(t *testing.T) {
	k, err := ParseAbilityKind(gamedata.AbilityHeal)
	require.NoError(t, err)
	assert.Equal(t, AbilityHeal, k)
	assert.Equal(t, "Heal", k.String())

	_, err = ParseAbilityKind("fly")
	assert.Error(t, err)
}

func TestReceiveDamageClampsAndReportsOnce(t *testing.T) {
	u := newTestUnit(t, 1, "lord", 0)

	assert.False(t, u.ReceiveDamage(5))
	assert.Equal(t, 15, u.HP)

	assert.True(t, u.ReceiveDamage(100), "fatal hit reports destruction")
	assert.Equal(t, 0, u.HP)

	assert.False(t, u.ReceiveDamage(3), "already dead")
	assert.Equal(t, 0, u.HP)
	assert.False(t, u.IsAlive())
}

func TestReceiveHealingClamps(t *testing.T) {
	u := newTestUnit(t, 1, "lord", 0)
	u.ReceiveDamage(8)

	assert.Equal(t, 5, u.ReceiveHealing(5))
	assert.Equal(t, 17, u.HP)

	assert.Equal(t, 3, u.ReceiveHealing(50))
	assert.Equal(t, u.Total.HP, u.HP)

	assert.Equal(t, 0, u.ReceiveHealing(-4))
	assert.Equal(t, u.Total.HP, u.HP)
}

func TestNegativeHealingCannotKill(t *testing.T) {
	u := newTestUnit(t, 1, "lord", 0)

	assert.Equal(t, 0, u.ReceiveHealing(-100))
	assert.Equal(t, u.Total.HP, u.HP)
	assert.True(t, u.IsAlive())

	assert.True(t, u.ReceiveDamage(u.HP), "the fatal hit still reports destruction")
	assert.Equal(t, 0, u.ReceiveHealing(5), "the dead are not healed")
	assert.Equal(t, 0, u.HP)
}

func TestStateTransitions(t *testing.T) {
	ctx := context.Background()
	u := newTestUnit(t, 1, "lord", 0)

	require.NoError(t, u.Select(ctx))
	assert.Equal(t, StateSelected, u.State())

	require.NoError(t, u.StartMove(ctx, world.Coord{X: 1, Y: 1}))
	assert.Equal(t, StateMoving, u.State())
	assert.False(t, u.CanMove())
	assert.False(t, u.CanAct())

	require.NoError(t, u.Arrive(ctx))
	assert.Equal(t, StateNormal, u.State())

	require.NoError(t, u.StandBy(ctx))
	assert.Equal(t, StateFriendly, u.State())
	assert.False(t, u.CanAct())

	assert.Error(t, u.Deselect(ctx), "friendly units are not selected")

	require.NoError(t, u.Reset(ctx))
	assert.Equal(t, StateNormal, u.State())
	require.NoError(t, u.Reset(ctx), "reset from normal is a no-op")
}

func TestDestroyedIsTerminal(t *testing.T) {
	ctx := context.Background()
	u := newTestUnit(t, 1, "lord", 0)
	require.NoError(t, u.Select(ctx))

	require.NoError(t, u.Destroy(ctx))
	assert.Equal(t, StateDestroyed, u.State())
	assert.Equal(t, 0, u.HP)
	assert.Equal(t, 0, u.Movement)

	require.NoError(t, u.Destroy(ctx))
	assert.Error(t, u.Select(ctx))
	require.NoError(t, u.Reset(ctx))
	assert.Equal(t, StateDestroyed, u.State())
}

func TestOnTurnEnd(t *testing.T) {
	ctx := context.Background()
	u := newTestUnit(t, 1, "lord", 0)
	require.NoError(t, u.Select(ctx))
	u.FinishMove()
	u.SpendAction()

	destroyed, err := u.OnTurnEnd(ctx)
	require.NoError(t, err)
	assert.False(t, destroyed)
	assert.Equal(t, u.Total.Movement, u.Movement)
	assert.Equal(t, u.Total.Actions, u.Actions)
	assert.Equal(t, StateNormal, u.State())

	u.ReceiveDamage(u.HP)
	destroyed, err = u.OnTurnEnd(ctx)
	require.NoError(t, err)
	assert.True(t, destroyed)
	assert.Equal(t, StateDestroyed, u.State())

	destroyed, err = u.OnTurnEnd(ctx)
	require.NoError(t, err)
	assert.False(t, destroyed, "destruction is finalized once")
}

func TestResetMove(t *testing.T) {
	ctx := context.Background()
	u := newTestUnit(t, 1, "lord", 0)

	_, ok := u.ResetMove()
	assert.False(t, ok)

	require.NoError(t, u.StartMove(ctx, world.Coord{X: 2, Y: 3}))
	require.NoError(t, u.Arrive(ctx))
	u.FinishMove()
	assert.False(t, u.CanMove(), "one move per turn")

	origin, ok := u.ResetMove()
	require.True(t, ok)
	assert.Equal(t, world.Coord{X: 2, Y: 3}, origin)
	assert.Equal(t, u.Total.Movement, u.Movement)

	require.NoError(t, u.StartMove(ctx, world.Coord{X: 2, Y: 3}))
	require.NoError(t, u.Arrive(ctx))
	u.SpendAction()
	_, ok = u.ResetMove()
	assert.False(t, ok, "acting commits the move")
}

func TestSetFinished(t *testing.T) {
	u := newTestUnit(t, 1, "lord", 0)
	u.SetFinished()
	assert.False(t, u.CanMove())
	assert.False(t, u.CanAct())
}

func TestEquipWeapon(t *testing.T) {
	u := newTestUnit(t, 1, "myrmidon", 0)
	require.Len(t, u.Weapons(), 2)
	sword := u.Weapons()[1]

	require.NoError(t, u.EquipWeapon(sword))
	assert.Equal(t, "iron_sword", u.EquippedWeapon().ID)
	assert.Equal(t, "killing_edge", u.Weapons()[1].ID)

	other := newTestUnit(t, 2, "archer", 0)
	assert.ErrorIs(t, u.EquipWeapon(other.EquippedWeapon()), ErrWeaponNotOwned)
}

func TestCanAttackAndHeal(t *testing.T) {
	archer := newTestUnit(t, 1, "archer", 0)
	cleric := newTestUnit(t, 2, "cleric", 0)
	brigand := newTestUnit(t, 3, "brigand", 1)

	assert.True(t, archer.CanAttack(brigand, 2))
	assert.True(t, archer.CanAttack(brigand, 1))
	assert.False(t, archer.CanAttack(brigand, 3))
	assert.False(t, archer.CanAttack(cleric, 1), "same player")
	assert.False(t, cleric.CanAttack(brigand, 1), "staves do not strike")

	assert.False(t, cleric.CanHeal(archer, 1), "archer is unhurt")
	archer.ReceiveDamage(4)
	assert.True(t, cleric.CanHeal(archer, 1))
	assert.False(t, cleric.CanHeal(archer, 2))
	assert.False(t, cleric.CanHeal(brigand, 1))
	assert.False(t, cleric.CanHeal(cleric, 0))

	archer.SetFinished()
	assert.False(t, archer.CanAttack(brigand, 2))
}

func TestProfileIncludesTerrain(t *testing.T) {
	u := newTestUnit(t, 1, "lord", 0)
	g, err := world.ParseGrid([]string{"F"})
	require.NoError(t, err)

	p := u.Profile(g.Tile(world.Coord{}))
	assert.Equal(t, 2, p.TerrainDefense)
	assert.Equal(t, 20, p.TerrainAvoid)
	assert.Equal(t, u.EquippedWeapon(), p.Weapon)

	p = u.Profile(nil)
	assert.Equal(t, 0, p.TerrainDefense)
}

func TestRoster(t *testing.T) {
	r := NewRoster()
	a := newTestUnit(t, 1, "lord", 0)
	b := newTestUnit(t, 2, "brigand", 1)
	c := newTestUnit(t, 3, "soldier", 1)
	require.NoError(t, r.Add(a))
	require.NoError(t, r.Add(b))
	require.NoError(t, r.Add(c))
	assert.Error(t, r.Add(a))

	assert.Equal(t, b, r.Get(2))
	assert.Nil(t, r.Get(9))
	assert.Len(t, r.Alive(1), 2)
	assert.Equal(t, []*Unit{b, c}, r.Enemies(0))

	c.ReceiveDamage(100)
	assert.Equal(t, []*Unit{b}, r.Alive(1))
	assert.Equal(t, 3, r.Len())
	assert.Len(t, r.All(), 3)
}

func TestSpendActionEndsMovement(t *testing.T) {
	u := newTestUnit(t, 1, "lord", 0)
	assert.Equal(t, u.Total.Movement, u.Movement)

	u.SpendAction()
	assert.Equal(t, 0, u.Actions)
	assert.Equal(t, 0, u.Movement)
	assert.False(t, u.CanMove())
}
