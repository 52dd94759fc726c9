package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// Target is what an ability is aimed at: a tile, or for weapon selection an
// inventory slot.
type Target struct {
	Tile   world.Coord
	Weapon int
}

// Ability is the behavior behind an entity.AbilityKind.
type Ability interface {
	Kind() entity.AbilityKind
	// CanPerform reports whether u may use the ability right now.
	CanPerform(b *Board, u *entity.Unit) bool
	// Display returns the tiles the ability can be aimed at.
	Display(b *Board, u *entity.Unit) []world.Coord
	// Act carries the ability out. The board blocks input around it.
	Act(ctx context.Context, b *Board, u *entity.Unit, t Target) error
}

func defaultAbilities() map[entity.AbilityKind]Ability {
	all := []Ability{
		MoveAbility{},
		SelectWeaponAbility{},
		AttackStatsAbility{},
		AttackAbility{},
		HealAbility{},
		WaitAbility{},
	}
	m := make(map[entity.AbilityKind]Ability, len(all))
	for _, a := range all {
		m[a.Kind()] = a
	}
	return m
}

// Ability returns the behavior registered for kind.
func (b *Board) Ability(kind entity.AbilityKind) Ability {
	return b.abilities[kind]
}

// MoveAbility walks a unit along the cheapest path to a reachable tile.
type MoveAbility struct{}

func (MoveAbility) Kind() entity.AbilityKind { return entity.AbilityMove }

func (MoveAbility) CanPerform(b *Board, u *entity.Unit) bool {
	return u.CanMove() && len(b.MoveTargets(u)) > 0
}

func (MoveAbility) Display(b *Board, u *entity.Unit) []world.Coord {
	return b.MoveTargets(u)
}

func (MoveAbility) Act(ctx context.Context, b *Board, u *entity.Unit, t Target) error {
	from, _ := b.Position(u)
	reach := b.MoveRange(u)
	if t.Tile == from || !slices.Contains(reach, t.Tile) {
		return fmt.Errorf("move to %v: %w", t.Tile, ErrInvalidTarget)
	}
	path := world.FindPath(b.Grid, from, t.Tile, reach)
	if path == nil {
		return fmt.Errorf("move to %v: no path: %w", t.Tile, ErrInvalidTarget)
	}
	return b.walk(ctx, u, path)
}

// SelectWeaponAbility equips one of the unit's other weapons.
type SelectWeaponAbility struct{}

func (SelectWeaponAbility) Kind() entity.AbilityKind { return entity.AbilitySelectWeapon }

func (SelectWeaponAbility) CanPerform(_ *Board, u *entity.Unit) bool {
	return u.CanAct() && len(u.Weapons()) > 1
}

func (SelectWeaponAbility) Display(*Board, *entity.Unit) []world.Coord { return nil }

func (SelectWeaponAbility) Act(_ context.Context, b *Board, u *entity.Unit, t Target) error {
	weapons := u.Weapons()
	if t.Weapon < 0 || t.Weapon >= len(weapons) {
		return fmt.Errorf("weapon slot %d: %w", t.Weapon, ErrInvalidTarget)
	}
	w := weapons[t.Weapon]
	if err := u.EquipWeapon(w); err != nil {
		return err
	}
	b.emit(WeaponEquipped{Unit: u.ID, Weapon: w.ID})
	return nil
}

// AttackStatsAbility shows which tiles the unit can strike and forecasts
// battles on hover. Confirming a target attacks it.
type AttackStatsAbility struct{}

func (AttackStatsAbility) Kind() entity.AbilityKind { return entity.AbilityDisplayAttackStats }

func (AttackStatsAbility) CanPerform(b *Board, u *entity.Unit) bool {
	return AttackAbility{}.CanPerform(b, u)
}

// Display returns every passable tile the unit's weapons reach from where
// it stands, occupied or not.
func (AttackStatsAbility) Display(b *Board, u *entity.Unit) []world.Coord {
	pos, ok := b.Position(u)
	if !ok {
		return nil
	}
	var out []world.Coord
	for _, c := range world.TilesInRange(b.Grid, pos, u.AttackRange()) {
		if b.Grid.IsPassable(c) && u.WeaponFor(pos.Distance(c)) != nil {
			out = append(out, c)
		}
	}
	return out
}

// Targets returns the tiles of enemies in reach.
func (AttackStatsAbility) Targets(b *Board, u *entity.Unit) []world.Coord {
	return AttackAbility{}.Display(b, u)
}

func (AttackStatsAbility) Act(ctx context.Context, b *Board, u *entity.Unit, t Target) error {
	return AttackAbility{}.Act(ctx, b, u, t)
}

// AttackAbility resolves a battle against an enemy in reach.
type AttackAbility struct{}

func (AttackAbility) Kind() entity.AbilityKind { return entity.AbilityAttack }

func (AttackAbility) CanPerform(b *Board, u *entity.Unit) bool {
	pos, ok := b.Position(u)
	return ok && u.CanAct() && len(b.AttackTargetsFrom(u, pos)) > 0
}

func (AttackAbility) Display(b *Board, u *entity.Unit) []world.Coord {
	pos, _ := b.Position(u)
	return unitTiles(b, b.AttackTargetsFrom(u, pos))
}

func (AttackAbility) Act(ctx context.Context, b *Board, u *entity.Unit, t Target) error {
	pos, _ := b.Position(u)
	target := b.UnitAt(t.Tile)
	if target == nil || !u.CanAttack(target, pos.Distance(t.Tile)) {
		return fmt.Errorf("attack %v: %w", t.Tile, ErrInvalidTarget)
	}
	return b.battle(ctx, u, target)
}

// HealAbility restores an injured ally with a staff.
type HealAbility struct{}

func (HealAbility) Kind() entity.AbilityKind { return entity.AbilityHeal }

func (HealAbility) CanPerform(b *Board, u *entity.Unit) bool {
	pos, ok := b.Position(u)
	return ok && u.CanAct() && len(b.HealTargetsFrom(u, pos)) > 0
}

func (HealAbility) Display(b *Board, u *entity.Unit) []world.Coord {
	pos, _ := b.Position(u)
	return unitTiles(b, b.HealTargetsFrom(u, pos))
}

func (HealAbility) Act(ctx context.Context, b *Board, u *entity.Unit, t Target) error {
	pos, _ := b.Position(u)
	target := b.UnitAt(t.Tile)
	if target == nil || !u.CanHeal(target, pos.Distance(t.Tile)) {
		return fmt.Errorf("heal %v: %w", t.Tile, ErrInvalidTarget)
	}
	return b.heal(ctx, u, target)
}

// WaitAbility ends the unit's turn where it stands.
type WaitAbility struct{}

func (WaitAbility) Kind() entity.AbilityKind { return entity.AbilityWait }

func (WaitAbility) CanPerform(_ *Board, u *entity.Unit) bool {
	return u.IsAlive() && (u.CanMove() || u.CanAct())
}

func (WaitAbility) Display(*Board, *entity.Unit) []world.Coord { return nil }

func (WaitAbility) Act(_ context.Context, _ *Board, u *entity.Unit, _ Target) error {
	u.SetFinished()
	return nil
}

func unitTiles(b *Board, units []*entity.Unit) []world.Coord {
	out := make([]world.Coord, 0, len(units))
	for _, u := range units {
		if pos, ok := b.Position(u); ok {
			out = append(out, pos)
		}
	}
	return out
}

// =============================================================================
// Ability execution
// =============================================================================

// Perform makes u use ability kind on t. It is how computer players act, and
// how the input handlers carry out a human's choice.
func (b *Board) Perform(ctx context.Context, u *entity.Unit, kind entity.AbilityKind, t Target) error {
	switch {
	case b.IsOver():
		return ErrGameOver
	case !b.Is(StateAITurn) && !b.Is(StateUnitSelected):
		return ErrInputBlocked
	case u.Player != b.ActivePlayer().Number():
		return ErrNotYourUnit
	case b.Is(StateUnitSelected) && u != b.selected:
		return ErrNotYourUnit
	}
	a := b.abilities[kind]
	if a == nil || !u.HasAbility(kind) || !a.CanPerform(b, u) {
		return fmt.Errorf("%v: %w", kind, ErrCannotPerform)
	}
	return b.execute(ctx, a, u, t)
}

// execute wraps an ability with the block-input pre-action and the
// post-action that hands control back.
func (b *Board) execute(ctx context.Context, a Ability, u *entity.Unit, t Target) error {
	if err := b.fire(ctx, evBlock); err != nil {
		return err
	}
	if actErr := a.Act(ctx, b, u, t); actErr != nil {
		if err := b.resume(ctx); err != nil {
			return err
		}
		return actErr
	}
	return b.afterAction(ctx, u, a.Kind())
}

// resume hands control back unchanged after an ability failed.
func (b *Board) resume(ctx context.Context) error {
	switch {
	case b.IsOver():
		return nil
	case !isHuman(b.ActivePlayer()):
		return b.fire(ctx, evStartAI)
	case b.selected != nil:
		return b.fire(ctx, evSelectUnit)
	default:
		return b.fire(ctx, evAwaitInput)
	}
}

func (b *Board) afterAction(ctx context.Context, u *entity.Unit, used entity.AbilityKind) error {
	if b.IsOver() {
		return nil
	}
	if !isHuman(b.ActivePlayer()) {
		return b.fire(ctx, evStartAI)
	}
	if u == b.selected && u.IsAlive() && (u.CanMove() || u.CanAct()) {
		if !u.Is(entity.StateSelected) {
			if err := u.Select(ctx); err != nil {
				return err
			}
		}
		b.activate(b.nextAbility(u, used))
		return b.fire(ctx, evSelectUnit)
	}
	if err := b.finishSelection(ctx); err != nil {
		return err
	}
	return b.fire(ctx, evAwaitInput)
}

// nextAbility returns the first ability after used, wrapping around, that u
// can perform.
func (b *Board) nextAbility(u *entity.Unit, used entity.AbilityKind) Ability {
	kinds := u.Abilities()
	start := slices.Index(kinds, used) + 1
	for i := range kinds {
		k := kinds[(start+i)%len(kinds)]
		if a := b.abilities[k]; a != nil && a.CanPerform(b, u) {
			return a
		}
	}
	return nil
}

// firstAbility returns the first ability u can perform.
func (b *Board) firstAbility(u *entity.Unit) Ability {
	for _, k := range u.Abilities() {
		if a := b.abilities[k]; a != nil && a.CanPerform(b, u) {
			return a
		}
	}
	return nil
}

func (b *Board) activate(a Ability) {
	b.ability = a
	if a == nil || b.selected == nil {
		return
	}
	b.emit(AbilityActivated{
		Unit:    b.selected.ID,
		Ability: a.Kind(),
		Tiles:   a.Display(b, b.selected),
	})
}
