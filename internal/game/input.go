package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

func (b *Board) checkInput() error {
	switch {
	case b.IsOver():
		return ErrGameOver
	case b.Is(StateWaitingInput), b.Is(StateUnitSelected):
		return nil
	default:
		return ErrInputBlocked
	}
}

// HandleUnitClicked selects one of the active player's units, or aims the
// selected unit's abilities at another unit.
func (b *Board) HandleUnitClicked(ctx context.Context, id world.UnitID) error {
	if err := b.checkInput(); err != nil {
		return err
	}
	u := b.Units.Get(id)
	if u == nil || !u.IsAlive() {
		return fmt.Errorf("unit %d: %w", id, ErrInvalidTarget)
	}

	if b.selected != nil {
		if u == b.selected {
			return b.Cancel(ctx)
		}
		pos, _ := b.Position(u)
		if u.Player != b.ActivePlayer().Number() || b.abilityAimedAt(b.selected, pos) != nil {
			return b.HandleTileClicked(ctx, pos)
		}
		// Switching units is only allowed before the current one moved.
		if _, moved := b.selected.MoveOrigin(); moved {
			return fmt.Errorf("unit %d: %w", id, ErrInputBlocked)
		}
		if err := b.clearSelection(ctx); err != nil {
			return err
		}
	}

	if u.Player != b.ActivePlayer().Number() {
		return fmt.Errorf("unit %d: %w", id, ErrNotYourUnit)
	}
	if !b.canCommand(u) {
		return fmt.Errorf("unit %d has finished: %w", id, ErrCannotPerform)
	}
	return b.selectUnit(ctx, u)
}

// HandleTileClicked aims the selected unit at a tile. The active ability is
// tried first, then the unit's other abilities in order.
func (b *Board) HandleTileClicked(ctx context.Context, c world.Coord) error {
	if err := b.checkInput(); err != nil {
		return err
	}
	if b.selected == nil {
		if u := b.UnitAt(c); u != nil {
			return b.HandleUnitClicked(ctx, u.ID)
		}
		return ErrNoSelection
	}

	u := b.selected
	if pos, _ := b.Position(u); pos == c {
		return b.Cancel(ctx)
	}
	a := b.abilityAimedAt(u, c)
	if a == nil {
		if other := b.UnitAt(c); other != nil && other.Player == u.Player && b.canCommand(other) {
			return b.HandleUnitClicked(ctx, other.ID)
		}
		return fmt.Errorf("tile %v: %w", c, ErrInvalidTarget)
	}
	b.emit(ForecastCleared{})
	return b.execute(ctx, a, u, Target{Tile: c})
}

// HandleTileSelected reacts to the cursor resting on c by forecasting an
// attack or heal against the unit there.
func (b *Board) HandleTileSelected(c world.Coord) {
	u := b.selected
	if u == nil || !b.Is(StateUnitSelected) {
		return
	}
	target := b.UnitAt(c)
	if target == nil {
		return
	}
	pos, _ := b.Position(u)
	distance := pos.Distance(c)

	switch {
	case u.CanAttack(target, distance):
		atk, def := b.Forecast(u, target)
		b.emit(AttackForecast{Attacker: u.ID, Defender: target.ID, Attack: *atk, Defense: *def})
	case u.CanHeal(target, distance):
		b.emit(HealForecast{Healer: u.ID, Target: target.ID, Heal: b.HealForecast(u, target)})
	}
}

// HandleTileDeselected clears any forecast shown for c.
func (b *Board) HandleTileDeselected(world.Coord) {
	if b.selected != nil {
		b.emit(ForecastCleared{})
	}
}

// SelectWeapon equips the selected unit's weapon in slot.
func (b *Board) SelectWeapon(ctx context.Context, slot int) error {
	return b.UseAbility(ctx, entity.AbilitySelectWeapon, Target{Weapon: slot})
}

// UseAbility makes the selected unit use ability kind on t.
func (b *Board) UseAbility(ctx context.Context, kind entity.AbilityKind, t Target) error {
	if err := b.checkInput(); err != nil {
		return err
	}
	if b.selected == nil {
		return ErrNoSelection
	}
	return b.Perform(ctx, b.selected, kind, t)
}

// Cancel walks back one step: a move that has not been followed by an
// action is undone, otherwise the selection is cleared.
func (b *Board) Cancel(ctx context.Context) error {
	if err := b.checkInput(); err != nil {
		return err
	}
	u := b.selected
	if u == nil {
		return ErrNoSelection
	}

	if origin, ok := u.MoveOrigin(); ok {
		from, _ := b.Position(u)
		if err := b.Grid.Move(u.ID, origin); err != nil {
			return err
		}
		u.ResetMove()
		b.log.Debug("move undone", "unit", u.Name, "to", origin.String())
		b.emit(UnitMoved{Unit: u.ID, From: from, To: origin, Path: []world.Coord{from, origin}, Undo: true})
		b.activate(b.firstAbility(u))
		return nil
	}

	if err := b.clearSelection(ctx); err != nil {
		return err
	}
	return b.fire(ctx, evAwaitInput)
}

func (b *Board) canCommand(u *entity.Unit) bool {
	return u.IsAlive() && (u.CanMove() || u.CanAct())
}

func (b *Board) selectUnit(ctx context.Context, u *entity.Unit) error {
	if err := u.Select(ctx); err != nil {
		return err
	}
	b.selected = u
	b.emit(UnitSelected{Unit: u.ID})
	b.activate(b.firstAbility(u))
	return b.fire(ctx, evSelectUnit)
}

// clearSelection deselects without consuming anything.
func (b *Board) clearSelection(ctx context.Context) error {
	u := b.selected
	if u == nil {
		return nil
	}
	b.selected = nil
	b.ability = nil
	b.emit(UnitDeselected{Unit: u.ID})
	if u.Is(entity.StateSelected) {
		return u.Deselect(ctx)
	}
	return nil
}

// finishSelection releases a unit that has nothing left to do.
func (b *Board) finishSelection(ctx context.Context) error {
	u := b.selected
	if u == nil {
		return nil
	}
	b.selected = nil
	b.ability = nil
	b.emit(UnitDeselected{Unit: u.ID})
	if u.Is(entity.StateSelected) {
		return u.FinishAction(ctx)
	}
	return nil
}

// targeter is implemented by abilities that display more tiles than they
// can be aimed at.
type targeter interface {
	Targets(b *Board, u *entity.Unit) []world.Coord
}

func targets(b *Board, a Ability, u *entity.Unit) []world.Coord {
	if t, ok := a.(targeter); ok {
		return t.Targets(b, u)
	}
	return a.Display(b, u)
}

func (b *Board) abilityAimedAt(u *entity.Unit, c world.Coord) Ability {
	if b.ability != nil && b.ability.CanPerform(b, u) && slices.Contains(targets(b, b.ability, u), c) {
		return b.ability
	}
	for _, k := range u.Abilities() {
		a := b.abilities[k]
		if a == nil || !a.CanPerform(b, u) {
			continue
		}
		if slices.Contains(targets(b, a, u), c) {
			return a
		}
	}
	return nil
}
