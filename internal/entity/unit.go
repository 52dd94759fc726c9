// Package entity provides the units that fight on the battle grid.
package entity

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/world"
)

// ErrWeaponNotOwned is returned when equipping a weapon the unit does not carry.
var ErrWeaponNotOwned = errors.New("weapon not in inventory")

// StatBlock holds a unit's per-turn totals.
type StatBlock struct {
	HP           int
	Attack       int
	Skill        int
	Speed        int
	Luck         int
	Defense      int
	Constitution int
	Movement     int
	Actions      int
}

// Unit is a combatant on the grid.
type Unit struct {
	ID     world.UnitID
	Name   string
	Class  string // UnitDef ID
	Symbol rune
	Player int

	Total StatBlock

	// Current values
	HP       int
	Movement int
	Actions  int

	weapons   []*combat.Weapon // first is equipped
	abilities []AbilityKind
	machine   *fsm.FSM

	origin        world.Coord // tile the unit stood on before moving this turn
	moved         bool
	deathReported bool
}

// NewUnit creates a unit of the given class with full HP, movement and
// actions.
func NewUnit(id world.UnitID, name string, player int, def *gamedata.UnitDef, armory *combat.Armory) (*Unit, error) {
	if id == world.NoUnit {
		return nil, fmt.Errorf("unit %q: id must be non-zero", name)
	}
	u := &Unit{
		ID:     id,
		Name:   name,
		Class:  def.ID,
		Symbol: def.SymbolRune(),
		Player: player,
		Total: StatBlock{
			HP:           def.HP,
			Attack:       def.Attack,
			Skill:        def.Skill,
			Speed:        def.Speed,
			Luck:         def.Luck,
			Defense:      def.Defense,
			Constitution: def.Constitution,
			Movement:     def.Movement,
			Actions:      def.Actions,
		},
		HP:       def.HP,
		Movement: def.Movement,
		Actions:  def.Actions,
	}
	if u.Name == "" {
		u.Name = def.Name
	}

	for _, wid := range def.Weapons {
		w := armory.Get(wid)
		if w == nil {
			return nil, fmt.Errorf("unit %q: unknown weapon %q", u.Name, wid)
		}
		u.weapons = append(u.weapons, w)
	}
	for _, aid := range def.Abilities {
		k, err := ParseAbilityKind(gamedata.AbilityID(aid))
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", u.Name, err)
		}
		u.abilities = append(u.abilities, k)
	}

	u.machine = newMachine(u)
	return u, nil
}

// State returns the unit's lifecycle state.
func (u *Unit) State() State {
	return State(u.machine.Current())
}

// Is reports whether the unit is in state s.
func (u *Unit) Is(s State) bool {
	return u.machine.Is(string(s))
}

// IsAlive returns true if the unit has HP and has not been destroyed.
func (u *Unit) IsAlive() bool {
	return u.HP > 0 && !u.Is(StateDestroyed)
}

// IsEnemy returns true if other belongs to a different player.
func (u *Unit) IsEnemy(other *Unit) bool {
	return other != nil && other.Player != u.Player
}

// CanMove returns true if the unit may still walk this turn.
func (u *Unit) CanMove() bool {
	return u.IsAlive() && u.Movement > 0 && (u.Is(StateNormal) || u.Is(StateSelected))
}

// CanAct returns true if the unit may still attack, heal or wait.
func (u *Unit) CanAct() bool {
	return u.IsAlive() && u.Actions >= 1 && (u.Is(StateNormal) || u.Is(StateSelected))
}

// =============================================================================
// State transitions
// =============================================================================

// Select marks the unit as the one being commanded.
func (u *Unit) Select(ctx context.Context) error { return u.fire(ctx, EventSelect) }

// Deselect returns a selected unit to normal.
func (u *Unit) Deselect(ctx context.Context) error { return u.fire(ctx, EventDeselect) }

// FinishAction returns a selected unit to normal after an ability resolved.
func (u *Unit) FinishAction(ctx context.Context) error { return u.fire(ctx, EventAct) }

// StartMove puts the unit in the moving state, remembering where it came
// from so the move can be undone.
func (u *Unit) StartMove(ctx context.Context, from world.Coord) error {
	if err := u.fire(ctx, EventMove); err != nil {
		return err
	}
	if !u.moved {
		u.origin = from
		u.moved = true
	}
	return nil
}

// Arrive ends a move.
func (u *Unit) Arrive(ctx context.Context) error { return u.fire(ctx, EventArrive) }

// StandBy marks the unit as waiting for its owner's turn.
func (u *Unit) StandBy(ctx context.Context) error { return u.fire(ctx, EventStandBy) }

// Reset returns the unit to normal from any live non-normal state.
func (u *Unit) Reset(ctx context.Context) error {
	if !u.machine.Can(EventReset) {
		return nil
	}
	return u.fire(ctx, EventReset)
}

// Destroy moves the unit to its terminal state. Destroying a destroyed unit
// is a no-op.
func (u *Unit) Destroy(ctx context.Context) error {
	if u.Is(StateDestroyed) {
		return nil
	}
	return u.fire(ctx, EventDestroy)
}

func (u *Unit) fire(ctx context.Context, event string) error {
	err := u.machine.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unit %d %s: %w", u.ID, event, err)
	}
	return nil
}

// =============================================================================
// Turn bookkeeping
// =============================================================================

// OnTurnEnd restores a living unit's movement and actions and returns it to
// normal. A unit at 0 HP is destroyed instead; destroyed reports that.
func (u *Unit) OnTurnEnd(ctx context.Context) (destroyed bool, err error) {
	if u.Is(StateDestroyed) {
		return false, nil
	}
	if u.HP <= 0 {
		return true, u.Destroy(ctx)
	}
	u.Movement = u.Total.Movement
	u.Actions = u.Total.Actions
	u.moved = false
	return false, u.Reset(ctx)
}

// FinishMove ends the unit's movement for the turn. ResetMove still undoes
// the move while no action has been spent.
func (u *Unit) FinishMove() {
	u.Movement = 0
}

// SpendAction uses one action point. Once a unit has acted it cannot move
// back to where it started, and without actions left it cannot move at all.
func (u *Unit) SpendAction() {
	u.Actions = max(0, u.Actions-1)
	if u.Actions == 0 {
		u.Movement = 0
	}
	u.moved = false
}

// SetFinished ends the unit's turn early.
func (u *Unit) SetFinished() {
	u.Movement = 0
	u.Actions = 0
	u.moved = false
}

// MoveOrigin returns the tile the unit occupied before it moved this turn.
// ok is false when there is no move to undo.
func (u *Unit) MoveOrigin() (c world.Coord, ok bool) {
	return u.origin, u.moved
}

// ResetMove restores the movement spent this turn. The caller puts the unit
// back on the origin tile.
func (u *Unit) ResetMove() (world.Coord, bool) {
	if !u.moved {
		return world.Coord{}, false
	}
	u.Movement = u.Total.Movement
	u.moved = false
	return u.origin, true
}

// =============================================================================
// Damage and healing
// =============================================================================

// ReceiveDamage lowers HP, never below 0. It returns true exactly once, on
// the hit that drops the unit to 0 HP.
func (u *Unit) ReceiveDamage(amount int) bool {
	if amount <= 0 || u.HP <= 0 {
		return false
	}
	u.HP = max(0, u.HP-amount)
	if u.HP == 0 && !u.deathReported {
		u.deathReported = true
		return true
	}
	return false
}

// ReceiveHealing raises HP up to the unit's total and returns the amount
// actually restored.
func (u *Unit) ReceiveHealing(amount int) int {
	if amount <= 0 || !u.IsAlive() {
		return 0
	}
	before := u.HP
	u.HP = min(u.HP+amount, u.Total.HP)
	return u.HP - before
}

// =============================================================================
// Weapons and abilities
// =============================================================================

// Weapons returns the inventory; the first weapon is equipped.
func (u *Unit) Weapons() []*combat.Weapon {
	return u.weapons
}

// EquippedWeapon returns the weapon in hand, or nil when unarmed.
func (u *Unit) EquippedWeapon() *combat.Weapon {
	if len(u.weapons) == 0 {
		return nil
	}
	return u.weapons[0]
}

// EquipWeapon moves w to the front of the inventory.
func (u *Unit) EquipWeapon(w *combat.Weapon) error {
	for i, owned := range u.weapons {
		if owned != w {
			continue
		}
		copy(u.weapons[1:i+1], u.weapons[:i])
		u.weapons[0] = w
		return nil
	}
	return fmt.Errorf("unit %d equip weapon: %w", u.ID, ErrWeaponNotOwned)
}

// WeaponFor returns the weapon the unit would strike with at distance,
// preferring the equipped one, or nil if no weapon reaches.
func (u *Unit) WeaponFor(distance int) *combat.Weapon {
	for _, w := range u.weapons {
		if w.CanStrike(distance) {
			return w
		}
	}
	return nil
}

// StaffFor returns a staff that can heal at distance, or nil.
func (u *Unit) StaffFor(distance int) *combat.Weapon {
	for _, w := range u.weapons {
		if w.CanHeal(distance) {
			return w
		}
	}
	return nil
}

// AttackRange returns the longest reach among the unit's striking weapons.
func (u *Unit) AttackRange() int {
	r := 0
	for _, w := range u.weapons {
		if w.Type != combat.WeaponStaff {
			r = max(r, w.Range)
		}
	}
	return r
}

// HealRange returns the longest reach among the unit's staves.
func (u *Unit) HealRange() int {
	r := 0
	for _, w := range u.weapons {
		if w.Type == combat.WeaponStaff {
			r = max(r, w.Range)
		}
	}
	return r
}

// Abilities returns the unit's abilities in the order they are offered.
func (u *Unit) Abilities() []AbilityKind {
	return u.abilities
}

// HasAbility reports whether the unit has ability k.
func (u *Unit) HasAbility(k AbilityKind) bool {
	for _, a := range u.abilities {
		if a == k {
			return true
		}
	}
	return false
}

// CanAttack returns true if the unit could strike target from distance with
// any weapon it carries.
func (u *Unit) CanAttack(target *Unit, distance int) bool {
	return u.CanAct() && u.HasAbility(AbilityAttack) &&
		u.IsEnemy(target) && target.IsAlive() &&
		u.WeaponFor(distance) != nil
}

// CanHeal returns true if the unit could heal an injured ally from distance.
func (u *Unit) CanHeal(target *Unit, distance int) bool {
	return u.CanAct() && u.HasAbility(AbilityHeal) &&
		target != nil && target != u && !u.IsEnemy(target) &&
		target.IsAlive() && target.HP < target.Total.HP &&
		u.StaffFor(distance) != nil
}

// Profile snapshots the unit for the combat calculator. tile may be nil.
func (u *Unit) Profile(tile *world.Tile) combat.Profile {
	p := combat.Profile{
		Name:         u.Name,
		HP:           u.HP,
		MaxHP:        u.Total.HP,
		Attack:       u.Total.Attack,
		Skill:        u.Total.Skill,
		Speed:        u.Total.Speed,
		Luck:         u.Total.Luck,
		Defense:      u.Total.Defense,
		Constitution: u.Total.Constitution,
		Weapon:       u.EquippedWeapon(),
	}
	if tile != nil {
		p.TerrainDefense = tile.DefenseBoost
		p.TerrainAvoid = tile.AvoidBoost
	}
	return p
}
