package game

import (
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// Event is something that happened on the board. Events are queued while
// the board runs and collected with Board.DrainEvents.
type Event interface {
	isEvent()
}

// TurnStarted is emitted when a player's turn begins.
type TurnStarted struct {
	Player int
	Round  int
}

// UnitSelected is emitted when the active player picks a unit.
type UnitSelected struct {
	Unit world.UnitID
}

// UnitDeselected is emitted when the selection is cleared.
type UnitDeselected struct {
	Unit world.UnitID
}

// AbilityActivated is emitted when a selected unit switches ability. Tiles
// are the targets to highlight.
type AbilityActivated struct {
	Unit    world.UnitID
	Ability entity.AbilityKind
	Tiles   []world.Coord
}

// UnitMoved is emitted after a unit walked Path. Undo marks a cancelled move
// returning the unit to where it started.
type UnitMoved struct {
	Unit world.UnitID
	From world.Coord
	To   world.Coord
	Path []world.Coord
	Undo bool
}

// WeaponEquipped is emitted when a unit changes weapon.
type WeaponEquipped struct {
	Unit   world.UnitID
	Weapon string
}

// AttackForecast previews a battle while the cursor rests on a target.
type AttackForecast struct {
	Attacker world.UnitID
	Defender world.UnitID
	Attack   combat.Stats
	Defense  combat.Stats
}

// HealForecast previews a heal while the cursor rests on an ally.
type HealForecast struct {
	Healer world.UnitID
	Target world.UnitID
	Heal   combat.HealStats
}

// ForecastCleared is emitted when the cursor leaves a forecast target.
type ForecastCleared struct{}

// BattleResolved is emitted after a battle sequence has played out.
type BattleResolved struct {
	Attacker     world.UnitID
	Defender     world.UnitID
	Actions      []combat.BattleAction
	AttackerDied bool
	DefenderDied bool
}

// UnitHealed is emitted after a heal sequence.
type UnitHealed struct {
	Healer   world.UnitID
	Target   world.UnitID
	Restored int
	HP       int
}

// UnitDestroyed is emitted when a unit leaves the board.
type UnitDestroyed struct {
	Unit   world.UnitID
	Player int
}

// GameOver is emitted once when the match ends. Winner is -1 on a draw.
type GameOver struct {
	Winner int
	Rounds int
}

func (TurnStarted) isEvent()      {}
func (UnitSelected) isEvent()     {}
func (UnitDeselected) isEvent()   {}
func (AbilityActivated) isEvent() {}
func (UnitMoved) isEvent()        {}
func (WeaponEquipped) isEvent()   {}
func (AttackForecast) isEvent()   {}
func (HealForecast) isEvent()     {}
func (ForecastCleared) isEvent()  {}
func (BattleResolved) isEvent()   {}
func (UnitHealed) isEvent()       {}
func (UnitDestroyed) isEvent()    {}
func (GameOver) isEvent()         {}
