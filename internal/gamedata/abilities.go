package gamedata

// =============================================================================
// ABILITY FLOW
// =============================================================================
//
// Every unit class lists the abilities its units may use, in the order the
// board offers them. When a unit is selected the board activates the first
// ability that can currently be performed; finishing an ability hands control
// to the next one that still can.
//
//   move                 - highlight reachable tiles, walk a path on click
//   select_weapon        - choose which owned weapon to equip
//   display_attack_stats - highlight attackable tiles, forecast on hover
//   attack               - resolve a combat exchange against a target
//   heal                 - restore an adjacent ally's hit points (staff)
//   wait                 - end the unit's actions for this turn
//
// Typical Fire Emblem sequence for a fighter:
//
//   select -> move -> select_weapon -> display_attack_stats -> attack
//
// Right click / cancel walks back one step; cancelling after a move and
// before acting returns the unit to the tile it started from.

// AbilityID names an ability in units.json.
type AbilityID string

const (
	AbilityMove               AbilityID = "move"
	AbilitySelectWeapon       AbilityID = "select_weapon"
	AbilityDisplayAttackStats AbilityID = "display_attack_stats"
	AbilityAttack             AbilityID = "attack"
	AbilityHeal               AbilityID = "heal"
	AbilityWait               AbilityID = "wait"
)

// Valid reports whether id names a known ability.
func (id AbilityID) Valid() bool {
	switch id {
	case AbilityMove, AbilitySelectWeapon, AbilityDisplayAttackStats,
		AbilityAttack, AbilityHeal, AbilityWait:
		return true
	default:
		return false
	}
}
