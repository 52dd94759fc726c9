package entity

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/gamedata"
)

// AbilityKind tags one of the abilities a unit may use. The board maps each
// kind to its behavior.
type AbilityKind int

const (
	AbilityMove AbilityKind = iota
	AbilitySelectWeapon
	AbilityDisplayAttackStats
	AbilityAttack
	AbilityHeal
	AbilityWait
)

// String returns a human-readable ability name.
func (k AbilityKind) String() string {
	switch k {
	case AbilityMove:
		return "Move"
	case AbilitySelectWeapon:
		return "Select Weapon"
	case AbilityDisplayAttackStats:
		return "Attack Stats"
	case AbilityAttack:
		return "Attack"
	case AbilityHeal:
		return "Heal"
	case AbilityWait:
		return "Wait"
	default:
		return "Unknown"
	}
}

// ParseAbilityKind converts an ability ID from units.json.
func ParseAbilityKind(id gamedata.AbilityID) (AbilityKind, error) {
	switch id {
	case gamedata.AbilityMove:
		return AbilityMove, nil
	case gamedata.AbilitySelectWeapon:
		return AbilitySelectWeapon, nil
	case gamedata.AbilityDisplayAttackStats:
		return AbilityDisplayAttackStats, nil
	case gamedata.AbilityAttack:
		return AbilityAttack, nil
	case gamedata.AbilityHeal:
		return AbilityHeal, nil
	case gamedata.AbilityWait:
		return AbilityWait, nil
	default:
		return 0, fmt.Errorf("unknown ability %q", id)
	}
}
