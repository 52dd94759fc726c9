package ai

import (
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// Plan is what one unit intends to do this turn.
type Plan struct {
	// Ability is AbilityAttack, AbilityHeal, AbilityMove, or AbilityWait
	// when the unit holds position.
	Ability entity.AbilityKind

	Move   bool // Walk to MoveTo first
	MoveTo world.Coord

	FireFrom world.Coord  // Tile the attack or heal is made from
	Target   *entity.Unit // Unit attacked or healed
}

// Holds reports whether the plan leaves the unit where it is doing nothing.
func (p Plan) Holds() bool {
	return !p.Move && p.Target == nil
}
