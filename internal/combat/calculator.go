package combat

import "math/rand"

// BattleAction is one strike in a combat exchange.
type BattleAction struct {
	ByAttacker  bool // Struck by the unit that initiated the battle
	Hit         bool
	Crit        bool
	Damage      int // Damage dealt, 0 on a miss
	RemainingHP int // Target HP after the strike
	Dead        bool
}

// Calculator rolls combat exchanges with an injected random source.
type Calculator struct {
	rng *rand.Rand
}

// NewCalculator creates a calculator. Pass a seeded rng for reproducible
// battles.
func NewCalculator(rng *rand.Rand) *Calculator {
	return &Calculator{rng: rng}
}

// Calculate produces the ordered strikes of a battle: the attacker's strike,
// the defender's counter, then at most one follow-up from whichever side is
// fast enough. Nothing follows a strike that drops its target to 0 HP.
// The attacker always opens; callers check range beforehand.
func (c *Calculator) Calculate(attacker, defender *Stats) []BattleAction {
	hp := [2]int{attacker.HP, defender.HP}
	sides := [2]*Stats{attacker, defender}
	var actions []BattleAction

	// strike resolves one swing by side (0 is the attacker) and reports
	// whether the target survived it.
	strike := func(side int) bool {
		a := c.roll(sides[side])
		a.ByAttacker = side == 0
		victim := 1 - side
		hp[victim] = max(0, hp[victim]-a.Damage)
		a.RemainingHP = hp[victim]
		a.Dead = hp[victim] == 0
		actions = append(actions, a)
		return !a.Dead
	}

	if !strike(0) {
		return actions
	}
	if defender.CanStrike {
		if !strike(1) {
			return actions
		}
	}
	switch {
	case attacker.DoubleAttack && attacker.CanStrike:
		strike(0)
	case defender.DoubleAttack && defender.CanStrike:
		strike(1)
	}
	return actions
}

func (c *Calculator) roll(s *Stats) BattleAction {
	var a BattleAction
	if c.rng.Intn(100) >= s.HitChance {
		return a
	}
	a.Hit = true
	a.Damage = s.Damage
	if c.rng.Intn(100) < s.CritChance {
		a.Crit = true
		a.Damage = s.CritDamage
	}
	return a
}
