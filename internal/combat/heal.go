package combat

// HealStats describes what a staff heal will do to its target.
type HealStats struct {
	Amount   int // Healing power, the healer's base attack
	HP       int // Target HP before the heal
	MaxHP    int
	ResultHP int // Target HP after the heal, capped at MaxHP
}

// NewHealStats forecasts healer restoring target.
func NewHealStats(healer, target Profile) HealStats {
	amount := max(0, healer.Attack)
	return HealStats{
		Amount:   amount,
		HP:       target.HP,
		MaxHP:    target.MaxHP,
		ResultHP: clamp(target.HP+amount, 0, target.MaxHP),
	}
}

// Restored returns the hit points actually recovered.
func (h HealStats) Restored() int {
	return h.ResultHP - h.HP
}
