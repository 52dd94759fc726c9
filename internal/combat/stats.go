package combat

// FollowUpThreshold is the attack speed lead needed for a second strike.
const FollowUpThreshold = 5

// CritMultiplier scales damage on a critical hit.
const CritMultiplier = 3

// Profile is everything the calculator needs to know about one side of a
// fight: the unit's base stats, its equipped weapon and the terrain it
// stands on.
type Profile struct {
	Name         string
	HP           int
	MaxHP        int
	Attack       int
	Skill        int
	Speed        int
	Luck         int
	Defense      int
	Constitution int
	Weapon       *Weapon // nil when unarmed

	TerrainDefense int
	TerrainAvoid   int
}

// Stats is the per-combat snapshot of one combatant against a specific
// opponent at a specific distance.
type Stats struct {
	Name   string
	Weapon *Weapon

	AttackPower int
	Defense     int
	HitChance   int
	Avoid       int // Shown in forecasts; hit rolls do not subtract it
	CritChance  int
	AttackSpeed int
	Damage      int
	CritDamage  int

	CanStrike    bool // Weapon reaches the opponent
	DoubleAttack bool // Fast enough for a follow-up

	HP    int
	MaxHP int
}

// Forecast builds both sides' stats for attacker engaging defender from
// distance tiles away.
func Forecast(attacker, defender Profile, distance int) (*Stats, *Stats) {
	a := baseStats(attacker, defender, distance)
	d := baseStats(defender, attacker, distance)

	a.Damage = max(0, a.AttackPower-d.Defense)
	a.CritDamage = a.Damage * CritMultiplier
	d.Damage = max(0, d.AttackPower-a.Defense)
	d.CritDamage = d.Damage * CritMultiplier

	a.DoubleAttack = a.CanStrike && a.AttackSpeed-d.AttackSpeed >= FollowUpThreshold
	d.DoubleAttack = d.CanStrike && d.AttackSpeed-a.AttackSpeed >= FollowUpThreshold
	return a, d
}

func baseStats(self, opponent Profile, distance int) *Stats {
	s := &Stats{
		Name:    self.Name,
		Weapon:  self.Weapon,
		Defense: self.Defense + self.TerrainDefense,
		HP:      self.HP,
		MaxHP:   self.MaxHP,
	}

	w := self.Weapon
	eff := 0
	weight := 0
	if w != nil {
		if opponent.Weapon != nil {
			eff = Effectiveness(w.Type, opponent.Weapon.Type)
		}
		weight = w.Weight
		s.AttackPower = self.Attack + w.Attack + eff
		s.HitChance = w.Hit + self.Skill*2 + self.Luck/2 + eff*15
		s.CritChance = clamp(w.Crit+self.Skill/2, 0, 100)
	} else {
		s.AttackPower = self.Attack
		s.HitChance = self.Skill*2 + self.Luck/2
		s.CritChance = clamp(self.Skill/2, 0, 100)
	}

	s.AttackSpeed = clamp(self.Speed-(weight-self.Constitution), 0, 100)
	s.Avoid = s.AttackSpeed*2 + self.Luck + self.TerrainAvoid
	s.CanStrike = w.CanStrike(distance)
	return s
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
