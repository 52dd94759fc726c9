// Package combat resolves weapon exchanges between two units.
package combat

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/gamedata"
)

// WeaponType is the family a weapon belongs to.
type WeaponType int

const (
	WeaponSword WeaponType = iota
	WeaponLance
	WeaponAxe
	WeaponBow
	WeaponStaff
	WeaponTome
)

// String returns a human-readable weapon type name.
func (t WeaponType) String() string {
	switch t {
	case WeaponSword:
		return "Sword"
	case WeaponLance:
		return "Lance"
	case WeaponAxe:
		return "Axe"
	case WeaponBow:
		return "Bow"
	case WeaponStaff:
		return "Staff"
	case WeaponTome:
		return "Tome"
	default:
		return "Unknown"
	}
}

// ParseWeaponType converts the type name used in weapons.json.
func ParseWeaponType(s string) (WeaponType, error) {
	switch s {
	case "sword":
		return WeaponSword, nil
	case "lance":
		return WeaponLance, nil
	case "axe":
		return WeaponAxe, nil
	case "bow":
		return WeaponBow, nil
	case "staff":
		return WeaponStaff, nil
	case "tome":
		return WeaponTome, nil
	default:
		return 0, fmt.Errorf("unknown weapon type %q", s)
	}
}

// beats maps each triangle weapon to the one it has the advantage over.
var beats = map[WeaponType]WeaponType{
	WeaponSword: WeaponAxe,
	WeaponAxe:   WeaponLance,
	WeaponLance: WeaponSword,
}

// Effectiveness returns +1 when attacker has the triangle advantage over
// defender, -1 when it is at a disadvantage and 0 otherwise.
func Effectiveness(attacker, defender WeaponType) int {
	if v, ok := beats[attacker]; ok && v == defender {
		return 1
	}
	if v, ok := beats[defender]; ok && v == attacker {
		return -1
	}
	return 0
}

// Weapon is an immutable weapon definition. Units share pointers to the
// same Weapon values.
type Weapon struct {
	ID     string
	Name   string
	Type   WeaponType
	Attack int
	Hit    int
	Crit   int
	Weight int
	Range  int
}

// NewWeapon builds a weapon from its game data definition.
func NewWeapon(def *gamedata.WeaponDef) (*Weapon, error) {
	t, err := ParseWeaponType(def.Type)
	if err != nil {
		return nil, fmt.Errorf("weapon %s: %w", def.ID, err)
	}
	if def.Range < 1 {
		return nil, fmt.Errorf("weapon %s: range %d must be at least 1", def.ID, def.Range)
	}
	return &Weapon{
		ID:     def.ID,
		Name:   def.Name,
		Type:   t,
		Attack: def.Attack,
		Hit:    def.Hit,
		Crit:   def.Crit,
		Weight: def.Weight,
		Range:  def.Range,
	}, nil
}

// CanStrike reports whether the weapon can attack a target distance tiles
// away. Staves never strike.
func (w *Weapon) CanStrike(distance int) bool {
	if w == nil || w.Type == WeaponStaff {
		return false
	}
	return distance >= 1 && distance <= w.Range
}

// CanHeal reports whether the weapon can heal a target distance tiles away.
func (w *Weapon) CanHeal(distance int) bool {
	if w == nil || w.Type != WeaponStaff {
		return false
	}
	return distance >= 1 && distance <= w.Range
}

// Armory holds one shared Weapon per definition.
type Armory struct {
	byID map[string]*Weapon
}

// NewArmory converts every weapon definition.
func NewArmory(defs []gamedata.WeaponDef) (*Armory, error) {
	a := &Armory{byID: make(map[string]*Weapon, len(defs))}
	for i := range defs {
		w, err := NewWeapon(&defs[i])
		if err != nil {
			return nil, err
		}
		a.byID[w.ID] = w
	}
	return a, nil
}

// Get returns the weapon with the given ID, or nil if not found.
func (a *Armory) Get(id string) *Weapon {
	return a.byID[id]
}
