package entity

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/world"
)

// Roster owns every unit in a match, keyed by ID. Tiles refer to units by
// ID only.
type Roster struct {
	byID  map[world.UnitID]*Unit
	order []world.UnitID
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{byID: make(map[world.UnitID]*Unit)}
}

// Add registers a unit.
func (r *Roster) Add(u *Unit) error {
	if _, ok := r.byID[u.ID]; ok {
		return fmt.Errorf("unit %d already in roster", u.ID)
	}
	r.byID[u.ID] = u
	r.order = append(r.order, u.ID)
	return nil
}

// Get returns the unit with id, or nil.
func (r *Roster) Get(id world.UnitID) *Unit {
	return r.byID[id]
}

// All returns every unit in insertion order, destroyed ones included.
func (r *Roster) All() []*Unit {
	out := make([]*Unit, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Alive returns the living units of player in insertion order.
func (r *Roster) Alive(player int) []*Unit {
	var out []*Unit
	for _, id := range r.order {
		if u := r.byID[id]; u.Player == player && u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

// Enemies returns the living units not owned by player.
func (r *Roster) Enemies(player int) []*Unit {
	var out []*Unit
	for _, id := range r.order {
		if u := r.byID[id]; u.Player != player && u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

// Len returns the number of units ever added.
func (r *Roster) Len() int {
	return len(r.order)
}
