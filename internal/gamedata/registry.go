package gamedata

import (
	"errors"
	"fmt"
)

// Registry holds loaded definitions keyed by ID, preserving file order.
type Registry[T any] struct {
	byID map[string]*T
	all  []T
}

// NewRegistry creates a registry from definitions using id to key them.
// Later duplicates replace earlier ones in lookups.
func NewRegistry[T any](defs []T, id func(*T) string) *Registry[T] {
	r := &Registry[T]{
		byID: make(map[string]*T, len(defs)),
		all:  defs,
	}
	for i := range defs {
		r.byID[id(&defs[i])] = &defs[i]
	}
	return r
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *Registry[T]) GetByID(id string) *T {
	return r.byID[id]
}

// All returns all definitions in file order.
func (r *Registry[T]) All() []T {
	return r.all
}

// Count returns the number of definitions in the registry.
func (r *Registry[T]) Count() int {
	return len(r.all)
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles every registry the game needs.
type Catalog struct {
	Weapons *Registry[WeaponDef]
	Units   *Registry[UnitDef]
	Maps    *Registry[MapDef]
}

// NewCatalog builds a catalog from already loaded definitions and validates
// the references between them.
func NewCatalog(weapons []WeaponDef, units []UnitDef, maps []MapDef) (*Catalog, error) {
	c := &Catalog{
		Weapons: NewRegistry(weapons, func(w *WeaponDef) string { return w.ID }),
		Units:   NewRegistry(units, func(u *UnitDef) string { return u.ID }),
		Maps:    NewRegistry(maps, func(m *MapDef) string { return m.ID }),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCatalog loads weapons.json, units.json and maps.json from the embedded
// filesystem.
func LoadCatalog() (*Catalog, error) {
	weapons, err := LoadWeapons()
	if err != nil {
		return nil, err
	}
	units, err := LoadUnits()
	if err != nil {
		return nil, err
	}
	maps, err := LoadMaps()
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, errors.New("no maps loaded from maps.json")
	}
	return NewCatalog(weapons, units, maps)
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks that every cross reference resolves.
func (c *Catalog) Validate() error {
	var errs []error
	for _, u := range c.Units.All() {
		for _, w := range u.Weapons {
			if c.Weapons.GetByID(w) == nil {
				errs = append(errs, fmt.Errorf("unit %s: unknown weapon %q", u.ID, w))
			}
		}
		for _, a := range u.Abilities {
			if !AbilityID(a).Valid() {
				errs = append(errs, fmt.Errorf("unit %s: unknown ability %q", u.ID, a))
			}
		}
	}
	for _, m := range c.Maps.All() {
		players := make(map[int]bool, len(m.Players))
		for _, p := range m.Players {
			players[p.Number] = true
		}
		for _, s := range m.Spawns {
			if c.Units.GetByID(s.Class) == nil {
				errs = append(errs, fmt.Errorf("map %s: spawn %q has unknown class %q", m.ID, s.Name, s.Class))
			}
			if !players[s.Player] {
				errs = append(errs, fmt.Errorf("map %s: spawn %q has unknown player %d", m.ID, s.Name, s.Player))
			}
		}
	}
	return errors.Join(errs...)
}
