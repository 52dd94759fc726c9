// Package game runs a match: the turn state machine, abilities and battle
// sequencing on top of the grid and units.
package game

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/world"
)

// New builds a board for the map mapID. Player turn order follows the map's
// player list; players must supply one controller per map player.
func New(catalog *gamedata.Catalog, mapID string, players []Player, cfg Config) (*Board, error) {
	def := catalog.Maps.GetByID(mapID)
	if def == nil {
		return nil, fmt.Errorf("unknown map %q", mapID)
	}

	grid, err := world.ParseGrid(def.Rows)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapID, err)
	}
	armory, err := combat.NewArmory(catalog.Weapons.All())
	if err != nil {
		return nil, err
	}

	units := entity.NewRoster()
	for i, s := range def.Spawns {
		class := catalog.Units.GetByID(s.Class)
		if class == nil {
			return nil, fmt.Errorf("map %s: unknown class %q", mapID, s.Class)
		}
		u, err := entity.NewUnit(world.UnitID(i+1), s.Name, s.Player, class, armory)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", mapID, err)
		}
		if err := grid.Place(u.ID, world.Coord{X: s.X, Y: s.Y}); err != nil {
			return nil, fmt.Errorf("map %s: %w", mapID, err)
		}
		if err := units.Add(u); err != nil {
			return nil, err
		}
	}

	byNumber := make(map[int]Player, len(players))
	for _, p := range players {
		byNumber[p.Number()] = p
	}
	ordered := make([]Player, 0, len(def.Players))
	for _, pd := range def.Players {
		p, ok := byNumber[pd.Number]
		if !ok {
			return nil, fmt.Errorf("map %s: no controller for player %d", mapID, pd.Number)
		}
		ordered = append(ordered, p)
	}
	if len(ordered) != len(players) {
		return nil, fmt.Errorf("map %s has %d players, got %d controllers", mapID, len(ordered), len(players))
	}

	b, err := NewBoard(grid, units, ordered, cfg)
	if err != nil {
		return nil, err
	}
	for _, pd := range def.Players {
		b.sides[pd.Number] = pd
	}
	return b, nil
}
