// Package world provides the battle grid, range queries and pathfinding.
package world

// Terrain represents the ground a tile is made of.
type Terrain rune

const (
	// TerrainPlain is open ground.
	TerrainPlain Terrain = '.'
	// TerrainForest slows movement and grants cover.
	TerrainForest Terrain = 'T'
	// TerrainFort is a fortified tile with strong defensive bonuses.
	TerrainFort Terrain = 'F'
	// TerrainMountain is slow to climb and hard to hit units on.
	TerrainMountain Terrain = '^'
	// TerrainWater cannot be entered.
	TerrainWater Terrain = '~'
	// TerrainWall cannot be entered.
	TerrainWall Terrain = '#'
)

type terrainInfo struct {
	cost    int
	defense int
	avoid   int
	blocked bool
}

var terrains = map[Terrain]terrainInfo{
	TerrainPlain:    {cost: 1},
	TerrainForest:   {cost: 2, defense: 1, avoid: 20},
	TerrainFort:     {cost: 2, defense: 2, avoid: 20},
	TerrainMountain: {cost: 3, defense: 2, avoid: 30},
	TerrainWater:    {cost: 1, blocked: true},
	TerrainWall:     {cost: 1, blocked: true},
}

// Known returns true if the rune is a terrain the grid understands.
func (t Terrain) Known() bool {
	_, ok := terrains[t]
	return ok
}

// IsPassable returns true if the terrain can be walked on.
func (t Terrain) IsPassable() bool {
	return !terrains[t].blocked
}

// Rune returns the terrain's display character.
func (t Terrain) Rune() rune {
	return rune(t)
}

// String returns a human-readable terrain name.
func (t Terrain) String() string {
	switch t {
	case TerrainPlain:
		return "plain"
	case TerrainForest:
		return "forest"
	case TerrainFort:
		return "fort"
	case TerrainMountain:
		return "mountain"
	case TerrainWater:
		return "water"
	case TerrainWall:
		return "wall"
	default:
		return "unknown"
	}
}

// UnitID identifies a unit on the grid. The zero value means "no unit".
type UnitID int

// NoUnit is the occupant of an empty tile.
const NoUnit UnitID = 0

// Tile is a single grid cell.
type Tile struct {
	Pos          Coord
	Terrain      Terrain
	MovementCost int  // Movement points spent to enter the tile
	Impassable   bool // Terrain that no unit may enter
	DefenseBoost int
	AvoidBoost   int
	Occupant     UnitID
}

func newTile(pos Coord, t Terrain) Tile {
	info := terrains[t]
	return Tile{
		Pos:          pos,
		Terrain:      t,
		MovementCost: info.cost,
		Impassable:   info.blocked,
		DefenseBoost: info.defense,
		AvoidBoost:   info.avoid,
	}
}

// IsBlocked returns true if a unit other than the occupant cannot enter the tile.
func (t *Tile) IsBlocked() bool {
	return t.Impassable || t.Occupant != NoUnit
}

// IsMovableFor returns true if unit may stand on or pass through the tile.
func (t *Tile) IsMovableFor(unit UnitID) bool {
	if t.Impassable {
		return false
	}
	return t.Occupant == NoUnit || t.Occupant == unit
}
