package world

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds   = errors.New("coordinate out of bounds")
	ErrImpassable    = errors.New("tile is impassable")
	ErrOccupied      = errors.New("tile is occupied")
	ErrUnknownUnit   = errors.New("unit is not on the grid")
	ErrAlreadyPlaced = errors.New("unit is already on the grid")
)

// Grid is the battle map. Tiles are stored row-major; occupancy is kept on
// the tiles and mirrored in an index from unit to position, and both are
// always updated together.
type Grid struct {
	Width     int
	Height    int
	tiles     []Tile
	positions map[UnitID]Coord
}

// NewGrid creates a grid of the given size covered in plain terrain.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:     width,
		Height:    height,
		tiles:     make([]Tile, width*height),
		positions: make(map[UnitID]Coord),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos := Coord{x, y}
			g.tiles[g.index(pos)] = newTile(pos, TerrainPlain)
		}
	}
	return g
}

// ParseGrid builds a grid from rows of terrain runes, one rune per tile.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New("map has no rows")
	}
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, errors.New("map has an empty first row")
	}

	g := NewGrid(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			t := Terrain(r)
			if !t.Known() {
				return nil, fmt.Errorf("unknown terrain %q at (%d,%d)", r, x, y)
			}
			pos := Coord{x, y}
			g.tiles[g.index(pos)] = newTile(pos, t)
		}
	}
	return g, nil
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.Width + c.X
}

// InBounds returns true if c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Tile returns the tile at c, or nil when c is off the grid.
func (g *Grid) Tile(c Coord) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	return &g.tiles[g.index(c)]
}

// Tiles returns every tile in row-major order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, len(g.tiles))
	for i := range g.tiles {
		out[i] = &g.tiles[i]
	}
	return out
}

// IsPassable returns true if the terrain at c can be walked on.
func (g *Grid) IsPassable(c Coord) bool {
	t := g.Tile(c)
	return t != nil && !t.Impassable
}

// Occupant returns the unit standing on c, or NoUnit.
func (g *Grid) Occupant(c Coord) UnitID {
	t := g.Tile(c)
	if t == nil {
		return NoUnit
	}
	return t.Occupant
}

// Position returns where unit stands.
func (g *Grid) Position(unit UnitID) (Coord, bool) {
	c, ok := g.positions[unit]
	return c, ok
}

// Place puts a unit that is not yet on the grid onto c.
func (g *Grid) Place(unit UnitID, c Coord) error {
	if _, ok := g.positions[unit]; ok {
		return fmt.Errorf("place unit %d: %w", unit, ErrAlreadyPlaced)
	}
	if err := g.checkEnterable(unit, c); err != nil {
		return fmt.Errorf("place unit %d at %v: %w", unit, c, err)
	}
	g.tiles[g.index(c)].Occupant = unit
	g.positions[unit] = c
	return nil
}

// Move relocates a unit. Moving onto its own tile is a no-op.
func (g *Grid) Move(unit UnitID, to Coord) error {
	from, ok := g.positions[unit]
	if !ok {
		return fmt.Errorf("move unit %d: %w", unit, ErrUnknownUnit)
	}
	if from == to {
		return nil
	}
	if err := g.checkEnterable(unit, to); err != nil {
		return fmt.Errorf("move unit %d to %v: %w", unit, to, err)
	}
	g.tiles[g.index(from)].Occupant = NoUnit
	g.tiles[g.index(to)].Occupant = unit
	g.positions[unit] = to
	return nil
}

// Remove takes a unit off the grid and unblocks its tile.
func (g *Grid) Remove(unit UnitID) error {
	c, ok := g.positions[unit]
	if !ok {
		return fmt.Errorf("remove unit %d: %w", unit, ErrUnknownUnit)
	}
	g.tiles[g.index(c)].Occupant = NoUnit
	delete(g.positions, unit)
	return nil
}

func (g *Grid) checkEnterable(unit UnitID, c Coord) error {
	t := g.Tile(c)
	switch {
	case t == nil:
		return ErrOutOfBounds
	case t.Impassable:
		return ErrImpassable
	case t.Occupant != NoUnit && t.Occupant != unit:
		return ErrOccupied
	}
	return nil
}
