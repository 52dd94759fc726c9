package world

import "fmt"

// Coord is a grid position. X grows to the right, Y grows downwards.
type Coord struct {
	X, Y int
}

// String returns the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c shifted by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Distance returns the Manhattan distance between c and o.
func (c Coord) Distance(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Neighbors returns the four orthogonal neighbours in N, E, S, W order.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		{c.X, c.Y - 1},
		{c.X + 1, c.Y},
		{c.X, c.Y + 1},
		{c.X - 1, c.Y},
	}
}

// CoordSet is an unordered set of coordinates.
type CoordSet map[Coord]struct{}

// NewCoordSet builds a set from coords.
func NewCoordSet(coords []Coord) CoordSet {
	s := make(CoordSet, len(coords))
	for _, c := range coords {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether c is in the set.
func (s CoordSet) Contains(c Coord) bool {
	_, ok := s[c]
	return ok
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
