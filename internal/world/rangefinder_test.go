package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTilesInRangeZeroIsOwnTile(t *testing.T) {
	g := NewGrid(5, 5)
	assert.Equal(t, []Coord{{2, 2}}, TilesInRange(g, Coord{2, 2}, 0))
}

func TestTilesInRange(t *testing.T) {
	g := NewGrid(5, 5)

	got := TilesInRange(g, Coord{2, 2}, 1)
	assert.Equal(t, []Coord{{2, 2}, {2, 1}, {3, 2}, {2, 3}, {1, 2}}, got)

	assert.Len(t, TilesInRange(g, Coord{2, 2}, 2), 13)
	assert.Len(t, TilesInRange(g, Coord{0, 0}, 1), 3, "clipped at the corner")
	assert.Empty(t, TilesInRange(g, Coord{2, 2}, -1))
	assert.Empty(t, TilesInRange(g, Coord{9, 9}, 1))
}

func TestTilesInRangeIgnoresBlocking(t *testing.T) {
	g, err := ParseGrid([]string{".#."})
	require.NoError(t, err)
	require.NoError(t, g.Place(5, Coord{2, 0}))

	assert.Equal(t, []Coord{{0, 0}, {1, 0}, {2, 0}}, TilesInRange(g, Coord{0, 0}, 2))
}

func TestTilesInMoveRange(t *testing.T) {
	g := NewGrid(5, 5)
	require.NoError(t, g.Place(1, Coord{2, 2}))

	candidates := TilesInRange(g, Coord{2, 2}, 1)
	assert.Len(t, TilesInMoveRange(g, Coord{2, 2}, 1, candidates), 5, "own tile counts as reachable")

	require.NoError(t, g.Place(2, Coord{2, 1}))
	got := TilesInMoveRange(g, Coord{2, 2}, 1, candidates)
	assert.NotContains(t, got, Coord{2, 1}, "tile held by another unit")
	assert.Len(t, got, 4)
}

func TestTilesInMoveRangeRespectsTerrain(t *testing.T) {
	g, err := ParseGrid([]string{"..#.."})
	require.NoError(t, err)
	require.NoError(t, g.Place(1, Coord{0, 0}))

	got := TilesInMoveRange(g, Coord{0, 0}, 4, TilesInRange(g, Coord{0, 0}, 4))
	assert.Equal(t, []Coord{{0, 0}, {1, 0}}, got)

	g, err = ParseGrid([]string{".T."})
	require.NoError(t, err)
	require.NoError(t, g.Place(1, Coord{0, 0}))

	got = TilesInMoveRange(g, Coord{0, 0}, 2, TilesInRange(g, Coord{0, 0}, 2))
	assert.Equal(t, []Coord{{0, 0}, {1, 0}}, got, "forest costs 2, the tile past it 3")
}

func TestTilesInMoveRangeCannotPassThroughOthers(t *testing.T) {
	g := NewGrid(3, 1)
	require.NoError(t, g.Place(1, Coord{0, 0}))
	require.NoError(t, g.Place(2, Coord{1, 0}))

	got := TilesInMoveRange(g, Coord{0, 0}, 5, TilesInRange(g, Coord{0, 0}, 5))
	assert.Equal(t, []Coord{{0, 0}}, got)
}

func TestTilesInAttackRange(t *testing.T) {
	g := NewGrid(3, 1)

	assert.Equal(t, []Coord{{1, 0}}, TilesInAttackRange(g, []Coord{{0, 0}}, 1))
	assert.Equal(t, []Coord{{2, 0}}, TilesInAttackRange(g, []Coord{{0, 0}, {1, 0}}, 1))
	assert.Empty(t, TilesInAttackRange(g, []Coord{{0, 0}, {1, 0}, {2, 0}}, 1))
	assert.Empty(t, TilesInAttackRange(g, nil, 3))
}
