package world

import "container/heap"

// TilesInRange returns every tile within r Manhattan steps of origin,
// ignoring terrain and occupancy, in breadth-first discovery order.
// A range of 0 yields only origin.
func TilesInRange(g *Grid, origin Coord, r int) []Coord {
	if r < 0 || !g.InBounds(origin) {
		return nil
	}

	out := []Coord{origin}
	seen := CoordSet{origin: {}}
	frontier := []Coord{origin}

	for step := 0; step < r && len(frontier) > 0; step++ {
		var next []Coord
		for _, c := range frontier {
			for _, n := range c.Neighbors() {
				if !g.InBounds(n) || seen.Contains(n) {
					continue
				}
				seen[n] = struct{}{}
				out = append(out, n)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return out
}

// TilesInMoveRange returns the candidates the unit standing on origin can
// reach by spending at most movement points. Paths may cross the mover's own
// tile but never impassable terrain or tiles held by other units. Candidate
// order is preserved.
func TilesInMoveRange(g *Grid, origin Coord, movement int, candidates []Coord) []Coord {
	costs := PathCosts(g, origin, movement)
	out := make([]Coord, 0, len(costs))
	for _, c := range candidates {
		if _, ok := costs[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// TilesInAttackRange returns the tiles within attackRange of any destination,
// excluding the destinations themselves: what a unit could strike after
// moving without moving any further.
func TilesInAttackRange(g *Grid, destinations []Coord, attackRange int) []Coord {
	dests := NewCoordSet(destinations)
	seen := make(CoordSet)
	var out []Coord
	for _, d := range destinations {
		for _, c := range TilesInRange(g, d, attackRange) {
			if dests.Contains(c) || seen.Contains(c) {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// PathCosts runs a uniform-cost search from origin and returns the cheapest
// cost of every tile reachable within budget. The unit standing on origin is
// treated as the mover.
func PathCosts(g *Grid, origin Coord, budget int) map[Coord]int {
	start := g.Tile(origin)
	if start == nil || budget < 0 {
		return map[Coord]int{}
	}
	mover := start.Occupant

	costs := map[Coord]int{origin: 0}
	open := &nodeHeap{}
	seq := 0
	heap.Push(open, &pathNode{pos: origin})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if cur.g > costs[cur.pos] {
			continue // stale entry
		}
		for _, n := range cur.pos.Neighbors() {
			t := g.Tile(n)
			if t == nil || !t.IsMovableFor(mover) {
				continue
			}
			cost := cur.g + t.MovementCost
			if cost > budget {
				continue
			}
			if prev, ok := costs[n]; ok && prev <= cost {
				continue
			}
			costs[n] = cost
			seq++
			heap.Push(open, &pathNode{pos: n, g: cost, f: cost, seq: seq})
		}
	}
	return costs
}
