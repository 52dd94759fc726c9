package world

import "container/heap"

// FindPath finds the cheapest path from start to dest using A* with a
// Manhattan heuristic, considering only tiles in reachable. The returned
// path includes both ends. It is nil when dest is not in reachable or cannot
// be connected to start; a path from a tile to itself is just that tile.
func FindPath(g *Grid, start, dest Coord, reachable []Coord) []Coord {
	if start == dest {
		return []Coord{start}
	}
	allowed := NewCoordSet(reachable)
	if !allowed.Contains(dest) {
		return nil
	}

	best := map[Coord]int{start: 0}
	parent := make(map[Coord]Coord)
	closed := make(CoordSet)

	open := &nodeHeap{}
	seq := 0
	heap.Push(open, &pathNode{pos: start, f: start.Distance(dest)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if closed.Contains(cur.pos) {
			continue
		}
		if cur.pos == dest {
			return buildPath(parent, start, dest)
		}
		closed[cur.pos] = struct{}{}

		for _, n := range cur.pos.Neighbors() {
			if !allowed.Contains(n) || closed.Contains(n) {
				continue
			}
			t := g.Tile(n)
			if t == nil {
				continue
			}
			cost := cur.g + t.MovementCost
			if prev, ok := best[n]; ok && prev <= cost {
				continue
			}
			best[n] = cost
			parent[n] = cur.pos
			seq++
			heap.Push(open, &pathNode{pos: n, g: cost, f: cost + n.Distance(dest), seq: seq})
		}
	}
	return nil
}

// PathCost returns the movement points spent walking path, not counting the
// starting tile.
func PathCost(g *Grid, path []Coord) int {
	total := 0
	for i := 1; i < len(path); i++ {
		if t := g.Tile(path[i]); t != nil {
			total += t.MovementCost
		}
	}
	return total
}

func buildPath(parent map[Coord]Coord, start, dest Coord) []Coord {
	path := []Coord{dest}
	for c := dest; c != start; {
		c = parent[c]
		path = append(path, c)
	}
	// Reverse (built backward from dest)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathNode is an open-list entry. seq breaks f-cost ties by insertion order
// so searches are deterministic.
type pathNode struct {
	pos Coord
	g   int
	f   int
	seq int
}

// nodeHeap implements container/heap as a min-heap by f-cost, then seq.
type nodeHeap []*pathNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*pathNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return node
}
