package pathfind

import (
	"fmt"

	"github.com/zyedidia/generic/queue"
	"github.com/zyedidia/generic/stack"

	"haulcity/pkg/engine/world"
)

// dfsOrder is the neighbour order SolveDFS explores in
var dfsOrder = []world.Direction{world.South, world.North, world.East, world.West}

func open(g *world.Grid, p, start, goal world.Point) bool {
	if !g.Contains(p) {
		return false
	}
	if p == start || p == goal {
		return true
	}
	return g.Code(p) != world.Wall && !g.IsOccupied(p)
}

// Distance returns the plain breadth-first step count from start to goal.
// It honours walls and occupancy but not the entrance rule, which makes it
// a lower bound on the wavefront cost and equal to it on maps without rooms.
func Distance(g *world.Grid, start, goal world.Point) (int, error) {
	if !g.Contains(start) || !g.Contains(goal) {
		return 0, fmt.Errorf("distance %s -> %s: %w", start, goal, world.ErrOutOfBounds)
	}
	dist := map[world.Point]int{start: 0}
	frontier := queue.New[world.Point]()
	frontier.Enqueue(start)
	for !frontier.Empty() {
		p := frontier.Dequeue()
		if p == goal {
			return dist[p], nil
		}
		for _, d := range world.AllDirections() {
			n := p.Step(d)
			if _, seen := dist[n]; seen || !open(g, n, start, goal) {
				continue
			}
			dist[n] = dist[p] + 1
			frontier.Enqueue(n)
		}
	}
	return 0, ErrNoPathFound
}

// SolveDFS returns some route from start to goal found by depth-first
// search. The route is simple but usually not the shortest.
func SolveDFS(g *world.Grid, start, goal world.Point) ([]world.Point, error) {
	if !g.Contains(start) || !g.Contains(goal) {
		return nil, fmt.Errorf("solve %s -> %s: %w", start, goal, world.ErrOutOfBounds)
	}
	parent := map[world.Point]world.Point{start: start}
	pending := stack.New[world.Point]()
	pending.Push(start)
	for pending.Size() > 0 {
		p := pending.Pop()
		if p == goal {
			route := []world.Point{p}
			for p != start {
				p = parent[p]
				route = append(route, p)
			}
			for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
				route[i], route[j] = route[j], route[i]
			}
			return route, nil
		}
		// pushed in reverse so the first direction is explored first
		for i := len(dfsOrder) - 1; i >= 0; i-- {
			n := p.Step(dfsOrder[i])
			if _, seen := parent[n]; seen || !open(g, n, start, goal) {
				continue
			}
			parent[n] = p
			pending.Push(n)
		}
	}
	return nil, ErrNoPathFound
}
