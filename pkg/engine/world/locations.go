package world

import (
	"fmt"
	"sort"
)

// LastLocationID is the largest id in the location pool
const LastLocationID = 99

// LocationIDFor returns the id assigned to the n-th room (0-based), cycling
// through the pool when it runs out
func LocationIDFor(n int) int {
	pool := LastLocationID - FirstLocationID + 1
	return FirstLocationID + n%pool
}

// AssignLocation writes id into the cell at p and registers it. A recycled id
// is re-pointed at p.
func (g *Grid) AssignLocation(id int, p Point) error {
	if !IsLocation(id) {
		return fmt.Errorf("%w: location id %d below %d", ErrInvalidConfiguration, id, FirstLocationID)
	}
	if err := g.Set(p, id); err != nil {
		return err
	}
	g.locations[id] = p
	return nil
}

// Location returns the coordinate registered for id
func (g *Grid) Location(id int) (Point, bool) {
	p, ok := g.locations[id]
	return p, ok
}

// Locations returns a copy of the id → coordinate registry
func (g *Grid) Locations() map[int]Point {
	return g.filterLocations(IsLocation)
}

// Dumpings returns the dumping sites (even ids)
func (g *Grid) Dumpings() map[int]Point {
	return g.filterLocations(IsDumping)
}

// Loadings returns the loading sites (odd ids)
func (g *Grid) Loadings() map[int]Point {
	return g.filterLocations(IsLoading)
}

// LocationIDsSorted returns the registered ids in ascending order
func (g *Grid) LocationIDsSorted() []int {
	ids := make([]int, 0, len(g.locations))
	for id := range g.locations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (g *Grid) filterLocations(keep func(int) bool) map[int]Point {
	out := make(map[int]Point)
	for id, p := range g.locations {
		if keep(id) {
			out[id] = p
		}
	}
	return out
}
