package world

import "fmt"

// PlacementAttemptsPerCell bounds rejection sampling: a placement gives up
// after this many draws per grid cell.
const PlacementAttemptsPerCell = 64

// Rand is the random source used for placement
type Rand interface {
	Intn(n int) int
}

// Start returns the start marker position, if set
func (g *Grid) Start() (Point, bool) {
	if g.start == nil {
		return Point{}, false
	}
	return *g.start, true
}

// Goal returns the goal marker position, if set
func (g *Grid) Goal() (Point, bool) {
	if g.goal == nil {
		return Point{}, false
	}
	return *g.goal, true
}

// SetStart clears any previous start marker and places a new one on a random
// free cell
func (g *Grid) SetStart(rng Rand) (Point, error) {
	g.clearMarker(&g.start)
	p, err := g.sampleFree(rng)
	if err != nil {
		return Point{}, fmt.Errorf("set start: %w", err)
	}
	g.cells[p.Row*g.cols+p.Col] = Start
	g.start = &p
	return p, nil
}

// SetGoal clears any previous goal marker and places a new one on a random
// free cell
func (g *Grid) SetGoal(rng Rand) (Point, error) {
	g.clearMarker(&g.goal)
	p, err := g.sampleFree(rng)
	if err != nil {
		return Point{}, fmt.Errorf("set goal: %w", err)
	}
	g.cells[p.Row*g.cols+p.Col] = Goal
	g.goal = &p
	return p, nil
}

// SetStartAt places the start marker on p, which must be free
func (g *Grid) SetStartAt(p Point) error {
	return g.placeAt(&g.start, p, Start)
}

// SetGoalAt places the goal marker on p, which must be free
func (g *Grid) SetGoalAt(p Point) error {
	return g.placeAt(&g.goal, p, Goal)
}

// FreeCells draws n distinct free cells uniformly at random
func (g *Grid) FreeCells(rng Rand, n int) ([]Point, error) {
	var free []Point
	g.ForEachCell(func(p Point, code int) {
		if code == Passable {
			free = append(free, p)
		}
	})
	if n > len(free) {
		return nil, fmt.Errorf("%w: want %d free cells, grid has %d", ErrNoPassableCell, n, len(free))
	}
	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(free)-i)
		free[i], free[j] = free[j], free[i]
	}
	return free[:n], nil
}

func (g *Grid) placeAt(marker **Point, p Point, code int) error {
	c, err := g.At(p)
	if err != nil {
		return err
	}
	if *marker != nil && **marker == p {
		return nil
	}
	if c != Passable {
		return fmt.Errorf("%w: (%s) holds code %d", ErrNoPassableCell, p, c)
	}
	g.clearMarker(marker)
	g.cells[p.Row*g.cols+p.Col] = code
	*marker = &p
	return nil
}

func (g *Grid) clearMarker(marker **Point) {
	if *marker == nil {
		return
	}
	p := **marker
	g.cells[p.Row*g.cols+p.Col] = Passable
	*marker = nil
}

// sampleFree draws uniformly over the whole grid and rejects anything that
// is not a plain passable cell.
func (g *Grid) sampleFree(rng Rand) (Point, error) {
	if g.CountCode(Passable) == 0 {
		return Point{}, ErrNoPassableCell
	}
	attempts := PlacementAttemptsPerCell * g.Area()
	for i := 0; i < attempts; i++ {
		p := Point{Row: rng.Intn(g.rows), Col: rng.Intn(g.cols)}
		if g.cells[p.Row*g.cols+p.Col] == Passable {
			return p, nil
		}
	}
	return Point{}, fmt.Errorf("%w: gave up after %d draws", ErrNoPassableCell, attempts)
}
