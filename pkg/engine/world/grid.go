package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Grid represents the city map: a rows×cols array of cell codes plus the
// overlays that generators and the pathfinder share. The grid owns its
// overlays; nothing outside aliases them.
type Grid struct {
	rows int
	cols int

	cells     []int
	room      []bool
	occupancy []bool

	entrances     mapset.Set[Point]
	entranceOrder []Point

	locations map[int]Point

	start *Point
	goal  *Point
}

// NewGrid creates a new all-passable grid with the given dimensions
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrInvalidConfiguration, rows, cols)
	}
	g := &Grid{rows: rows, cols: cols}
	g.Reset(Passable)
	return g, nil
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Area returns rows×cols
func (g *Grid) Area() int {
	return g.rows * g.cols
}

// Reset fills every cell with code and discards all overlay state,
// markers and registered locations.
func (g *Grid) Reset(code int) {
	n := g.rows * g.cols
	g.cells = make([]int, n)
	g.room = make([]bool, n)
	g.occupancy = make([]bool, n)
	if code != 0 {
		for i := range g.cells {
			g.cells[i] = code
		}
	}
	g.entrances = mapset.New[Point]()
	g.entranceOrder = nil
	g.locations = make(map[int]Point)
	g.start = nil
	g.goal = nil
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Contains checks if p is within grid bounds
func (g *Grid) Contains(p Point) bool {
	return g.IsValidPosition(p.Row, p.Col)
}

// IsPlayablePosition checks if a position is inside the outer wall ring
func (g *Grid) IsPlayablePosition(row, col int) bool {
	return row >= 1 && row < g.rows-1 && col >= 1 && col < g.cols-1
}

// IsOnPerimeter checks if a position is on the edge of the grid
func (g *Grid) IsOnPerimeter(row, col int) bool {
	return g.IsValidPosition(row, col) && !g.IsPlayablePosition(row, col)
}

// Index returns the row-major offset of p
func (g *Grid) Index(p Point) (int, error) {
	if !g.Contains(p) {
		return 0, fmt.Errorf("%w: (%s) in %dx%d grid", ErrOutOfBounds, p, g.rows, g.cols)
	}
	return p.Row*g.cols + p.Col, nil
}

// PointAt converts a row-major offset back to a Point
func (g *Grid) PointAt(i int) Point {
	return Point{Row: i / g.cols, Col: i % g.cols}
}

// At returns the code stored at p
func (g *Grid) At(p Point) (int, error) {
	i, err := g.Index(p)
	if err != nil {
		return 0, err
	}
	return g.cells[i], nil
}

// Code returns the code at p, treating everything outside the grid as Wall
func (g *Grid) Code(p Point) int {
	if !g.Contains(p) {
		return Wall
	}
	return g.cells[p.Row*g.cols+p.Col]
}

// Set stores code at p
func (g *Grid) Set(p Point, code int) error {
	i, err := g.Index(p)
	if err != nil {
		return err
	}
	g.cells[i] = code
	if code == Wall {
		g.RemoveEntrance(p)
	}
	return nil
}

// Fill stores code in every cell of the half-open rectangle [r0,r1)×[c0,c1)
func (g *Grid) Fill(r0, c0, r1, c1, code int) error {
	if r0 < 0 || c0 < 0 || r1 > g.rows || c1 > g.cols {
		return fmt.Errorf("%w: rect [%d,%d)x[%d,%d) in %dx%d grid", ErrOutOfBounds, r0, r1, c0, c1, g.rows, g.cols)
	}
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			g.cells[row*g.cols+col] = code
		}
	}
	return nil
}

// WallBorder forces the outer ring of cells to Wall
func (g *Grid) WallBorder() {
	for col := 0; col < g.cols; col++ {
		g.cells[col] = Wall
		g.cells[(g.rows-1)*g.cols+col] = Wall
	}
	for row := 0; row < g.rows; row++ {
		g.cells[row*g.cols] = Wall
		g.cells[row*g.cols+g.cols-1] = Wall
	}
}

// IsPassable reports whether p is inside the grid and not a wall
func (g *Grid) IsPassable(p Point) bool {
	return g.Contains(p) && IsPassableCode(g.Code(p))
}

// IsFree reports whether p holds the plain Passable code (no marker, no location)
func (g *Grid) IsFree(p Point) bool {
	return g.Contains(p) && g.Code(p) == Passable
}

// IsRoom reports whether p lies inside a generated room
func (g *Grid) IsRoom(p Point) bool {
	return g.Contains(p) && g.room[p.Row*g.cols+p.Col]
}

// MarkAsRoom marks p as a room interior cell
func (g *Grid) MarkAsRoom(p Point) error {
	i, err := g.Index(p)
	if err != nil {
		return err
	}
	g.room[i] = true
	return nil
}

// IsOccupied reports whether a dynamic obstacle sits on p
func (g *Grid) IsOccupied(p Point) bool {
	return g.Contains(p) && g.occupancy[p.Row*g.cols+p.Col]
}

// SetOccupied records or clears a dynamic obstacle on p
func (g *Grid) SetOccupied(p Point, occupied bool) error {
	i, err := g.Index(p)
	if err != nil {
		return err
	}
	g.occupancy[i] = occupied
	return nil
}

// ClearOccupancy removes every dynamic obstacle
func (g *Grid) ClearOccupancy() {
	for i := range g.occupancy {
		g.occupancy[i] = false
	}
}

// OccupancySnapshot returns a copy of the occupancy overlay in row-major order
func (g *Grid) OccupancySnapshot() []bool {
	out := make([]bool, len(g.occupancy))
	copy(out, g.occupancy)
	return out
}

// AddEntrance records p as a room entrance. Adding the same point twice is a no-op.
func (g *Grid) AddEntrance(p Point) error {
	if !g.Contains(p) {
		return fmt.Errorf("%w: entrance (%s)", ErrOutOfBounds, p)
	}
	if g.entrances.Has(p) {
		return nil
	}
	g.entrances.Put(p)
	g.entranceOrder = append(g.entranceOrder, p)
	return nil
}

// RemoveEntrance forgets the entrance at p
func (g *Grid) RemoveEntrance(p Point) {
	if !g.entrances.Has(p) {
		return
	}
	g.entrances.Remove(p)
	for i, e := range g.entranceOrder {
		if e == p {
			g.entranceOrder = append(g.entranceOrder[:i], g.entranceOrder[i+1:]...)
			break
		}
	}
}

// IsEntrance reports whether p is a room entrance
func (g *Grid) IsEntrance(p Point) bool {
	return g.entrances.Has(p)
}

// Entrances returns the entrances in the order they were recorded
func (g *Grid) Entrances() []Point {
	out := make([]Point, len(g.entranceOrder))
	copy(out, g.entranceOrder)
	return out
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(p Point, code int)) {
	for i, code := range g.cells {
		fn(g.PointAt(i), code)
	}
}

// PassableCells returns every non-wall cell in row-major order
func (g *Grid) PassableCells() []Point {
	var out []Point
	g.ForEachCell(func(p Point, code int) {
		if IsPassableCode(code) {
			out = append(out, p)
		}
	})
	return out
}

// CountCode returns how many cells hold code
func (g *Grid) CountCode(code int) int {
	n := 0
	for _, c := range g.cells {
		if c == code {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid and all its overlays
func (g *Grid) Clone() *Grid {
	c := &Grid{
		rows:          g.rows,
		cols:          g.cols,
		cells:         append([]int(nil), g.cells...),
		room:          append([]bool(nil), g.room...),
		occupancy:     append([]bool(nil), g.occupancy...),
		entrances:     mapset.New[Point](),
		entranceOrder: append([]Point(nil), g.entranceOrder...),
		locations:     make(map[int]Point, len(g.locations)),
	}
	for _, e := range g.entranceOrder {
		c.entrances.Put(e)
	}
	for id, p := range g.locations {
		c.locations[id] = p
	}
	if g.start != nil {
		s := *g.start
		c.start = &s
	}
	if g.goal != nil {
		gl := *g.goal
		c.goal = &gl
	}
	return c
}

// Validate checks the invariants every generated grid must satisfy:
// walled perimeter, at most one start and goal marker, and entrances that
// sit on passable cells bordering exactly one room cell and at least one
// passable non-room cell.
func (g *Grid) Validate() error {
	for i, code := range g.cells {
		p := g.PointAt(i)
		if g.IsOnPerimeter(p.Row, p.Col) && code != Wall {
			return fmt.Errorf("%w: perimeter cell (%s) is not a wall", ErrInvariant, p)
		}
	}
	if n := g.CountCode(Start); n > 1 {
		return fmt.Errorf("%w: %d start markers", ErrInvariant, n)
	}
	if n := g.CountCode(Goal); n > 1 {
		return fmt.Errorf("%w: %d goal markers", ErrInvariant, n)
	}
	for _, e := range g.entranceOrder {
		if !g.IsPassable(e) {
			return fmt.Errorf("%w: entrance (%s) is not passable", ErrInvariant, e)
		}
		rooms, open := 0, 0
		for _, d := range AllDirections() {
			n := e.Step(d)
			if g.IsRoom(n) {
				rooms++
			} else if g.IsPassable(n) {
				open++
			}
		}
		if rooms != 1 || open < 1 {
			return fmt.Errorf("%w: entrance (%s) touches %d room and %d corridor cells", ErrInvariant, e, rooms, open)
		}
	}
	return nil
}
