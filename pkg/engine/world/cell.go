// Package world provides the 2D grid primitives shared by the map generators
// and the pathfinder: cell codes, the room/occupancy/entrance overlays and the
// location registry.
package world

import "fmt"

// Cell codes stored in the grid.
const (
	Passable = 0
	Wall     = 1
	Goal     = -1
	Start    = -2

	// FirstLocationID is the smallest code used for a location.
	FirstLocationID = 2
)

// Point is a (row, col) grid coordinate
type Point struct {
	Row int
	Col int
}

// Pt is shorthand for Point{Row: row, Col: col}
func Pt(row, col int) Point {
	return Point{Row: row, Col: col}
}

// String returns "row,col"
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Add returns p moved by the given row and column offsets
func (p Point) Add(rowDelta, colDelta int) Point {
	return Point{Row: p.Row + rowDelta, Col: p.Col + colDelta}
}

// Step returns the neighbouring point in direction d
func (p Point) Step(d Direction) Point {
	dr, dc := d.Delta()
	return p.Add(dr, dc)
}

// IsLocation reports whether code is a location id
func IsLocation(code int) bool {
	return code >= FirstLocationID
}

// IsDumping reports whether code is a dumping-site location id (even)
func IsDumping(code int) bool {
	return IsLocation(code) && code%2 == 0
}

// IsLoading reports whether code is a loading-site location id (odd)
func IsLoading(code int) bool {
	return IsLocation(code) && code%2 == 1
}

// IsPassableCode reports whether a truck may drive over a cell with this code.
// Only walls block; markers and locations are drivable.
func IsPassableCode(code int) bool {
	return code != Wall
}
