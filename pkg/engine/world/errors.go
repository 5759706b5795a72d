package world

import "errors"

var (
	// ErrInvalidConfiguration indicates dimensions or generator parameters that cannot produce a map.
	ErrInvalidConfiguration = errors.New("world: invalid configuration")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("world: coordinate out of bounds")
	// ErrNoPassableCell indicates a placement was requested on a grid with no free cell.
	ErrNoPassableCell = errors.New("world: no passable cell")
	// ErrInvariant indicates a generated grid violates one of the map invariants.
	ErrInvariant = errors.New("world: grid invariant violated")
)
