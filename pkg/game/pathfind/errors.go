package pathfind

import "errors"

var (
	// ErrNoPathFound is returned when propagation stalls or runs out of rounds
	// before the goal is finalized.
	ErrNoPathFound = errors.New("pathfind: no path found")
	// ErrBrokenCostField is returned when the backtrace cannot find a
	// predecessor; it indicates a bug, not a property of the map.
	ErrBrokenCostField = errors.New("pathfind: cost field has no predecessor")
)
