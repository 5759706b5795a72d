package pathfind

import "haulcity/pkg/engine/world"

// Stage identifies the checkpoint a snapshot was taken at
type Stage int

const (
	// StageStart fires once before the first propagation round.
	StageStart Stage = iota
	// StageRound fires after each committed round when round snapshots are enabled.
	StageRound
	// StageDone fires once after the search, successful or not.
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageRound:
		return "round"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the search state. Slices are row-major and
// owned by the receiver.
type Snapshot struct {
	Stage Stage
	Round int

	Rows, Cols  int
	Start, Goal world.Point

	Cells    []int
	Cost     []int
	Done     []bool
	Barrier  []bool
	Room     []bool
	Entrance []bool
	Occupied []bool

	// Route is set on StageDone when a path was found
	Route []world.Point
	Err   error
}

// At returns the cost at p, or Unreached outside the grid
func (s Snapshot) At(p world.Point) int {
	if p.Row < 0 || p.Col < 0 || p.Row >= s.Rows || p.Col >= s.Cols {
		return Unreached
	}
	return s.Cost[p.Row*s.Cols+p.Col]
}

// IsDone reports whether p was finalized when the snapshot was taken
func (s Snapshot) IsDone(p world.Point) bool {
	if p.Row < 0 || p.Col < 0 || p.Row >= s.Rows || p.Col >= s.Cols {
		return false
	}
	return s.Done[p.Row*s.Cols+p.Col]
}

// Observer receives search snapshots. It is never consulted for control
// decisions; a slow observer only slows the search down.
type Observer interface {
	Observe(s Snapshot)
}

// ObserverFunc adapts a plain function to Observer
type ObserverFunc func(s Snapshot)

// Observe calls f(s)
func (f ObserverFunc) Observe(s Snapshot) { f(s) }

// Observers fans a snapshot out to several observers in order
type Observers []Observer

// Observe forwards s to every observer
func (o Observers) Observe(s Snapshot) {
	for _, obs := range o {
		if obs != nil {
			obs.Observe(s)
		}
	}
}
