package generator

import (
	"fmt"

	"github.com/zyedidia/generic/queue"
	"github.com/zyedidia/generic/stack"

	"haulcity/pkg/engine/world"
)

// ResumePolicy picks where carving resumes once the current point is boxed in
type ResumePolicy int

const (
	// ResumeOldest resumes from the oldest carved cell still queued (FIFO).
	// This yields broad, tree-like branching.
	ResumeOldest ResumePolicy = iota
	// ResumeNewest resumes from the most recently carved cell (LIFO), the
	// classic recursive backtracker with long winding corridors.
	ResumeNewest
)

// digDirections is the direction table indexed by the shuffled permutation:
// left, down, right, up.
var digDirections = [4]world.Direction{world.West, world.South, world.East, world.North}

// DiggingGenerator carves a maze out of solid rock, two cells at a time,
// from a random odd/odd seed.
type DiggingGenerator struct {
	Policy ResumePolicy
}

// Name returns the name of this generator
func (d *DiggingGenerator) Name() string {
	if d.Policy == ResumeNewest {
		return "digging-lifo"
	}
	return "digging"
}

// frontier holds carved cells that carving may resume from
type frontier interface {
	push(p world.Point)
	pop() world.Point
	empty() bool
}

type fifoFrontier struct{ q *queue.Queue[world.Point] }

func (f fifoFrontier) push(p world.Point) { f.q.Enqueue(p) }
func (f fifoFrontier) pop() world.Point   { return f.q.Dequeue() }
func (f fifoFrontier) empty() bool        { return f.q.Empty() }

type lifoFrontier struct{ s *stack.Stack[world.Point] }

func (f lifoFrontier) push(p world.Point) { f.s.Push(p) }
func (f lifoFrontier) pop() world.Point   { return f.s.Pop() }
func (f lifoFrontier) empty() bool        { return f.s.Size() == 0 }

func (d *DiggingGenerator) newFrontier() frontier {
	if d.Policy == ResumeNewest {
		return lifoFrontier{s: stack.New[world.Point]()}
	}
	return fifoFrontier{q: queue.New[world.Point]()}
}

// Generate fills the interior with rock, keeps a one-cell open margin while
// carving so the digger can never break out, then walls the border.
func (d *DiggingGenerator) Generate(g *world.Grid, rng Rand) error {
	rows, cols := g.Rows(), g.Cols()
	seedRows := oddRange(3, rows-3)
	seedCols := oddRange(3, cols-3)
	if len(seedRows) == 0 || len(seedCols) == 0 {
		return fmt.Errorf("%w: digging needs at least 6x6 cells, got %dx%d", world.ErrInvalidConfiguration, rows, cols)
	}

	g.Reset(world.Wall)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if g.IsOnPerimeter(row, col) {
				_ = g.Set(world.Pt(row, col), world.Passable)
			}
		}
	}

	seed := world.Pt(seedRows[rng.Intn(len(seedRows))], seedCols[rng.Intn(len(seedCols))])
	if err := g.Set(seed, world.Passable); err != nil {
		return err
	}

	carved := d.newFrontier()
	carved.push(seed)
	current := seed

	for !carved.empty() {
		dug := false
		for _, k := range rng.Perm(len(digDirections)) {
			dir := digDirections[k]
			next := current.Step(dir)
			beyond := next.Step(dir)
			if !isRock(g, next) || !isRock(g, beyond) {
				continue
			}
			if err := g.Set(next, world.Passable); err != nil {
				return err
			}
			if err := g.Set(beyond, world.Passable); err != nil {
				return err
			}
			carved.push(beyond)
			current = beyond
			dug = true
			break
		}
		if !dug {
			current = carved.pop()
		}
	}

	g.WallBorder()
	return nil
}

// isRock reports whether p is inside the grid and still uncarved
func isRock(g *world.Grid, p world.Point) bool {
	code, err := g.At(p)
	return err == nil && code == world.Wall
}

// oddRange returns the odd integers in [lo, hi]
func oddRange(lo, hi int) []int {
	var out []int
	for v := lo; v <= hi; v++ {
		if v%2 == 1 {
			out = append(out, v)
		}
	}
	return out
}
