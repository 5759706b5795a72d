package generator

import (
	"strings"
	"testing"

	"haulcity/pkg/engine/world"
)

// scriptedRand replays fixed draws. Once a script runs dry Intn returns 0 and
// Perm returns the identity permutation.
type scriptedRand struct {
	ints  []int
	perms [][]int
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		panic("scripted draw out of range")
	}
	return v
}

func (s *scriptedRand) Perm(n int) []int {
	if len(s.perms) == 0 {
		p := make([]int, n)
		for i := range p {
			p[i] = i
		}
		return p
	}
	p := s.perms[0]
	s.perms = s.perms[1:]
	return p
}

func newGrid(t *testing.T, rows, cols int) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", rows, cols, err)
	}
	return g
}

// reachable returns every passable cell 4-connected to from
func reachable(g *world.Grid, from world.Point) map[world.Point]bool {
	seen := map[world.Point]bool{from: true}
	queue := []world.Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range world.AllDirections() {
			n := p.Step(d)
			if g.IsPassable(n) && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}

// assertSingleComponent fails unless every passable cell is reachable from the first one
func assertSingleComponent(t *testing.T, g *world.Grid) {
	t.Helper()
	cells := g.PassableCells()
	if len(cells) == 0 {
		t.Fatal("grid has no passable cells")
	}
	seen := reachable(g, cells[0])
	if len(seen) != len(cells) {
		t.Errorf("passable cells split: %d reachable of %d", len(seen), len(cells))
	}
}

func assertWalledBorder(t *testing.T, g *world.Grid) {
	t.Helper()
	g.ForEachCell(func(p world.Point, code int) {
		if g.IsOnPerimeter(p.Row, p.Col) && code != world.Wall {
			t.Errorf("border cell (%s) holds %d", p, code)
		}
	})
}

func render(g *world.Grid) string {
	var sb strings.Builder
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if g.Code(world.Pt(row, col)) == world.Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
