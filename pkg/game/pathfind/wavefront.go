// Package pathfind computes shortest routes over a city grid by wavefront
// propagation: costs spread from the start one ring per round until the goal
// is finalized, then the route is read back from the cost field.
//
// Two rules make this more than a plain BFS. Walls and occupied cells form a
// barrier that never finalizes (the start and goal cells are exempt). Room
// entrances are one-way: an entrance cannot be finalized once any finalized
// neighbour of it lies outside the room, so the wave leaves rooms through
// their entrances but never enters through them.
package pathfind

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"haulcity/pkg/engine/world"
)

// Unreached is the cost of a cell the wave has not finalized
const Unreached = math.MaxInt32

// Result holds a found route and the cost field that produced it
type Result struct {
	Route  []world.Point // start to goal, inclusive
	Rounds int

	rows, cols int
	cost       []int
}

// Cost returns the number of steps from start to goal
func (r *Result) Cost() int {
	return len(r.Route) - 1
}

// CostAt returns the finalized cost of p, or Unreached
func (r *Result) CostAt(p world.Point) int {
	if p.Row < 0 || p.Col < 0 || p.Row >= r.rows || p.Col >= r.cols {
		return Unreached
	}
	return r.cost[p.Row*r.cols+p.Col]
}

// search is the state of one FindPath call
type search struct {
	g          *world.Grid
	rows, cols int
	start      int
	goal       int

	cost     []int
	done     []bool
	barrier  []bool
	room     []bool
	gate     []bool
	occupied []bool

	opts options
	log  logrus.FieldLogger
}

// FindPath returns the shortest route from start to goal. Occupancy is read
// once when the search starts; later changes to the grid do not affect it.
func FindPath(g *world.Grid, start, goal world.Point, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	for _, p := range []world.Point{start, goal} {
		if !g.Contains(p) {
			return nil, fmt.Errorf("find path: endpoint (%s): %w", p, world.ErrOutOfBounds)
		}
	}

	s := newSearch(g, start, goal, o)
	s.log.Debug("wavefront search started")
	s.notify(StageStart, 0, nil, nil)

	rounds, err := s.propagate()
	if err != nil {
		s.log.WithField("rounds", rounds).WithError(err).Debug("wavefront search failed")
		s.notify(StageDone, rounds, nil, err)
		return nil, err
	}

	route, err := s.backtrace()
	if err != nil {
		s.notify(StageDone, rounds, nil, err)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"rounds": rounds,
		"cost":   len(route) - 1,
	}).Debug("wavefront search finished")
	s.notify(StageDone, rounds, route, nil)

	return &Result{
		Route:  route,
		Rounds: rounds,
		rows:   s.rows,
		cols:   s.cols,
		cost:   append([]int(nil), s.cost...),
	}, nil
}

func newSearch(g *world.Grid, start, goal world.Point, o options) *search {
	rows, cols := g.Rows(), g.Cols()
	n := rows * cols
	s := &search{
		g:       g,
		rows:    rows,
		cols:    cols,
		start:   start.Row*cols + start.Col,
		goal:    goal.Row*cols + goal.Col,
		cost:    make([]int, n),
		done:    make([]bool, n),
		barrier: make([]bool, n),
		room:    make([]bool, n),
		gate:    make([]bool, n),
		opts:    o,
		log: o.logger.WithFields(logrus.Fields{
			"start": start.String(),
			"goal":  goal.String(),
		}),
	}

	s.occupied = g.OccupancySnapshot()
	for i := range s.cost {
		p := g.PointAt(i)
		s.cost[i] = Unreached
		s.barrier[i] = g.Code(p) == world.Wall || s.occupied[i]
		s.room[i] = g.IsRoom(p)
		s.gate[i] = g.IsEntrance(p)
	}
	s.barrier[s.start] = false
	s.barrier[s.goal] = false

	s.cost[s.start] = 0
	s.done[s.start] = true
	return s
}

// neighbours appends the in-bounds 4-neighbours of i to buf
func (s *search) neighbours(i int, buf []int) []int {
	buf = buf[:0]
	row, col := i/s.cols, i%s.cols
	if row > 0 {
		buf = append(buf, i-s.cols)
	}
	if row < s.rows-1 {
		buf = append(buf, i+s.cols)
	}
	if col > 0 {
		buf = append(buf, i-1)
	}
	if col < s.cols-1 {
		buf = append(buf, i+1)
	}
	return buf
}

// propagate runs rounds until the goal is done. It returns the number of
// rounds run.
func (s *search) propagate() (int, error) {
	maxRounds := s.opts.maxRounds
	if maxRounds <= 0 {
		maxRounds = s.rows * s.cols
	}

	type step struct {
		cell int
		cost int
	}
	var (
		nbuf    = make([]int, 0, 4)
		pending []step
	)

	for round := 1; !s.done[s.goal]; round++ {
		if err := s.opts.ctx.Err(); err != nil {
			return round - 1, fmt.Errorf("find path: %w", err)
		}
		if round > maxRounds {
			return maxRounds, fmt.Errorf("%w: gave up after %d rounds", ErrNoPathFound, maxRounds)
		}

		pending = pending[:0]
		for i := range s.done {
			if s.done[i] {
				continue
			}
			best := Unreached
			blocked := false
			for _, n := range s.neighbours(i, nbuf) {
				if !s.done[n] {
					continue
				}
				if s.gate[i] && !s.room[n] {
					blocked = true
				}
				if s.cost[n] < best {
					best = s.cost[n]
				}
			}
			if best == Unreached {
				continue
			}
			if blocked || s.barrier[i] {
				if blocked {
					s.log.WithFields(logrus.Fields{
						"round": round,
						"row":   i / s.cols,
						"col":   i % s.cols,
					}).Debug("entrance closed to corridor approach")
				}
				s.cost[i] = Unreached
				continue
			}
			pending = append(pending, step{cell: i, cost: best + 1})
		}

		if len(pending) == 0 {
			return round, fmt.Errorf("%w: wave stalled after %d rounds", ErrNoPathFound, round-1)
		}
		for _, st := range pending {
			s.cost[st.cell] = st.cost
			s.done[st.cell] = true
		}

		if s.opts.roundSnapshots {
			s.notify(StageRound, round, nil, nil)
		}
		if s.done[s.goal] {
			return round, nil
		}
	}
	return 0, nil
}

// backtrace walks from the goal down the cost field, taking the first
// neighbour in up, down, left, right order whose cost is one less.
func (s *search) backtrace() ([]world.Point, error) {
	cur := s.g.PointAt(s.goal)
	route := []world.Point{cur}
	for c := s.cost[s.goal]; c > 0; c-- {
		found := false
		for _, d := range world.BacktraceOrder() {
			n := cur.Step(d)
			if !s.g.Contains(n) {
				continue
			}
			i := n.Row*s.cols + n.Col
			if s.done[i] && s.cost[i] == c-1 {
				cur = n
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w at (%s), cost %d", ErrBrokenCostField, cur, c)
		}
		route = append(route, cur)
	}

	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route, nil
}

func (s *search) notify(stage Stage, round int, route []world.Point, err error) {
	if s.opts.observer == nil {
		return
	}
	cells := make([]int, 0, s.rows*s.cols)
	s.g.ForEachCell(func(_ world.Point, code int) {
		cells = append(cells, code)
	})
	s.opts.observer.Observe(Snapshot{
		Stage:    stage,
		Round:    round,
		Rows:     s.rows,
		Cols:     s.cols,
		Start:    s.g.PointAt(s.start),
		Goal:     s.g.PointAt(s.goal),
		Cells:    cells,
		Cost:     append([]int(nil), s.cost...),
		Done:     append([]bool(nil), s.done...),
		Barrier:  append([]bool(nil), s.barrier...),
		Room:     append([]bool(nil), s.room...),
		Entrance: append([]bool(nil), s.gate...),
		Occupied: append([]bool(nil), s.occupied...),
		Route:    append([]world.Point(nil), route...),
		Err:      err,
	})
}
