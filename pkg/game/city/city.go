// Package city ties a map generator, start/goal placement and the wavefront
// pathfinder together behind one object that owns the grid, the random
// source, the logger and the visualization observer.
package city

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"haulcity/pkg/engine/world"
	"haulcity/pkg/game/generator"
	"haulcity/pkg/game/pathfind"
)

// City is one map and everything needed to route across it. It is not safe
// for concurrent use.
type City struct {
	rows, cols int

	grid      *world.Grid
	layout    *generator.Layout
	generated string

	rng            generator.Rand
	log            logrus.FieldLogger
	observer       pathfind.Observer
	roundSnapshots bool
	maxRounds      int
}

// Option configures a City
type Option func(*City)

// WithSeed seeds a private math/rand source
func WithSeed(seed int64) Option {
	return func(c *City) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies the random source directly
func WithRand(rng generator.Rand) Option {
	return func(c *City) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger sets the logger for generation and search events
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *City) {
		if l != nil {
			c.log = l
		}
	}
}

// WithObserver attaches a visualization sink to every search
func WithObserver(o pathfind.Observer) Option {
	return func(c *City) { c.observer = o }
}

// WithRoundSnapshots shows the observer every propagation round
func WithRoundSnapshots(enabled bool) Option {
	return func(c *City) { c.roundSnapshots = enabled }
}

// WithMaxRounds caps search rounds; see pathfind.WithMaxRounds
func WithMaxRounds(n int) Option {
	return func(c *City) { c.maxRounds = n }
}

// New creates a city with an all-passable rows×cols map
func New(rows, cols int, opts ...Option) (*City, error) {
	g, err := world.NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &City{
		rows: rows,
		cols: cols,
		grid: g,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		log:  quiet,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate replaces the map with one built by gen. The new map is built on a
// fresh grid and only swapped in once it is complete and valid, so a failed
// generation leaves the previous map in place.
func (c *City) Generate(gen generator.GridGenerator) error {
	return c.swap(gen.Name(), func(g *world.Grid) (*generator.Layout, error) {
		return nil, gen.Generate(g, c.rng)
	})
}

// CreateStickDown replaces the map with a toppled-pillar maze
func (c *City) CreateStickDown() error {
	return c.Generate(generator.StickDown)
}

// CreateDigging replaces the map with a dug maze
func (c *City) CreateDigging() error {
	return c.Generate(generator.Digging)
}

// CreateDungeon replaces the map with rooms joined by corridors
func (c *City) CreateDungeon(cols, rows, corridorWidth int, minRatio, maxRatio float64) error {
	return c.CreateDungeonFrom(generator.DungeonConfig{
		Cols:          cols,
		Rows:          rows,
		CorridorWidth: corridorWidth,
		MinRoomRatio:  minRatio,
		MaxRoomRatio:  maxRatio,
	})
}

// CreateDungeonFrom is CreateDungeon taking a config struct
func (c *City) CreateDungeonFrom(cfg generator.DungeonConfig) error {
	gen := generator.NewDungeonGenerator(cfg)
	return c.swap(gen.Name(), func(g *world.Grid) (*generator.Layout, error) {
		return gen.GenerateLayout(g, c.rng)
	})
}

func (c *City) swap(name string, build func(g *world.Grid) (*generator.Layout, error)) error {
	fresh, err := world.NewGrid(c.rows, c.cols)
	if err != nil {
		return err
	}
	layout, err := build(fresh)
	if err != nil {
		return fmt.Errorf("generate %s map: %w", name, err)
	}
	if err := fresh.Validate(); err != nil {
		return fmt.Errorf("generate %s map: %w", name, err)
	}

	c.grid = fresh
	c.layout = layout
	c.generated = name

	c.log.WithFields(logrus.Fields{
		"generator": name,
		"rows":      c.rows,
		"cols":      c.cols,
		"passable":  len(fresh.PassableCells()),
		"locations": len(fresh.Locations()),
	}).Info("map generated")
	return nil
}

// SetStart moves the start marker to a random free cell
func (c *City) SetStart() (world.Point, error) {
	p, err := c.grid.SetStart(c.rng)
	if err != nil {
		return world.Point{}, err
	}
	c.log.WithField("cell", p.String()).Debug("start placed")
	return p, nil
}

// SetGoal moves the goal marker to a random free cell
func (c *City) SetGoal() (world.Point, error) {
	p, err := c.grid.SetGoal(c.rng)
	if err != nil {
		return world.Point{}, err
	}
	c.log.WithField("cell", p.String()).Debug("goal placed")
	return p, nil
}

// FindPath returns the route from start to goal, both inclusive
func (c *City) FindPath(start, goal world.Point) ([]world.Point, error) {
	res, err := c.Search(context.Background(), start, goal)
	if err != nil {
		return nil, err
	}
	return res.Route, nil
}

// Search runs the wavefront search and returns the full result
func (c *City) Search(ctx context.Context, start, goal world.Point) (*pathfind.Result, error) {
	opts := []pathfind.Option{
		pathfind.WithContext(ctx),
		pathfind.WithLogger(c.log),
		pathfind.WithRoundSnapshots(c.roundSnapshots),
		pathfind.WithMaxRounds(c.maxRounds),
	}
	if c.observer != nil {
		opts = append(opts, pathfind.WithObserver(c.observer))
	}

	res, err := pathfind.FindPath(c.grid, start, goal, opts...)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"start": start.String(),
			"goal":  goal.String(),
		}).WithError(err).Warn("no route")
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"start":  start.String(),
		"goal":   goal.String(),
		"steps":  res.Cost(),
		"rounds": res.Rounds,
	}).Info("route found")
	return res, nil
}

// Route searches between the placed start and goal markers
func (c *City) Route(ctx context.Context) (*pathfind.Result, error) {
	start, ok := c.grid.Start()
	if !ok {
		return nil, fmt.Errorf("route: %w: start not placed", world.ErrNoPassableCell)
	}
	goal, ok := c.grid.Goal()
	if !ok {
		return nil, fmt.Errorf("route: %w: goal not placed", world.ErrNoPassableCell)
	}
	return c.Search(ctx, start, goal)
}

// SetOccupied marks or clears a dynamic obstacle
func (c *City) SetOccupied(p world.Point, occupied bool) error {
	return c.grid.SetOccupied(p, occupied)
}

// OccupyRandom marks n distinct free cells as occupied and returns them
func (c *City) OccupyRandom(n int) ([]world.Point, error) {
	cells, err := c.grid.FreeCells(c.rng, n)
	if err != nil {
		return nil, err
	}
	for _, p := range cells {
		if err := c.grid.SetOccupied(p, true); err != nil {
			return nil, err
		}
	}
	c.log.WithField("cells", n).Debug("obstacles placed")
	return cells, nil
}

// Grid returns the current map. It is replaced, not mutated, by generation.
func (c *City) Grid() *world.Grid {
	return c.grid
}

// Layout returns the room layout of the last dungeon map, or nil
func (c *City) Layout() *generator.Layout {
	return c.layout
}

// GeneratorName returns the name of the generator that built the current map
func (c *City) GeneratorName() string {
	return c.generated
}

// Start returns the start marker, if placed
func (c *City) Start() (world.Point, bool) {
	return c.grid.Start()
}

// Goal returns the goal marker, if placed
func (c *City) Goal() (world.Point, bool) {
	return c.grid.Goal()
}

// Dumpings returns the dumping sites (even location ids)
func (c *City) Dumpings() map[int]world.Point {
	return c.grid.Dumpings()
}

// Loadings returns the loading sites (odd location ids)
func (c *City) Loadings() map[int]world.Point {
	return c.grid.Loadings()
}
