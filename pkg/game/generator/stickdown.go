package generator

import (
	"fmt"

	"haulcity/pkg/engine/world"
)

// stickDownChoices is the size of the sample space for a falling pillar.
// Only right, up and left are ever drawn; the down branch is unreachable.
const stickDownChoices = 3

// StickDownGenerator builds a maze by toppling pillars: a wall pillar stands
// on every odd/odd cell and each one falls onto a random neighbour.
type StickDownGenerator struct{}

// Name returns the name of this generator
func (s *StickDownGenerator) Name() string {
	return "stick-down"
}

// Generate lays out the pillar lattice inside an outer wall and topples each
// pillar in column-major order.
func (s *StickDownGenerator) Generate(g *world.Grid, rng Rand) error {
	rows, cols := g.Rows(), g.Cols()
	if rows < 5 || cols < 5 || rows%2 == 0 || cols%2 == 0 {
		return fmt.Errorf("%w: stick-down needs odd dimensions of at least 5, got %dx%d", world.ErrInvalidConfiguration, rows, cols)
	}

	g.Reset(world.Passable)
	g.WallBorder()

	for col := 1; col < cols; col += 2 {
		for row := 1; row < rows; row += 2 {
			if err := g.Set(world.Pt(row, col), world.Wall); err != nil {
				return err
			}
		}
	}

	for col := 1; col < cols; col += 2 {
		for row := 1; row < rows; row += 2 {
			pillar := world.Pt(row, col)
			var target world.Point
			switch rng.Intn(stickDownChoices) {
			case 0:
				target = pillar.Step(world.East)
			case 1:
				target = pillar.Step(world.North)
			case 2:
				target = pillar.Step(world.West)
			default:
				target = pillar.Step(world.South)
			}
			if err := g.Set(target, world.Wall); err != nil {
				return fmt.Errorf("topple pillar (%s): %w", pillar, err)
			}
		}
	}
	return nil
}
