package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walledGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	require.NoError(t, err)
	g.WallBorder()
	return g
}

func TestSetStartAndGoal_NeverCoincide(t *testing.T) {
	g := walledGrid(t, 4, 4) // 4 free cells
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		s, err := g.SetStart(rng)
		require.NoError(t, err)
		gl, err := g.SetGoal(rng)
		require.NoError(t, err)
		assert.NotEqual(t, s, gl)
		assert.Equal(t, 1, g.CountCode(Start))
		assert.Equal(t, 1, g.CountCode(Goal))
	}
}

func TestSetStart_ClearsPrevious(t *testing.T) {
	g := walledGrid(t, 5, 5)
	rng := rand.New(rand.NewSource(7))
	first, err := g.SetStart(rng)
	require.NoError(t, err)
	second, err := g.SetStart(rng)
	require.NoError(t, err)

	assert.Equal(t, 1, g.CountCode(Start))
	got, ok := g.Start()
	require.True(t, ok)
	assert.Equal(t, second, got)
	if first != second {
		assert.Equal(t, Passable, g.Code(first))
	}
}

func TestSetGoal_NoPassableCell(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	g.Reset(Wall)
	_, err = g.SetGoal(rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNoPassableCell)

	// a single free cell taken by the start leaves nothing for the goal
	require.NoError(t, g.Set(Pt(1, 1), Passable))
	_, err = g.SetStart(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	_, err = g.SetGoal(rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNoPassableCell)
}

func TestSetStartAt_RejectsWallAndLocation(t *testing.T) {
	g := walledGrid(t, 5, 5)
	assert.ErrorIs(t, g.SetStartAt(Pt(0, 0)), ErrNoPassableCell)
	require.NoError(t, g.AssignLocation(3, Pt(2, 2)))
	assert.ErrorIs(t, g.SetStartAt(Pt(2, 2)), ErrNoPassableCell)
	assert.ErrorIs(t, g.SetGoalAt(Pt(9, 9)), ErrOutOfBounds)
}

func TestFreeCells_Distinct(t *testing.T) {
	g := walledGrid(t, 6, 6)
	cells, err := g.FreeCells(rand.New(rand.NewSource(3)), 10)
	require.NoError(t, err)
	seen := map[Point]bool{}
	for _, p := range cells {
		assert.False(t, seen[p], "duplicate %v", p)
		seen[p] = true
		assert.True(t, g.IsFree(p))
	}
	_, err = g.FreeCells(rand.New(rand.NewSource(3)), 17)
	assert.ErrorIs(t, err, ErrNoPassableCell)
}

func TestLocations_SplitByParity(t *testing.T) {
	g := walledGrid(t, 6, 6)
	require.NoError(t, g.AssignLocation(2, Pt(1, 1)))
	require.NoError(t, g.AssignLocation(3, Pt(1, 2)))
	require.NoError(t, g.AssignLocation(4, Pt(2, 1)))
	assert.ErrorIs(t, g.AssignLocation(1, Pt(2, 2)), ErrInvalidConfiguration)

	assert.Equal(t, map[int]Point{2: Pt(1, 1), 4: Pt(2, 1)}, g.Dumpings())
	assert.Equal(t, map[int]Point{3: Pt(1, 2)}, g.Loadings())
	assert.Equal(t, []int{2, 3, 4}, g.LocationIDsSorted())
	assert.Equal(t, 3, g.Code(Pt(1, 2)))
}

func TestLocationIDFor_Cycles(t *testing.T) {
	assert.Equal(t, 2, LocationIDFor(0))
	assert.Equal(t, 99, LocationIDFor(97))
	assert.Equal(t, 2, LocationIDFor(98))
}
