package pathfind_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haulcity/pkg/engine/world"
	"haulcity/pkg/game/devtools"
	"haulcity/pkg/game/generator"
	"haulcity/pkg/game/pathfind"
)

func TestDistance_StickDown(t *testing.T) {
	g := devtools.MustParseMap(stickDown9)
	d, err := pathfind.Distance(g, world.Pt(1, 1), world.Pt(7, 7))
	require.NoError(t, err)
	assert.Equal(t, 12, d)
}

func TestDistance_Unreachable(t *testing.T) {
	g := devtools.MustParseMap(`
#####
#.#.#
#####
`)
	_, err := pathfind.Distance(g, world.Pt(1, 1), world.Pt(1, 3))
	assert.ErrorIs(t, err, pathfind.ErrNoPathFound)
}

func TestSolveDFS_FindsAWalkableRoute(t *testing.T) {
	g, err := world.NewGrid(21, 21)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))
	require.NoError(t, generator.Digging.Generate(g, rng))
	start, err := g.SetStart(rng)
	require.NoError(t, err)
	goal, err := g.SetGoal(rng)
	require.NoError(t, err)

	route, err := pathfind.SolveDFS(g, start, goal)
	require.NoError(t, err)
	require.NotEmpty(t, route)
	assert.Equal(t, start, route[0])
	assert.Equal(t, goal, route[len(route)-1])

	seen := map[world.Point]bool{}
	for i, p := range route {
		assert.True(t, g.IsPassable(p), "route crosses wall at %s", p)
		assert.False(t, seen[p], "route revisits %s", p)
		seen[p] = true
		if i > 0 {
			prev := route[i-1]
			assert.Equal(t, 1, abs(p.Row-prev.Row)+abs(p.Col-prev.Col))
		}
	}

	// a maze has exactly one simple route, so DFS and the wavefront agree
	res, err := pathfind.FindPath(g, start, goal)
	require.NoError(t, err)
	assert.Equal(t, res.Route, route)
}

func TestSolveDFS_Unreachable(t *testing.T) {
	g := devtools.MustParseMap(`
#####
#.#.#
#####
`)
	_, err := pathfind.SolveDFS(g, world.Pt(1, 1), world.Pt(1, 3))
	assert.ErrorIs(t, err, pathfind.ErrNoPathFound)
}
