package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haulcity/pkg/engine/world"
)

func generateDungeon(t *testing.T, rows, cols int, cfg DungeonConfig, seed int64) (*world.Grid, *Layout) {
	t.Helper()
	g := newGrid(t, rows, cols)
	layout, err := NewDungeonGenerator(cfg).GenerateLayout(g, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return g, layout
}

func TestDungeonConfig_Validate(t *testing.T) {
	base := DefaultDungeonConfig()
	require.NoError(t, base.Validate())

	cases := map[string]func(c *DungeonConfig){
		"single room":    func(c *DungeonConfig) { c.Cols, c.Rows = 1, 1 },
		"zero cols":      func(c *DungeonConfig) { c.Cols = 0 },
		"min zero":       func(c *DungeonConfig) { c.MinRoomRatio = 0 },
		"max one":        func(c *DungeonConfig) { c.MaxRoomRatio = 1 },
		"min above max":  func(c *DungeonConfig) { c.MinRoomRatio, c.MaxRoomRatio = 0.7, 0.5 },
		"zero corridors": func(c *DungeonConfig) { c.CorridorWidth = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), world.ErrInvalidConfiguration)
		})
	}
}

func TestDungeon_RejectsCrampedPartitions(t *testing.T) {
	g := newGrid(t, 21, 21)
	before := render(g)
	err := Dungeon.Generate(g, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, world.ErrInvalidConfiguration)
	assert.Equal(t, before, render(g), "rejected config must leave the grid untouched")
}

func TestDungeon_RejectsWideCorridors(t *testing.T) {
	cfg := DefaultDungeonConfig()
	cfg.CorridorWidth = 10
	g := newGrid(t, 41, 61)
	err := NewDungeonGenerator(cfg).Generate(g, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, world.ErrInvalidConfiguration)
}

func TestDungeon_Splits(t *testing.T) {
	assert.Equal(t, []int{0, 20, 40, 60}, splits(61, 3))
	assert.Equal(t, []int{0, 12, 26, 40}, splits(41, 3))
	for _, s := range splits(37, 5) {
		assert.Zero(t, s%2, "split %d is odd", s)
	}
}

func TestDungeon_DefaultLayout(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g, layout := generateDungeon(t, 41, 61, DefaultDungeonConfig(), seed)

		assertWalledBorder(t, g)
		assertSingleComponent(t, g)
		require.NoError(t, g.Validate(), "seed %d", seed)
		require.Len(t, layout.Rooms, 6)

		entrances := 0
		for _, room := range layout.Rooms {
			want := 3
			if room.PartCol != 1 {
				want = 2
			}
			assert.Len(t, room.Entrances, want, "room (%d,%d)", room.PartRow, room.PartCol)
			entrances += len(room.Entrances)
		}
		assert.Len(t, g.Entrances(), entrances)
	}
}

func TestDungeon_PositionRule(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		cfg        DungeonConfig
		want       map[RoomPosition]int // entrances per position class
	}{
		{"grid", 61, 61, DungeonConfig{Cols: 3, Rows: 3, CorridorWidth: 1, MinRoomRatio: 0.3, MaxRoomRatio: 0.8},
			map[RoomPosition]int{Corner: 2, Edge: 3, Interior: 4}},
		{"single row", 21, 61, DungeonConfig{Cols: 3, Rows: 1, CorridorWidth: 1, MinRoomRatio: 0.3, MaxRoomRatio: 0.8},
			map[RoomPosition]int{LineEnd: 1, LineMiddle: 2}},
		{"single column", 61, 21, DungeonConfig{Cols: 1, Rows: 3, CorridorWidth: 1, MinRoomRatio: 0.3, MaxRoomRatio: 0.8},
			map[RoomPosition]int{LineEnd: 1, LineMiddle: 2}},
		{"pair", 21, 41, DungeonConfig{Cols: 2, Rows: 1, CorridorWidth: 1, MinRoomRatio: 0.3, MaxRoomRatio: 0.8},
			map[RoomPosition]int{LineEnd: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, layout := generateDungeon(t, tc.rows, tc.cols, tc.cfg, 3)
			assertSingleComponent(t, g)
			require.NoError(t, g.Validate())
			seen := map[RoomPosition]bool{}
			for _, room := range layout.Rooms {
				want, ok := tc.want[room.Position]
				require.True(t, ok, "unexpected position %s", room.Position)
				assert.Len(t, room.Entrances, want, "%s room (%d,%d)", room.Position, room.PartRow, room.PartCol)
				seen[room.Position] = true
			}
			assert.Len(t, seen, len(tc.want))
		})
	}
}

func TestDungeon_EntranceGeometry(t *testing.T) {
	g, layout := generateDungeon(t, 61, 61, DungeonConfig{Cols: 3, Rows: 3, CorridorWidth: 1, MinRoomRatio: 0.3, MaxRoomRatio: 0.8}, 11)
	for _, room := range layout.Rooms {
		for i, e := range room.Entrances {
			assert.False(t, room.Contains(e), "entrance %s inside its room", e)
			assert.False(t, g.IsRoom(e))
			inner := e.Step(room.Exits[i].Opposite())
			assert.True(t, room.Contains(inner), "entrance %s does not face its room", e)
			switch room.Exits[i] {
			case world.North, world.South:
				assert.Greater(t, e.Col, room.Left)
				assert.Less(t, e.Col, room.Right-1)
			default:
				assert.Greater(t, e.Row, room.Top)
				assert.Less(t, e.Row, room.Bottom-1)
			}
		}
	}
}

func TestDungeon_RoomsFitPartitions(t *testing.T) {
	cfg := DefaultDungeonConfig()
	_, layout := generateDungeon(t, 41, 61, cfg, 5)
	for _, room := range layout.Rooms {
		top, bottom := layout.RowSplits[room.PartRow], layout.RowSplits[room.PartRow+1]
		left, right := layout.ColSplits[room.PartCol], layout.ColSplits[room.PartCol+1]
		assert.Greater(t, room.Top, top)
		assert.Less(t, room.Bottom, bottom)
		assert.Greater(t, room.Left, left)
		assert.Less(t, room.Right, right)
		assert.GreaterOrEqual(t, room.Bottom-room.Top, minRoomSide)
		assert.GreaterOrEqual(t, room.Right-room.Left, minRoomSide)
	}
}

func TestDungeon_LocationsAtRoomCentres(t *testing.T) {
	g, layout := generateDungeon(t, 41, 61, DefaultDungeonConfig(), 9)
	for i, room := range layout.Rooms {
		assert.Equal(t, world.FirstLocationID+i, room.LocationID)
		assert.Equal(t, room.LocationID, g.Code(room.Center))
		assert.True(t, g.IsRoom(room.Center))
		p, ok := g.Location(room.LocationID)
		require.True(t, ok)
		assert.Equal(t, room.Center, p)
	}
	assert.Len(t, g.Dumpings(), 3)
	assert.Len(t, g.Loadings(), 3)

	from := layout.Rooms[0].Center
	seen := reachable(g, from)
	for _, room := range layout.Rooms[1:] {
		assert.True(t, seen[room.Center], "room centre %s unreachable from %s", room.Center, from)
	}
}

func TestDungeon_WideCorridorsAreSuperset(t *testing.T) {
	narrowCfg := DefaultDungeonConfig()
	wideCfg := narrowCfg
	wideCfg.CorridorWidth = 3

	narrow, _ := generateDungeon(t, 41, 61, narrowCfg, 21)
	wide, _ := generateDungeon(t, 41, 61, wideCfg, 21)

	for _, p := range narrow.PassableCells() {
		assert.True(t, wide.IsPassable(p), "cell %s lost by widening", p)
	}
	assert.Greater(t, len(wide.PassableCells()), len(narrow.PassableCells()))
	assertWalledBorder(t, wide)
	assertSingleComponent(t, wide)
	require.NoError(t, wide.Validate())
}

func TestDungeon_WideCorridorsKeepSingleEntrances(t *testing.T) {
	for _, width := range []int{2, 3} {
		cfg := DefaultDungeonConfig()
		cfg.CorridorWidth = width
		g, layout := generateDungeon(t, 41, 61, cfg, 21)

		entrances := 0
		for _, room := range layout.Rooms {
			entrances += len(room.Entrances)
		}
		assert.Len(t, g.Entrances(), entrances, "width %d", width)

		for _, p := range g.PassableCells() {
			if g.IsRoom(p) || g.IsEntrance(p) {
				continue
			}
			for _, d := range world.AllDirections() {
				assert.False(t, g.IsRoom(p.Step(d)), "width %d: corridor cell %s opens onto a room", width, p)
			}
		}
		assertSingleComponent(t, g)
		require.NoError(t, g.Validate())
	}
}
