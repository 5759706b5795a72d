package generator

import (
	"errors"
	"math/rand"
	"testing"

	"haulcity/pkg/engine/world"
)

func TestStickDown_RejectsEvenOrTinyGrids(t *testing.T) {
	for _, dims := range [][2]int{{3, 9}, {9, 3}, {8, 9}, {9, 10}} {
		g := newGrid(t, dims[0], dims[1])
		err := StickDown.Generate(g, rand.New(rand.NewSource(1)))
		if !errors.Is(err, world.ErrInvalidConfiguration) {
			t.Errorf("%dx%d: got %v, want ErrInvalidConfiguration", dims[0], dims[1], err)
		}
	}
}

func TestStickDown_ScriptedLayout(t *testing.T) {
	g := newGrid(t, 9, 9)
	rng := &scriptedRand{ints: []int{
		2, 2, 2, 2, // column 1, top to bottom
		1, 2, 2, 2,
		2, 1, 2, 2,
		2, 2, 1, 2,
	}}
	if err := StickDown.Generate(g, rng); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := "" +
		"#########\n" +
		"##.######\n" +
		"#....#..#\n" +
		"####.####\n" +
		"#......##\n" +
		"######.##\n" +
		"#.......#\n" +
		"#########\n" +
		"#########\n"
	if got := render(g); got != want {
		t.Errorf("layout mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestStickDown_PillarsAndBorder(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := newGrid(t, 21, 31)
		if err := StickDown.Generate(g, rand.New(rand.NewSource(seed))); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		assertWalledBorder(t, g)
		for row := 1; row < g.Rows(); row += 2 {
			for col := 1; col < g.Cols(); col += 2 {
				if g.Code(world.Pt(row, col)) != world.Wall {
					t.Errorf("seed %d: pillar (%d,%d) missing", seed, row, col)
				}
			}
		}
		// every even/even cell is a pillar-free crossing and never a wall target
		for row := 2; row < g.Rows()-1; row += 2 {
			for col := 2; col < g.Cols()-1; col += 2 {
				if g.Code(world.Pt(row, col)) != world.Passable {
					t.Errorf("seed %d: crossing (%d,%d) blocked", seed, row, col)
				}
			}
		}
	}
}

type recordingRand struct {
	*rand.Rand
	bounds []int
}

func (r *recordingRand) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	return r.Rand.Intn(n)
}

func TestStickDown_OneThreeWayDrawPerPillar(t *testing.T) {
	g := newGrid(t, 9, 11)
	rng := &recordingRand{Rand: rand.New(rand.NewSource(42))}
	if err := StickDown.Generate(g, rng); err != nil {
		t.Fatal(err)
	}
	if len(rng.bounds) != 4*5 {
		t.Fatalf("got %d draws, want one per pillar (20)", len(rng.bounds))
	}
	for i, n := range rng.bounds {
		if n != stickDownChoices {
			t.Errorf("draw %d used bound %d", i, n)
		}
	}
}
