package world

import (
	"errors"
	"testing"
)

func TestNewGrid_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := NewGrid(dims[0], dims[1]); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("NewGrid(%d, %d) error = %v, want ErrInvalidConfiguration", dims[0], dims[1], err)
		}
	}
}

func TestGrid_OutOfBoundsRejected(t *testing.T) {
	g, err := NewGrid(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		if _, err := g.At(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("At(%v) error = %v, want ErrOutOfBounds", p, err)
		}
		if err := g.Set(p, Wall); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%v) error = %v, want ErrOutOfBounds", p, err)
		}
		if err := g.AddEntrance(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("AddEntrance(%v) error = %v, want ErrOutOfBounds", p, err)
		}
		if g.IsPassable(p) {
			t.Errorf("IsPassable(%v) = true outside the grid", p)
		}
		if g.Code(p) != Wall {
			t.Errorf("Code(%v) = %d, want Wall outside the grid", p, g.Code(p))
		}
	}
	if err := g.Fill(0, 0, 4, 4, Wall); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Fill past the edge error = %v, want ErrOutOfBounds", err)
	}
}

func TestGrid_WallBorderAndPerimeter(t *testing.T) {
	g, _ := NewGrid(4, 5)
	g.WallBorder()
	g.ForEachCell(func(p Point, code int) {
		onEdge := g.IsOnPerimeter(p.Row, p.Col)
		if onEdge && code != Wall {
			t.Errorf("perimeter cell %v = %d, want Wall", p, code)
		}
		if !onEdge && code != Passable {
			t.Errorf("interior cell %v = %d, want Passable", p, code)
		}
	})
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	g.cells[1] = Passable
	if err := g.Validate(); !errors.Is(err, ErrInvariant) {
		t.Errorf("Validate() with open perimeter = %v, want ErrInvariant", err)
	}
}

func TestGrid_ResetClearsOverlays(t *testing.T) {
	g, _ := NewGrid(5, 5)
	p := Pt(2, 2)
	_ = g.MarkAsRoom(p)
	_ = g.SetOccupied(p, true)
	_ = g.AddEntrance(Pt(2, 3))
	_ = g.AssignLocation(4, p)

	g.Reset(Wall)

	if g.IsRoom(p) || g.IsOccupied(p) || g.IsEntrance(Pt(2, 3)) {
		t.Error("Reset left overlay state behind")
	}
	if len(g.Locations()) != 0 {
		t.Errorf("Reset left %d locations behind", len(g.Locations()))
	}
	if g.CountCode(Wall) != g.Area() {
		t.Errorf("CountCode(Wall) = %d, want %d", g.CountCode(Wall), g.Area())
	}
}

func TestGrid_EntranceValidation(t *testing.T) {
	// #####
	// #rr.#   entrance at (1,3) touches room (1,2) and corridor (2,3)
	// #rr.#
	// #####
	g, _ := NewGrid(4, 5)
	g.WallBorder()
	for _, p := range []Point{{1, 1}, {1, 2}, {2, 1}, {2, 2}} {
		_ = g.MarkAsRoom(p)
	}
	_ = g.AddEntrance(Pt(1, 3))
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	_ = g.AddEntrance(Pt(1, 2))
	if err := g.Validate(); !errors.Is(err, ErrInvariant) {
		t.Errorf("Validate() with entrance inside room = %v, want ErrInvariant", err)
	}
	g.RemoveEntrance(Pt(1, 2))
	if got := g.Entrances(); len(got) != 1 || got[0] != Pt(1, 3) {
		t.Errorf("Entrances() = %v, want [(1,3)]", got)
	}
}

func TestGrid_WallingAnEntranceForgetsIt(t *testing.T) {
	g, _ := NewGrid(4, 5)
	g.WallBorder()
	for _, p := range []Point{{1, 1}, {1, 2}, {2, 1}, {2, 2}} {
		_ = g.MarkAsRoom(p)
	}
	_ = g.AddEntrance(Pt(1, 3))

	if err := g.Set(Pt(1, 3), Wall); err != nil {
		t.Fatalf("Set() = %v", err)
	}
	if g.IsEntrance(Pt(1, 3)) || len(g.Entrances()) != 0 {
		t.Errorf("Entrances() = %v after walling the entrance, want none", g.Entrances())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestGrid_CloneIsDeep(t *testing.T) {
	g, _ := NewGrid(3, 3)
	_ = g.SetStartAt(Pt(1, 1))
	c := g.Clone()
	_ = c.Set(Pt(0, 0), Wall)
	_ = c.SetOccupied(Pt(0, 1), true)
	_ = c.AddEntrance(Pt(2, 2))

	if g.Code(Pt(0, 0)) != Passable || g.IsOccupied(Pt(0, 1)) || g.IsEntrance(Pt(2, 2)) {
		t.Error("mutating the clone changed the original")
	}
	if s, ok := c.Start(); !ok || s != Pt(1, 1) {
		t.Errorf("clone Start() = %v,%v, want (1,1),true", s, ok)
	}
}

func TestDirection_BacktraceOrder(t *testing.T) {
	want := []Direction{North, South, West, East}
	got := BacktraceOrder()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("BacktraceOrder() = %v, want %v", got, want)
		}
	}
	if p := Pt(3, 3).Step(North); p != Pt(2, 3) {
		t.Errorf("Step(North) = %v, want (2,3)", p)
	}
}
