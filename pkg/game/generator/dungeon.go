package generator

import (
	"fmt"

	"haulcity/pkg/engine/morph"
	"haulcity/pkg/engine/world"
)

// minRoomSide is the smallest room side that still leaves a cell between an
// exit and each room corner.
const minRoomSide = 4

// DungeonConfig holds the dungeon generator parameters
type DungeonConfig struct {
	Cols          int     // rooms per partition row
	Rows          int     // rooms per partition column
	CorridorWidth int     // dilation kernel size; 1 leaves corridors one cell wide
	MinRoomRatio  float64 // smallest room side as a fraction of its partition
	MaxRoomRatio  float64 // exclusive upper bound on the room side fraction
}

// DefaultDungeonConfig returns a 3×2 layout with single-width corridors
func DefaultDungeonConfig() DungeonConfig {
	return DungeonConfig{
		Cols:          3,
		Rows:          2,
		CorridorWidth: 1,
		MinRoomRatio:  0.3,
		MaxRoomRatio:  0.8,
	}
}

// Validate checks the parameters that do not depend on the grid size
func (c DungeonConfig) Validate() error {
	switch {
	case c.Cols < 1 || c.Rows < 1:
		return fmt.Errorf("%w: room layout %dx%d", world.ErrInvalidConfiguration, c.Cols, c.Rows)
	case c.Cols*c.Rows < 2:
		return fmt.Errorf("%w: a dungeon needs at least two rooms", world.ErrInvalidConfiguration)
	case c.MinRoomRatio <= 0 || c.MaxRoomRatio >= 1 || c.MinRoomRatio >= c.MaxRoomRatio:
		return fmt.Errorf("%w: room ratios must satisfy 0 < min < max < 1, got %v and %v",
			world.ErrInvalidConfiguration, c.MinRoomRatio, c.MaxRoomRatio)
	case c.CorridorWidth < 1:
		return fmt.Errorf("%w: corridor width %d", world.ErrInvalidConfiguration, c.CorridorWidth)
	}
	return nil
}

// RoomPosition classifies a room by where it sits in the partition layout
type RoomPosition int

const (
	Interior RoomPosition = iota
	Edge
	Corner
	LineEnd    // end of a single row or column of rooms
	LineMiddle // inside a single row or column of rooms
)

func (p RoomPosition) String() string {
	switch p {
	case Interior:
		return "interior"
	case Edge:
		return "edge"
	case Corner:
		return "corner"
	case LineEnd:
		return "line-end"
	case LineMiddle:
		return "line-middle"
	default:
		return "unknown"
	}
}

// Room describes one generated room
type Room struct {
	PartRow, PartCol int // position in the partition layout

	// Interior bounds, half-open: rows [Top, Bottom), cols [Left, Right)
	Top, Left, Bottom, Right int

	Center     world.Point
	Position   RoomPosition
	LocationID int

	// Exits lists the punched sides; Entrances[i] belongs to Exits[i]
	Exits     []world.Direction
	Entrances []world.Point

	// exit coordinate along the room border, per side
	exitAt map[world.Direction]int
}

// Contains reports whether p lies inside the room interior
func (r Room) Contains(p world.Point) bool {
	return p.Row >= r.Top && p.Row < r.Bottom && p.Col >= r.Left && p.Col < r.Right
}

// Layout is the result of a dungeon generation run
type Layout struct {
	ColSplits []int
	RowSplits []int
	Rooms     []Room // row-major
}

// Room returns the room at the given partition position
func (l *Layout) Room(partRow, partCol int) *Room {
	cols := len(l.ColSplits) - 1
	return &l.Rooms[partRow*cols+partCol]
}

// DungeonGenerator partitions the grid into rooms and joins them with
// straight corridors across the partition boundaries.
type DungeonGenerator struct {
	Config DungeonConfig
}

// NewDungeonGenerator creates a dungeon generator with the given config
func NewDungeonGenerator(cfg DungeonConfig) *DungeonGenerator {
	return &DungeonGenerator{Config: cfg}
}

// Name returns the name of this generator
func (d *DungeonGenerator) Name() string {
	return "dungeon"
}

// Generate implements GridGenerator
func (d *DungeonGenerator) Generate(g *world.Grid, rng Rand) error {
	_, err := d.GenerateLayout(g, rng)
	return err
}

// GenerateLayout builds the dungeon into g and returns the room layout.
// The grid is left untouched when the configuration is rejected.
func (d *DungeonGenerator) GenerateLayout(g *world.Grid, rng Rand) (*Layout, error) {
	cfg := d.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout := &Layout{
		ColSplits: splits(g.Cols(), cfg.Cols),
		RowSplits: splits(g.Rows(), cfg.Rows),
	}
	if err := checkPartitions(layout, cfg); err != nil {
		return nil, err
	}

	g.Reset(world.Wall)

	// channel plane: zero marks a corridor cell so dilation widens it
	channels := make([][]int, g.Rows())
	for row := range channels {
		channels[row] = make([]int, g.Cols())
		for col := range channels[row] {
			channels[row][col] = 1
		}
	}

	for pr := 0; pr < cfg.Rows; pr++ {
		for pc := 0; pc < cfg.Cols; pc++ {
			layout.Rooms = append(layout.Rooms, sizeRoom(layout, cfg, pr, pc, rng))
		}
	}

	for i := range layout.Rooms {
		room := &layout.Rooms[i]
		for row := room.Top; row < room.Bottom; row++ {
			for col := room.Left; col < room.Right; col++ {
				if err := g.MarkAsRoom(world.Pt(row, col)); err != nil {
					return nil, err
				}
			}
		}
		punchExits(layout, cfg, room, channels, rng)
	}

	joinRooms(layout, cfg, channels)

	if cfg.CorridorWidth > 1 {
		widened := morph.Dilate(channels, cfg.CorridorWidth)
		sealRoomWalls(layout, channels, widened)
		channels = widened
	}

	g.ForEachCell(func(p world.Point, _ int) {
		if channels[p.Row][p.Col] == 0 {
			_ = g.Set(p, world.Passable)
		}
	})
	g.WallBorder()

	for i := range layout.Rooms {
		room := &layout.Rooms[i]
		if err := g.Fill(room.Top, room.Left, room.Bottom, room.Right, world.Passable); err != nil {
			return nil, err
		}
		for _, e := range room.Entrances {
			if err := g.AddEntrance(e); err != nil {
				return nil, err
			}
		}
		room.LocationID = world.LocationIDFor(i)
		if err := g.AssignLocation(room.LocationID, room.Center); err != nil {
			return nil, err
		}
	}

	return layout, nil
}

// sealRoomWalls closes the cells of the one-cell wall ring around every
// room that only the widening opened. Each punched side keeps its single
// entrance, so the one-way rule cannot be bypassed beside it.
func sealRoomWalls(l *Layout, narrow, widened [][]int) {
	for _, room := range l.Rooms {
		for row := room.Top - 1; row <= room.Bottom; row++ {
			for col := room.Left - 1; col <= room.Right; col++ {
				if room.Contains(world.Pt(row, col)) {
					continue
				}
				if row < 0 || row >= len(widened) || col < 0 || col >= len(widened[row]) {
					continue
				}
				if narrow[row][col] != 0 {
					widened[row][col] = 1
				}
			}
		}
	}
}

// splits returns n+1 evenly spaced, even-valued split coordinates over [0, size-1]
func splits(size, n int) []int {
	out := make([]int, n+1)
	for i := range out {
		out[i] = (i * (size - 1) / n) &^ 1
	}
	return out
}

func checkPartitions(l *Layout, cfg DungeonConfig) error {
	narrowest := -1
	for _, axis := range [][]int{l.ColSplits, l.RowSplits} {
		for i := 0; i+1 < len(axis); i++ {
			ext := axis[i+1] - axis[i]
			lo := int(float64(ext) * cfg.MinRoomRatio)
			hi := int(float64(ext) * cfg.MaxRoomRatio)
			if lo < minRoomSide || lo >= hi {
				return fmt.Errorf("%w: partition of %d cells cannot hold a room with ratios %v..%v",
					world.ErrInvalidConfiguration, ext, cfg.MinRoomRatio, cfg.MaxRoomRatio)
			}
			if narrowest < 0 || ext < narrowest {
				narrowest = ext
			}
		}
	}
	if 2*cfg.CorridorWidth >= narrowest {
		return fmt.Errorf("%w: corridor width %d swallows a %d-cell partition",
			world.ErrInvalidConfiguration, cfg.CorridorWidth, narrowest)
	}
	return nil
}

func sizeRoom(l *Layout, cfg DungeonConfig, pr, pc int, rng Rand) Room {
	top, bottom := l.RowSplits[pr], l.RowSplits[pr+1]
	left, right := l.ColSplits[pc], l.ColSplits[pc+1]
	center := world.Pt((top+bottom)/2, (left+right)/2)

	halfW := sampleSide(right-left, cfg, rng) / 2
	halfH := sampleSide(bottom-top, cfg, rng) / 2

	room := Room{
		PartRow: pr,
		PartCol: pc,
		Top:     center.Row - halfH,
		Bottom:  center.Row + halfH,
		Left:    center.Col - halfW,
		Right:   center.Col + halfW,
		Center:  center,
		exitAt:  make(map[world.Direction]int),
	}

	if pc > 0 {
		room.Exits = append(room.Exits, world.West)
	}
	if pc < cfg.Cols-1 {
		room.Exits = append(room.Exits, world.East)
	}
	if pr > 0 {
		room.Exits = append(room.Exits, world.North)
	}
	if pr < cfg.Rows-1 {
		room.Exits = append(room.Exits, world.South)
	}
	room.Position = classify(cfg, len(room.Exits))
	return room
}

// sampleSide draws a room side in [floor(ext*min), floor(ext*max))
func sampleSide(ext int, cfg DungeonConfig, rng Rand) int {
	lo := int(float64(ext) * cfg.MinRoomRatio)
	hi := int(float64(ext) * cfg.MaxRoomRatio)
	return lo + rng.Intn(hi-lo)
}

func classify(cfg DungeonConfig, exits int) RoomPosition {
	if cfg.Rows == 1 || cfg.Cols == 1 {
		if exits == 1 {
			return LineEnd
		}
		return LineMiddle
	}
	switch exits {
	case 2:
		return Corner
	case 3:
		return Edge
	default:
		return Interior
	}
}

// punchExits draws a straight channel from the room centre line to the
// partition boundary on every exit side and records the entrance, the first
// channel cell outside the room.
func punchExits(l *Layout, cfg DungeonConfig, room *Room, channels [][]int, rng Rand) {
	top, bottom := l.RowSplits[room.PartRow], l.RowSplits[room.PartRow+1]
	left, right := l.ColSplits[room.PartCol], l.ColSplits[room.PartCol+1]
	cy, cx := room.Center.Row, room.Center.Col

	for _, dir := range room.Exits {
		var entrance world.Point
		switch dir {
		case world.North, world.South:
			col := room.Left + 1 + rng.Intn(room.Right-room.Left-2)
			room.exitAt[dir] = col
			r0, r1 := top, cy
			entrance = world.Pt(room.Top-1, col)
			if dir == world.South {
				r0, r1 = cy, bottom
				entrance = world.Pt(room.Bottom, col)
			}
			for row := r0; row < r1; row++ {
				channels[row][col] = 0
			}
		default:
			row := room.Top + 1 + rng.Intn(room.Bottom-room.Top-2)
			room.exitAt[dir] = row
			c0, c1 := left, cx
			entrance = world.Pt(row, room.Left-1)
			if dir == world.East {
				c0, c1 = cx, right
				entrance = world.Pt(row, room.Right)
			}
			for col := c0; col < c1; col++ {
				channels[row][col] = 0
			}
		}
		room.Entrances = append(room.Entrances, entrance)
	}
}

// joinRooms fills each internal boundary line between the exit coordinates
// of the two rooms that face each other across it, inclusive.
func joinRooms(l *Layout, cfg DungeonConfig, channels [][]int) {
	for pr := 0; pr < cfg.Rows; pr++ {
		for pc := 0; pc+1 < cfg.Cols; pc++ {
			col := l.ColSplits[pc+1]
			a := l.Room(pr, pc).exitAt[world.East]
			b := l.Room(pr, pc+1).exitAt[world.West]
			for row := min(a, b); row <= max(a, b); row++ {
				channels[row][col] = 0
			}
		}
	}
	for pr := 0; pr+1 < cfg.Rows; pr++ {
		row := l.RowSplits[pr+1]
		for pc := 0; pc < cfg.Cols; pc++ {
			a := l.Room(pr, pc).exitAt[world.South]
			b := l.Room(pr+1, pc).exitAt[world.North]
			for col := min(a, b); col <= max(a, b); col++ {
				channels[row][col] = 0
			}
		}
	}
}
