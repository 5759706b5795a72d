// Package devtools provides developer tools for testing and debugging:
// ASCII map fixtures, text map dumps and HTML snapshots.
package devtools

import (
	"bufio"
	"fmt"
	"strings"

	"haulcity/pkg/engine/world"
	"haulcity/pkg/game/renderer"
)

// ParseMap builds a grid from ASCII art using the dump legend:
//
//	#  wall              .  open floor
//	r  room floor        e  entrance (open floor)
//	x  occupied floor    D  dumping site (room)
//	L  loading site      S  start   G  goal
//
// Blank lines and surrounding whitespace are ignored. Wave and route
// symbols read back as open floor, so a dump round-trips. Locations get ids
// in reading order: dumping sites 2, 4, 6, ... and loading sites 3, 5, 7, ...
func ParseMap(art string) (*world.Grid, error) {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(art))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty map", world.ErrInvalidConfiguration)
	}

	cols := len([]rune(lines[0]))
	g, err := world.NewGrid(len(lines), cols)
	if err != nil {
		return nil, err
	}

	nextDumping, nextLoading := world.FirstLocationID, world.FirstLocationID+1
	var start, goal *world.Point

	for row, line := range lines {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", world.ErrInvalidConfiguration, row, len(runes), cols)
		}
		for col, r := range runes {
			p := world.Pt(row, col)
			kind, ok := renderer.KindForSymbol(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown symbol %q at (%s)", world.ErrInvalidConfiguration, r, p)
			}
			switch kind {
			case renderer.KindWall:
				err = g.Set(p, world.Wall)
			case renderer.KindRoom:
				err = g.MarkAsRoom(p)
			case renderer.KindEntrance:
				err = g.AddEntrance(p)
			case renderer.KindOccupied:
				err = g.SetOccupied(p, true)
			case renderer.KindDumping:
				err = placeLocation(g, p, &nextDumping)
			case renderer.KindLoading:
				err = placeLocation(g, p, &nextLoading)
			case renderer.KindStart:
				start = &p
			case renderer.KindGoal:
				goal = &p
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if start != nil {
		if err := g.SetStartAt(*start); err != nil {
			return nil, err
		}
	}
	if goal != nil {
		if err := g.SetGoalAt(*goal); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func placeLocation(g *world.Grid, p world.Point, next *int) error {
	if err := g.MarkAsRoom(p); err != nil {
		return err
	}
	if err := g.AssignLocation(*next, p); err != nil {
		return err
	}
	*next += 2
	return nil
}

// MustParseMap is ParseMap for fixtures known to be valid
func MustParseMap(art string) *world.Grid {
	g, err := ParseMap(art)
	if err != nil {
		panic(err)
	}
	return g
}
