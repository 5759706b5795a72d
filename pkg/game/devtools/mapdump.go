package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"haulcity/pkg/engine/world"
	"haulcity/pkg/game/renderer"
)

const mapDumpFilename = "map.txt"

// writeMapGrid writes one symbol per cell, with the route overlaid
func writeMapGrid(w io.Writer, g *world.Grid, route []world.Point) {
	onRoute := make(map[world.Point]bool, len(route))
	for _, p := range route {
		onRoute[p] = true
	}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			p := world.Pt(row, col)
			kind := renderer.GridKind(g, p)
			if onRoute[p] && kind != renderer.KindStart && kind != renderer.KindGoal {
				kind = renderer.KindRoute
			}
			fmt.Fprintf(w, "%c", kind.Symbol())
		}
		fmt.Fprintln(w)
	}
}

// WriteMap writes the layout only, one line per row
func WriteMap(w io.Writer, g *world.Grid) {
	writeMapGrid(w, g, nil)
}

// DumpMap writes a full debug dump: metadata, legend, the map with the
// route overlaid, locations, entrances and the route itself.
func DumpMap(w io.Writer, g *world.Grid, route []world.Point) {
	start, hasStart := g.Start()
	goal, hasGoal := g.Goal()

	// --- Metadata ---
	fmt.Fprintln(w, "=== MAP DUMP (layout, locations, route) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "grid_rows: %d\n", g.Rows())
	fmt.Fprintf(w, "grid_cols: %d\n", g.Cols())
	fmt.Fprintf(w, "coordinate_system: row,col (0-based, row=vertical, col=horizontal)\n")
	fmt.Fprintf(w, "passable_cells: %d\n", len(g.PassableCells()))
	if hasStart {
		fmt.Fprintf(w, "start_cell: %s\n", start)
	}
	if hasGoal {
		fmt.Fprintf(w, "goal_cell: %s\n", goal)
	}
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, "# = wall  . = open  r = room  e = entrance  x = occupied  D = dumping site  L = loading site  S = start  G = goal  * = route")
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, "--- Map ---")
	writeMapGrid(w, g, route)
	fmt.Fprintln(w, "")

	// --- Locations ---
	fmt.Fprintln(w, "--- Locations ---")
	for _, id := range g.LocationIDsSorted() {
		p, _ := g.Location(id)
		kind := "loading"
		if world.IsDumping(id) {
			kind = "dumping"
		}
		fmt.Fprintf(w, "  id: %d kind: %s cell: %s\n", id, kind, p)
	}
	fmt.Fprintln(w, "")

	// --- Entrances ---
	fmt.Fprintln(w, "--- Entrances ---")
	for _, e := range g.Entrances() {
		fmt.Fprintf(w, "  cell: %s\n", e)
	}
	fmt.Fprintln(w, "")

	// --- Route ---
	fmt.Fprintln(w, "--- Route ---")
	if len(route) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	fmt.Fprintf(w, "  steps: %d\n", len(route)-1)
	for i, p := range route {
		fmt.Fprintf(w, "  %d: %s\n", i, p)
	}
}

// DumpMapToFile writes DumpMap to path (map.txt when empty) and returns the
// absolute path written
func DumpMapToFile(path string, g *world.Grid, route []world.Point) (string, error) {
	if path == "" {
		path = mapDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	DumpMap(f, g, route)
	return absPath, nil
}
