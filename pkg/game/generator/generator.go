package generator

import (
	"fmt"
	"sort"

	"haulcity/pkg/engine/world"
)

// Rand is the random source threaded through every generator. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
	Perm(n int) []int
}

// GridGenerator is an interface for map generation algorithms. Generate
// replaces the grid contents and overlays in place.
type GridGenerator interface {
	Generate(g *world.Grid, rng Rand) error
	Name() string
}

// Available generators
var (
	StickDown   = &StickDownGenerator{}
	Digging     = &DiggingGenerator{}
	DiggingLIFO = &DiggingGenerator{Policy: ResumeNewest}
	Dungeon     = NewDungeonGenerator(DefaultDungeonConfig())
)

// DefaultGenerator is the default map generator
var DefaultGenerator GridGenerator = Digging

var registry = map[string]GridGenerator{
	StickDown.Name():   StickDown,
	Digging.Name():     Digging,
	DiggingLIFO.Name(): DiggingLIFO,
	Dungeon.Name():     Dungeon,
}

// Lookup returns the registered generator with the given name
func Lookup(name string) (GridGenerator, error) {
	gen, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown generator %q (have %v)", world.ErrInvalidConfiguration, name, Names())
	}
	return gen, nil
}

// Names returns the registered generator names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
