package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gookit/color"

	"haulcity/pkg/engine/world"
	"haulcity/pkg/game/pathfind"
	"haulcity/pkg/game/text"
)

// CellKind is what a cell shows as, after overlays are applied
type CellKind int

const (
	KindWall CellKind = iota
	KindOpen
	KindRoom
	KindEntrance
	KindOccupied
	KindDumping
	KindLoading
	KindWave // finalized by the wavefront
	KindRoute
	KindStart
	KindGoal
)

// Icon constants for the terminal view
const (
	IconWall     = "█"
	IconOpen     = " "
	IconRoom     = "·"
	IconEntrance = "▫"
	IconOccupied = "▣"
	IconDumping  = "D"
	IconLoading  = "L"
	IconWave     = "░"
	IconRoute    = "●"
	IconStart    = "S"
	IconGoal     = "G"
)

var symbols = map[CellKind]rune{
	KindWall:     '#',
	KindOpen:     '.',
	KindRoom:     'r',
	KindEntrance: 'e',
	KindOccupied: 'x',
	KindDumping:  'D',
	KindLoading:  'L',
	KindWave:     '~',
	KindRoute:    '*',
	KindStart:    'S',
	KindGoal:     'G',
}

var icons = map[CellKind]string{
	KindWall:     IconWall,
	KindOpen:     IconOpen,
	KindRoom:     IconRoom,
	KindEntrance: IconEntrance,
	KindOccupied: IconOccupied,
	KindDumping:  IconDumping,
	KindLoading:  IconLoading,
	KindWave:     IconWave,
	KindRoute:    IconRoute,
	KindStart:    IconStart,
	KindGoal:     IconGoal,
}

// Symbol returns the plain ASCII symbol used by map dumps and fixtures
func (k CellKind) Symbol() rune {
	if r, ok := symbols[k]; ok {
		return r
	}
	return '?'
}

// Icon returns the terminal icon
func (k CellKind) Icon() string {
	if s, ok := icons[k]; ok {
		return s
	}
	return "?"
}

// KindForSymbol maps an ASCII symbol back to its kind
func KindForSymbol(r rune) (CellKind, bool) {
	for k, s := range symbols {
		if s == r {
			return k, true
		}
	}
	return KindWall, false
}

// BaseKind classifies a cell from its code and overlays, without any search state
func BaseKind(code int, room, entrance, occupied bool) CellKind {
	switch {
	case code == world.Start:
		return KindStart
	case code == world.Goal:
		return KindGoal
	case code == world.Wall:
		return KindWall
	case occupied:
		return KindOccupied
	case world.IsDumping(code):
		return KindDumping
	case world.IsLoading(code):
		return KindLoading
	case entrance:
		return KindEntrance
	case room:
		return KindRoom
	default:
		return KindOpen
	}
}

// GridKind classifies cell p of g
func GridKind(g *world.Grid, p world.Point) CellKind {
	return BaseKind(g.Code(p), g.IsRoom(p), g.IsEntrance(p), g.IsOccupied(p))
}

// Frame is a snapshot flattened into display kinds
type Frame struct {
	Rows, Cols int
	Kinds      []CellKind
	Cost       []int
	Caption    string
}

// At returns the kind of the cell at (row, col)
func (f Frame) At(row, col int) CellKind {
	return f.Kinds[row*f.Cols+col]
}

// BuildFrame overlays the wave, the route and the endpoints on the base map
func BuildFrame(s pathfind.Snapshot) Frame {
	f := Frame{
		Rows:    s.Rows,
		Cols:    s.Cols,
		Kinds:   make([]CellKind, len(s.Cells)),
		Cost:    s.Cost,
		Caption: Caption(s),
	}
	for i, code := range s.Cells {
		k := BaseKind(code, at(s.Room, i), at(s.Entrance, i), at(s.Occupied, i))
		if at(s.Done, i) && (k == KindOpen || k == KindRoom || k == KindEntrance) {
			k = KindWave
		}
		f.Kinds[i] = k
	}
	for _, p := range s.Route {
		f.Kinds[p.Row*s.Cols+p.Col] = KindRoute
	}
	f.Kinds[s.Start.Row*s.Cols+s.Start.Col] = KindStart
	f.Kinds[s.Goal.Row*s.Cols+s.Goal.Col] = KindGoal
	return f
}

func at(v []bool, i int) bool {
	return i < len(v) && v[i]
}

// Caption describes the snapshot in the active language
func Caption(s pathfind.Snapshot) string {
	switch s.Stage {
	case pathfind.StageStart:
		return text.Get("SEARCH_START")
	case pathfind.StageRound:
		return text.Get("ROUND", s.Round)
	default:
		if s.Err != nil {
			return text.Get("NO_ROUTE", s.Start.String(), s.Goal.String())
		}
		return text.Get("ROUTE_FOUND", len(s.Route)-1, s.Round)
	}
}

var (
	ColorWall     color.Style
	ColorOpen     color.Style
	ColorRoom     color.Style
	ColorEntrance color.Style
	ColorOccupied color.Style
	ColorDumping  color.Style
	ColorLoading  color.Style
	ColorWave     color.Style
	ColorRoute    color.Style
	ColorEndpoint color.Style

	ColorTitle  color.Style
	ColorSubtle color.Style
	ColorNumber color.Style
	ColorDenied color.Style

	regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:.%-]+)}`)
)

// InitColors initializes the color styles
func InitColors() {
	ColorWall = color.Style{color.FgGray}
	ColorOpen = color.Style{color.FgDefault}
	ColorRoom = color.Style{color.FgBlue}
	ColorEntrance = color.Style{color.FgCyan, color.OpBold}
	ColorOccupied = color.Style{color.FgRed, color.OpBold}
	ColorDumping = color.Style{color.FgYellow, color.OpBold}
	ColorLoading = color.Style{color.FgMagenta, color.OpBold}
	ColorWave = color.Style{color.FgBlue, color.OpBold}
	ColorRoute = color.Style{color.FgGreen, color.OpBold}
	ColorEndpoint = color.Style{color.FgGreen, color.BgBlack, color.OpBold}

	ColorTitle = color.Style{color.FgMagenta, color.OpBold}
	ColorSubtle = color.Style{color.FgGray, color.OpBold}
	ColorNumber = color.Style{color.FgYellow}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
}

func init() {
	InitColors()
}

// KindStyle returns the colour a kind is drawn in
func KindStyle(k CellKind) color.Style {
	switch k {
	case KindWall:
		return ColorWall
	case KindRoom:
		return ColorRoom
	case KindEntrance:
		return ColorEntrance
	case KindOccupied:
		return ColorOccupied
	case KindDumping:
		return ColorDumping
	case KindLoading:
		return ColorLoading
	case KindWave:
		return ColorWave
	case KindRoute:
		return ColorRoute
	case KindStart, KindGoal:
		return ColorEndpoint
	default:
		return ColorOpen
	}
}

// StyleText applies a style to text
func StyleText(s string, style TextStyle) string {
	switch style {
	case StyleTitle:
		return ColorTitle.Sprint(s)
	case StyleSubtle:
		return ColorSubtle.Sprint(s)
	case StyleNumber:
		return ColorNumber.Sprint(s)
	case StyleDenied:
		return ColorDenied.Sprint(s)
	case StyleRoute:
		return ColorRoute.Sprint(s)
	default:
		return s
	}
}

// FormatString formats a string with special markup: GT{KEY} translates,
// NUM{..} highlights, ERR{..} marks a failure and TITLE{KEY} translates into
// a heading.
func FormatString(msg string, a ...any) string {
	ret := fmt.Sprintf(msg, a...)

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = text.Lookup(operand)
		case "TITLE":
			val = StyleText(text.Lookup(operand), StyleTitle)
		case "NUM":
			val = StyleText(operand, StyleNumber)
		case "ERR":
			val = StyleText(operand, StyleDenied)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}
