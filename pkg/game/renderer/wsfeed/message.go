package wsfeed

import (
	"encoding/json"

	"haulcity/pkg/game/pathfind"
	"haulcity/pkg/game/renderer"
)

// Message is the JSON form of one snapshot
type Message struct {
	Stage   string   `json:"stage"`
	Round   int      `json:"round"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Start   [2]int   `json:"start"`
	Goal    [2]int   `json:"goal"`
	Map     []string `json:"map"`
	Route   [][2]int `json:"route,omitempty"`
	Caption string   `json:"caption"`
	Error   string   `json:"error,omitempty"`
}

// NewMessage flattens a snapshot into its wire form. Map rows use the same
// symbols as map dumps.
func NewMessage(s pathfind.Snapshot) Message {
	f := renderer.BuildFrame(s)
	m := Message{
		Stage:   s.Stage.String(),
		Round:   s.Round,
		Rows:    s.Rows,
		Cols:    s.Cols,
		Start:   [2]int{s.Start.Row, s.Start.Col},
		Goal:    [2]int{s.Goal.Row, s.Goal.Col},
		Map:     make([]string, f.Rows),
		Caption: f.Caption,
	}
	row := make([]rune, f.Cols)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			row[c] = f.At(r, c).Symbol()
		}
		m.Map[r] = string(row)
	}
	for _, p := range s.Route {
		m.Route = append(m.Route, [2]int{p.Row, p.Col})
	}
	if s.Err != nil {
		m.Error = s.Err.Error()
	}
	return m
}

func encode(s pathfind.Snapshot) ([]byte, error) {
	return json.Marshal(NewMessage(s))
}
