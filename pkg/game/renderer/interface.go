package renderer

import (
	"haulcity/pkg/game/pathfind"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleTitle
	StyleSubtle
	StyleNumber
	StyleDenied
	StyleRoute
)

// Renderer defines the interface for visualization backends. Every backend
// is a pathfind observer; it is shown snapshots and never steers the search.
// Implementations include TUI (terminal), Ebiten (window) and a websocket feed.
type Renderer interface {
	// Init prepares the backend (colours, window, listener, ...)
	Init() error

	// Observe draws or forwards one snapshot
	Observe(s pathfind.Snapshot)

	// Close releases the backend. Closing twice is harmless.
	Close() error
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() error {
	if Current != nil {
		return Current.Init()
	}
	return nil
}

// Close closes the current renderer
func Close() error {
	if Current != nil {
		return Current.Close()
	}
	return nil
}

// Observer returns an observer that forwards to whichever renderer is
// current at the time of each snapshot
func Observer() pathfind.Observer {
	return pathfind.ObserverFunc(func(s pathfind.Snapshot) {
		if Current != nil {
			Current.Observe(s)
		}
	})
}
