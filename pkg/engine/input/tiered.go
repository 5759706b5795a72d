package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level viewer command.
type Action int

const (
	ActionNone Action = iota

	// Playback
	ActionStep // show the next snapshot
	ActionRun  // stop pausing between snapshots
	ActionQuit // close the viewer

	// Output
	ActionScreenshot // save the current snapshot as HTML
	ActionDumpMap    // write the map as text

	// Window only
	ActionZoomIn
	ActionZoomOut
)

// Intent is the 4th-layer, high-level description of what the user wants.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "KeyQ", "arrow_right", "enter").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing.
// Snapshots are shown one key press at a time, so every RawInput is
// treated as already debounced by the terminal or by Ebiten.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = defaultBindings()

func defaultBindings() map[string]Action {
	return map[string]Action{
		"enter":       ActionStep,
		" ":           ActionStep,
		"n":           ActionStep,
		"arrow_right": ActionStep,
		"KeySpace":    ActionStep,
		"KeyEnter":    ActionStep,
		"KeyN":        ActionStep,
		"KeyRight":    ActionStep,

		"r":    ActionRun,
		"c":    ActionRun,
		"KeyR": ActionRun,
		"KeyC": ActionRun,

		"q":         ActionQuit,
		"quit":      ActionQuit,
		"escape":    ActionQuit,
		"KeyQ":      ActionQuit,
		"KeyEscape": ActionQuit,

		"p":    ActionScreenshot,
		"KeyP": ActionScreenshot,
		"f12":  ActionScreenshot,

		"m":    ActionDumpMap,
		"KeyM": ActionDumpMap,

		// Zoom (fixed bindings, not rebindable)
		"=":        ActionZoomIn,
		"+":        ActionZoomIn,
		"KeyEqual": ActionZoomIn,
		"-":        ActionZoomOut,
		"KeyMinus": ActionZoomOut,
	}
}

// ResetBindings restores the built-in key bindings
func ResetBindings() {
	bindings = defaultBindings()
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionStep:
		return "Step"
	case ActionRun:
		return "Run"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	case ActionDumpMap:
		return "Dump Map"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't shuffle between runs.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all terminal bindings for the given action with
// a single code. Window key names ("Key...") and the quit keys are reserved.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved(c) {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved(code) {
		bindings[code] = action
	}
}

func reserved(code string) bool {
	if len(code) > 3 && code[:3] == "Key" {
		return true
	}
	return code == "escape" || code == "quit"
}
