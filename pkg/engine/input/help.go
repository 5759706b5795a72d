package input

import "strings"

// helpOrder is the order actions appear in key help
var helpOrder = []Action{
	ActionStep,
	ActionRun,
	ActionQuit,
	ActionScreenshot,
	ActionDumpMap,
	ActionZoomIn,
	ActionZoomOut,
}

// KeyHelp lists the current bindings of one device, e.g.
// "Step: space/enter  Run: r". DeviceKeyboard describes the window keys,
// anything else the terminal keys. Zoom is window only.
func KeyHelp(device Device) string {
	window := device == DeviceKeyboard
	byAction := GetBindingsByAction()

	var parts []string
	for _, a := range helpOrder {
		if !window && (a == ActionZoomIn || a == ActionZoomOut) {
			continue
		}
		var labels []string
		for _, code := range byAction[a] {
			if label, ok := keyLabel(code, window); ok {
				labels = append(labels, label)
			}
		}
		if len(labels) > 0 {
			parts = append(parts, ActionName(a)+": "+strings.Join(labels, "/"))
		}
	}
	return strings.Join(parts, "  ")
}

func keyLabel(code string, window bool) (string, bool) {
	isWindowCode := strings.HasPrefix(code, "Key")
	switch {
	case window:
		return strings.TrimPrefix(code, "Key"), isWindowCode
	case isWindowCode, code == "quit":
		return "", false
	case code == " ":
		return "space", true
	default:
		return code, true
	}
}

// BoundTo reports the action a code is bound to
func BoundTo(code string) (Action, bool) {
	act, ok := bindings[code]
	return act, ok
}

