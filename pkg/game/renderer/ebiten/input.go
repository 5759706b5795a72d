package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	engineinput "haulcity/pkg/engine/input"
)

// keyCodes names the keys the viewer listens to, in the binding namespace
// used by the input package
var keyCodes = map[ebiten.Key]string{
	ebiten.KeySpace:      "KeySpace",
	ebiten.KeyEnter:      "KeyEnter",
	ebiten.KeyN:          "KeyN",
	ebiten.KeyArrowRight: "KeyRight",
	ebiten.KeyR:          "KeyR",
	ebiten.KeyC:          "KeyC",
	ebiten.KeyQ:          "KeyQ",
	ebiten.KeyEscape:     "KeyEscape",
	ebiten.KeyP:          "KeyP",
	ebiten.KeyM:          "KeyM",
	ebiten.KeyEqual:      "KeyEqual",
	ebiten.KeyMinus:      "KeyMinus",
}

// checkInput returns the intent of the first key pressed this tick
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	for key, code := range keyCodes {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		raw := engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: code}
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(raw))
		if intent.Action != engineinput.ActionNone {
			return intent
		}
	}
	return engineinput.Intent{Action: engineinput.ActionNone}
}

// handleZoom adjusts the tile size for zoom intents and starts a tween from
// the size currently drawn to the new one
func (e *EbitenRenderer) handleZoom(action engineinput.Action) bool {
	switch action {
	case engineinput.ActionZoomIn:
		if e.tileSize+tileSizeStep <= maxTileSize {
			e.tileSize += tileSizeStep
		}
	case engineinput.ActionZoomOut:
		if e.tileSize-tileSizeStep >= minTileSize {
			e.tileSize -= tileSizeStep
		}
	default:
		return false
	}
	e.zoomTween = gween.New(e.drawnTileSize, float32(e.tileSize), zoomSeconds, ease.OutQuad)
	return true
}

// advanceZoom moves the zoom tween on by one tick
func (e *EbitenRenderer) advanceZoom() {
	if e.zoomTween == nil {
		e.drawnTileSize = float32(e.tileSize)
		return
	}
	current, finished := e.zoomTween.Update(1 / float32(ebiten.TPS()))
	e.drawnTileSize = current
	if finished {
		e.zoomTween = nil
	}
}
