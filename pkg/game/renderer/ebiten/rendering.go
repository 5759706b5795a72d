package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	engineinput "haulcity/pkg/engine/input"
	"haulcity/pkg/game/renderer"
	gametext "haulcity/pkg/game/text"
)

// Update handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.WithField("size", []int{w, h}).Debug("viewer window opened")
	}

	select {
	case <-e.closed:
		return ebiten.Termination
	default:
	}

	e.advanceZoom()

	intent := e.checkInput()
	if e.handleZoom(intent.Action) {
		return nil
	}

	e.snapshotMutex.RLock()
	waiting := e.waiting
	snap := e.snapshot
	valid := e.valid
	e.snapshotMutex.RUnlock()

	switch {
	case intent.Action == engineinput.ActionNone:
	case waiting:
		// Non-blocking send to the waiting Observe
		select {
		case e.inputChan <- intent:
		default:
			// Channel full, drop input
		}
	case intent.Action == engineinput.ActionQuit:
		return ebiten.Termination
	case valid && e.onAction != nil &&
		(intent.Action == engineinput.ActionScreenshot || intent.Action == engineinput.ActionDumpMap):
		e.onAction(intent.Action, snap)
	}
	return nil
}

// Draw renders the latest snapshot (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	e.snapshotMutex.RLock()
	frame := e.frame
	valid := e.valid
	failed := e.snapshot.Err != nil
	e.snapshotMutex.RUnlock()

	if !valid || e.monoFontSource == nil {
		return
	}

	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	captionColor := colorText
	if failed {
		captionColor = colorDenied
	}
	e.drawText(screen, frame.Caption, 8, 6, captionColor)
	e.drawText(screen, gametext.Get("WINDOW_KEYS", engineinput.KeyHelp(engineinput.DeviceKeyboard)), 8, 6+baseFontSize+4, colorSubtle)

	tile := e.drawnTileSize
	mapWidth := float32(frame.Cols) * tile
	mapHeight := float32(frame.Rows) * tile
	offsetX := (float32(screenWidth) - mapWidth) / 2
	if offsetX < 0 {
		offsetX = 0
	}
	offsetY := headerHeight + (float32(screenHeight)-headerHeight-mapHeight)/2
	if offsetY < headerHeight {
		offsetY = headerHeight
	}

	vector.DrawFilledRect(screen, offsetX, offsetY, mapWidth, mapHeight, colorMapBackground, false)
	gap := float32(0)
	if tile >= 8 {
		gap = 1
	}
	for row := 0; row < frame.Rows; row++ {
		y := offsetY + float32(row)*tile
		if y > float32(screenHeight) {
			break
		}
		for col := 0; col < frame.Cols; col++ {
			x := offsetX + float32(col)*tile
			if x > float32(screenWidth) {
				break
			}
			vector.DrawFilledRect(screen, x, y, tile-gap, tile-gap, kindColor(frame.At(row, col)), false)
		}
	}
}

// Layout returns the game's logical screen size
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (e *EbitenRenderer) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, e.getMonoFontFace(), op)
}

func kindColor(k renderer.CellKind) color.RGBA {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return colorDenied
}
