package ebiten

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// loadFonts parses the embedded Go Mono face used for captions
func (e *EbitenRenderer) loadFonts() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return err
	}
	e.monoFontSource = src
	return nil
}

// getMonoFontFace returns a cached monospace font face for captions
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	if e.cachedMonoFace == nil {
		e.cachedMonoFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   baseFontSize,
		}
	}
	return e.cachedMonoFace
}
