// Package ebiten provides an Ebiten-based window that replays search snapshots.
package ebiten

import (
	"image/color"

	"haulcity/pkg/game/renderer"
)

// Color palette for the viewer
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorText          = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle        = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorDenied        = color.RGBA{255, 100, 100, 255} // Bright red
)

var kindColors = map[renderer.CellKind]color.RGBA{
	renderer.KindWall:     {60, 60, 80, 255},
	renderer.KindOpen:     {36, 36, 56, 255},
	renderer.KindRoom:     {50, 70, 140, 255},
	renderer.KindEntrance: {0, 200, 220, 255},
	renderer.KindOccupied: {255, 80, 80, 255},
	renderer.KindDumping:  {255, 220, 100, 255},
	renderer.KindLoading:  {220, 120, 255, 255},
	renderer.KindWave:     {40, 80, 170, 255},
	renderer.KindRoute:    {0, 220, 0, 255},
	renderer.KindStart:    {100, 255, 100, 255},
	renderer.KindGoal:     {255, 255, 0, 255},
}

// Tile size constraints
const (
	minTileSize     = 4
	maxTileSize     = 48
	tileSizeStep    = 2
	defaultTileSize = 16
	baseFontSize    = 14.0
	headerHeight    = 48
	zoomSeconds     = 0.15
)
