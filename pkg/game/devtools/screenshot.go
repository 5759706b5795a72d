package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"haulcity/pkg/game/pathfind"
	"haulcity/pkg/game/renderer"
)

var htmlClasses = map[renderer.CellKind]string{
	renderer.KindWall:     "wall",
	renderer.KindOpen:     "open",
	renderer.KindRoom:     "room",
	renderer.KindEntrance: "entrance",
	renderer.KindOccupied: "occupied",
	renderer.KindDumping:  "dumping",
	renderer.KindLoading:  "loading",
	renderer.KindWave:     "wave",
	renderer.KindRoute:    "route",
	renderer.KindStart:    "endpoint",
	renderer.KindGoal:     "endpoint",
}

// RenderSnapshotHTML renders a search snapshot as a standalone HTML page.
// Every finalized cell carries its cost as a tooltip.
func RenderSnapshotHTML(s pathfind.Snapshot) string {
	frame := renderer.BuildFrame(s)

	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Haul City - Snapshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .caption {
            color: #888;
            margin-bottom: 20px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.0;
            font-size: 14px;
        }
        .wall { color: #666; }
        .open { color: #333; }
        .room { color: #4477ff; }
        .entrance { color: #00ffff; font-weight: bold; }
        .occupied { color: #ff4444; font-weight: bold; }
        .dumping { color: #ffff00; font-weight: bold; }
        .loading { color: #ff66ff; font-weight: bold; }
        .wave { color: #2255aa; }
        .route { color: #00ff00; font-weight: bold; }
        .endpoint { color: #00ff00; background-color: #000; font-weight: bold; }
    </style>
</head>
<body>
`)

	sb.WriteString(fmt.Sprintf(`    <div class="header">%dx%d, %s &rarr; %s</div>`+"\n", s.Rows, s.Cols, s.Start, s.Goal))
	sb.WriteString(fmt.Sprintf(`    <div class="caption">%s</div>`+"\n", html.EscapeString(frame.Caption)))

	sb.WriteString(`    <div class="map-container">` + "\n")
	for row := 0; row < frame.Rows; row++ {
		sb.WriteString(`        <div class="map-row">`)
		for col := 0; col < frame.Cols; col++ {
			kind := frame.At(row, col)
			icon := html.EscapeString(kind.Icon())
			if cost := frame.Cost[row*frame.Cols+col]; cost != pathfind.Unreached {
				sb.WriteString(fmt.Sprintf(`<span class="%s" title="%d,%d cost %d">%s</span>`, htmlClasses[kind], row, col, cost, icon))
				continue
			}
			sb.WriteString(fmt.Sprintf(`<span class="%s">%s</span>`, htmlClasses[kind], icon))
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString(`    </div>` + "\n")

	sb.WriteString(`</body>
</html>
`)
	return sb.String()
}

// SaveSnapshotHTML writes RenderSnapshotHTML to path, or to a timestamped
// file in the working directory when path is empty, and returns the
// absolute path written
func SaveSnapshotHTML(path string, s pathfind.Snapshot) (string, error) {
	if path == "" {
		path = fmt.Sprintf("snapshot-%s.html", time.Now().Format("20060102-150405"))
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(absPath, []byte(RenderSnapshotHTML(s)), 0644); err != nil {
		return "", err
	}
	return absPath, nil
}
