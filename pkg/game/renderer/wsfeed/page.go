package wsfeed

import (
	"html/template"
	"net/http"

	gametext "haulcity/pkg/game/text"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        #caption { color: #bb86fc; margin-bottom: 10px; }
        #map {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            line-height: 1.0;
        }
        .legend { color: #888; margin-top: 10px; }
    </style>
</head>
<body>
    <div id="caption">{{.Title}}</div>
    <pre id="map"></pre>
    <div class="legend">{{.Legend}}</div>
    <script>
        const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
        ws.onmessage = (ev) => {
            const m = JSON.parse(ev.data);
            document.getElementById("caption").textContent = m.caption;
            document.getElementById("map").textContent = m.map.join("\n");
        };
    </script>
</body>
</html>
`))

func servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	pageTemplate.Execute(w, struct{ Title, Legend string }{
		Title:  gametext.Get("TITLE"),
		Legend: gametext.Get("LEGEND"),
	})
}
