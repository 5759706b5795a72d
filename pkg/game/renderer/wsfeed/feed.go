// Package wsfeed streams search snapshots to browsers over a websocket.
// Clients that connect late are sent every snapshot they missed first.
package wsfeed

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/sirupsen/logrus"

	"haulcity/pkg/game/pathfind"
)

const (
	// DefaultHistory is how many snapshots are kept for replay
	DefaultHistory = 4096

	sendBuffer = 256
	writeWait  = 5 * time.Second
)

// Feed is a renderer that serves snapshots on /ws and a viewer page on /
type Feed struct {
	addr       string
	maxHistory int
	log        logrus.FieldLogger

	upgrader websocket.Upgrader
	server   *http.Server
	listener net.Listener

	mu      sync.Mutex
	clients map[*client]struct{}
	history [][]byte
	closed  bool
}

// Option configures a Feed
type Option func(*Feed)

// WithHistory caps the replay buffer
func WithHistory(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.maxHistory = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *Feed) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates a feed that will listen on addr once initialised
func New(addr string, opts ...Option) *Feed {
	f := &Feed{
		addr:       addr,
		maxHistory: DefaultHistory,
		log:        logrus.StandardLogger(),
		clients:    make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The feed is read-only and meant for local viewing
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Init starts listening and serving in the background
func (f *Feed) Init() error {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return err
	}
	f.listener = ln

	router := way.NewRouter()
	router.HandleFunc(http.MethodGet, "/ws", f.serveWS)
	router.HandleFunc(http.MethodGet, "/", servePage)
	f.server = &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := f.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.log.WithError(err).Error("live view server stopped")
		}
	}()
	f.log.WithField("addr", ln.Addr().String()).Info("live view listening")
	return nil
}

// Addr returns the address actually listened on, or "" before Init
func (f *Feed) Addr() string {
	if f.listener == nil {
		return ""
	}
	return f.listener.Addr().String()
}

// Observe records the snapshot and sends it to every connected client
func (f *Feed) Observe(s pathfind.Snapshot) {
	msg, err := encode(s)
	if err != nil {
		f.log.WithError(err).Warn("cannot encode snapshot")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	f.history = append(f.history, msg)
	if over := len(f.history) - f.maxHistory; over > 0 {
		f.history = append(f.history[:0:0], f.history[over:]...)
	}
	for c := range f.clients {
		select {
		case c.send <- msg:
		default:
			// Client can't keep up; drop it
			f.dropLocked(c)
		}
	}
}

// Close stops the server and disconnects every client
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	for c := range f.clients {
		f.dropLocked(c)
	}
	f.mu.Unlock()

	if f.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	return f.server.Shutdown(ctx)
}

// Clients returns the number of connected clients
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *Feed) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	c := &client{ws: ws, send: make(chan []byte, sendBuffer)}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		ws.Close()
		return
	}
	backlog := append([][]byte(nil), f.history...)
	f.clients[c] = struct{}{}
	f.mu.Unlock()

	f.log.WithField("remote", r.RemoteAddr).Debug("live view client connected")
	go c.writePump(backlog)
	c.readPump()

	f.mu.Lock()
	if _, ok := f.clients[c]; ok {
		f.dropLocked(c)
	}
	f.mu.Unlock()
	f.log.WithField("remote", r.RemoteAddr).Debug("live view client disconnected")
}

func (f *Feed) dropLocked(c *client) {
	delete(f.clients, c)
	close(c.send)
}

type client struct {
	ws   *websocket.Conn
	send chan []byte
}

// readPump discards client messages and returns once the connection ends
func (c *client) readPump() {
	defer c.ws.Close()
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends the backlog, then live messages until send is closed
func (c *client) writePump(backlog [][]byte) {
	defer c.ws.Close()
	for _, msg := range backlog {
		if !c.write(msg) {
			return
		}
	}
	for msg := range c.send {
		if !c.write(msg) {
			return
		}
	}
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (c *client) write(msg []byte) bool {
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, msg) == nil
}
