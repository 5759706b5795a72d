package ebiten

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween"

	engineinput "haulcity/pkg/engine/input"
	"haulcity/pkg/game/pathfind"
	"haulcity/pkg/game/renderer"
	gametext "haulcity/pkg/game/text"
)

// ActionHandler is called for screenshot and dump keys
type ActionHandler func(action engineinput.Action, s pathfind.Snapshot)

// EbitenRenderer shows snapshots in a window. Observe may be called from any
// goroutine; Run must be called from the main goroutine.
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int

	// Tile size for rendering (adjustable with +/-); drawnTileSize trails
	// it while a zoom tween runs
	tileSize      int
	drawnTileSize float32
	zoomTween     *gween.Tween

	monoFontSource *text.GoTextFaceSource
	cachedMonoFace *text.GoTextFace

	// Latest snapshot and its frame, written by Observe and read by Draw
	snapshot      pathfind.Snapshot
	frame         renderer.Frame
	valid         bool
	snapshotMutex sync.RWMutex

	// Stepping: Observe blocks on inputChan until a key arrives
	step      bool
	waiting   bool
	inputChan chan engineinput.Intent
	closed    chan struct{}
	closeOnce sync.Once

	onAction ActionHandler
	log      logrus.FieldLogger

	windowOpenedLogged bool
}

// Option configures an EbitenRenderer
type Option func(*EbitenRenderer)

// WithStepping pauses the search after every snapshot but the last
func WithStepping(step bool) Option {
	return func(e *EbitenRenderer) { e.step = step }
}

// WithWindowSize sets the initial window size
func WithWindowSize(width, height int) Option {
	return func(e *EbitenRenderer) {
		e.windowWidth = width
		e.windowHeight = height
	}
}

// WithActionHandler handles screenshot and dump keys
func WithActionHandler(h ActionHandler) Option {
	return func(e *EbitenRenderer) { e.onAction = h }
}

// WithLogger sets the logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *EbitenRenderer) { e.log = l }
}

// New creates a new Ebiten renderer
func New(opts ...Option) *EbitenRenderer {
	e := &EbitenRenderer{
		windowWidth:   960,
		windowHeight:  720,
		tileSize:      defaultTileSize,
		drawnTileSize: defaultTileSize,
		inputChan:     make(chan engineinput.Intent, 8),
		closed:        make(chan struct{}),
		log:           logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init loads fonts and sets up the window
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return err
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(gametext.Get("TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Observe stores the snapshot for the next Draw. When stepping it then
// waits for a step key, a run key or the window closing.
func (e *EbitenRenderer) Observe(s pathfind.Snapshot) {
	e.snapshotMutex.Lock()
	e.snapshot = s
	e.frame = renderer.BuildFrame(s)
	e.valid = true
	step := e.step
	e.snapshotMutex.Unlock()

	if !step || s.Stage == pathfind.StageDone {
		return
	}

	e.setWaiting(true)
	defer e.setWaiting(false)
	for {
		select {
		case <-e.closed:
			return
		case intent := <-e.inputChan:
			switch intent.Action {
			case engineinput.ActionRun, engineinput.ActionQuit:
				e.snapshotMutex.Lock()
				e.step = false
				e.snapshotMutex.Unlock()
				return
			case engineinput.ActionScreenshot, engineinput.ActionDumpMap:
				if e.onAction != nil {
					e.onAction(intent.Action, s)
				}
			default:
				return
			}
		}
	}
}

func (e *EbitenRenderer) setWaiting(waiting bool) {
	e.snapshotMutex.Lock()
	e.waiting = waiting
	e.snapshotMutex.Unlock()
}

// Close releases a blocked Observe and makes the game loop stop
func (e *EbitenRenderer) Close() error {
	e.closeOnce.Do(func() { close(e.closed) })
	return nil
}

// Run starts the Ebiten game loop and blocks until the window is closed
func (e *EbitenRenderer) Run() error {
	err := ebiten.RunGame(e)
	e.Close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
