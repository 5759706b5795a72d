package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"haulcity/pkg/engine/input"
	"haulcity/pkg/engine/terminal"
	"haulcity/pkg/game/pathfind"
	"haulcity/pkg/game/renderer"
	"haulcity/pkg/game/text"
)

// Lines printed around the map: caption, blank, legend, prompt
const reservedLines = 4

// ActionHandler is called for output actions pressed while stepping
type ActionHandler func(action input.Action, s pathfind.Snapshot)

// TUIRenderer draws snapshots to a terminal
type TUIRenderer struct {
	out        io.Writer
	ascii      bool
	clear      bool
	step       bool
	quiet      bool
	readIntent func() (input.Intent, error)
	size       func() (width, height int)
	onAction   ActionHandler
	log        logrus.FieldLogger

	mu sync.Mutex
}

// Option configures a TUIRenderer
type Option func(*TUIRenderer)

// WithOutput sets where frames are written (default stdout)
func WithOutput(w io.Writer) Option {
	return func(t *TUIRenderer) { t.out = w }
}

// WithASCII draws the plain map symbols without colour
func WithASCII(ascii bool) Option {
	return func(t *TUIRenderer) { t.ascii = ascii }
}

// WithClear clears the screen before every frame
func WithClear(clear bool) Option {
	return func(t *TUIRenderer) { t.clear = clear }
}

// WithStepping pauses for a key press after every frame but the last
func WithStepping(step bool) Option {
	return func(t *TUIRenderer) { t.step = step }
}

// WithKeyReader replaces the terminal key reader
func WithKeyReader(read func() (input.Intent, error)) Option {
	return func(t *TUIRenderer) { t.readIntent = read }
}

// WithSize replaces the terminal size probe
func WithSize(size func() (width, height int)) Option {
	return func(t *TUIRenderer) { t.size = size }
}

// WithActionHandler handles screenshot and dump keys
func WithActionHandler(h ActionHandler) Option {
	return func(t *TUIRenderer) { t.onAction = h }
}

// WithLogger sets the logger for key reading failures
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *TUIRenderer) { t.log = l }
}

// New creates a new TUI renderer
func New(opts ...Option) *TUIRenderer {
	t := &TUIRenderer{
		out:        os.Stdout,
		readIntent: input.ReadIntent,
		size:       terminal.GetSize,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the TUI renderer
func (t *TUIRenderer) Init() error {
	renderer.InitColors()
	return nil
}

// Close ends the last frame
func (t *TUIRenderer) Close() error {
	return nil
}

// Observe draws one snapshot, then waits for a key when stepping
func (t *TUIRenderer) Observe(s pathfind.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.quiet && s.Stage == pathfind.StageRound {
		return
	}

	f := renderer.BuildFrame(s)
	width, height := t.size()
	rows, cols := terminal.Viewport(width, height, reservedLines, 1)
	top := window(f.Rows, rows, s.Goal.Row)
	left := window(f.Cols, cols, s.Goal.Col)

	var b strings.Builder
	if t.clear {
		b.WriteString("\033[H\033[2J")
	}
	fmt.Fprintln(&b, t.heading(f.Caption))
	WriteFrame(&b, f, top, left, rows, cols, t.ascii)
	if s.Stage == pathfind.StageStart || s.Stage == pathfind.StageDone {
		fmt.Fprintln(&b, t.subtle(renderer.FormatString("GT{LEGEND}")))
	}
	io.WriteString(t.out, b.String())

	if t.step && s.Stage != pathfind.StageDone {
		t.wait(s)
	}
}

func (t *TUIRenderer) wait(s pathfind.Snapshot) {
	fmt.Fprintln(t.out, t.subtle(text.Get("PRESS_KEY", input.KeyHelp(input.DeviceTerminal))))
	for {
		intent, err := t.readIntent()
		if err != nil {
			t.log.WithError(err).Warn("cannot read key, stepping disabled")
			t.step = false
			return
		}
		switch intent.Action {
		case input.ActionRun:
			t.step = false
			return
		case input.ActionQuit:
			t.step = false
			t.quiet = true
			return
		case input.ActionScreenshot, input.ActionDumpMap:
			if t.onAction != nil {
				t.onAction(intent.Action, s)
			}
		default:
			return
		}
	}
}

func (t *TUIRenderer) heading(s string) string {
	if t.ascii {
		return s
	}
	return renderer.StyleText(s, renderer.StyleTitle)
}

func (t *TUIRenderer) subtle(s string) string {
	if t.ascii {
		return s
	}
	return renderer.StyleText(s, renderer.StyleSubtle)
}

// WriteFrame writes the rows×cols window of f whose top-left cell is
// (top, left). The window is clipped to the frame.
func WriteFrame(w io.Writer, f renderer.Frame, top, left, rows, cols int, ascii bool) {
	var b strings.Builder
	for r := top; r < top+rows && r < f.Rows; r++ {
		for c := left; c < left+cols && c < f.Cols; c++ {
			k := f.At(r, c)
			if ascii {
				b.WriteRune(k.Symbol())
				continue
			}
			b.WriteString(renderer.KindStyle(k).Sprint(k.Icon()))
		}
		b.WriteByte('\n')
	}
	io.WriteString(w, b.String())
}

// window returns the first index of a view of length view over size cells
// that keeps focus as close to the middle as the edges allow
func window(size, view, focus int) int {
	if view >= size {
		return 0
	}
	lo := focus - view/2
	if lo < 0 {
		lo = 0
	}
	if lo > size-view {
		lo = size - view
	}
	return lo
}
