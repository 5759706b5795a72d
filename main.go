package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"haulcity/pkg/engine/input"
	"haulcity/pkg/engine/world"
	"haulcity/pkg/game/city"
	"haulcity/pkg/game/devtools"
	"haulcity/pkg/game/generator"
	"haulcity/pkg/game/pathfind"
	"haulcity/pkg/game/renderer"
	ebitenrenderer "haulcity/pkg/game/renderer/ebiten"
	"haulcity/pkg/game/renderer/tui"
	"haulcity/pkg/game/renderer/wsfeed"
	"haulcity/pkg/game/text"
)

const (
	viewTUI    = "tui"
	viewWindow = "window"
	viewNone   = "none"
)

type config struct {
	generator string
	rows      int
	cols      int
	dungeon   generator.DungeonConfig
	seed      int64
	occupied  int

	view    string
	ascii   bool
	step    bool
	stepKey string
	runKey  string
	rounds  bool
	serve   string
	dump    string
	html    string
	lang    string
	debug   bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{dungeon: generator.DefaultDungeonConfig()}

	fs := flag.NewFlagSet("haulcity", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.generator, "generator", generator.DefaultGenerator.Name(), fmt.Sprintf("map generator %v", generator.Names()))
	fs.IntVar(&cfg.rows, "rows", 41, "map rows")
	fs.IntVar(&cfg.cols, "cols", 61, "map columns")
	fs.IntVar(&cfg.dungeon.Cols, "room-cols", cfg.dungeon.Cols, "dungeon: partitions across")
	fs.IntVar(&cfg.dungeon.Rows, "room-rows", cfg.dungeon.Rows, "dungeon: partitions down")
	fs.IntVar(&cfg.dungeon.CorridorWidth, "corridor", cfg.dungeon.CorridorWidth, "dungeon: corridor width")
	fs.Float64Var(&cfg.dungeon.MinRoomRatio, "min-ratio", cfg.dungeon.MinRoomRatio, "dungeon: smallest room side as a fraction of its partition")
	fs.Float64Var(&cfg.dungeon.MaxRoomRatio, "max-ratio", cfg.dungeon.MaxRoomRatio, "dungeon: largest room side as a fraction of its partition")
	fs.Int64Var(&cfg.seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.IntVar(&cfg.occupied, "occupied", 0, "number of random cells to block before searching")
	fs.StringVar(&cfg.view, "view", viewTUI, "visualization: tui, window or none")
	fs.BoolVar(&cfg.ascii, "ascii", false, "tui: plain symbols, no colour")
	fs.BoolVar(&cfg.step, "step", false, "pause after every snapshot")
	fs.StringVar(&cfg.stepKey, "step-key", "", "step mode: the one terminal key that shows the next snapshot")
	fs.StringVar(&cfg.runKey, "run-key", "", "step mode: the one terminal key that stops pausing")
	fs.BoolVar(&cfg.rounds, "rounds", false, "show every propagation round, not just start and end")
	fs.StringVar(&cfg.serve, "serve", "", "serve a live view on this address (e.g. :8080)")
	fs.StringVar(&cfg.dump, "dump", "", "write the map and route as text to this file (- for stdout)")
	fs.StringVar(&cfg.html, "html", "", "save the final snapshot as HTML to this file")
	fs.StringVar(&cfg.lang, "lang", text.DefaultLanguage, fmt.Sprintf("message language %v", text.Languages()))
	fs.BoolVar(&cfg.debug, "debug", false, "debug logging; implies -rounds")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}

	switch cfg.view {
	case viewTUI, viewWindow, viewNone:
	default:
		return nil, fmt.Errorf("unknown -view %q", cfg.view)
	}
	if _, err := generator.Lookup(cfg.generator); err != nil {
		return nil, err
	}
	if cfg.seed == 0 {
		cfg.seed = time.Now().UnixNano()
	}
	if cfg.debug {
		cfg.rounds = true
	}
	if cfg.step && cfg.view == viewNone {
		return nil, errors.New("-step needs -view tui or -view window")
	}
	if cfg.stepKey, err = checkKey("step-key", cfg.stepKey, input.ActionStep); err != nil {
		return nil, err
	}
	if cfg.runKey, err = checkKey("run-key", cfg.runKey, input.ActionRun); err != nil {
		return nil, err
	}
	if cfg.stepKey != "" && cfg.stepKey == cfg.runKey {
		return nil, fmt.Errorf("-step-key and -run-key are both %q", cfg.stepKey)
	}
	return cfg, nil
}

// checkKey normalises a key flag to the code the terminal reader reports
// and rejects keys taken by another action
func checkKey(name, key string, action input.Action) (string, error) {
	switch {
	case key == "":
		return "", nil
	case key == "space":
		key = " "
	case utf8.RuneCountInString(key) != 1:
		return "", fmt.Errorf("-%s must be a single character or space, got %q", name, key)
	default:
		key = strings.ToLower(key)
	}
	if bound, ok := input.BoundTo(key); ok && bound != action {
		return "", fmt.Errorf("-%s %q is already the %s key", name, key, input.ActionName(bound))
	}
	return key, nil
}

// bindKeys applies the key flags to the terminal bindings
func bindKeys(cfg *config) {
	if cfg.stepKey != "" {
		input.SetSingleBinding(input.ActionStep, cfg.stepKey)
	}
	if cfg.runKey != "" {
		input.SetSingleBinding(input.ActionRun, cfg.runKey)
	}
}

// app holds one run of the CLI
type app struct {
	cfg    *config
	out    io.Writer
	logger *log.Logger

	city   *city.City
	feed   *wsfeed.Feed
	window *ebitenrenderer.EbitenRenderer

	mu   sync.Mutex
	last pathfind.Snapshot
}

func newApp(cfg *config, out io.Writer, logger *log.Logger) *app {
	return &app{cfg: cfg, out: out, logger: logger}
}

// observe keeps the latest snapshot for -html and the output keys
func (a *app) observe(s pathfind.Snapshot) {
	a.mu.Lock()
	a.last = s
	a.mu.Unlock()
}

func (a *app) lastSnapshot() pathfind.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *app) printf(msg string, args ...any) {
	fmt.Fprint(a.out, renderer.FormatString(msg, args...))
}

// handleAction serves the screenshot and dump keys of the viewers
func (a *app) handleAction(action input.Action, s pathfind.Snapshot) {
	switch action {
	case input.ActionScreenshot:
		path, err := devtools.SaveSnapshotHTML(a.cfg.html, s)
		if err != nil {
			a.logger.WithError(err).Error("cannot save snapshot")
			return
		}
		a.printf("%s\n", text.Get("SCREENSHOT", path))
	case input.ActionDumpMap:
		path := a.cfg.dump
		if path == "" || path == "-" {
			path = fmt.Sprintf("map-%s.txt", time.Now().Format("20060102-150405"))
		}
		written, err := devtools.DumpMapToFile(path, a.city.Grid(), s.Route)
		if err != nil {
			a.logger.WithError(err).Error("cannot dump map")
			return
		}
		a.printf("%s\n", text.Get("DUMPED", written))
	}
}

// setup creates the sinks and the city. Sinks are registered before the
// city so its observer option sees all of them.
func (a *app) setup() error {
	cfg := a.cfg
	observers := pathfind.Observers{pathfind.ObserverFunc(a.observe)}

	switch cfg.view {
	case viewTUI:
		renderer.SetRenderer(tui.New(
			tui.WithOutput(a.out),
			tui.WithASCII(cfg.ascii),
			tui.WithClear(cfg.step),
			tui.WithStepping(cfg.step),
			tui.WithActionHandler(a.handleAction),
			tui.WithLogger(a.logger),
		))
	case viewWindow:
		a.window = ebitenrenderer.New(
			ebitenrenderer.WithStepping(cfg.step),
			ebitenrenderer.WithActionHandler(a.handleAction),
			ebitenrenderer.WithLogger(a.logger),
		)
		renderer.SetRenderer(a.window)
	default:
		renderer.SetRenderer(nil)
	}
	if err := renderer.Init(); err != nil {
		return err
	}
	observers = append(observers, renderer.Observer())

	if cfg.serve != "" {
		a.feed = wsfeed.New(cfg.serve, wsfeed.WithLogger(a.logger))
		if err := a.feed.Init(); err != nil {
			return err
		}
		a.printf("%s\n", text.Get("SERVING", a.feed.Addr()))
		observers = append(observers, a.feed)
	}

	c, err := city.New(cfg.rows, cfg.cols,
		city.WithSeed(cfg.seed),
		city.WithLogger(a.logger),
		city.WithObserver(observers),
		city.WithRoundSnapshots(cfg.rounds),
	)
	if err != nil {
		return err
	}
	a.city = c
	return nil
}

func (a *app) generate() error {
	cfg := a.cfg
	a.logger.WithField("seed", cfg.seed).Debug("generating")
	if cfg.generator == generator.Dungeon.Name() {
		return a.city.CreateDungeonFrom(cfg.dungeon)
	}
	gen, err := generator.Lookup(cfg.generator)
	if err != nil {
		return err
	}
	return a.city.Generate(gen)
}

// search places the endpoints and obstacles, runs the search and prints
// the outcome. A missing route is reported, not returned.
func (a *app) search(ctx context.Context) error {
	cfg := a.cfg
	c := a.city

	a.printf("TITLE{TITLE}\n")
	a.printf("%s\n", text.Get("GENERATED", cfg.rows, cfg.cols, c.GeneratorName()))
	if layout := c.Layout(); layout != nil {
		a.printf("%s\n", text.Get("ROOMS", len(layout.Rooms), len(c.Dumpings()), len(c.Loadings())))
	}

	start, err := c.SetStart()
	if err != nil {
		return err
	}
	goal, err := c.SetGoal()
	if err != nil {
		return err
	}
	if cfg.occupied > 0 {
		if _, err := c.OccupyRandom(cfg.occupied); err != nil {
			return err
		}
	}
	a.printf("%s\n", text.Get("START_AT", start.String()))
	a.printf("%s\n", text.Get("GOAL_AT", goal.String()))

	res, err := c.Search(ctx, start, goal)
	var route []world.Point
	switch {
	case errors.Is(err, pathfind.ErrNoPathFound):
		a.printf("%s\n", renderer.StyleText(text.Get("NO_ROUTE", start.String(), goal.String()), renderer.StyleDenied))
	case err != nil:
		return err
	default:
		route = res.Route
		a.printf("%s\n", text.Get("ROUTE_FOUND", res.Cost(), res.Rounds))
	}

	return a.writeOutputs(route)
}

func (a *app) writeOutputs(route []world.Point) error {
	cfg := a.cfg
	switch cfg.dump {
	case "":
	case "-":
		devtools.DumpMap(a.out, a.city.Grid(), route)
	default:
		path, err := devtools.DumpMapToFile(cfg.dump, a.city.Grid(), route)
		if err != nil {
			return err
		}
		a.printf("%s\n", text.Get("DUMPED", path))
	}

	if cfg.html != "" {
		path, err := devtools.SaveSnapshotHTML(cfg.html, a.lastSnapshot())
		if err != nil {
			return err
		}
		a.printf("%s\n", text.Get("SCREENSHOT", path))
	}
	return nil
}

func (a *app) close() {
	if err := renderer.Close(); err != nil {
		a.logger.WithError(err).Warn("closing viewer")
	}
	if a.feed != nil {
		if err := a.feed.Close(); err != nil {
			a.logger.WithError(err).Warn("closing live view")
		}
	}
}

// run executes the whole CLI. With the window viewer the search runs in the
// background while the window owns the main goroutine.
func run(ctx context.Context, cfg *config, out io.Writer, logger *log.Logger) error {
	if err := text.Load(cfg.lang); err != nil {
		return err
	}
	bindKeys(cfg)

	a := newApp(cfg, out, logger)
	if err := a.setup(); err != nil {
		a.close()
		return err
	}
	defer a.close()

	if err := a.generate(); err != nil {
		return err
	}

	if a.window == nil {
		if err := a.search(ctx); err != nil {
			return err
		}
		return a.serveUntilDone(ctx)
	}

	searchErr := make(chan error, 1)
	go func() {
		searchErr <- a.search(ctx)
	}()
	if err := a.window.Run(); err != nil {
		return err
	}
	select {
	case err := <-searchErr:
		return err
	case <-ctx.Done():
		return nil
	}
}

// serveUntilDone keeps the live view up until the user interrupts
func (a *app) serveUntilDone(ctx context.Context) error {
	if a.feed == nil {
		return nil
	}
	a.logger.Info("live view stays up until interrupted")
	<-ctx.Done()
	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "haulcity: %v\n", err)
		os.Exit(2)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if cfg.debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, log.StandardLogger()); err != nil {
		log.Fatalf("haulcity: %v", err)
	}
}
