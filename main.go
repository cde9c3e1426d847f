package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/drawing"
	"github.com/pthm-cable/reef/game"
	"github.com/pthm-cable/reef/renderer"
	"github.com/pthm-cable/reef/store"
	"github.com/pthm-cable/reef/telemetry"
	"github.com/pthm-cable/reef/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	dbPath := flag.String("db", "", "SQLite drawing database (empty = use config, \"-\" = in-memory)")
	importPath := flag.String("import", "", "JSON file of drawings to import before starting")
	headless := flag.Bool("headless", false, "Run without graphics")
	realtime := flag.Bool("realtime", false, "Pace headless frames on wall time instead of synthetic steps")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, then time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if err := run(cfg, runFlags{
		dbPath:     *dbPath,
		importPath: *importPath,
		headless:   *headless,
		realtime:   *realtime,
		logStats:   *logStats,
		outputDir:  *outputDir,
		seed:       *seed,
		maxFrames:  *maxFrames,
	}); err != nil {
		slog.Error("reef stopped", "error", err)
		os.Exit(1)
	}
}

type runFlags struct {
	dbPath     string
	importPath string
	headless   bool
	realtime   bool
	logStats   bool
	outputDir  string
	seed       int64
	maxFrames  int64
}

func run(cfg *config.Config, f runFlags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	st, err := openStore(cfg, f.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if f.importPath != "" {
		if err := importDrawings(ctx, st, f.importPath); err != nil {
			return err
		}
	}
	if cfg.Store.SeedSamples {
		if _, err := store.SeedIfEmpty(ctx, st, drawing.Samples()); err != nil {
			return err
		}
	}

	output, err := telemetry.NewOutputManager(f.outputDir)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	// Build game options
	opts := game.OptionsFromConfig(cfg)
	switch {
	case f.seed != 0:
		opts.Seed = f.seed
	case cfg.Scene.Seed == 0:
		opts.Seed = time.Now().UnixNano()
	}
	opts.Output = output
	opts.LogStats = f.logStats

	g := game.NewGame(opts)
	syncer := game.NewSyncer(st, g, cfg.Derived.PollInterval)

	// Initial list so the first frame already has the roster
	if err := syncer.Sync(ctx, ""); err != nil {
		slog.Error("failed to fetch drawings", "error", err)
	}
	go syncer.Run(ctx)

	slog.Info("starting reef",
		"seed", opts.Seed,
		"headless", f.headless,
		"realtime", f.realtime,
		"max_frames", f.maxFrames,
		"width", opts.Width,
		"height", opts.Height,
	)

	if f.headless {
		return runHeadless(ctx, cfg, g, f.realtime, f.maxFrames)
	}
	return runWindow(ctx, cfg, g, st, syncer, f.maxFrames)
}

// openStore picks the drawing store: the -db flag wins over config, and
// "-" or an empty path keeps drawings in memory.
func openStore(cfg *config.Config, flagPath string) (store.Store, error) {
	path := cfg.Store.Path
	if flagPath != "" {
		path = flagPath
	}
	if path == "" || path == "-" {
		slog.Info("using in-memory drawing store")
		return store.NewMemoryStore(), nil
	}
	s, err := store.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("opening drawing store: %w", err)
	}
	slog.Info("opened drawing store", "path", path)
	return s, nil
}

func importDrawings(ctx context.Context, st store.Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}
	list, err := drawing.Validate(raw)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	stored, err := store.Import(ctx, st, list)
	if err != nil {
		return err
	}
	slog.Info("imported drawings", "path", path, "count", len(stored))
	return nil
}

func frameStep(cfg *config.Config) time.Duration {
	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// runHeadless drives the compositor without a canvas, on synthetic
// timestamps or, in realtime mode, paced on wall time.
func runHeadless(ctx context.Context, cfg *config.Config, g *game.Game, realtime bool, maxFrames int64) error {
	var src game.FrameSource = &game.StepSource{Step: frameStep(cfg), Limit: maxFrames}
	if realtime {
		ticker := game.NewTickerSource(frameStep(cfg))
		defer ticker.Close()
		src = ticker
	}

	var loop *game.Loop
	loop = game.NewLoop(src, func(now time.Duration) {
		g.Frame(now)
		if maxFrames > 0 && g.FrameCount() >= maxFrames {
			loop.Stop()
		}
	})

	err := loop.Run(ctx)
	slog.Info("headless run finished",
		"frames", loop.Frames(),
		"lobsters", g.Count(),
		"sim_time", g.SimTime(),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// raylibSource yields one frame per window refresh. rl.EndDrawing paces
// frames to the target FPS, so NextFrame itself never waits.
type raylibSource struct{}

func (raylibSource) NextFrame(ctx context.Context) (time.Duration, bool) {
	if ctx.Err() != nil || rl.WindowShouldClose() {
		return 0, false
	}
	return time.Duration(rl.GetTime() * float64(time.Second)), true
}

func runWindow(ctx context.Context, cfg *config.Config, g *game.Game, st store.Store, syncer *game.Syncer, maxFrames int64) error {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Reef")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	canvas := renderer.NewRaylibCanvas()
	g.SetCanvas(canvas)

	hud := ui.NewHUD()
	g.OnPlaced = func(id string) {
		slog.Info("lobster_placed", "id", id)
		hud.Toast("A new lobster wanders in")
	}

	remover := &store.Remover{Store: st, OnRemoved: func(string) { syncer.Refresh("") }}
	router := game.NewRouter(g, remover, nil, cfg.Derived.DoubleClickWindow)

	var loop *game.Loop
	loop = game.NewLoop(raylibSource{}, func(now time.Duration) {
		rl.BeginDrawing()

		g.Resize(canvas.Size())
		handleInput(ctx, g, router, st, syncer, hud)
		g.Frame(now)

		w, h := canvas.Size()
		hud.Draw(ui.HUDData{
			Title:        "Reef",
			Lobsters:     g.Count(),
			Airborne:     airborne(g),
			FPS:          rl.GetFPS(),
			SimTime:      g.SimTime(),
			ScreenWidth:  int32(w),
			ScreenHeight: int32(h),
		})

		rl.EndDrawing()
		g.Perf().RecordPresent()

		if maxFrames > 0 && g.FrameCount() >= maxFrames {
			slog.Info("max frames reached", "frame", g.FrameCount())
			loop.Stop()
		}
	})

	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleInput routes clicks and key commands. Store writes run off the
// frame goroutine and refresh the roster when done.
func handleInput(ctx context.Context, g *game.Game, router *game.Router, st store.Store, syncer *game.Syncer, hud *ui.HUD) {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		// The canvas is the window, so client and canvas pixels coincide
		res := router.Click(float64(m.X), float64(m.Y), 1, 1)
		if res.Kind == game.ClickRemove {
			hud.Toast("Lobster released")
		}
	}

	if rl.IsKeyPressed(rl.KeyN) {
		samples := drawing.Samples()
		sample := samples[int(g.FrameCount())%len(samples)]
		if syncer.Submit(sample.Layers) {
			slog.Debug("drawing_queued", "sample", sample.Name)
		}
	}

	if rl.IsKeyPressed(rl.KeyA) {
		go func() {
			n, err := st.Amnesty(ctx)
			if err != nil {
				slog.Error("amnesty failed", "error", err)
				return
			}
			slog.Info("amnesty", "restored", n)
			syncer.Refresh("")
		}()
		hud.Toast("Amnesty: every lobster returns")
	}
}

func airborne(g *game.Game) int {
	n := 0
	for _, l := range g.Lobsters() {
		if l.Airborne() {
			n++
		}
	}
	return n
}
