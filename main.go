package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/savannah/config"
	"github.com/pthm-cable/savannah/game"
	"github.com/pthm-cable/savannah/sim"
	"github.com/pthm-cable/savannah/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	compress := flag.Bool("compress", false, "Gzip the CSV output files")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", -1, "Stop after N ticks (0 = unlimited, -1 = use config)")
	prey := flag.Int("prey", -1, "Initial prey population (-1 = use config)")
	tigers := flag.Int("tigers", -1, "Initial tiger population (-1 = use config)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	quiet := flag.Bool("quiet", false, "Silence simulation chatter and non-warning logs")

	flag.Parse()

	// Set up slog (JSON to stderr for structured logging)
	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// The simulation's own chatter goes to stdout unless silenced
	if *quiet {
		sim.SetLogWriter(io.Discard)
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := *config.Cfg()

	// CLI overrides
	if *prey >= 0 {
		cfg.World.InitialPrey = *prey
	}
	if *tigers >= 0 {
		cfg.World.InitialTigers = *tigers
	}
	if *maxTicks >= 0 {
		cfg.Clock.MaxTicks = *maxTicks
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Structured experiment output (nil when no directory is given)
	output, err := telemetry.NewOutputManager(*outputDir, *compress)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(&cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Output:         output,
	}

	if *headless {
		runHeadless(cfg, opts)
	} else {
		runWindow(cfg, opts)
	}
}

// runHeadless steps the simulation as fast as possible until extinction or
// the tick limit.
func runHeadless(cfg config.Config, opts game.Options) {
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to build world", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"prey", cfg.World.InitialPrey,
		"tigers", cfg.World.InitialTigers,
		"max_ticks", cfg.Clock.MaxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	start := time.Now()
	for !g.RunComplete() {
		g.UpdateHeadless()
	}

	slog.Info("run finished",
		"ticks", g.Tick(),
		"prey", g.World().PreyCount(),
		"tigers", g.World().TigerCount(),
		"extinct", g.Terminal(),
		"wall_sec", time.Since(start).Seconds(),
	)
}

// runWindow opens the raylib window and drives the interactive loop. The
// window stays open once the run completes so the end state can be
// inspected or a new run started from the control panel.
func runWindow(cfg config.Config, opts game.Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Savannah")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to build world", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}
