// Package game drives the simulation from a window or a headless loop.
// Input, camera, rendering, the control panel and telemetry output live
// here; the world itself lives in sim.
package game

import (
	"time"

	"github.com/pthm-cable/savannah/camera"
	"github.com/pthm-cable/savannah/config"
	"github.com/pthm-cable/savannah/sim"
	"github.com/pthm-cable/savannah/telemetry"
	"github.com/pthm-cable/savannah/ui"
)

// Panel layout
const (
	inspectorWidth = 260
	controlsWidth  = 290
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool // log window stats via slog
	Headless       bool
	StepsPerUpdate int                      // simulation ticks per update call
	Output         *telemetry.OutputManager // nil disables CSV output
}

// Game couples the world with presentation and output.
type Game struct {
	cfg  config.Config
	opts Options

	world *sim.World

	// Presentation, nil in headless mode
	camera    *camera.Camera
	renderer  *ui.WorldRenderer
	hud       *ui.HUD
	controls  *ui.ControlPanel
	inspector *ui.Inspector
	overlays  *ui.OverlayRegistry

	snap sim.Snapshot

	paused         bool
	stepOnce       bool
	stepsPerUpdate int

	screenWidth  float32
	screenHeight float32

	// Wall-clock pacing between ticks
	tickDelay time.Duration
	lastStep  time.Time

	// Perf window accounting
	windowStart time.Time
	windowTicks int
	ticksPerSec float64
}

// NewGame builds a world from cfg and, unless headless, the presentation
// around it.
func NewGame(cfg config.Config, opts Options) (*Game, error) {
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	world, err := sim.NewWorld(cfg, opts.Seed)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:            world.Config(),
		opts:           opts,
		world:          world,
		stepsPerUpdate: opts.StepsPerUpdate,
		windowStart:    time.Now(),
	}
	g.tickDelay = time.Duration(g.cfg.Screen.TickDelayMs) * time.Millisecond

	if !opts.Headless {
		g.screenWidth = float32(g.cfg.Screen.Width)
		g.screenHeight = float32(g.cfg.Screen.Height)
		g.camera = camera.New(g.screenWidth, g.screenHeight,
			float32(g.cfg.Derived.WorldW), float32(g.cfg.Derived.WorldH))
		g.renderer = ui.NewWorldRenderer(g.cfg.Behavior.HungerThreshold)
		g.hud = ui.NewHUD()
		g.overlays = ui.NewOverlayRegistry()
		g.controls = ui.NewControlPanel(10, 130, controlsWidth, &g.cfg)
		g.inspector = ui.NewInspector(int32(g.screenWidth)-inspectorWidth-10, 10, inspectorWidth)
	}

	return g, nil
}

// Restart rebuilds the world with cfg and a fresh seed, keeping the window,
// camera and output attached.
func (g *Game) Restart(cfg config.Config, seed int64) error {
	if err := g.world.Reset(cfg, seed); err != nil {
		return err
	}
	g.cfg = g.world.Config()
	g.tickDelay = time.Duration(g.cfg.Screen.TickDelayMs) * time.Millisecond
	g.paused = false
	g.stepOnce = false
	if g.inspector != nil {
		g.inspector.Unpin()
	}
	g.windowStart = time.Now()
	g.windowTicks = 0
	g.ticksPerSec = 0
	return nil
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int { return g.world.Tick() }

// Terminal reports whether every animal is gone.
func (g *Game) Terminal() bool { return g.world.Terminal() }

// MaxTicks returns the current run length limit, 0 for unbounded. It can
// change between runs through the control panel.
func (g *Game) MaxTicks() int { return g.cfg.Clock.MaxTicks }

// RunComplete reports whether stepping should stop: extinction or the
// configured tick limit.
func (g *Game) RunComplete() bool {
	if g.world.Terminal() {
		return true
	}
	mt := g.cfg.Clock.MaxTicks
	return mt > 0 && g.world.Tick() >= mt
}

// World exposes the underlying simulation.
func (g *Game) World() *sim.World { return g.world }
