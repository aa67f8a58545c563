package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/savannah/ui"
)

// backgroundColor fills the letterbox around the world rectangle.
var backgroundColor = rl.Color{R: 24, G: 26, B: 24, A: 255}

// Draw renders one frame.
func (g *Game) Draw() {
	g.world.Snapshot(&g.snap)

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.renderer.Draw(&g.snap, g.world.DeathMarks(), g.camera, g.overlays, g.inspector.PinnedID())

	g.drawHUD()
	g.drawInspector()
	g.handlePanelAction(g.controls.Draw())

	rl.EndDrawing()
}

func (g *Game) drawHUD() {
	g.hud.Draw(ui.HUDData{
		Tick:          g.world.Tick(),
		MaxTicks:      g.cfg.Clock.MaxTicks,
		PreyCount:     g.world.PreyCount(),
		TigerCount:    g.world.TigerCount(),
		GrassCoverage: g.world.GrassCoverage(),
		TicksPerSec:   g.ticksPerSec,
		FPS:           rl.GetFPS(),
		Seed:          g.world.Seed(),
		Paused:        g.paused,
		Terminal:      g.world.Terminal(),
	})

	g.hud.DrawControls(int32(g.screenHeight),
		"SPACE: Pause | N: Step | R: Restart | < >: Speed | C: Settings | Click: Inspect | I: Close | X/H/T/G: Overlays | Home: Reset view")
}

// drawInspector draws the pinned animal, unpinning once it is gone.
func (g *Game) drawInspector() {
	id := g.inspector.PinnedID()
	if id == 0 {
		return
	}
	for i := range g.snap.Animals {
		if g.snap.Animals[i].ID == id {
			g.inspector.Draw(g.snap.Animals[i])
			return
		}
	}
	g.inspector.Unpin()
}

// handlePanelAction applies what the control panel asked for this frame.
// Go restarts the run with the pending settings and a fresh seed; Reset
// puts the sliders back to the running config.
func (g *Game) handlePanelAction(action ui.Action) {
	switch action {
	case ui.ActionGo:
		cfg := g.cfg
		g.controls.Apply(&cfg)
		seed := time.Now().UnixNano()
		if err := g.Restart(cfg, seed); err != nil {
			slog.Error("failed to restart run", "error", err)
			return
		}
		slog.Info("run restarted",
			"seed", seed,
			"prey", cfg.World.InitialPrey,
			"tigers", cfg.World.InitialTigers,
			"max_ticks", cfg.Clock.MaxTicks,
		)
	case ui.ActionReset:
		g.controls.Seed(&g.cfg)
	}
}
