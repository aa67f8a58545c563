package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/savannah/telemetry"
)

// Update advances the game one frame: input first, then zero or more
// simulation ticks depending on pause state and pacing.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		if g.stepOnce {
			g.stepOnce = false
			g.step()
		}
		return
	}

	if g.RunComplete() {
		return
	}

	if g.tickDelay > 0 && time.Since(g.lastStep) < g.tickDelay {
		return
	}

	for i := 0; i < g.stepsPerUpdate && !g.RunComplete(); i++ {
		g.step()
	}
}

// UpdateHeadless advances the simulation without input or pacing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate && !g.RunComplete(); i++ {
		g.step()
	}
}

func (g *Game) step() {
	g.world.Step()
	g.lastStep = time.Now()
	g.windowTicks++
	g.flushTelemetry()
}

// flushTelemetry writes out the closing stats window, if one just ended.
func (g *Game) flushTelemetry() {
	if !g.world.ShouldFlush() {
		return
	}

	stats := g.world.FlushWindow()
	perf := g.perfWindow()

	g.world.LogWorldState()
	if g.opts.LogStats {
		stats.LogStats()
	}

	out := g.opts.Output
	if out == nil {
		// Events still need draining so they do not pile up
		g.world.DrainEvents()
		return
	}
	if err := out.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := out.WriteEvents(g.world.DrainEvents()); err != nil {
		slog.Error("failed to write events", "error", err)
	}
	if err := out.WritePerf(perf); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// perfWindow closes the wall-clock window and reports its throughput.
func (g *Game) perfWindow() telemetry.PerfStats {
	elapsed := time.Since(g.windowStart)
	tps := 0.0
	if elapsed > 0 {
		tps = float64(g.windowTicks) / elapsed.Seconds()
	}
	g.ticksPerSec = tps
	g.windowStart = time.Now()
	g.windowTicks = 0

	return telemetry.PerfStats{
		WindowEnd:   g.world.Tick(),
		WallMs:      float64(elapsed) / float64(time.Millisecond),
		TicksPerSec: tps,
		Animals:     g.world.PreyCount() + g.world.TigerCount(),
	}
}

// Unload flushes pending output. The window can close between flushes, so
// the tail of the event stream is written here.
func (g *Game) Unload() {
	if g.opts.Output == nil {
		return
	}
	if err := g.opts.Output.WriteEvents(g.world.DrainEvents()); err != nil {
		slog.Error("failed to write events", "error", err)
	}
}
