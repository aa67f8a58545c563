package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick          int
	MaxTicks      int
	PreyCount     int
	TigerCount    int
	GrassCoverage float64
	TicksPerSec   float64
	FPS           int32
	Seed          int64
	Paused        bool
	Terminal      bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("Savannah", 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Prey: %d | Tigers: %d | Grass: %.0f%%", data.PreyCount, data.TigerCount, data.GrassCoverage*100),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | %.0f t/s | FPS: %d | Seed: %d", data.Tick, data.TicksPerSec, data.FPS, data.Seed),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	statusColor := rl.Yellow
	switch {
	case data.Terminal:
		statusText = "EXTINCT"
		statusColor = rl.Red
	case data.Paused:
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, statusColor)

	if data.MaxTicks > 0 {
		h.drawProgress(10, 95, 220, data.Tick, data.MaxTicks)
	}
}

// drawProgress draws the run progress toward the tick limit.
func (h *HUD) drawProgress(x, y, width int32, tick, maxTicks int) {
	t := h.renderer.Theme
	frac := float32(tick) / float32(maxTicks)
	if frac > 1 {
		frac = 1
	}
	rl.DrawRectangle(x, y, width, t.BarHeight, t.BarBg)
	rl.DrawRectangle(x, y, int32(float32(width)*frac), t.BarHeight, t.BarFill)
	rl.DrawText(fmt.Sprintf("%d/%d", tick, maxTicks), x+width+6, y, t.FontSize, t.ValueColor)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
