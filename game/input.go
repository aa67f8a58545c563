package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Single step while paused
	if g.paused && rl.IsKeyPressed(rl.KeyN) {
		g.stepOnce = true
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 20 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.controls.Toggle()
	}

	// R restarts the run with the current settings and a fresh seed
	if rl.IsKeyPressed(rl.KeyR) {
		seed := time.Now().UnixNano()
		if err := g.Restart(g.cfg, seed); err != nil {
			slog.Error("failed to restart run", "error", err)
		} else {
			slog.Info("run restarted", "seed", seed)
		}
	}
	if rl.IsKeyPressed(rl.KeyI) {
		g.inspector.Unpin()
	}

	// Overlay toggles live in the registry
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}

	g.handleCameraInput()
	g.handleSelection()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.inspector.SetPosition(int32(w)-inspectorWidth-10, 10)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan takes screen pixels, so a constant feels the same at any zoom
	const panSpeed = 8.0

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Drag panning with the right mouse button
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.camera.Pan(-delta.X, -delta.Y)
	}

	// Zoom controls: mouse wheel or +/- keys
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		g.camera.ZoomBy(1.0 + wheelMove*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleSelection pins the animal under a left click, or unpins when the
// click lands on empty ground. Clicks over a panel are ignored.
func (g *Game) handleSelection() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if rl.CheckCollisionPointRec(mouse, g.controls.Bounds()) ||
		rl.CheckCollisionPointRec(mouse, g.inspector.Bounds()) {
		return
	}

	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	view, ok := g.world.AnimalAt(float64(wx), float64(wy), 1)
	if !ok {
		g.inspector.Unpin()
		return
	}
	g.inspector.Pin(view.ID)
}
