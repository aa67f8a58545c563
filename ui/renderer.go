package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/savannah/camera"
	"github.com/pthm-cable/savannah/components"
	"github.com/pthm-cable/savannah/sim"
)

// Patch and animal palette.
var (
	grassColor = rl.Color{R: 0, G: 255, B: 0, A: 255}
	eatenColor = rl.Color{R: 202, G: 168, B: 0, A: 255}
	rockColor  = rl.Color{R: 144, G: 143, B: 138, A: 255}

	preyFemaleColor   = rl.Color{R: 245, G: 243, B: 236, A: 255}
	preyMaleColor     = rl.Color{R: 222, G: 217, B: 194, A: 255}
	preyPregnantColor = rl.Color{R: 204, G: 229, B: 255, A: 255}

	tigerFemaleColor   = rl.Color{R: 255, G: 153, B: 51, A: 255}
	tigerMaleColor     = rl.Color{R: 255, G: 128, B: 0, A: 255}
	tigerPregnantColor = rl.Color{R: 255, G: 255, B: 102, A: 255}

	outlineColor    = rl.Color{R: 30, G: 30, B: 30, A: 255}
	gridColor       = rl.Color{R: 0, G: 0, B: 0, A: 40}
	targetLineColor = rl.Color{R: 255, G: 255, B: 255, A: 90}
	hungerRingColor = rl.Color{R: 220, G: 60, B: 60, A: 200}
	selectionColor  = rl.Yellow
	deathMarkColor  = rl.Color{R: 20, G: 20, B: 20, A: 255}
)

// WorldRenderer draws the simulation world through a camera.
type WorldRenderer struct {
	hungerThreshold float64

	// Per-frame scratch for the target lines overlay
	screenPos map[uint32]rl.Vector2
}

// NewWorldRenderer creates a world renderer. hungerThreshold controls the
// hunger rings overlay.
func NewWorldRenderer(hungerThreshold float64) *WorldRenderer {
	return &WorldRenderer{
		hungerThreshold: hungerThreshold,
		screenPos:       make(map[uint32]rl.Vector2, 1024),
	}
}

// Draw renders one frame of the world: patches, death marks, animals and
// any enabled overlays. selectedID rings the inspected animal (0 = none).
func (wr *WorldRenderer) Draw(snap *sim.Snapshot, marks []sim.DeathMark, cam *camera.Camera, overlays *OverlayRegistry, selectedID uint32) {
	showGrid := overlays.IsEnabled(OverlayPatchGrid)
	showTargets := overlays.IsEnabled(OverlayTargetLines)
	showHunger := overlays.IsEnabled(OverlayHungerRings)
	showMarks := overlays.IsEnabled(OverlayDeathMarks)

	cell := cam.Zoom

	// Patches are unit squares anchored at their integer coordinates
	for i := range snap.Patches {
		p := &snap.Patches[i]
		if !cam.IsVisible(float32(p.X)+0.5, float32(p.Y)+0.5, 1) {
			continue
		}
		sx, sy := cam.WorldToScreen(float32(p.X), float32(p.Y))
		rect := rl.Rectangle{X: sx, Y: sy, Width: cell, Height: cell}
		rl.DrawRectangleRec(rect, patchColor(p))
		if showGrid {
			rl.DrawRectangleLinesEx(rect, 1, gridColor)
		}
	}

	if showMarks {
		wr.drawDeathMarks(marks, cam)
	}

	if showTargets {
		wr.collectScreenPositions(snap, cam)
	}

	radius := cell * 0.38
	if radius < 2 {
		radius = 2
	}

	for i := range snap.Animals {
		a := &snap.Animals[i]
		if !cam.IsVisible(float32(a.X), float32(a.Y), 1) {
			continue
		}
		sx, sy := cam.WorldToScreen(float32(a.X), float32(a.Y))
		center := rl.Vector2{X: sx, Y: sy}

		if showTargets && a.TargetID != 0 {
			if tp, ok := wr.screenPos[a.TargetID]; ok {
				rl.DrawLineV(center, tp, targetLineColor)
			}
		}

		rl.DrawCircleV(center, radius, animalColor(a))
		rl.DrawCircleLines(int32(sx), int32(sy), radius, outlineColor)

		if showHunger && a.Food < wr.hungerThreshold {
			rl.DrawCircleLines(int32(sx), int32(sy), radius+3, hungerRingColor)
		}
		if selectedID != 0 && a.ID == selectedID {
			rl.DrawCircleLines(int32(sx), int32(sy), radius+5, selectionColor)
		}
	}
}

// drawDeathMarks draws an "x" at every death site, older marks fainter.
func (wr *WorldRenderer) drawDeathMarks(marks []sim.DeathMark, cam *camera.Camera) {
	size := int32(cam.Zoom * 0.9)
	if size < 8 {
		size = 8
	}
	n := len(marks)
	for i := range marks {
		m := &marks[i]
		if !cam.IsVisible(float32(m.X), float32(m.Y), 1) {
			continue
		}
		col := deathMarkColor
		if n > 1 {
			col.A = uint8(70 + 185*i/(n-1))
		}
		sx, sy := cam.WorldToScreen(float32(m.X), float32(m.Y))
		w := rl.MeasureText("x", size)
		rl.DrawText("x", int32(sx)-w/2, int32(sy)-size/2, size, col)
	}
}

// collectScreenPositions fills the id -> screen position scratch map used
// by the target lines overlay. Patch and animal ids share one counter, so
// a single map covers both.
func (wr *WorldRenderer) collectScreenPositions(snap *sim.Snapshot, cam *camera.Camera) {
	clear(wr.screenPos)
	for i := range snap.Patches {
		p := &snap.Patches[i]
		sx, sy := cam.WorldToScreen(float32(p.X)+0.5, float32(p.Y)+0.5)
		wr.screenPos[p.ID] = rl.Vector2{X: sx, Y: sy}
	}
	for i := range snap.Animals {
		a := &snap.Animals[i]
		sx, sy := cam.WorldToScreen(float32(a.X), float32(a.Y))
		wr.screenPos[a.ID] = rl.Vector2{X: sx, Y: sy}
	}
}

func patchColor(p *sim.PatchView) rl.Color {
	switch {
	case p.Kind == components.KindRock:
		return rockColor
	case p.Grass >= 1:
		return grassColor
	default:
		return eatenColor
	}
}

func animalColor(a *sim.AnimalView) rl.Color {
	if a.Species == components.SpeciesTiger {
		switch {
		case a.Pregnancy > 0:
			return tigerPregnantColor
		case a.Gender == components.Male:
			return tigerMaleColor
		default:
			return tigerFemaleColor
		}
	}
	switch {
	case a.Pregnancy > 0:
		return preyPregnantColor
	case a.Gender == components.Male:
		return preyMaleColor
	default:
		return preyFemaleColor
	}
}
