package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/savannah/sim"
)

// inspectorHeight is the fixed panel height in pixels.
const inspectorHeight = 176

// Inspector renders the pinned animal panel. The caller picks an animal
// with the mouse and keeps feeding its view here every frame.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	pinned   uint32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Pin selects an animal by id.
func (ins *Inspector) Pin(id uint32) {
	ins.pinned = id
}

// Unpin clears the selection.
func (ins *Inspector) Unpin() {
	ins.pinned = 0
}

// PinnedID returns the selected animal id, 0 when nothing is pinned.
func (ins *Inspector) PinnedID() uint32 {
	return ins.pinned
}

// Bounds returns the panel rectangle, zero when nothing is pinned.
func (ins *Inspector) Bounds() rl.Rectangle {
	if ins.pinned == 0 {
		return rl.Rectangle{}
	}
	return rl.Rectangle{
		X:      float32(ins.x),
		Y:      float32(ins.y),
		Width:  float32(ins.width),
		Height: float32(inspectorHeight),
	}
}

// Draw renders the panel for the pinned animal.
func (ins *Inspector) Draw(view sim.AnimalView) {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2

	r.DrawPanel(ins.x, ins.y, ins.width, inspectorHeight)

	x := ins.x + padding
	y := ins.y + padding

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("%s %d", view.Species, view.ID))
	y = r.DrawSpacer(y, 2)

	y = r.DrawLabelValue(x, y, "Gender", view.Gender.String())
	y = r.DrawEnergyBar(x, y, "Food", float32(view.Food), 100, contentWidth)
	y = r.DrawEnergyBar(x, y, "Age", float32(view.Age), float32(view.MaxAge), contentWidth)
	y = r.DrawBar(x, y, "Pregnancy", float32(view.Pregnancy), contentWidth)
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.2f", view.Speed))
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("(%.1f, %.1f)", view.X, view.Y))

	target := "none"
	if view.TargetID != 0 {
		target = fmt.Sprintf("#%d", view.TargetID)
	}
	r.DrawLabelValue(x, y, "Target", target)
}
