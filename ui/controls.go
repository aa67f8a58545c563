package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/savannah/config"
)

// Action is what the control panel asks the caller to do this frame.
type Action int

const (
	ActionNone  Action = iota
	ActionGo           // restart the run with the pending settings
	ActionReset        // put the pending settings back to the loaded config
)

// ControlPanel holds the pending run settings edited through sliders.
// Nothing takes effect until the Go button applies them to a config.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	Prey          float32
	Tigers        float32
	MaxTicks      float32
	FoodPerTick   float32
	RegrowYears   float32
	RockFraction  float32
	PreyLitter    float32
	TigerLitter   float32
	PreyLifespan  float32
	TigerLifespan float32
	PreyRadius    float32
	TigerRadius   float32
}

// NewControlPanel creates the panel seeded from a config.
func NewControlPanel(x, y, width int32, cfg *config.Config) *ControlPanel {
	c := &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
	c.Seed(cfg)
	return c
}

// Seed resets the pending values from a config.
func (c *ControlPanel) Seed(cfg *config.Config) {
	c.Prey = float32(cfg.World.InitialPrey)
	c.Tigers = float32(cfg.World.InitialTigers)
	c.MaxTicks = float32(cfg.Clock.MaxTicks)
	c.FoodPerTick = float32(cfg.Clock.FoodPerTick)
	c.RegrowYears = float32(cfg.Clock.GrassRegrowYears)
	c.RockFraction = float32(cfg.World.RockFraction)
	c.PreyLitter = float32(cfg.Prey.LitterSize)
	c.TigerLitter = float32(cfg.Tiger.LitterSize)
	c.PreyLifespan = float32(cfg.Prey.MeanLifespan)
	c.TigerLifespan = float32(cfg.Tiger.MeanLifespan)
	c.PreyRadius = float32(cfg.Prey.ForageRadius)
	c.TigerRadius = float32(cfg.Tiger.ForageRadius)
}

// Apply writes the pending values into cfg and recomputes derived values.
// Slider bounds keep every value inside the validated ranges.
func (c *ControlPanel) Apply(cfg *config.Config) {
	cfg.World.InitialPrey = roundInt(c.Prey)
	cfg.World.InitialTigers = roundInt(c.Tigers)
	cfg.Clock.MaxTicks = roundInt(c.MaxTicks)
	cfg.Clock.FoodPerTick = float64(c.FoodPerTick)
	cfg.Clock.GrassRegrowYears = float64(c.RegrowYears)
	cfg.World.RockFraction = float64(c.RockFraction)
	cfg.Prey.LitterSize = float64(c.PreyLitter)
	cfg.Tiger.LitterSize = float64(c.TigerLitter)
	cfg.Prey.MeanLifespan = float64(c.PreyLifespan)
	cfg.Tiger.MeanLifespan = float64(c.TigerLifespan)
	cfg.Prey.ForageRadius = float64(c.PreyRadius)
	cfg.Tiger.ForageRadius = float64(c.TigerRadius)
	cfg.ComputeDerived()
}

// SetVisible shows or hides the panel.
func (c *ControlPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Bounds returns the panel rectangle, zero when hidden. Callers use it to
// keep world clicks from landing through the panel.
func (c *ControlPanel) Bounds() rl.Rectangle {
	if !c.visible {
		return rl.Rectangle{}
	}
	const rows = 12
	panelHeight := int32(30) + rows*35 + 50 + c.renderer.Theme.Padding*2
	return rl.Rectangle{
		X:      float32(c.x),
		Y:      float32(c.y),
		Width:  float32(c.width),
		Height: float32(panelHeight),
	}
}

// Draw renders the panel and returns the action requested this frame.
func (c *ControlPanel) Draw() Action {
	if !c.visible {
		return ActionNone
	}

	r := c.renderer
	padding := r.Theme.Padding

	bounds := c.Bounds()
	r.DrawPanel(c.x, c.y, c.width, int32(bounds.Height))

	x := c.x + padding
	y := c.y + padding

	rl.DrawText("Run Settings", x, y, 16, rl.White)
	y += 30

	c.Prey = c.sliderRow(x, &y, "Initial prey", c.Prey, 0, 200, "%.0f")
	c.Tigers = c.sliderRow(x, &y, "Initial tigers", c.Tigers, 0, 200, "%.0f")
	c.MaxTicks = c.sliderRow(x, &y, "Max ticks (0 = endless)", c.MaxTicks, 0, 5000, "%.0f")
	c.FoodPerTick = c.sliderRow(x, &y, "Food cost per tick", c.FoodPerTick, 0, 1.5, "%.2f")
	c.RegrowYears = c.sliderRow(x, &y, "Grass regrow years", c.RegrowYears, 0, 10, "%.1f")
	c.RockFraction = c.sliderRow(x, &y, "Rock fraction", c.RockFraction, 0, 0.1, "%.3f")
	c.PreyLitter = c.sliderRow(x, &y, "Prey litter size", c.PreyLitter, 0, 17.5, "%.1f")
	c.TigerLitter = c.sliderRow(x, &y, "Tiger litter size", c.TigerLitter, 0, 10, "%.1f")
	c.PreyLifespan = c.sliderRow(x, &y, "Prey lifespan", c.PreyLifespan, 1, 45, "%.0f")
	c.TigerLifespan = c.sliderRow(x, &y, "Tiger lifespan", c.TigerLifespan, 1, 85, "%.0f")
	c.PreyRadius = c.sliderRow(x, &y, "Prey forage radius", c.PreyRadius, 0, 10, "%.1f")
	c.TigerRadius = c.sliderRow(x, &y, "Tiger hunt radius", c.TigerRadius, 0, 45, "%.1f")

	y += 10
	action := ActionNone
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 110, Height: 30}, "Go") {
		action = ActionGo
	}
	if gui.Button(rl.Rectangle{X: float32(x + 120), Y: float32(y), Width: 110, Height: 30}, "Reset") {
		action = ActionReset
	}

	return action
}

// sliderRow draws one labeled slider line and returns the live value.
func (c *ControlPanel) sliderRow(x int32, y *int32, label string, value, min, max float32, format string) float32 {
	r := c.renderer
	rl.DrawText(label, x, *y, r.Theme.FontSize, r.Theme.LabelColor)
	*y += 15

	barWidth := float32(c.width - r.Theme.Padding*2 - 55)
	v := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(*y), Width: barWidth, Height: 16},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), x+int32(barWidth)+8, *y+2, r.Theme.FontSize, r.Theme.ValueColor)
	*y += 20

	return v
}

func roundInt(v float32) int {
	return int(math.Round(float64(v)))
}
