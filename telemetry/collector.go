// Package telemetry aggregates per-window simulation statistics and
// structured event records for CSV output.
package telemetry

// Kind constants mirror the species ordinals used by the simulation.
const (
	KindPrey  uint8 = 0
	KindTiger uint8 = 1
)

// Collector accumulates event counts over a telemetry window.
type Collector struct {
	windowTicks int
	windowStart int

	preyBirths  int
	tigerBirths int
	preyDeaths  int
	tigerDeaths int
	kills       int
	grazings    int
	matings     int
}

// NewCollector creates a collector that aggregates over windows of the
// given length in ticks.
func NewCollector(windowTicks int) *Collector {
	return &Collector{windowTicks: windowTicks}
}

// RecordBirths adds a litter to the window's birth count.
func (c *Collector) RecordBirths(kind uint8, n int) {
	if kind == KindTiger {
		c.tigerBirths += n
	} else {
		c.preyBirths += n
	}
}

// RecordDeath counts one death of the given kind, whatever the cause.
func (c *Collector) RecordDeath(kind uint8) {
	if kind == KindTiger {
		c.tigerDeaths++
	} else {
		c.preyDeaths++
	}
}

// RecordKill counts one successful predation.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordGrazing counts one grass patch eaten.
func (c *Collector) RecordGrazing() {
	c.grazings++
}

// RecordMating counts one impregnation.
func (c *Collector) RecordMating() {
	c.matings++
}

// ShouldFlush reports whether a window ends at the given tick.
func (c *Collector) ShouldFlush(tick int) bool {
	return tick > 0 && tick%c.windowTicks == 0
}

// Flush builds the stats for the window ending at tick and resets the
// counters for the next window. The food slices are sampled at window end
// and are sorted in place.
func (c *Collector) Flush(tick, prey, tigers int, grassCoverage float64, preyFood, tigerFood []float64) WindowStats {
	stats := WindowStats{
		WindowStart:   c.windowStart,
		WindowEnd:     tick,
		Prey:          prey,
		Tigers:        tigers,
		GrassCoverage: grassCoverage,
		PreyBirths:    c.preyBirths,
		TigerBirths:   c.tigerBirths,
		PreyDeaths:    c.preyDeaths,
		TigerDeaths:   c.tigerDeaths,
		Kills:         c.kills,
		Grazings:      c.grazings,
		Matings:       c.matings,
	}
	stats.PreyFoodMean, stats.PreyFoodP10, stats.PreyFoodP50, stats.PreyFoodP90 = FoodStats(preyFood)
	stats.TigerFoodMean, stats.TigerFoodP10, stats.TigerFoodP50, stats.TigerFoodP90 = FoodStats(tigerFood)

	c.windowStart = tick
	c.preyBirths = 0
	c.tigerBirths = 0
	c.preyDeaths = 0
	c.tigerDeaths = 0
	c.kills = 0
	c.grazings = 0
	c.matings = 0

	return stats
}
