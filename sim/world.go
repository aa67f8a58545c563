// Package sim implements the savannah predator-prey simulation: a bounded
// continuous plane of terrain patches grazed by prey and hunted over by
// tigers, advanced one synchronous tick at a time.
package sim

import (
	"math/rand"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savannah/components"
	"github.com/pthm-cable/savannah/config"
	"github.com/pthm-cable/savannah/systems"
	"github.com/pthm-cable/savannah/telemetry"
)

// noTarget is the zero entity, meaning "no current target".
var noTarget ecs.Entity

// maxDeathMarks bounds the on-screen graveyard.
const maxDeathMarks = 4096

// DeathMark remembers where an animal died so the renderer can mark the spot.
type DeathMark struct {
	X, Y float64
}

// World owns every entity and drives the simulation. All mutation happens
// inside Step; callers drive it from a render or timer loop and read state
// between ticks.
type World struct {
	cfg  config.Config
	seed int64
	rng  *rand.Rand

	ecs          *ecs.World
	posMap       *ecs.Map1[components.Position]
	animalMap    *ecs.Map1[components.Animal]
	patchMap     *ecs.Map1[components.Patch]
	animalMapper *ecs.Map2[components.Position, components.Animal]
	patchMapper  *ecs.Map2[components.Position, components.Patch]
	animalFilter *ecs.Filter2[components.Position, components.Animal]
	patchFilter  *ecs.Filter2[components.Position, components.Patch]

	index     *systems.Index
	calendar  *systems.Calendar
	collector *telemetry.Collector

	tick     int
	terminal bool
	nextID   uint32

	preyCount    int
	tigerCount   int
	grassPatches int // patches that can ever carry grass
	grownGrass   int // grass patches currently at full level

	order []ecs.Entity       // per-tick activation order, rebuilt each Step
	hood  []systems.Neighbor // scratch for neighborhood queries

	events     []telemetry.Event
	deathMarks []DeathMark
}

// NewWorld validates cfg, builds the world and spawns the initial
// population. The same cfg and seed always produce the same run.
func NewWorld(cfg config.Config, seed int64) (*World, error) {
	w := &World{}
	if err := w.init(cfg, seed); err != nil {
		return nil, err
	}
	return w, nil
}

// Reset discards all entities and rebuilds the world from cfg, so a caller
// can reuse one World value across runs.
func (w *World) Reset(cfg config.Config, seed int64) error {
	return w.init(cfg, seed)
}

func (w *World) init(cfg config.Config, seed int64) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.ComputeDerived()

	w.cfg = cfg
	w.seed = seed
	w.rng = rand.New(rand.NewSource(seed))

	w.ecs = ecs.NewWorld()
	w.posMap = ecs.NewMap1[components.Position](w.ecs)
	w.animalMap = ecs.NewMap1[components.Animal](w.ecs)
	w.patchMap = ecs.NewMap1[components.Patch](w.ecs)
	w.animalMapper = ecs.NewMap2[components.Position, components.Animal](w.ecs)
	w.patchMapper = ecs.NewMap2[components.Position, components.Patch](w.ecs)
	w.animalFilter = ecs.NewFilter2[components.Position, components.Animal](w.ecs)
	w.patchFilter = ecs.NewFilter2[components.Position, components.Patch](w.ecs)

	w.index = systems.NewIndex(cfg.Derived.WorldW, cfg.Derived.WorldH, cfg.Derived.CellSize)
	w.calendar = systems.NewCalendar()
	w.collector = telemetry.NewCollector(cfg.Telemetry.WindowTicks)

	w.tick = 0
	w.terminal = false
	w.nextID = 0
	w.preyCount = 0
	w.tigerCount = 0
	w.grassPatches = 0
	w.grownGrass = 0
	w.order = w.order[:0]
	w.hood = w.hood[:0]
	w.events = nil
	w.deathMarks = nil

	w.spawnPatches()
	w.spawnInitialAnimals()
	return nil
}

// Step advances the world exactly one tick. It is a no-op once the run is
// terminal.
func (w *World) Step() {
	if w.terminal {
		return
	}
	w.tick++

	// Regrow any grass that is due
	for _, e := range w.calendar.Due(w.tick) {
		patch := w.patchMap.Get(e)
		if patch.Grass < 1 {
			patch.Grass = 1
			w.grownGrass++
		}
	}

	// The activation order is snapshotted and shuffled up front, so entities
	// created or removed mid-tick cannot disturb the iteration. Newborns
	// first act on the next tick.
	w.order = w.order[:0]
	query := w.animalFilter.Query()
	for query.Next() {
		w.order = append(w.order, query.Entity())
	}
	w.rng.Shuffle(len(w.order), func(i, j int) {
		w.order[i], w.order[j] = w.order[j], w.order[i]
	})

	for _, e := range w.order {
		if !w.ecs.Alive(e) {
			continue
		}
		w.stepAnimal(e)
	}

	w.sweepDead()

	if w.preyCount+w.tigerCount <= 0 {
		w.terminal = true
		w.logFinale()
	}
}

// sweepDead finalizes animals killed this tick whose own turn had already
// passed, so no tombstone survives into the next tick.
func (w *World) sweepDead() {
	w.order = w.order[:0]
	query := w.animalFilter.Query()
	for query.Next() {
		_, an := query.Get()
		if an.Dead {
			w.order = append(w.order, query.Entity())
		}
	}
	for _, e := range w.order {
		w.finalize(e, telemetry.EventEaten)
	}
}

// Tick returns the number of completed steps.
func (w *World) Tick() int { return w.tick }

// Terminal reports whether every animal is gone. The driver should stop
// calling Step once this is true.
func (w *World) Terminal() bool { return w.terminal }

// PreyCount returns the live prey population.
func (w *World) PreyCount() int { return w.preyCount }

// TigerCount returns the live tiger population.
func (w *World) TigerCount() int { return w.tigerCount }

// Seed returns the seed this run was built from.
func (w *World) Seed() int64 { return w.seed }

// Config returns the configuration the world is running with.
func (w *World) Config() config.Config { return w.cfg }

// GrassCoverage is the fraction of grass patches currently grown.
func (w *World) GrassCoverage() float64 {
	if w.grassPatches == 0 {
		return 0
	}
	return float64(w.grownGrass) / float64(w.grassPatches)
}

// ShouldFlush reports whether a telemetry window ends at the current tick.
func (w *World) ShouldFlush() bool { return w.collector.ShouldFlush(w.tick) }

// FlushWindow aggregates and resets the closing telemetry window.
func (w *World) FlushWindow() telemetry.WindowStats {
	var preyFood, tigerFood []float64
	query := w.animalFilter.Query()
	for query.Next() {
		_, an := query.Get()
		if an.Dead {
			continue
		}
		if an.Species == components.SpeciesTiger {
			tigerFood = append(tigerFood, an.Food)
		} else {
			preyFood = append(preyFood, an.Food)
		}
	}
	return w.collector.Flush(w.tick, w.preyCount, w.tigerCount, w.GrassCoverage(), preyFood, tigerFood)
}

func kindOf(sp components.Species) uint8 {
	if sp == components.SpeciesTiger {
		return telemetry.KindTiger
	}
	return telemetry.KindPrey
}

// novemberPoem closes a run that has lost all its animals. From "No!" by
// Thomas Hood.
const novemberPoem = `No sun - no moon
No morn - no noon
No dawn - no dusk - no proper time of day
No warmth, no cheerfulness, no healthful ease
No comfortable feel in any member
No shade, no shine, no butterflies, no bees
No fruits, no flowers, no leaves, no birds
November`

func (w *World) logFinale() {
	Logf("Simulation stopped at tick %d", w.tick)
	for _, line := range strings.Split(novemberPoem, "\n") {
		Logf("%s", line)
	}
}
