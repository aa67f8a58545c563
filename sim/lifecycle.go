package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savannah/components"
	"github.com/pthm-cable/savannah/config"
	"github.com/pthm-cable/savannah/systems"
	"github.com/pthm-cable/savannah/telemetry"
)

// stepAnimal runs one animal's turn: metabolism, death checks, pregnancy,
// the periodic speed refresh, then target resolution and movement.
func (w *World) stepAnimal(e ecs.Entity) {
	an := w.animalMap.Get(e)

	// Killed earlier this tick by another animal's turn
	if an.Dead {
		w.finalize(e, telemetry.EventEaten)
		return
	}

	pos := w.posMap.Get(e)
	sp := w.speciesCfg(an.Species)

	an.Food -= w.cfg.Clock.FoodPerTick
	an.Age += w.cfg.Clock.AgePerTick

	if an.Food <= 0 {
		Logf("[DEATH] %s %d starved to death", an.Species, an.ID)
		w.finalize(e, telemetry.EventStarved)
		return
	}
	if an.Age > an.MaxAge {
		Logf("[DEATH] %s %d aged out", an.Species, an.ID)
		w.finalize(e, telemetry.EventAgedOut)
		return
	}

	if an.Pregnancy > 0 {
		an.Food -= w.cfg.Clock.FoodPerTick / w.cfg.Clock.GestationFoodDivisor
		an.Pregnancy += w.cfg.Clock.AgePerTick
		if an.Pregnancy >= 1 {
			an.Pregnancy = 0
			w.giveBirth(an.ID, an.Species, pos.X, pos.Y)
			// Creating the litter can move component storage; the old
			// pointers must not be used again.
			an = w.animalMap.Get(e)
			pos = w.posMap.Get(e)
		}
	}

	if w.tick%w.cfg.Clock.SpeedRefreshTicks == 0 {
		w.refreshSpeed(an, sp)
	}

	an.Target = w.chooseTarget(pos, an)
	target := an.Target
	if target == noTarget {
		return
	}
	if !w.ecs.Alive(target) {
		Logf("[TARGET] %s %d lost its target", an.Species, an.ID)
		an.Target = noTarget
		return
	}

	tp := w.posMap.Get(target)
	nx, ny := systems.Advance(pos.X, pos.Y, tp.X, tp.Y, an.Speed)
	if cx, cy, clamped := w.clampToBounds(nx, ny); clamped {
		Logf("[BOUNDS] %s %d clamped from (%.2f, %.2f)", an.Species, an.ID, nx, ny)
		nx, ny = cx, cy
	}
	pos.X, pos.Y = nx, ny
	w.index.Move(e, nx, ny)
}

// refreshSpeed recomputes speed from the age curve; pregnancy drags it down.
func (w *World) refreshSpeed(an *components.Animal, sp *config.SpeciesConfig) {
	an.Speed = systems.AgeSpeed(an.Age, an.MaxAge, sp.MaxSpeed)
	if an.Pregnancy > 0 {
		an.Speed -= an.Pregnancy
	}
}

// finalize removes a dead animal from the counters, the spatial index and
// the entity table. cause selects the reported death event.
func (w *World) finalize(e ecs.Entity, cause telemetry.EventType) {
	an := w.animalMap.Get(e)
	pos := w.posMap.Get(e)

	w.collector.RecordDeath(kindOf(an.Species))
	if an.Species == components.SpeciesTiger {
		w.tigerCount--
	} else {
		w.preyCount--
	}

	w.events = append(w.events, telemetry.NewDeathEvent(cause, int32(w.tick), an.ID, an.Species, pos.X, pos.Y))

	// The oldest marks fall off once the graveyard grows past the cap
	w.deathMarks = append(w.deathMarks, DeathMark{X: pos.X, Y: pos.Y})
	if len(w.deathMarks) > maxDeathMarks {
		w.deathMarks = w.deathMarks[len(w.deathMarks)-maxDeathMarks:]
	}

	w.index.Remove(e)
	w.ecs.RemoveEntity(e)
}

func (w *World) clampToBounds(x, y float64) (cx, cy float64, clamped bool) {
	cx = math.Min(math.Max(x, 0), w.cfg.Derived.WorldW)
	cy = math.Min(math.Max(y, 0), w.cfg.Derived.WorldH)
	return cx, cy, cx != x || cy != y
}

func (w *World) speciesCfg(sp components.Species) *config.SpeciesConfig {
	if sp == components.SpeciesTiger {
		return &w.cfg.Tiger
	}
	return &w.cfg.Prey
}
