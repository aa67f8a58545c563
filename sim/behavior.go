package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savannah/components"
	"github.com/pthm-cable/savannah/telemetry"
)

// chooseTarget runs one decision step for an animal: interact with the
// current target if it is within reach, otherwise keep approaching it or
// pick a new one. Returns the entity to move toward, or noTarget when the
// animal already acted this tick or found nothing to do.
func (w *World) chooseTarget(pos *components.Position, an *components.Animal) ecs.Entity {
	b := &w.cfg.Behavior
	target := an.Target
	mated := false

	// A target removed since it was chosen is handed back so the caller can
	// drop and log it.
	if target != noTarget && !w.ecs.Alive(target) {
		return target
	}

	if target != noTarget {
		tp := w.posMap.Get(target)
		if distance(pos.X, pos.Y, tp.X, tp.Y) < b.ReachDistance {
			var tPatch *components.Patch
			var tAnimal *components.Animal
			if w.patchMap.HasAll(target) {
				tPatch = w.patchMap.Get(target)
			} else {
				tAnimal = w.animalMap.Get(target)
			}

			switch {
			case an.Species == components.SpeciesPrey && tPatch != nil &&
				tPatch.Grazeable() && an.Food < b.HungerThreshold:
				w.munch(target, tPatch)
				an.Food += b.GrazeGain
				w.collector.RecordGrazing()
				w.events = append(w.events, telemetry.NewGrazingEvent(int32(w.tick), an.ID, b.GrazeGain, tp.X, tp.Y))
				return noTarget

			case an.Species == components.SpeciesTiger && tAnimal != nil &&
				tAnimal.Species == components.SpeciesPrey && an.Food < b.HungerThreshold:
				gain := b.KillGain + tAnimal.Food*b.KillFoodShare
				an.Food += gain
				tAnimal.Dead = true
				Logf("[KILL] Tiger %d ate Prey %d", an.ID, tAnimal.ID)
				w.collector.RecordKill()
				w.events = append(w.events, telemetry.NewKillEvent(int32(w.tick), an.ID, tAnimal.ID, gain, tp.X, tp.Y))
				return noTarget

			case tAnimal != nil && tAnimal.Species == an.Species &&
				tAnimal.CanMate(b.MateFoodMin, b.MateAgeMin, b.MateAgeMax):
				tAnimal.Pregnancy = b.PregnancyStart
				Logf("[MATE] %s %d mated with %s %d", an.Species, an.ID, tAnimal.Species, tAnimal.ID)
				w.collector.RecordMating()
				w.events = append(w.events, telemetry.NewMatingEvent(int32(w.tick), an.ID, tAnimal.ID, an.Species, tp.X, tp.Y))
				// After mating the initiator wanders instead of chasing the
				// same female again.
				mated = true
				target = noTarget

			default:
				target = noTarget
			}
		}
	}

	// An unreached target is kept.
	if target != noTarget {
		return target
	}

	if !mated && an.Food < b.HungerThreshold {
		if t := w.scanFood(pos, an); t != noTarget {
			return t
		}
	}

	// The mate and wander rules share one shuffled social-radius query.
	w.hood = w.index.Neighbors(w.hood[:0], pos.X, pos.Y, b.SocialRadius)
	w.shuffleHood()

	if !mated && an.Gender == components.Male {
		if t := w.scanMates(an); t != noTarget {
			return t
		}
	}

	// Nothing else to do? Wander toward grass.
	return w.scanWander()
}

// scanFood looks for food in the species forage radius: a grown grass patch
// for prey, any prey animal for a tiger. Neighbor order is randomized, so
// ties break by chance rather than by distance.
func (w *World) scanFood(pos *components.Position, an *components.Animal) ecs.Entity {
	sp := w.speciesCfg(an.Species)
	w.hood = w.index.Neighbors(w.hood[:0], pos.X, pos.Y, sp.ForageRadius)
	w.shuffleHood()

	for i := range w.hood {
		t := w.hood[i].Entity
		if an.Species == components.SpeciesPrey {
			if w.patchMap.HasAll(t) && w.patchMap.Get(t).Grazeable() {
				return t
			}
		} else if w.animalMap.HasAll(t) && w.animalMap.Get(t).Species == components.SpeciesPrey {
			return t
		}
	}
	return noTarget
}

// scanMates looks for a fertile same-species female in the already shuffled
// social-radius neighborhood.
func (w *World) scanMates(an *components.Animal) ecs.Entity {
	b := &w.cfg.Behavior
	for i := range w.hood {
		t := w.hood[i].Entity
		if !w.animalMap.HasAll(t) {
			continue
		}
		other := w.animalMap.Get(t)
		if other.Species == an.Species && other.CanMate(b.MateFoodMin, b.MateAgeMin, b.MateAgeMax) {
			return t
		}
	}
	return noTarget
}

// scanWander picks the first grown grass patch in the already shuffled
// social-radius neighborhood.
func (w *World) scanWander() ecs.Entity {
	for i := range w.hood {
		t := w.hood[i].Entity
		if w.patchMap.HasAll(t) && w.patchMap.Get(t).Grazeable() {
			return t
		}
	}
	return noTarget
}

// munch strips the patch bare and schedules its regrowth.
func (w *World) munch(e ecs.Entity, patch *components.Patch) {
	patch.Grass = 0
	w.grownGrass--
	w.calendar.Schedule(w.tick+w.cfg.Derived.RegrowDelayTicks, e)
}

func (w *World) shuffleHood() {
	w.rng.Shuffle(len(w.hood), func(i, j int) {
		w.hood[i], w.hood[j] = w.hood[j], w.hood[i]
	})
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
