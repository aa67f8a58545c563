package sim

import (
	"math"

	"github.com/pthm-cable/savannah/components"
	"github.com/pthm-cable/savannah/systems"
	"github.com/pthm-cable/savannah/telemetry"
)

// newID hands out entity ids. Ids are monotonic and never reused, even
// after the entity dies.
func (w *World) newID() uint32 {
	w.nextID++
	return w.nextID
}

// spawnPatches fills the grid with one patch per cell. A patch is rock with
// probability RockFraction and grass otherwise; grass starts fully grown.
func (w *World) spawnPatches() {
	for x := 0; x < w.cfg.World.Width; x++ {
		for y := 0; y < w.cfg.World.Height; y++ {
			patch := components.Patch{ID: w.newID(), Kind: components.KindGrass, Grass: 1}
			if w.rng.Float64() < w.cfg.World.RockFraction {
				patch.Kind = components.KindRock
				patch.Grass = 0
			} else {
				w.grassPatches++
				w.grownGrass++
			}
			pos := components.Position{X: float64(x), Y: float64(y)}
			e := w.patchMapper.NewEntity(&pos, &patch)
			w.index.Place(e, pos.X, pos.Y)
		}
	}
}

// spawnInitialAnimals scatters the starting populations at random positions
// with randomized ages.
func (w *World) spawnInitialAnimals() {
	for i := 0; i < w.cfg.World.InitialPrey; i++ {
		x := float64(w.rng.Intn(w.cfg.World.Width + 1))
		y := float64(w.rng.Intn(w.cfg.World.Height + 1))
		w.spawnAnimal(components.SpeciesPrey, x, y, float64(1+w.rng.Intn(5)))
	}
	for i := 0; i < w.cfg.World.InitialTigers; i++ {
		x := float64(w.rng.Intn(w.cfg.World.Width + 1))
		y := float64(w.rng.Intn(w.cfg.World.Height + 1))
		w.spawnAnimal(components.SpeciesTiger, x, y, float64(1+w.rng.Intn(5)))
	}
}

// spawnAnimal creates one animal, registers it in the spatial index and
// bumps the species counter. Gender is drawn at random and max age around
// the species lifespan. Returns the new animal's id.
func (w *World) spawnAnimal(species components.Species, x, y, age float64) uint32 {
	sp := w.speciesCfg(species)

	an := components.Animal{
		ID:      w.newID(),
		Species: species,
		Gender:  components.Gender(w.rng.Intn(2)),
		Age:     age,
		MaxAge:  (w.rng.NormFloat64()*0.2 + 1) * sp.MeanLifespan,
		Food:    sp.InitialFood,
	}
	an.Speed = systems.AgeSpeed(an.Age, an.MaxAge, sp.MaxSpeed)

	pos := components.Position{X: x, Y: y}
	e := w.animalMapper.NewEntity(&pos, &an)
	w.index.Place(e, x, y)

	if species == components.SpeciesTiger {
		w.tigerCount++
	} else {
		w.preyCount++
	}
	return an.ID
}

// giveBirth spawns a litter at the mother's position. Litter size is the
// species constant with about 20% noise, never negative.
func (w *World) giveBirth(motherID uint32, species components.Species, x, y float64) {
	sp := w.speciesCfg(species)

	litter := int(math.Round((w.rng.NormFloat64()*0.2 + 1) * sp.LitterSize))
	if litter < 0 {
		litter = 0
	}
	Logf("[BIRTH] %s %d has given birth to %d babies", species, motherID, litter)

	for i := 0; i < litter; i++ {
		childID := w.spawnAnimal(species, x, y, 0)
		w.events = append(w.events, telemetry.NewBirthEvent(int32(w.tick), childID, motherID, species, x, y))
	}
	w.collector.RecordBirths(kindOf(species), litter)
}
