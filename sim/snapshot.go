package sim

import (
	"github.com/pthm-cable/savannah/components"
	"github.com/pthm-cable/savannah/telemetry"
)

// PatchView is the render-facing state of one patch.
type PatchView struct {
	ID    uint32
	X, Y  float64
	Kind  components.PatchKind
	Grass float64
}

// AnimalView is the render-facing state of one animal. TargetID names the
// patch or animal currently chased, 0 when idle.
type AnimalView struct {
	ID        uint32
	X, Y      float64
	Species   components.Species
	Gender    components.Gender
	Age       float64
	MaxAge    float64
	Food      float64
	Speed     float64
	Pregnancy float64
	TargetID  uint32
}

// Snapshot is the per-tick output consumed by the renderer. Its slices are
// reused across calls to avoid per-frame allocation.
type Snapshot struct {
	Tick    int
	Patches []PatchView
	Animals []AnimalView
}

// Snapshot fills dst with the state of every live entity.
func (w *World) Snapshot(dst *Snapshot) {
	dst.Tick = w.tick
	dst.Patches = dst.Patches[:0]
	dst.Animals = dst.Animals[:0]

	pq := w.patchFilter.Query()
	for pq.Next() {
		pos, patch := pq.Get()
		dst.Patches = append(dst.Patches, PatchView{
			ID:    patch.ID,
			X:     pos.X,
			Y:     pos.Y,
			Kind:  patch.Kind,
			Grass: patch.Grass,
		})
	}

	aq := w.animalFilter.Query()
	for aq.Next() {
		pos, an := aq.Get()
		if an.Dead {
			continue
		}
		dst.Animals = append(dst.Animals, w.animalView(pos, an))
	}
}

// AnimalAt returns the live animal nearest to (x, y) within maxDist, for
// pointer picking. ok is false when none is close enough.
func (w *World) AnimalAt(x, y, maxDist float64) (view AnimalView, ok bool) {
	w.hood = w.index.Neighbors(w.hood[:0], x, y, maxDist)

	best := noTarget
	bestDist := maxDist
	for i := range w.hood {
		n := w.hood[i]
		if !w.animalMap.HasAll(n.Entity) || w.animalMap.Get(n.Entity).Dead {
			continue
		}
		if d := distance(x, y, n.X, n.Y); d <= bestDist {
			best, bestDist = n.Entity, d
		}
	}
	if best == noTarget {
		return AnimalView{}, false
	}
	return w.animalView(w.posMap.Get(best), w.animalMap.Get(best)), true
}

func (w *World) animalView(pos *components.Position, an *components.Animal) AnimalView {
	v := AnimalView{
		ID:        an.ID,
		X:         pos.X,
		Y:         pos.Y,
		Species:   an.Species,
		Gender:    an.Gender,
		Age:       an.Age,
		MaxAge:    an.MaxAge,
		Food:      an.Food,
		Speed:     an.Speed,
		Pregnancy: an.Pregnancy,
	}
	if an.Target != noTarget && w.ecs.Alive(an.Target) {
		if w.patchMap.HasAll(an.Target) {
			v.TargetID = w.patchMap.Get(an.Target).ID
		} else {
			v.TargetID = w.animalMap.Get(an.Target).ID
		}
	}
	return v
}

// DrainEvents returns the telemetry events accumulated since the last drain
// and clears the buffer.
func (w *World) DrainEvents() []telemetry.Event {
	evts := w.events
	w.events = nil
	return evts
}

// DeathMarks lists where every animal of the run died, oldest first.
func (w *World) DeathMarks() []DeathMark { return w.deathMarks }
