package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/savannah/components"
	"github.com/pthm-cable/savannah/telemetry"
)

// ---------- reach interactions ----------

func TestChooseTarget_PreyGrazesInReach(t *testing.T) {
	w, err := NewWorld(newTestConfig(t), 2)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	id := w.spawnAnimal(components.SpeciesPrey, 3.2, 3, 3)
	e := findAnimal(t, w, id)
	patchE := patchAt(t, w, 3, 3)

	an := w.animalMap.Get(e)
	an.Target = patchE

	got := w.chooseTarget(w.posMap.Get(e), an)

	if got != noTarget {
		t.Error("grazing should clear the target")
	}
	if math.Abs(an.Food-20) > tol {
		t.Errorf("prey food = %v, want 20 after grazing", an.Food)
	}
	patch := w.patchMap.Get(patchE)
	if patch.Grass != 0 {
		t.Errorf("patch grass = %v, want 0 after munch", patch.Grass)
	}
	if w.calendar.Pending() != 1 {
		t.Errorf("regrowth pending = %d, want 1", w.calendar.Pending())
	}
	if w.GrassCoverage() >= 1 {
		t.Error("grass coverage should drop after a munch")
	}

	evts := w.DrainEvents()
	if len(evts) != 1 || evts[0].Type != telemetry.EventGrazing {
		t.Errorf("events = %+v, want one grazing event", evts)
	}
}

func TestChooseTarget_FullPreyDropsGrassTarget(t *testing.T) {
	w, err := NewWorld(newTestConfig(t), 2)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	id := w.spawnAnimal(components.SpeciesPrey, 3.2, 3, 3)
	e := findAnimal(t, w, id)
	patchE := patchAt(t, w, 3, 3)

	an := w.animalMap.Get(e)
	an.Food = 90
	an.Target = patchE

	got := w.chooseTarget(w.posMap.Get(e), an)

	if got == noTarget {
		t.Fatal("a full prey should wander instead of standing still in a grass world")
	}
	if !w.patchMap.HasAll(got) {
		t.Error("wander target should be a patch")
	}
	if w.patchMap.Get(patchE).Grass != 1 {
		t.Error("dropped target must not be munched")
	}
	if an.Food != 90 {
		t.Errorf("prey food = %v, want unchanged 90", an.Food)
	}
}

func TestChooseTarget_TigerKillsInReach(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 4)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	preyID := w.spawnAnimal(components.SpeciesPrey, 5.3, 5, 3)
	tigerID := w.spawnAnimal(components.SpeciesTiger, 5, 5, 3)
	preyE := findAnimal(t, w, preyID)
	tigerE := findAnimal(t, w, tigerID)

	tiger := w.animalMap.Get(tigerE)
	tiger.Target = preyE

	got := w.chooseTarget(w.posMap.Get(tigerE), tiger)

	if got != noTarget {
		t.Error("a kill should clear the target")
	}
	prey := w.animalMap.Get(preyE)
	if !prey.Dead {
		t.Error("victim not tombstoned")
	}
	want := 50.0 + 40.0 + 10.0/4.0
	if math.Abs(tiger.Food-want) > tol {
		t.Errorf("tiger food = %v, want %v", tiger.Food, want)
	}
}

func TestChooseTarget_FullTigerSparesPrey(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 4)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	preyID := w.spawnAnimal(components.SpeciesPrey, 5.3, 5, 3)
	tigerID := w.spawnAnimal(components.SpeciesTiger, 5, 5, 3)
	preyE := findAnimal(t, w, preyID)
	tigerE := findAnimal(t, w, tigerID)

	tiger := w.animalMap.Get(tigerE)
	tiger.Food = 90
	tiger.Target = preyE

	w.chooseTarget(w.posMap.Get(tigerE), tiger)

	if w.animalMap.Get(preyE).Dead {
		t.Error("a full tiger must not kill")
	}
	if tiger.Food != 90 {
		t.Errorf("tiger food = %v, want unchanged 90", tiger.Food)
	}
}

func TestChooseTarget_TigerEatsCorpseTwice(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 4)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	preyID := w.spawnAnimal(components.SpeciesPrey, 5.3, 5, 3)
	tigerID := w.spawnAnimal(components.SpeciesTiger, 5, 5, 3)
	otherID := w.spawnAnimal(components.SpeciesTiger, 5.1, 5, 3)
	preyE := findAnimal(t, w, preyID)
	tigerE := findAnimal(t, w, tigerID)
	otherE := findAnimal(t, w, otherID)

	w.animalMap.Get(tigerE).Target = preyE
	w.chooseTarget(w.posMap.Get(tigerE), w.animalMap.Get(tigerE))
	if !w.animalMap.Get(preyE).Dead {
		t.Fatal("first kill did not land")
	}

	// The corpse is still in the world this tick; a second hungry tiger
	// within reach eats it again.
	other := w.animalMap.Get(otherE)
	other.Target = preyE
	got := w.chooseTarget(w.posMap.Get(otherE), other)

	if got != noTarget {
		t.Error("corpse feeding should clear the target")
	}
	want := 50.0 + 40.0 + 10.0/4.0
	if math.Abs(other.Food-want) > tol {
		t.Errorf("second tiger food = %v, want %v", other.Food, want)
	}
}

func TestChooseTarget_MatingImpregnatesAndWanders(t *testing.T) {
	w, err := NewWorld(newTestConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	maleID := w.spawnAnimal(components.SpeciesPrey, 4, 4.3, 3)
	femaleID := w.spawnAnimal(components.SpeciesPrey, 4, 4, 3)
	maleE := findAnimal(t, w, maleID)
	femaleE := findAnimal(t, w, femaleID)

	male := w.animalMap.Get(maleE)
	male.Gender = components.Male
	male.Food = 100
	male.Target = femaleE

	female := w.animalMap.Get(femaleE)
	female.Gender = components.Female
	female.Food = 60
	female.Pregnancy = 0

	got := w.chooseTarget(w.posMap.Get(maleE), male)

	if female.Pregnancy != 0.1 {
		t.Errorf("female pregnancy = %v, want 0.1", female.Pregnancy)
	}
	if male.Pregnancy != 0 {
		t.Error("the initiator must not become pregnant")
	}
	if got == femaleE {
		t.Error("after mating the male should not keep chasing the female")
	}
	if got == noTarget || !w.patchMap.HasAll(got) {
		t.Errorf("after mating the male should wander toward grass, got %v", got)
	}

	evts := w.DrainEvents()
	if len(evts) != 1 || evts[0].Type != telemetry.EventMating {
		t.Errorf("events = %+v, want one mating event", evts)
	}
}

func TestChooseTarget_InfertileFemaleIsDropped(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	maleID := w.spawnAnimal(components.SpeciesPrey, 4, 4.3, 3)
	femaleID := w.spawnAnimal(components.SpeciesPrey, 4, 4, 3)
	maleE := findAnimal(t, w, maleID)
	femaleE := findAnimal(t, w, femaleID)

	male := w.animalMap.Get(maleE)
	male.Gender = components.Male
	male.Food = 100
	male.Target = femaleE

	female := w.animalMap.Get(femaleE)
	female.Gender = components.Female
	female.Food = 10 // too hungry to mate

	got := w.chooseTarget(w.posMap.Get(maleE), male)

	if female.Pregnancy != 0 {
		t.Errorf("female pregnancy = %v, want 0", female.Pregnancy)
	}
	// Rock world: nothing to forage, no fertile mate, nothing to wander to
	if got != noTarget {
		t.Errorf("target = %v, want none in a barren world", got)
	}
}

// ---------- scans ----------

func TestChooseTarget_HungryPreyForagesBeforeMating(t *testing.T) {
	w, err := NewWorld(newTestConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	maleID := w.spawnAnimal(components.SpeciesPrey, 4, 4, 3)
	femaleID := w.spawnAnimal(components.SpeciesPrey, 4, 5, 3)
	maleE := findAnimal(t, w, maleID)
	femaleE := findAnimal(t, w, femaleID)

	male := w.animalMap.Get(maleE)
	male.Gender = components.Male
	male.Food = 20

	female := w.animalMap.Get(femaleE)
	female.Gender = components.Female
	female.Food = 60

	got := w.chooseTarget(w.posMap.Get(maleE), male)

	if got == noTarget {
		t.Fatal("hungry prey in a grass world found nothing")
	}
	if !w.patchMap.HasAll(got) {
		t.Error("hungry prey should pick grass over a mate")
	}
}

func TestChooseTarget_SatedMaleSeeksMate(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	maleID := w.spawnAnimal(components.SpeciesPrey, 4, 4, 3)
	femaleID := w.spawnAnimal(components.SpeciesPrey, 4, 5, 3)
	maleE := findAnimal(t, w, maleID)
	femaleE := findAnimal(t, w, femaleID)

	male := w.animalMap.Get(maleE)
	male.Gender = components.Male
	male.Food = 100

	female := w.animalMap.Get(femaleE)
	female.Gender = components.Female
	female.Food = 60

	got := w.chooseTarget(w.posMap.Get(maleE), male)

	if got != femaleE {
		t.Errorf("target = %v, want the fertile female", got)
	}
}

func TestChooseTarget_TigerHuntsWithinRadius(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	preyID := w.spawnAnimal(components.SpeciesPrey, 10, 10, 3)
	tigerID := w.spawnAnimal(components.SpeciesTiger, 5, 10, 3)
	farID := w.spawnAnimal(components.SpeciesPrey, 10, 19.5, 3)
	preyE := findAnimal(t, w, preyID)
	tigerE := findAnimal(t, w, tigerID)
	_ = farID

	tiger := w.animalMap.Get(tigerE)

	got := w.chooseTarget(w.posMap.Get(tigerE), tiger)

	if got != preyE {
		t.Errorf("target = %v, want the prey within hunt radius", got)
	}
}

func TestChooseTarget_WanderNeedsGrownGrass(t *testing.T) {
	w, err := NewWorld(newTestConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	id := w.spawnAnimal(components.SpeciesPrey, 10, 10, 3)
	e := findAnimal(t, w, id)
	an := w.animalMap.Get(e)
	an.Gender = components.Female
	an.Food = 100

	// Strip every patch bare: a wanderer has nowhere to go
	query := w.patchFilter.Query()
	for query.Next() {
		_, patch := query.Get()
		patch.Grass = 0
	}

	if got := w.chooseTarget(w.posMap.Get(e), an); got != noTarget {
		t.Errorf("target = %v, want none when no grass is grown", got)
	}
}

func TestChooseTarget_KeepsUnreachedTarget(t *testing.T) {
	w, err := NewWorld(newTestConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	id := w.spawnAnimal(components.SpeciesPrey, 3, 3, 3)
	e := findAnimal(t, w, id)
	patchE := patchAt(t, w, 8, 3)

	an := w.animalMap.Get(e)
	an.Target = patchE

	if got := w.chooseTarget(w.posMap.Get(e), an); got != patchE {
		t.Errorf("target = %v, want the distant patch kept", got)
	}
}

// ---------- stale targets ----------

func TestStepAnimal_DropsVanishedTarget(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	hunterID := w.spawnAnimal(components.SpeciesTiger, 5, 5, 3)
	victimID := w.spawnAnimal(components.SpeciesPrey, 9, 5, 3)
	hunterE := findAnimal(t, w, hunterID)
	victimE := findAnimal(t, w, victimID)

	w.animalMap.Get(hunterE).Target = victimE

	// The victim vanishes between ticks
	w.index.Remove(victimE)
	w.ecs.RemoveEntity(victimE)
	w.preyCount--

	w.stepAnimal(hunterE)

	hunter := w.animalMap.Get(hunterE)
	if hunter.Target != noTarget {
		t.Error("vanished target should be dropped")
	}
	pos := w.posMap.Get(hunterE)
	if pos.X != 5 || pos.Y != 5 {
		t.Errorf("hunter moved to (%v, %v); it should stand still for the tick", pos.X, pos.Y)
	}
}

// ---------- movement toward targets ----------

func TestStepAnimal_MovesTowardTarget(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 6)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.tick = 1

	preyID := w.spawnAnimal(components.SpeciesPrey, 10, 10, 3)
	tigerID := w.spawnAnimal(components.SpeciesTiger, 4, 10, 3)
	tigerE := findAnimal(t, w, tigerID)
	_ = preyID

	tiger := w.animalMap.Get(tigerE)
	tiger.Speed = 2

	w.stepAnimal(tigerE)

	tiger = w.animalMap.Get(tigerE)
	pos := w.posMap.Get(tigerE)
	if tiger.Target == noTarget {
		t.Fatal("hungry tiger picked no target")
	}
	if math.Abs(pos.X-6) > tol || math.Abs(pos.Y-10) > tol {
		t.Errorf("tiger at (%v, %v), want (6, 10) after one move", pos.X, pos.Y)
	}

	// The index tracks the move
	x, y, ok := w.index.Position(tigerE)
	if !ok || math.Abs(x-6) > tol || math.Abs(y-10) > tol {
		t.Errorf("index position = (%v, %v, %v), want (6, 10, true)", x, y, ok)
	}
}
