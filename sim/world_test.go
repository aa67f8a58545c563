package sim

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savannah/components"
	"github.com/pthm-cable/savannah/config"
)

const tol = 1e-9

// newTestConfig loads the defaults shrunk to a small empty world so tests
// can place animals by hand.
func newTestConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.World.Width = 20
	cfg.World.Height = 20
	cfg.World.InitialPrey = 0
	cfg.World.InitialTigers = 0
	cfg.World.RockFraction = 0
	return *cfg
}

// newRockConfig is newTestConfig with every patch barren, so animals never
// find anything to eat or wander toward.
func newRockConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := newTestConfig(t)
	cfg.World.RockFraction = 1
	return cfg
}

// findAnimal locates an animal entity by its id.
func findAnimal(t *testing.T, w *World, id uint32) ecs.Entity {
	t.Helper()
	query := w.animalFilter.Query()
	found := noTarget
	for query.Next() {
		_, an := query.Get()
		if an.ID == id {
			found = query.Entity()
		}
	}
	if found == noTarget {
		t.Fatalf("animal %d not found", id)
	}
	return found
}

// patchAt locates the patch entity at integer cell coordinates.
func patchAt(t *testing.T, w *World, x, y float64) ecs.Entity {
	t.Helper()
	query := w.patchFilter.Query()
	found := noTarget
	for query.Next() {
		pos, _ := query.Get()
		if pos.X == x && pos.Y == y {
			found = query.Entity()
		}
	}
	if found == noTarget {
		t.Fatalf("no patch at (%v, %v)", x, y)
	}
	return found
}

// ---------- construction ----------

func TestNewWorld_RejectsInvalidConfig(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.World.Width = 0

	w, err := NewWorld(cfg, 1)
	if err == nil {
		t.Fatal("expected an error for zero world width")
	}
	if w != nil {
		t.Error("no World should be returned on invalid config")
	}
}

func TestNewWorld_SpawnsConfiguredPopulations(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.World.InitialPrey = 12
	cfg.World.InitialTigers = 3

	w, err := NewWorld(cfg, 42)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	if w.PreyCount() != 12 || w.TigerCount() != 3 {
		t.Errorf("populations = (%d, %d), want (12, 3)", w.PreyCount(), w.TigerCount())
	}

	var snap Snapshot
	w.Snapshot(&snap)
	if len(snap.Animals) != 15 {
		t.Errorf("snapshot has %d animals, want 15", len(snap.Animals))
	}
	if len(snap.Patches) != 20*20 {
		t.Errorf("snapshot has %d patches, want 400", len(snap.Patches))
	}

	for _, a := range snap.Animals {
		if a.Age < 1 || a.Age > 5 {
			t.Errorf("animal %d spawned with age %v, want within [1, 5]", a.ID, a.Age)
		}
		if a.X < 0 || a.X > 20 || a.Y < 0 || a.Y > 20 {
			t.Errorf("animal %d spawned at (%v, %v), out of bounds", a.ID, a.X, a.Y)
		}
	}
}

func TestNewWorld_GrassStartsFullyGrown(t *testing.T) {
	cfg := newTestConfig(t)
	w, err := NewWorld(cfg, 1)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if w.GrassCoverage() != 1 {
		t.Errorf("grass coverage = %v, want 1", w.GrassCoverage())
	}
}

// ---------- stepping invariants ----------

func TestStep_TerminalOnEmptyWorld(t *testing.T) {
	w, err := NewWorld(newTestConfig(t), 1)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if w.Terminal() {
		t.Fatal("world should not be terminal before the first step")
	}

	w.Step()
	if !w.Terminal() {
		t.Error("empty world should be terminal after the first step")
	}
	if w.Tick() != 1 {
		t.Errorf("tick = %d, want 1", w.Tick())
	}

	// Terminal worlds no longer advance
	w.Step()
	if w.Tick() != 1 {
		t.Errorf("terminal world stepped to tick %d", w.Tick())
	}
}

func TestStep_PositionsStayInBounds(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.World.InitialPrey = 30
	cfg.World.InitialTigers = 5
	cfg.World.RockFraction = 0.02

	w, err := NewWorld(cfg, 7)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	var snap Snapshot
	for i := 0; i < 60 && !w.Terminal(); i++ {
		w.Step()
		w.Snapshot(&snap)
		for _, a := range snap.Animals {
			if a.X < 0 || a.X > 20 || a.Y < 0 || a.Y > 20 {
				t.Fatalf("tick %d: animal %d at (%v, %v), out of bounds", w.Tick(), a.ID, a.X, a.Y)
			}
		}
	}
}

func TestStep_MalesNeverPregnant(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.World.InitialPrey = 30
	cfg.World.InitialTigers = 5

	w, err := NewWorld(cfg, 11)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	var snap Snapshot
	for i := 0; i < 60 && !w.Terminal(); i++ {
		w.Step()
		w.Snapshot(&snap)
		for _, a := range snap.Animals {
			if a.Gender == components.Male && a.Pregnancy != 0 {
				t.Fatalf("tick %d: male %d has pregnancy %v", w.Tick(), a.ID, a.Pregnancy)
			}
		}
	}
}

func TestStep_NoTombstoneSurvivesTick(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 3)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	preyID := w.spawnAnimal(components.SpeciesPrey, 10, 10, 3)
	preyE := findAnimal(t, w, preyID)
	w.animalMap.Get(preyE).Food = 200 // outlives the chase
	w.spawnAnimal(components.SpeciesTiger, 11, 10, 3)

	for i := 0; i < 5 && w.PreyCount() > 0; i++ {
		w.Step()

		query := w.animalFilter.Query()
		for query.Next() {
			_, an := query.Get()
			if an.Dead {
				t.Fatalf("tick %d: tombstone for animal %d survived the step", w.Tick(), an.ID)
			}
		}
	}

	if w.PreyCount() != 0 {
		t.Fatalf("tiger never caught the immobile prey within 5 ticks")
	}
	if w.ecs.Alive(preyE) {
		t.Error("killed prey still alive in the entity table")
	}
	if _, _, ok := w.index.Position(preyE); ok {
		t.Error("killed prey still present in the spatial index")
	}
}

// ---------- predation arithmetic ----------

func TestPredation_FoodArithmetic(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 5)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	preyID := w.spawnAnimal(components.SpeciesPrey, 5.2, 5, 3)
	tigerID := w.spawnAnimal(components.SpeciesTiger, 5, 5, 3)
	preyE := findAnimal(t, w, preyID)
	tigerE := findAnimal(t, w, tigerID)

	w.animalMap.Get(preyE).Food = 20
	w.animalMap.Get(tigerE).Target = preyE
	w.tick = 1

	w.stepAnimal(tigerE)

	// 50 initial - 0.3 metabolic + 40 + 20/4
	tiger := w.animalMap.Get(tigerE)
	want := 50.0 - 0.3 + 40.0 + 5.0
	if math.Abs(tiger.Food-want) > tol {
		t.Errorf("tiger food = %v, want %v", tiger.Food, want)
	}
	if tiger.Target != noTarget {
		t.Error("tiger should drop its target after the kill")
	}

	// The victim is tombstoned, not yet removed
	prey := w.animalMap.Get(preyE)
	if !prey.Dead {
		t.Fatal("victim not marked dead")
	}
	if !w.ecs.Alive(preyE) {
		t.Fatal("victim should stay in the table until finalized")
	}

	w.sweepDead()
	if w.ecs.Alive(preyE) {
		t.Error("sweep did not remove the victim")
	}
	if w.PreyCount() != 0 {
		t.Errorf("prey count = %d, want 0", w.PreyCount())
	}
	if len(w.DeathMarks()) != 1 {
		t.Errorf("death marks = %d, want 1", len(w.DeathMarks()))
	}
}

// ---------- birth ----------

func TestBirth_Properties(t *testing.T) {
	w, err := NewWorld(newRockConfig(t), 8)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	motherID := w.spawnAnimal(components.SpeciesPrey, 10, 10, 3)
	motherE := findAnimal(t, w, motherID)
	mother := w.animalMap.Get(motherE)
	mother.Gender = components.Female
	mother.Pregnancy = 0.999
	mother.Food = 50

	w.tick = 1
	w.stepAnimal(motherE)

	mother = w.animalMap.Get(motherE)
	if mother.Pregnancy != 0 {
		t.Errorf("pregnancy = %v after birth, want 0", mother.Pregnancy)
	}

	mpos := w.posMap.Get(motherE)
	if mpos.X != 10 || mpos.Y != 10 {
		t.Errorf("mother moved to (%v, %v) while giving birth", mpos.X, mpos.Y)
	}

	litter := w.PreyCount() - 1
	if litter < 0 {
		t.Fatalf("prey count %d dropped below the mother", w.PreyCount())
	}

	var children int
	query := w.animalFilter.Query()
	for query.Next() {
		pos, an := query.Get()
		if an.ID == motherID {
			continue
		}
		children++
		if an.Age != 0 {
			t.Errorf("child %d born with age %v, want 0", an.ID, an.Age)
		}
		if an.Species != components.SpeciesPrey {
			t.Errorf("child %d born as %v, want Prey", an.ID, an.Species)
		}
		if an.ID <= motherID {
			t.Errorf("child id %d not newer than mother id %d", an.ID, motherID)
		}
		if pos.X != 10 || pos.Y != 10 {
			t.Errorf("child %d born at (%v, %v), want the mother's position", an.ID, pos.X, pos.Y)
		}
	}
	if children != litter {
		t.Errorf("found %d children, counter says %d", children, litter)
	}
}

// ---------- regrowth ----------

func TestRegrowth_FiresExactlyOnSchedule(t *testing.T) {
	cfg := newTestConfig(t)
	w, err := NewWorld(cfg, 13)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	// One long-lived wanderer keeps the run alive without ever grazing.
	id := w.spawnAnimal(components.SpeciesPrey, 10, 10, 3)
	e := findAnimal(t, w, id)
	an := w.animalMap.Get(e)
	an.Food = 500
	an.MaxAge = 100
	an.Gender = components.Female

	patchE := patchAt(t, w, 3, 3)
	w.munch(patchE, w.patchMap.Get(patchE))

	delay := w.cfg.Derived.RegrowDelayTicks
	for i := 0; i < delay-1; i++ {
		w.Step()
	}
	if g := w.patchMap.Get(patchE).Grass; g != 0 {
		t.Fatalf("tick %d: grass = %v before the regrowth tick", w.Tick(), g)
	}

	w.Step()
	if g := w.patchMap.Get(patchE).Grass; g != 1 {
		t.Fatalf("tick %d: grass = %v on the regrowth tick, want 1", w.Tick(), g)
	}

	// Never munched again, so it stays grown
	for i := 0; i < 50; i++ {
		w.Step()
	}
	if g := w.patchMap.Get(patchE).Grass; g != 1 {
		t.Errorf("grass = %v after regrowth, want it to stay 1", g)
	}
	if w.GrassCoverage() != 1 {
		t.Errorf("grass coverage = %v, want 1 after regrowth", w.GrassCoverage())
	}
}

// ---------- determinism, reset ----------

func sameAnimals(a, b []AnimalView) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStep_SeedDeterminism(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.World.InitialPrey = 20
	cfg.World.InitialTigers = 4

	w1, err := NewWorld(cfg, 99)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w2, err := NewWorld(cfg, 99)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	var s1, s2 Snapshot
	for i := 0; i < 30; i++ {
		w1.Step()
		w2.Step()
		w1.Snapshot(&s1)
		w2.Snapshot(&s2)
		if !sameAnimals(s1.Animals, s2.Animals) {
			t.Fatalf("tick %d: same seed diverged", w1.Tick())
		}
	}

	w3, err := NewWorld(cfg, 100)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	var s3 Snapshot
	w1.Reset(cfg, 99)
	w1.Snapshot(&s1)
	w3.Snapshot(&s3)
	if sameAnimals(s1.Animals, s3.Animals) {
		t.Error("different seeds produced identical initial populations")
	}
}

func TestReset_MatchesFreshWorld(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.World.InitialPrey = 10
	cfg.World.InitialTigers = 2

	w, err := NewWorld(cfg, 21)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	for i := 0; i < 10; i++ {
		w.Step()
	}

	if err := w.Reset(cfg, 21); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if w.Tick() != 0 || w.Terminal() {
		t.Errorf("after reset tick = %d, terminal = %v", w.Tick(), w.Terminal())
	}
	if w.PreyCount() != 10 || w.TigerCount() != 2 {
		t.Errorf("after reset populations = (%d, %d), want (10, 2)", w.PreyCount(), w.TigerCount())
	}

	fresh, err := NewWorld(cfg, 21)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	var sr, sf Snapshot
	for i := 0; i < 10; i++ {
		w.Step()
		fresh.Step()
	}
	w.Snapshot(&sr)
	fresh.Snapshot(&sf)
	if !sameAnimals(sr.Animals, sf.Animals) {
		t.Error("reset world diverged from a fresh world with the same seed")
	}
}
