// Package components defines ECS components for the simulation.
package components

import (
	"github.com/mlange-42/ark/ecs"
)

// Species distinguishes the two animal kinds.
type Species uint8

const (
	SpeciesPrey Species = iota
	SpeciesTiger
)

// String returns the display name of the species.
func (s Species) String() string {
	if s == SpeciesTiger {
		return "Tiger"
	}
	return "Prey"
}

// MarshalCSV writes the species as its display name.
func (s Species) MarshalCSV() (string, error) {
	return s.String(), nil
}

// Gender of an animal. Only females carry pregnancies.
type Gender uint8

const (
	Female Gender = iota
	Male
)

// String returns the display name of the gender.
func (g Gender) String() string {
	if g == Male {
		return "Male"
	}
	return "Female"
}

// PatchKind distinguishes grazeable terrain from barren rock.
type PatchKind uint8

const (
	KindGrass PatchKind = iota
	KindRock
)

// String returns the display name of the patch kind.
func (k PatchKind) String() string {
	if k == KindRock {
		return "Rock"
	}
	return "Grass"
}

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Patch is the immobile terrain content of one grid cell.
type Patch struct {
	ID    uint32
	Kind  PatchKind
	Grass float64 // 1 = grazeable, 0 = bare; rock never grows grass
}

// Grazeable reports whether a prey can eat this patch right now.
func (p *Patch) Grazeable() bool {
	return p.Kind == KindGrass && p.Grass >= 1
}

// Animal holds the mutable state of one prey or tiger.
type Animal struct {
	ID        uint32
	Species   Species
	Gender    Gender
	Age       float64 // Years
	MaxAge    float64 // Drawn per animal around the species lifespan
	Food      float64 // Stomach contents; starves at zero
	Speed     float64 // Cached move distance per tick, refreshed on the speed cadence
	Pregnancy float64 // 0 = not pregnant; grows each tick until birth at 1

	// Dead marks an animal killed earlier in the current tick. The corpse
	// stays in the world until its own turn or the end-of-tick sweep.
	Dead bool

	// Target is the entity this animal is moving toward. The zero Entity
	// means no target. Holders must check liveness before use; the target
	// may have been removed since it was chosen.
	Target ecs.Entity
}

// CanMate reports whether this animal can be impregnated: an unpregnant
// female strictly inside the fertile age window carrying more food than
// minFood.
func (a *Animal) CanMate(minFood, ageMin, ageMax float64) bool {
	return a.Gender == Female && a.Pregnancy == 0 && a.Age > ageMin && a.Age < ageMax && a.Food > minFood
}
