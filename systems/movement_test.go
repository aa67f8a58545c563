package systems

import (
	"math"
	"testing"
)

const tol = 1e-9

// ---------- Advance ----------

func TestAdvance_StepAlongAxis(t *testing.T) {
	x, y := Advance(0, 0, 10, 0, 5)
	if x != 5 || y != 0 {
		t.Errorf("Advance((0,0)->(10,0), 5) = (%v,%v), want (5,0)", x, y)
	}
}

func TestAdvance_SnapsOnOvershoot(t *testing.T) {
	x, y := Advance(0, 0, 3, 0, 5)
	if x != 3 || y != 0 {
		t.Errorf("Advance((0,0)->(3,0), 5) = (%v,%v), want exactly (3,0)", x, y)
	}
}

func TestAdvance_VerticalTarget(t *testing.T) {
	// Target directly below: zero horizontal delta moves along y only
	x, y := Advance(0, 0, 0, 10, 5)
	if math.Abs(x) > tol || math.Abs(y-5) > tol {
		t.Errorf("Advance((0,0)->(0,10), 5) = (%v,%v), want (0,5)", x, y)
	}
}

func TestAdvance_Diagonal(t *testing.T) {
	// 3-4-5 triangle: half the distance lands at (3,4)
	x, y := Advance(0, 0, 6, 8, 5)
	if math.Abs(x-3) > tol || math.Abs(y-4) > tol {
		t.Errorf("Advance((0,0)->(6,8), 5) = (%v,%v), want (3,4)", x, y)
	}
}

func TestAdvance_DiagonalSnap(t *testing.T) {
	x, y := Advance(0, 0, 2, 1, 5)
	if x != 2 || y != 1 {
		t.Errorf("Advance((0,0)->(2,1), 5) = (%v,%v), want exactly (2,1)", x, y)
	}
}

func TestAdvance_NegativeDirection(t *testing.T) {
	x, y := Advance(10, 0, 0, 0, 4)
	if math.Abs(x-6) > tol || math.Abs(y) > tol {
		t.Errorf("Advance((10,0)->(0,0), 4) = (%v,%v), want (6,0)", x, y)
	}

	x, y = Advance(0, 10, 0, 0, 4)
	if math.Abs(x) > tol || math.Abs(y-6) > tol {
		t.Errorf("Advance((0,10)->(0,0), 4) = (%v,%v), want (0,6)", x, y)
	}
}

func TestAdvance_AlreadyAtTarget(t *testing.T) {
	x, y := Advance(4, 4, 4, 4, 1)
	if x != 4 || y != 4 {
		t.Errorf("Advance at target = (%v,%v), want (4,4)", x, y)
	}
}

// ---------- AgeSpeed ----------

func TestAgeSpeed_NewbornIsFloored(t *testing.T) {
	// The curve is zero at age 0; the 0.1 floor applies
	got := AgeSpeed(0, 10, 2)
	if math.Abs(got-0.2) > tol {
		t.Errorf("AgeSpeed(0, 10, 2) = %v, want 0.2", got)
	}
}

func TestAgeSpeed_PeaksAtMidlife(t *testing.T) {
	got := AgeSpeed(5, 10, 2)
	if math.Abs(got-2) > tol {
		t.Errorf("AgeSpeed(5, 10, 2) = %v, want 2", got)
	}
}

func TestAgeSpeed_OldAge(t *testing.T) {
	// At max age the polynomial gives 0.3375 of max speed
	got := AgeSpeed(10, 10, 2)
	if math.Abs(got-0.675) > tol {
		t.Errorf("AgeSpeed(10, 10, 2) = %v, want 0.675", got)
	}
}

func TestAgeSpeed_ClampsBeyondMaxAge(t *testing.T) {
	atMax := AgeSpeed(10, 10, 2)
	beyond := AgeSpeed(25, 10, 2)
	if math.Abs(atMax-beyond) > tol {
		t.Errorf("AgeSpeed beyond max age = %v, want %v (clamped)", beyond, atMax)
	}
}

func TestAgeSpeed_RisesThroughChildhood(t *testing.T) {
	// Quarter life: y = 1 - (1-2x)^4 at x=0.25 is 0.9375
	got := AgeSpeed(2.5, 10, 1)
	if math.Abs(got-0.9375) > tol {
		t.Errorf("AgeSpeed(2.5, 10, 1) = %v, want 0.9375", got)
	}
}

func TestAgeSpeed_FloorInEarlyInfancy(t *testing.T) {
	// x = 0.01: curve value 0.0776 sits below the floor
	got := AgeSpeed(0.1, 10, 1)
	if math.Abs(got-0.1) > tol {
		t.Errorf("AgeSpeed(0.1, 10, 1) = %v, want floor 0.1", got)
	}
}
