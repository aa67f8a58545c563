package telemetry

import (
	"math"
	"testing"
)

func TestFoodStats(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	mean, p10, p50, p90 := FoodStats(values)

	if math.Abs(mean-2.5) > 0.001 {
		t.Errorf("mean = %v, want 2.5", mean)
	}
	if p10 != 1 {
		t.Errorf("p10 = %v, want 1", p10)
	}
	if p50 != 2 {
		t.Errorf("p50 = %v, want 2", p50)
	}
	if p90 != 4 {
		t.Errorf("p90 = %v, want 4", p90)
	}
}

func TestFoodStats_SortsInput(t *testing.T) {
	shuffled := []float64{4, 1, 3, 2}
	sorted := []float64{1, 2, 3, 4}

	m1, a1, b1, c1 := FoodStats(shuffled)
	m2, a2, b2, c2 := FoodStats(sorted)

	if m1 != m2 || a1 != a2 || b1 != b2 || c1 != c2 {
		t.Errorf("unsorted input gave (%v %v %v %v), sorted gave (%v %v %v %v)",
			m1, a1, b1, c1, m2, a2, b2, c2)
	}
}

func TestFoodStats_Empty(t *testing.T) {
	mean, p10, p50, p90 := FoodStats(nil)

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty sample should return all zeros")
	}
}

func TestFoodStats_SingleValue(t *testing.T) {
	mean, p10, p50, p90 := FoodStats([]float64{7})

	if mean != 7 || p10 != 7 || p50 != 7 || p90 != 7 {
		t.Errorf("single value: got (%v %v %v %v), want all 7", mean, p10, p50, p90)
	}
}
