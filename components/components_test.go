package components

import "testing"

// ---------- CanMate ----------

func TestCanMate_FertileFemale(t *testing.T) {
	a := Animal{Gender: Female, Age: 3, Food: 60}
	if !a.CanMate(50, 1, 8) {
		t.Error("fertile female with food 60 should be able to mate")
	}
}

func TestCanMate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		animal Animal
	}{
		{"male", Animal{Gender: Male, Age: 3, Food: 60}},
		{"pregnant", Animal{Gender: Female, Age: 3, Food: 60, Pregnancy: 0.4}},
		{"too young", Animal{Gender: Female, Age: 1, Food: 60}},
		{"too old", Animal{Gender: Female, Age: 8, Food: 60}},
		{"hungry", Animal{Gender: Female, Age: 3, Food: 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.animal.CanMate(50, 1, 8) {
				t.Errorf("%s should not be able to mate", tc.name)
			}
		})
	}
}

func TestCanMate_AgeWindowIsStrict(t *testing.T) {
	// Ages exactly at the window edges do not qualify
	atMin := Animal{Gender: Female, Age: 1, Food: 99}
	atMax := Animal{Gender: Female, Age: 8, Food: 99}
	inside := Animal{Gender: Female, Age: 1.005, Food: 99}

	if atMin.CanMate(50, 1, 8) {
		t.Error("age exactly at the lower bound should not mate")
	}
	if atMax.CanMate(50, 1, 8) {
		t.Error("age exactly at the upper bound should not mate")
	}
	if !inside.CanMate(50, 1, 8) {
		t.Error("age just inside the window should mate")
	}
}

// ---------- Patch ----------

func TestGrazeable(t *testing.T) {
	grown := Patch{Kind: KindGrass, Grass: 1}
	munched := Patch{Kind: KindGrass, Grass: 0}
	rock := Patch{Kind: KindRock, Grass: 0}

	if !grown.Grazeable() {
		t.Error("grown grass should be grazeable")
	}
	if munched.Grazeable() {
		t.Error("munched grass should not be grazeable")
	}
	if rock.Grazeable() {
		t.Error("rock should never be grazeable")
	}
}
