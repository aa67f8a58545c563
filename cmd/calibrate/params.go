// Package main provides CMA-ES calibration for finding simulation
// parameters that keep prey and tigers coexisting.
package main

import (
	"github.com/pthm-cable/savannah/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Clock (age_per_tick locked at 0.005)
			{Name: "food_per_tick", Path: "clock.food_per_tick", Min: 0.1, Max: 1.0, Default: 0.3},
			{Name: "grass_regrow_years", Path: "clock.grass_regrow_years", Min: 0.5, Max: 8.0, Default: 2.0},
			// Behavior (reach_distance, hunger_threshold and pregnancy_start locked)
			{Name: "graze_gain", Path: "behavior.graze_gain", Min: 4.0, Max: 25.0, Default: 10.0},
			{Name: "kill_gain", Path: "behavior.kill_gain", Min: 10.0, Max: 80.0, Default: 40.0},
			{Name: "mate_food_min", Path: "behavior.mate_food_min", Min: 20.0, Max: 75.0, Default: 50.0},
			// Prey
			{Name: "prey_lifespan", Path: "prey.mean_lifespan", Min: 4.0, Max: 20.0, Default: 9.0},
			{Name: "prey_litter", Path: "prey.litter_size", Min: 0.5, Max: 8.0, Default: 3.5},
			{Name: "prey_radius", Path: "prey.forage_radius", Min: 1.0, Max: 8.0, Default: 2.0},
			// Tiger
			{Name: "tiger_lifespan", Path: "tiger.mean_lifespan", Min: 8.0, Max: 30.0, Default: 17.0},
			{Name: "tiger_litter", Path: "tiger.litter_size", Min: 0.5, Max: 6.0, Default: 2.0},
			{Name: "tiger_radius", Path: "tiger.forage_radius", Min: 3.0, Max: 20.0, Default: 9.0},
			// Population
			{Name: "initial_prey", Path: "world.initial_prey", Min: 20, Max: 150, Default: 60},
			{Name: "initial_tigers", Path: "world.initial_tigers", Min: 2, Max: 40, Default: 10},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies clamped parameter values to a config. The write
// order must match the Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.Clock.FoodPerTick = v[0]
	cfg.Clock.GrassRegrowYears = v[1]
	cfg.Behavior.GrazeGain = v[2]
	cfg.Behavior.KillGain = v[3]
	cfg.Behavior.MateFoodMin = v[4]
	cfg.Prey.MeanLifespan = v[5]
	cfg.Prey.LitterSize = v[6]
	cfg.Prey.ForageRadius = v[7]
	cfg.Tiger.MeanLifespan = v[8]
	cfg.Tiger.LitterSize = v[9]
	cfg.Tiger.ForageRadius = v[10]
	cfg.World.InitialPrey = int(v[11])
	cfg.World.InitialTigers = int(v[12])
	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		// Clock
		cfg.Clock.FoodPerTick,
		cfg.Clock.GrassRegrowYears,
		// Behavior
		cfg.Behavior.GrazeGain,
		cfg.Behavior.KillGain,
		cfg.Behavior.MateFoodMin,
		// Prey
		cfg.Prey.MeanLifespan,
		cfg.Prey.LitterSize,
		cfg.Prey.ForageRadius,
		// Tiger
		cfg.Tiger.MeanLifespan,
		cfg.Tiger.LitterSize,
		cfg.Tiger.ForageRadius,
		// Population
		float64(cfg.World.InitialPrey),
		float64(cfg.World.InitialTigers),
	}
}
