package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/savannah/config"
	"github.com/pthm-cable/savannah/sim"
	"github.com/pthm-cable/savannah/telemetry"
)

// Quality component weights. They sum to 1 so quality stays in [0,1].
const (
	qualityWeightRatio     = 0.30 // prey per tiger near the target ratio
	qualityWeightStability = 0.30 // low variance in both populations
	qualityWeightGrass     = 0.20 // grass neither grazed bare nor untouched
	qualityWeightHunting   = 0.20 // tigers actually catching prey

	// Windows skipped before quality starts counting. The opening
	// transient from the seeded populations is not representative.
	qualityWarmupWindows = 3

	// Windows where either species is below this are excluded. A
	// near-extinct ecosystem has degenerate ratios.
	qualityMinPop = 3

	// Target prey per tiger. Matches the default 60/10 seeding.
	qualityTargetRatio = 6.0
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	coexistTicks int // ticks both species stayed alive, capped at maxTicks
	windows      []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness rewards coexistence time first and ecosystem quality second:
// -(coexistTicks * (1 + 0.2*quality)), averaged over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	type seedResult struct {
		fitness float64
		quality float64
	}

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r := fe.runSimulation(x, s)
			quality := fe.computeQuality(r.windows)
			results[idx] = seedResult{
				fitness: -(float64(r.coexistTicks) * (1.0 + 0.2*quality)),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes one headless run until either species dies out
// or the tick cap is reached.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	result := &runResult{}

	w, err := sim.NewWorld(cfg, seed)
	if err != nil {
		// A parameter set the world rejects scores as immediate collapse
		return result
	}

	for w.Tick() < fe.maxTicks {
		w.Step()

		if w.ShouldFlush() {
			result.windows = append(result.windows, w.FlushWindow())
			w.DrainEvents()
		}

		if w.PreyCount() == 0 || w.TigerCount() == 0 {
			result.coexistTicks = w.Tick()
			return result
		}
	}

	result.coexistTicks = fe.maxTicks
	return result
}

// computeQuality scores ecosystem health in [0,1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	valid := windows[qualityWarmupWindows:]

	var ratioSum, grassSum, huntSum float64
	var counted, huntCounted int

	preyCounts := make([]float64, 0, len(valid))
	tigerCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Prey < qualityMinPop || w.Tigers < qualityMinPop {
			continue
		}

		preyCounts = append(preyCounts, float64(w.Prey))
		tigerCounts = append(tigerCounts, float64(w.Tigers))

		// Ratio score: log-gaussian around the target prey per tiger,
		// so 3:1 and 12:1 are penalized symmetrically
		logErr := math.Log(float64(w.Prey) / float64(w.Tigers) / qualityTargetRatio)
		ratioSum += math.Exp(-logErr * logErr)

		// Grass score: gaussian centered on 60% coverage
		grassDev := (w.GrassCoverage - 0.6) / 0.25
		grassSum += math.Exp(-grassDev * grassDev)

		counted++

		// Hunting score: saturating curve on kills per tiger per window
		if w.Kills > 0 {
			killsPerTiger := float64(w.Kills) / float64(w.Tigers)
			huntSum += 1.0 - math.Exp(-killsPerTiger/2.0)
			huntCounted++
		}
	}

	if counted == 0 {
		return 0
	}

	ratioScore := ratioSum / float64(counted)
	grassScore := grassSum / float64(counted)

	stabilityScore := 0.0
	if len(preyCounts) >= 2 {
		cvPrey := cv(preyCounts)
		cvTigers := cv(tigerCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvTigers*cvTigers))
	}

	huntScore := 0.0
	if huntCounted > 0 {
		huntScore = huntSum / float64(huntCounted)
	}

	quality := qualityWeightRatio*ratioScore +
		qualityWeightStability*stabilityScore +
		qualityWeightGrass*grassScore +
		qualityWeightHunting*huntScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (stddev / mean).
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	stddev := math.Sqrt(sqDiff / float64(len(values)))

	return stddev / mean
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
