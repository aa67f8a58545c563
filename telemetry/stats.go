package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one telemetry window.
type WindowStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"window_end"`

	// Population at window end
	Prey          int     `csv:"prey"`
	Tigers        int     `csv:"tigers"`
	GrassCoverage float64 `csv:"grass_coverage"`

	// Events during the window
	PreyBirths  int `csv:"prey_births"`
	TigerBirths int `csv:"tiger_births"`
	PreyDeaths  int `csv:"prey_deaths"`
	TigerDeaths int `csv:"tiger_deaths"`
	Kills       int `csv:"kills"`
	Grazings    int `csv:"grazings"`
	Matings     int `csv:"matings"`

	// Food distribution sampled at window end
	PreyFoodMean  float64 `csv:"prey_food_mean"`
	PreyFoodP10   float64 `csv:"prey_food_p10"`
	PreyFoodP50   float64 `csv:"prey_food_p50"`
	PreyFoodP90   float64 `csv:"prey_food_p90"`
	TigerFoodMean float64 `csv:"tiger_food_mean"`
	TigerFoodP10  float64 `csv:"tiger_food_p10"`
	TigerFoodP50  float64 `csv:"tiger_food_p50"`
	TigerFoodP90  float64 `csv:"tiger_food_p90"`
}

// FoodStats computes the mean and percentiles of a food sample.
// The input is sorted in place; an empty sample yields zeros.
func FoodStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sort.Float64s(values)
	mean = stat.Mean(values, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStart),
		slog.Int("window_end", s.WindowEnd),
		slog.Int("prey", s.Prey),
		slog.Int("tigers", s.Tigers),
		slog.Float64("grass_coverage", s.GrassCoverage),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("tiger_births", s.TigerBirths),
		slog.Int("prey_deaths", s.PreyDeaths),
		slog.Int("tiger_deaths", s.TigerDeaths),
		slog.Int("kills", s.Kills),
		slog.Int("grazings", s.Grazings),
		slog.Int("matings", s.Matings),
		slog.Float64("prey_food_mean", s.PreyFoodMean),
		slog.Float64("prey_food_p50", s.PreyFoodP50),
		slog.Float64("tiger_food_mean", s.TigerFoodMean),
		slog.Float64("tiger_food_p50", s.TigerFoodP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"prey", s.Prey,
		"tigers", s.Tigers,
		"grass_coverage", s.GrassCoverage,
		"prey_births", s.PreyBirths,
		"tiger_births", s.TigerBirths,
		"prey_deaths", s.PreyDeaths,
		"tiger_deaths", s.TigerDeaths,
		"kills", s.Kills,
		"grazings", s.Grazings,
		"matings", s.Matings,
		"prey_food_mean", s.PreyFoodMean,
		"prey_food_p10", s.PreyFoodP10,
		"prey_food_p50", s.PreyFoodP50,
		"prey_food_p90", s.PreyFoodP90,
		"tiger_food_mean", s.TigerFoodMean,
		"tiger_food_p10", s.TigerFoodP10,
		"tiger_food_p50", s.TigerFoodP50,
		"tiger_food_p90", s.TigerFoodP90,
	)
}

// PerfStats records wall-clock timing for one telemetry window.
type PerfStats struct {
	WindowEnd   int     `csv:"window_end"`
	WallMs      float64 `csv:"wall_ms"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	Animals     int     `csv:"animals"`
}
