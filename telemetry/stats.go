package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population counts at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Events during window
	PreyBirths int `csv:"prey_births"`
	PredBirths int `csv:"pred_births"`
	PreyDeaths int `csv:"prey_deaths"`
	PredDeaths int `csv:"pred_deaths"`
	Starved    int `csv:"starved"`
	OldAge     int `csv:"old_age"`

	// Feeding
	Kills       int `csv:"kills"`
	Grazes      int `csv:"grazes"`
	GrassEaten  int `csv:"grass_eaten"`
	Pregnancies int `csv:"pregnancies"`

	// Movement
	Moves    int     `csv:"moves"`
	Idle     int     `csv:"idle"`
	MoveRate float64 `csv:"move_rate"`

	// Health distribution (sampled at window end)
	PreyHealthMean float64 `csv:"prey_health_mean"`
	PreyHealthP10  float64 `csv:"prey_health_p10"`
	PreyHealthP50  float64 `csv:"prey_health_p50"`
	PreyHealthP90  float64 `csv:"prey_health_p90"`

	PredHealthMean float64 `csv:"pred_health_mean"`
	PredHealthP10  float64 `csv:"pred_health_p10"`
	PredHealthP50  float64 `csv:"pred_health_p50"`
	PredHealthP90  float64 `csv:"pred_health_p90"`

	// Grass left on the map
	TotalGrass int `csv:"total_grass"`
}

// ComputeHealthStats calculates mean and empirical percentiles of health values.
func ComputeHealthStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_deaths", s.PreyDeaths),
		slog.Int("pred_deaths", s.PredDeaths),
		slog.Int("starved", s.Starved),
		slog.Int("old_age", s.OldAge),
		slog.Int("kills", s.Kills),
		slog.Int("grazes", s.Grazes),
		slog.Int("grass_eaten", s.GrassEaten),
		slog.Int("pregnancies", s.Pregnancies),
		slog.Float64("move_rate", s.MoveRate),
		slog.Float64("prey_health_mean", s.PreyHealthMean),
		slog.Float64("prey_health_p50", s.PreyHealthP50),
		slog.Float64("pred_health_mean", s.PredHealthMean),
		slog.Float64("pred_health_p50", s.PredHealthP50),
		slog.Int("total_grass", s.TotalGrass),
	)
}
