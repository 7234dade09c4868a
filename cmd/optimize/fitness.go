package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/taiga/config"
	"github.com/pthm-cable/taiga/game"
	"github.com/pthm-cable/taiga/telemetry"
)

// ErrNoRuns is returned when every seed of an evaluation failed to run.
var ErrNoRuns = errors.New("no seed completed")

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// A species counts as functionally extinct once it stays below minViablePop
// for extinctionGraceTicks consecutive ticks. After the first species goes,
// the run continues for at most followUpTicks to time the other one.
const (
	minViablePop         = 3
	extinctionGraceTicks = 200
	warmupTicks          = 50
	followUpTicks        = 1000
)

// SeedResult is the outcome of one seeded run.
type SeedResult struct {
	Seed      int64   `csv:"seed"`
	PreyTicks int32   `csv:"prey_ticks"` // Tick prey went extinct, or the last tick run
	PredTicks int32   `csv:"pred_ticks"` // Tick predators went extinct, or the last tick run
	Quality   float64 `csv:"quality"`
	Fitness   float64 `csv:"fitness"`
	Error     string  `csv:"error"`
}

// Coexisted returns how long both species were alive together.
func (r SeedResult) Coexisted() int32 {
	return min(r.PreyTicks, r.PredTicks)
}

// Evaluation summarizes all seeds run for one parameter vector.
type Evaluation struct {
	Fitness   float64 // Mean over completed seeds (lower = better)
	Quality   float64
	PreyTicks float64
	PredTicks float64
	Seeds     []SeedResult
	Failed    int
}

// Evaluate runs every seed with x applied. Fitness is the negative coexistence
// time scaled up by ecosystem quality. Seeds that fail to run are logged and
// left out of the means.
func (fe *FitnessEvaluator) Evaluate(x []float64) (Evaluation, error) {
	cfg, err := fe.configFor(x)
	if err != nil {
		return Evaluation{}, err
	}

	results := make([]SeedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSeed(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	return summarize(results)
}

// summarize averages the completed seeds.
func summarize(results []SeedResult) (Evaluation, error) {
	ev := Evaluation{Seeds: results}
	var fitness, quality, prey, pred []float64
	for _, r := range results {
		if r.Error != "" {
			slog.Warn("seed failed", "seed", r.Seed, "error", r.Error)
			ev.Failed++
			continue
		}
		fitness = append(fitness, r.Fitness)
		quality = append(quality, r.Quality)
		prey = append(prey, float64(r.PreyTicks))
		pred = append(pred, float64(r.PredTicks))
	}
	if len(fitness) == 0 {
		return ev, fmt.Errorf("%d seeds: %w", len(results), ErrNoRuns)
	}

	ev.Fitness = stat.Mean(fitness, nil)
	ev.Quality = stat.Mean(quality, nil)
	ev.PreyTicks = stat.Mean(prey, nil)
	ev.PredTicks = stat.Mean(pred, nil)
	return ev, nil
}

// configFor copies the base config and applies x.
func (fe *FitnessEvaluator) configFor(x []float64) (*config.Config, error) {
	cfg := *fe.baseConfig
	// Seeds run concurrently already.
	cfg.Decision.Parallel = false
	if err := fe.params.ApplyToConfig(&cfg, x); err != nil {
		return nil, fmt.Errorf("applying parameters: %w", err)
	}
	return &cfg, nil
}

// runSeed runs one simulation and scores it.
func (fe *FitnessEvaluator) runSeed(cfg *config.Config, seed int64) SeedResult {
	r := SeedResult{Seed: seed}

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Seed:   seed,
		Config: cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		r.Error = err.Error()
		return r
	}
	defer g.Unload()

	r.PreyTicks, r.PredTicks = fe.survival(g)
	r.Quality = computeQuality(windows)
	r.Fitness = -(float64(r.Coexisted()) * (1.0 + 0.2*r.Quality))
	return r
}

// survival steps g until both species are gone, the follow-up after the
// first extinction ends, or maxTicks, and returns when each species ended.
func (fe *FitnessEvaluator) survival(g *game.Game) (prey, pred int32) {
	var preyClock, predClock extinctionClock
	stopAt := fe.maxTicks
	for g.Tick() < stopAt {
		g.Step()
		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		preyPop, predPop := g.Population()
		preyClock.observe(preyPop, tick)
		predClock.observe(predPop, tick)
		if preyClock.ended != 0 && predClock.ended != 0 {
			break
		}
		if (preyClock.ended != 0 || predClock.ended != 0) && stopAt == fe.maxTicks {
			stopAt = min(fe.maxTicks, tick+followUpTicks)
		}
	}
	return preyClock.result(g.Tick()), predClock.result(g.Tick())
}

// extinctionClock tracks when one species stopped being viable.
type extinctionClock struct {
	below int32
	ended int32
}

func (c *extinctionClock) observe(pop int, tick int32) {
	if c.ended != 0 {
		return
	}
	switch {
	case pop == 0:
		c.ended = tick
	case pop < minViablePop:
		c.below++
		if c.below >= extinctionGraceTicks {
			c.ended = tick
		}
	default:
		c.below = 0
	}
}

func (c *extinctionClock) result(last int32) int32 {
	if c.ended != 0 {
		return c.ended
	}
	return last
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightHealth    = 0.25
	qualityWeightHunting   = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows where either species < this
)

// computeQuality computes ecosystem quality in [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var ratioScores, healthScores, huntScores []float64
	preyCounts := make([]float64, 0, len(valid))
	predCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.PreyCount < qualityMinPop || w.PredCount < qualityMinPop {
			continue
		}

		preyCounts = append(preyCounts, float64(w.PreyCount))
		predCounts = append(predCounts, float64(w.PredCount))

		// Population ratio around ten prey per predator
		logErr := math.Log(float64(w.PreyCount) / float64(w.PredCount) / 10.0)
		ratioScores = append(ratioScores, math.Exp(-logErr*logErr))

		// Median health around one half
		preyH := math.Exp(-math.Pow((w.PreyHealthP50-0.5)/0.2, 2))
		predH := math.Exp(-math.Pow((w.PredHealthP50-0.5)/0.2, 2))
		healthScores = append(healthScores, (preyH+predH)/2)

		// Hunting activity: some kills per predator each window
		killsPerPred := float64(w.Kills) / float64(w.PredCount)
		huntScores = append(huntScores, 1.0-math.Exp(-killsPerPred))
	}

	if len(ratioScores) == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(preyCounts) >= 2 {
		cvPrey, cvPred := cv(preyCounts), cv(predCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}

	quality := qualityWeightRatio*stat.Mean(ratioScores, nil) +
		qualityWeightStability*stabilityScore +
		qualityWeightHealth*stat.Mean(healthScores, nil) +
		qualityWeightHunting*stat.Mean(huntScores, nil)

	return min(max(quality, 0), 1)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
