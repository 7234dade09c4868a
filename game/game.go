// Package game runs the grid world: it owns the ECS world and the fields,
// asks every creature's AI for a decision each tick and applies the results.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/taiga/components"
	"github.com/pthm-cable/taiga/config"
	"github.com/pthm-cable/taiga/systems"
	"github.com/pthm-cable/taiga/telemetry"
	"github.com/pthm-cable/taiga/traits"
)

// Options configures a game instance.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string

	// Config overrides the global configuration when set.
	Config *config.Config

	// Stream receives tick frames when set.
	Stream *telemetry.Stream

	// StatsCallback is called whenever a telemetry window is flushed.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	creatureMapper *ecs.Map4[
		components.Position,
		components.Creature,
		components.Health,
		components.Gestation,
	]
	creatureFilter *ecs.Filter4[
		components.Position,
		components.Creature,
		components.Health,
		components.Gestation,
	]

	// Fields
	grass  *systems.GrassField
	scent  *systems.ScentField
	vision *systems.Vision

	// Decision workers
	parallel *parallelState

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	stream        *telemetry.Stream
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	// State
	tick    int32
	nextID  uint32
	numPrey int
	numPred int
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	w, h := cfg.World.Width, cfg.World.Height

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,
		creatureMapper: ecs.NewMap4[
			components.Position,
			components.Creature,
			components.Health,
			components.Gestation,
		](world),
		creatureFilter: ecs.NewFilter4[
			components.Position,
			components.Creature,
			components.Health,
			components.Gestation,
		](world),

		grass: systems.NewGrassField(w, h, opts.Seed, cfg),
		scent: systems.NewScentField(w, h, cfg.Scent.Deposit, cfg.Scent.Decay, cfg.Scent.Max),

		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.StatsWindow),
		stream:        opts.Stream,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		nextID:        1,
	}
	g.vision = systems.NewVision(g.grass, g.scent)
	g.parallel = newParallelState(cfg, rng)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g.spawnInitialPopulation()

	slog.Debug("game created",
		"width", w,
		"height", h,
		"prey", g.numPrey,
		"pred", g.numPred,
		"workers", g.parallel.numWorkers,
	)
	return g, nil
}

// config returns the active configuration.
func (g *Game) config() *config.Config {
	return g.cfg
}

// Step runs a single tick of the simulation.
func (g *Game) Step() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	g.snapshot()

	g.perfCollector.StartPhase(telemetry.PhaseDecide)
	g.decide()

	g.perfCollector.StartPhase(telemetry.PhaseApply)
	g.applyIntents()

	g.perfCollector.StartPhase(telemetry.PhaseLifecycle)
	g.updateLifecycle()

	g.perfCollector.StartPhase(telemetry.PhaseFields)
	g.updateFields()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.broadcastFrame()

	g.perfCollector.EndTick()
}

// Run steps until maxTicks is reached or both species are extinct.
// maxTicks <= 0 runs until extinction.
func (g *Game) Run(maxTicks int) {
	for maxTicks <= 0 || int(g.tick) < maxTicks {
		if g.numPrey == 0 && g.numPred == 0 {
			slog.Info("world is empty", "tick", g.tick)
			return
		}
		g.Step()
	}
}

// updateFields decays and lays scent, then regrows grass.
func (g *Game) updateFields() {
	g.scent.Update()

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, c, _, _ := query.Get()
		if c.Species == traits.Predator && !c.Dead {
			g.scent.Mark(pos.Geo())
		}
	}

	g.grass.Update()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Population returns the living prey and predator counts.
func (g *Game) Population() (prey, pred int) {
	return g.numPrey, g.numPred
}

// Unload releases worker goroutines and flushes output files.
func (g *Game) Unload() {
	g.parallel.stopWorkers()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
