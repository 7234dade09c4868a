package game

import (
	"log/slog"

	"github.com/pthm-cable/taiga/telemetry"
	"github.com/pthm-cable/taiga/traits"
)

// flushTelemetry flushes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	preyHealth, predHealth := g.sampleHealth()
	stats := g.collector.Flush(g.tick, preyHealth, predHealth, g.grass.Total())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		slog.Info("stats", "window", stats)
		slog.Info("perf", "window", perfStats)
		g.logWorldState()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleHealth collects the health of every living creature by species.
func (g *Game) sampleHealth() (prey, pred []float64) {
	prey = make([]float64, 0, g.numPrey)
	pred = make([]float64, 0, g.numPred)

	query := g.creatureFilter.Query()
	for query.Next() {
		_, c, h, _ := query.Get()
		if c.Dead {
			continue
		}
		if c.Species == traits.Predator {
			pred = append(pred, h.Value)
		} else {
			prey = append(prey, h.Value)
		}
	}
	return prey, pred
}

// broadcastFrame sends the world state to stream subscribers every few ticks.
func (g *Game) broadcastFrame() {
	if g.stream == nil {
		return
	}
	every := max(g.config().Stream.Every, 1)
	if g.tick%int32(every) != 0 || g.stream.Clients() == 0 {
		return
	}
	g.stream.Broadcast(g.Frame())
}

// Frame builds a stream frame of the current tick.
func (g *Game) Frame() telemetry.TickFrame {
	lc := g.config().Lifecycle
	frame := telemetry.TickFrame{
		Type:      "tick",
		Tick:      g.tick,
		Prey:      g.numPrey,
		Pred:      g.numPred,
		Grass:     g.grass.Total(),
		Creatures: make([]telemetry.CreatureView, 0, g.numPrey+g.numPred),
	}

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, c, h, _ := query.Get()
		if c.Dead {
			continue
		}
		frame.Creatures = append(frame.Creatures, telemetry.CreatureView{
			ID:      c.ID,
			X:       pos.X,
			Y:       pos.Y,
			Species: c.Species.String(),
			Sex:     c.Sex.String(),
			Adult:   c.Adult(lc.MaturityAge),
			Health:  h.Value,
			Born:    c.BirthTick,
		})
	}
	return frame
}
