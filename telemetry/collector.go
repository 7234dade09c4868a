package telemetry

import "github.com/pthm-cable/taiga/traits"

// DeathCause tells why a creature left the world.
type DeathCause uint8

const (
	CauseEaten DeathCause = iota
	CauseStarved
	CauseOldAge
)

// Collector accumulates events within windows of ticks and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births      map[traits.Species]int
	deaths      map[traits.Species]int
	starved     int
	oldAge      int
	kills       int
	grazes      int
	grassEaten  int
	pregnancies int
	moves       int
	idle        int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	c := &Collector{windowDurationTicks: int32(windowTicks)}
	c.reset()
	return c
}

func (c *Collector) reset() {
	c.births = make(map[traits.Species]int)
	c.deaths = make(map[traits.Species]int)
	c.starved, c.oldAge = 0, 0
	c.kills, c.grazes, c.grassEaten = 0, 0, 0
	c.pregnancies = 0
	c.moves, c.idle = 0, 0
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(s traits.Species) {
	c.births[s]++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(s traits.Species, cause DeathCause) {
	c.deaths[s]++
	switch cause {
	case CauseStarved:
		c.starved++
	case CauseOldAge:
		c.oldAge++
	case CauseEaten:
		c.kills++
	}
}

// RecordGraze records a grazing bite of the given size.
func (c *Collector) RecordGraze(amount int) {
	c.grazes++
	c.grassEaten += amount
}

// RecordPregnancy records a successful mating.
func (c *Collector) RecordPregnancy() {
	c.pregnancies++
}

// RecordMove records whether a creature stepped this tick.
func (c *Collector) RecordMove(moved bool) {
	if moved {
		c.moves++
	} else {
		c.idle++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(
	currentTick int32,
	preyHealth, predHealth []float64,
	totalGrass int,
) WindowStats {
	var moveRate float64
	if total := c.moves + c.idle; total > 0 {
		moveRate = float64(c.moves) / float64(total)
	}

	preyMean, preyP10, preyP50, preyP90 := ComputeHealthStats(preyHealth)
	predMean, predP10, predP50, predP90 := ComputeHealthStats(predHealth)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		PreyCount: len(preyHealth),
		PredCount: len(predHealth),

		PreyBirths: c.births[traits.Prey],
		PredBirths: c.births[traits.Predator],
		PreyDeaths: c.deaths[traits.Prey],
		PredDeaths: c.deaths[traits.Predator],
		Starved:    c.starved,
		OldAge:     c.oldAge,

		Kills:       c.kills,
		Grazes:      c.grazes,
		GrassEaten:  c.grassEaten,
		Pregnancies: c.pregnancies,

		Moves:    c.moves,
		Idle:     c.idle,
		MoveRate: moveRate,

		PreyHealthMean: preyMean,
		PreyHealthP10:  preyP10,
		PreyHealthP50:  preyP50,
		PreyHealthP90:  preyP90,

		PredHealthMean: predMean,
		PredHealthP10:  predP10,
		PredHealthP50:  predP50,
		PredHealthP90:  predP90,

		TotalGrass: totalGrass,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.reset()

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
