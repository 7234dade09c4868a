package game

import (
	"log/slog"

	"github.com/pthm-cable/taiga/components"
	"github.com/pthm-cable/taiga/traits"
)

// logWorldState logs population structure at the current tick.
func (g *Game) logWorldState() {
	lc := g.config().Lifecycle

	var adults, juveniles, pregnant, remote int
	var oldest int32

	query := g.creatureFilter.Query()
	for query.Next() {
		_, c, _, gest := query.Get()
		if c.Dead {
			continue
		}
		if c.Adult(lc.MaturityAge) {
			adults++
		} else {
			juveniles++
		}
		if gest.Pregnant() {
			pregnant++
		}
		if c.Controller == components.ControllerRemote {
			remote++
		}
		oldest = max(oldest, c.Age)
	}

	slog.Info("world",
		"tick", g.tick,
		slog.Group("population",
			traits.Prey.String(), g.numPrey,
			traits.Predator.String(), g.numPred,
			"adults", adults,
			"juveniles", juveniles,
			"pregnant", pregnant,
			"remote", remote,
			"oldest", oldest,
		),
		"grass", g.grass.Total(),
	)
}
