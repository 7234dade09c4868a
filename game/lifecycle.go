package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/components"
	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/telemetry"
	"github.com/pthm-cable/taiga/traits"
)

// birth is an offspring waiting to be spawned after the lifecycle query.
type birth struct {
	pos     geo.Position
	species traits.Species
}

// updateLifecycle advances gestation, ages creatures, removes the dead,
// starts new pregnancies and spawns newborns.
func (g *Game) updateLifecycle() {
	lc := g.config().Lifecycle

	// First pass: collect changes (must complete before modifying the world)
	type deadInfo struct {
		entity  ecs.Entity
		species traits.Species
	}
	var (
		toRemove []deadInfo
		births   []birth
	)

	query := g.creatureFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, c, h, gest := query.Get()

		if !c.Dead {
			if gest.Pregnant() {
				gest.Remaining--
				if gest.Remaining == 0 {
					for i := 0; i < lc.LitterSize; i++ {
						births = append(births, birth{pos: pos.Geo(), species: c.Species})
					}
					gest.Father = 0
				}
			}

			c.Age++
			h.Value -= lc.HealthDecay
			switch {
			case h.Value <= 0:
				c.Dead = true
				g.collector.RecordDeath(c.Species, telemetry.CauseStarved)
			case int(c.Age) >= lc.MaxAge:
				c.Dead = true
				g.collector.RecordDeath(c.Species, telemetry.CauseOldAge)
			}
		}

		if c.Dead {
			toRemove = append(toRemove, deadInfo{entity: entity, species: c.Species})
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, dead := range toRemove {
		g.world.RemoveEntity(dead.entity)
		if dead.species == traits.Predator {
			g.numPred--
		} else {
			g.numPrey--
		}
	}

	g.updateMating()

	for _, b := range births {
		if g.atCapacity(b.species) {
			continue
		}
		g.spawn(b.species, g.randomSex(), b.pos, 0, lc.NewbornHealth, components.ControllerLocal)
		g.collector.RecordBirth(b.species)
	}
}

// updateMating makes every willing adult female pregnant when a suitable
// male stands within mating range.
func (g *Game) updateMating() {
	cfg := g.config()
	lc := cfg.Lifecycle

	males := make(map[geo.Position][]ai.Unit)
	query := g.creatureFilter.Query()
	for query.Next() {
		pos, c, _, _ := query.Get()
		if c.Dead || c.Sex != traits.Male || !c.Adult(lc.MaturityAge) {
			continue
		}
		p := pos.Geo()
		males[p] = append(males[p], ai.Unit{
			ID:       c.ID,
			Position: p,
			Species:  c.Species,
			Sex:      c.Sex,
			Adult:    true,
		})
	}
	if len(males) == 0 {
		return
	}

	query = g.creatureFilter.Query()
	for query.Next() {
		pos, c, h, gest := query.Get()
		if c.Dead || c.Sex != traits.Female || gest.Pregnant() || !c.Adult(lc.MaturityAge) {
			continue
		}
		me := ai.AgentInfo{
			ID:       c.ID,
			Species:  c.Species,
			Sex:      c.Sex,
			Adult:    true,
			Health:   h.Value,
			Position: pos.Geo(),
		}
		father, ok := findMate(me, males, lc.MatingRange, cfg.World.Width, cfg.World.Height)
		if !ok {
			continue
		}
		gest.Father = father
		gest.Remaining = int32(max(lc.Gestation, 1))
		g.collector.RecordPregnancy()
	}
}

// findMate scans the square of the given range around me in row-major order
// and returns the first male that me regards as a mate.
func findMate(me ai.AgentInfo, males map[geo.Position][]ai.Unit, reach, w, h int) (uint32, bool) {
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			p := geo.Pos(me.Position.X+dx, me.Position.Y+dy)
			if !p.In(w, h) {
				continue
			}
			for _, u := range males[p] {
				if ai.Classify(me, u).Has(ai.Mate) {
					return u.ID, true
				}
			}
		}
	}
	return 0, false
}
