package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/taiga/components"
	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

// spawnInitialPopulation creates the founders at random cells.
func (g *Game) spawnInitialPopulation() {
	pc := g.config().Population

	for i := 0; i < pc.InitialPrey; i++ {
		ctrl := components.ControllerLocal
		if i < pc.RemotePrey {
			ctrl = components.ControllerRemote
		}
		g.spawnFounder(traits.Prey, ctrl)
	}
	for i := 0; i < pc.InitialPred; i++ {
		g.spawnFounder(traits.Predator, components.ControllerLocal)
	}
}

// spawnFounder creates a founder with a random age, sex and health.
func (g *Game) spawnFounder(species traits.Species, ctrl components.Controller) ecs.Entity {
	cfg := g.config()
	lc := cfg.Lifecycle

	pos := geo.Pos(g.rng.Intn(cfg.World.Width), g.rng.Intn(cfg.World.Height))

	age := int32(g.rng.Intn(max(lc.MaturityAge, 1)))
	if g.rng.Float64() < cfg.Population.AdultShare {
		// Adults start in the first half of their adult life
		span := max((lc.MaxAge-lc.MaturityAge)/2, 1)
		age = int32(lc.MaturityAge + g.rng.Intn(span))
	}
	health := 0.5 + 0.5*g.rng.Float64()

	return g.spawn(species, g.randomSex(), pos, age, health, ctrl)
}

// spawn creates a creature entity.
func (g *Game) spawn(species traits.Species, sex traits.Sex, pos geo.Position, age int32, health float64, ctrl components.Controller) ecs.Entity {
	id := g.nextID
	g.nextID++

	p := components.Position{X: pos.X, Y: pos.Y}
	c := components.Creature{
		ID:         id,
		Species:    species,
		Sex:        sex,
		Age:        age,
		Controller: ctrl,
		BirthTick:  g.tick,
	}
	h := components.Health{Value: health}
	h.Clamp()
	gest := components.Gestation{}

	entity := g.creatureMapper.NewEntity(&p, &c, &h, &gest)

	// Track population by species
	if species == traits.Predator {
		g.numPred++
	} else {
		g.numPrey++
	}

	return entity
}

func (g *Game) randomSex() traits.Sex {
	if g.rng.Intn(2) == 0 {
		return traits.Female
	}
	return traits.Male
}

// atCapacity reports whether species has reached its population cap.
func (g *Game) atCapacity(species traits.Species) bool {
	pc := g.config().Population
	if species == traits.Predator {
		return g.numPred >= pc.MaxPred
	}
	return g.numPrey >= pc.MaxPrey
}
