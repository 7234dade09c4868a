// Package components defines ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

// Position is an entity's grid cell.
type Position struct {
	X, Y int
}

// Geo returns the position as a geo.Position.
func (p Position) Geo() geo.Position {
	return geo.Pos(p.X, p.Y)
}

// Set moves the entity to g.
func (p *Position) Set(g geo.Position) {
	p.X, p.Y = g.X, g.Y
}

// Controller selects who decides for a creature.
type Controller uint8

const (
	ControllerLocal  Controller = iota // Decided by the built-in AI of its species
	ControllerRemote                   // Decided elsewhere; the local AI does nothing
)

// Creature holds identity and life-stage data.
type Creature struct {
	ID         uint32
	Species    traits.Species
	Sex        traits.Sex
	Age        int32 // Ticks since birth
	Controller Controller
	Dead       bool
	BirthTick  int32
}

// Adult reports whether the creature has reached maturityAge.
func (c *Creature) Adult(maturityAge int) bool {
	return int(c.Age) >= maturityAge
}

// Health is the creature's condition as a fraction in [0, 1]. Zero is death.
type Health struct {
	Value float64
}

// Clamp keeps the value inside [0, 1].
func (h *Health) Clamp() {
	h.Value = min(max(h.Value, 0), 1)
}

// Gestation tracks a carried litter. Remaining is zero when not pregnant.
type Gestation struct {
	Father    uint32
	Remaining int32
}

// Pregnant reports whether a litter is being carried.
func (g *Gestation) Pregnant() bool {
	return g.Remaining > 0
}

// Pregnancy returns the decision-core view of the gestation, or nil.
func (g *Gestation) Pregnancy() *ai.Pregnancy {
	if !g.Pregnant() {
		return nil
	}
	return &ai.Pregnancy{Father: g.Father, Remaining: int(g.Remaining)}
}
