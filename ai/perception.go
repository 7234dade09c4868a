// Package ai is the per-tick decision core of a grid creature. Given what a
// creature currently perceives it scores every visible cell, picks one step
// direction and decides whether to eat.
//
// All operations are pure functions of their inputs: the AIs hold no state
// between calls besides an optional random source used for tie-breaking.
package ai

import (
	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

// Grass is the food growing on a cell.
type Grass struct {
	Current   int `yaml:"current" json:"current"`     // food available now
	Threshold int `yaml:"threshold" json:"threshold"` // amount at which the cell counts as edible
}

// Ripe reports whether there is food and it has reached its threshold.
func (g Grass) Ripe() bool {
	return g.Current > 0 && g.Current >= g.Threshold
}

// Cell is one visible grid cell.
type Cell struct {
	Position geo.Position
	Grass    Grass
	Scent    int
}

// Unit is a living creature as seen by someone else.
type Unit struct {
	ID       uint32
	Position geo.Position
	Species  traits.Species
	Sex      traits.Sex
	Adult    bool
	Pregnant bool
}

// Pregnancy tracks a carried litter.
type Pregnancy struct {
	Father    uint32
	Remaining int // ticks until birth
}

// AgentInfo is a creature's view of itself.
type AgentInfo struct {
	ID        uint32
	Species   traits.Species
	Sex       traits.Sex
	Adult     bool
	Health    float64 // fraction in [0, 1]
	Pregnancy *Pregnancy
	Position  geo.Position
}

// Info returns a; it lets every concrete info type embedding AgentInfo satisfy Agent.
func (a AgentInfo) Info() AgentInfo {
	return a
}

// Pregnant reports whether a pregnancy is in progress.
func (a AgentInfo) Pregnant() bool {
	return a.Pregnancy != nil
}

// Agent is implemented by the concrete self-view of each creature kind.
type Agent interface {
	Info() AgentInfo
}

// PreyInfo is the self-view of a grazing creature.
type PreyInfo struct {
	AgentInfo
}

// PredatorInfo is the self-view of a hunting creature.
type PredatorInfo struct {
	AgentInfo
}

// FoodKind tells what a Food refers to.
type FoodKind uint8

const (
	FoodGrass FoodKind = iota // grass on a cell
	FoodPrey                  // a living unit
)

// Food is the target of a feeding decision.
type Food struct {
	Kind     FoodKind
	Position geo.Position
	Grass    Grass // set for FoodGrass
	Unit     Unit  // set for FoodPrey
}
