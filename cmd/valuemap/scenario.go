package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

// ErrSelfIDTaken is returned when a unit carries the observer's id.
var ErrSelfIDTaken = errors.New("self id used by a unit")

// Scenario is a hand-written perception of a single creature.
type Scenario struct {
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
	Grass  ai.Grass       `yaml:"grass"` // applied to every cell without an override
	Self   SelfConfig     `yaml:"self"`
	Units  []UnitConfig   `yaml:"units"`
	Cells  []CellOverride `yaml:"cells"`
}

// SelfConfig describes the observer.
type SelfConfig struct {
	ID       uint32         `yaml:"id"`
	Species  traits.Species `yaml:"species"`
	Sex      traits.Sex     `yaml:"sex"`
	Adult    bool           `yaml:"adult"`
	Health   float64        `yaml:"health"`
	Pregnant bool           `yaml:"pregnant"`
	X        int            `yaml:"x"`
	Y        int            `yaml:"y"`
}

// UnitConfig describes one visible creature.
type UnitConfig struct {
	ID       uint32         `yaml:"id"`
	Species  traits.Species `yaml:"species"`
	Sex      traits.Sex     `yaml:"sex"`
	Adult    bool           `yaml:"adult"`
	Pregnant bool           `yaml:"pregnant"`
	X        int            `yaml:"x"`
	Y        int            `yaml:"y"`
}

// CellOverride sets grass and scent on one cell.
type CellOverride struct {
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Grass ai.Grass `yaml:"grass"`
	Scent int      `yaml:"scent"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.assignSelfID(); err != nil {
		return nil, err
	}
	return &s, nil
}

// assignSelfID gives the observer the first id above every unit's when none
// is set, and rejects an explicit id that a unit also uses.
func (s *Scenario) assignSelfID() error {
	var maxID uint32
	for _, u := range s.Units {
		if s.Self.ID != 0 && u.ID == s.Self.ID {
			return fmt.Errorf("unit at (%d,%d): id %d: %w", u.X, u.Y, u.ID, ErrSelfIDTaken)
		}
		maxID = max(maxID, u.ID)
	}
	if s.Self.ID == 0 {
		s.Self.ID = maxID + 1
	}
	return nil
}

// Agent returns the observer's self-view.
func (s *Scenario) Agent() ai.AgentInfo {
	me := ai.AgentInfo{
		ID:       s.Self.ID,
		Species:  s.Self.Species,
		Sex:      s.Self.Sex,
		Adult:    s.Self.Adult,
		Health:   s.Self.Health,
		Position: geo.Pos(s.Self.X, s.Self.Y),
	}
	if s.Self.Pregnant {
		me.Pregnancy = &ai.Pregnancy{}
	}
	return me
}

// Visibility builds the perception: the whole world is visible.
func (s *Scenario) Visibility() (*ai.Visibility, error) {
	overrides := make(map[geo.Position]CellOverride, len(s.Cells))
	for _, c := range s.Cells {
		overrides[geo.Pos(c.X, c.Y)] = c
	}

	cells := make([]ai.Cell, 0, s.Width*s.Height)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			p := geo.Pos(x, y)
			c := ai.Cell{Position: p, Grass: s.Grass}
			if o, ok := overrides[p]; ok {
				c.Grass, c.Scent = o.Grass, o.Scent
			}
			cells = append(cells, c)
		}
	}

	units := make([]ai.Unit, 0, len(s.Units))
	for _, u := range s.Units {
		units = append(units, ai.Unit{
			ID:       u.ID,
			Position: geo.Pos(u.X, u.Y),
			Species:  u.Species,
			Sex:      u.Sex,
			Adult:    u.Adult,
			Pregnant: u.Pregnant,
		})
	}

	return ai.NewVisibility(s.Width, s.Height, cells, units)
}
