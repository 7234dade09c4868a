package ai

import (
	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

// grid returns every cell of a width x height world with no grass or scent.
func grid(width, height int) []Cell {
	cells := make([]Cell, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, Cell{Position: geo.Pos(x, y), Grass: Grass{Current: 0, Threshold: 10}})
		}
	}
	return cells
}

func adult(id uint32, species traits.Species, sex traits.Sex, at geo.Position) Unit {
	return Unit{ID: id, Species: species, Sex: sex, Adult: true, Position: at}
}

func self(species traits.Species, sex traits.Sex, health float64, at geo.Position) AgentInfo {
	return AgentInfo{ID: 1, Species: species, Sex: sex, Adult: true, Health: health, Position: at}
}

// withCell replaces the cell at c.Position.
func withCell(cells []Cell, c Cell) []Cell {
	out := make([]Cell, len(cells))
	copy(out, cells)
	for i := range out {
		if out[i].Position == c.Position {
			out[i] = c
		}
	}
	return out
}
