package systems

import (
	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/geo"
)

// UnitIndex buckets the living units of one tick by position.
type UnitIndex map[geo.Position][]ai.Unit

// NewUnitIndex indexes units by position.
func NewUnitIndex(units []ai.Unit) UnitIndex {
	idx := make(UnitIndex, len(units))
	for _, u := range units {
		idx[u.Position] = append(idx[u.Position], u)
	}
	return idx
}

// Vision builds the per-creature perception snapshots. It only reads the
// fields, so snapshots for different creatures can be built concurrently as
// long as nothing writes to the fields meanwhile.
type Vision struct {
	W, H  int
	Grass *GrassField
	Scent *ScentField
}

// NewVision creates a vision system over the given fields.
func NewVision(grass *GrassField, scent *ScentField) *Vision {
	return &Vision{W: grass.W, H: grass.H, Grass: grass, Scent: scent}
}

// Snapshot returns what a creature at center with the given sight radius sees:
// every cell of the square neighbourhood clipped to the world, in row-major
// order, and every unit standing on those cells except the viewer itself.
func (v *Vision) Snapshot(viewer uint32, center geo.Position, radius int, units UnitIndex) (*ai.Visibility, error) {
	x0, x1 := max(center.X-radius, 0), min(center.X+radius, v.W-1)
	y0, y1 := max(center.Y-radius, 0), min(center.Y+radius, v.H-1)

	cells := make([]ai.Cell, 0, (x1-x0+1)*(y1-y0+1))
	var seen []ai.Unit
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := geo.Pos(x, y)
			cells = append(cells, ai.Cell{
				Position: p,
				Grass:    v.Grass.At(p),
				Scent:    v.Scent.At(p),
			})
			for _, u := range units[p] {
				if u.ID != viewer {
					seen = append(seen, u)
				}
			}
		}
	}
	return ai.NewVisibility(v.W, v.H, cells, seen)
}
