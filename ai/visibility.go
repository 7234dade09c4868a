package ai

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/taiga/geo"
)

var (
	// ErrBadExtent is returned for a non-positive world width or height.
	ErrBadExtent = errors.New("ai: invalid world extent")
	// ErrOutOfBounds is returned when a cell or unit lies outside the world.
	ErrOutOfBounds = errors.New("ai: position outside world")
	// ErrDuplicateCell is returned when two visible cells share a position.
	ErrDuplicateCell = errors.New("ai: duplicate visible cell")
)

// Visibility is the frozen snapshot of what one creature perceives during a
// single decision. It must not be modified while a decision is computed;
// the slices returned by Cells and Units are shared and read-only.
type Visibility struct {
	width, height int
	cells         []Cell
	units         []Unit
	index         map[geo.Position]int
}

// NewVisibility validates and wraps a snapshot. Every cell and unit must lie
// inside [0, width) x [0, height) and cell positions must be unique.
func NewVisibility(width, height int, cells []Cell, units []Unit) (*Visibility, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadExtent, width, height)
	}
	index := make(map[geo.Position]int, len(cells))
	for i, c := range cells {
		if !c.Position.In(width, height) {
			return nil, fmt.Errorf("%w: cell %v in %dx%d", ErrOutOfBounds, c.Position, width, height)
		}
		if _, dup := index[c.Position]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateCell, c.Position)
		}
		index[c.Position] = i
	}
	for _, u := range units {
		if !u.Position.In(width, height) {
			return nil, fmt.Errorf("%w: unit %d at %v in %dx%d", ErrOutOfBounds, u.ID, u.Position, width, height)
		}
	}
	return &Visibility{width: width, height: height, cells: cells, units: units, index: index}, nil
}

// MustVisibility is like NewVisibility but panics on invalid input.
func MustVisibility(width, height int, cells []Cell, units []Unit) *Visibility {
	v, err := NewVisibility(width, height, cells, units)
	if err != nil {
		panic(err)
	}
	return v
}

// Width of the world.
func (v *Visibility) Width() int { return v.width }

// Height of the world.
func (v *Visibility) Height() int { return v.height }

// Cells returns the visible cells.
func (v *Visibility) Cells() []Cell { return v.cells }

// Units returns the visible living units.
func (v *Visibility) Units() []Unit { return v.units }

// CellAt returns the visible cell at p.
func (v *Visibility) CellAt(p geo.Position) (Cell, bool) {
	i, ok := v.index[p]
	if !ok {
		return Cell{}, false
	}
	return v.cells[i], true
}
