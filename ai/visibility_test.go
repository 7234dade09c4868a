package ai

import (
	"errors"
	"testing"

	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

func TestNewVisibilityRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cells         []Cell
		units         []Unit
		want          error
	}{
		{"zero width", 0, 5, nil, nil, ErrBadExtent},
		{"cell outside", 3, 3, []Cell{{Position: geo.Pos(3, 0)}}, nil, ErrOutOfBounds},
		{"unit outside", 3, 3, nil, []Unit{adult(2, traits.Prey, traits.Male, geo.Pos(0, -1))}, ErrOutOfBounds},
		{"duplicate cell", 3, 3, []Cell{{Position: geo.Pos(1, 1)}, {Position: geo.Pos(1, 1)}}, nil, ErrDuplicateCell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVisibility(tt.width, tt.height, tt.cells, tt.units)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCellAt(t *testing.T) {
	v := MustVisibility(2, 2, grid(2, 2), nil)
	if c, ok := v.CellAt(geo.Pos(1, 1)); !ok || c.Position != geo.Pos(1, 1) {
		t.Errorf("CellAt(1,1) = %v, %v", c, ok)
	}
	empty := MustVisibility(2, 2, nil, nil)
	if _, ok := empty.CellAt(geo.Pos(0, 0)); ok {
		t.Error("CellAt on an empty snapshot should miss")
	}
}
