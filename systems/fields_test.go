package systems

import (
	"testing"

	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/config"
	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func TestGrassFieldCreation(t *testing.T) {
	cfg := config.Cfg()
	gf := NewGrassField(16, 12, 42, cfg)

	if len(gf.Food) != 16*12 || len(gf.Threshold) != 16*12 {
		t.Fatalf("unexpected grid size %d/%d", len(gf.Food), len(gf.Threshold))
	}
	for i := range gf.Food {
		if gf.Food[i] < 0 || gf.Food[i] > cfg.Grass.MaxFood {
			t.Errorf("food[%d] = %d out of range", i, gf.Food[i])
		}
		if gf.Threshold[i] < cfg.Grass.MinThreshold || gf.Threshold[i] > cfg.Grass.MaxThreshold {
			t.Errorf("threshold[%d] = %d out of range", i, gf.Threshold[i])
		}
	}
}

func TestGrassGrazeAndRegrow(t *testing.T) {
	gf := NewGrassField(4, 4, 1, config.Cfg())
	p := geo.Pos(2, 3)
	gf.Food[3*4+2] = 5

	if eaten := gf.Graze(p, 3); eaten != 3 {
		t.Errorf("Graze = %d, want 3", eaten)
	}
	if eaten := gf.Graze(p, 3); eaten != 2 {
		t.Errorf("second Graze = %d, want 2 (what was left)", eaten)
	}
	if got := gf.At(p).Current; got != 0 {
		t.Errorf("food after grazing = %d, want 0", got)
	}

	for range gf.RegenEvery {
		gf.Update()
	}
	if got := gf.At(p).Current; got != 1 {
		t.Errorf("food after one regen period = %d, want 1", got)
	}
}

func TestScentField(t *testing.T) {
	sf := NewScentField(3, 3, 8, 3, 10)
	p := geo.Pos(1, 1)
	sf.Mark(p)
	sf.Mark(p)
	if got := sf.At(p); got != 10 {
		t.Errorf("scent = %d, want capped 10", got)
	}
	sf.Update()
	if got := sf.At(p); got != 7 {
		t.Errorf("scent after decay = %d, want 7", got)
	}
	for range 5 {
		sf.Update()
	}
	if got := sf.At(p); got != 0 {
		t.Errorf("scent = %d, want floor 0", got)
	}
}

func TestVisionSnapshot(t *testing.T) {
	gf := NewGrassField(10, 10, 3, config.Cfg())
	sf := NewScentField(10, 10, 4, 1, 20)
	sf.Mark(geo.Pos(1, 1))
	vision := NewVision(gf, sf)

	units := []ai.Unit{
		{ID: 1, Position: geo.Pos(0, 0), Species: traits.Prey},
		{ID: 2, Position: geo.Pos(2, 1), Species: traits.Predator},
		{ID: 3, Position: geo.Pos(9, 9), Species: traits.Prey},
	}
	v, err := vision.Snapshot(1, geo.Pos(0, 0), 2, NewUnitIndex(units))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if got := len(v.Cells()); got != 9 {
		t.Errorf("cells = %d, want 9 (3x3 clipped at the corner)", got)
	}
	if v.Cells()[0].Position != geo.Pos(0, 0) || v.Cells()[1].Position != geo.Pos(1, 0) {
		t.Errorf("cells not in row-major order: %v, %v", v.Cells()[0].Position, v.Cells()[1].Position)
	}
	if got := v.Units(); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("units = %+v, want only unit 2", got)
	}
	if c, _ := v.CellAt(geo.Pos(1, 1)); c.Scent != 4 {
		t.Errorf("scent at (1,1) = %d, want 4", c.Scent)
	}
	if v.Width() != 10 || v.Height() != 10 {
		t.Errorf("extent = %dx%d", v.Width(), v.Height())
	}
}
