package components

import (
	"testing"

	"github.com/pthm-cable/taiga/geo"
)

func TestPositionGeo(t *testing.T) {
	p := Position{X: 3, Y: 4}
	if got := p.Geo(); got != geo.Pos(3, 4) {
		t.Errorf("Geo() = %v, want (3,4)", got)
	}
	p.Set(geo.Pos(7, 1))
	if p.X != 7 || p.Y != 1 {
		t.Errorf("after Set = %+v, want {7 1}", p)
	}
}

func TestHealthClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.2, 0},
		{0.4, 0.4},
		{1.7, 1},
	}
	for _, tt := range tests {
		h := Health{Value: tt.in}
		h.Clamp()
		if h.Value != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, h.Value, tt.want)
		}
	}
}

func TestGestation(t *testing.T) {
	var g Gestation
	if g.Pregnant() || g.Pregnancy() != nil {
		t.Fatal("zero gestation should not be pregnant")
	}
	g = Gestation{Father: 9, Remaining: 4}
	p := g.Pregnancy()
	if p == nil || p.Father != 9 || p.Remaining != 4 {
		t.Errorf("Pregnancy() = %+v, want father 9 remaining 4", p)
	}
}

func TestCreatureAdult(t *testing.T) {
	c := Creature{Age: 59}
	if c.Adult(60) {
		t.Error("age 59 should not be adult at maturity 60")
	}
	c.Age = 60
	if !c.Adult(60) {
		t.Error("age 60 should be adult at maturity 60")
	}
}
