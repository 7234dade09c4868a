package ai

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

func TestEmptyVisibility(t *testing.T) {
	v := MustVisibility(10, 10, nil, nil)
	prey := NewPreyAI(nil, Options{})
	me := PreyInfo{self(traits.Prey, traits.Female, 1, geo.Pos(5, 5))}

	if got := prey.Evaluate(me, v); len(got) != 0 {
		t.Errorf("Evaluate on empty visibility = %v, want empty", got)
	}
	if d, ok := prey.Move(me, v); ok {
		t.Errorf("Move on empty visibility = %v, want no move", d)
	}

	wolf := NewPredatorAI(nil, Options{})
	wme := PredatorInfo{self(traits.Predator, traits.Male, 0.1, geo.Pos(5, 5))}
	if got := wolf.Evaluate(wme, v); len(got) != 0 {
		t.Errorf("predator Evaluate on empty visibility = %v, want empty", got)
	}
	if _, ok := wolf.Move(wme, v); ok {
		t.Error("predator Move on empty visibility should not move")
	}
}

func TestFoodSourceDoesNotProliferate(t *testing.T) {
	cells := grid(6, 6)
	preyAt := geo.Pos(4, 1)
	v := MustVisibility(6, 6, cells, []Unit{adult(2, traits.Prey, traits.Female, preyAt)})
	me := PredatorInfo{self(traits.Predator, traits.Male, 0.2, geo.Pos(0, 0))}

	values := NewPredatorAI(nil, Options{}).Evaluate(me, v)
	if got := values[preyAt]; got != 50 {
		t.Errorf("value at prey = %d, want 50", got)
	}
	for _, c := range cells {
		if c.Position == preyAt {
			continue
		}
		if got := values[c.Position]; got != 0 {
			t.Errorf("value at %v = %d, want 0 (food must not spread)", c.Position, got)
		}
	}
}

func TestThreatProliferation(t *testing.T) {
	cells := grid(7, 7)
	threatAt := geo.Pos(3, 3)
	v := MustVisibility(7, 7, cells, []Unit{adult(2, traits.Predator, traits.Male, threatAt)})
	me := PreyInfo{self(traits.Prey, traits.Female, 1, geo.Pos(0, 0))}

	values := NewPreyAI(nil, Options{}).Evaluate(me, v)
	if got := values[threatAt]; got != -50 {
		t.Errorf("value at threat = %d, want -50", got)
	}
	for _, c := range cells {
		if c.Position == threatAt {
			continue
		}
		want := -50 + threatAt.Distance(c.Position)
		if got := values[c.Position]; got != want {
			t.Errorf("value at %v = %d, want %d", c.Position, got, want)
		}
	}

	// Penalty fades with range.
	for d := 1; d < 3; d++ {
		near := values[geo.Pos(3+d, 3)]
		far := values[geo.Pos(3+d+1, 3)]
		if far <= near {
			t.Errorf("value at distance %d (%d) not above distance %d (%d)", d+1, far, d, near)
		}
	}
}

func TestEpicentersSum(t *testing.T) {
	cells := grid(8, 3)
	a, b := geo.Pos(0, 1), geo.Pos(7, 1)
	units := []Unit{
		adult(2, traits.Prey, traits.Female, a),
		adult(3, traits.Prey, traits.Female, b),
	}
	v := MustVisibility(8, 3, cells, units)
	me := PreyInfo{self(traits.Prey, traits.Female, 1, geo.Pos(4, 0))}

	values := NewPreyAI(nil, Options{}).Evaluate(me, v)
	for _, c := range cells {
		want := 0
		for _, epicenter := range []geo.Position{a, b} {
			if c.Position == epicenter {
				want += -5
				continue
			}
			want += -5 + epicenter.Distance(c.Position)
		}
		if got := values[c.Position]; got != want {
			t.Errorf("value at %v = %d, want %d", c.Position, got, want)
		}
	}
}

func TestSharedPositionUnionsAttitudes(t *testing.T) {
	cells := grid(3, 3)
	at := geo.Pos(2, 2)
	// Two rivals on the same cell count once; a ripe cell adds food value.
	cells = withCell(cells, Cell{Position: at, Grass: Grass{Current: 10, Threshold: 10}})
	units := []Unit{
		adult(2, traits.Prey, traits.Female, at),
		adult(3, traits.Prey, traits.Female, at),
	}
	v := MustVisibility(3, 3, cells, units)
	me := PreyInfo{self(traits.Prey, traits.Female, 1, geo.Pos(0, 0))}

	values := NewPreyAI(nil, Options{}).Evaluate(me, v)
	if got, want := values[at], 30-5; got != want {
		t.Errorf("value at shared cell = %d, want %d", got, want)
	}
	if got, want := values[geo.Pos(0, 0)], -5+2; got != want {
		t.Errorf("value at (0,0) = %d, want %d", got, want)
	}
}

func TestMateAndThreatOnOneCell(t *testing.T) {
	at := geo.Pos(1, 0)
	units := []Unit{
		adult(2, traits.Prey, traits.Male, at),
		adult(3, traits.Predator, traits.Male, at),
	}
	v := MustVisibility(4, 1, grid(4, 1), units)
	me := PreyInfo{self(traits.Prey, traits.Female, 1, geo.Pos(3, 0))}

	values := NewPreyAI(nil, Options{}).Evaluate(me, v)
	if got, want := values[at], 10-50; got != want {
		t.Errorf("value at shared cell = %d, want %d", got, want)
	}
}

func TestScentAttractsPredators(t *testing.T) {
	cells := grid(3, 3)
	cells = withCell(cells, Cell{Position: geo.Pos(2, 1), Scent: 9})
	v := MustVisibility(3, 3, cells, nil)
	me := PredatorInfo{self(traits.Predator, traits.Female, 1, geo.Pos(0, 1))}

	values := NewPredatorAI(nil, Options{}).Evaluate(me, v)
	if got := values[geo.Pos(2, 1)]; got != 4 {
		t.Errorf("scent value = %d, want 4", got)
	}
	d, ok := NewPredatorAI(nil, Options{}).Move(me, v)
	if !ok || me.Position.By(d).Distance(geo.Pos(2, 1)) != 1 {
		t.Errorf("Move = %v, %v; want a step toward the scent", d, ok)
	}

	// Scent does not matter to prey.
	preyValues := NewPreyAI(nil, Options{}).Evaluate(PreyInfo{me.AgentInfo}, v)
	if got := preyValues[geo.Pos(2, 1)]; got != 0 {
		t.Errorf("prey scent value = %d, want 0", got)
	}
}

func TestObserverIsNotItsOwnRival(t *testing.T) {
	me := self(traits.Prey, traits.Female, 1, geo.Pos(1, 1))
	units := []Unit{{ID: me.ID, Species: traits.Prey, Sex: traits.Female, Adult: true, Position: me.Position}}
	v := MustVisibility(3, 3, grid(3, 3), units)

	if got := NewPreyAI(nil, Options{}).Evaluate(PreyInfo{me}, v).Sum(); got != 0 {
		t.Errorf("sum = %d, want 0 when only self is visible", got)
	}
}

func TestKeysStayInBounds(t *testing.T) {
	units := []Unit{
		adult(2, traits.Predator, traits.Male, geo.Pos(0, 0)),
		adult(3, traits.Prey, traits.Male, geo.Pos(4, 4)),
	}
	v := MustVisibility(5, 5, grid(5, 5), units)
	values := NewPreyAI(nil, Options{}).Evaluate(PreyInfo{self(traits.Prey, traits.Female, 1, geo.Pos(2, 2))}, v)
	for p := range values {
		if !p.In(5, 5) {
			t.Errorf("key %v out of bounds", p)
		}
	}
}

func TestJuvenileBacksAwayFromRival(t *testing.T) {
	rivalAt := geo.Pos(3, 2)
	v := MustVisibility(5, 5, grid(5, 5), []Unit{adult(2, traits.Prey, traits.Female, rivalAt)})
	me := self(traits.Prey, traits.Female, 1, geo.Pos(2, 2))
	me.Adult = false

	prey := NewPreyAI(nil, Options{Rand: rand.New(rand.NewSource(1))})
	values := prey.Evaluate(PreyInfo{me}, v)
	if got := values[rivalAt]; got != -5 {
		t.Errorf("value at rival = %d, want -5", got)
	}
	for _, c := range grid(5, 5) {
		if c.Position != rivalAt && values[c.Position] <= values[rivalAt] {
			t.Errorf("value at %v = %d, want above rival cell %d", c.Position, values[c.Position], values[rivalAt])
		}
	}

	d, ok := prey.Move(PreyInfo{me}, v)
	if !ok {
		t.Fatal("juvenile should move away from the rival")
	}
	if to := me.Position.By(d); to.Distance(rivalAt) <= me.Position.Distance(rivalAt) {
		t.Errorf("moved %v to %v, not away from rival at %v", d, to, rivalAt)
	}
}

func TestJuvenilePredatorRivalCell(t *testing.T) {
	rivalAt := geo.Pos(1, 1)
	v := MustVisibility(4, 4, grid(4, 4), []Unit{adult(2, traits.Predator, traits.Male, rivalAt)})
	me := self(traits.Predator, traits.Male, 1, geo.Pos(3, 3))
	me.Adult = false

	values := NewPredatorAI(nil, Options{}).Evaluate(PredatorInfo{me}, v)
	if got, near := values[rivalAt], values[geo.Pos(2, 1)]; got >= near {
		t.Errorf("rival cell %d should score below its neighbour %d", got, near)
	}
}
