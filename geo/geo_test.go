package geo

import (
	"math/rand"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"same", Pos(2, 2), Pos(2, 2), 0},
		{"horizontal", Pos(0, 0), Pos(3, 0), 3},
		{"diagonal", Pos(0, 0), Pos(3, 3), 3},
		{"mixed", Pos(1, 5), Pos(4, 1), 4},
		{"negative delta", Pos(4, 4), Pos(0, 2), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); got != tt.want {
				t.Errorf("%v.Distance(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Distance(tt.a); got != tt.want {
				t.Errorf("distance not symmetric: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIn(t *testing.T) {
	tests := []struct {
		p    Position
		want bool
	}{
		{Pos(0, 0), true},
		{Pos(4, 2), true},
		{Pos(5, 2), false},
		{Pos(4, 3), false},
		{Pos(-1, 0), false},
		{Pos(0, -1), false},
	}
	for _, tt := range tests {
		if got := tt.p.In(5, 3); got != tt.want {
			t.Errorf("%v.In(5, 3) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Pos(-3, 9).Clamp(5, 5); got != Pos(0, 4) {
		t.Errorf("Clamp = %v, want (0,4)", got)
	}
}

func TestShuffledIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 20 {
		seen := make(map[Direction]bool)
		for _, d := range Shuffled(rng) {
			seen[d] = true
		}
		if len(seen) != DirectionCount {
			t.Fatalf("Shuffled returned %d distinct directions, want %d", len(seen), DirectionCount)
		}
	}
	if got := len(Shuffled(nil)); got != DirectionCount {
		t.Errorf("Shuffled(nil) len = %d, want %d", got, DirectionCount)
	}
}

func TestInBoundsCorner(t *testing.T) {
	dirs := InBounds(Directions(), Pos(0, 0), 4, 4)
	want := map[Direction]bool{East: true, SouthEast: true, South: true}
	if len(dirs) != len(want) {
		t.Fatalf("InBounds at corner = %v, want %d directions", dirs, len(want))
	}
	for _, d := range dirs {
		if !want[d] {
			t.Errorf("unexpected direction %v at corner", d)
		}
	}
}

func TestToward(t *testing.T) {
	t.Run("straight line", func(t *testing.T) {
		d, ok := Toward(Pos(0, 0), Pos(0, 3), []Direction{South, North})
		if !ok || d != South {
			t.Errorf("Toward = %v, %v; want S, true", d, ok)
		}
	})

	t.Run("first of equal candidates wins", func(t *testing.T) {
		// E, NE and SE all reduce the distance from 3 to 2.
		for _, order := range [][]Direction{
			{SouthEast, East, NorthEast},
			{NorthEast, SouthEast, East},
		} {
			d, ok := Toward(Pos(5, 5), Pos(8, 5), order)
			if !ok || d != order[0] {
				t.Errorf("Toward with order %v = %v, want %v", order, d, order[0])
			}
		}
	})

	t.Run("already there", func(t *testing.T) {
		if _, ok := Toward(Pos(1, 1), Pos(1, 1), Directions()); ok {
			t.Error("Toward onto own position should report no move")
		}
	})

	t.Run("no closing direction available", func(t *testing.T) {
		if _, ok := Toward(Pos(1, 1), Pos(4, 1), []Direction{West, North}); ok {
			t.Error("Toward should report no move when every step moves away")
		}
	})
}
