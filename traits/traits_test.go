package traits

import "testing"

func TestRoleOf(t *testing.T) {
	tests := []struct {
		observer, other Species
		want            Role
	}{
		{Prey, Prey, RoleKin},
		{Predator, Predator, RoleKin},
		{Prey, Predator, RoleHunter},
		{Predator, Prey, RoleQuarry},
	}
	for _, tt := range tests {
		if got := RoleOf(tt.observer, tt.other); got != tt.want {
			t.Errorf("RoleOf(%v, %v) = %v, want %v", tt.observer, tt.other, got, tt.want)
		}
	}
}

func TestGrazes(t *testing.T) {
	if !Prey.Grazes() {
		t.Error("prey should graze")
	}
	if Predator.Grazes() {
		t.Error("predators should not graze")
	}
}

func TestSpeciesText(t *testing.T) {
	for _, s := range AllSpecies() {
		b, _ := s.MarshalText()
		var got Species
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != s {
			t.Errorf("round trip %v -> %v", s, got)
		}
	}
	var s Species
	if err := s.UnmarshalText([]byte("bear")); err == nil {
		t.Error("expected error for unknown species")
	}
}

func TestSexOpposite(t *testing.T) {
	if Male.Opposite() != Female || Female.Opposite() != Male {
		t.Error("Opposite is not an involution")
	}
}
