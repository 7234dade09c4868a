// Package traits defines creature species, sex and how one species sees another.
package traits

import "fmt"

// Species identifies a creature kind.
type Species uint8

const (
	Prey     Species = iota // Grazes grass, hunted by predators
	Predator                // Hunts prey
)

// Sex of a creature.
type Sex uint8

const (
	Female Sex = iota
	Male
)

// Role is what another species is to an observer. It is a closed set: every
// pair of species maps to exactly one role.
type Role uint8

const (
	RoleNone   Role = iota // Irrelevant to the observer
	RoleKin                // Same reproductive species
	RoleHunter             // Eats the observer
	RoleQuarry             // Eaten by the observer
)

// diets lists which species each species eats.
var diets = map[Species][]Species{
	Prey:     nil,
	Predator: {Prey},
}

// Eats reports whether s feeds on other.
func (s Species) Eats(other Species) bool {
	for _, v := range diets[s] {
		if v == other {
			return true
		}
	}
	return false
}

// Grazes reports whether s feeds on cell food rather than on other creatures.
func (s Species) Grazes() bool {
	return len(diets[s]) == 0
}

// RoleOf returns what other is to observer.
func RoleOf(observer, other Species) Role {
	switch {
	case observer == other:
		return RoleKin
	case other.Eats(observer):
		return RoleHunter
	case observer.Eats(other):
		return RoleQuarry
	default:
		return RoleNone
	}
}

// Opposite returns the other sex.
func (s Sex) Opposite() Sex {
	if s == Male {
		return Female
	}
	return Male
}

func (s Species) String() string {
	switch s {
	case Prey:
		return "prey"
	case Predator:
		return "predator"
	default:
		return fmt.Sprintf("species(%d)", uint8(s))
	}
}

func (s Sex) String() string {
	if s == Male {
		return "male"
	}
	return "female"
}

func (r Role) String() string {
	switch r {
	case RoleKin:
		return "kin"
	case RoleHunter:
		return "hunter"
	case RoleQuarry:
		return "quarry"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Species) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Species) UnmarshalText(b []byte) error {
	switch string(b) {
	case "prey", "rabbit":
		*s = Prey
	case "predator", "wolf":
		*s = Predator
	default:
		return fmt.Errorf("unknown species %q", b)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Sex) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sex) UnmarshalText(b []byte) error {
	switch string(b) {
	case "female", "f":
		*s = Female
	case "male", "m":
		*s = Male
	default:
		return fmt.Errorf("unknown sex %q", b)
	}
	return nil
}

// AllSpecies lists every species in declaration order.
func AllSpecies() []Species {
	return []Species{Prey, Predator}
}
