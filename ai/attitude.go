package ai

import "strings"

// Attitude is the behavioral category a perceived unit represents.
type Attitude uint8

const (
	Threat Attitude = iota
	Rival
	Mate
	FoodSource

	attitudeCount
)

var attitudeNames = [attitudeCount]string{"threat", "rival", "mate", "food"}

func (a Attitude) String() string {
	if a >= attitudeCount {
		return "unknown"
	}
	return attitudeNames[a]
}

// Attitudes lists every attitude in declaration order.
func Attitudes() []Attitude {
	return []Attitude{Threat, Rival, Mate, FoodSource}
}

// proliferating attitudes spread their value over the whole visible area.
var proliferating = NewAttitudeSet(Threat, Rival)

// Proliferates reports whether a's value spreads from its epicenter.
func (a Attitude) Proliferates() bool {
	return proliferating.Has(a)
}

// AttitudeSet is a set of attitudes.
type AttitudeSet uint8

// NewAttitudeSet returns a set holding the given attitudes.
func NewAttitudeSet(as ...Attitude) AttitudeSet {
	var s AttitudeSet
	for _, a := range as {
		s = s.With(a)
	}
	return s
}

// With returns s plus a.
func (s AttitudeSet) With(a Attitude) AttitudeSet {
	return s | 1<<a
}

// Union returns every attitude in s or o.
func (s AttitudeSet) Union(o AttitudeSet) AttitudeSet {
	return s | o
}

// Has reports whether a is in s.
func (s AttitudeSet) Has(a Attitude) bool {
	return s&(1<<a) != 0
}

// Empty reports whether s holds nothing.
func (s AttitudeSet) Empty() bool {
	return s == 0
}

// Slice returns the members of s in declaration order.
func (s AttitudeSet) Slice() []Attitude {
	var out []Attitude
	for a := Attitude(0); a < attitudeCount; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s AttitudeSet) String() string {
	names := make([]string, 0, attitudeCount)
	for _, a := range s.Slice() {
		names = append(names, a.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
