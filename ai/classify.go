package ai

import "github.com/pthm-cable/taiga/traits"

// Classify returns the attitudes u represents to me. Units of an unrelated
// species yield the empty set.
func Classify(me AgentInfo, u Unit) AttitudeSet {
	var set AttitudeSet
	switch traits.RoleOf(me.Species, u.Species) {
	case traits.RoleHunter:
		set = set.With(Threat)
	case traits.RoleQuarry:
		set = set.With(FoodSource)
	case traits.RoleKin:
		if goodPartner(me, u) {
			set = set.With(Mate)
		} else {
			set = set.With(Rival)
		}
	case traits.RoleNone:
	}
	return set
}

// goodPartner: an adult of the opposite sex, with neither side pregnant.
func goodPartner(me AgentInfo, candidate Unit) bool {
	return candidate.Adult &&
		candidate.Sex == me.Sex.Opposite() &&
		!candidate.Pregnant &&
		!me.Pregnant()
}

// isSelf reports whether u is the observer itself.
func isSelf(me AgentInfo, u Unit) bool {
	return me.ID != 0 && u.ID == me.ID
}
